package omimparser

import (
	"strconv"
	"strings"

	"github.com/repotrial/omim-extractor/logging"
	"github.com/repotrial/omim-extractor/omimparser/entities"
)

var genemap2Schema = fileSchema{
	name:    "genemap2.txt",
	comment: "#",
	columns: []string{
		"Chromosome",
		"Genomic Position Start",
		"Genomic Position End",
		"Cyto Location",
		"Computed Cyto Location",
		"MIM Number",
		"Gene Symbols",
		"Gene Name",
		"Approved Symbol",
		"Entrez Gene ID",
		"Ensembl Gene ID",
		"Comments",
		"Phenotypes",
		"Mouse Gene Symbol/ID",
	},
}

// extractGenemap2 is pass A: genemap2 rows embed both the Entrez gene ID and
// the gene's MIM number, so no index lookup is needed. Every parsed phenotype
// mention becomes one association; a mention without its own MIM number takes
// the gene's MIM (combined gene-disorder entry).
func extractGenemap2(path string, stats *entities.ExtractionStats) ([]entities.DisorderAssociation, []entities.GeneRecord, error) {
	var associations []entities.DisorderAssociation
	var genes []entities.GeneRecord
	seenMims := make(map[int]bool)

	fileStats, err := forEachRecord(path, genemap2Schema, func(line int, record map[string]string) error {
		if record["Entrez Gene ID"] == "" {
			stats.RowsLackingEntrez++
			return nil
		}

		entrez, err := strconv.Atoi(record["Entrez Gene ID"])
		if err != nil {
			logging.Warn("Skipping genemap2 row with invalid Entrez gene ID", "line", line, "entrez", record["Entrez Gene ID"])
			stats.MalformedRows++
			return nil
		}

		geneMim, err := strconv.Atoi(record["MIM Number"])
		if err != nil {
			logging.Warn("Skipping genemap2 row with invalid MIM number", "line", line, "mim", record["MIM Number"])
			stats.MalformedRows++
			return nil
		}

		if seenMims[geneMim] {
			logging.Warn("Duplicate gene MIM number in genemap2", "line", line, "mim", geneMim)
		}
		seenMims[geneMim] = true

		genes = append(genes, entities.GeneRecord{
			EntrezGeneID:       entrez,
			MimNumber:          geneMim,
			ChromosomeLocation: record["Cyto Location"],
			Symbols:            splitSymbols(record["Gene Symbols"]),
		})

		if record["Phenotypes"] == "" {
			stats.EmptyPhenotypes++
			return nil
		}

		for _, result := range parsePhenotypeField(record["Phenotypes"]) {
			if result.Malformed {
				logging.Warn("Skipping malformed phenotype mention", "file", genemap2Schema.name, "line", line, "mention", result.Raw)
				stats.MalformedMentions++
				continue
			}

			disorderMim := result.Mention.Mim
			if disorderMim == 0 {
				disorderMim = geneMim
			}

			associations = append(associations, entities.DisorderAssociation{
				GeneEntrezID: entrez,
				DisorderMim:  disorderMim,
				DisorderName: result.Mention.Name,
				Confidence:   result.Mention.Confidence,
				Sources:      []entities.Source{entities.SourceGenemap2},
			})
		}

		return nil
	})
	fileStats.addTo(stats)
	if err != nil {
		return nil, nil, err
	}

	stats.Genemap2Rows = fileStats.rows
	logging.Info("genemap2 pass completed", "rows", fileStats.rows, "genes", len(genes), "associations", len(associations))
	return associations, genes, nil
}

func splitSymbols(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	symbols := make([]string, 0, len(parts))
	for _, part := range parts {
		if symbol := strings.TrimSpace(part); symbol != "" {
			symbols = append(symbols, symbol)
		}
	}
	return symbols
}
