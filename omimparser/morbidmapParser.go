package omimparser

import (
	"strconv"

	"github.com/repotrial/omim-extractor/logging"
	"github.com/repotrial/omim-extractor/omimparser/entities"
)

var morbidmapSchema = fileSchema{
	name:    "morbidmap.txt",
	comment: "#",
	columns: []string{
		"Phenotype",
		"Gene Symbols",
		"MIM Number",
		"Cyto Location",
	},
}

// extractMorbidmap is pass B: morbidmap rows carry the gene's MIM number but
// no Entrez ID, so gene identity comes from the mim2gene index. Rows whose
// MIM number is not in the index (phenotype-only entries) are dropped and
// counted as resolution failures.
func extractMorbidmap(path string, index map[int]int, stats *entities.ExtractionStats) ([]entities.DisorderAssociation, error) {
	var associations []entities.DisorderAssociation

	fileStats, err := forEachRecord(path, morbidmapSchema, func(line int, record map[string]string) error {
		geneMim, err := strconv.Atoi(record["MIM Number"])
		if err != nil {
			logging.Warn("Skipping morbidmap row with invalid MIM number", "line", line, "mim", record["MIM Number"])
			stats.MalformedRows++
			return nil
		}

		entrez, ok := index[geneMim]
		if !ok {
			stats.ResolutionFailures++
			return nil
		}

		// One phenotype per row; parsed with the same mention grammar as
		// the genemap2 phenotype cell
		for _, result := range parsePhenotypeField(record["Phenotype"]) {
			if result.Malformed {
				logging.Warn("Skipping malformed phenotype mention", "file", morbidmapSchema.name, "line", line, "mention", result.Raw)
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
				Sources:      []entities.Source{entities.SourceMorbidmap},
			})
		}

		return nil
	})
	fileStats.addTo(stats)
	if err != nil {
		return nil, err
	}

	stats.MorbidmapRows = fileStats.rows
	logging.Info("morbidmap pass completed", "rows", fileStats.rows, "associations", len(associations))
	return associations, nil
}
