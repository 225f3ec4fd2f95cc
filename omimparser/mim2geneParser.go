package omimparser

import (
	"strconv"

	"github.com/repotrial/omim-extractor/logging"
	"github.com/repotrial/omim-extractor/omimparser/entities"
)

var mim2geneSchema = fileSchema{
	name:    "mim2gene.txt",
	comment: "#",
	columns: []string{
		"MIM Number",
		"MIM Entry Type",
		"Entrez Gene ID",
		"Approved Gene Symbol",
		"Ensembl Gene ID",
	},
}

// buildMimToEntrez builds the MIM-number-to-Entrez-gene-ID index from
// mim2gene.txt. Only entries typed as a gene carry a gene identity; phenotype
// entries are skipped. The file is authoritative top to bottom, so a MIM
// number appearing twice keeps the later Entrez ID (with a warning).
func buildMimToEntrez(path string, stats *entities.ExtractionStats) (map[int]int, error) {
	index := make(map[int]int)

	fileStats, err := forEachRecord(path, mim2geneSchema, func(line int, record map[string]string) error {
		switch record["MIM Entry Type"] {
		case "gene", "gene/phenotype":
			// Indexed below
		case "phenotype", "predominantly phenotypes", "moved/removed":
			return nil
		default:
			logging.Warn("Unknown mim2gene entry type", "line", line, "type", record["MIM Entry Type"])
			stats.MalformedRows++
			return nil
		}

		mim, err := strconv.Atoi(record["MIM Number"])
		if err != nil {
			logging.Warn("Skipping mim2gene row with invalid MIM number", "line", line, "mim", record["MIM Number"])
			stats.MalformedRows++
			return nil
		}

		if record["Entrez Gene ID"] == "" {
			// Gene entries without an Entrez ID exist (withdrawn genes)
			stats.RowsLackingEntrez++
			return nil
		}

		entrez, err := strconv.Atoi(record["Entrez Gene ID"])
		if err != nil {
			logging.Warn("Skipping mim2gene row with invalid Entrez gene ID", "line", line, "entrez", record["Entrez Gene ID"])
			stats.MalformedRows++
			return nil
		}

		if previous, exists := index[mim]; exists {
			logging.Warn("Duplicate MIM number in mim2gene, keeping later entry",
				"mim", mim, "previous_entrez", previous, "entrez", entrez)
			stats.DuplicateMimKeys++
		}
		index[mim] = entrez

		return nil
	})
	fileStats.addTo(stats)
	if err != nil {
		return nil, err
	}

	stats.Mim2GeneRows = fileStats.rows
	logging.Info("mim2gene index built", "entries", len(index), "rows", fileStats.rows)
	return index, nil
}
