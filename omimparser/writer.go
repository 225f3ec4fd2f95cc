package omimparser

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/repotrial/omim-extractor/logging"
	"github.com/repotrial/omim-extractor/omimparser/entities"
)

// tsvHeader documents the output column order; downstream bulk loaders rely
// on it staying stable.
const tsvHeader = "gene_entrez_id\tdisorder_mim\tdisorder_name\tconfidence\tsources"

// writeAssociations writes the association table as TSV plus a JSON mirror
// next to it. The TSV is written to a temp file and renamed so a partially
// written output is never observed, and identical input always produces
// byte-identical output.
func writeAssociations(path string, associations []entities.DisorderAssociation) error {
	var b strings.Builder
	b.WriteString(tsvHeader)
	b.WriteByte('\n')

	for i := range associations {
		assoc := &associations[i]
		sources := make([]string, len(assoc.Sources))
		for j, source := range assoc.Sources {
			sources[j] = string(source)
		}

		b.WriteString(strconv.Itoa(assoc.GeneEntrezID))
		b.WriteByte('\t')
		b.WriteString(strconv.Itoa(assoc.DisorderMim))
		b.WriteByte('\t')
		b.WriteString(assoc.DisorderName)
		b.WriteByte('\t')
		b.WriteString(assoc.Confidence.String())
		b.WriteByte('\t')
		b.WriteString(strings.Join(sources, ","))
		b.WriteByte('\n')
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}

	jsonPath := strings.TrimSuffix(path, ".tsv") + ".json"
	marshalled, err := json.MarshalIndent(associations, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal associations: %w", err)
	}
	if err := os.WriteFile(jsonPath, marshalled, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", jsonPath, err)
	}

	logging.Info("Association output written", "tsv", path, "json", jsonPath, "records", len(associations))
	return nil
}
