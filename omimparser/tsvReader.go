package omimparser

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/repotrial/omim-extractor/logging"
	"github.com/repotrial/omim-extractor/omimparser/entities"
)

// fileSchema describes the expected layout of one OMIM tab-separated file.
type fileSchema struct {
	name    string
	comment string
	columns []string
}

// readStats counts what happened while streaming one file.
type readStats struct {
	rows       int
	emptyLines int
	malformed  int
}

// forEachRecord streams the data rows of a tab-separated OMIM file, calling fn
// with a column-name-to-raw-value map for every well-formed row.
//
// The header is the last comment line containing tabs before the first data
// row; its column count must match the schema exactly or the whole run is
// aborted with a SchemaMismatchError. Data rows whose column count differs
// from the schema are logged and skipped, and comment lines after the data
// section starts (OMIM appends a free-text legend) are ignored.
func forEachRecord(path string, schema fileSchema, fn func(line int, record map[string]string) error) (readStats, error) {
	var stats readStats

	tsvFile, err := os.Open(path)
	if err != nil {
		return stats, fmt.Errorf("failed to open %s: %w", schema.name, err)
	}
	defer func() {
		if err := tsvFile.Close(); err != nil {
			logging.Warn("Failed to close TSV file", "file", schema.name, "error", err)
		}
	}()

	scanner := bufio.NewScanner(tsvFile)
	// Phenotype cells can run long; the default token size is too small
	scanner.Buffer(make([]byte, 0), 1*1024*1024)

	lineCount := 0
	headerSeen := false
	dataSeen := false

	for scanner.Scan() {
		lineCount++
		line := scanner.Text()

		if len(line) == 0 {
			stats.emptyLines++
			continue
		}

		if strings.HasPrefix(line, schema.comment) {
			if dataSeen {
				continue
			}
			// Candidate header: the column-name comment line carries tabs,
			// the prose comments above it do not
			if strings.Contains(line, "\t") {
				header := strings.TrimSpace(strings.TrimPrefix(line, schema.comment))
				if got := len(strings.Split(header, "\t")); got != len(schema.columns) {
					return stats, &SchemaMismatchError{File: schema.name, Expected: len(schema.columns), Got: got}
				}
				headerSeen = true
			}
			continue
		}

		if !dataSeen {
			if !headerSeen {
				return stats, &SchemaMismatchError{File: schema.name, Expected: len(schema.columns), Got: 0}
			}
			dataSeen = true
		}

		fields := strings.Split(line, "\t")
		if len(fields) != len(schema.columns) {
			rowErr := &MalformedRowError{File: schema.name, Line: lineCount, Reason: fmt.Sprintf("expected %d columns, got %d", len(schema.columns), len(fields))}
			logging.Warn("Skipping malformed row", "file", schema.name, "line", lineCount, "error", rowErr.Reason)
			stats.malformed++
			continue
		}

		record := make(map[string]string, len(schema.columns))
		for i, column := range schema.columns {
			record[column] = strings.TrimSpace(fields[i])
		}

		stats.rows++
		if err := fn(lineCount, record); err != nil {
			return stats, err
		}
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("scanner error in %s: %w", schema.name, err)
	}

	return stats, nil
}

// addTo folds per-file counters into the run-wide stats.
func (rs readStats) addTo(stats *entities.ExtractionStats) {
	stats.EmptyLines += rs.emptyLines
	stats.MalformedRows += rs.malformed
}
