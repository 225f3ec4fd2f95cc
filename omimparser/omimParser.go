// Package omimparser downloads and parses the OMIM genemap2, morbidmap and
// mim2gene files into normalized gene-disorder associations.
package omimparser

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/repotrial/omim-extractor/logging"
	"github.com/repotrial/omim-extractor/omimparser/entities"
)

// Options configures one extraction run. URLs are optional: when unset the
// extractor works from files already present in DataDir.
type Options struct {
	DataDir      string
	OutputFile   string
	Mim2GeneURL  string
	Genemap2URL  string
	MorbidmapURL string
}

// OmimParser runs the extraction pipeline. It is stateless between runs.
type OmimParser struct {
	opts Options
}

// NewOmimParser creates a parser for the given options.
func NewOmimParser(opts Options) *OmimParser {
	return &OmimParser{opts: opts}
}

// ParseAllAssociations implements the Parser interface.
func (p *OmimParser) ParseAllAssociations() ([]entities.DisorderAssociation, []entities.GeneRecord, *entities.ExtractionStats, error) {
	return ParseAllAssociations(p.opts)
}

// ParseAllAssociations runs the whole pipeline: optional download, the
// mim2gene index build, both extraction passes, deduplication, deterministic
// ordering and the output files. The returned stats aggregate every
// recoverable skip of the run.
func ParseAllAssociations(opts Options) ([]entities.DisorderAssociation, []entities.GeneRecord, *entities.ExtractionStats, error) {
	start := time.Now()
	stats := &entities.ExtractionStats{}

	if err := downloadAll(opts); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to download OMIM files: %w", err)
	}

	index, err := buildMimToEntrez(filepath.Join(opts.DataDir, "mim2gene.txt"), stats)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build mim2gene index: %w", err)
	}

	genemapAssociations, genes, err := extractGenemap2(filepath.Join(opts.DataDir, "genemap2.txt"), stats)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("genemap2 pass failed: %w", err)
	}

	morbidmapAssociations, err := extractMorbidmap(filepath.Join(opts.DataDir, "morbidmap.txt"), index, stats)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("morbidmap pass failed: %w", err)
	}

	associations := dedupAssociations(append(genemapAssociations, morbidmapAssociations...), stats)
	sortAssociations(associations)
	stats.TotalAssociations = len(associations)

	if opts.OutputFile != "" {
		if err := writeAssociations(opts.OutputFile, associations); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to write output: %w", err)
		}
	}

	logging.Info("Extraction run completed",
		"duration", time.Since(start).String(),
		"associations", stats.TotalAssociations,
		"merged", stats.MergedAssociations,
		"malformed_rows", stats.MalformedRows,
		"malformed_mentions", stats.MalformedMentions,
		"resolution_failures", stats.ResolutionFailures)

	return associations, genes, stats, nil
}

// dedupAssociations merges records identical in (gene, disorder MIM, name).
// A merged record keeps the higher confidence and the union of source files.
func dedupAssociations(associations []entities.DisorderAssociation, stats *entities.ExtractionStats) []entities.DisorderAssociation {
	merged := make(map[entities.AssociationKey]*entities.DisorderAssociation, len(associations))

	for i := range associations {
		assoc := &associations[i]
		existing, ok := merged[assoc.Key()]
		if !ok {
			copied := *assoc
			copied.Sources = append([]entities.Source(nil), assoc.Sources...)
			merged[assoc.Key()] = &copied
			continue
		}

		stats.MergedAssociations++
		if assoc.Confidence > existing.Confidence {
			existing.Confidence = assoc.Confidence
		}
		for _, source := range assoc.Sources {
			if !existing.HasSource(source) {
				existing.Sources = append(existing.Sources, source)
			}
		}
	}

	result := make([]entities.DisorderAssociation, 0, len(merged))
	for _, assoc := range merged {
		sort.Slice(assoc.Sources, func(i, j int) bool { return assoc.Sources[i] < assoc.Sources[j] })
		result = append(result, *assoc)
	}
	return result
}

// sortAssociations orders by gene Entrez ID, then disorder MIM (a zero MIM
// sorts last to keep the ordering total), then disorder name.
func sortAssociations(associations []entities.DisorderAssociation) {
	sort.Slice(associations, func(i, j int) bool {
		a, b := associations[i], associations[j]
		if a.GeneEntrezID != b.GeneEntrezID {
			return a.GeneEntrezID < b.GeneEntrezID
		}
		if a.DisorderMim != b.DisorderMim {
			if a.DisorderMim == 0 {
				return false
			}
			if b.DisorderMim == 0 {
				return true
			}
			return a.DisorderMim < b.DisorderMim
		}
		return a.DisorderName < b.DisorderName
	})
}
