// Package interfaces defines core abstractions for the OMIM extractor
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"time"

	"github.com/repotrial/omim-extractor/omimparser/entities"
)

// DataQualityReport provides a summary of data quality issues found in one
// extracted association set.
type DataQualityReport struct {
	DuplicateKeys            int // Association keys appearing more than once (should be zero post-dedup)
	UnknownConfidence        int // Associations without a recognized mapping key
	GenesWithoutAssociations int // Genes from genemap2 with no emitted association
	GenemapOnly              int // Associations asserted only by genemap2
	MorbidmapOnly            int // Associations asserted only by morbidmap
	AssertedByBoth           int // Associations asserted by both source files
}

// DataStore defines the contract for data storage operations.
// It provides thread-safe access to the extracted associations with atomic
// operations for zero-downtime updates.
type DataStore interface {
	// Data retrieval methods
	GetAssociations() []entities.DisorderAssociation
	GetGenes() []entities.GeneRecord
	GetAssociationsByGene() map[int][]entities.DisorderAssociation
	GetAssociationsByDisorder() map[int][]entities.DisorderAssociation
	GetGenesMap() map[int]entities.GeneRecord
	GetStats() entities.ExtractionStats
	GetLastUpdated() time.Time
	IsUpdating() bool
	GetServerStartTime() time.Time

	// Data update methods
	UpdateData(associations []entities.DisorderAssociation, genes []entities.GeneRecord, stats entities.ExtractionStats)
	BeginUpdate() bool
	EndUpdate()
}

// Parser defines the contract for one extraction run over the OMIM files.
type Parser interface {
	// ParseAllAssociations downloads (when configured), parses and
	// deduplicates the gene-disorder associations, returning them in
	// deterministic order together with the run's skip counters.
	ParseAllAssociations() ([]entities.DisorderAssociation, []entities.GeneRecord, *entities.ExtractionStats, error)
}

// Scheduler defines the contract for job scheduling and health monitoring.
type Scheduler interface {
	Start() error
	Stop()
}

// DataValidator defines the contract for data validation operations.
type DataValidator interface {
	// ValidateAssociation checks one association for structural sanity
	ValidateAssociation(a *entities.DisorderAssociation) error

	// ReportDataQuality summarizes quality issues across the whole set
	ReportDataQuality(associations []entities.DisorderAssociation, genes []entities.GeneRecord) *DataQualityReport

	// ValidateEntrezID validates an Entrez gene ID path parameter
	ValidateEntrezID(input string) (int, error)

	// ValidateMimNumber validates a MIM number path parameter
	ValidateMimNumber(input string) (int, error)
}
