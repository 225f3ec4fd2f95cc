// Package validation provides data integrity checks for extracted
// associations and validation of user-supplied request parameters.
package validation

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/repotrial/omim-extractor/interfaces"
	"github.com/repotrial/omim-extractor/omimparser/entities"
)

// Compile-time check to ensure DataValidatorImpl implements DataValidator
var _ interfaces.DataValidator = (*DataValidatorImpl)(nil)

// DataValidatorImpl implements the interfaces.DataValidator interface
type DataValidatorImpl struct{}

// NewDataValidator creates a new data validator
func NewDataValidator() *DataValidatorImpl {
	return &DataValidatorImpl{}
}

var mimNumberPattern = regexp.MustCompile(`^[0-9]{6}$`)

// ValidateAssociation checks one association for structural sanity.
func (v *DataValidatorImpl) ValidateAssociation(a *entities.DisorderAssociation) error {
	if a.GeneEntrezID <= 0 {
		return fmt.Errorf("invalid Entrez gene ID: %d", a.GeneEntrezID)
	}
	if a.DisorderMim <= 0 {
		return fmt.Errorf("invalid disorder MIM number: %d", a.DisorderMim)
	}
	if a.DisorderName == "" {
		return fmt.Errorf("missing disorder name")
	}
	if a.Confidence < entities.ConfidenceDisputed || a.Confidence > entities.ConfidenceLiterature {
		return fmt.Errorf("confidence out of range: %d", a.Confidence)
	}
	if len(a.Sources) == 0 {
		return fmt.Errorf("association has no source file")
	}
	return nil
}

// ReportDataQuality summarizes quality issues across the extracted set.
// A non-empty DuplicateKeys count means deduplication failed upstream.
func (v *DataValidatorImpl) ReportDataQuality(associations []entities.DisorderAssociation, genes []entities.GeneRecord) *interfaces.DataQualityReport {
	report := &interfaces.DataQualityReport{}

	seen := make(map[entities.AssociationKey]bool, len(associations))
	genesWithAssociations := make(map[int]bool)

	for i := range associations {
		assoc := &associations[i]

		if seen[assoc.Key()] {
			report.DuplicateKeys++
		}
		seen[assoc.Key()] = true
		genesWithAssociations[assoc.GeneEntrezID] = true

		if assoc.Confidence == entities.ConfidenceUnknown {
			report.UnknownConfidence++
		}

		fromGenemap := assoc.HasSource(entities.SourceGenemap2)
		fromMorbidmap := assoc.HasSource(entities.SourceMorbidmap)
		switch {
		case fromGenemap && fromMorbidmap:
			report.AssertedByBoth++
		case fromGenemap:
			report.GenemapOnly++
		case fromMorbidmap:
			report.MorbidmapOnly++
		}
	}

	for _, gene := range genes {
		if !genesWithAssociations[gene.EntrezGeneID] {
			report.GenesWithoutAssociations++
		}
	}

	return report
}

// ValidateEntrezID validates an Entrez gene ID path parameter.
func (v *DataValidatorImpl) ValidateEntrezID(input string) (int, error) {
	if input == "" {
		return 0, fmt.Errorf("entrez gene ID cannot be empty")
	}
	if len(input) > 9 {
		return 0, fmt.Errorf("entrez gene ID too long: %s", input)
	}

	id, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("entrez gene ID must be numeric: %s", input)
	}
	if id <= 0 {
		return 0, fmt.Errorf("entrez gene ID must be positive: %d", id)
	}

	return id, nil
}

// ValidateMimNumber validates a MIM number path parameter. MIM numbers are
// always six digits.
func (v *DataValidatorImpl) ValidateMimNumber(input string) (int, error) {
	if !mimNumberPattern.MatchString(input) {
		return 0, fmt.Errorf("MIM number must be a six-digit number: %s", input)
	}

	mim, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("MIM number must be numeric: %s", input)
	}

	return mim, nil
}
