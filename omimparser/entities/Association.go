package entities

import (
	"encoding/json"
	"fmt"
)

// Confidence is the OMIM mapping-key grade attached to a gene-phenotype
// relationship. Higher values carry stronger evidence.
type Confidence int

const (
	ConfidenceUnknown     Confidence = 0
	ConfidenceDisputed    Confidence = 1
	ConfidenceProvisional Confidence = 2
	ConfidenceConfirmed   Confidence = 3
	ConfidenceLiterature  Confidence = 4
)

// ConfidenceFromKey maps an OMIM mapping-key digit (1-4) to a Confidence.
// Returns false for any other value.
func ConfidenceFromKey(key int) (Confidence, bool) {
	if key < 1 || key > 4 {
		return ConfidenceUnknown, false
	}
	return Confidence(key), true
}

func (c Confidence) String() string {
	switch c {
	case ConfidenceDisputed:
		return "disputed"
	case ConfidenceProvisional:
		return "provisional"
	case ConfidenceConfirmed:
		return "confirmed"
	case ConfidenceLiterature:
		return "established by literature"
	default:
		return "unknown"
	}
}

// MarshalJSON emits the qualitative label rather than the raw digit.
func (c Confidence) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Confidence) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	switch label {
	case "disputed":
		*c = ConfidenceDisputed
	case "provisional":
		*c = ConfidenceProvisional
	case "confirmed":
		*c = ConfidenceConfirmed
	case "established by literature":
		*c = ConfidenceLiterature
	case "unknown":
		*c = ConfidenceUnknown
	default:
		return fmt.Errorf("unknown confidence label: %q", label)
	}
	return nil
}

// Source identifies which OMIM file an association was extracted from.
type Source string

const (
	SourceGenemap2  Source = "genemap2"
	SourceMorbidmap Source = "morbidmap"
)

// DisorderAssociation is one normalized gene-disorder association.
// For combined gene-disorder entries DisorderMim equals the gene's own MIM
// number; it is never zero in emitted output.
type DisorderAssociation struct {
	GeneEntrezID int        `json:"geneEntrezId"`
	DisorderMim  int        `json:"disorderMimNumber"`
	DisorderName string     `json:"disorderName"`
	Confidence   Confidence `json:"confidence"`
	Sources      []Source   `json:"sources"`
}

// AssociationKey is the identity used for cross-file deduplication.
type AssociationKey struct {
	GeneEntrezID int
	DisorderMim  int
	DisorderName string
}

func (a *DisorderAssociation) Key() AssociationKey {
	return AssociationKey{
		GeneEntrezID: a.GeneEntrezID,
		DisorderMim:  a.DisorderMim,
		DisorderName: a.DisorderName,
	}
}

// HasSource reports whether the association already records the given source.
func (a *DisorderAssociation) HasSource(s Source) bool {
	for _, existing := range a.Sources {
		if existing == s {
			return true
		}
	}
	return false
}
