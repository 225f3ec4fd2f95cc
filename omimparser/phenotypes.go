package omimparser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/repotrial/omim-extractor/omimparser/entities"
)

// A genemap2 phenotype cell packs zero or more disorder mentions separated by
// semicolons, each of the form "Name, 123456 (3)" with an optional trailing
// inheritance note. Combined gene-disorder entries omit the distinct MIM
// number and keep only the "(3)" mapping key.
var (
	mimWithKeyRegex = regexp.MustCompile(`(\d{6})\s*\((\d)\)`)
	mappingKeyRegex = regexp.MustCompile(`\((\d)\)`)
)

// phenotypeMention is the parsed form of one disorder mention. Mim is zero
// when the mention has no MIM number of its own (the combined-entry case);
// the caller substitutes the gene's MIM.
type phenotypeMention struct {
	Name       string
	Mim        int
	Confidence entities.Confidence
}

// mentionResult tags each mention as parsed or malformed, carrying the raw
// text for the malformed case so callers can log it. Parsing never fails past
// the single-mention boundary.
type mentionResult struct {
	Mention   phenotypeMention
	Malformed bool
	Raw       string
}

// parsePhenotypeField splits a raw phenotype cell into mention results.
// An empty or whitespace-only cell yields no results at all.
func parsePhenotypeField(field string) []mentionResult {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}

	var results []mentionResult
	for _, raw := range strings.Split(field, ";") {
		mention := strings.TrimSpace(raw)
		if mention == "" {
			continue
		}
		results = append(results, parseMention(mention))
	}
	return results
}

func parseMention(mention string) mentionResult {
	malformed := mentionResult{Malformed: true, Raw: mention}

	// Mentions with their own disorder MIM: "Name, 114480 (3), Autosomal dominant"
	if m := mimWithKeyRegex.FindStringSubmatchIndex(mention); m != nil {
		mim, err := strconv.Atoi(mention[m[2]:m[3]])
		if err != nil {
			return malformed
		}
		confidence, ok := entities.ConfidenceFromKey(atoiDigit(mention[m[4]:m[5]]))
		if !ok {
			return malformed
		}
		name := trimMentionName(mention[:m[0]])
		if name == "" {
			return malformed
		}
		return mentionResult{Mention: phenotypeMention{Name: name, Mim: mim, Confidence: confidence}}
	}

	// Combined gene-disorder entries carry only the mapping key
	if m := mappingKeyRegex.FindStringSubmatchIndex(mention); m != nil {
		confidence, ok := entities.ConfidenceFromKey(atoiDigit(mention[m[2]:m[3]]))
		if !ok {
			return malformed
		}
		name := trimMentionName(mention[:m[0]])
		if name == "" {
			return malformed
		}
		return mentionResult{Mention: phenotypeMention{Name: name, Confidence: confidence}}
	}

	// No mapping key at all
	return malformed
}

// trimMentionName strips the separator left over between the name and the
// MIM number or mapping key.
func trimMentionName(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), ", ")
}

func atoiDigit(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}
