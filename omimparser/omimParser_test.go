package omimparser

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/repotrial/omim-extractor/omimparser/entities"
)

const genemap2Header = "# Chromosome\tGenomic Position Start\tGenomic Position End\tCyto Location\tComputed Cyto Location\tMIM Number\tGene Symbols\tGene Name\tApproved Symbol\tEntrez Gene ID\tEnsembl Gene ID\tComments\tPhenotypes\tMouse Gene Symbol/ID\n"
const morbidmapHeader = "# Phenotype\tGene Symbols\tMIM Number\tCyto Location\n"

// writeFixtures lays down a small but complete OMIM snapshot:
//   - gene 672 (BRCA1) under MIM 100100 and 113705, gene 4000 (LMNA) under
//     150330, plus a phenotype-only entry 200100
//   - genemap2 with a plain mention, a combined entry and an empty phenotype
//   - morbidmap overlapping genemap2 on one association, adding one, and one
//     row resolving only to the phenotype entry
func writeFixtures(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()

	mim2gene := mim2geneHeader +
		"100100\tgene\t672\tBRCA1\t\n" +
		"113705\tgene\t672\tBRCA1\t\n" +
		"150330\tgene/phenotype\t4000\tLMNA\t\n" +
		"200100\tphenotype\t\t\t\n"

	genemap2 := genemap2Header +
		"chr17\t43044295\t43125483\t17q21.31\t17q21.31\t113705\tBRCA1, RNF53\tBreast cancer 1 gene\tBRCA1\t672\tENSG00000012048\t\tBreast cancer, familial, 114480 (3)\t\n" +
		"chr1\t156082573\t156140081\t1q22\t1q22\t150330\tLMNA\tLamin A/C\tLMNA\t4000\tENSG00000160789\t\tLipodystrophy, 151660 (2); Hutchinson-Gilford progeria (3)\t\n" +
		"chr2\t1\t2\t2p25\t2p25\t160100\tEMPT\tEmpty phenotype gene\tEMPT\t999\t\t\t\t\n"

	morbidmap := morbidmapHeader +
		"Breast cancer, familial, 114480 (2)\tBRCA1\t113705\t17q21.31\n" +
		"Example Syndrome (3)\tEXSYN\t100100\t1p36\n" +
		"Orphan disorder, 300000 (1)\tORPH\t200100\t2q31\n"

	for name, content := range map[string]string{
		"mim2gene.txt":  mim2gene,
		"genemap2.txt":  genemap2,
		"morbidmap.txt": morbidmap,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	return Options{
		DataDir:    dir,
		OutputFile: filepath.Join(dir, "associations.tsv"),
	}
}

func TestParseAllAssociations(t *testing.T) {
	opts := writeFixtures(t)

	associations, genes, stats, err := ParseAllAssociations(opts)
	if err != nil {
		t.Fatalf("ParseAllAssociations failed: %v", err)
	}

	if len(associations) != 4 {
		t.Fatalf("Expected 4 associations, got %d: %+v", len(associations), associations)
	}
	if len(genes) != 3 {
		t.Errorf("Expected 3 gene records, got %d", len(genes))
	}

	// Deterministic ordering: entrez asc, disorder MIM asc, name lexical
	expected := []entities.DisorderAssociation{
		{GeneEntrezID: 672, DisorderMim: 100100, DisorderName: "Example Syndrome", Confidence: entities.ConfidenceConfirmed, Sources: []entities.Source{entities.SourceMorbidmap}},
		{GeneEntrezID: 672, DisorderMim: 114480, DisorderName: "Breast cancer, familial", Confidence: entities.ConfidenceConfirmed, Sources: []entities.Source{entities.SourceGenemap2, entities.SourceMorbidmap}},
		{GeneEntrezID: 4000, DisorderMim: 150330, DisorderName: "Hutchinson-Gilford progeria", Confidence: entities.ConfidenceConfirmed, Sources: []entities.Source{entities.SourceGenemap2}},
		{GeneEntrezID: 4000, DisorderMim: 151660, DisorderName: "Lipodystrophy", Confidence: entities.ConfidenceProvisional, Sources: []entities.Source{entities.SourceGenemap2}},
	}

	for i, want := range expected {
		got := associations[i]
		if got.GeneEntrezID != want.GeneEntrezID || got.DisorderMim != want.DisorderMim ||
			got.DisorderName != want.DisorderName || got.Confidence != want.Confidence {
			t.Errorf("Association %d mismatch:\n  got  %+v\n  want %+v", i, got, want)
		}
		if len(got.Sources) != len(want.Sources) {
			t.Errorf("Association %d sources mismatch: got %v want %v", i, got.Sources, want.Sources)
			continue
		}
		for j := range want.Sources {
			if got.Sources[j] != want.Sources[j] {
				t.Errorf("Association %d source %d mismatch: got %v want %v", i, j, got.Sources, want.Sources)
			}
		}
	}

	// The morbidmap row resolving to the phenotype-only MIM is dropped
	if stats.ResolutionFailures != 1 {
		t.Errorf("Expected 1 resolution failure, got %d", stats.ResolutionFailures)
	}
	// genemap2 and morbidmap both assert the breast cancer association
	if stats.MergedAssociations != 1 {
		t.Errorf("Expected 1 merged association, got %d", stats.MergedAssociations)
	}
	if stats.TotalAssociations != 4 {
		t.Errorf("Expected TotalAssociations 4, got %d", stats.TotalAssociations)
	}
	// The empty-phenotype genemap2 row emits nothing
	if stats.EmptyPhenotypes != 1 {
		t.Errorf("Expected 1 empty phenotype row, got %d", stats.EmptyPhenotypes)
	}
}

func TestCombinedEntryUsesGeneMim(t *testing.T) {
	opts := writeFixtures(t)

	associations, _, _, err := ParseAllAssociations(opts)
	if err != nil {
		t.Fatalf("ParseAllAssociations failed: %v", err)
	}

	found := false
	for _, assoc := range associations {
		if assoc.DisorderName == "Hutchinson-Gilford progeria" {
			found = true
			if assoc.DisorderMim != 150330 {
				t.Errorf("Combined entry must take the gene's MIM 150330, got %d", assoc.DisorderMim)
			}
		}
	}
	if !found {
		t.Error("Combined-entry association missing from output")
	}
}

func TestDedupMergesAcrossSourceFiles(t *testing.T) {
	opts := writeFixtures(t)

	associations, _, _, err := ParseAllAssociations(opts)
	if err != nil {
		t.Fatalf("ParseAllAssociations failed: %v", err)
	}

	count := 0
	for _, assoc := range associations {
		if assoc.GeneEntrezID == 672 && assoc.DisorderMim == 114480 {
			count++
			// genemap2 said (3), morbidmap said (2): keep the higher
			if assoc.Confidence != entities.ConfidenceConfirmed {
				t.Errorf("Expected merged confidence confirmed, got %v", assoc.Confidence)
			}
			if !assoc.HasSource(entities.SourceGenemap2) || !assoc.HasSource(entities.SourceMorbidmap) {
				t.Errorf("Expected both sources recorded, got %v", assoc.Sources)
			}
		}
	}
	if count != 1 {
		t.Errorf("Expected exactly 1 record for the shared association, got %d", count)
	}
}

func TestExampleSyndromeScenario(t *testing.T) {
	opts := writeFixtures(t)

	associations, _, _, err := ParseAllAssociations(opts)
	if err != nil {
		t.Fatalf("ParseAllAssociations failed: %v", err)
	}

	for _, assoc := range associations {
		if assoc.DisorderName == "Example Syndrome" {
			if assoc.GeneEntrezID != 672 {
				t.Errorf("Expected gene 672, got %d", assoc.GeneEntrezID)
			}
			if assoc.DisorderMim != 100100 {
				t.Errorf("Expected disorder MIM 100100, got %d", assoc.DisorderMim)
			}
			if assoc.Confidence != entities.ConfidenceConfirmed {
				t.Errorf("Expected confirmed confidence, got %v", assoc.Confidence)
			}
			return
		}
	}
	t.Error("Example Syndrome association missing from output")
}

func TestOutputIsByteIdenticalAcrossRuns(t *testing.T) {
	opts := writeFixtures(t)

	if _, _, _, err := ParseAllAssociations(opts); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	first, err := os.ReadFile(opts.OutputFile)
	if err != nil {
		t.Fatalf("Failed to read first output: %v", err)
	}

	if _, _, _, err := ParseAllAssociations(opts); err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	second, err := os.ReadFile(opts.OutputFile)
	if err != nil {
		t.Fatalf("Failed to read second output: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("Output differs between runs on identical input")
	}
}

func TestOutputFileFormat(t *testing.T) {
	opts := writeFixtures(t)

	if _, _, _, err := ParseAllAssociations(opts); err != nil {
		t.Fatalf("ParseAllAssociations failed: %v", err)
	}

	raw, err := os.ReadFile(opts.OutputFile)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	if lines[0] != tsvHeader {
		t.Errorf("Unexpected header line: %q", lines[0])
	}
	if len(lines) != 5 {
		t.Fatalf("Expected header + 4 rows, got %d lines", len(lines))
	}

	fields := strings.Split(lines[2], "\t")
	if len(fields) != 5 {
		t.Fatalf("Expected 5 columns, got %d: %q", len(fields), lines[2])
	}
	if fields[0] != "672" || fields[1] != "114480" || fields[4] != "genemap2,morbidmap" {
		t.Errorf("Unexpected row content: %q", lines[2])
	}

	// JSON mirror is written next to the TSV
	jsonPath := strings.TrimSuffix(opts.OutputFile, ".tsv") + ".json"
	if _, err := os.Stat(jsonPath); err != nil {
		t.Errorf("Expected JSON mirror at %s: %v", jsonPath, err)
	}
}

func TestSortAssociationsZeroMimSortsLast(t *testing.T) {
	associations := []entities.DisorderAssociation{
		{GeneEntrezID: 1, DisorderMim: 0, DisorderName: "b"},
		{GeneEntrezID: 1, DisorderMim: 200000, DisorderName: "a"},
		{GeneEntrezID: 1, DisorderMim: 100000, DisorderName: "c"},
	}

	sortAssociations(associations)

	if associations[0].DisorderMim != 100000 || associations[1].DisorderMim != 200000 || associations[2].DisorderMim != 0 {
		t.Errorf("Unexpected order: %+v", associations)
	}
}

func TestParseAllAssociationsMissingFile(t *testing.T) {
	opts := Options{DataDir: t.TempDir(), OutputFile: ""}

	if _, _, _, err := ParseAllAssociations(opts); err == nil {
		t.Fatal("Expected error when input files are missing")
	}
}
