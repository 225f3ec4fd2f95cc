package omimparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/repotrial/omim-extractor/omimparser/entities"
)

const mim2geneHeader = "# MIM Number\tMIM Entry Type\tEntrez Gene ID\tApproved Gene Symbol\tEnsembl Gene ID\n"

func writeMim2Gene(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mim2gene.txt")
	if err := os.WriteFile(path, []byte(mim2geneHeader+rows), 0644); err != nil {
		t.Fatalf("Failed to write mim2gene file: %v", err)
	}
	return path
}

func TestBuildMimToEntrezIndexesGeneTypes(t *testing.T) {
	rows := "100100\tgene\t672\tBRCA1\tENSG00000012048\n" +
		"100200\tgene/phenotype\t4000\tLMNA\tENSG00000160789\n" +
		"100300\tphenotype\t\t\t\n" +
		"100400\tpredominantly phenotypes\t\t\t\n" +
		"100500\tmoved/removed\t\t\t\n"

	stats := &entities.ExtractionStats{}
	index, err := buildMimToEntrez(writeMim2Gene(t, rows), stats)
	if err != nil {
		t.Fatalf("buildMimToEntrez failed: %v", err)
	}

	if len(index) != 2 {
		t.Fatalf("Expected 2 index entries, got %d", len(index))
	}
	if index[100100] != 672 {
		t.Errorf("Expected MIM 100100 -> 672, got %d", index[100100])
	}
	if index[100200] != 4000 {
		t.Errorf("Expected MIM 100200 -> 4000, got %d", index[100200])
	}
	if _, exists := index[100300]; exists {
		t.Error("Phenotype entry must never be indexed")
	}
}

func TestBuildMimToEntrezLastWriteWins(t *testing.T) {
	rows := "100100\tgene\t672\tBRCA1\t\n" +
		"100100\tgene\t673\tBRAF\t\n"

	stats := &entities.ExtractionStats{}
	index, err := buildMimToEntrez(writeMim2Gene(t, rows), stats)
	if err != nil {
		t.Fatalf("buildMimToEntrez failed: %v", err)
	}

	if index[100100] != 673 {
		t.Errorf("Expected later entry to win, got %d", index[100100])
	}
	if stats.DuplicateMimKeys != 1 {
		t.Errorf("Expected 1 duplicate MIM key counted, got %d", stats.DuplicateMimKeys)
	}
}

func TestBuildMimToEntrezSkipsGenesWithoutEntrez(t *testing.T) {
	rows := "100100\tgene\t\tWITHDRAWN\t\n" +
		"100200\tgene\t4000\tLMNA\t\n"

	stats := &entities.ExtractionStats{}
	index, err := buildMimToEntrez(writeMim2Gene(t, rows), stats)
	if err != nil {
		t.Fatalf("buildMimToEntrez failed: %v", err)
	}

	if len(index) != 1 {
		t.Fatalf("Expected 1 index entry, got %d", len(index))
	}
	if stats.RowsLackingEntrez != 1 {
		t.Errorf("Expected 1 row lacking Entrez counted, got %d", stats.RowsLackingEntrez)
	}
}

func TestBuildMimToEntrezUnknownTypeCounted(t *testing.T) {
	rows := "100100\tmystery\t672\tBRCA1\t\n"

	stats := &entities.ExtractionStats{}
	index, err := buildMimToEntrez(writeMim2Gene(t, rows), stats)
	if err != nil {
		t.Fatalf("buildMimToEntrez failed: %v", err)
	}

	if len(index) != 0 {
		t.Errorf("Expected empty index, got %d entries", len(index))
	}
	if stats.MalformedRows != 1 {
		t.Errorf("Expected 1 malformed row, got %d", stats.MalformedRows)
	}
}
