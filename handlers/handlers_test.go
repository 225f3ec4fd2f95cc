package handlers

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/repotrial/omim-extractor/data"
	"github.com/repotrial/omim-extractor/omimparser/entities"
	"github.com/repotrial/omim-extractor/validation"
)

func testContainer() *data.DataContainer {
	dc := data.NewDataContainer()
	associations := []entities.DisorderAssociation{
		{GeneEntrezID: 672, DisorderMim: 114480, DisorderName: "Breast cancer, familial", Confidence: entities.ConfidenceConfirmed, Sources: []entities.Source{entities.SourceGenemap2, entities.SourceMorbidmap}},
		{GeneEntrezID: 672, DisorderMim: 604370, DisorderName: "Breast-ovarian cancer", Confidence: entities.ConfidenceConfirmed, Sources: []entities.Source{entities.SourceMorbidmap}},
		{GeneEntrezID: 4000, DisorderMim: 151660, DisorderName: "Lipodystrophy", Confidence: entities.ConfidenceProvisional, Sources: []entities.Source{entities.SourceGenemap2}},
	}
	genes := []entities.GeneRecord{
		{EntrezGeneID: 672, MimNumber: 113705, ChromosomeLocation: "17q21.31", Symbols: []string{"BRCA1"}},
		{EntrezGeneID: 4000, MimNumber: 150330, ChromosomeLocation: "1q22", Symbols: []string{"LMNA"}},
	}
	dc.UpdateData(associations, genes, entities.ExtractionStats{TotalAssociations: 3})
	return dc
}

func testRouter(dc *data.DataContainer) *chi.Mux {
	validator := validation.NewDataValidator()
	r := chi.NewRouter()
	r.Get("/associations", ServeAllAssociations(dc))
	r.Get("/associations/{pageNumber}", ServePagedAssociations(dc))
	r.Get("/gene/{entrezId}", FindByGene(dc, validator))
	r.Get("/disorder/{mim}", FindByDisorder(dc, validator))
	r.Get("/health", HealthCheck(dc))
	return r
}

func doRequest(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestServeAllAssociations(t *testing.T) {
	router := testRouter(testContainer())

	rr := doRequest(t, router, "/associations")
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var associations []entities.DisorderAssociation
	if err := json.Unmarshal(rr.Body.Bytes(), &associations); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(associations) != 3 {
		t.Errorf("Expected 3 associations, got %d", len(associations))
	}
	if associations[0].Confidence != entities.ConfidenceConfirmed {
		t.Errorf("Confidence did not round-trip through JSON: %v", associations[0].Confidence)
	}
}

func TestServePagedAssociations(t *testing.T) {
	router := testRouter(testContainer())

	rr := doRequest(t, router, "/associations/1")
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var page PagedResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &page); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if page.Page != 1 || page.TotalItems != 3 || page.TotalPages != 1 {
		t.Errorf("Unexpected pagination envelope: %+v", page)
	}
	if len(page.Data) != 3 {
		t.Errorf("Expected 3 associations on page 1, got %d", len(page.Data))
	}
}

func TestServePagedAssociationsInvalidPage(t *testing.T) {
	router := testRouter(testContainer())

	for _, path := range []string{"/associations/0", "/associations/-1", "/associations/abc"} {
		if rr := doRequest(t, router, path); rr.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for %s, got %d", path, rr.Code)
		}
	}

	if rr := doRequest(t, router, "/associations/99"); rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for page past the end, got %d", rr.Code)
	}
}

func TestFindByGene(t *testing.T) {
	router := testRouter(testContainer())

	rr := doRequest(t, router, "/gene/672")
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var resp GeneResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Gene.MimNumber != 113705 {
		t.Errorf("Expected gene MIM 113705, got %d", resp.Gene.MimNumber)
	}
	if len(resp.Associations) != 2 {
		t.Errorf("Expected 2 associations for gene 672, got %d", len(resp.Associations))
	}
}

func TestFindByGeneErrors(t *testing.T) {
	router := testRouter(testContainer())

	if rr := doRequest(t, router, "/gene/notanumber"); rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for non-numeric ID, got %d", rr.Code)
	}
	if rr := doRequest(t, router, "/gene/123456789"); rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown gene, got %d", rr.Code)
	}
}

func TestFindByDisorder(t *testing.T) {
	router := testRouter(testContainer())

	rr := doRequest(t, router, "/disorder/114480")
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var associations []entities.DisorderAssociation
	if err := json.Unmarshal(rr.Body.Bytes(), &associations); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(associations) != 1 || associations[0].GeneEntrezID != 672 {
		t.Errorf("Unexpected associations for disorder 114480: %+v", associations)
	}
}

func TestFindByDisorderErrors(t *testing.T) {
	router := testRouter(testContainer())

	if rr := doRequest(t, router, "/disorder/12345"); rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for five-digit MIM, got %d", rr.Code)
	}
	if rr := doRequest(t, router, "/disorder/999999"); rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown MIM, got %d", rr.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	router := testRouter(testContainer())

	rr := doRequest(t, router, "/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if payload["status"] != "healthy" {
		t.Errorf("Expected healthy status, got %v", payload["status"])
	}
	if payload["association_count"] != float64(3) {
		t.Errorf("Expected association_count 3, got %v", payload["association_count"])
	}
	if _, ok := payload["extraction_stats"]; !ok {
		t.Error("Expected extraction_stats in health payload")
	}
}

func TestHealthCheckNoData(t *testing.T) {
	router := testRouter(data.NewDataContainer())

	rr := doRequest(t, router, "/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if payload["status"] != "no data" {
		t.Errorf("Expected no data status before first extraction, got %v", payload["status"])
	}
}

func TestRespondWithJSONCompressesLargePayloads(t *testing.T) {
	big := make([]entities.DisorderAssociation, 200)
	for i := range big {
		big[i] = entities.DisorderAssociation{
			GeneEntrezID: i + 1,
			DisorderMim:  100000 + i,
			DisorderName: fmt.Sprintf("Disorder %d", i),
			Confidence:   entities.ConfidenceConfirmed,
			Sources:      []entities.Source{entities.SourceGenemap2},
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/associations", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()

	RespondWithJSON(rr, req, http.StatusOK, big)

	if rr.Header().Get("Content-Encoding") != "gzip" {
		t.Fatal("Expected gzip encoding for a large payload")
	}

	gz, err := gzip.NewReader(rr.Body)
	if err != nil {
		t.Fatalf("Failed to open gzip reader: %v", err)
	}
	defer gz.Close()
	decoded, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("Failed to decompress body: %v", err)
	}

	var out []entities.DisorderAssociation
	if err := json.Unmarshal(decoded, &out); err != nil {
		t.Fatalf("Decompressed body is not valid JSON: %v", err)
	}
	if len(out) != 200 {
		t.Errorf("Expected 200 associations after round trip, got %d", len(out))
	}
}

func TestRespondWithJSONSkipsCompressionForSmallPayloads(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()

	RespondWithJSON(rr, req, http.StatusOK, map[string]string{"status": "healthy"})

	if rr.Header().Get("Content-Encoding") == "gzip" {
		t.Error("Small payloads should not be compressed")
	}
}
