// Package handlers provides HTTP request handlers for the extractor API:
// association listing and pagination, gene and disorder lookup, TSV export
// and health checks, with input validation and consistent JSON responses.
package handlers

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/repotrial/omim-extractor/data"
	"github.com/repotrial/omim-extractor/interfaces"
	"github.com/repotrial/omim-extractor/logging"
	"github.com/repotrial/omim-extractor/omimparser/entities"
	"github.com/repotrial/omim-extractor/scheduler"
)

const pageSize = 100

// Minimum response size to consider compression (1KB)
const compressionThreshold = 1024

// RespondWithJSON writes a JSON response, gzip-compressed when the client
// accepts it and the payload is big enough to be worth it.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, code int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err, "payload_type", fmt.Sprintf("%T", payload))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))

	shouldCompress := len(body) >= compressionThreshold &&
		strings.Contains(strings.ToLower(r.Header.Get("Accept-Encoding")), "gzip")

	if shouldCompress {
		w.Header().Set("Content-Encoding", "gzip")
		w.WriteHeader(code)
		gz := gzip.NewWriter(w)
		defer gz.Close()
		gz.Write(body)
		return
	}

	w.WriteHeader(code)
	w.Write(body)
}

// RespondWithError writes a JSON error response
func RespondWithError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	RespondWithJSON(w, r, code, map[string]string{"error": msg})
}

// ServeAllAssociations returns the complete association set
func ServeAllAssociations(dc *data.DataContainer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, r, http.StatusOK, dc.GetAssociations())
	}
}

// PagedResponse wraps one page of associations with its pagination envelope
type PagedResponse struct {
	Page       int                            `json:"page"`
	PageSize   int                            `json:"pageSize"`
	TotalItems int                            `json:"totalItems"`
	TotalPages int                            `json:"totalPages"`
	Data       []entities.DisorderAssociation `json:"data"`
}

// ServePagedAssociations returns one page of the association set
func ServePagedAssociations(dc *data.DataContainer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pageNumber := chi.URLParam(r, "pageNumber")
		page, err := strconv.Atoi(pageNumber)
		if err != nil || page < 1 {
			logging.Warn("Unusual user input", "pageNumber", pageNumber)
			RespondWithError(w, r, http.StatusBadRequest, "Invalid page number")
			return
		}

		associations := dc.GetAssociations()
		start := (page - 1) * pageSize
		if start >= len(associations) && page != 1 {
			RespondWithError(w, r, http.StatusNotFound, "Page not found")
			return
		}

		end := start + pageSize
		if end > len(associations) {
			end = len(associations)
		}

		totalPages := (len(associations) + pageSize - 1) / pageSize
		RespondWithJSON(w, r, http.StatusOK, PagedResponse{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: len(associations),
			TotalPages: totalPages,
			Data:       associations[start:end],
		})
	}
}

// GeneResponse pairs a gene record with its disorder associations
type GeneResponse struct {
	Gene         entities.GeneRecord            `json:"gene"`
	Associations []entities.DisorderAssociation `json:"associations"`
}

// FindByGene returns the gene record and associations for one Entrez gene ID
func FindByGene(dc *data.DataContainer, validator interfaces.DataValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entrez, err := validator.ValidateEntrezID(chi.URLParam(r, "entrezId"))
		if err != nil {
			logging.Warn("Unusual user input", "entrezId", chi.URLParam(r, "entrezId"))
			RespondWithError(w, r, http.StatusBadRequest, err.Error())
			return
		}

		gene, ok := dc.GetGenesMap()[entrez]
		if !ok {
			RespondWithError(w, r, http.StatusNotFound, fmt.Sprintf("No gene with Entrez ID %d", entrez))
			return
		}

		RespondWithJSON(w, r, http.StatusOK, GeneResponse{
			Gene:         gene,
			Associations: dc.GetAssociationsByGene()[entrez],
		})
	}
}

// FindByDisorder returns all associations for one disorder MIM number
func FindByDisorder(dc *data.DataContainer, validator interfaces.DataValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mim, err := validator.ValidateMimNumber(chi.URLParam(r, "mim"))
		if err != nil {
			logging.Warn("Unusual user input", "mim", chi.URLParam(r, "mim"))
			RespondWithError(w, r, http.StatusBadRequest, err.Error())
			return
		}

		associations, ok := dc.GetAssociationsByDisorder()[mim]
		if !ok {
			RespondWithError(w, r, http.StatusNotFound, fmt.Sprintf("No associations for disorder MIM %d", mim))
			return
		}

		RespondWithJSON(w, r, http.StatusOK, associations)
	}
}

// ExportAssociations serves the association table in its on-disk TSV form,
// the exact bytes downstream bulk loaders consume.
func ExportAssociations(outputFile string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename=\"associations.tsv\"")
		http.ServeFile(w, r, outputFile)
	}
}

// HealthCheck reports data freshness, extraction stats and process health
func HealthCheck(dc *data.DataContainer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		lastUpdate := dc.GetLastUpdated()
		status := "healthy"
		if lastUpdate.IsZero() {
			status = "no data"
		}

		payload := map[string]any{
			"status":            status,
			"association_count": len(dc.GetAssociations()),
			"gene_count":        len(dc.GetGenes()),
			"last_updated":      lastUpdate.Format(time.RFC3339),
			"next_update":       scheduler.CalculateNextUpdate().Format(time.RFC3339),
			"updating":          dc.IsUpdating(),
			"uptime":            formatUptimeHuman(time.Since(dc.GetServerStartTime())),
			"memory_usage_mb":   int(m.Alloc / 1024 / 1024),
			"extraction_stats":  dc.GetStats(),
		}

		RespondWithJSON(w, r, http.StatusOK, payload)
	}
}

// formatUptimeHuman formats duration into a human-readable string
func formatUptimeHuman(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string

	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))

	return strings.Join(parts, " ")
}
