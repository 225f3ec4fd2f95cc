// Package scheduler runs the extraction pipeline on the OMIM refresh cadence
// and monitors data freshness. OMIM publishes updated files weekly, so the
// pipeline re-runs every Friday at 02:00 and swaps the result in atomically.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/repotrial/omim-extractor/interfaces"
	"github.com/repotrial/omim-extractor/logging"
	"github.com/repotrial/omim-extractor/metrics"
	"github.com/repotrial/omim-extractor/omimparser/entities"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Data older than this triggers staleness warnings (one weekly cycle plus slack)
const staleThreshold = 8 * 24 * time.Hour

// Scheduler handles data updates and health monitoring using dependency injection
type Scheduler struct {
	dataStore interfaces.DataStore
	parser    interfaces.Parser
	validator interfaces.DataValidator
	scheduler *gocron.Scheduler
	stopCh    chan struct{}
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(dataStore interfaces.DataStore, parser interfaces.Parser, validator interfaces.DataValidator) *Scheduler {
	return &Scheduler{
		dataStore: dataStore,
		parser:    parser,
		validator: validator,
		scheduler: gocron.NewScheduler(time.Local),
		stopCh:    make(chan struct{}),
	}
}

// Start performs the initial extraction and schedules the weekly refresh.
// A failed initial extraction is fatal; failed refreshes only log.
func (s *Scheduler) Start() error {
	if err := s.updateData(); err != nil {
		logging.Error("Failed to perform initial extraction", "error", err)
		return fmt.Errorf("initial extraction failed: %w", err)
	}

	_, err := s.scheduler.Every(1).Week().Friday().At("02:00").Do(func() {
		if err := s.updateData(); err != nil {
			logging.Error("Failed to update data", "error", err)
		}
	})

	if err != nil {
		logging.Error("Failed to schedule updates", "error", err)
		return fmt.Errorf("failed to schedule updates: %w", err)
	}

	s.scheduler.StartAsync()
	s.startHealthMonitoring()

	return nil
}

// Stop stops the scheduler and the health monitor
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	close(s.stopCh)
}

// updateData performs a complete extraction run using injected dependencies
func (s *Scheduler) updateData() error {
	// Prevent concurrent updates
	if !s.dataStore.BeginUpdate() {
		logging.Info("Update already in progress, skipping...")
		return nil
	}
	defer s.dataStore.EndUpdate()

	logging.Info("Starting extraction run", "time", time.Now().Format(time.RFC3339))
	start := time.Now()

	associations, genes, stats, err := s.parser.ParseAllAssociations()
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	for i := range associations {
		if err := s.validator.ValidateAssociation(&associations[i]); err != nil {
			return fmt.Errorf("extracted data failed validation: %w", err)
		}
	}

	report := s.validator.ReportDataQuality(associations, genes)
	if report.DuplicateKeys > 0 {
		return fmt.Errorf("extracted data contains %d duplicate association keys", report.DuplicateKeys)
	}
	logging.Info("Data quality report",
		"genemap2_only", report.GenemapOnly,
		"morbidmap_only", report.MorbidmapOnly,
		"asserted_by_both", report.AssertedByBoth,
		"genes_without_associations", report.GenesWithoutAssociations,
		"unknown_confidence", report.UnknownConfidence)

	// Atomic swap (zero downtime replacement)
	s.dataStore.UpdateData(associations, genes, *stats)

	elapsed := time.Since(start)
	s.recordMetrics(elapsed, stats)

	logging.Info("Extraction run swapped in",
		"duration", elapsed.String(),
		"association_count", len(associations),
		"gene_count", len(genes))

	return nil
}

func (s *Scheduler) recordMetrics(elapsed time.Duration, stats *entities.ExtractionStats) {
	metrics.ExtractionDuration.Set(elapsed.Seconds())
	metrics.AssociationsTotal.Set(float64(stats.TotalAssociations))
	metrics.RowsParsed.WithLabelValues("mim2gene").Set(float64(stats.Mim2GeneRows))
	metrics.RowsParsed.WithLabelValues("genemap2").Set(float64(stats.Genemap2Rows))
	metrics.RowsParsed.WithLabelValues("morbidmap").Set(float64(stats.MorbidmapRows))
	metrics.MalformedRowsTotal.Add(float64(stats.MalformedRows))
	metrics.MalformedMentionsTotal.Add(float64(stats.MalformedMentions))
	metrics.ResolutionFailuresTotal.Add(float64(stats.ResolutionFailures))
}

// startHealthMonitoring warns hourly when the data is older than one weekly
// refresh cycle.
func (s *Scheduler) startHealthMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				lastUpdate := s.dataStore.GetLastUpdated()
				if time.Since(lastUpdate) > staleThreshold {
					logging.Warn("Data hasn't been refreshed in over a week", "last_updated", lastUpdate.Format(time.RFC3339))
				}
			case <-s.stopCh:
				return
			}
		}
	}()
}

// CalculateNextUpdate returns the next Friday 02:00 refresh slot.
func CalculateNextUpdate() time.Time {
	now := time.Now()

	next := time.Date(now.Year(), now.Month(), now.Day(), 2, 0, 0, 0, now.Location())
	daysUntilFriday := (int(time.Friday) - int(now.Weekday()) + 7) % 7
	next = next.AddDate(0, 0, daysUntilFriday)

	if !next.After(now) {
		next = next.AddDate(0, 0, 7)
	}

	return next
}
