// Package scheduler runs the daily ingest on a cron timetable.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"SpotFetch/internal/export"
	"SpotFetch/internal/notifier"
	"SpotFetch/internal/pipeline"
	"SpotFetch/internal/stats"
)

// Scheduler manages the cron task for unattended ingestion.
type Scheduler struct {
	Cron     *cron.Cron
	Pipeline *pipeline.Pipeline
	Notifier *notifier.TelegramNotifier
	// CSVPath, when set, is rewritten with the new rows after each run.
	CSVPath string
	Ctx     context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, p *pipeline.Pipeline, tn *notifier.TelegramNotifier, csvPath string) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Pipeline: p,
		Notifier: tn,
		CSVPath:  csvPath,
		Ctx:      ctx,
	}
}

// Register adds the daily ingest task.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyIngest); err != nil {
		return fmt.Errorf("register daily ingest: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the ingest immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.dailyIngest()
}

// dailyIngest fetches from the last stored point to now, stores the rows,
// refreshes the CSV and sends a summary. Failures are reported, never
// fatal to the daemon.
func (s *Scheduler) dailyIngest() {
	log.Println("[INFO] running daily ingest")

	now := time.Now().UTC()
	start, err := s.Pipeline.NextStart(now)
	if err != nil {
		log.Printf("[ERROR] resolve start: %v", err)
		return
	}
	if !start.Before(now) {
		log.Println("[INFO] store is up to date, nothing to fetch")
		return
	}

	series, err := s.Pipeline.FetchAndStore(s.Ctx, start, now)
	if err != nil {
		log.Printf("[ERROR] daily ingest: %v", err)
		s.trySend(notifier.FormatFetchFailure(s.Pipeline.Indicator, err))
		return
	}
	log.Printf("[INFO] stored %d rows for indicator %d", len(series.Records), series.IndicatorID)
	if len(series.Records) == 0 {
		return
	}

	if s.CSVPath != "" {
		if err := export.WriteCSV(series, s.CSVPath); err != nil {
			log.Printf("[ERROR] refresh csv: %v", err)
		}
	}

	sum, err := stats.Summarize(series)
	if err != nil {
		log.Printf("[WARN] summarize: %v", err)
		return
	}
	s.trySend(notifier.FormatFetchSummary(series, sum))
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil || !s.Notifier.Enabled() {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
