package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"SpotWatch/internal/ingest"
	"SpotWatch/internal/zone"
)

// Scheduler runs the ingest pipeline on a cron schedule (watch mode).
type Scheduler struct {
	Cron     *cron.Cron
	Ingestor *ingest.Ingestor
	Zones    []zone.Zone
	Hours    int
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, in *ingest.Ingestor, zones []zone.Zone, hours int) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Ingestor: in,
		Zones:    zones,
		Hours:    hours,
		Ctx:      ctx,
	}
}

// Register adds the periodic fetch task.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.fetchTask); err != nil {
		return fmt.Errorf("register fetch task: %w", err)
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

// RunNow executes the fetch task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.fetchTask()
}

func (s *Scheduler) fetchTask() {
	start := time.Now().UTC().Truncate(time.Hour)
	end := start.Add(time.Duration(s.Hours) * time.Hour)

	log.Printf("[INFO] scheduled fetch: %d zones, %s to %s",
		len(s.Zones), start.Format(time.RFC3339), end.Format(time.RFC3339))

	sum, err := s.Ingestor.Run(s.Ctx, s.Zones, start, end)
	if err != nil {
		log.Printf("[WARN] scheduled fetch failed: %v", err)
		return
	}
	log.Printf("[INFO] scheduled fetch done: %d zones ok, %d empty, %d failed, %d points",
		sum.ZonesFetched, sum.ZonesEmpty, sum.ZonesFailed, sum.PointsStored)
}
