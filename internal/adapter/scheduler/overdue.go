package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// OverdueMarker is implemented by the loan usecase.
type OverdueMarker interface {
	MarkOverdue(ctx context.Context, now time.Time) (int, error)
}

// OverdueScheduler runs the overdue sweep on a cron spec. The sweep itself is
// idempotent, so overlapping or repeated runs are harmless.
type OverdueScheduler struct {
	cron   *cron.Cron
	marker OverdueMarker
	spec   string
	log    *slog.Logger
}

func NewOverdueScheduler(marker OverdueMarker, spec string, log *slog.Logger) *OverdueScheduler {
	return &OverdueScheduler{
		cron:   cron.New(),
		marker: marker,
		spec:   spec,
		log:    log,
	}
}

func (s *OverdueScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("overdue scheduler started", "spec", s.spec)
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *OverdueScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *OverdueScheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	marked, err := s.marker.MarkOverdue(ctx, time.Now().UTC())
	if err != nil {
		s.log.Error("overdue sweep failed", "marked", marked, "error", err)
		return
	}
	if marked > 0 {
		s.log.Info("overdue sweep done", "marked", marked)
	}
}
