package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// DraftSweeper evicts drafts idle for longer than maxIdle and reports how many went.
type DraftSweeper interface {
	Sweep(maxIdle time.Duration) int
}

// DraftSweepWorker drops abandoned admin drafts on a fixed interval.
type DraftSweepWorker struct {
	drafts   DraftSweeper
	interval time.Duration
	maxIdle  time.Duration
}

// NewDraftSweepWorker constructs a DraftSweepWorker.
func NewDraftSweepWorker(drafts DraftSweeper, interval, maxIdle time.Duration) *DraftSweepWorker {
	return &DraftSweepWorker{
		drafts:   drafts,
		interval: interval,
		maxIdle:  maxIdle,
	}
}

// Start begins the sweep loop and listens for context cancellation.
func (w *DraftSweepWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Dur("max_idle", w.maxIdle).Msg("Starting draft sweep worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run()
		case <-ctx.Done():
			log.Info().Msg("Draft sweep worker stopped")
			return
		}
	}
}

func (w *DraftSweepWorker) run() {
	if n := w.drafts.Sweep(w.maxIdle); n > 0 {
		log.Debug().Int("evicted", n).Msg("Swept idle drafts")
	}
}
