package workers

import (
	"context"
	goerrors "errors"
	"event-market/contract"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultRefreshInterval matches the period the chat screen polls at.
const DefaultRefreshInterval = time.Second

// RefreshWorker triggers a full refresh on every tick while an identity is
// present. Each tick runs in its own goroutine: a slow fetch does not delay
// the next one and nothing dedups overlapping fetches.
type RefreshWorker struct {
	log       *slog.Logger
	refresher contract.Refresher
	interval  time.Duration
	inFlight  sync.WaitGroup
}

func NewRefreshWorker(log *slog.Logger, refresher contract.Refresher, interval time.Duration) *RefreshWorker {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &RefreshWorker{log: log, refresher: refresher, interval: interval}
}

// Run returns once ctx is done and the in-flight ticks gave up.
func (w *RefreshWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer w.inFlight.Wait()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if w.refresher.Identity() == "" {
				continue
			}
			w.inFlight.Add(1)
			go w.tick(ctx)
		}
	}
}

// tick only logs failures, the previous conversations stay on screen.
func (w *RefreshWorker) tick(ctx context.Context) {
	defer w.inFlight.Done()
	tickID := uuid.NewString()

	err := w.refresher.Refresh(ctx)
	switch {
	case err == nil:
	case ctx.Err() != nil || goerrors.Is(err, context.Canceled):
		w.log.Debug("Refresh discarded", "tick_id", tickID)
	default:
		w.log.Warn("Refresh failed, keeping previous conversations", "tick_id", tickID, "err", err)
	}
}
