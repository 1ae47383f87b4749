package worker

import (
	"context"
	"time"

	"github.com/7Pranavv/Evenoo/pkg/logger"

	"go.uber.org/zap"
)

// EventCompleter moves live events whose end date has passed to completed.
type EventCompleter interface {
	CompletePastEvents(ctx context.Context, now time.Time) (int, error)
}

type EventCompletionWorker struct {
	completer EventCompleter
	interval  time.Duration
	now       func() time.Time
}

func NewEventCompletionWorker(completer EventCompleter, interval time.Duration) *EventCompletionWorker {
	return &EventCompletionWorker{
		completer: completer,
		interval:  interval,
		now:       time.Now,
	}
}

// Start runs one sweep immediately and then one per interval until ctx is done.
func (w *EventCompletionWorker) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.sweep(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.sweep(ctx)
			}
		}
	}()
}

func (w *EventCompletionWorker) sweep(ctx context.Context) {
	log := logger.WithComponent("worker")
	n, err := w.completer.CompletePastEvents(ctx, w.now())
	if err != nil {
		log.Error("complete past events", zap.Error(err))
		return
	}
	if n > 0 {
		log.Info("completed past events", zap.Int("count", n))
	}
}
