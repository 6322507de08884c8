package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/couchcryptid/nwswx"
	"github.com/couchcryptid/nwswx/internal/observability"
)

const (
	// baseBackoff is the first retry delay after a failed poll. Retries double
	// from here up to the poll interval.
	baseBackoff = 5 * time.Second

	// maxConsecutiveFailures is how many polls may fail in a row before the
	// watcher reports itself unready.
	maxConsecutiveFailures = 3
)

// Envelope wraps an alert with the time the watcher first saw it.
type Envelope struct {
	Alert      nwswx.Alert
	ObservedAt time.Time
}

// Fetcher pulls the current set of active alerts.
type Fetcher interface {
	Fetch(ctx context.Context) ([]nwswx.Alert, error)
}

// Publisher delivers newly observed alerts downstream.
type Publisher interface {
	PublishBatch(ctx context.Context, envs []Envelope) error
}

// Watcher polls the alert feed and publishes alerts it has not seen before.
type Watcher struct {
	fetcher   Fetcher
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	seen      *lru.Cache[string, struct{}]
	interval  time.Duration
	ready     atomic.Bool
	failures  int
}

// New creates a Watcher polling at the given interval and remembering up to
// seenSize alert IDs for deduplication.
func New(f Fetcher, p Publisher, logger *slog.Logger, metrics *observability.Metrics, interval time.Duration, seenSize int) (*Watcher, error) {
	seen, err := lru.New[string, struct{}](seenSize)
	if err != nil {
		return nil, fmt.Errorf("create seen cache: %w", err)
	}
	return &Watcher{
		fetcher:   f,
		publisher: p,
		logger:    logger,
		metrics:   metrics,
		seen:      seen,
		interval:  interval,
	}, nil
}

// CheckReadiness returns nil once the watcher has a recent successful poll,
// or an error describing why the service is not yet ready.
func (w *Watcher) CheckReadiness(_ context.Context) error {
	if !w.ready.Load() {
		return errors.New("watcher has no recent successful poll")
	}
	return nil
}

// Run polls immediately and then at the configured interval until the context
// is cancelled. Failed polls retry with exponential backoff instead of waiting
// a full interval.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("watcher started", "interval", w.interval)
	defer w.metrics.WatcherReady.Set(0)

	backoff := min(baseBackoff, w.interval)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if err := w.poll(ctx); err != nil {
			if ctx.Err() != nil {
				w.logger.Info("watcher stopping", "reason", ctx.Err())
				return nil
			}

			w.failures++
			w.metrics.PollFailures.Inc()
			w.logger.Error("poll failed", "error", err, "consecutive_failures", w.failures)

			if w.failures >= maxConsecutiveFailures {
				w.ready.Store(false)
				w.metrics.WatcherReady.Set(0)
			}

			if !sleepWithContext(ctx, backoff) {
				return nil
			}
			backoff = nextBackoff(backoff, w.interval)
			continue
		}

		w.failures = 0
		backoff = min(baseBackoff, w.interval)
		w.ready.Store(true)
		w.metrics.WatcherReady.Set(1)

		if !sleepWithContext(ctx, w.interval) {
			w.logger.Info("watcher stopping", "reason", ctx.Err())
			return nil
		}
	}
}

// poll runs one fetch-dedup-publish cycle.
func (w *Watcher) poll(ctx context.Context) error {
	start := time.Now()
	w.metrics.Polls.Inc()

	alerts, err := w.fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch alerts: %w", err)
	}
	w.metrics.AlertsFetched.Add(float64(len(alerts)))

	observedAt := clock.Now().UTC()
	fresh := make([]Envelope, 0, len(alerts))
	for _, a := range alerts {
		if a.ID == "" || w.seen.Contains(a.ID) {
			continue
		}
		fresh = append(fresh, Envelope{Alert: a, ObservedAt: observedAt})
	}

	if len(fresh) > 0 {
		if err := w.publisher.PublishBatch(ctx, fresh); err != nil {
			w.metrics.PublishFailures.Inc()
			return fmt.Errorf("publish alerts: %w", err)
		}

		// Mark alerts seen only after a successful publish so a failed batch
		// is retried whole on the next poll.
		for _, env := range fresh {
			w.seen.Add(env.Alert.ID, struct{}{})
		}
		w.metrics.AlertsPublished.Add(float64(len(fresh)))
	}

	w.metrics.SeenCacheEntries.Set(float64(w.seen.Len()))
	w.logger.Debug("poll complete",
		"fetched", len(alerts),
		"published", len(fresh),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
