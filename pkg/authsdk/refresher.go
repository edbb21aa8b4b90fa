package authsdk

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultRefreshInterval is how often the active session is touched.
const DefaultRefreshInterval = 5 * time.Minute

// refresher periodically runs tick while a session is active. It can be
// started and stopped any number of times; starting a running refresher is
// a no-op.
type refresher struct {
	interval time.Duration
	tick     func(ctx context.Context)
	logger   *slog.Logger

	mu     sync.Mutex
	stopCh chan struct{}
	doneCh chan struct{}
}

func newRefresher(interval time.Duration, tick func(ctx context.Context), logger *slog.Logger) *refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &refresher{interval: interval, tick: tick, logger: logger}
}

// start begins the background loop.
func (r *refresher) start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopCh != nil {
		return
	}
	r.stopCh = make(chan struct{})
	r.doneCh = make(chan struct{})
	go r.run(r.stopCh, r.doneCh)
	r.logger.Debug("session refresher started", "interval", r.interval)
}

// stop ends the loop without waiting. It is safe to call from tick.
func (r *refresher) stop() {
	r.halt()
}

// stopAndWait ends the loop and blocks until any in-flight tick finished.
// It must not be called from tick.
func (r *refresher) stopAndWait() {
	if done := r.halt(); done != nil {
		<-done
	}
}

func (r *refresher) halt() chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopCh == nil {
		return nil
	}
	close(r.stopCh)
	done := r.doneCh
	r.stopCh = nil
	r.doneCh = nil
	r.logger.Debug("session refresher stopped")
	return done
}

// running reports whether the loop is active.
func (r *refresher) running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopCh != nil
}

func (r *refresher) run(stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.tick(ctx)
		case <-stopCh:
			return
		}
	}
}
