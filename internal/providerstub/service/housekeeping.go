package service

import (
	"log/slog"
	"time"
)

// DefaultSessionRetention is how long ended sessions stay visible before
// housekeeping drops them.
const DefaultSessionRetention = time.Hour

// HousekeepingService periodically purges abandoned attempts, ended sessions
// and stale verification codes so the in-memory state does not grow without
// bound.
type HousekeepingService struct {
	Service   *Service
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 minute.
func NewHousekeepingService(svc *Service, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Minute
	}

	return &HousekeepingService{
		Service:   svc,
		Logger:    logger,
		Interval:  interval,
		Retention: DefaultSessionRetention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs cleanup.
// Call Stop() to gracefully shutdown the worker.
func (h *HousekeepingService) Start() {
	go h.run()
	h.Logger.Info("housekeeping service started", "interval", h.Interval)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress cleanup.
func (h *HousekeepingService) Stop() {
	close(h.stopCh)
	<-h.doneCh
	h.Logger.Info("housekeeping service stopped")
}

func (h *HousekeepingService) run() {
	defer close(h.doneCh)

	ticker := time.NewTicker(h.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.cleanup()
		case <-h.stopCh:
			return
		}
	}
}

func (h *HousekeepingService) cleanup() {
	stats := h.Service.Purge(h.Retention)
	if stats == (PurgeStats{}) {
		h.Logger.Debug("housekeeping cleanup found nothing to purge")
		return
	}
	h.Logger.Info("housekeeping cleanup completed",
		"sign_ins", stats.SignIns,
		"sign_ups", stats.SignUps,
		"sessions", stats.Sessions,
		"codes", stats.Codes,
	)
}
