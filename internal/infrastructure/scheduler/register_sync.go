// Package scheduler runs the terminal's background loops.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Syncer reconciles local register state against the backend
type Syncer interface {
	SyncCurrent(ctx context.Context)
}

// RegisterSyncScheduler re-polls the register sync on a fixed interval to
// bound staleness against shifts opened or closed from another device. The
// SPA refreshed on window focus and network reconnect as well; headless,
// those become explicit Trigger calls from the control API.
type RegisterSyncScheduler struct {
	syncer   Syncer
	interval time.Duration
	logger   *zap.Logger

	trigger   chan struct{}
	stopChan  chan struct{}
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewRegisterSyncScheduler creates a sync scheduler
func NewRegisterSyncScheduler(syncer Syncer, interval time.Duration, logger *zap.Logger) *RegisterSyncScheduler {
	return &RegisterSyncScheduler{
		syncer:   syncer,
		interval: interval,
		logger:   logger,
		trigger:  make(chan struct{}, 1),
		stopChan: make(chan struct{}),
	}
}

// Start launches the background loop. An immediate first sync runs so the
// terminal reconciles on boot, then every interval or Trigger.
func (s *RegisterSyncScheduler) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		s.wg.Add(1)
		go s.run(ctx)
		s.logger.Info("Register sync scheduler started", zap.Duration("interval", s.interval))
	})
}

// Trigger requests an on-demand sync (the headless equivalent of the UI
// regaining focus or the network reconnecting). Coalesces when a trigger
// is already pending.
func (s *RegisterSyncScheduler) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Stop halts the loop and waits for it to finish. Safe to call multiple times.
func (s *RegisterSyncScheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Info("Register sync scheduler stopped")
	})
}

func (s *RegisterSyncScheduler) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.syncer.SyncCurrent(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.syncer.SyncCurrent(ctx)
		case <-s.trigger:
			s.syncer.SyncCurrent(ctx)
		}
	}
}
