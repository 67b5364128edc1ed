package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// maxPending caps the feed; a UI that never drains must not grow memory
const maxPending = 100

// Feed is a Notifier that buffers notifications for the UI to drain and
// mirrors every message to the structured log.
type Feed struct {
	mu      sync.Mutex
	pending []Notification
	logger  *zap.Logger
	now     func() time.Time
}

// NewFeed creates a notification feed
func NewFeed(logger *zap.Logger) *Feed {
	return &Feed{
		logger: logger,
		now:    time.Now,
	}
}

// Success emits a success notification
func (f *Feed) Success(message string) {
	f.logger.Info("Notification", zap.String("level", string(LevelSuccess)), zap.String("message", message))
	f.append(LevelSuccess, message)
}

// Warning emits a warning notification
func (f *Feed) Warning(message string) {
	f.logger.Warn("Notification", zap.String("level", string(LevelWarning)), zap.String("message", message))
	f.append(LevelWarning, message)
}

// Error emits an error notification
func (f *Feed) Error(message string) {
	f.logger.Error("Notification", zap.String("level", string(LevelError)), zap.String("message", message))
	f.append(LevelError, message)
}

// Drain returns the buffered notifications and empties the feed
func (f *Feed) Drain() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	pending := f.pending
	f.pending = nil
	return pending
}

func (f *Feed) append(level Level, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.pending) >= maxPending {
		f.pending = f.pending[1:]
	}
	f.pending = append(f.pending, Notification{
		Level:     level,
		Message:   message,
		CreatedAt: f.now(),
	})
}
