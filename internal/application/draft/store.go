// Package draft is a generic autosave/recovery utility for long forms.
// Payloads are debounce-written to the local store under a caller-chosen
// key and offered back once on the next mount.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/erp/posterminal/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultDebounce is the default delay between the last change and the write
const DefaultDebounce = 2 * time.Second

// Snapshot is the stored shape of a draft
type Snapshot[T any] struct {
	Data      T         `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// Store persists drafts of T. All storage operations are best-effort:
// serialization or store failures are logged, never returned, and hasDraft
// degrades to false on read failure.
type Store[T any] struct {
	mu       sync.Mutex
	key      string
	store    shared.LocalStore
	logger   *zap.Logger
	debounce time.Duration
	enabled  bool
	hasDraft bool
	pending  *T
	timer    *time.Timer
	now      func() time.Time
}

// Option configures a Store
type Option func(*options)

type options struct {
	debounce time.Duration
	enabled  bool
}

// WithDebounce overrides the autosave debounce interval
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// WithEnabled sets the initial enabled state
func WithEnabled(enabled bool) Option {
	return func(o *options) {
		o.enabled = enabled
	}
}

// NewStore creates a draft store for key. hasDraft is computed once here
// from key presence, mirroring a form checking for a recoverable draft at
// mount.
func NewStore[T any](ctx context.Context, store shared.LocalStore, key string, logger *zap.Logger, opts ...Option) *Store[T] {
	o := options{
		debounce: DefaultDebounce,
		enabled:  true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store[T]{
		key:      key,
		store:    store,
		logger:   logger.With(zap.String("draft_key", key)),
		debounce: o.debounce,
		enabled:  o.enabled,
		now:      time.Now,
	}

	has, err := store.Has(ctx, key)
	if err != nil {
		s.logger.Warn("Failed to check for existing draft", zap.Error(err))
		has = false
	}
	s.hasDraft = has && s.enabled
	return s
}

// HasDraft reports whether a recoverable draft exists
func (s *Store[T]) HasDraft() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.hasDraft
}

// SetEnabled toggles autosave. Disabling cancels any scheduled write and
// forces hasDraft to false.
func (s *Store[T]) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enabled = enabled
	if !enabled {
		s.cancelTimerLocked()
		s.pending = nil
		s.hasDraft = false
	}
}

// Update records a data change. While enabled, a debounced write is
// scheduled: every change cancels the previous timer and restarts it, so
// only the most recent value within the debounce window reaches storage.
func (s *Store[T]) Update(data T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return
	}
	s.pending = &data

	s.cancelTimerLocked()
	s.timer = time.AfterFunc(s.debounce, s.flushPending)
}

// SaveNow writes the latest recorded data immediately, honoring the same
// enabled and data-presence guard as the debounced autosave.
func (s *Store[T]) SaveNow() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.pending == nil {
		return
	}
	s.cancelTimerLocked()
	s.writeLocked(*s.pending)
}

// Load reads the stored draft. The second return is false when no draft
// exists or the stored payload cannot be decoded.
func (s *Store[T]) Load(ctx context.Context) (Snapshot[T], bool) {
	var snap Snapshot[T]

	raw, err := s.store.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Failed to read draft", zap.Error(err))
		}
		s.mu.Lock()
		s.hasDraft = false
		s.mu.Unlock()
		return snap, false
	}
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.logger.Warn("Discarding corrupt draft", zap.Error(err))
		s.mu.Lock()
		s.hasDraft = false
		s.mu.Unlock()
		return Snapshot[T]{}, false
	}
	return snap, true
}

// Clear removes the draft and resets hasDraft, independent of enabled
func (s *Store[T]) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelTimerLocked()
	s.pending = nil
	if err := s.store.Delete(ctx, s.key); err != nil {
		s.logger.Warn("Failed to remove draft", zap.Error(err))
	}
	s.hasDraft = false
}

// Close cancels any scheduled write without flushing it
func (s *Store[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelTimerLocked()
	s.pending = nil
}

// flushPending is the debounce timer callback
func (s *Store[T]) flushPending() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.pending == nil {
		return
	}
	s.writeLocked(*s.pending)
}

// writeLocked serializes and stores the draft. Caller must hold s.mu.
func (s *Store[T]) writeLocked(data T) {
	snap := Snapshot[T]{
		Data:      data,
		Timestamp: s.now(),
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		s.logger.Warn("Failed to encode draft", zap.Error(err))
		return
	}
	if err := s.store.Set(context.Background(), s.key, raw); err != nil {
		s.logger.Warn("Failed to write draft", zap.Error(err))
		return
	}
	s.hasDraft = true
}

// cancelTimerLocked stops a scheduled write. Caller must hold s.mu.
func (s *Store[T]) cancelTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
