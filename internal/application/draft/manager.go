package draft

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/erp/posterminal/internal/domain/shared"
	"go.uber.org/zap"
)

// Manager hands out one debounced draft store per key so independent
// screens (a sale form, a settings wizard) each keep their own draft
// without stepping on each other's save timers.
type Manager struct {
	mu       sync.Mutex
	store    shared.LocalStore
	logger   *zap.Logger
	debounce time.Duration
	stores   map[string]*Store[json.RawMessage]
}

// NewManager creates a draft manager. The debounce applies to every
// store it creates; zero means DefaultDebounce.
func NewManager(store shared.LocalStore, debounce time.Duration, logger *zap.Logger) *Manager {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Manager{
		store:    store,
		logger:   logger,
		debounce: debounce,
		stores:   make(map[string]*Store[json.RawMessage]),
	}
}

// Get returns the draft store for key, creating it on first use
func (m *Manager) Get(ctx context.Context, key string) *Store[json.RawMessage] {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[key]; ok {
		return s
	}
	s := NewStore[json.RawMessage](ctx, m.store, key, m.logger, WithDebounce(m.debounce))
	m.stores[key] = s
	return s
}

// Close stops every managed store, dropping unflushed writes
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.stores {
		s.Close()
	}
	m.stores = make(map[string]*Store[json.RawMessage])
}
