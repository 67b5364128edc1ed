package pos

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/erp/posterminal/internal/domain/pos"
	"github.com/erp/posterminal/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SessionService owns the terminal's sale windows and mirrors every change
// to the local store so a restart restores in-progress sales. Store I/O is
// best-effort: a failed mirror write is logged, never surfaced, because the
// in-memory session stays correct either way.
type SessionService struct {
	mu      sync.Mutex
	session *pos.Session
	store   shared.LocalStore
	logger  *zap.Logger
}

// NewSessionService creates a session service with a single default window
func NewSessionService(store shared.LocalStore, logger *zap.Logger) *SessionService {
	return &SessionService{
		session: pos.NewSession(),
		store:   store,
		logger:  logger,
	}
}

// InitializeFromStorage replaces the session atomically with the snapshot
// found in the local store. A missing snapshot keeps the default session;
// a corrupt one is logged and discarded.
func (s *SessionService) InitializeFromStorage(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.store.Get(ctx, shared.KeySaleWindows)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Failed to read sale window snapshot", zap.Error(err))
		}
		return
	}

	var snap pos.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.logger.Warn("Discarding corrupt sale window snapshot", zap.Error(err))
		return
	}
	s.session.Restore(snap)
	s.logger.Info("Restored sale windows from storage", zap.Int("windows", len(snap.Windows)))
}

// AddWindow appends a new sale window and returns a copy of it
func (s *SessionService) AddWindow(ctx context.Context) pos.SaleWindow {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.session.AddWindow()
	s.persist(ctx)
	return copyWindow(w)
}

// UpdateWindow merges partial fields into the window matching id.
// An unknown id is a silent no-op.
func (s *SessionService) UpdateWindow(ctx context.Context, id string, patch pos.WindowPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.UpdateWindow(id, patch)
	s.persist(ctx)
}

// CloseWindow removes the window matching id; the session recreates a
// default window when the last one is closed.
func (s *SessionService) CloseWindow(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.CloseWindow(id); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// Activate makes the window matching id the active one
func (s *SessionService) Activate(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.Activate(id); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// AddItem appends a line item to the window matching windowID
func (s *SessionService) AddItem(ctx context.Context, windowID string, item pos.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.session.Window(windowID)
	if w == nil {
		return shared.ErrWindowNotFound
	}
	if err := w.AddItem(item); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// UpdateItemQuantity sets the quantity of a line in the window matching windowID
func (s *SessionService) UpdateItemQuantity(ctx context.Context, windowID, productRef string, quantity decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.session.Window(windowID)
	if w == nil {
		return shared.ErrWindowNotFound
	}
	if err := w.UpdateItemQuantity(productRef, quantity); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// RemoveItem removes a line from the window matching windowID
func (s *SessionService) RemoveItem(ctx context.Context, windowID, productRef string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.session.Window(windowID)
	if w == nil {
		return shared.ErrWindowNotFound
	}
	if err := w.RemoveItem(productRef); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// SetWindowStatus transitions the status of the window matching windowID
func (s *SessionService) SetWindowStatus(ctx context.Context, windowID string, status pos.WindowStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.session.Window(windowID)
	if w == nil {
		return shared.ErrWindowNotFound
	}
	if err := w.SetStatus(status); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// Windows returns copies of all windows in insertion order
func (s *SessionService) Windows() []pos.SaleWindow {
	s.mu.Lock()
	defer s.mu.Unlock()

	windows := s.session.Windows()
	out := make([]pos.SaleWindow, 0, len(windows))
	for _, w := range windows {
		out = append(out, copyWindow(w))
	}
	return out
}

// Window returns a copy of the window matching id
func (s *SessionService) Window(id string) (pos.SaleWindow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.session.Window(id)
	if w == nil {
		return pos.SaleWindow{}, false
	}
	return copyWindow(w), true
}

// ActiveID returns the id of the active window
func (s *SessionService) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session.ActiveID()
}

// Reset discards all windows (logout) and removes the stored snapshot
func (s *SessionService) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = pos.NewSession()
	if err := s.store.Delete(ctx, shared.KeySaleWindows); err != nil {
		s.logger.Warn("Failed to remove sale window snapshot", zap.Error(err))
	}
}

// persist mirrors the session snapshot to the local store.
// Caller must hold s.mu.
func (s *SessionService) persist(ctx context.Context) {
	snap := s.session.Snapshot()
	raw, err := json.Marshal(snap)
	if err != nil {
		s.logger.Warn("Failed to encode sale window snapshot", zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, shared.KeySaleWindows, raw); err != nil {
		s.logger.Warn("Failed to write sale window snapshot", zap.Error(err))
	}
}

func copyWindow(w *pos.SaleWindow) pos.SaleWindow {
	out := *w
	out.Items = make([]pos.LineItem, len(w.Items))
	copy(out.Items, w.Items)
	return out
}
