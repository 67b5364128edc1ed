package pos

import (
	"context"
	"errors"
	"sync"

	"github.com/erp/posterminal/internal/application/notify"
	"github.com/erp/posterminal/internal/domain/pos"
	"github.com/erp/posterminal/internal/domain/shared"
	"go.uber.org/zap"
)

// RegisterService drives the cash register shift lifecycle. The backend
// record is authoritative: sync overwrites the local projection keyed by
// register id and never merges two different ids. The last-synced id guard
// keeps a stale in-flight response from clobbering a more recently opened
// register with older data.
type RegisterService struct {
	mu           sync.Mutex
	gateway      pos.RegisterGateway
	store        shared.LocalStore
	notifier     notify.Notifier
	logger       *zap.Logger
	current      *pos.CashRegister
	lastSyncedID string
}

// NewRegisterService creates a register service
func NewRegisterService(gateway pos.RegisterGateway, store shared.LocalStore, notifier notify.Notifier, logger *zap.Logger) *RegisterService {
	return &RegisterService{
		gateway:  gateway,
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Open opens a new register shift for a PDV. On success the returned
// register becomes the local projection and the PDV id is persisted for
// reference after a restart.
func (s *RegisterService) Open(ctx context.Context, params pos.OpenRegisterParams) (*pos.CashRegister, error) {
	register, err := s.gateway.OpenRegister(ctx, params)
	if err != nil {
		s.notifier.Error(shared.ServerMessage(err, "Could not open the cash register"))
		return nil, err
	}

	s.mu.Lock()
	s.current = register
	s.lastSyncedID = register.ID
	s.mu.Unlock()

	if err := s.store.Set(ctx, shared.KeyCurrentPDVID, []byte(params.PDVID)); err != nil {
		s.logger.Warn("Failed to persist current PDV id", zap.Error(err))
	}

	s.notifier.Success("Cash register opened")
	s.logger.Info("Register opened",
		zap.String("register_id", register.ID),
		zap.String("pdv_id", register.PDVID),
	)
	out := *register
	return &out, nil
}

// Sync reconciles local state against the backend's current open register
// for the PDV. A not-found answer is the valid, silent "no register open"
// state. Any other failure is surfaced as a notification and leaves local
// state untouched so the UI is never blocked on a flaky network.
func (s *RegisterService) Sync(ctx context.Context, pdvID string) {
	register, err := s.gateway.CurrentRegister(ctx, pdvID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.mu.Lock()
			s.current = nil
			s.lastSyncedID = ""
			s.mu.Unlock()
			return
		}
		s.logger.Warn("Register sync failed", zap.String("pdv_id", pdvID), zap.Error(err))
		s.notifier.Error(shared.ServerMessage(err, "Could not refresh the cash register state"))
		return
	}

	if !register.IsOpen() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Same id as the last sync means nothing changed server-side;
	// skip the redundant write.
	if register.ID == s.lastSyncedID {
		return
	}
	s.current = register
	s.lastSyncedID = register.ID
	s.logger.Info("Register state overwritten from backend",
		zap.String("register_id", register.ID),
		zap.String("pdv_id", register.PDVID),
	)
}

// SyncCurrent syncs against the persisted PDV id; a terminal without a
// remembered PDV has nothing to reconcile.
func (s *RegisterService) SyncCurrent(ctx context.Context) {
	pdvID := s.CurrentPDVID(ctx)
	if pdvID == "" {
		return
	}
	s.Sync(ctx, pdvID)
}

// CloseResult carries what a UI needs after a successful close: the closed
// register and the id addressing its daily report view.
type CloseResult struct {
	Register *pos.CashRegister
	ReportID string
}

// Close closes the current register shift. On success the closed register
// id is recorded for later report retrieval; on failure local state stays
// unchanged - there is no partial close.
func (s *RegisterService) Close(ctx context.Context, params pos.CloseRegisterParams) (*CloseResult, error) {
	register, err := s.gateway.CloseRegister(ctx, params)
	if err != nil {
		s.notifier.Error(shared.ServerMessage(err, "Could not close the cash register"))
		return nil, err
	}

	s.mu.Lock()
	s.current = nil
	s.lastSyncedID = ""
	s.mu.Unlock()

	if err := s.store.Set(ctx, shared.KeyLastClosedRegisterID, []byte(register.ID)); err != nil {
		s.logger.Warn("Failed to persist last closed register id", zap.Error(err))
	}

	s.notifier.Success("Cash register closed")
	s.logger.Info("Register closed", zap.String("register_id", register.ID))

	return &CloseResult{Register: register, ReportID: register.ID}, nil
}

// ValidateForOperation checks that a sale (or any operation needing an open
// shift) can proceed. It emits a warning when no register is open and an
// error when the local register state is corrupt, returning false either
// way so the caller refuses the operation before any network call.
func (s *RegisterService) ValidateForOperation() bool {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()

	switch err := current.ValidateForOperation(); {
	case err == nil:
		return true
	case errors.Is(err, shared.ErrRegisterStateCorrupt):
		s.notifier.Error("The cash register state is incomplete; please log out and back in")
		return false
	default:
		s.notifier.Warning("Open a cash register before recording sales")
		return false
	}
}

// Current returns a copy of the local register projection, or nil
func (s *RegisterService) Current() *pos.CashRegister {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	out := *s.current
	return &out
}

// HasOpenRegister reports whether an open register is known locally
func (s *RegisterService) HasOpenRegister() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current.IsOpen()
}

// CurrentPDVID returns the persisted PDV id, or empty
func (s *RegisterService) CurrentPDVID(ctx context.Context) string {
	raw, err := s.store.Get(ctx, shared.KeyCurrentPDVID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Failed to read current PDV id", zap.Error(err))
		}
		return ""
	}
	return string(raw)
}

// LastClosedRegisterID returns the persisted id of the last closed
// register, addressing its daily report, or empty
func (s *RegisterService) LastClosedRegisterID(ctx context.Context) string {
	raw, err := s.store.Get(ctx, shared.KeyLastClosedRegisterID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Failed to read last closed register id", zap.Error(err))
		}
		return ""
	}
	return string(raw)
}
