// Package settings persists the terminal's UI preferences blob. The
// terminal treats it as opaque JSON; only the UI assigns it meaning.
package settings

import (
	"context"
	"encoding/json"

	"github.com/erp/posterminal/internal/domain/shared"
	"go.uber.org/zap"
)

// Service reads and writes the settings blob in the local store
type Service struct {
	store  shared.LocalStore
	logger *zap.Logger
}

// NewService creates a settings service
func NewService(store shared.LocalStore, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Get returns the stored settings, or ErrNotFound when none are stored
func (s *Service) Get(ctx context.Context) (json.RawMessage, error) {
	raw, err := s.store.Get(ctx, shared.KeySettings)
	if err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		s.logger.Warn("Discarding corrupt settings blob")
		return nil, shared.ErrNotFound
	}
	return json.RawMessage(raw), nil
}

// Set replaces the stored settings
func (s *Service) Set(ctx context.Context, settings json.RawMessage) error {
	if !json.Valid(settings) {
		return shared.ErrInvalidInput
	}
	return s.store.Set(ctx, shared.KeySettings, settings)
}

// Clear removes the stored settings
func (s *Service) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, shared.KeySettings)
}
