package localstore

import (
	"fmt"

	"github.com/erp/posterminal/internal/domain/shared"
	"github.com/erp/posterminal/internal/infrastructure/config"
	"go.uber.org/zap"
)

// New creates the shared.LocalStore selected by configuration.
// Supported backends: memory, file, sqlite, redis.
func New(cfg *config.Config, logger *zap.Logger) (shared.LocalStore, error) {
	switch cfg.LocalStore.Backend {
	case "memory":
		logger.Warn("Using in-memory local store; terminal state will not survive a restart")
		return NewMemoryStore(), nil
	case "file":
		store, err := NewFileStore(cfg.LocalStore.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to create file local store: %w", err)
		}
		logger.Info("Local store ready", zap.String("backend", "file"), zap.String("path", cfg.LocalStore.Path))
		return store, nil
	case "sqlite":
		store, err := NewSQLiteStore(cfg.LocalStore.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to create sqlite local store: %w", err)
		}
		logger.Info("Local store ready", zap.String("backend", "sqlite"), zap.String("path", cfg.LocalStore.Path))
		return store, nil
	case "redis":
		store, err := NewRedisStore(RedisConfig{
			Addr:     cfg.Redis.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis local store: %w", err)
		}
		logger.Info("Local store ready", zap.String("backend", "redis"), zap.String("addr", cfg.Redis.RedisAddr()))
		return store, nil
	default:
		return nil, fmt.Errorf("unknown local store backend: %q", cfg.LocalStore.Backend)
	}
}
