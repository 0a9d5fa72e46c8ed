package core

import (
	"authflow/internal/configuration"
	"authflow/internal/models"
	"authflow/internal/session"

	"go.uber.org/zap"
)

// NewSessionPersister returns the remembered-session backend, or nil when
// sessions only live in memory.
func NewSessionPersister(config models.SessionConfiguration) session.IPersister {
	switch config.Type {
	case configuration.SessionTypeFilesystem:
		return session.NewFilesystemPersister(*config.Filesystem)
	case configuration.SessionTypeRedis:
		persister, err := session.NewRedisPersister(*config.Redis)
		if err != nil {
			zap.L().Fatal("Failed to create session persister", zap.String("type", config.Type), zap.Error(err))
		}
		return persister
	case configuration.SessionTypeValkey:
		persister, err := session.NewValkeyPersister(*config.Valkey)
		if err != nil {
			zap.L().Fatal("Failed to create session persister", zap.String("type", config.Type), zap.Error(err))
		}
		return persister
	default:
		return nil
	}
}
