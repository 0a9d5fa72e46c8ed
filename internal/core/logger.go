package core

import (
	"go.uber.org/zap"
)

// NewLogger replaces the global logger with a production logger at level.
// An unknown level keeps info.
func NewLogger(level string) {
	config := zap.NewProductionConfig()

	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		zap.L().Warn("Invalid log level, falling back to info", zap.String("level", level), zap.Error(err))
		atomicLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	config.Level = atomicLevel

	logger, err := config.Build()
	if err != nil {
		zap.L().Fatal("Failed to build logger", zap.Error(err))
	}
	zap.ReplaceGlobals(logger)
}
