package core

import (
	"authflow/internal/activity"
	"authflow/internal/models"
)

// NewActivityLogger returns the attempt history, or nil when it is disabled.
func NewActivityLogger(config models.ActivityConfiguration) activity.IActivityLogger {
	if !config.Enabled {
		return nil
	}
	return activity.NewFilesystemClient(config)
}
