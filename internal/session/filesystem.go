package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"authflow/internal/models"

	"go.uber.org/zap"
)

// FilesystemPersister stores one JSON file per remembered email.
type FilesystemPersister struct {
	directory string
}

func NewFilesystemPersister(config models.FilesystemSessionConfiguration) *FilesystemPersister {
	if err := os.MkdirAll(config.Directory, 0750); err != nil {
		zap.L().Fatal("Failed to create session directory", zap.Error(err))
	}
	return &FilesystemPersister{directory: config.Directory}
}

func (f *FilesystemPersister) path(email string) string {
	return filepath.Join(f.directory, url.PathEscape(strings.ToLower(email))+".json")
}

func (f *FilesystemPersister) Save(_ context.Context, session models.AuthSession) error {
	content, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	path := f.path(session.Email)
	if err = os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	zap.L().Debug("Session written to filesystem",
		zap.String("path", path),
		zap.String("email", session.Email),
	)

	return nil
}

func (f *FilesystemPersister) Load(ctx context.Context, email string) (models.AuthSession, bool, error) {
	content, err := os.ReadFile(f.path(email))
	if errors.Is(err, fs.ErrNotExist) {
		return models.AuthSession{}, false, nil
	}
	if err != nil {
		return models.AuthSession{}, false, fmt.Errorf("failed to read session file: %w", err)
	}

	var session models.AuthSession
	if err = json.Unmarshal(content, &session); err != nil {
		return models.AuthSession{}, false, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if session.IsExpired(time.Now()) {
		return models.AuthSession{}, false, f.Delete(ctx, email)
	}
	return session, true, nil
}

func (f *FilesystemPersister) Delete(_ context.Context, email string) error {
	err := os.Remove(f.path(email))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

func (f *FilesystemPersister) Close() error {
	return nil
}
