package signin

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"authflow/internal/models"
	"authflow/internal/router"
	"authflow/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var _ ISignIn = Service{}

type recordingNotifier struct {
	successes []string
}

func (n *recordingNotifier) Success(title string, _ string) {
	n.successes = append(n.successes, title)
}

func (n *recordingNotifier) Error(string, string) {}

type failingPersister struct{}

func (failingPersister) Save(context.Context, models.AuthSession) error {
	return errors.New("disk full")
}

func (failingPersister) Load(context.Context, string) (models.AuthSession, bool, error) {
	return models.AuthSession{}, false, nil
}

func (failingPersister) Delete(context.Context, string) error {
	return nil
}

func (failingPersister) Close() error {
	return nil
}

func newTestLogin(t *testing.T, expiresAt time.Time) models.LoginResult {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	return models.LoginResult{
		AccessToken:  token,
		RefreshToken: "refresh",
		User:         models.Employee{ID: 7, Name: "Test User", Email: "user@example.com"},
	}
}

func newTestService(persister session.IPersister) (Service, *session.Store, *router.History, *recordingNotifier) {
	store := session.NewStore()
	history := router.NewHistory(zap.NewNop())
	notify := &recordingNotifier{}
	return Service{
		Store:     store,
		Persister: persister,
		Navigator: history,
		Notifier:  notify,
		Logger:    zap.NewNop(),
	}, store, history, notify
}

func TestSignInUser(t *testing.T) {
	ctx := context.Background()

	t.Run("should establish the session and navigate to the redirect", func(t *testing.T) {
		service, store, history, notify := newTestService(nil)
		store.SetMfa(models.OtpVerificationResult{MFAEnabled: true})
		expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)

		err := service.SignInUser(ctx, newTestLogin(t, expiresAt), "/", true)

		require.NoError(t, err)
		auth, ok := store.Auth()
		require.True(t, ok)
		assert.Equal(t, "user@example.com", auth.Email)
		assert.Equal(t, "refresh", auth.RefreshToken)
		assert.True(t, auth.Remember)
		assert.True(t, expiresAt.Equal(auth.ExpiresAt))

		_, ok = store.MFA()
		assert.False(t, ok)
		assert.Equal(t, []string{"/"}, history.Paths())
		assert.Len(t, notify.successes, 1)
	})

	t.Run("should keep signing in with an opaque access token", func(t *testing.T) {
		service, store, history, _ := newTestService(nil)

		err := service.SignInUser(ctx, models.LoginResult{AccessToken: "opaque"}, "/", false)

		require.NoError(t, err)
		auth, ok := store.Auth()
		require.True(t, ok)
		assert.True(t, auth.ExpiresAt.IsZero())
		assert.Equal(t, "/", history.Current())
	})

	t.Run("should persist a remembered session", func(t *testing.T) {
		persister := session.NewFilesystemPersister(models.FilesystemSessionConfiguration{
			Directory: filepath.Join(t.TempDir(), "sessions"),
		})
		service, _, _, _ := newTestService(persister)

		require.NoError(t, service.SignInUser(ctx, newTestLogin(t, time.Now().Add(time.Hour)), "/", true))

		loaded, ok, err := persister.Load(ctx, "user@example.com")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "refresh", loaded.RefreshToken)
	})

	t.Run("should not persist when remember is off", func(t *testing.T) {
		persister := session.NewFilesystemPersister(models.FilesystemSessionConfiguration{
			Directory: filepath.Join(t.TempDir(), "sessions"),
		})
		service, _, _, _ := newTestService(persister)

		require.NoError(t, service.SignInUser(ctx, newTestLogin(t, time.Now().Add(time.Hour)), "/", false))

		_, ok, err := persister.Load(ctx, "user@example.com")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("should not navigate when the session cannot be remembered", func(t *testing.T) {
		service, store, history, notify := newTestService(failingPersister{})
		store.SetMfa(models.OtpVerificationResult{MFAEnabled: true, MFAQRCode: "otpauth://totp/a"})

		err := service.SignInUser(ctx, newTestLogin(t, time.Now().Add(time.Hour)), "/", true)

		assert.ErrorContains(t, err, "disk full")
		assert.Empty(t, history.Paths())
		assert.Empty(t, notify.successes)
		_, ok := store.Auth()
		assert.False(t, ok)
		state, ok := store.MFA()
		require.True(t, ok)
		assert.Equal(t, models.MFAState{MFAEnabled: true, MFAQRCode: "otpauth://totp/a"}, state)
	})
}

func TestRestoreAndSignOut(t *testing.T) {
	ctx := context.Background()
	persister := session.NewFilesystemPersister(models.FilesystemSessionConfiguration{
		Directory: filepath.Join(t.TempDir(), "sessions"),
	})

	first, _, _, _ := newTestService(persister)
	require.NoError(t, first.SignInUser(ctx, newTestLogin(t, time.Now().Add(time.Hour)), "/", true))

	t.Run("should restore a remembered session in a new store", func(t *testing.T) {
		second, store, _, _ := newTestService(persister)

		restored, ok, err := second.Restore(ctx, "User@Example.com")

		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "user@example.com", restored.Email)
		_, ok = store.Auth()
		assert.True(t, ok)
	})

	t.Run("should forget the session on sign out", func(t *testing.T) {
		third, store, _, _ := newTestService(persister)
		_, _, err := third.Restore(ctx, "user@example.com")
		require.NoError(t, err)

		require.NoError(t, third.SignOut(ctx))

		_, ok := store.Auth()
		assert.False(t, ok)
		_, ok, err = persister.Load(ctx, "user@example.com")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("should report nothing to restore without a persister", func(t *testing.T) {
		service, _, _, _ := newTestService(nil)

		_, ok, err := service.Restore(ctx, "user@example.com")

		require.NoError(t, err)
		assert.False(t, ok)
	})
}
