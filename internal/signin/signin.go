package signin

import (
	"context"
	"fmt"

	"authflow/internal/configuration"
	h "authflow/internal/helpers"
	"authflow/internal/models"
	"authflow/internal/notifier"
	"authflow/internal/router"
	"authflow/internal/session"

	"go.uber.org/zap"
)

// ISignIn completes authentication once both factors have been verified.
type ISignIn interface {
	SignInUser(ctx context.Context, login models.LoginResult, redirect string, remember bool) error
}

// Service establishes the authenticated session and leaves the MFA screen.
// Persister is nil when sessions are kept in memory only.
type Service struct {
	Store     session.IStore
	Persister session.IPersister
	Navigator router.INavigator
	Notifier  notifier.INotifier
	Logger    *zap.Logger
}

func (s Service) SignInUser(ctx context.Context, login models.LoginResult, redirect string, remember bool) error {
	authSession := models.AuthSession{
		Email:        login.User.Email,
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
		User:         login.User,
		Remember:     remember,
	}

	expiresAt, err := h.AccessTokenExpiry(login.AccessToken)
	if err != nil {
		s.Logger.Warn("Unable to read access token expiry", zap.Error(err))
	} else {
		authSession.ExpiresAt = expiresAt
	}

	// The store is only touched once the session is remembered, so a failed
	// save leaves the MFA step in place.
	if remember && s.Persister != nil {
		if err = s.Persister.Save(ctx, authSession); err != nil {
			return fmt.Errorf("failed to remember session: %w", err)
		}
	}

	s.Store.SetAuth(authSession)
	s.Store.ClearMfa()

	s.Logger.Info("User signed in",
		zap.String("email", authSession.Email),
		zap.Bool("remember", remember),
	)

	if s.Notifier != nil {
		s.Notifier.Success(configuration.TitleSignedIn, "")
	}
	s.Navigator.Navigate(redirect)
	return nil
}

// Restore loads a remembered session for email into the store.
func (s Service) Restore(ctx context.Context, email string) (models.AuthSession, bool, error) {
	if s.Persister == nil {
		return models.AuthSession{}, false, nil
	}

	authSession, ok, err := s.Persister.Load(ctx, email)
	if err != nil || !ok {
		return models.AuthSession{}, false, err
	}

	s.Store.SetAuth(authSession)
	s.Logger.Info("Remembered session restored", zap.String("email", authSession.Email))
	return authSession, true, nil
}

// SignOut drops the authenticated session, including its remembered copy.
func (s Service) SignOut(ctx context.Context) error {
	authSession, ok := s.Store.Auth()
	if !ok {
		return nil
	}

	s.Store.ClearAuth()
	if s.Persister != nil {
		return s.Persister.Delete(ctx, authSession.Email)
	}
	return nil
}
