package session

import (
	"context"

	"authflow/internal/models"
)

// IStore holds the process-wide MFA slot and the authenticated session.
type IStore interface {
	// SetMfa stores the payload returned by a successful OTP verification.
	SetMfa(result models.OtpVerificationResult)
	// ReconnectMfa replaces the MFA slot, typically to restart authenticator enrollment.
	ReconnectMfa(state models.MFAState)
	MFA() (models.MFAState, bool)
	ClearMfa()

	SetAuth(session models.AuthSession)
	Auth() (models.AuthSession, bool)
	ClearAuth()
}

// IPersister keeps remembered sessions beyond the lifetime of the process.
type IPersister interface {
	Save(ctx context.Context, session models.AuthSession) error
	// Load returns false when no unexpired session is stored for email.
	Load(ctx context.Context, email string) (models.AuthSession, bool, error)
	Delete(ctx context.Context, email string) error
	Close() error
}
