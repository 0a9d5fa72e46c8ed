package models

import "time"

// MFAState is the shared MFA slot read by the MFA screen.
type MFAState struct {
	MFAEnabled bool   `json:"mfaEnabled"`
	MFAQRCode  string `json:"mfaQrCode"`
}

// NewMFAState builds the slot content from a successful OTP verification.
func NewMFAState(result OtpVerificationResult) MFAState {
	return MFAState{
		MFAEnabled: result.MFAEnabled,
		MFAQRCode:  result.MFAQRCode,
	}
}

// AuthSession is the authenticated session established by sign-in.
type AuthSession struct {
	Email        string    `json:"email"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	User         Employee  `json:"user"`
	ExpiresAt    time.Time `json:"expires_at"`
	Remember     bool      `json:"remember"`
}

// IsExpired returns true once the access token expiry has passed.
// A zero expiry never expires.
func (s AuthSession) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
