package helpers

import (
	"fmt"
	"strings"

	"github.com/pquerna/otp"
)

// SetupReference is the decoded otpauth:// payload shown while enrolling an authenticator.
type SetupReference struct {
	Issuer      string
	AccountName string
	Secret      string // Base32-encoded secret
	Digits      int
	Period      uint64
	URL         string
}

// ParseSetupReference decodes the QR payload returned as mfaQrCode.
func ParseSetupReference(reference string) (*SetupReference, error) {
	reference = strings.TrimSpace(reference)
	if !strings.HasPrefix(reference, "otpauth://") {
		return nil, fmt.Errorf("setup reference is not an otpauth URL")
	}

	key, err := otp.NewKeyFromURL(reference)
	if err != nil {
		return nil, fmt.Errorf("failed to parse setup reference: %w", err)
	}

	return &SetupReference{
		Issuer:      key.Issuer(),
		AccountName: key.AccountName(),
		Secret:      key.Secret(),
		Digits:      key.Digits().Length(),
		Period:      key.Period(),
		URL:         key.URL(),
	}, nil
}

// FormatSecret groups the secret in blocks of four for manual entry.
func FormatSecret(secret string) string {
	var groups []string
	for len(secret) > 4 {
		groups = append(groups, secret[:4])
		secret = secret[4:]
	}
	if secret != "" {
		groups = append(groups, secret)
	}
	return strings.Join(groups, " ")
}
