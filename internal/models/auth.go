package models

// SendOtpCodeBody asks the server to issue (or reissue) a one-time code by email.
type SendOtpCodeBody struct {
	Email string `json:"email"`
}

// VerifyOtpCodeBody carries the first-factor code. Email must already be percent-decoded.
// Bodies are sent as given; the forms own input validation.
type VerifyOtpCodeBody struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyMfaCodeBody carries the authenticator token for the second factor.
type VerifyMfaCodeBody struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// OtpVerificationResult is the MFA session payload returned by a successful OTP check.
// MFAQRCode is the otpauth:// setup reference shown while MFA is not enabled yet.
type OtpVerificationResult struct {
	MFAEnabled bool   `json:"mfaEnabled"`
	MFAQRCode  string `json:"mfaQrCode"`
}

type LoginResult struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	User         Employee `json:"user"`
}
