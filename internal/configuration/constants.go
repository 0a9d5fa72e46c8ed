package configuration

const AppName = "authflow"

// Auth endpoints, relative to api.base_url.
const (
	EndpointSendOtpCode   = "/user/login"
	EndpointVerifyOtpCode = "/user/verify-otp"
	EndpointVerifyMfaCode = "/user/verify-mfa"
)

// Client-side routes.
const (
	RouteHome      = "/"
	RouteLogin     = "/auth/login"
	RouteVerifyMFA = "/auth/verify-mfa/"
)

const RequestIDHeader = "X-Request-ID"

// OneTimeCodeLength is the exact length of both the email OTP and the authenticator token.
const OneTimeCodeLength = 6

// Notification titles and details.
const (
	TitleOtpVerified        = "Otp verification successful"
	TitleEmailSent          = "Email Sent Successfully"
	DetailEmailSent         = "An email with the OTP code has been sent to your address."
	TitleLoginError         = "Login Error"
	DetailUnexpectedError   = "An unexpected error occurred. Please try again."
	TitleOtpVerifyError     = "OTP Verification Error"
	TitleSendOtpCodeError   = "Failed To Send Otp Code"
	MessageOtpRequired      = "Otp Number is required"
	MessageTokenRequired    = "Verification code is required"
	TitleSignedIn           = "Signed in"
	TitleAuthenticatorReset = "Authenticator reset"
)

const (
	CacheRememberedSessionKey = "authflow:session:%s" //nolint:gosec // not a credential
	// RememberedSessionFallbackTTL applies when the access token carries no expiry (in seconds).
	RememberedSessionFallbackTTL = 86400
)

const (
	ActivityRetentionDays = 30
	ActivitySearchLimit   = 100
)

const (
	SessionTypeMemory     = "memory"
	SessionTypeFilesystem = "filesystem"
	SessionTypeRedis      = "redis"
	SessionTypeValkey     = "valkey"
)

var ArrayConfigFields = []string{
	"session.redis.hosts",
	"session.valkey.hosts",
}

var ConfigFileSearchPaths = []string{
	"./config.yaml",
	"templates/config.yaml",
}
