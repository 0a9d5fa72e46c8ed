package forms

import (
	"context"
	"sync/atomic"

	"authflow/internal/configuration"
	"authflow/internal/models"
	"authflow/internal/notifier"
	"authflow/internal/router"
	"authflow/internal/session"
	"authflow/internal/validation"

	"go.uber.org/zap"
)

// OTPClient is the part of the auth client used by the email code step.
type OTPClient interface {
	SendOtpCode(ctx context.Context, body models.SendOtpCodeBody) (models.APIResponse[string], error)
	VerifyOtpCode(ctx context.Context, body models.VerifyOtpCodeBody) (models.APIResponse[models.OtpVerificationResult], error)
}

type OTPDependencies struct {
	Client    OTPClient
	Store     session.IStore
	Notifier  notifier.INotifier
	Navigator router.INavigator
	Logger    *zap.Logger
}

// OTPForm verifies the one-time code sent by email.
type OTPForm struct {
	*form
	deps      OTPDependencies
	resending atomic.Bool
}

// NewOTPForm builds the form for a route-encoded address such as user%40example.com.
func NewOTPForm(email string, deps OTPDependencies) (*OTPForm, error) {
	decoded, err := decodeEmail(email)
	if err != nil {
		return nil, err
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &OTPForm{
		form: newForm(decoded, "otpNumber", deps.Notifier, deps.Logger),
		deps: deps,
	}, nil
}

// Submit validates the code and verifies it. A submit issued while another
// is in flight returns StateSubmitting without calling the server.
func (f *OTPForm) Submit(ctx context.Context) State {
	if !f.begin() {
		return StateSubmitting
	}
	defer f.end()

	code := f.Value()
	if f.invalid(validation.OTPSchema.Validate(validation.OTPFields{OtpNumber: code})) {
		return f.setState(StateFieldError)
	}

	response, err := f.deps.Client.VerifyOtpCode(ctx, models.VerifyOtpCodeBody{
		Email: f.email,
		OTP:   code,
	})
	if err != nil {
		return f.setState(f.fail("verify_otp_code", err, validation.OTPSchema.Fields(), configuration.TitleOtpVerifyError))
	}

	result, err := response.Result()
	if err != nil {
		return f.setState(f.fail("verify_otp_code", err, validation.OTPSchema.Fields(), configuration.TitleOtpVerifyError))
	}

	f.deps.Notifier.Success(configuration.TitleOtpVerified, "")
	f.deps.Store.SetMfa(result)
	f.deps.Navigator.Navigate(router.VerifyMFAPath(f.email))
	return f.setState(StateSuccess)
}

// Resend asks the server for a new code. It never touches the session store.
// It returns true when the server confirmed the new code was sent.
func (f *OTPForm) Resend(ctx context.Context) bool {
	if !f.resending.CompareAndSwap(false, true) {
		return false
	}
	defer f.resending.Store(false)

	response, err := f.deps.Client.SendOtpCode(ctx, models.SendOtpCodeBody{Email: f.email})
	if err == nil {
		_, err = response.Result()
	}
	if err != nil {
		f.fail("send_otp_code", err, validation.OTPSchema.Fields(), configuration.TitleSendOtpCodeError)
		return false
	}

	f.deps.Notifier.Success(configuration.TitleEmailSent, configuration.DetailEmailSent)
	return true
}

// ChangeEmail leaves the flow for the login screen.
func (f *OTPForm) ChangeEmail() {
	f.deps.Navigator.Navigate(configuration.RouteLogin)
}
