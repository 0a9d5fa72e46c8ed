package forms

import (
	"context"

	"authflow/internal/configuration"
	h "authflow/internal/helpers"
	"authflow/internal/models"
	"authflow/internal/notifier"
	"authflow/internal/session"
	"authflow/internal/signin"
	"authflow/internal/validation"

	"go.uber.org/zap"
)

// MFAClient is the part of the auth client used by the authenticator step.
type MFAClient interface {
	VerifyMfaCode(ctx context.Context, body models.VerifyMfaCodeBody) (models.APIResponse[models.LoginResult], error)
}

type MFADependencies struct {
	Client   MFAClient
	Store    session.IStore
	Notifier notifier.INotifier
	SignIn   signin.ISignIn
	Logger   *zap.Logger
}

// MFAForm verifies the authenticator token and completes sign-in.
type MFAForm struct {
	*form
	deps           MFADependencies
	setupReference string
}

func NewMFAForm(email string, setupReference string, deps MFADependencies) (*MFAForm, error) {
	decoded, err := decodeEmail(email)
	if err != nil {
		return nil, err
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &MFAForm{
		form:           newForm(decoded, "token", deps.Notifier, deps.Logger),
		deps:           deps,
		setupReference: setupReference,
	}, nil
}

func (f *MFAForm) SetupReference() string {
	return f.setupReference
}

// Submit validates the token, verifies it and signs the user in with a remembered session.
func (f *MFAForm) Submit(ctx context.Context) State {
	if !f.begin() {
		return StateSubmitting
	}
	defer f.end()

	token := f.Value()
	if f.invalid(validation.MFASchema.Validate(validation.MFAFields{Token: token})) {
		return f.setState(StateFieldError)
	}

	response, err := f.deps.Client.VerifyMfaCode(ctx, models.VerifyMfaCodeBody{
		Email: f.email,
		Token: token,
	})
	if err == nil {
		var login models.LoginResult
		login, err = response.Result()
		if err == nil {
			return f.signIn(ctx, login)
		}
	}
	return f.setState(f.fail("verify_mfa_code", err, validation.MFASchema.Fields(), configuration.TitleOtpVerifyError))
}

func (f *MFAForm) signIn(ctx context.Context, login models.LoginResult) State {
	if err := f.deps.SignIn.SignInUser(ctx, login, configuration.RouteHome, true); err != nil {
		f.logger.Error("Failed to complete sign in", zap.String("email", f.email), zap.Error(err))
		f.notifier.Error(configuration.TitleLoginError, configuration.DetailUnexpectedError)
		return f.setState(StateGenericError)
	}
	return f.setState(StateSuccess)
}

// Reconnect puts the shared MFA state back into enrollment with the same setup reference.
func (f *MFAForm) Reconnect() {
	f.deps.Store.ReconnectMfa(models.MFAState{
		MFAEnabled: false,
		MFAQRCode:  f.setupReference,
	})
	f.deps.Notifier.Success(configuration.TitleAuthenticatorReset, "")
}

// Screen is what the MFA route shows for the current MFA state.
// Setup is nil once the authenticator is enrolled.
type Screen struct {
	Setup *h.SetupReference
	// SetupError is set when the setup reference could not be decoded.
	SetupError error
}

func (s Screen) ShowSetup() bool {
	return s.Setup != nil || s.SetupError != nil
}

// MFAScreen decides whether the enrollment step comes before the verify form.
func MFAScreen(state models.MFAState) Screen {
	if state.MFAEnabled {
		return Screen{}
	}
	setup, err := h.ParseSetupReference(state.MFAQRCode)
	if err != nil {
		return Screen{SetupError: err}
	}
	return Screen{Setup: setup}
}
