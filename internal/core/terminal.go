package core

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"authflow/internal/activity"
	"authflow/internal/configuration"
	"authflow/internal/forms"
	h "authflow/internal/helpers"
	"authflow/internal/notifier"
	"authflow/internal/router"
	"authflow/internal/session"
	"authflow/internal/signin"

	"go.uber.org/zap"
)

// Terminal commands accepted in place of a code.
const (
	CommandResend    = ":resend"
	CommandChange    = ":change"
	CommandReconnect = ":reconnect"
	CommandHistory   = ":history"
)

var ErrInputClosed = errors.New("input closed before sign in completed")

// AuthClient is the part of the auth API both screens talk to.
type AuthClient interface {
	forms.OTPClient
	forms.MFAClient
}

// Terminal drives the OTP and MFA screens from line based input.
type Terminal struct {
	Client    AuthClient
	Store     session.IStore
	Persister session.IPersister
	Notifier  notifier.INotifier
	History   *router.History
	Activity  activity.IActivityLogger
	In        io.Reader
	Out       io.Writer
	Logger    *zap.Logger

	lines *bufio.Scanner
}

func (t *Terminal) signIn() signin.Service {
	return signin.Service{
		Store:     t.Store,
		Persister: t.Persister,
		Navigator: t.History,
		Notifier:  t.Notifier,
		Logger:    t.Logger,
	}
}

// Run starts at the OTP screen for the route-encoded email and returns once
// the user is signed in or went back to the login screen.
func (t *Terminal) Run(ctx context.Context, email string) error {
	t.lines = bufio.NewScanner(t.In)

	otpForm, err := forms.NewOTPForm(email, forms.OTPDependencies{
		Client:    t.Client,
		Store:     t.Store,
		Notifier:  t.Notifier,
		Navigator: t.History,
		Logger:    t.Logger,
	})
	if err != nil {
		return err
	}

	restored, ok, err := t.signIn().Restore(ctx, otpForm.Email())
	if err != nil {
		t.Logger.Warn("Failed to restore remembered session", zap.Error(err))
	}
	if ok {
		t.printf("Signed in as %s (remembered session)\n", restored.User.Name)
		return nil
	}

	if err = t.runOTP(ctx, otpForm); err != nil {
		return err
	}

	mfaEmail, ok := router.ParseVerifyMFAPath(t.History.Current())
	if !ok {
		return nil
	}
	return t.runMFA(ctx, mfaEmail)
}

func (t *Terminal) runOTP(ctx context.Context, form *forms.OTPForm) error {
	for {
		t.printf("Enter the %d-digit code sent to %s (%s, %s, %s): ",
			configuration.OneTimeCodeLength, form.Email(), CommandResend, CommandChange, CommandHistory)
		line, ok := t.readLine()
		if !ok {
			return ErrInputClosed
		}

		switch line {
		case CommandResend:
			form.Resend(ctx)
		case CommandChange:
			form.ChangeEmail()
			return nil
		case CommandHistory:
			t.printHistory(form.Email())
		default:
			form.SetValue(line)
			if form.Submit(ctx) == forms.StateSuccess {
				return nil
			}
			t.printErrors(form.Errors())
		}
	}
}

func (t *Terminal) runMFA(ctx context.Context, email string) error {
	state, ok := t.Store.MFA()
	if !ok {
		return errors.New("no MFA session to continue with")
	}

	mfaForm, err := forms.NewMFAForm(email, state.MFAQRCode, forms.MFADependencies{
		Client:   t.Client,
		Store:    t.Store,
		Notifier: t.Notifier,
		SignIn:   t.signIn(),
		Logger:   t.Logger,
	})
	if err != nil {
		return err
	}
	t.printScreen(forms.MFAScreen(state))

	for {
		t.printf("Enter the authenticator code (%s, %s): ", CommandReconnect, CommandHistory)
		line, ok := t.readLine()
		if !ok {
			return ErrInputClosed
		}

		switch line {
		case CommandReconnect:
			mfaForm.Reconnect()
			state, _ = t.Store.MFA()
			t.printScreen(forms.MFAScreen(state))
			continue
		case CommandHistory:
			t.printHistory(mfaForm.Email())
			continue
		}

		mfaForm.SetValue(line)
		if mfaForm.Submit(ctx) == forms.StateSuccess {
			if auth, signedIn := t.Store.Auth(); signedIn {
				t.printf("Signed in as %s <%s>\n", auth.User.Name, auth.User.Email)
			}
			return nil
		}
		t.printErrors(mfaForm.Errors())
	}
}

func (t *Terminal) printScreen(screen forms.Screen) {
	if !screen.ShowSetup() {
		return
	}
	if screen.SetupError != nil {
		t.Logger.Warn("Unreadable authenticator setup reference", zap.Error(screen.SetupError))
		t.printf("Set up your authenticator app with the QR code provided by your administrator.\n")
		return
	}
	t.printf("Add this account to your authenticator app:\n")
	t.printf("  Issuer:  %s\n", screen.Setup.Issuer)
	t.printf("  Account: %s\n", screen.Setup.AccountName)
	t.printf("  Secret:  %s\n", h.FormatSecret(screen.Setup.Secret))
}

func (t *Terminal) printHistory(email string) {
	if t.Activity == nil {
		t.printf("Attempt history is disabled.\n")
		return
	}

	criteria := map[string][]string{"email": {email}}
	attempts, err := t.Activity.Search(criteria)
	if err != nil {
		t.Logger.Warn("Failed to search attempt history", zap.Error(err))
		return
	}
	for _, attempt := range attempts {
		t.printf("  %s  %-22s %-8s %d\n",
			attempt.Timestamp.Local().Format(time.DateTime), attempt.Operation, attempt.Outcome, attempt.Status)
	}

	points, err := t.Activity.CountByDay(criteria, configuration.ActivityRetentionDays)
	if err != nil {
		t.Logger.Warn("Failed to count attempts", zap.Error(err))
		return
	}
	for _, point := range points {
		t.printf("  %s: %d attempt(s)\n", point.Date, point.Count)
	}
}

func (t *Terminal) printErrors(errs map[string]string) {
	for field, message := range errs {
		t.printf("  %s: %s\n", field, message)
	}
}

func (t *Terminal) readLine() (string, bool) {
	if !t.lines.Scan() {
		return "", false
	}
	return strings.TrimSpace(t.lines.Text()), true
}

func (t *Terminal) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(t.Out, format, args...); err != nil {
		t.Logger.Warn("Failed to write to terminal", zap.Error(err))
	}
}
