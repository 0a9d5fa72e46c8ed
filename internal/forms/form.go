package forms

import (
	"errors"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"

	"authflow/internal/configuration"
	"authflow/internal/errormap"
	apierrors "authflow/internal/errors"
	"authflow/internal/notifier"

	"go.uber.org/zap"
)

// State is the position of a form in its submission cycle.
// Every state except StateSubmitting accepts input.
type State int

const (
	StateEditing State = iota
	StateSubmitting
	StateSuccess
	StateFieldError
	StateGenericError
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFieldError:
		return "field-error"
	case StateGenericError:
		return "generic-error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var ErrInvalidEmail = errors.New("invalid email address")

// decodeEmail percent-decodes the address received from the route, once.
func decodeEmail(raw string) (string, error) {
	email, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidEmail, err)
	}
	if email == "" {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// form holds what both verification forms share: a single code field,
// its errors and the in-flight guard.
type form struct {
	email      string
	field      string
	submitting atomic.Bool

	mu     sync.Mutex
	value  string
	errors map[string]string
	state  State

	notifier notifier.INotifier
	logger   *zap.Logger
}

func newForm(email string, field string, n notifier.INotifier, logger *zap.Logger) *form {
	return &form{
		email:    email,
		field:    field,
		errors:   map[string]string{},
		notifier: n,
		logger:   logger,
	}
}

// Email returns the decoded address used for every request of the form.
func (f *form) Email() string {
	return f.email
}

// SetValue replaces the code and drops the stale error of the field.
func (f *form) SetValue(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = value
	delete(f.errors, f.field)
}

func (f *form) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Errors returns a copy of the current field errors.
func (f *form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	errs := make(map[string]string, len(f.errors))
	for field, message := range f.errors {
		errs[field] = message
	}
	return errs
}

func (f *form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *form) IsSubmitting() bool {
	return f.submitting.Load()
}

func (f *form) setState(state State) State {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = state
	return state
}

func (f *form) setFieldError(field string, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors[field] = message
}

// begin claims the in-flight slot. It returns false when a call is already running.
func (f *form) begin() bool {
	if !f.submitting.CompareAndSwap(false, true) {
		return false
	}
	f.setState(StateSubmitting)
	return true
}

func (f *form) end() {
	f.submitting.Store(false)
}

// invalid records local validation failures and reports whether there were any.
func (f *form) invalid(errs map[string]string) bool {
	if len(errs) == 0 {
		return false
	}
	for field, message := range errs {
		f.setFieldError(field, message)
	}
	return true
}

// fail turns any failed call into user feedback and leaves the form editable.
func (f *form) fail(operation string, err error, knownFields []string, fallbackTitle string) State {
	if apierrors.IsBusiness(err) {
		f.logger.Info("Request rejected by server",
			zap.String("operation", operation),
			zap.String("email", f.email),
			zap.Error(err))
		f.notifier.Error(configuration.TitleLoginError, configuration.DetailUnexpectedError)
		return StateGenericError
	}

	f.logger.Warn("Request failed",
		zap.String("operation", operation),
		zap.String("email", f.email),
		zap.Error(err))
	mapping := errormap.Apply(err, f.setFieldError, knownFields, fallbackTitle, f.notifier)
	if mapping.HasFieldErrors() {
		return StateFieldError
	}
	return StateGenericError
}
