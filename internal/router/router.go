package router

import (
	"net/url"
	"strings"
	"sync"

	"authflow/internal/configuration"

	"go.uber.org/zap"
)

// INavigator moves the user to another screen.
type INavigator interface {
	Navigate(path string)
}

// VerifyMFAPath is the MFA screen route for a decoded email.
// The email is escaped as a path segment, which leaves '@' as is.
func VerifyMFAPath(email string) string {
	return configuration.RouteVerifyMFA + url.PathEscape(email)
}

// ParseVerifyMFAPath extracts the still-escaped email segment of a VerifyMFAPath route.
func ParseVerifyMFAPath(path string) (string, bool) {
	if !strings.HasPrefix(path, configuration.RouteVerifyMFA) {
		return "", false
	}
	email := strings.TrimPrefix(path, configuration.RouteVerifyMFA)
	return email, email != ""
}

// History records navigations and forwards each one to the listeners.
type History struct {
	mu        sync.Mutex
	paths     []string
	listeners []func(path string)
	logger    *zap.Logger
}

func NewHistory(logger *zap.Logger) *History {
	return &History{logger: logger}
}

// OnNavigate registers a listener called after each navigation.
func (h *History) OnNavigate(listener func(path string)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, listener)
}

func (h *History) Navigate(path string) {
	h.mu.Lock()
	h.paths = append(h.paths, path)
	listeners := append([]func(string){}, h.listeners...)
	h.mu.Unlock()

	h.logger.Debug("Navigated", zap.String("path", path))
	for _, listener := range listeners {
		listener(path)
	}
}

// Current returns the last path navigated to, or "" when none.
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.paths) == 0 {
		return ""
	}
	return h.paths[len(h.paths)-1]
}

func (h *History) Paths() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.paths...)
}
