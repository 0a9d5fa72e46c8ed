package forms

import (
	"context"
	"sync"

	"authflow/internal/models"
	"authflow/internal/session"
)

type notification struct {
	Kind   string
	Title  string
	Detail string
}

type recordingNotifier struct {
	mu            sync.Mutex
	notifications []notification
}

func (n *recordingNotifier) Success(title string, detail string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, notification{"success", title, detail})
}

func (n *recordingNotifier) Error(title string, detail string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, notification{"error", title, detail})
}

func (n *recordingNotifier) All() []notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification(nil), n.notifications...)
}

type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *recordingNavigator) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

// countingStore counts the MFA writes made on top of the real store.
type countingStore struct {
	*session.Store
	mu             sync.Mutex
	setMfaCalls    []models.OtpVerificationResult
	reconnectCalls []models.MFAState
}

func newCountingStore() *countingStore {
	return &countingStore{Store: session.NewStore()}
}

func (s *countingStore) SetMfa(result models.OtpVerificationResult) {
	s.mu.Lock()
	s.setMfaCalls = append(s.setMfaCalls, result)
	s.mu.Unlock()
	s.Store.SetMfa(result)
}

func (s *countingStore) ReconnectMfa(state models.MFAState) {
	s.mu.Lock()
	s.reconnectCalls = append(s.reconnectCalls, state)
	s.mu.Unlock()
	s.Store.ReconnectMfa(state)
}

func (s *countingStore) SetMfaCalls() []models.OtpVerificationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.OtpVerificationResult(nil), s.setMfaCalls...)
}

type fakeClient struct {
	mu sync.Mutex

	sendResponse   models.APIResponse[string]
	sendErr        error
	verifyResponse models.APIResponse[models.OtpVerificationResult]
	verifyErr      error
	mfaResponse    models.APIResponse[models.LoginResult]
	mfaErr         error

	// entered and release let a test hold a verification call in flight.
	entered chan struct{}
	release chan struct{}

	sendCalls   []models.SendOtpCodeBody
	verifyCalls []models.VerifyOtpCodeBody
	mfaCalls    []models.VerifyMfaCodeBody
}

func (c *fakeClient) wait() {
	if c.entered != nil {
		c.entered <- struct{}{}
		<-c.release
	}
}

func (c *fakeClient) SendOtpCode(_ context.Context, body models.SendOtpCodeBody) (models.APIResponse[string], error) {
	c.mu.Lock()
	c.sendCalls = append(c.sendCalls, body)
	c.mu.Unlock()
	return c.sendResponse, c.sendErr
}

func (c *fakeClient) VerifyOtpCode(
	_ context.Context,
	body models.VerifyOtpCodeBody,
) (models.APIResponse[models.OtpVerificationResult], error) {
	c.mu.Lock()
	c.verifyCalls = append(c.verifyCalls, body)
	c.mu.Unlock()
	c.wait()
	return c.verifyResponse, c.verifyErr
}

func (c *fakeClient) VerifyMfaCode(
	_ context.Context,
	body models.VerifyMfaCodeBody,
) (models.APIResponse[models.LoginResult], error) {
	c.mu.Lock()
	c.mfaCalls = append(c.mfaCalls, body)
	c.mu.Unlock()
	c.wait()
	return c.mfaResponse, c.mfaErr
}

func (c *fakeClient) VerifyCalls() []models.VerifyOtpCodeBody {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.VerifyOtpCodeBody(nil), c.verifyCalls...)
}

type signInCall struct {
	Login    models.LoginResult
	Redirect string
	Remember bool
}

type fakeSignIn struct {
	calls []signInCall
	err   error
}

func (s *fakeSignIn) SignInUser(_ context.Context, login models.LoginResult, redirect string, remember bool) error {
	s.calls = append(s.calls, signInCall{login, redirect, remember})
	return s.err
}

func okResponse[T any](data T) models.APIResponse[T] {
	return models.APIResponse[T]{Success: true, Data: &data}
}
