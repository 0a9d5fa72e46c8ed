package forms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"authflow/internal/client"
	"authflow/internal/configuration"
	"authflow/internal/models"
	"authflow/internal/router"
	"authflow/internal/session"
	"authflow/internal/signin"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newAuthServer fakes the three auth endpoints and records every JSON body per path.
func newAuthServer(t *testing.T) (*httptest.Server, map[string][]map[string]string) {
	t.Helper()
	bodies := map[string][]map[string]string{}

	record := func(r *http.Request) {
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies[r.URL.Path] = append(bodies[r.URL.Path], body)
	}
	reply := func(w http.ResponseWriter, body string) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}

	r := chi.NewRouter()
	r.Post(configuration.EndpointVerifyOtpCode, func(w http.ResponseWriter, r *http.Request) {
		record(r)
		reply(w, `{"success":true,"data":{"mfaEnabled":false,"mfaQrCode":"`+testSetupReference+`"}}`)
	})
	r.Post(configuration.EndpointVerifyMfaCode, func(w http.ResponseWriter, r *http.Request) {
		record(r)
		reply(w, `{"success":true,"data":{"accessToken":"access","refreshToken":"refresh",`+
			`"user":{"id":3,"name":"Test User","email":"user@example.com","active":true,"userType":"Employee"}}}`)
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, bodies
}

func TestVerificationFlow(t *testing.T) {
	ctx := context.Background()
	server, bodies := newAuthServer(t)
	logger := zap.NewNop()

	authClient := client.NewAuthClient(models.APIConfiguration{BaseURL: server.URL, TimeoutSeconds: 5}, logger)
	store := session.NewStore()
	history := router.NewHistory(logger)
	notify := &recordingNotifier{}

	otpForm, err := NewOTPForm("user%40example.com", OTPDependencies{
		Client:    authClient,
		Store:     store,
		Notifier:  notify,
		Navigator: history,
		Logger:    logger,
	})
	require.NoError(t, err)

	t.Run("should verify the email code and open the MFA screen", func(t *testing.T) {
		otpForm.SetValue("123456")

		state := otpForm.Submit(ctx)

		require.Equal(t, StateSuccess, state)
		assert.Equal(t,
			[]map[string]string{{"email": "user@example.com", "otp": "123456"}},
			bodies[configuration.EndpointVerifyOtpCode])
		assert.Equal(t, "/auth/verify-mfa/user@example.com", history.Current())

		email, ok := router.ParseVerifyMFAPath(history.Current())
		require.True(t, ok)
		assert.Equal(t, "user@example.com", email)
	})

	t.Run("should enroll and verify the authenticator", func(t *testing.T) {
		email, _ := router.ParseVerifyMFAPath(history.Current())
		mfaState, ok := store.MFA()
		require.True(t, ok)
		require.True(t, MFAScreen(mfaState).ShowSetup())

		mfaForm, err := NewMFAForm(email, mfaState.MFAQRCode, MFADependencies{
			Client:   authClient,
			Store:    store,
			Notifier: notify,
			SignIn: signin.Service{
				Store:     store,
				Navigator: history,
				Notifier:  notify,
				Logger:    logger,
			},
			Logger: logger,
		})
		require.NoError(t, err)
		mfaForm.SetValue("654321")

		state := mfaForm.Submit(ctx)

		require.Equal(t, StateSuccess, state)
		assert.Equal(t,
			[]map[string]string{{"email": "user@example.com", "token": "654321"}},
			bodies[configuration.EndpointVerifyMfaCode])
		assert.Equal(t, configuration.RouteHome, history.Current())

		auth, ok := store.Auth()
		require.True(t, ok)
		assert.Equal(t, "Test User", auth.User.Name)
		assert.True(t, auth.Remember)
		_, ok = store.MFA()
		assert.False(t, ok)
	})
}
