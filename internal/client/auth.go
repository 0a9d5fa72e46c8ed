package client

import (
	"context"
	"net/http"
	"time"

	"authflow/internal/activity"
	"authflow/internal/configuration"
	apierrors "authflow/internal/errors"
	"authflow/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// AuthClient calls the three auth endpoints and unwraps their envelope.
type AuthClient struct {
	http     *resty.Client
	logger   *zap.Logger
	tracer   trace.Tracer
	activity activity.IActivityLogger
}

func NewAuthClient(config models.APIConfiguration, logger *zap.Logger) *AuthClient {
	httpClient := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(time.Duration(config.TimeoutSeconds) * time.Second).
		SetTransport(otelhttp.NewTransport(http.DefaultTransport)).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetLogger(logger.Sugar())

	if config.UserAgent != "" {
		httpClient.SetHeader("User-Agent", config.UserAgent)
	}

	return &AuthClient{
		http:   httpClient,
		logger: logger,
		tracer: otel.Tracer(configuration.AppName + "/client"),
	}
}

// WithActivity records the outcome of every call in the attempt history.
func (c *AuthClient) WithActivity(activityLogger activity.IActivityLogger) *AuthClient {
	c.activity = activityLogger
	return c
}

// SendOtpCode issues or reissues a one-time code to body.Email.
func (c *AuthClient) SendOtpCode(
	ctx context.Context,
	body models.SendOtpCodeBody,
) (models.APIResponse[string], error) {
	return post[string](ctx, c, "auth.send_otp_code", configuration.EndpointSendOtpCode, body.Email, body)
}

// VerifyOtpCode checks the first-factor code and returns the MFA session payload on success.
func (c *AuthClient) VerifyOtpCode(
	ctx context.Context,
	body models.VerifyOtpCodeBody,
) (models.APIResponse[models.OtpVerificationResult], error) {
	return post[models.OtpVerificationResult](
		ctx, c, "auth.verify_otp_code", configuration.EndpointVerifyOtpCode, body.Email, body,
	)
}

// VerifyMfaCode checks the authenticator token and returns the login payload on success.
func (c *AuthClient) VerifyMfaCode(
	ctx context.Context,
	body models.VerifyMfaCodeBody,
) (models.APIResponse[models.LoginResult], error) {
	return post[models.LoginResult](ctx, c, "auth.verify_mfa_code", configuration.EndpointVerifyMfaCode, body.Email, body)
}

// post returns the envelope for any 2xx response, whatever its success flag.
// Non-2xx responses and network failures come back as *apierrors.APIError.
func post[T any](
	ctx context.Context,
	c *AuthClient,
	operation string,
	path string,
	email string,
	body any,
) (models.APIResponse[T], error) {
	requestID := uuid.NewString()
	ctx, span := c.tracer.Start(ctx, operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.route", path),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	logger := c.logger.With(
		zap.String("operation", operation),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)

	var envelope models.APIResponse[T]
	var failure apierrors.ErrorBody

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(configuration.RequestIDHeader, requestID).
		SetBody(body).
		SetResult(&envelope).
		SetError(&failure).
		Post(path)
	if err != nil {
		logger.Warn("Auth request failed", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, apierrors.ErrNetworkFailure)
		c.record(operation, email, requestID, models.ActivityOutcomeFailed, 0, err.Error())
		return models.APIResponse[T]{}, apierrors.NewTransportError(err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))

	if !resp.IsSuccess() {
		apiErr := apierrors.FromResponse(resp.StatusCode(), failure)
		logger.Debug("Auth request rejected",
			zap.Int("status", resp.StatusCode()),
			zap.String("message", apiErr.Message),
			zap.Int("field_errors", len(apiErr.Fields)))
		span.SetStatus(codes.Error, apiErr.Message)
		c.record(operation, email, requestID, models.ActivityOutcomeRejected, resp.StatusCode(), apiErr.Message)
		return models.APIResponse[T]{}, apiErr
	}

	logger.Debug("Auth request completed",
		zap.Int("status", resp.StatusCode()),
		zap.Bool("success", envelope.Success))

	outcome := models.ActivityOutcomeSuccess
	if !envelope.Success {
		outcome = models.ActivityOutcomeRejected
	}
	c.record(operation, email, requestID, outcome, resp.StatusCode(), envelope.Message)
	return envelope, nil
}

func (c *AuthClient) record(operation, email, requestID, outcome string, status int, message string) {
	if c.activity == nil {
		return
	}
	err := c.activity.Send(models.Activity{
		Operation: operation,
		Email:     email,
		Outcome:   outcome,
		Status:    status,
		RequestID: requestID,
		Message:   message,
		Timestamp: time.Now(),
	})
	if err != nil {
		c.logger.Warn("Failed to record auth attempt", zap.String("operation", operation), zap.Error(err))
	}
}
