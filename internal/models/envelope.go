package models

import (
	apierrors "authflow/internal/errors"
)

// APIResponse is the envelope wrapping every auth endpoint response.
// Business failures are reported with Success=false on a 2xx response.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data"`
	Message string `json:"message,omitempty"`
}

// Result collapses the envelope into a value or a business error.
// A successful envelope without a payload is treated as a rejection.
func (r APIResponse[T]) Result() (T, error) {
	var zero T
	if !r.Success {
		return zero, apierrors.NewBusinessError(r.Message)
	}
	if r.Data == nil {
		return zero, apierrors.NewBusinessError(apierrors.ErrEmptyPayload)
	}
	return *r.Data, nil
}
