package apierrors

import (
	"errors"
	"fmt"
	"sort"
)

// Business rejections (HTTP 2xx, success=false).
const (
	ErrRequestRejected = "REQUEST_REJECTED"
	ErrEmptyPayload    = "EMPTY_PAYLOAD"
)

// Transport failures.
const (
	ErrNetworkFailure  = "NETWORK_FAILURE"
	ErrUnexpectedReply = "UNEXPECTED_RESPONSE"
)

// FieldError is a server-reported message scoped to one request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is returned when a call is rejected at the transport level:
// a non-2xx response or no response at all (Code 0).
type APIError struct {
	Code    int
	Message string
	Fields  []FieldError
	Err     error
}

func NewAPIError(code int, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("api error %d: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// WithFields attaches per-field messages, sorted by field name.
func (e *APIError) WithFields(fields map[string][]string) *APIError {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, message := range fields[name] {
			e.Fields = append(e.Fields, FieldError{Field: name, Message: message})
		}
	}
	return e
}

// NewTransportError wraps a failure that happened before any response was read.
func NewTransportError(err error) *APIError {
	return &APIError{Code: 0, Message: ErrNetworkFailure, Err: err}
}

// ErrorBody is the JSON body of a rejected request. It accepts both the
// envelope shape ({success, message, errors}) and problem details ({title, detail, errors}).
type ErrorBody struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Title   string              `json:"title"`
	Detail  string              `json:"detail"`
	Status  int                 `json:"status"`
	Errors  map[string][]string `json:"errors"`
}

// FromResponse converts a non-2xx response into an APIError.
func FromResponse(status int, body ErrorBody) *APIError {
	message := body.Message
	if message == "" {
		message = body.Detail
	}
	if message == "" {
		message = body.Title
	}
	if message == "" {
		message = ErrUnexpectedReply
	}
	return NewAPIError(status, message).WithFields(body.Errors)
}

// BusinessError reports an envelope with success=false.
type BusinessError struct {
	Message string
}

func NewBusinessError(message string) *BusinessError {
	if message == "" {
		message = ErrRequestRejected
	}
	return &BusinessError{Message: message}
}

func (e *BusinessError) Error() string {
	return "request rejected: " + e.Message
}

// IsBusiness reports whether err is (or wraps) a BusinessError.
func IsBusiness(err error) bool {
	var businessErr *BusinessError
	return errors.As(err, &businessErr)
}
