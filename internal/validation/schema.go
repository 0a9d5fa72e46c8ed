package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"authflow/internal/configuration"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// OTPFields holds the email OTP form input.
type OTPFields struct {
	OtpNumber string `json:"otpNumber" validate:"required,min=6"`
}

// MFAFields holds the authenticator form input.
type MFAFields struct {
	Token string `json:"token" validate:"required,min=6"`
}

// Schema validates one form's fields and reports a single message per failing field.
type Schema[T any] struct {
	messages map[string]string
	fields   []string
}

func NewSchema[T any](messages map[string]string) Schema[T] {
	var zero T
	t := reflect.TypeOf(zero)
	fields := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		if name != "" && name != "-" {
			fields = append(fields, name)
		}
	}
	return Schema[T]{messages: messages, fields: fields}
}

// Fields returns the known field names, in declaration order.
func (s Schema[T]) Fields() []string {
	return append([]string(nil), s.fields...)
}

// Validate returns nil when values pass, or a field name to message map.
func (s Schema[T]) Validate(values T) map[string]string {
	err := instance().Struct(values)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"": err.Error()}
	}

	result := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		field := fieldErr.Field()
		if _, ok := result[field]; ok {
			continue
		}
		message, ok := s.messages[field]
		if !ok {
			message = fieldErr.Error()
		}
		result[field] = message
	}
	return result
}

var OTPSchema = NewSchema[OTPFields](map[string]string{
	"otpNumber": configuration.MessageOtpRequired,
})

var MFASchema = NewSchema[MFAFields](map[string]string{
	"token": configuration.MessageTokenRequired,
})
