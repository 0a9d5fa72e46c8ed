package errormap

import (
	"errors"
	"strings"

	"authflow/internal/configuration"
	apierrors "authflow/internal/errors"
)

// Mapping is the outcome of distributing a rejected call over a form.
// Fallback is empty when every reported problem landed on a known field.
type Mapping struct {
	Fields   map[string]string
	Title    string
	Fallback string
}

// HasFieldErrors reports whether at least one known field received a message.
func (m Mapping) HasFieldErrors() bool {
	return len(m.Fields) > 0
}

// Distribute maps the per-field messages of err onto knownFields.
// Field names match case-insensitively and only the first message per field is kept.
// When nothing matched, Fallback carries the server message (or a generic one) under fallbackTitle.
func Distribute(err error, knownFields []string, fallbackTitle string) Mapping {
	mapping := Mapping{
		Fields: map[string]string{},
		Title:  fallbackTitle,
	}

	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		mapping.Fallback = configuration.DetailUnexpectedError
		return mapping
	}

	for _, fieldErr := range apiErr.Fields {
		name, ok := matchField(fieldErr.Field, knownFields)
		if !ok {
			continue
		}
		if _, exists := mapping.Fields[name]; !exists {
			mapping.Fields[name] = fieldErr.Message
		}
	}

	if len(mapping.Fields) == 0 {
		mapping.Fallback = fallbackMessage(apiErr)
	}
	return mapping
}

func matchField(name string, knownFields []string) (string, bool) {
	for _, known := range knownFields {
		if strings.EqualFold(name, known) {
			return known, true
		}
	}
	return "", false
}

func fallbackMessage(apiErr *apierrors.APIError) string {
	if apiErr.Code == 0 || apiErr.Message == "" || apiErr.Message == apierrors.ErrUnexpectedReply {
		return configuration.DetailUnexpectedError
	}
	if len(apiErr.Fields) > 0 {
		return apiErr.Fields[0].Message
	}
	return apiErr.Message
}

// FieldSetter receives one message for one form field.
type FieldSetter func(field string, message string)

// ErrorNotifier shows the fallback notification.
type ErrorNotifier interface {
	Error(title string, detail string)
}

// Apply distributes err over the form through setField, falling back to a titled notification.
func Apply(
	err error,
	setField FieldSetter,
	knownFields []string,
	fallbackTitle string,
	notify ErrorNotifier,
) Mapping {
	mapping := Distribute(err, knownFields, fallbackTitle)
	for _, field := range knownFields {
		if message, ok := mapping.Fields[field]; ok {
			setField(field, message)
		}
	}
	if mapping.Fallback != "" {
		notify.Error(mapping.Title, mapping.Fallback)
	}
	return mapping
}
