package validation

import (
	"strings"

	"github.com/yigit/brainora/internal/pkg/apperrors"
)

// NonFieldErrors is the field key used for form-wide errors.
const NonFieldErrors = "__all__"

// FieldError is one message attached to a form field.
type FieldError struct {
	Field   string
	Message string
}

// Errors is the ordered list of messages produced by a validator.
// It unwraps to apperrors.ErrValidationFailed.
type Errors []FieldError

func (e Errors) Error() string {
	return strings.Join(e.Messages(), "; ")
}

func (e Errors) Unwrap() error {
	return apperrors.ErrValidationFailed
}

// Add appends a message for field.
func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Has reports whether field has at least one message.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// For returns the messages attached to field.
func (e Errors) For(field string) []string {
	var msgs []string
	for _, fe := range e {
		if fe.Field == field {
			msgs = append(msgs, fe.Message)
		}
	}
	return msgs
}

// Messages renders every error as "<field>: <message>".
func (e Errors) Messages() []string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		if fe.Field == NonFieldErrors {
			msgs = append(msgs, fe.Message)
			continue
		}
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return msgs
}

// OrNil returns nil when there are no errors, so an empty list never
// becomes a non-nil error interface.
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
