package loyalty

import (
	"errors"
	"fmt"
)

var (
	// ErrCustomerNotFound is returned when no customer matches a lookup.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrInvalidRequest is wrapped by every ValidationError.
	ErrInvalidRequest = errors.New("invalid request")
)

// ErrorKind classifies a request validation failure.
type ErrorKind string

const (
	KindMalformedJSON ErrorKind = "malformed_json"
	KindMissingField  ErrorKind = "missing_field"
	KindInvalidType   ErrorKind = "invalid_type"
)

// ValidationError describes why a request body was rejected.
type ValidationError struct {
	Kind   ErrorKind
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Field != "" && e.Detail != "":
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Detail)
	case e.Field != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Field)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return string(e.Kind)
}

// Unwrap lets callers match any validation failure with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

func missingField(field string) error {
	return &ValidationError{Kind: KindMissingField, Field: field}
}

func invalidType(field, detail string) error {
	return &ValidationError{Kind: KindInvalidType, Field: field, Detail: detail}
}
