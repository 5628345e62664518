package service

import (
	"errors"
	"fmt"
)

// ValidationError reports a missing or malformed input field. Handlers
// answer it with a 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// ErrCloudDisabled is returned by operations that need S3 or SNS when cloud
// services are switched off.
var ErrCloudDisabled = errors.New("cloud services not enabled")
