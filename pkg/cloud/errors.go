package cloud

import (
	"fmt"

	"github.com/pkg/errors"
)

// CloudError is the generic operation failure: an upstream or transport
// problem annotated with what the caller was doing. The cause is reachable
// through errors.Unwrap / errors.As.
type CloudError struct {
	Message string
	cause   error
}

func (e *CloudError) Error() string {
	if e.cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.cause.Error()
}

func (e *CloudError) Unwrap() error {
	return e.cause
}

// NewCloudError wraps cause with an operation-specific message.
func NewCloudError(cause error, format string, args ...interface{}) *CloudError {
	return &CloudError{Message: fmt.Sprintf(format, args...), cause: cause}
}

// NotFoundError reports that a lookup by name or ID produced nothing in a
// path where absence is a failure (updates, kubeconfig assembly).
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// newNotFoundError formats the resource-specific not-found message, e.g.
// "COE cluster web-1 not found.".
func newNotFoundError(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// MissingFieldError reports a malformed upstream record: a field the
// normalization schema requires was absent.
type MissingFieldError struct {
	Resource string
	Field    string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s record is missing required field '%s'", e.Resource, e.Field)
}

// IsMissingField reports whether err is a MissingFieldError.
func IsMissingField(err error) bool {
	var target *MissingFieldError
	return errors.As(err, &target)
}
