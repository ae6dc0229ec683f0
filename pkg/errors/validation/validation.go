// Package validation aggregates field-level configuration problems so a
// single load reports every issue at once instead of failing on the first.
package validation

import (
	"fmt"
	"strings"
)

// ValidationErrors collects error messages keyed by field path. The zero
// value is ready to use.
type ValidationErrors struct {
	errors []string
}

// Add records a formatted error under the given field path.
func (v *ValidationErrors) Add(path, format string, args ...interface{}) {
	v.errors = append(v.errors, fmt.Sprintf("%s: %s", path, fmt.Sprintf(format, args...)))
}

// AddError records a plain error message under the given field path.
func (v *ValidationErrors) AddError(path, message string) {
	v.errors = append(v.errors, fmt.Sprintf("%s: %s", path, message))
}

// Error joins all recorded messages, one per line.
func (v *ValidationErrors) Error() string {
	if len(v.errors) == 0 {
		return ""
	}
	return strings.Join(v.errors, "\n")
}

// HasErrors reports whether any message has been recorded.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.errors) > 0
}

// IsEmpty is the inverse of HasErrors.
func (v *ValidationErrors) IsEmpty() bool {
	return len(v.errors) == 0
}

// Count returns the number of recorded messages.
func (v *ValidationErrors) Count() int {
	return len(v.errors)
}

// Clear removes all recorded messages.
func (v *ValidationErrors) Clear() {
	v.errors = nil
}

// GetErrors returns all recorded messages as a slice.
func (v *ValidationErrors) GetErrors() []string {
	return v.errors
}

// ErrorOrNil returns v as an error when it holds messages, nil otherwise.
// Returning the concrete type directly would yield a non-nil error interface
// even when empty.
func (v *ValidationErrors) ErrorOrNil() error {
	if v.HasErrors() {
		return v
	}
	return nil
}
