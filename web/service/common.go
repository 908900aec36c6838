// Package service implements the business operations behind the API handlers.
package service

import (
	"strings"

	"melodix/util/apperr"
)

// BindError converts a request binding failure into a validation error.
func BindError(err error) error {
	return apperr.Validation("malformed request body").WithError(err)
}

// isUniqueViolation reports whether err is a sqlite unique-constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
