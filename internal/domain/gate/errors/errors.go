package errors

import (
	pkgerrors "github.com/iyann1255/fsubmul/pkg/errors"
)

var (
	// ErrInvalidChannel is returned when a channel identifier is not a
	// @username, a -100… numeric ID, or a bare public slug
	ErrInvalidChannel = pkgerrors.NewValidationError("invalid channel identifier")

	// ErrDatabaseOperation is returned when a database operation fails
	ErrDatabaseOperation = pkgerrors.NewDatabaseError("database operation failed")
)
