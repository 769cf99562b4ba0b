package errors

import (
	pkgerrors "github.com/iyann1255/fsubmul/pkg/errors"
)

var (
	// ErrContentNotFound is returned when a token resolves to no archived item
	ErrContentNotFound = pkgerrors.NewNotFoundError("content not found")

	// ErrSessionNotFound is returned when an upload session is gone
	ErrSessionNotFound = pkgerrors.NewNotFoundError("upload session not found")

	// ErrNoPostTargets is returned when a publish is requested with no targets
	ErrNoPostTargets = pkgerrors.NewValidationError("no post targets configured")

	// ErrDatabaseOperation is returned when a database operation fails
	ErrDatabaseOperation = pkgerrors.NewDatabaseError("database operation failed")
)
