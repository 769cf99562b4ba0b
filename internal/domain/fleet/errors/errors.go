package errors

import (
	pkgerrors "github.com/iyann1255/fsubmul/pkg/errors"
)

var (
	// ErrBotNotFound is returned when no identity exists for the key
	ErrBotNotFound = pkgerrors.NewNotFoundError("bot not found")

	// ErrInvalidCredential is returned when the platform rejects a bot token
	ErrInvalidCredential = pkgerrors.NewValidationError("bot credential rejected by platform")

	// ErrDatabaseOperation is returned when a database operation fails
	ErrDatabaseOperation = pkgerrors.NewDatabaseError("database operation failed")
)
