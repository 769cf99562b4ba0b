package errors

import (
	pkgerrors "github.com/iyann1255/fsubmul/pkg/errors"
)

var (
	// ErrSettingNotFound is returned when a setting key has no value
	ErrSettingNotFound = pkgerrors.NewNotFoundError("setting not found")

	// ErrNoPendingAction is returned when an admin has no pending input mode
	ErrNoPendingAction = pkgerrors.NewNotFoundError("no pending action")

	// ErrDatabaseOperation is returned when a database operation fails
	ErrDatabaseOperation = pkgerrors.NewDatabaseError("database operation failed")
)
