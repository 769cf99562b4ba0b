package errors

import (
	pkgerrors "github.com/iyann1255/fsubmul/pkg/errors"
)

var (
	// ErrEntryNotFound is returned when no access entry exists for the user
	ErrEntryNotFound = pkgerrors.NewNotFoundError("access entry not found")

	// ErrProtectedOwner is returned when a single-entry removal targets the
	// owner; owners can only be removed by whole-identity removal
	ErrProtectedOwner = pkgerrors.NewPermissionError("owner entry is protected from removal")

	// ErrDatabaseOperation is returned when a database operation fails
	ErrDatabaseOperation = pkgerrors.NewDatabaseError("database operation failed")
)
