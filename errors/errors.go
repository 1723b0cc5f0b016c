// Package errors provides error handling for genapi.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for user-facing messages
//
// Usage:
//
//	// Wrap with context
//	if err := load(path); err != nil {
//	    return errors.Wrap(err, "failed to load manifest")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "check the type name spelling")
//
//	// Check errors
//	if errors.Is(err, errors.ErrInvalidArgument) {
//	    // the declaration builder rejected the symbol shape
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint      = crdb.WithHint
	WithHintf     = crdb.WithHintf
	WithDetail    = crdb.WithDetail
	WithDetailf   = crdb.WithDetailf
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors. Wrap these with errors.Wrap() to add context while
// preserving the type for errors.Is().
var (
	// ErrInvalidArgument indicates a symbol shape the declaration builder cannot declare
	ErrInvalidArgument = New("invalid argument")

	// ErrNotFound indicates a referenced symbol or file does not exist
	ErrNotFound = New("not found")

	// ErrInvalidManifest indicates a malformed metadata manifest
	ErrInvalidManifest = New("invalid manifest")
)

// IsInvalidArgument checks if an error is or wraps ErrInvalidArgument
func IsInvalidArgument(err error) bool {
	return err != nil && Is(err, ErrInvalidArgument)
}

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// NewInvalidArgumentError creates an invalid-argument error with a formatted message
func NewInvalidArgumentError(format string, args ...interface{}) error {
	return Wrapf(ErrInvalidArgument, format, args...)
}

// NewManifestError creates an invalid-manifest error with a formatted message
func NewManifestError(format string, args ...interface{}) error {
	return Wrapf(ErrInvalidManifest, format, args...)
}
