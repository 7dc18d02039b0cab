// Package common defines shared constants and sentinel errors used across
// the user-storer layers. Callers should use errors.Is to match these
// values; wrapping errors with fmt.Errorf("...: %w", err) keeps the
// original cause available for diagnostics.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")

	// Service-level errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidInput       = errors.New("invalid input")

	// Key material / secret retrieval errors.
	ErrInvalidKeyMaterial = errors.New("invalid key material")
	ErrSecretUnavailable  = errors.New("secret unavailable")
)
