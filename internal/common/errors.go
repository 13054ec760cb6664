// Package common defines shared sentinel errors used across the service and
// repository layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// ErrValidation covers caller mistakes: a scope over its cap, a
	// malformed star target, a malformed explicit index. The wrapping
	// message carries the actionable detail.
	ErrValidation = errors.New("validation error")

	// ErrInternal is generic/internal flow control.
	ErrInternal = errors.New("internal error")
)
