package typesystem

import "errors"

// Sentinel errors for the typesystem package. Callers branch on these via
// errors.Is; messages are never pattern-matched.
var (
	// ErrUnknownDomain indicates a Domain value outside the closed set this
	// package recognizes.
	ErrUnknownDomain = errors.New("typesystem: unknown domain")

	// ErrUnknownWorld indicates a World value outside the closed set.
	ErrUnknownWorld = errors.New("typesystem: unknown world")

	// ErrUnknownCategory indicates a Category value outside the closed set.
	ErrUnknownCategory = errors.New("typesystem: unknown category")

	// ErrCategoryDowncast indicates a would-be assignment that violates the
	// category direction (internal -> core) with no adapter resolving it.
	ErrCategoryDowncast = errors.New("typesystem: category downcast requires an adapter")
)
