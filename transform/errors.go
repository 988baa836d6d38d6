package transform

import "errors"

// Sentinel errors for transform registration and lookup. Callers branch
// via errors.Is; messages are never pattern-matched.
var (
	// ErrDuplicateTransformID indicates Register was called twice with the
	// same transformId.
	ErrDuplicateTransformID = errors.New("transform: duplicate transform id")

	// ErrLensChangesType indicates a lens entry whose OutputType does not
	// preserve the InputType's world/domain/category.
	ErrLensChangesType = errors.New("transform: lens must preserve world, domain, and category")

	// ErrAdapterMissingPolicy indicates an adapter entry registered with a
	// Policy outside {Auto, Suggest, Explicit}.
	ErrAdapterMissingPolicy = errors.New("transform: adapter missing policy")

	// ErrNilApply indicates an entry registered with a nil Apply function.
	ErrNilApply = errors.New("transform: nil Apply function")

	// ErrNilCompileToIR indicates an entry registered with a nil
	// CompileToIR function.
	ErrNilCompileToIR = errors.New("transform: nil CompileToIR function")

	// ErrUnknownTransform indicates a lookup for a transformId that was
	// never registered; surfaced to the UI as diag's UnknownTransform code.
	ErrUnknownTransform = errors.New("transform: unknown transform id")

	// ErrReductionModeRequired indicates ReduceFieldToSignal was
	// instantiated with no "mode" param bound (resolved Open Question 1:
	// explicit only, never defaults to mean).
	ErrReductionModeRequired = errors.New("transform: ReduceFieldToSignal requires an explicit mode param")
)
