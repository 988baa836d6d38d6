package compiler

import "errors"

// Sentinel errors for Compile's own argument validation. These are
// distinct from diag.CompileError: they indicate a programmer error in
// how Compile was called, never a defect in the patch being compiled.
var (
	// ErrNilBlockRegistry indicates Compile was called with a nil
	// *blocks.Registry.
	ErrNilBlockRegistry = errors.New("compiler: nil block registry")

	// ErrNilTransformRegistry indicates Compile was called with a nil
	// *transform.Registry.
	ErrNilTransformRegistry = errors.New("compiler: nil transform registry")

	// ErrNilPathfinder indicates Compile was called with a nil
	// *pathfinder.Finder.
	ErrNilPathfinder = errors.New("compiler: nil pathfinder")
)
