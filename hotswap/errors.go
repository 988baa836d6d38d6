package hotswap

import "errors"

var (
	// The nil-input errors mirror compiler.Compile's nil-registry
	// rejection contract: programmer error, reported immediately rather
	// than surfacing as a queued compile failure.
	ErrNilBlockRegistry     = errors.New("hotswap: block registry is nil")
	ErrNilTransformRegistry = errors.New("hotswap: transform registry is nil")
	ErrNilPathfinder        = errors.New("hotswap: pathfinder is nil")

	// ErrNoPendingSwap is returned by Commit when no
	// RequestSwap is currently in flight.
	ErrNoPendingSwap = errors.New("hotswap: no pending swap")

	// ErrSwapNotReady is returned by Commit when a swap is pending but
	// its compile has not finished, or its Boundary condition does not
	// hold yet (e.g. BoundaryNextPulse before the pulse bus fires).
	ErrSwapNotReady = errors.New("hotswap: pending swap not ready to commit")

	// ErrClassCRequiresChoice is returned by RequestSwap when the edit
	// classifies as Class C and the caller did not supply a Boundary via
	// WithBoundary (spec §4.9: "requires explicit user choice... no
	// silent resets").
	ErrClassCRequiresChoice = errors.New("hotswap: class C edit requires an explicit boundary choice")

	// ErrCompileRejected is returned when the new patch fails to compile
	// (diag errors); the old program keeps running untouched.
	ErrCompileRejected = errors.New("hotswap: new patch failed to compile")

	// ErrSuperseded is the error a discarded in-flight compile's result
	// channel observes when a newer RequestSwap cancels it before it
	// finishes (spec §5: "pending compile discarded if newer edit
	// supersedes before swap").
	ErrSuperseded = errors.New("hotswap: superseded by a newer swap request")
)
