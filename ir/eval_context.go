package ir

// EvalContext carries the per-frame inputs a Kernel or closure needs to
// produce a Value: the host clock sample, the domain element position for
// field-elementwise kernels, and a read-only handle into persistent state
// for the rare stateful escape-hatch closures the V1↔V2 bridge produces.
//
// EvalContext is supplied fresh by the runtime every frame (package
// runtime); kernels never retain it past the call that receives it.
type EvalContext struct {
	// T is the current host time in seconds, monotonic and unbounded.
	T float64
	// Dt is the frame delta time in seconds, already scaled by the
	// evaluator's speed factor.
	Dt float64
	// Frame is the monotonically increasing frame counter; used by the
	// frame cache to dedupe node evaluation, never by kernels themselves.
	Frame uint64
	// ElementIndex is the position of the current element within a
	// Domain, valid only while evaluating a Field map/zip kernel.
	ElementIndex int
	// ElementCount is the total element count of the Domain being
	// evaluated, valid alongside ElementIndex.
	ElementCount int
	// State is an opaque per-node persistent-state accessor for stateful
	// V1 closures bridged into the IR (lenses themselves are always
	// stateless per spec §4.2; only block compile output may carry
	// state, via this handle).
	State StateAccessor
}

// StateAccessor is the narrow interface a closure node uses to read and
// write its own persistent slot in the runtime's StateStore, addressed by
// the node's own StateKey. The runtime supplies the concrete
// implementation; ir never depends on the runtime package.
type StateAccessor interface {
	Get() (Value, bool)
	Set(Value)
}

// Kernel computes a single output Value from zero or more input Values.
// Unary transforms (most lenses/adapters) call it with a one-element
// slice; zip nodes call it with one element per source.
type Kernel func(ctx *EvalContext, ins []Value) Value
