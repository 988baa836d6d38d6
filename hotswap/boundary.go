package hotswap

// Boundary is when a pending swap is allowed to commit.
type Boundary int

const (
	// BoundaryNextFrame commits at the start of the very next Step call
	// (ClassA/ClassB's default).
	BoundaryNextFrame Boundary = iota
	// BoundaryNextPulse commits only once the currently running
	// program's reserved pulse bus fires (cyclic patches only), the
	// preferred boundary for a ClassB edit on a cyclic patch per spec
	// §4.9.
	BoundaryNextPulse
	// BoundaryWhenFrozen commits only while the Scheduler is frozen.
	BoundaryWhenFrozen
	// BoundaryNow commits immediately, synchronously, the next time
	// Step or Commit is called — may reinitialize state for any
	// StateKey the new program doesn't carry forward.
	BoundaryNow
)

func (b Boundary) String() string {
	switch b {
	case BoundaryNextFrame:
		return "next-frame"
	case BoundaryNextPulse:
		return "next-pulse"
	case BoundaryWhenFrozen:
		return "when-frozen"
	case BoundaryNow:
		return "now"
	default:
		return "unknown"
	}
}
