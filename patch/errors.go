package patch

import "errors"

// Sentinel errors for patch mutators. Callers branch via errors.Is;
// messages are never pattern-matched.
var (
	// ErrEmptyBlockID indicates a Block with an empty ID was submitted.
	ErrEmptyBlockID = errors.New("patch: empty block id")

	// ErrEmptyBlockType indicates SetBlockType was called with an empty
	// newType.
	ErrEmptyBlockType = errors.New("patch: empty block type")

	// ErrDuplicateBlockID indicates AddBlock was called with an id already
	// present in the patch.
	ErrDuplicateBlockID = errors.New("patch: duplicate block id")

	// ErrUnknownBlock indicates an operation referenced a block id not
	// present in the patch.
	ErrUnknownBlock = errors.New("patch: unknown block id")

	// ErrEmptyEdgeID indicates an Edge with an empty ID was submitted.
	ErrEmptyEdgeID = errors.New("patch: empty edge id")

	// ErrDuplicateEdgeID indicates AddEdge was called with an id already
	// present in the patch.
	ErrDuplicateEdgeID = errors.New("patch: duplicate edge id")

	// ErrDuplicateEdgeEndpoints indicates AddEdge was called with a
	// (from, to) pair that already has an enabled or disabled edge between
	// them (spec §3: "no duplicate edges with identical (from,to)").
	ErrDuplicateEdgeEndpoints = errors.New("patch: duplicate edge endpoints")

	// ErrUnknownEdge indicates an operation referenced an edge id not
	// present in the patch.
	ErrUnknownEdge = errors.New("patch: unknown edge id")

	// ErrEndpointBlockMissing indicates an edge's from or to endpoint names
	// a block id not present in the patch.
	ErrEndpointBlockMissing = errors.New("patch: edge endpoint references a missing block")

	// ErrNotBusBlock indicates SetCombine targeted a block whose Type is
	// not "BusBlock" — combine policy only applies to a bus's sole input
	// slot, never to an archetype block's fixed InputSlot.Combine.
	ErrNotBusBlock = errors.New("patch: set-combine targets a non-bus block")
)
