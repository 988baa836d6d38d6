package diag

// LocationKind closes the set of graph elements a Location may point at.
type LocationKind int

// The closed set of location kinds.
const (
	LocBlock LocationKind = iota
	LocEdge
	LocPort
	LocBus
	LocSCC
)

// Location references one graph element a CompileError concerns, so the
// UI can navigate directly to it.
type Location struct {
	Kind LocationKind

	// BlockID is set for LocBlock/LocPort.
	BlockID string
	// SlotID is set for LocPort.
	SlotID string
	// EdgeID is set for LocEdge.
	EdgeID string
	// BusID is set for LocBus.
	BusID string
	// SCCBlockIDs is set for LocSCC: the block ids forming the illegal
	// cycle, in the deterministic order the cycle was detected.
	SCCBlockIDs []string
}
