package hotswap

import (
	"reflect"

	"github.com/patchgraph/corepatch/blocks"
	"github.com/patchgraph/corepatch/patch"
)

// EditClass is the closed tri-state classification spec §4.9 assigns to
// every patch edit.
type EditClass int

const (
	// ClassA is a param-only edit: swap at the next frame boundary,
	// preserve all state, no UI interruption.
	ClassA EditClass = iota
	// ClassB is a structural but state-preservable edit: swap at the
	// next frame (or next pulse for a cyclic patch); state for every
	// StateKey present in both programs with a matching node kind
	// carries forward.
	ClassB
	// ClassC is a topology/identity edit (TimeRoot kind change, Domain
	// identity change, a change that moves memory placement across an
	// SCC boundary): requires an explicit boundary choice, never swaps
	// silently.
	ClassC
)

func (c EditClass) String() string {
	switch c {
	case ClassA:
		return "A"
	case ClassB:
		return "B"
	case ClassC:
		return "C"
	default:
		return "unknown"
	}
}

// ClassifyEdit compares oldPatch (the patch the currently active program
// was compiled from) against newPatch and returns the highest edit class
// any detected difference warrants. reg resolves each block's registered
// Role (TimeRoot, Memory) the same way the compiler's own passes do —
// patch.Block.Role is reserved for synthesized default-source providers,
// never authoritative for a user-authored block's archetype role.
func ClassifyEdit(oldPatch, newPatch patch.Patch, reg *blocks.Registry) EditClass {
	oldBlocks := blocksByID(oldPatch)
	newBlocks := blocksByID(newPatch)

	if timeRootChanged(oldBlocks, newBlocks, reg) || memoryPlacementChanged(oldPatch, newPatch, reg) {
		return ClassC
	}

	if topologyChanged(oldPatch, newPatch, oldBlocks, newBlocks) {
		return ClassB
	}

	return ClassA
}

func blocksByID(p patch.Patch) map[string]patch.Block {
	out := make(map[string]patch.Block)
	for _, b := range p.Blocks() {
		out[b.ID] = b
	}

	return out
}

// topologyChanged reports whether anything other than a block's Params or
// an edge's Transforms differs: added/removed blocks, a block's Type, or
// the edge set's endpoints/enablement.
func topologyChanged(oldPatch, newPatch patch.Patch, oldBlocks, newBlocks map[string]patch.Block) bool {
	if len(oldBlocks) != len(newBlocks) {
		return true
	}
	for id, ob := range oldBlocks {
		nb, ok := newBlocks[id]
		if !ok || ob.Type != nb.Type {
			return true
		}
	}

	oldEdges := edgesByID(oldPatch)
	newEdges := edgesByID(newPatch)
	if len(oldEdges) != len(newEdges) {
		return true
	}
	for id, oe := range oldEdges {
		ne, ok := newEdges[id]
		if !ok || oe.From != ne.From || oe.To != ne.To || oe.Enabled != ne.Enabled {
			return true
		}
	}

	return false
}

func edgesByID(p patch.Patch) map[string]patch.Edge {
	out := make(map[string]patch.Edge)
	for _, e := range p.Edges() {
		out[e.ID] = e
	}

	return out
}

// timeRootChanged reports whether the patch's TimeRoot block (found by
// resolving each block's registered Role, the compiler's own
// timemodel.LocateTimeRoot contract) changed identity or archetype Type
// between the two patches.
func timeRootChanged(oldBlocks, newBlocks map[string]patch.Block, reg *blocks.Registry) bool {
	oldRoot := findTimeRoot(oldBlocks, reg)
	newRoot := findTimeRoot(newBlocks, reg)

	if (oldRoot == nil) != (newRoot == nil) {
		return true
	}
	if oldRoot == nil {
		return false
	}

	return oldRoot.ID != newRoot.ID || oldRoot.Type != newRoot.Type
}

func findTimeRoot(byID map[string]patch.Block, reg *blocks.Registry) *patch.Block {
	for _, b := range byID {
		def, err := reg.Get(b.Type)
		if err != nil {
			continue
		}
		if def.Role == blocks.RoleTimeRoot {
			bCopy := b

			return &bCopy
		}
	}

	return nil
}

// memoryPlacementChanged approximates spec §4.9's "change that alters SCC
// memory placement" trigger: rather than re-running Pass 4's full cycle
// detection here (that analysis belongs to compiler.Compile, which
// RequestSwap always runs on the new patch before ever considering a
// swap), this checks whether the set of RoleMemory blocks that currently
// sit on a feedback edge (at least one incoming and one outgoing active
// edge) changed. Losing or gaining a memory block's feedback role is a
// conservative proxy for "placement changed": it never misses an actual
// SCC boundary move without also toggling this set, though it may also
// flag Class C for edits that keep the same SCC shape but only touch an
// unrelated feedback edge elsewhere in the patch — acceptable, since
// Class C only demands an explicit user choice, never a silent reset.
func memoryPlacementChanged(oldPatch, newPatch patch.Patch, reg *blocks.Registry) bool {
	return !reflect.DeepEqual(feedbackMemoryBlocks(oldPatch, reg), feedbackMemoryBlocks(newPatch, reg))
}

func feedbackMemoryBlocks(p patch.Patch, reg *blocks.Registry) map[string]struct{} {
	hasIn := make(map[string]bool)
	hasOut := make(map[string]bool)
	for _, e := range p.Edges() {
		if !e.Enabled {
			continue
		}
		hasOut[e.From.BlockID] = true
		hasIn[e.To.BlockID] = true
	}

	out := make(map[string]struct{})
	for _, b := range p.Blocks() {
		def, err := reg.Get(b.Type)
		if err != nil || def.Role != blocks.RoleMemory {
			continue
		}
		if hasIn[b.ID] && hasOut[b.ID] {
			out[b.ID] = struct{}{}
		}
	}

	return out
}
