package txn

import (
	"github.com/patchgraph/corepatch/ir"
	"github.com/patchgraph/corepatch/patch"
)

// OpKind closes the vocabulary spec §4.12 names: "add/remove block,
// add/remove edge, set-params, set-transforms, set-combine,
// set-time-root, many-op".
type OpKind int

// The closed set of OpKind values.
const (
	OpAddBlock OpKind = iota
	OpRemoveBlock
	OpAddEdge
	OpRemoveEdge
	OpSetParams
	OpSetTransforms
	OpSetCombine
	OpSetTimeRoot
	OpMany
)

func (k OpKind) String() string {
	switch k {
	case OpAddBlock:
		return "add-block"
	case OpRemoveBlock:
		return "remove-block"
	case OpAddEdge:
		return "add-edge"
	case OpRemoveEdge:
		return "remove-edge"
	case OpSetParams:
		return "set-params"
	case OpSetTransforms:
		return "set-transforms"
	case OpSetCombine:
		return "set-combine"
	case OpSetTimeRoot:
		return "set-time-root"
	case OpMany:
		return "many-op"
	default:
		return "unknown"
	}
}

// Op is one atomic transaction op. Only the fields matching Kind are
// meaningful, the same tagged-union discipline patch.TransformStep and
// blocks.BlockDef's V1/V2 compile fields already follow in this codebase.
type Op struct {
	Kind OpKind

	// Block is used by OpAddBlock.
	Block patch.Block

	// Edge is used by OpAddEdge.
	Edge patch.Edge

	// BlockID is used by OpRemoveBlock, OpSetParams, OpSetCombine,
	// OpSetTimeRoot.
	BlockID string

	// EdgeID is used by OpRemoveEdge, OpSetTransforms.
	EdgeID string

	// Params is used by OpSetParams: each entry is set via
	// patch.Patch.SetParam in map-iteration-independent (sorted key)
	// order, so a multi-key SetParams op is still deterministic.
	Params map[string]ir.Value

	// Transforms is used by OpSetTransforms.
	Transforms []patch.TransformStep

	// CombineWhen/CombineMode are used by OpSetCombine; either may be left
	// empty to leave that half of the policy untouched (patch.SetCombine's
	// own empty-means-unchanged contract).
	CombineWhen string
	CombineMode string

	// TimeRootType/TimeRootParams are used by OpSetTimeRoot: the new
	// archetype Type (must be registered with Role == blocks.RoleTimeRoot)
	// and its full replacement Params.
	TimeRootType   string
	TimeRootParams map[string]ir.Value

	// Ops is used by OpMany: a nested sequence applied in order as part of
	// the same all-or-nothing transaction.
	Ops []Op
}

// AddBlock builds an OpAddBlock.
func AddBlock(b patch.Block) Op { return Op{Kind: OpAddBlock, Block: b} }

// RemoveBlock builds an OpRemoveBlock.
func RemoveBlock(blockID string) Op { return Op{Kind: OpRemoveBlock, BlockID: blockID} }

// AddEdge builds an OpAddEdge.
func AddEdge(e patch.Edge) Op { return Op{Kind: OpAddEdge, Edge: e} }

// RemoveEdge builds an OpRemoveEdge.
func RemoveEdge(edgeID string) Op { return Op{Kind: OpRemoveEdge, EdgeID: edgeID} }

// SetParams builds an OpSetParams.
func SetParams(blockID string, params map[string]ir.Value) Op {
	return Op{Kind: OpSetParams, BlockID: blockID, Params: params}
}

// SetTransforms builds an OpSetTransforms.
func SetTransforms(edgeID string, steps []patch.TransformStep) Op {
	return Op{Kind: OpSetTransforms, EdgeID: edgeID, Transforms: steps}
}

// SetCombine builds an OpSetCombine.
func SetCombine(blockID, when, mode string) Op {
	return Op{Kind: OpSetCombine, BlockID: blockID, CombineWhen: when, CombineMode: mode}
}

// SetTimeRoot builds an OpSetTimeRoot: retarget the patch's existing
// TimeRoot block (found by registered Role, not by id) to newType/params.
func SetTimeRoot(newType string, params map[string]ir.Value) Op {
	return Op{Kind: OpSetTimeRoot, TimeRootType: newType, TimeRootParams: params}
}

// Many builds an OpMany wrapping ops, applied in order as one nested
// group within the enclosing transaction.
func Many(ops ...Op) Op { return Op{Kind: OpMany, Ops: ops} }
