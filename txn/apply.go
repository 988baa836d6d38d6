package txn

import (
	"fmt"
	"sort"

	"github.com/patchgraph/corepatch/blocks"
	"github.com/patchgraph/corepatch/diag"
	"github.com/patchgraph/corepatch/patch"
)

// ApplyTx applies ops to p as a single atomic transaction: every op is
// validated against the patch state the preceding op in this same
// transaction produced, and the first validation failure aborts the whole
// transaction, returning p itself unchanged alongside the diagnostic.
// Success returns the new snapshot and one Event per op actually applied,
// in order (spec §4.12).
func ApplyTx(p patch.Patch, reg *blocks.Registry, ops ...Op) (patch.Patch, []Event, []diag.CompileError) {
	if reg == nil {
		return p, nil, []diag.CompileError{
			diag.New(diag.CodeInvalidOp, "invalid transaction op", ErrNilBlockRegistry.Error()),
		}
	}

	working := p
	events := make([]Event, 0, len(ops))

	idx := 0
	var walk func(ops []Op) *diag.CompileError
	walk = func(ops []Op) *diag.CompileError {
		for _, op := range ops {
			if op.Kind == OpMany {
				if len(op.Ops) == 0 {
					ce := invalidOpError(idx, op.Kind, ErrEmptyMany)
					return &ce
				}
				if ce := walk(op.Ops); ce != nil {
					return ce
				}
				continue
			}

			next, ev, err := applyOp(working, reg, op)
			if err != nil {
				ce := invalidOpError(idx, op.Kind, err)
				return &ce
			}
			working = next
			events = append(events, ev)
			idx++
		}
		return nil
	}

	if ce := walk(ops); ce != nil {
		return p, nil, []diag.CompileError{*ce}
	}

	return working, events, nil
}

func invalidOpError(index int, kind OpKind, err error) diag.CompileError {
	return diag.New(diag.CodeInvalidOp, "invalid transaction op",
		fmt.Sprintf("op %d (%s): %v", index, kind, err)).
		WithDetails(map[string]string{"opKind": kind.String()})
}

// applyOp applies a single non-Many op against working, returning the
// Event it produced.
func applyOp(working patch.Patch, reg *blocks.Registry, op Op) (patch.Patch, Event, error) {
	switch op.Kind {
	case OpAddBlock:
		if op.Block.Type != "" {
			if _, err := reg.Get(op.Block.Type); err != nil {
				return patch.Patch{}, Event{}, err
			}
		}
		next, err := working.AddBlock(op.Block)
		return next, Event{Kind: EventBlockAdded, BlockID: op.Block.ID}, err

	case OpRemoveBlock:
		next, err := working.RemoveBlock(op.BlockID)
		return next, Event{Kind: EventBlockRemoved, BlockID: op.BlockID}, err

	case OpAddEdge:
		next, err := working.AddEdge(op.Edge)
		return next, Event{Kind: EventEdgeAdded, EdgeID: op.Edge.ID}, err

	case OpRemoveEdge:
		next, err := working.RemoveEdge(op.EdgeID)
		return next, Event{Kind: EventEdgeRemoved, EdgeID: op.EdgeID}, err

	case OpSetParams:
		next := working
		var err error
		for _, name := range sortedKeys(op.Params) {
			next, err = next.SetParam(op.BlockID, name, op.Params[name])
			if err != nil {
				return patch.Patch{}, Event{}, err
			}
		}
		return next, Event{Kind: EventParamsChanged, BlockID: op.BlockID}, nil

	case OpSetTransforms:
		next, err := working.SetTransforms(op.EdgeID, op.Transforms)
		return next, Event{Kind: EventTransformsChanged, EdgeID: op.EdgeID}, err

	case OpSetCombine:
		next, err := working.SetCombine(op.BlockID, op.CombineWhen, op.CombineMode)
		return next, Event{Kind: EventCombineChanged, BlockID: op.BlockID}, err

	case OpSetTimeRoot:
		return applySetTimeRoot(working, reg, op)

	default:
		return patch.Patch{}, Event{}, ErrUnknownOpKind
	}
}

func applySetTimeRoot(working patch.Patch, reg *blocks.Registry, op Op) (patch.Patch, Event, error) {
	def, err := reg.Get(op.TimeRootType)
	if err != nil {
		return patch.Patch{}, Event{}, err
	}
	if def.Role != blocks.RoleTimeRoot {
		return patch.Patch{}, Event{}, ErrUnregisteredTimeRootType
	}

	root := findTimeRootBlock(working, reg)
	if root == nil {
		return patch.Patch{}, Event{}, ErrNoTimeRoot
	}

	next, err := working.SetBlockType(root.ID, op.TimeRootType, op.TimeRootParams)
	return next, Event{Kind: EventTimeRootChanged, BlockID: root.ID}, err
}

// findTimeRootBlock locates the patch's single TimeRoot block by
// resolving each block's registered Role, the same contract
// hotswap.ClassifyEdit's findTimeRoot and the compiler's Time Topology
// pass both use.
func findTimeRootBlock(p patch.Patch, reg *blocks.Registry) *patch.Block {
	for _, b := range p.Blocks() {
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

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
