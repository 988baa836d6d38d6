package compiler

import (
	"github.com/patchgraph/corepatch/blocks"
	"github.com/patchgraph/corepatch/diag"
	"github.com/patchgraph/corepatch/patch"
	"github.com/patchgraph/corepatch/pathfinder"
	"github.com/patchgraph/corepatch/transform"
	"github.com/patchgraph/corepatch/typesystem"
)

// pass2Types resolves every active edge's final flowing type (spec §4.6
// Pass 2): walking its declared lens/adapter chain, checking each step's
// input type against the value already flowing, and — when the chain's
// final type isn't directly assignable to the destination slot — asking
// the pathfinder for an adapter chain to bridge the gap. Errors append to
// st.errs; edges that fail to resolve contribute no edgeType/edgeSteps
// entry and are excluded from every later pass once Pass 2 as a whole is
// fatal.
func pass2Types(st *state, active []patch.Edge) {
	srcType := make(map[string]typesystem.TypeDesc, len(active))

	// Round 0: resolve every edge whose source is a normal block output
	// directly from the registry, and use the first such writer into each
	// BusBlock's "in" slot to infer that bus's slot type.
	for _, e := range active {
		fromBlock, ok := st.p.Block(e.From.BlockID)
		if !ok || fromBlock.Type == blocks.BusBlockType {
			continue
		}

		t, ok := registeredOutputType(st.blockReg, fromBlock, e.From.SlotID)
		if !ok {
			continue
		}
		srcType[e.ID] = t

		toBlock, ok := st.p.Block(e.To.BlockID)
		if ok && toBlock.Type == blocks.BusBlockType && e.To.SlotID == "in" {
			if _, known := st.busType[toBlock.ID]; !known {
				st.busType[toBlock.ID] = t
			}
		}
	}

	// Fixpoint rounds: a BusBlock may itself feed another BusBlock, or be
	// read before its type is established in array order; a few rounds
	// resolve any such chain without requiring a full dependency sort
	// this early in compilation.
	for round := 0; round < 4; round++ {
		progressed := false

		for _, e := range active {
			if _, done := srcType[e.ID]; done {
				continue
			}

			fromBlock, ok := st.p.Block(e.From.BlockID)
			if !ok || fromBlock.Type != blocks.BusBlockType {
				continue
			}

			t, known := st.busType[fromBlock.ID]
			if !known {
				continue
			}
			srcType[e.ID] = t
			progressed = true

			toBlock, ok := st.p.Block(e.To.BlockID)
			if ok && toBlock.Type == blocks.BusBlockType && e.To.SlotID == "in" {
				if _, known := st.busType[toBlock.ID]; !known {
					st.busType[toBlock.ID] = t
				}
			}
		}

		if !progressed {
			break
		}
	}

	for _, e := range active {
		current, ok := srcType[e.ID]
		if !ok {
			st.errs = append(st.errs, diag.New(
				diag.CodeTypeMismatch,
				"Unresolved source type",
				"edge "+e.ID+" source type could not be resolved",
				diag.Location{Kind: diag.LocEdge, EdgeID: e.ID},
			))

			continue
		}

		destType, ok := destSlotType(st, e)
		if !ok {
			st.errs = append(st.errs, diag.New(
				diag.CodeTypeMismatch,
				"Unresolved destination type",
				"edge "+e.ID+" destination slot type could not be resolved",
				diag.Location{Kind: diag.LocEdge, EdgeID: e.ID},
			))

			continue
		}

		final, steps, ok := resolveEdgeChain(st, e, current)
		if !ok {
			continue
		}

		if !typesystem.Assignable(final, destType) {
			adapterSteps, adapted, ok := insertAdapterChain(st, e, final, destType)
			if !ok {
				continue
			}
			steps = append(steps, adapterSteps...)
			final = adapted
		}

		st.edgeType[e.ID] = final
		st.edgeSteps[e.ID] = steps
	}
}

// registeredOutputType resolves b's output slot type from the block
// registry; BusBlock instances are never registered, so callers handle
// them separately via st.busType.
func registeredOutputType(reg *blocks.Registry, b patch.Block, slotID string) (typesystem.TypeDesc, bool) {
	def, err := reg.Get(b.Type)
	if err != nil {
		return typesystem.TypeDesc{}, false
	}
	for _, out := range def.Outputs {
		if out.ID == slotID {
			return out.Type, true
		}
	}

	return typesystem.TypeDesc{}, false
}

// destSlotType resolves e's destination slot type: a BusBlock's "in" slot
// takes the bus's inferred type; a normal block's input slot takes its
// registered type.
func destSlotType(st *state, e patch.Edge) (typesystem.TypeDesc, bool) {
	toBlock, ok := st.p.Block(e.To.BlockID)
	if !ok {
		return typesystem.TypeDesc{}, false
	}

	if toBlock.Type == blocks.BusBlockType {
		t, known := st.busType[toBlock.ID]

		return t, known
	}

	def, err := st.blockReg.Get(toBlock.Type)
	if err != nil {
		return typesystem.TypeDesc{}, false
	}
	for _, in := range def.Inputs {
		if in.ID == e.To.SlotID {
			return in.Type, true
		}
	}

	return typesystem.TypeDesc{}, false
}

// resolveEdgeChain walks e's declared transform chain, checking each
// step's input type against the value flowing so far and rejecting a
// declared adapter step that violates the compile-time adapter policy
// (spec §4.2/§4.3). Returns the type flowing out of the last declared
// step and ok=false if resolution failed (an error has already been
// appended to st.errs).
func resolveEdgeChain(st *state, e patch.Edge, current typesystem.TypeDesc) (typesystem.TypeDesc, []resolvedStep, bool) {
	steps := make([]resolvedStep, 0, len(e.Transforms))

	for _, step := range e.Transforms {
		entry, err := st.transformReg.Get(step.TransformID)
		if err != nil {
			st.errs = append(st.errs, diag.New(
				diag.CodeUnknownTransform,
				"Unknown transform",
				"edge "+e.ID+" references unregistered transform "+step.TransformID,
				diag.Location{Kind: diag.LocEdge, EdgeID: e.ID},
			))

			return typesystem.TypeDesc{}, nil, false
		}

		if !typesystem.Equal(entry.InputType, current) {
			st.errs = append(st.errs, diag.New(
				diag.CodeTypeMismatch,
				"Transform input type mismatch",
				"edge "+e.ID+" transform "+step.TransformID+": expected "+typesystem.Format(entry.InputType)+", got "+typesystem.Format(current),
				diag.Location{Kind: diag.LocEdge, EdgeID: e.ID},
			))

			return typesystem.TypeDesc{}, nil, false
		}

		if entry.Kind == transform.Adapter {
			if entry.Policy == transform.PolicyExplicit && !st.cfg.allowExplicitAdapters {
				st.errs = append(st.errs, diag.New(
					diag.CodeAdapterPolicyViolation,
					"Adapter policy violation",
					"edge "+e.ID+" uses explicit-policy adapter "+step.TransformID+" without WithAllowExplicitAdapters",
					diag.Location{Kind: diag.LocEdge, EdgeID: e.ID},
				))

				return typesystem.TypeDesc{}, nil, false
			}
			if entry.Cost >= transform.HeavyCostThreshold && !st.cfg.allowHeavyAdapters {
				st.errs = append(st.errs, diag.New(
					diag.CodeAdapterPolicyViolation,
					"Adapter policy violation",
					"edge "+e.ID+" uses heavy adapter "+step.TransformID+" without WithAllowHeavyAdapters",
					diag.Location{Kind: diag.LocEdge, EdgeID: e.ID},
				))

				return typesystem.TypeDesc{}, nil, false
			}
		}

		steps = append(steps, resolvedStep{Kind: entry.Kind, TransformID: step.TransformID, Params: step.Params})
		current = entry.OutputType
	}

	return current, steps, true
}

// insertAdapterChain asks the pathfinder for a path from current to dest
// and, if one is found and allowed, converts it into resolvedSteps. ok is
// false if no usable path exists; an error has already been appended to
// st.errs.
func insertAdapterChain(st *state, e patch.Edge, current, dest typesystem.TypeDesc) ([]resolvedStep, typesystem.TypeDesc, bool) {
	path, found, err := st.finder.Find(current, dest, pathfinder.Context{
		AllowExplicit: st.cfg.allowExplicitAdapters,
		AllowHeavy:    st.cfg.allowHeavyAdapters,
	})
	if err != nil || !found {
		st.errs = append(st.errs, diag.New(
			diag.CodeTypeMismatch,
			"Type mismatch",
			"edge "+e.ID+": "+typesystem.Format(current)+" is not assignable to "+typesystem.Format(dest)+" and no adapter path exists",
			diag.Location{Kind: diag.LocEdge, EdgeID: e.ID},
		))

		return nil, typesystem.TypeDesc{}, false
	}

	if path.RequiresConfirmation && !st.cfg.allowSuggestedAdapters {
		st.errs = append(st.errs, diag.New(
			diag.CodeTypeMismatch,
			"Type mismatch",
			"edge "+e.ID+": "+typesystem.Format(current)+" is not assignable to "+typesystem.Format(dest),
			diag.Location{Kind: diag.LocEdge, EdgeID: e.ID},
		).WithHelp("a suggested adapter path exists; pass compiler.WithAllowSuggestedAdapters to accept it"))

		return nil, typesystem.TypeDesc{}, false
	}

	steps := make([]resolvedStep, 0, len(path.Steps))
	for _, s := range path.Steps {
		entry, err := st.transformReg.Get(s.TransformID)
		if err != nil {
			st.errs = append(st.errs, diag.New(
				diag.CodeUnknownTransform,
				"Unknown transform",
				"edge "+e.ID+" synthesized adapter "+s.TransformID+" is not registered",
				diag.Location{Kind: diag.LocEdge, EdgeID: e.ID},
			))

			return nil, typesystem.TypeDesc{}, false
		}

		steps = append(steps, resolvedStep{Kind: entry.Kind, TransformID: s.TransformID})
		current = entry.OutputType
	}

	return steps, current, true
}
