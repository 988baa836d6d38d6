package compiler

import (
	"fmt"

	"github.com/patchgraph/corepatch/blocks"
	"github.com/patchgraph/corepatch/diag"
	"github.com/patchgraph/corepatch/ir"
	"github.com/patchgraph/corepatch/patch"
	"github.com/patchgraph/corepatch/transform"
	"github.com/patchgraph/corepatch/typesystem"
)

// pass5to8Lower walks st.order, the Pass 4 schedule, and for each block:
// resolves every input's writers per its combine policy (Pass 5), invokes
// the block's compile function (Pass 6), aliases a BusBlock's "out" to
// its already-resolved "in" rather than allocating a node (Pass 7), and
// resolves that block's own transform param bindings along the way
// (Pass 8) — one walk instead of four, since each step needs exactly the
// ValueRefs the previous step in the same iteration just produced.
func pass5to8Lower(st *state, active []patch.Edge) {
	writersByInput := groupWritersByInput(active)

	for _, id := range st.order {
		b, ok := st.p.Block(id)
		if !ok {
			continue
		}

		if b.Type == blocks.BusBlockType {
			lowerBusBlock(st, b, writersByInput)

			continue
		}

		def, err := st.blockReg.Get(b.Type)
		if err != nil {
			continue // Pass 1 already reported unknown types
		}

		lowerBlock(st, b, def, writersByInput)
	}
}

// groupWritersByInput indexes every active edge by its destination
// (blockID, slotID), preserving the deterministic (sortKey, id) order
// pass1Normalize's caller already established.
func groupWritersByInput(active []patch.Edge) map[string]map[string][]patch.Edge {
	out := make(map[string]map[string][]patch.Edge)
	for _, e := range active {
		byBlock, ok := out[e.To.BlockID]
		if !ok {
			byBlock = make(map[string][]patch.Edge)
			out[e.To.BlockID] = byBlock
		}
		byBlock[e.To.SlotID] = append(byBlock[e.To.SlotID], e)
	}

	return out
}

func lowerBusBlock(st *state, b patch.Block, writersByInput map[string]map[string][]patch.Edge) {
	t, known := st.busType[b.ID]
	if !known {
		// no writer ever resolved a type for this bus; it carries only
		// its configured default literal.
		t = typesystem.TypeDesc{}
	}

	writers := writersByInput[b.ID]["in"]
	policy := busCombinePolicy(b)
	defaultLit := busDefaultLiteral(b)

	ref, ok := resolveWriters(st, b.ID, writers, policy, defaultLit, t)
	if !ok {
		return
	}

	st.blockOutputs[b.ID] = map[string]ir.ValueRef{"out": ref}
}

func lowerBlock(st *state, b patch.Block, def blocks.BlockDef, writersByInput map[string]map[string][]patch.Edge) {
	inputs := make(map[string]ir.ValueRef, len(def.Inputs))

	for _, in := range def.Inputs {
		// Pass 0 already guarantees every input slot has at least one
		// writer or compilation has already aborted with CodeUnfedInput;
		// the zero-writer fallback in resolveWriters is unreachable here,
		// kept only so resolveWriters has one shared implementation with
		// lowerBusBlock, whose "in" slot legitimately has zero writers.
		writers := writersByInput[b.ID][in.ID]

		ref, ok := resolveWriters(st, b.ID, writers, in.Combine, ir.Number(0), in.Type)
		if !ok {
			return
		}
		inputs[in.ID] = ref
	}

	if !def.Hidden {
		st.stateKeys[b.ID] = b.ID
	}

	if def.IsV2() {
		outs, err := def.CompileV2(blocks.CompileArgsV2{
			ID:      b.ID,
			Params:  b.Params,
			Inputs:  inputs,
			Builder: st.builder,
			Ctx:     blocks.CompileCtx{},
		})
		if err != nil {
			st.errs = append(st.errs, diag.New(
				diag.CodeUnknownBlockType,
				"Block compile failed",
				"block "+b.ID+": "+err.Error(),
				diag.Location{Kind: diag.LocBlock, BlockID: b.ID},
			))

			return
		}
		st.blockOutputs[b.ID] = outs

		return
	}

	artifacts := make(map[string]ir.Artifact, len(inputs))
	for slotID, ref := range inputs {
		var slotType typesystem.TypeDesc
		for _, in := range def.Inputs {
			if in.ID == slotID {
				slotType = in.Type
			}
		}

		lit, ok := st.constLiteral(ref)
		if !ok {
			st.errs = append(st.errs, diag.New(
				diag.CodeLegacyInputNotConstant,
				"Legacy block input is not constant",
				"block "+b.ID+" input "+slotID+" does not resolve to a compile-time constant",
				diag.Location{Kind: diag.LocPort, BlockID: b.ID, SlotID: slotID},
			))

			return
		}
		artifacts[slotID] = ir.Artifact{Type: slotType, Value: lit}
	}

	outs, err := def.Compile(blocks.CompileArgs{
		ID:     b.ID,
		Params: b.Params,
		Inputs: artifacts,
		Ctx:    blocks.CompileCtx{},
	})
	if err != nil {
		st.errs = append(st.errs, diag.New(
			diag.CodeUnknownBlockType,
			"Block compile failed",
			"block "+b.ID+": "+err.Error(),
			diag.Location{Kind: diag.LocBlock, BlockID: b.ID},
		))

		return
	}

	refs := make(map[string]ir.ValueRef, len(outs))
	for id, art := range outs {
		refs[id] = ir.Bridge(st.builder, art)
	}
	st.blockOutputs[b.ID] = refs
}

// resolveWriters resolves a single input slot's final ValueRef given its
// (possibly empty, possibly multi-entry) writer list and combine policy
// (spec §3/§4.6 Pass 5): zero writers fall back to defaultLit, one writer
// under WhenMulti passes through resolveEdgeValue directly, and more than
// one writer (or any writer under WhenAlways) folds through the combine
// kernel its CombineMode names.
func resolveWriters(st *state, blockID string, writers []patch.Edge, policy blocks.CombinePolicy, defaultLit ir.Value, t typesystem.TypeDesc) (ir.ValueRef, bool) {
	if len(writers) == 0 {
		return st.constOf(defaultLit), true
	}

	// WhenMulti only allocates a combine node once there actually is more
	// than one writer; a single writer passes through untouched. WhenAlways
	// allocates the combine node unconditionally, even for one writer, so
	// the node shape never depends on how many writers happen to exist.
	if len(writers) == 1 && policy.When == blocks.WhenMulti {
		return resolveEdgeValue(st, writers[0])
	}

	if policy.Mode == blocks.ModeError {
		if len(writers) > 1 {
			st.errs = append(st.errs, diag.New(
				diag.CodeMultiWriterForbidden,
				"Multiple writers forbidden",
				"input of block "+blockID+" has "+fmt.Sprintf("%d", len(writers))+" writers but its combine policy forbids more than one",
				diag.Location{Kind: diag.LocBlock, BlockID: blockID},
			))

			return ir.ValueRef{}, false
		}

		return resolveEdgeValue(st, writers[0])
	}

	srcs := make([]ir.ValueRef, 0, len(writers))
	for _, w := range writers {
		ref, ok := resolveEdgeValue(st, w)
		if !ok {
			return ir.ValueRef{}, false
		}
		srcs = append(srcs, ref)
	}

	kernel, label, ok := combineKernel(policy.Mode)
	if !ok {
		st.errs = append(st.errs, diag.New(
			diag.CodeCombineModeUnsupported,
			"Combine mode unsupported",
			"input of block "+blockID+" uses an unsupported combine mode",
			diag.Location{Kind: diag.LocBlock, BlockID: blockID},
		))

		return ir.ValueRef{}, false
	}

	return st.builder.Zip(srcs, kernel, label, t), true
}

// resolveEdgeValue resolves e's source ValueRef and applies its final
// transform chain (spec §4.6 Pass 8). A step whose param bindings cannot
// be resolved is skipped — the value passes through unchanged — rather
// than substituting an invented default, per the compiler's "unresolved
// binding never fabricates a value" policy.
func resolveEdgeValue(st *state, e patch.Edge) (ir.ValueRef, bool) {
	current, ok := st.lookupOutput(e.From.BlockID, e.From.SlotID)
	if !ok {
		return ir.ValueRef{}, false
	}

	for i, step := range st.edgeSteps[e.ID] {
		entry, err := st.transformReg.Get(step.TransformID)
		if err != nil {
			continue // Pass 2 already validated every transform id
		}

		params, ok := resolveTransformParams(st, entry, step.Params)
		if !ok {
			continue
		}

		next, err := entry.CompileToIR(current, params, st.builder, transform.CompileContext{
			TransformID: fmt.Sprintf("%s#%d", step.TransformID, i),
		})
		if err != nil {
			continue
		}
		current = next
	}

	return current, true
}

// resolveTransformParams resolves every declared ParamSpec of entry
// against bindings, falling back to entry's own DefaultValue for any spec
// bindings omits (true for every synthesized adapter hop, which carries
// no bindings of its own). Returns ok=false if a BindWire/BindBus
// reference cannot be resolved.
func resolveTransformParams(st *state, entry transform.Entry, bindings map[string]patch.ParamBinding) (map[string]ir.ValueRef, bool) {
	out := make(map[string]ir.ValueRef, len(entry.Params))

	for _, spec := range entry.Params {
		binding, has := bindings[spec.Name]
		if !has {
			out[spec.Name] = st.constOf(spec.DefaultValue)

			continue
		}

		switch binding.Kind {
		case patch.BindLiteral:
			out[spec.Name] = st.constOf(binding.Literal)
		case patch.BindDefault:
			out[spec.Name] = st.constOf(spec.DefaultValue)
		case patch.BindWire:
			ref, ok := st.lookupOutput(binding.Wire.BlockID, binding.Wire.SlotID)
			if !ok {
				return nil, false
			}
			out[spec.Name] = ref
		case patch.BindBus:
			busID, ok := st.busByName[binding.Bus]
			if !ok {
				return nil, false
			}
			ref, ok := st.lookupOutput(busID, "out")
			if !ok {
				return nil, false
			}
			out[spec.Name] = ref
		default:
			return nil, false
		}
	}

	return out, true
}

// combineKernel returns the kernel and diagnostic label for mode, or
// ok=false for ModeMerge/ModeArray: the IR's flat scalar ir.Value union
// has no list/array representation to lower either mode into.
func combineKernel(mode blocks.CombineMode) (ir.Kernel, string, bool) {
	switch mode {
	case blocks.ModeLatest:
		return latestKernel, "combine:latest", true
	case blocks.ModeSum:
		return sumKernel, "combine:sum", true
	default:
		return nil, "", false
	}
}

func latestKernel(_ *ir.EvalContext, ins []ir.Value) ir.Value {
	if len(ins) == 0 {
		return ir.Value{}
	}

	return ins[len(ins)-1]
}

func sumKernel(_ *ir.EvalContext, ins []ir.Value) ir.Value {
	total := 0.0
	for _, v := range ins {
		total += v.AsNumber()
	}

	return ir.Number(total)
}

// busCombinePolicy reads a BusBlock instance's combine policy from its
// tags, defaulting to {WhenAlways, ModeLatest} (spec §3's BusBlock
// default) when absent or unrecognized.
func busCombinePolicy(b patch.Block) blocks.CombinePolicy {
	policy := blocks.CombinePolicy{When: blocks.WhenAlways, Mode: blocks.ModeLatest}

	switch b.Tags["combineWhen"] {
	case "multi":
		policy.When = blocks.WhenMulti
	case "always":
		policy.When = blocks.WhenAlways
	}

	switch b.Tags["combineMode"] {
	case "sum":
		policy.Mode = blocks.ModeSum
	case "merge":
		policy.Mode = blocks.ModeMerge
	case "array":
		policy.Mode = blocks.ModeArray
	case "error":
		policy.Mode = blocks.ModeError
	case "latest":
		policy.Mode = blocks.ModeLatest
	}

	return policy
}

// busDefaultLiteral reads a BusBlock instance's configured default value
// from Params["default"], defaulting to ir.Number(0) when absent.
func busDefaultLiteral(b patch.Block) ir.Value {
	if v, ok := b.Params["default"]; ok {
		return v
	}

	return ir.Number(0)
}
