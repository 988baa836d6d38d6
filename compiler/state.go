package compiler

import (
	"github.com/patchgraph/corepatch/blocks"
	"github.com/patchgraph/corepatch/diag"
	"github.com/patchgraph/corepatch/ir"
	"github.com/patchgraph/corepatch/patch"
	"github.com/patchgraph/corepatch/pathfinder"
	"github.com/patchgraph/corepatch/timemodel"
	"github.com/patchgraph/corepatch/transform"
	"github.com/patchgraph/corepatch/typesystem"
)

// resolvedStep is one entry of an edge's final transform chain after
// Pass 2: either one of the edge's own declared TransformSteps, or an
// adapter hop synthesized by the pathfinder. TransformID addresses the
// transform.Registry entry to invoke during lowering; Params carries the
// declared step's own param bindings (empty for a synthesized adapter
// hop, which binds no params of its own).
type resolvedStep struct {
	Kind        transform.Kind
	TransformID string
	Params      map[string]patch.ParamBinding
}

// state is the single mutable scratch space Compile's passes thread
// through, mirroring the teacher's builder package's single accumulating
// state struct passed by pointer across BuildGraph's internal steps. No
// pass function ever returns a new state; every pass mutates st in place
// and returns only the values other passes cannot otherwise derive from
// it.
type state struct {
	p            patch.Patch
	blockReg     *blocks.Registry
	transformReg *transform.Registry
	finder       *pathfinder.Finder
	cfg          config

	builder *ir.Builder

	errs []diag.CompileError

	// edgeType is the final resolved destination-compatible type each
	// active edge carries after Pass 2's lens/adapter chain.
	edgeType map[string]typesystem.TypeDesc

	// edgeSteps is each active edge's final transform chain (declared
	// steps plus any synthesized adapter hops), in application order.
	edgeSteps map[string][]resolvedStep

	// busType is each BusBlock's inferred slot type, keyed by block id.
	busType map[string]typesystem.TypeDesc

	// busByName maps a BusBlock's reserved or user-declared name (its
	// Tags["reservedBus"] or Tags["busName"]) to its block id, so a
	// ParamBinding.Kind==BindBus reference resolves to a concrete block.
	busByName map[string]string

	// blockOutputs holds each lowered block's resolved ValueRefs, keyed
	// by block id then output slot id.
	blockOutputs map[string]map[string]ir.ValueRef

	timeRoot   patch.Block
	timeModel  timemodel.TimeModel
	uiBindings timemodel.UIBindings

	order     []string          // schedule order computed by Pass 4
	stateKeys map[string]string // block id -> persistent state key

	// constLiterals tracks the ir.Value each const ValueRef this
	// compilation allocated actually holds, keyed by ValueRef. The
	// Builder's own const pool is write-only from the compiler's side
	// (Build() is for freezing the finished program); this side table
	// lets a legacy (V1) block's inputs be reconstructed as Artifacts
	// without re-deriving them from a LinkedIR snapshot mid-compilation.
	constLiterals map[ir.ValueRef]ir.Value
}

func newState(p patch.Patch, blockReg *blocks.Registry, transformReg *transform.Registry, finder *pathfinder.Finder, cfg config) *state {
	return &state{
		p:            p,
		blockReg:     blockReg,
		transformReg: transformReg,
		finder:       finder,
		cfg:          cfg,
		builder:      ir.NewBuilder(),
		edgeType:     make(map[string]typesystem.TypeDesc),
		edgeSteps:    make(map[string][]resolvedStep),
		busType:      make(map[string]typesystem.TypeDesc),
		busByName:    make(map[string]string),
		blockOutputs: make(map[string]map[string]ir.ValueRef),
		stateKeys:    make(map[string]string),
		constLiterals: make(map[ir.ValueRef]ir.Value),
	}
}

// constOf allocates (or reuses) a const ValueRef for v via the Builder,
// and records v in constLiterals so a later V1 block input can recover it.
func (st *state) constOf(v ir.Value) ir.ValueRef {
	ref := st.builder.Const(v)
	st.constLiterals[ref] = v

	return ref
}

// constLiteral returns the literal value ref was allocated from, if ref
// was produced by constOf and still addresses a const node.
func (st *state) constLiteral(ref ir.ValueRef) (ir.Value, bool) {
	v, ok := st.constLiterals[ref]

	return v, ok
}

// lookupOutput returns the already-resolved ValueRef for (blockID, slotID),
// used by transform param bindings (BindWire/BindBus) during the fused
// lowering walk, which only ever looks upstream in schedule order.
func (st *state) lookupOutput(blockID, slotID string) (ir.ValueRef, bool) {
	slots, ok := st.blockOutputs[blockID]
	if !ok {
		return ir.ValueRef{}, false
	}
	ref, ok := slots[slotID]

	return ref, ok
}

// hasFatal reports whether errs contains at least one SeverityError
// diagnostic.
func hasFatal(errs []diag.CompileError) bool {
	for _, e := range errs {
		if !e.IsWarning() {
			return true
		}
	}

	return false
}

// splitErrors partitions errs into fatal errors and warnings.
func splitErrors(errs []diag.CompileError) (fatal, warnings []diag.CompileError) {
	for _, e := range errs {
		if e.IsWarning() {
			warnings = append(warnings, e)
		} else {
			fatal = append(fatal, e)
		}
	}

	return fatal, warnings
}

// result builds the failure-shaped CompileResult from st's accumulated
// errors: per spec §7, no partial program accompanies a fatal error.
func (st *state) result() CompileResult {
	fatal, warn := splitErrors(st.errs)

	return CompileResult{OK: false, Errors: fatal, Warnings: warn}
}
