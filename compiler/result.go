package compiler

import (
	"github.com/patchgraph/corepatch/diag"
	"github.com/patchgraph/corepatch/ir"
	"github.com/patchgraph/corepatch/timemodel"
)

// CompiledProgram is the immutable artifact Compile produces on success
// (spec §6). It is never mutated after Compile returns it; a hot-swap
// produces a whole new CompiledProgram rather than patching this one in
// place.
type CompiledProgram struct {
	// IR is the fully linked Signal/Field/Event node graph.
	IR ir.LinkedIR

	// Order is the block evaluation schedule: block ids in an order that
	// respects every non-feedback dependency (spec §4.6 Pass 9). A
	// feedback edge into a memory-bearing block is intentionally excluded
	// from this ordering constraint, since that block consumes last
	// frame's value, not this frame's.
	Order []string

	// Outputs holds each block's resolved output ValueRefs, keyed by
	// block id then output slot id, for the runtime's render tree and for
	// hot-swap's state-key migration to address by block identity.
	Outputs map[string]map[string]ir.ValueRef

	// TimeModel is the patch's single derived time model (spec §4.6
	// Pass 3 / §4.10).
	TimeModel timemodel.TimeModel

	// TimeRootID is the block id of the patch's single TimeRoot block.
	TimeRootID string

	// UIBindings names the BusBlock id backing each reserved bus that
	// exists in the patch (spec §6).
	UIBindings timemodel.UIBindings

	// StateKeys maps each stateful block's id to the persistent-state key
	// the runtime's StateStore addresses it by, stable across recompiles
	// so hot-swap can migrate state (spec §4.9).
	StateKeys map[string]string
}

// CompileResult is Compile's return value. Per spec §7 ("compile errors
// accumulate... no partial programs are produced on failure"), OK is
// false iff Program is nil iff Errors is non-empty: there is no partial
// or best-effort CompiledProgram.
type CompileResult struct {
	OK       bool
	Program  *CompiledProgram
	Errors   []diag.CompileError
	Warnings []diag.CompileError
}
