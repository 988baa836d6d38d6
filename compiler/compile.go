package compiler

import (
	"github.com/patchgraph/corepatch/blocks"
	"github.com/patchgraph/corepatch/patch"
	"github.com/patchgraph/corepatch/pathfinder"
	"github.com/patchgraph/corepatch/timemodel"
	"github.com/patchgraph/corepatch/transform"
)

// Compile lowers p into a CompiledProgram, running the ten passes spec
// §4.6 names (see doc.go for how they map onto this package's functions).
// blockReg, transformReg, and finder must be non-nil; p itself is never
// mutated (Patch is immutable) beyond a local working copy Pass 0 may
// extend with synthesized default-source blocks.
func Compile(p patch.Patch, blockReg *blocks.Registry, transformReg *transform.Registry, finder *pathfinder.Finder, opts ...Option) (CompileResult, error) {
	if blockReg == nil {
		return CompileResult{}, ErrNilBlockRegistry
	}
	if transformReg == nil {
		return CompileResult{}, ErrNilTransformRegistry
	}
	if finder == nil {
		return CompileResult{}, ErrNilPathfinder
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	st := newState(p, blockReg, transformReg, finder, cfg)

	p0, perrs := pass0MaterializeDefaults(st.p, st.blockReg)
	st.errs = append(st.errs, perrs...)
	st.p = p0
	st.busByName = buildBusByName(st.p)

	active, nerrs := pass1Normalize(st.p, st.blockReg)
	st.errs = append(st.errs, nerrs...)
	if hasFatal(st.errs) {
		return st.result(), nil
	}

	pass2Types(st, active)
	if hasFatal(st.errs) {
		return st.result(), nil
	}

	hasIncoming := func(blockID string) bool {
		for _, e := range active {
			if e.To.BlockID == blockID {
				return true
			}
		}

		return false
	}

	root, model, terrs := timemodel.LocateTimeRoot(st.p, st.blockReg, hasIncoming)
	st.errs = append(st.errs, terrs...)
	st.timeRoot, st.timeModel = root, model

	bindings, berrs := timemodel.ResolveReservedBuses(st.p, st.busType)
	st.errs = append(st.errs, berrs...)
	st.uiBindings = bindings
	if hasFatal(st.errs) {
		return st.result(), nil
	}

	order, cerrs := pass4CanonicalizeAndSchedule(st, active)
	st.errs = append(st.errs, cerrs...)
	st.order = order
	if hasFatal(st.errs) {
		return st.result(), nil
	}

	pass5to8Lower(st, active)
	if hasFatal(st.errs) {
		return st.result(), nil
	}

	program := pass9Finalize(st)
	_, warn := splitErrors(st.errs)

	return CompileResult{OK: true, Program: &program, Warnings: warn}, nil
}

// buildBusByName maps every BusBlock's reserved or user-declared name tag
// to its block id, so a ParamBinding.Kind==BindBus reference resolves to
// a concrete block throughout the remaining passes.
func buildBusByName(p patch.Patch) map[string]string {
	out := make(map[string]string)
	for _, b := range p.GetBusBlocks() {
		if name, ok := b.Tags["reservedBus"]; ok {
			out[name] = b.ID

			continue
		}
		if name, ok := b.Tags["busName"]; ok {
			out[name] = b.ID
		}
	}

	return out
}
