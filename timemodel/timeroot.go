package timemodel

import (
	"github.com/patchgraph/corepatch/blocks"
	"github.com/patchgraph/corepatch/diag"
	"github.com/patchgraph/corepatch/patch"
)

// LocateTimeRoot finds the patch's single role=blocks.RoleTimeRoot block
// and derives its TimeModel (spec §4.6 Pass 3). reg resolves each
// candidate block's registered BlockDef to confirm its Role; hasIncoming
// reports, for a given block id, whether it has any enabled incoming
// edge (the compiler's Pass 1 normalized edge view, since a disabled edge
// never counts as "incoming" per spec's normalize-then-check-input rule).
//
// Errors accumulate rather than stopping at the first one, matching
// spec §7's "compile errors accumulate" contract: a patch with zero
// TimeRoots and a patch with a TimeRoot-with-input both report exactly
// the errors spec names (MissingTimeRoot / TimeRootHasInput), never a
// derived TimeModel alongside them.
func LocateTimeRoot(p patch.Patch, reg *blocks.Registry, hasIncoming func(blockID string) bool) (patch.Block, TimeModel, []diag.CompileError) {
	var candidates []patch.Block
	for _, b := range p.Blocks() {
		def, err := reg.Get(b.Type)
		if err != nil {
			continue
		}
		if def.Role == blocks.RoleTimeRoot {
			candidates = append(candidates, b)
		}
	}

	switch len(candidates) {
	case 0:
		return patch.Block{}, TimeModel{}, []diag.CompileError{
			diag.New(diag.CodeMissingTimeRoot, "Missing time root", "no block has role=TimeRoot"),
		}
	case 1:
		// fall through
	default:
		locs := make([]diag.Location, 0, len(candidates))
		for _, b := range candidates {
			locs = append(locs, diag.Location{Kind: diag.LocBlock, BlockID: b.ID})
		}

		return patch.Block{}, TimeModel{}, []diag.CompileError{
			diag.New(diag.CodeMultipleTimeRoots, "Multiple time roots", "more than one block has role=TimeRoot", locs...),
		}
	}

	root := candidates[0]

	var errs []diag.CompileError
	if hasIncoming != nil && hasIncoming(root.ID) {
		errs = append(errs, diag.New(
			diag.CodeTimeRootHasInput,
			"Time root has an incoming edge",
			"a TimeRoot block must have no incoming edges",
			diag.Location{Kind: diag.LocBlock, BlockID: root.ID},
		))
	}

	model, err := FromTimeRoot(root.Type, root.Params)
	if err != nil {
		errs = append(errs, diag.New(
			diag.CodeMissingTimeRoot,
			"Unrecognized time root type",
			err.Error(),
			diag.Location{Kind: diag.LocBlock, BlockID: root.ID},
		))

		return root, TimeModel{}, errs
	}

	return root, model, errs
}
