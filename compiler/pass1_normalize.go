package compiler

import (
	"github.com/patchgraph/corepatch/blocks"
	"github.com/patchgraph/corepatch/diag"
	"github.com/patchgraph/corepatch/patch"
)

// pass1Normalize drops disabled edges and validates every remaining
// edge's endpoints against the patch's blocks (spec §4.6 Pass 1): every
// block's Type must be registered (or be the built-in BusBlock type),
// and every edge endpoint must name a slot that block type actually
// declares. The returned slice is the active edge set every later pass
// operates over.
func pass1Normalize(p patch.Patch, reg *blocks.Registry) ([]patch.Edge, []diag.CompileError) {
	var errs []diag.CompileError

	knownBad := make(map[string]struct{})
	for _, b := range p.Blocks() {
		if b.Type == blocks.BusBlockType {
			continue
		}
		if _, err := reg.Get(b.Type); err != nil {
			knownBad[b.ID] = struct{}{}
			errs = append(errs, diag.New(
				diag.CodeUnknownBlockType,
				"Unknown block type",
				"block "+b.ID+" has unregistered type "+b.Type,
				diag.Location{Kind: diag.LocBlock, BlockID: b.ID},
			))
		}
	}

	var active []patch.Edge
	for _, e := range p.Edges() {
		if !e.Enabled {
			continue
		}

		if _, bad := knownBad[e.From.BlockID]; bad {
			continue
		}
		if _, bad := knownBad[e.To.BlockID]; bad {
			continue
		}

		fromBlock, ok := p.Block(e.From.BlockID)
		if !ok || !slotExists(reg, fromBlock, e.From.SlotID, false) {
			errs = append(errs, malformedEdge(e, "from"))

			continue
		}

		toBlock, ok := p.Block(e.To.BlockID)
		if !ok || !slotExists(reg, toBlock, e.To.SlotID, true) {
			errs = append(errs, malformedEdge(e, "to"))

			continue
		}

		active = append(active, e)
	}

	return active, errs
}

func malformedEdge(e patch.Edge, side string) diag.CompileError {
	return diag.New(
		diag.CodeMalformedEdge,
		"Malformed edge",
		"edge "+e.ID+" references an unknown "+side+" slot",
		diag.Location{Kind: diag.LocEdge, EdgeID: e.ID},
	)
}

// slotExists reports whether b's block type declares slotID among its
// input (wantInput==true) or output (wantInput==false) slots. A BusBlock
// instance always has exactly "in" (input) and "out" (output), since its
// concrete slot type is inferred in Pass 2, not declared in a registered
// BlockDef.
func slotExists(reg *blocks.Registry, b patch.Block, slotID string, wantInput bool) bool {
	if b.Type == blocks.BusBlockType {
		if wantInput {
			return slotID == "in"
		}

		return slotID == "out"
	}

	def, err := reg.Get(b.Type)
	if err != nil {
		return false
	}

	if wantInput {
		for _, in := range def.Inputs {
			if in.ID == slotID {
				return true
			}
		}

		return false
	}

	for _, out := range def.Outputs {
		if out.ID == slotID {
			return true
		}
	}

	return false
}
