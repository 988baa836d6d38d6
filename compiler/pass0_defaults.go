package compiler

import (
	"github.com/patchgraph/corepatch/blocks"
	"github.com/patchgraph/corepatch/diag"
	"github.com/patchgraph/corepatch/patch"
)

// pass0MaterializeDefaults synthesizes a hidden default-source provider
// block (and its wiring edge) for every input slot that has no enabled
// writer and does carry a registered DefaultSource, and reports
// diag.CodeUnfedInput for every input slot that has neither (spec §4.6
// Pass 0). BusBlock instances are skipped: a BusBlock's "in" slot
// legitimately has zero writers (it then carries its configured default
// literal, resolved during lowering, not a synthesized provider node).
func pass0MaterializeDefaults(p patch.Patch, reg *blocks.Registry) (patch.Patch, []diag.CompileError) {
	var errs []diag.CompileError

	for _, b := range p.Blocks() {
		if b.Type == blocks.BusBlockType {
			continue
		}

		def, err := reg.Get(b.Type)
		if err != nil {
			continue // Pass 1 reports unknown block types
		}

		for _, in := range def.Inputs {
			if hasEnabledWriter(p, b.ID, in.ID) {
				continue
			}

			if in.Default == nil {
				errs = append(errs, diag.New(
					diag.CodeUnfedInput,
					"Unfed input",
					"input "+in.ID+" of block "+b.ID+" has no enabled writer and no default",
					diag.Location{Kind: diag.LocPort, BlockID: b.ID, SlotID: in.ID},
				))

				continue
			}

			providerID := "__default__" + b.ID + "__" + in.ID
			if _, exists := p.Block(providerID); !exists {
				provider := patch.Block{
					ID:     providerID,
					Type:   in.Default.ProviderType,
					Params: in.Default.Params,
					Hidden: true,
					Role:   blocks.RoleDefaultSourceProvider,
				}

				var addErr error
				p, addErr = p.AddBlock(provider)
				if addErr != nil {
					continue
				}
			}

			edgeID := "__default_edge__" + b.ID + "__" + in.ID
			if _, exists := p.Edge(edgeID); exists {
				continue
			}

			edge := patch.Edge{
				ID:      edgeID,
				From:    patch.Endpoint{BlockID: providerID, SlotID: "value"},
				To:      patch.Endpoint{BlockID: b.ID, SlotID: in.ID},
				Enabled: true,
			}

			var addErr error
			p, addErr = p.AddEdge(edge)
			if addErr != nil {
				continue
			}
		}
	}

	return p, errs
}

// hasEnabledWriter reports whether any enabled edge targets (blockID,
// slotID).
func hasEnabledWriter(p patch.Patch, blockID, slotID string) bool {
	for _, e := range p.GetEdgesIntoInput(blockID, slotID) {
		if e.Enabled {
			return true
		}
	}

	return false
}
