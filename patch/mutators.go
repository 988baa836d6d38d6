package patch

import (
	"fmt"

	"github.com/patchgraph/corepatch/blocks"
	"github.com/patchgraph/corepatch/ir"
)

// AddBlock returns a new Patch with b inserted. b.ID must be non-empty and
// not already present.
func (p Patch) AddBlock(b Block) (Patch, error) {
	if b.ID == "" {
		return Patch{}, ErrEmptyBlockID
	}
	if _, exists := p.blocks[b.ID]; exists {
		return Patch{}, fmt.Errorf("patch.AddBlock(%s): %w", b.ID, ErrDuplicateBlockID)
	}

	next := p.clone()
	next.blocks[b.ID] = cloneBlock(b)

	return next, nil
}

// RemoveBlock returns a new Patch with the block id removed along with
// every edge whose From or To endpoint references it (spec §4.4's
// "removeBlock (cascade edges)").
func (p Patch) RemoveBlock(id string) (Patch, error) {
	if _, exists := p.blocks[id]; !exists {
		return Patch{}, fmt.Errorf("patch.RemoveBlock(%s): %w", id, ErrUnknownBlock)
	}

	next := p.clone()
	delete(next.blocks, id)
	for eid, e := range next.edges {
		if e.From.BlockID == id || e.To.BlockID == id {
			delete(next.edges, eid)
		}
	}

	return next, nil
}

// AddEdge returns a new Patch with e inserted. e.ID must be non-empty and
// not already present; both endpoints' blocks must already exist; no
// existing edge may share e's exact (From, To) pair.
func (p Patch) AddEdge(e Edge) (Patch, error) {
	if e.ID == "" {
		return Patch{}, ErrEmptyEdgeID
	}
	if _, exists := p.edges[e.ID]; exists {
		return Patch{}, fmt.Errorf("patch.AddEdge(%s): %w", e.ID, ErrDuplicateEdgeID)
	}
	if _, ok := p.blocks[e.From.BlockID]; !ok {
		return Patch{}, fmt.Errorf("patch.AddEdge(%s): from %s: %w", e.ID, e.From.BlockID, ErrEndpointBlockMissing)
	}
	if _, ok := p.blocks[e.To.BlockID]; !ok {
		return Patch{}, fmt.Errorf("patch.AddEdge(%s): to %s: %w", e.ID, e.To.BlockID, ErrEndpointBlockMissing)
	}
	for _, existing := range p.edges {
		if existing.From == e.From && existing.To == e.To {
			return Patch{}, fmt.Errorf("patch.AddEdge(%s): %w", e.ID, ErrDuplicateEdgeEndpoints)
		}
	}

	next := p.clone()
	next.edges[e.ID] = cloneEdge(e)

	return next, nil
}

// RemoveEdge returns a new Patch with the edge id removed.
func (p Patch) RemoveEdge(id string) (Patch, error) {
	if _, exists := p.edges[id]; !exists {
		return Patch{}, fmt.Errorf("patch.RemoveEdge(%s): %w", id, ErrUnknownEdge)
	}

	next := p.clone()
	delete(next.edges, id)

	return next, nil
}

// SetParam returns a new Patch with block blockID's named param set to
// value.
func (p Patch) SetParam(blockID, name string, value ir.Value) (Patch, error) {
	b, ok := p.blocks[blockID]
	if !ok {
		return Patch{}, fmt.Errorf("patch.SetParam(%s): %w", blockID, ErrUnknownBlock)
	}

	next := p.clone()
	b = cloneBlock(b)
	if b.Params == nil {
		b.Params = make(map[string]ir.Value, 1)
	}
	b.Params[name] = value
	next.blocks[blockID] = b

	return next, nil
}

// SetCombine returns a new Patch with a BusBlock's combine policy tags set.
// when and mode use the same string vocabulary compiler.busCombinePolicy
// reads ("multi"/"always"; "latest"/"sum"/"merge"/"array"/"error"); an
// empty string leaves that half of the policy untouched. Only a block
// whose Type is "BusBlock" carries a combine policy — an archetype
// block's InputSlot.Combine is fixed at registration time, not a
// per-instance patch setting.
func (p Patch) SetCombine(blockID, when, mode string) (Patch, error) {
	b, ok := p.blocks[blockID]
	if !ok {
		return Patch{}, fmt.Errorf("patch.SetCombine(%s): %w", blockID, ErrUnknownBlock)
	}
	if b.Type != blocks.BusBlockType {
		return Patch{}, fmt.Errorf("patch.SetCombine(%s): %w", blockID, ErrNotBusBlock)
	}

	next := p.clone()
	b = cloneBlock(b)
	if b.Tags == nil {
		b.Tags = make(map[string]string, 2)
	}
	if when != "" {
		b.Tags["combineWhen"] = when
	}
	if mode != "" {
		b.Tags["combineMode"] = mode
	}
	next.blocks[blockID] = b

	return next, nil
}

// SetBlockType returns a new Patch with blockID's Type and Params replaced
// wholesale, its ID and every edge connected to it left untouched. This is
// the mutator "set-time-root" (spec §4.12) builds on: swapping a patch's
// TimeRoot archetype (Finite/Cyclic/Infinite) in place without disturbing
// the wiring downstream of its output slots.
func (p Patch) SetBlockType(blockID, newType string, params map[string]ir.Value) (Patch, error) {
	b, ok := p.blocks[blockID]
	if !ok {
		return Patch{}, fmt.Errorf("patch.SetBlockType(%s): %w", blockID, ErrUnknownBlock)
	}
	if newType == "" {
		return Patch{}, fmt.Errorf("patch.SetBlockType(%s): %w", blockID, ErrEmptyBlockType)
	}

	next := p.clone()
	b = cloneBlock(b)
	b.Type = newType
	b.Params = nil
	if len(params) > 0 {
		b.Params = make(map[string]ir.Value, len(params))
		for k, v := range params {
			b.Params[k] = v
		}
	}
	next.blocks[blockID] = b

	return next, nil
}

// SetTransforms returns a new Patch with edgeID's transform chain replaced
// by steps.
func (p Patch) SetTransforms(edgeID string, steps []TransformStep) (Patch, error) {
	e, ok := p.edges[edgeID]
	if !ok {
		return Patch{}, fmt.Errorf("patch.SetTransforms(%s): %w", edgeID, ErrUnknownEdge)
	}

	next := p.clone()
	e = cloneEdge(e)
	e.Transforms = append([]TransformStep(nil), steps...)
	next.edges[edgeID] = e

	return next, nil
}
