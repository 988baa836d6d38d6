package patch

import (
	"sort"

	"github.com/patchgraph/corepatch/blocks"
)

// Patch is an immutable snapshot of the patch graph: every exported
// method either reads or returns a new Patch: no method mutates the
// receiver's storage, mirroring spec §3's "Patches ... are immutable
// snapshots; the transaction API produces new snapshots."
type Patch struct {
	version uint
	blocks  map[string]Block
	edges   map[string]Edge
}

// New returns an empty Patch at version 0.
func New() Patch {
	return Patch{blocks: map[string]Block{}, edges: map[string]Edge{}}
}

// Version returns the patch's monotonically increasing version number.
func (p Patch) Version() uint { return p.version }

// Block returns the block with the given id.
func (p Patch) Block(id string) (Block, bool) {
	b, ok := p.blocks[id]

	return b, ok
}

// Edge returns the edge with the given id.
func (p Patch) Edge(id string) (Edge, bool) {
	e, ok := p.edges[id]

	return e, ok
}

// Blocks returns every block in the patch, sorted by (SortKey asc, ID
// asc) — the same deterministic-ordering discipline core.Graph.Vertices()
// applies instead of relying on Go's randomized map iteration order.
func (p Patch) Blocks() []Block {
	out := make([]Block, 0, len(p.blocks))
	for _, b := range p.blocks {
		out = append(out, b)
	}
	sortBlocks(out)

	return out
}

// Edges returns every edge in the patch, sorted by (SortKey asc, ID asc).
func (p Patch) Edges() []Edge {
	out := make([]Edge, 0, len(p.edges))
	for _, e := range p.edges {
		out = append(out, e)
	}
	sortEdges(out)

	return out
}

// GetBlocksByType returns every block whose Type equals typeName, sorted
// by (SortKey asc, ID asc).
func (p Patch) GetBlocksByType(typeName string) []Block {
	out := make([]Block, 0)
	for _, b := range p.blocks {
		if b.Type == typeName {
			out = append(out, b)
		}
	}
	sortBlocks(out)

	return out
}

// GetBusBlocks returns every BusBlock in the patch, sorted by
// (SortKey asc, ID asc).
func (p Patch) GetBusBlocks() []Block {
	return p.GetBlocksByType(blocks.BusBlockType)
}

// GetEdgesIntoInput returns every edge whose To endpoint matches
// (blockID, slotID), sorted by (sortKey asc, id asc) — spec §3's total
// order among edges targeting the same input.
func (p Patch) GetEdgesIntoInput(blockID, slotID string) []Edge {
	out := make([]Edge, 0)
	for _, e := range p.edges {
		if e.To.BlockID == blockID && e.To.SlotID == slotID {
			out = append(out, e)
		}
	}
	sortEdges(out)

	return out
}

func sortBlocks(bs []Block) {
	sort.Slice(bs, func(i, j int) bool {
		if bs[i].SortKey != bs[j].SortKey {
			return bs[i].SortKey < bs[j].SortKey
		}

		return bs[i].ID < bs[j].ID
	})
}

func sortEdges(es []Edge) {
	sort.Slice(es, func(i, j int) bool {
		if es[i].SortKey != es[j].SortKey {
			return es[i].SortKey < es[j].SortKey
		}

		return es[i].ID < es[j].ID
	})
}

// clone returns a shallow-map copy of p suitable as the base for a
// mutator to build its result from, so the receiver's maps are never
// aliased by the returned Patch.
func (p Patch) clone() Patch {
	blocks := make(map[string]Block, len(p.blocks))
	for id, b := range p.blocks {
		blocks[id] = b
	}
	edges := make(map[string]Edge, len(p.edges))
	for id, e := range p.edges {
		edges[id] = e
	}

	return Patch{version: p.version + 1, blocks: blocks, edges: edges}
}
