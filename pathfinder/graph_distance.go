package pathfinder

import (
	"github.com/patchgraph/corepatch/core"
	"github.com/patchgraph/corepatch/dijkstra"
	"github.com/patchgraph/corepatch/transform"
	"github.com/patchgraph/corepatch/typesystem"
)

// BuildAdapterGraph renders every registered adapter as a directed,
// weighted edge (Cost as weight) between its InputType and OutputType,
// formatted to a vertex id via typesystem.Format. This is a supplementary
// view over the same adapter catalog Find searches: whereas Find answers
// "what's the best ≤2-hop chain under this policy/cost gate", the graph
// answers "what is the unconstrained shortest distance between any two
// types, ignoring policy", useful for diagnostics (e.g. reporting how far
// a proposed new adapter would be from closing a gap in the catalog).
func BuildAdapterGraph(r *transform.Registry) (*core.Graph, error) {
	g := core.NewGraph(core.WithDirected(true), core.WithWeighted(), core.WithMultiEdges())

	for _, e := range r.List() {
		if e.Kind != transform.Adapter {
			continue
		}
		fromID := typesystem.Format(e.InputType)
		toID := typesystem.Format(e.OutputType)

		if err := g.AddVertex(fromID); err != nil {
			return nil, err
		}
		if err := g.AddVertex(toID); err != nil {
			return nil, err
		}
		if _, err := g.AddEdge(fromID, toID, int64(e.Cost)); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// Distance returns the unweighted-policy shortest distance (sum of adapter
// Cost) between from and to in g, and whether to is reachable from from at
// all. g is typically the result of BuildAdapterGraph.
func Distance(g *core.Graph, from, to typesystem.TypeDesc) (int64, bool, error) {
	fromID := typesystem.Format(from)
	toID := typesystem.Format(to)

	if !g.HasVertex(fromID) || !g.HasVertex(toID) {
		return 0, false, nil
	}

	dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source(fromID))
	if err != nil {
		return 0, false, err
	}

	d, ok := dist[toID]
	if !ok || d == dijkstraUnreachable {
		return 0, false, nil
	}

	return d, true, nil
}

// dijkstraUnreachable mirrors dijkstra's own math.MaxInt64 sentinel for an
// unreached vertex, kept local so this file does not need to import math
// just to compare against it.
const dijkstraUnreachable = 1<<63 - 1
