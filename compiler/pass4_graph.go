package compiler

import (
	"github.com/patchgraph/corepatch/blocks"
	"github.com/patchgraph/corepatch/core"
	"github.com/patchgraph/corepatch/dfs"
	"github.com/patchgraph/corepatch/diag"
	"github.com/patchgraph/corepatch/patch"
)

// pass4CanonicalizeAndSchedule builds the block-level dependency graph,
// rejects any feedback cycle that contains no memory-bearing block (spec
// §4.6 Pass 4, §4.9's blocks.RoleMemory contract), and computes the
// evaluation schedule.
//
// Two graph views are built over the same vertex/edge set: g, the
// complete dependency graph, used to find every cycle and judge its
// legality; and sg, a second graph that drops exactly the (predecessor,
// memory-block) dependency pairs that close a legal feedback cycle. A
// memory-bearing block reads last frame's value on that edge, so it is
// not a same-frame scheduling dependency — dfs.TopologicalSort requires an
// acyclic graph, so only sg (never g) is handed to it.
func pass4CanonicalizeAndSchedule(st *state, active []patch.Edge) ([]string, []diag.CompileError) {
	var errs []diag.CompileError

	g := core.NewGraph(core.WithDirected(true), core.WithMultiEdges(), core.WithLoops())
	for _, b := range st.p.Blocks() {
		_ = g.AddVertex(b.ID)
	}

	type dep struct{ from, to string }
	var deps []dep

	for _, e := range active {
		deps = append(deps, dep{from: e.From.BlockID, to: e.To.BlockID})

		for _, step := range st.edgeSteps[e.ID] {
			for _, binding := range step.Params {
				switch binding.Kind {
				case patch.BindWire:
					deps = append(deps, dep{from: binding.Wire.BlockID, to: e.To.BlockID})
				case patch.BindBus:
					if busID, ok := st.busByName[binding.Bus]; ok {
						deps = append(deps, dep{from: busID, to: e.To.BlockID})
					}
				}
			}
		}
	}

	for _, d := range deps {
		if _, err := g.AddEdge(d.from, d.to, 0); err != nil {
			continue
		}
	}

	hasCycle, cycles, err := dfs.DetectCycles(g)
	if err != nil {
		errs = append(errs, diag.New(diag.CodeIllegalFeedback, "Feedback detection failed", err.Error()))

		return nil, errs
	}

	type pair struct{ from, to string }
	brokenPairs := make(map[pair]struct{})
	if hasCycle {
		for _, cycle := range cycles {
			memoryIDs := cycleMemoryNodes(st, cycle)
			if len(memoryIDs) == 0 {
				errs = append(errs, diag.New(
					diag.CodeIllegalFeedback,
					"Illegal feedback cycle",
					"cycle contains no memory-bearing block",
					diag.Location{Kind: diag.LocSCC, SCCBlockIDs: cycle},
				))

				continue
			}

			// cycle is closed (cycle[0] == cycle[len-1]); break the loop
			// at each consecutive pair whose destination is a
			// memory-bearing block, not every edge terminating at that
			// block, so the memory block's other same-frame dependencies
			// still constrain the schedule.
			isMemory := make(map[string]struct{}, len(memoryIDs))
			for _, id := range memoryIDs {
				isMemory[id] = struct{}{}
			}
			for i := 0; i+1 < len(cycle); i++ {
				if _, ok := isMemory[cycle[i+1]]; ok {
					brokenPairs[pair{from: cycle[i], to: cycle[i+1]}] = struct{}{}
				}
			}
		}
	}

	if hasFatal(errs) {
		return nil, errs
	}

	sg := core.NewGraph(core.WithDirected(true), core.WithMultiEdges(), core.WithLoops())
	for _, b := range st.p.Blocks() {
		_ = sg.AddVertex(b.ID)
	}
	for _, d := range deps {
		if _, broken := brokenPairs[pair{from: d.from, to: d.to}]; broken {
			continue
		}
		if _, err := sg.AddEdge(d.from, d.to, 0); err != nil {
			continue
		}
	}

	order, err := dfs.TopologicalSort(sg)
	if err != nil {
		errs = append(errs, diag.New(diag.CodeIllegalFeedback, "Schedule computation failed", err.Error()))

		return nil, errs
	}

	return order, errs
}

// cycleMemoryNodes returns every block id in cycle that is registered
// with blocks.RoleMemory. Only those blocks' incoming edges are dropped
// from the scheduling graph: a memory-bearing node consumes last frame's
// state on the edge that closes the loop, but its other incoming edges
// (and every other block's edges in the cycle) remain real same-frame
// dependencies.
func cycleMemoryNodes(st *state, cycle []string) []string {
	var out []string
	for _, id := range cycle {
		b, ok := st.p.Block(id)
		if !ok {
			continue
		}
		def, err := st.blockReg.Get(b.Type)
		if err != nil {
			continue
		}
		if def.Role == blocks.RoleMemory {
			out = append(out, id)
		}
	}

	return out
}
