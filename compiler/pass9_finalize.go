package compiler

import "github.com/patchgraph/corepatch/ir"

// pass9Finalize freezes the accumulated state into the immutable
// CompiledProgram the runtime consumes (spec §4.6 Pass 9). The schedule
// itself was already computed by Pass 4; this pass only takes the
// snapshot.
func pass9Finalize(st *state) CompiledProgram {
	return CompiledProgram{
		IR:         st.builder.Build(),
		Order:      append([]string(nil), st.order...),
		Outputs:    cloneOutputs(st.blockOutputs),
		TimeModel:  st.timeModel,
		TimeRootID: st.timeRoot.ID,
		UIBindings: st.uiBindings,
		StateKeys:  cloneStateKeys(st.stateKeys),
	}
}

func cloneOutputs(in map[string]map[string]ir.ValueRef) map[string]map[string]ir.ValueRef {
	out := make(map[string]map[string]ir.ValueRef, len(in))
	for blockID, slots := range in {
		cp := make(map[string]ir.ValueRef, len(slots))
		for slotID, ref := range slots {
			cp[slotID] = ref
		}
		out[blockID] = cp
	}

	return out
}

func cloneStateKeys(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}

	return out
}
