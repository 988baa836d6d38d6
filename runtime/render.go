package runtime

import "github.com/patchgraph/corepatch/ir"

// UIFrame carries the six reserved-bus values every host UI needs every
// frame (spec §6's reserved buses), each left at its Value zero-value
// (and Bound=false) when the patch never wires that particular bus.
type UIFrame struct {
	PhaseA      ir.Value
	PhaseABound bool

	PhaseB      ir.Value
	PhaseBBound bool

	Pulse      bool // whether the pulse event fired this frame
	PulseBound bool

	Energy      ir.Value
	EnergyBound bool

	Palette      ir.Value
	PaletteBound bool

	Progress      ir.Value
	ProgressBound bool
}

// RenderTree is what Evaluator.Step hands back to the host each frame
// (spec §4.8 step 3 / §6): the reserved-bus UI frame plus whatever named
// signal/field sinks the host registered via WithObservedSignal /
// WithObservedField. Concrete rendering is an external collaborator's
// job (spec §1 Non-goals); RenderTree only carries the evaluated values.
type RenderTree struct {
	Frame uint64
	T     float64

	UI UIFrame

	// Signals holds one evaluated Value per name registered with
	// WithObservedSignal.
	Signals map[string]ir.Value

	// Fields holds one reused, resized-in-place typed buffer per name
	// registered with WithObservedField (spec §4.8 step 3: "reused
	// typed buffers").
	Fields map[string][]ir.Value
}
