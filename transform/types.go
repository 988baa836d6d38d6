package transform

import (
	"github.com/patchgraph/corepatch/ir"
	"github.com/patchgraph/corepatch/typesystem"
)

// Kind distinguishes a type-preserving lens from a type-converting
// adapter.
type Kind int

// The closed set of transform kinds.
const (
	Lens Kind = iota
	Adapter
)

// Policy governs whether the compiler may insert an adapter automatically.
type Policy int

// The closed set of adapter policies (spec §4.2). Lenses do not carry a
// Policy; the zero value is only meaningful for Adapter entries.
const (
	PolicyAuto Policy = iota
	PolicySuggest
	PolicyExplicit
)

// IsValid reports whether p is one of the closed Policy values.
func (p Policy) IsValid() bool {
	switch p {
	case PolicyAuto, PolicySuggest, PolicyExplicit:
		return true
	default:
		return false
	}
}

// ParamSpec describes one parameter a lens or adapter instance binds,
// surfaced to the UI for editing (spec §4.2: type, defaultValue, uiHint,
// rangeHint).
type ParamSpec struct {
	Name         string
	Type         typesystem.TypeDesc
	DefaultValue ir.Value
	UIHint       string
	RangeHint    *[2]float64
}

// ApplyContext carries the information Apply needs beyond the raw value
// and params: currently nothing beyond a reservation point for future
// extension, kept as a distinct type (rather than passing params+value
// directly) so new fields never break existing Apply function signatures.
type ApplyContext struct{}

// CompileContext carries per-instantiation metadata CompileToIR needs to
// label the IR nodes it allocates.
type CompileContext struct {
	// TransformID is the id of the transform instance being compiled,
	// used to derive a deterministic ir.SignalNode.KernelLabel /
	// ir.FieldNode.KernelLabel (e.g. "lens:gain#3" for the third gain
	// instance on a given edge).
	TransformID string
}

// ApplyFunc is a pure value-level transform: given the upstream value, the
// instance's resolved param values, and an ApplyContext, produce the
// downstream value (or an error if params are invalid).
type ApplyFunc func(value ir.Value, params map[string]ir.Value, ctx ApplyContext) (ir.Value, error)

// CompileFunc lowers a transform instance into the IR: given the upstream
// ValueRef, the instance's resolved param ValueRefs (literal consts, wire
// refs, bus refs — already resolved by compiler Pass 8), the shared
// Builder, and a CompileContext, produce the downstream ValueRef.
type CompileFunc func(input ir.ValueRef, params map[string]ir.ValueRef, builder *ir.Builder, ctx CompileContext) (ir.ValueRef, error)

// Entry is one registered lens or adapter.
type Entry struct {
	ID         string
	Kind       Kind
	InputType  typesystem.TypeDesc
	OutputType typesystem.TypeDesc
	Params     []ParamSpec

	// Policy and Cost are meaningful only for Kind == Adapter.
	Policy Policy
	Cost   int

	Apply       ApplyFunc
	CompileToIR CompileFunc
}

// preservesType reports whether a lens entry's declared input/output types
// agree on world, domain, and category — typesystem.Equal already ignores
// BusEligible, which is exactly the comparison a lens must satisfy (spec
// §4.2: "lens must preserve world+domain+category").
func (e Entry) preservesType() bool {
	return typesystem.Equal(e.InputType, e.OutputType)
}
