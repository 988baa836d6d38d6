package blocks

import (
	"github.com/patchgraph/corepatch/ir"
	"github.com/patchgraph/corepatch/typesystem"
)

// RoleMemory marks a BlockDef as memory-bearing (delay/integrate/
// sample-hold): the compiler's graph canonicalization pass (spec §4.6
// Pass 4) accepts a feedback cycle only if it contains at least one block
// whose registered Role is RoleMemory. No concrete memory block ships in
// RegisterSystemBlocks — a host registers its own delay/integrator block
// types with this role to legally close a loop.
const RoleMemory = "Memory"

// CombineWhen governs whether a multi-writer input gets a combine node
// only when it actually has more than one writer, or unconditionally.
type CombineWhen int

// The closed set of CombineWhen values (spec §3).
const (
	WhenMulti CombineWhen = iota
	WhenAlways
)

// IsValid reports whether w is one of the closed CombineWhen values.
func (w CombineWhen) IsValid() bool {
	switch w {
	case WhenMulti, WhenAlways:
		return true
	default:
		return false
	}
}

// CombineMode selects how multiple writers into the same input are
// folded into a single value.
type CombineMode int

// The closed set of CombineMode values (spec §3).
const (
	ModeLatest CombineMode = iota
	ModeSum
	ModeMerge
	ModeArray
	ModeError
)

// IsValid reports whether m is one of the closed CombineMode values.
func (m CombineMode) IsValid() bool {
	switch m {
	case ModeLatest, ModeSum, ModeMerge, ModeArray, ModeError:
		return true
	default:
		return false
	}
}

// CombinePolicy is the policy a multi-writer input (or a BusBlock's sole
// input) resolves writers with; Slots and BusBlocks share this one type so
// the compiler resolves both identically (spec §3).
type CombinePolicy struct {
	When CombineWhen
	Mode CombineMode
}

// IsValid reports whether both components of p are valid.
func (p CombinePolicy) IsValid() bool {
	return p.When.IsValid() && p.Mode.IsValid()
}

// DefaultSource names the hidden DefaultSourceProvider block type Pass 0
// materializes for an input slot with no incoming enabled edge. A nil
// pointer on an InputSlot means the slot has no default and an unfed input
// is a compiler error rather than being silently backed.
type DefaultSource struct {
	// ProviderType is the BlockDef.Type of the DefaultSourceProvider
	// block to instantiate (e.g. "DSConstSignalFloat").
	ProviderType string
	// Params seeds the synthesized provider block's param map.
	Params map[string]ir.Value
}

// InputSlot declares one input on a BlockDef: stable id, required type,
// optional default source, and the combine policy applied when more than
// one edge writes to it.
type InputSlot struct {
	ID      string
	Type    typesystem.TypeDesc
	Default *DefaultSource
	Combine CombinePolicy
}

// OutputSlot declares one output on a BlockDef.
type OutputSlot struct {
	ID   string
	Type typesystem.TypeDesc
}

// CompileArgs is the V1 compile function's input: the block instance id,
// its resolved param values, the already-compiled Artifact (or ValueRef,
// for a block consuming a V2 upstream bridged automatically) per input
// slot, and a CompileCtx for builder access shared across one compilation.
type CompileArgs struct {
	ID     string
	Params map[string]ir.Value
	Inputs map[string]ir.Artifact
	Ctx    CompileCtx
}

// CompileArgsV2 is the BlockCompilerV2 variant's input: inputs already
// resolved to ValueRefs, plus direct Builder access so the block can
// allocate IR nodes itself.
type CompileArgsV2 struct {
	ID      string
	Params  map[string]ir.Value
	Inputs  map[string]ir.ValueRef
	Builder *ir.Builder
	Ctx     CompileCtx
}

// CompileCtx carries compilation-wide state a block's compile function may
// need beyond its own inputs/params: currently only the domain registry
// lookup for blocks that reference a Domain artifact by id, reserved as a
// distinct type so new fields never break existing CompileFunc signatures.
type CompileCtx struct {
	Domains map[string]ir.DomainRef
}

// CompileFunc is the V1 (closure-returning) block compile function:
// compile(args) -> Record<outputId, Artifact>.
type CompileFunc func(args CompileArgs) (map[string]ir.Artifact, error)

// CompileFuncV2 is the builder-style block compile function:
// compile(args) -> Record<outputId, ValueRef>.
type CompileFuncV2 func(args CompileArgsV2) (map[string]ir.ValueRef, error)

// BlockDef declares one registered block type (spec §4.5): a stable type
// name, ordered input/output slots, a compile function (either the V1
// Artifact-returning form or the V2 builder-style form, never both), and
// optional tags (role, hidden) the compiler consults (e.g. role=TimeRoot,
// role=defaultSourceProvider, hidden=true).
type BlockDef struct {
	Type    string
	Inputs  []InputSlot
	Outputs []OutputSlot

	Compile   CompileFunc
	CompileV2 CompileFuncV2

	Hidden bool
	Role   string
	Tags   map[string]string
}

// IsV2 reports whether d uses the builder-style compile function.
func (d BlockDef) IsV2() bool { return d.CompileV2 != nil }
