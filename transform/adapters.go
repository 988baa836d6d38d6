package transform

import (
	"fmt"

	"github.com/patchgraph/corepatch/ir"
	"github.com/patchgraph/corepatch/typesystem"
)

// Canonical adapter costs (spec §4.2 names three tiers; exact magnitudes
// are an implementation choice, kept consistent so pathfinder tie-breaks
// behave predictably): cheap adapters are near-free conversions, medium
// adapters broadcast across a domain, heavy adapters reduce across one.
const (
	costCheap  = 1
	costMedium = 5
	costHeavy  = 20

	// HeavyCostThreshold is the Cost at and above which pathfinder treats an
	// adapter as "heavy": excluded from a path unless the caller's Context
	// sets AllowHeavy. Exported so package pathfinder never needs its own
	// copy of the cost convention.
	HeavyCostThreshold = costHeavy
)

func scalarFloat() typesystem.TypeDesc {
	return typesystem.TypeDesc{World: typesystem.Scalar, Domain: typesystem.DomainFloat, Category: typesystem.Core}
}

func fieldFloat() typesystem.TypeDesc {
	return typesystem.TypeDesc{World: typesystem.Field, Domain: typesystem.DomainFloat, Category: typesystem.Core}
}

func signalDuration() typesystem.TypeDesc {
	return typesystem.TypeDesc{World: typesystem.Signal, Domain: typesystem.DomainDuration, Category: typesystem.Core, BusEligible: true}
}

// identityApply and identityCompile back every adapter whose underlying
// numeric representation does not change — only the declared TypeDesc
// does (ConstToSignal, PhaseToNumber, NumberToDurationMs,
// DurationToNumberMs). The adapter's meaning lives entirely in its
// registered InputType/OutputType pair, not in Apply/CompileToIR.
func identityApply() ApplyFunc {
	return func(value ir.Value, _ map[string]ir.Value, _ ApplyContext) (ir.Value, error) {
		return value, nil
	}
}

func identityCompile(outType typesystem.TypeDesc) CompileFunc {
	return func(input ir.ValueRef, _ map[string]ir.ValueRef, builder *ir.Builder, ctx CompileContext) (ir.ValueRef, error) {
		label := ctx.TransformID
		kernel := func(_ *ir.EvalContext, ins []ir.Value) ir.Value { return ins[0] }

		return builder.Map(input, kernel, label, outType), nil
	}
}

func constToSignalEntry() Entry {
	out := signalFloat()

	return Entry{
		ID: "ConstToSignal", Kind: Adapter,
		InputType: scalarFloat(), OutputType: out,
		Policy: PolicyAuto, Cost: costCheap,
		Apply:       identityApply(),
		CompileToIR: identityCompile(out),
	}
}

func broadcastScalarToFieldEntry() Entry {
	out := fieldFloat()

	return Entry{
		ID: "BroadcastScalarToField", Kind: Adapter,
		InputType: scalarFloat(), OutputType: out,
		Policy: PolicyAuto, Cost: costMedium,
		Apply: func(value ir.Value, _ map[string]ir.Value, _ ApplyContext) (ir.Value, error) {
			return value, nil
		},
		CompileToIR: func(input ir.ValueRef, _ map[string]ir.ValueRef, builder *ir.Builder, _ CompileContext) (ir.ValueRef, error) {
			// A scalar has no signal node of its own yet; lift it through a
			// trivial identity Signal map before broadcasting across the
			// field, so Builder.Broadcast always receives a KindSig ref.
			sigRef := builder.Map(input, func(_ *ir.EvalContext, ins []ir.Value) ir.Value { return ins[0] }, "adapter:ConstToSignal.implicit", signalFloat())

			return builder.Broadcast(sigRef, out), nil
		},
	}
}

func broadcastSignalToFieldEntry() Entry {
	out := fieldFloat()

	return Entry{
		ID: "BroadcastSignalToField", Kind: Adapter,
		InputType: signalFloat(), OutputType: out,
		Policy: PolicyAuto, Cost: costMedium,
		Apply: func(value ir.Value, _ map[string]ir.Value, _ ApplyContext) (ir.Value, error) {
			return value, nil
		},
		CompileToIR: func(input ir.ValueRef, _ map[string]ir.ValueRef, builder *ir.Builder, _ CompileContext) (ir.ValueRef, error) {
			return builder.Broadcast(input, out), nil
		},
	}
}

// ReductionMode is the closed set of ReduceFieldToSignal modes.
type ReductionMode string

const (
	ReduceMean ReductionMode = "mean"
	ReduceSum  ReductionMode = "sum"
	ReduceMin  ReductionMode = "min"
	ReduceMax  ReductionMode = "max"
)

// IsValid reports whether m is one of the closed ReductionMode values.
func (m ReductionMode) IsValid() bool {
	switch m {
	case ReduceMean, ReduceSum, ReduceMin, ReduceMax:
		return true
	default:
		return false
	}
}

// reduceFieldToSignalEntry implements resolved Open Question 1: explicit
// only, the "mode" param must be bound by the caller — there is no
// implicit default to ReduceMean. Apply/CompileToIR both reject a missing
// or invalid mode with ErrReductionModeRequired; the actual element-wise
// reduction runs in the runtime's field evaluator (package runtime), which
// is the only place that can iterate a Domain's elements — this adapter's
// CompileToIR records the mode as a FieldNode-free Signal node that the
// runtime recognizes by KernelLabel and special-cases. Rather than thread
// Domain-awareness into transform (which must stay field/domain-agnostic),
// the adapter emits a SigClosure carrying the mode, and the runtime's
// field reducer (runtime.reduceField) is what actually walks elements.
func reduceFieldToSignalEntry() Entry {
	out := signalFloat()
	param := ParamSpec{Name: "mode", Type: signalFloat(), DefaultValue: ir.StringValue(string(ReduceMean))}

	return Entry{
		ID: "ReduceFieldToSignal", Kind: Adapter,
		InputType: fieldFloat(), OutputType: out,
		Params: []ParamSpec{param},
		Policy: PolicyExplicit, Cost: costHeavy,
		Apply: func(_ ir.Value, params map[string]ir.Value, _ ApplyContext) (ir.Value, error) {
			mode, ok := params["mode"]
			if !ok || mode.Str == "" || !ReductionMode(mode.Str).IsValid() {
				return ir.Value{}, ErrReductionModeRequired
			}
			// Apply is only used for const-folding/testing outside a
			// Domain context and cannot itself iterate elements; callers
			// exercising true reduction go through the runtime.
			return ir.Value{}, fmt.Errorf("transform: ReduceFieldToSignal.Apply requires runtime field evaluation")
		},
		CompileToIR: func(input ir.ValueRef, params map[string]ir.ValueRef, builder *ir.Builder, ctx CompileContext) (ir.ValueRef, error) {
			modeRef, ok := params["mode"]
			if !ok {
				return ir.ValueRef{}, ErrReductionModeRequired
			}
			label := fmt.Sprintf("reduceField:%s", ctx.TransformID)
			// The field source and mode selector are recorded as the two
			// Srcs of a Zip whose Kernel the runtime special-cases by
			// label prefix "reduceField:" (see runtime.evaluateSignal).
			return builder.Zip([]ir.ValueRef{input, modeRef}, nil, label, out), nil
		},
	}
}

func normalizeToPhaseEntry() Entry {
	out := signalPhase()

	return Entry{
		ID: "NormalizeToPhase", Kind: Adapter,
		InputType: signalFloat(), OutputType: out,
		Policy: PolicySuggest, Cost: costCheap,
		Apply: func(value ir.Value, _ map[string]ir.Value, _ ApplyContext) (ir.Value, error) {
			return ir.Number(wrapUnit(value.AsNumber())), nil
		},
		CompileToIR: func(input ir.ValueRef, _ map[string]ir.ValueRef, builder *ir.Builder, ctx CompileContext) (ir.ValueRef, error) {
			kernel := func(_ *ir.EvalContext, ins []ir.Value) ir.Value { return ir.Number(wrapUnit(ins[0].AsNumber())) }

			return builder.Map(input, kernel, ctx.TransformID, out), nil
		},
	}
}

func phaseToNumberEntry() Entry {
	out := signalFloat()

	return Entry{
		ID: "PhaseToNumber", Kind: Adapter,
		InputType: signalPhase(), OutputType: out,
		Policy: PolicyAuto, Cost: costCheap,
		Apply:       identityApply(),
		CompileToIR: identityCompile(out),
	}
}

func numberToDurationMsEntry() Entry {
	out := signalDuration()

	return Entry{
		ID: "NumberToDurationMs", Kind: Adapter,
		InputType: signalFloat(), OutputType: out,
		Policy: PolicySuggest, Cost: costCheap,
		Apply:       identityApply(),
		CompileToIR: identityCompile(out),
	}
}

func durationToNumberMsEntry() Entry {
	out := signalFloat()

	return Entry{
		ID: "DurationToNumberMs", Kind: Adapter,
		InputType: signalDuration(), OutputType: out,
		Policy: PolicyAuto, Cost: costCheap,
		Apply:       identityApply(),
		CompileToIR: identityCompile(out),
	}
}
