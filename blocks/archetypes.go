package blocks

import (
	"math"

	"github.com/patchgraph/corepatch/ir"
	"github.com/patchgraph/corepatch/typesystem"
)

// constDef is Const: a non-hidden scalar:float/core literal output,
// spec's own S1 scenario block ("Const{value:5}").
func constDef() BlockDef {
	outT := typesystem.TypeDesc{World: typesystem.Scalar, Domain: typesystem.DomainFloat, Category: typesystem.Core, BusEligible: true}

	return BlockDef{
		Type:      "Const",
		Outputs:   []OutputSlot{{ID: "out", Type: outT}},
		CompileV2: constCompileV2,
	}
}

func constCompileV2(args CompileArgsV2) (map[string]ir.ValueRef, error) {
	v, ok := args.Params["value"]
	if !ok {
		v = ir.Number(0)
	}

	return map[string]ir.ValueRef{"out": args.Builder.Const(v)}, nil
}

// oscDef is Osc: a non-hidden signal oscillator consuming a frequency
// input and producing phase/value outputs, spec's own S1 scenario block
// ("Osc{frequency}"). The phase integrator is stateful (each frame adds
// frequency*dt and wraps into [0,1)); "value" is a pure sin() of "phase",
// so sharing one Map chain keeps the integrator a single node even though
// two outputs are published — evaluating "value" can never silently
// double-advance the integrator.
func oscDef() BlockDef {
	return BlockDef{
		Type: "Osc",
		Inputs: []InputSlot{
			{
				ID:      "frequency",
				Type:    signalType(typesystem.DomainFloat),
				Default: &DefaultSource{ProviderType: "DSConstSignalFloat", Params: map[string]ir.Value{"value": ir.Number(1)}},
				Combine: CombinePolicy{When: WhenMulti, Mode: ModeLatest},
			},
		},
		Outputs: []OutputSlot{
			{ID: "phase", Type: signalType(typesystem.DomainPhase)},
			{ID: "value", Type: signalType(typesystem.DomainFloat)},
		},
		CompileV2: oscCompileV2,
	}
}

func oscCompileV2(args CompileArgsV2) (map[string]ir.ValueRef, error) {
	freqRef, ok := args.Inputs["frequency"]
	if !ok {
		return nil, ErrMissingInput
	}

	phaseRef := args.Builder.Map(freqRef, oscPhaseKernel, "Osc:"+args.ID+":phase", signalType(typesystem.DomainPhase))
	valueRef := args.Builder.Map(phaseRef, oscValueKernel, "Osc:"+args.ID+":value", signalType(typesystem.DomainFloat))

	return map[string]ir.ValueRef{"phase": phaseRef, "value": valueRef}, nil
}

func oscPhaseKernel(ctx *ir.EvalContext, ins []ir.Value) ir.Value {
	freq := ins[0].AsNumber()

	prev := 0.0
	if v, ok := ctx.State.Get(); ok {
		prev = v.AsNumber()
	}

	next := prev + freq*ctx.Dt
	next -= math.Floor(next)
	ctx.State.Set(ir.Number(next))

	return ir.Number(next)
}

func oscValueKernel(_ *ir.EvalContext, ins []ir.Value) ir.Value {
	return ir.Number(math.Sin(2 * math.Pi * ins[0].AsNumber()))
}
