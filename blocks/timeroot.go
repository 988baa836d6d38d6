package blocks

import (
	"math"

	"github.com/patchgraph/corepatch/ir"
	"github.com/patchgraph/corepatch/typesystem"
)

// RoleTimeRoot is the BlockDef.Role the compiler's Time Topology pass
// (Pass 3) looks for: exactly one block with this role is required per
// patch (spec §4.6 Pass 3 / §4.10).
const RoleTimeRoot = "TimeRoot"

func signalType(d typesystem.Domain) typesystem.TypeDesc {
	return typesystem.TypeDesc{World: typesystem.Signal, Domain: d, Category: typesystem.Core, BusEligible: true}
}

func eventType() typesystem.TypeDesc {
	return typesystem.TypeDesc{World: typesystem.Event, Domain: typesystem.DomainBoolean, Category: typesystem.Core, BusEligible: true}
}

// finiteTimeRootDef is FiniteTimeRoot(durationMs): a one-shot clock that
// reaches progress==1 at durationMs and holds there. Implemented with the
// V1 (Artifact-returning) compile form since both outputs are pure
// functions of the host clock with no internal state to integrate.
func finiteTimeRootDef() BlockDef {
	return BlockDef{
		Type: "FiniteTimeRoot",
		Outputs: []OutputSlot{
			{ID: "time", Type: signalType(typesystem.DomainTime)},
			{ID: "progress", Type: signalType(typesystem.DomainUnit)},
		},
		Compile: finiteTimeRootCompile,
		Role:    RoleTimeRoot,
	}
}

func finiteTimeRootCompile(args CompileArgs) (map[string]ir.Artifact, error) {
	durationMs := paramNumber(args.Params, "durationMs", 1000)
	timeT := signalType(typesystem.DomainTime)
	progressT := signalType(typesystem.DomainUnit)

	return map[string]ir.Artifact{
		"time": {
			Type: timeT,
			Closure: func(ctx *ir.EvalContext) ir.Value {
				return ir.TimeValue(ctx.T * 1000)
			},
		},
		"progress": {
			Type: progressT,
			Closure: func(ctx *ir.EvalContext) ir.Value {
				return ir.Number(clampUnit((ctx.T * 1000) / durationMs))
			},
		},
	}, nil
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}

	return v
}

// cycleTimeRootDef is CycleTimeRoot(periodMs, mode): a repeating clock
// publishing a phase signal and a wrap event fired once per cycle.
// Implemented with the V2 (builder-style) compile form since the wrap
// output needs an Event IR node, which only a Builder can allocate.
func cycleTimeRootDef() BlockDef {
	return BlockDef{
		Type: "CycleTimeRoot",
		Outputs: []OutputSlot{
			{ID: "phase", Type: signalType(typesystem.DomainPhase)},
			{ID: "wrap", Type: eventType()},
		},
		CompileV2: cycleTimeRootCompileV2,
		Role:      RoleTimeRoot,
	}
}

// cyclePhase computes CycleTimeRoot's phase at time t (seconds) for the
// given period (ms) and mode ("pingpong", or anything else treated as
// "loop"), shared by the compile closure and tests.
func cyclePhase(tSeconds, periodMs float64, mode string) float64 {
	p := math.Mod(tSeconds*1000, periodMs) / periodMs
	if mode == "pingpong" {
		p *= 2
		if p > 1 {
			p = 2 - p
		}
	}

	return p
}

func cycleTimeRootCompileV2(args CompileArgsV2) (map[string]ir.ValueRef, error) {
	periodMs := paramNumber(args.Params, "periodMs", 1000)
	mode := paramString(args.Params, "mode", "loop")

	phaseRef := args.Builder.Closure(func(ctx *ir.EvalContext) ir.Value {
		return ir.Number(cyclePhase(ctx.T, periodMs, mode))
	}, signalType(typesystem.DomainPhase))

	wrapRef := args.Builder.Pulse(phaseRef, eventType())

	return map[string]ir.ValueRef{"phase": phaseRef, "wrap": wrapRef}, nil
}

// infiniteTimeRootDef is InfiniteTimeRoot(windowMs): an unbounded clock
// that never reaches progress==1; windowMs only bounds a sliding display
// window the UI may use, never the evaluator's own `t`, which the
// evaluator never wraps (spec §4.8).
func infiniteTimeRootDef() BlockDef {
	return BlockDef{
		Type: "InfiniteTimeRoot",
		Outputs: []OutputSlot{
			{ID: "time", Type: signalType(typesystem.DomainTime)},
		},
		Compile: infiniteTimeRootCompile,
		Role:    RoleTimeRoot,
	}
}

func infiniteTimeRootCompile(args CompileArgs) (map[string]ir.Artifact, error) {
	timeT := signalType(typesystem.DomainTime)

	return map[string]ir.Artifact{
		"time": {
			Type: timeT,
			Closure: func(ctx *ir.EvalContext) ir.Value {
				return ir.TimeValue(ctx.T * 1000)
			},
		},
	}, nil
}
