package transform

import (
	"math"

	"github.com/patchgraph/corepatch/ir"
	"github.com/patchgraph/corepatch/typesystem"
)

func signalVec2() typesystem.TypeDesc {
	return typesystem.TypeDesc{World: typesystem.Signal, Domain: typesystem.DomainVec2, Category: typesystem.Core, BusEligible: true}
}

func vec2LensEntry(id string, params []ParamSpec, fn func(main ir.Value, p map[string]ir.Value) ir.Value) Entry {
	t := signalVec2()
	order := make([]string, len(params))
	for i, p := range params {
		order[i] = p.Name
	}

	return Entry{
		ID:          id,
		Kind:        Lens,
		InputType:   t,
		OutputType:  t,
		Params:      params,
		Apply:       unaryApply(fn),
		CompileToIR: unaryCompile(order, fn, t),
	}
}

func vec2GainBiasEntry() Entry {
	return vec2LensEntry("vec2GainBias",
		[]ParamSpec{
			{Name: "gainX", Type: signalVec2(), DefaultValue: ir.Number(1)},
			{Name: "gainY", Type: signalVec2(), DefaultValue: ir.Number(1)},
			{Name: "biasX", Type: signalVec2(), DefaultValue: ir.Number(0)},
			{Name: "biasY", Type: signalVec2(), DefaultValue: ir.Number(0)},
		},
		func(main ir.Value, p map[string]ir.Value) ir.Value {
			x := main.Vec2[0]*numParam(p, "gainX", 1) + numParam(p, "biasX", 0)
			y := main.Vec2[1]*numParam(p, "gainY", 1) + numParam(p, "biasY", 0)

			return ir.Vec2Value(x, y)
		})
}

func rotate2DEntry() Entry {
	return vec2LensEntry("rotate2D",
		[]ParamSpec{{Name: "angle", Type: signalVec2(), DefaultValue: ir.Number(0), UIHint: "knob", RangeHint: &[2]float64{-math.Pi, math.Pi}}},
		func(main ir.Value, p map[string]ir.Value) ir.Value {
			angle := numParam(p, "angle", 0)
			s, c := math.Sin(angle), math.Cos(angle)
			x, y := main.Vec2[0], main.Vec2[1]

			return ir.Vec2Value(x*c-y*s, x*s+y*c)
		})
}

func translate2DEntry() Entry {
	return vec2LensEntry("translate2D",
		[]ParamSpec{
			{Name: "dx", Type: signalVec2(), DefaultValue: ir.Number(0)},
			{Name: "dy", Type: signalVec2(), DefaultValue: ir.Number(0)},
		},
		func(main ir.Value, p map[string]ir.Value) ir.Value {
			return ir.Vec2Value(main.Vec2[0]+numParam(p, "dx", 0), main.Vec2[1]+numParam(p, "dy", 0))
		})
}
