package transform

import (
	"math"

	"github.com/patchgraph/corepatch/ir"
	"github.com/patchgraph/corepatch/typesystem"
)

func signalFloat() typesystem.TypeDesc {
	return typesystem.TypeDesc{World: typesystem.Signal, Domain: typesystem.DomainFloat, Category: typesystem.Core, BusEligible: true}
}

// numberLensEntry builds a Lens Entry over the signal:float/core type
// (the canonical world these numeric lenses are registered against — see
// DESIGN.md for why field-world variants are out of scope here).
func numberLensEntry(id string, params []ParamSpec, fn func(main ir.Value, p map[string]ir.Value) ir.Value) Entry {
	t := signalFloat()
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

func gainEntry() Entry {
	return numberLensEntry("gain",
		[]ParamSpec{{Name: "amount", Type: signalFloat(), DefaultValue: ir.Number(1), UIHint: "knob", RangeHint: &[2]float64{0, 4}}},
		func(main ir.Value, p map[string]ir.Value) ir.Value {
			return ir.Number(main.AsNumber() * numParam(p, "amount", 1))
		})
}

// biasEntry is a supplemental lens alongside gain's multiplicative scale:
// an additive constant, same family, same registration shape.
func biasEntry() Entry {
	return numberLensEntry("bias",
		[]ParamSpec{{Name: "amount", Type: signalFloat(), DefaultValue: ir.Number(0), UIHint: "knob", RangeHint: &[2]float64{-1, 1}}},
		func(main ir.Value, p map[string]ir.Value) ir.Value {
			return ir.Number(main.AsNumber() + numParam(p, "amount", 0))
		})
}

func polarityEntry() Entry {
	return numberLensEntry("polarity",
		[]ParamSpec{{Name: "invert", Type: signalFloat(), DefaultValue: ir.Number(0), UIHint: "toggle"}},
		func(main ir.Value, p map[string]ir.Value) ir.Value {
			if numParam(p, "invert", 0) != 0 {
				return ir.Number(-main.AsNumber())
			}

			return main
		})
}

func clampEntry() Entry {
	return numberLensEntry("clamp",
		[]ParamSpec{
			{Name: "min", Type: signalFloat(), DefaultValue: ir.Number(-1), UIHint: "knob"},
			{Name: "max", Type: signalFloat(), DefaultValue: ir.Number(1), UIHint: "knob"},
		},
		func(main ir.Value, p map[string]ir.Value) ir.Value {
			lo, hi := numParam(p, "min", -1), numParam(p, "max", 1)
			v := main.AsNumber()
			if v < lo {
				v = lo
			}
			if v > hi {
				v = hi
			}

			return ir.Number(v)
		})
}

// slewEntry is a soft-knee rate limiter expressed without cross-frame
// state (lenses must be stateless per spec §4.2 — true frame-to-frame
// slew-rate limiting belongs to a memory-bearing block, not a lens): it
// saturates the instantaneous value toward +/-rate with a smooth curve
// rather than a hard clamp.
func slewEntry() Entry {
	return numberLensEntry("slew",
		[]ParamSpec{{Name: "rate", Type: signalFloat(), DefaultValue: ir.Number(1), UIHint: "knob", RangeHint: &[2]float64{0.01, 10}}},
		func(main ir.Value, p map[string]ir.Value) ir.Value {
			rate := numParam(p, "rate", 1)
			if rate <= 0 {
				return main
			}

			return ir.Number(rate * math.Tanh(main.AsNumber()/rate))
		})
}

func quantizeEntry() Entry {
	return numberLensEntry("quantize",
		[]ParamSpec{{Name: "step", Type: signalFloat(), DefaultValue: ir.Number(0), UIHint: "knob"}},
		func(main ir.Value, p map[string]ir.Value) ir.Value {
			step := numParam(p, "step", 0)
			if step <= 0 {
				return main
			}

			return ir.Number(math.Round(main.AsNumber()/step) * step)
		})
}

func easeEntry() Entry {
	return numberLensEntry("ease",
		[]ParamSpec{{Name: "curve", Type: signalFloat(), DefaultValue: ir.Number(0), UIHint: "select"}},
		func(main ir.Value, p map[string]ir.Value) ir.Value {
			v := main.AsNumber()
			switch int(numParam(p, "curve", 0)) {
			case 1: // inQuad
				return ir.Number(v * v)
			case 2: // outQuad
				return ir.Number(1 - (1-v)*(1-v))
			case 3: // inOutQuad
				if v < 0.5 {
					return ir.Number(2 * v * v)
				}

				return ir.Number(1 - math.Pow(-2*v+2, 2)/2)
			default: // linear
				return main
			}
		})
}

func mapRangeEntry() Entry {
	return numberLensEntry("mapRange",
		[]ParamSpec{
			{Name: "inMin", Type: signalFloat(), DefaultValue: ir.Number(0)},
			{Name: "inMax", Type: signalFloat(), DefaultValue: ir.Number(1)},
			{Name: "outMin", Type: signalFloat(), DefaultValue: ir.Number(0)},
			{Name: "outMax", Type: signalFloat(), DefaultValue: ir.Number(1)},
		},
		func(main ir.Value, p map[string]ir.Value) ir.Value {
			inMin, inMax := numParam(p, "inMin", 0), numParam(p, "inMax", 1)
			outMin, outMax := numParam(p, "outMin", 0), numParam(p, "outMax", 1)
			span := inMax - inMin
			if span == 0 {
				return ir.Number(outMin)
			}
			t := (main.AsNumber() - inMin) / span

			return ir.Number(outMin + t*(outMax-outMin))
		})
}
