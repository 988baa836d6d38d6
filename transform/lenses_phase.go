package transform

import (
	"math"

	"github.com/patchgraph/corepatch/ir"
	"github.com/patchgraph/corepatch/typesystem"
)

func signalPhase() typesystem.TypeDesc {
	return typesystem.TypeDesc{World: typesystem.Signal, Domain: typesystem.DomainPhase, Category: typesystem.Core, BusEligible: true}
}

// wrapUnit folds v into the half-open interval [0, 1), the canonical phase
// representation throughout corepatch.
func wrapUnit(v float64) float64 {
	v = math.Mod(v, 1)
	if v < 0 {
		v += 1
	}

	return v
}

func phaseLensEntry(id string, params []ParamSpec, fn func(main ir.Value, p map[string]ir.Value) ir.Value) Entry {
	t := signalPhase()
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

func phaseOffsetEntry() Entry {
	return phaseLensEntry("phaseOffset",
		[]ParamSpec{{Name: "offset", Type: signalPhase(), DefaultValue: ir.Number(0), UIHint: "knob", RangeHint: &[2]float64{0, 1}}},
		func(main ir.Value, p map[string]ir.Value) ir.Value {
			return ir.Number(wrapUnit(main.AsNumber() + numParam(p, "offset", 0)))
		})
}

func phaseScaleEntry() Entry {
	return phaseLensEntry("phaseScale",
		[]ParamSpec{{Name: "scale", Type: signalPhase(), DefaultValue: ir.Number(1), UIHint: "knob", RangeHint: &[2]float64{0, 8}}},
		func(main ir.Value, p map[string]ir.Value) ir.Value {
			return ir.Number(wrapUnit(main.AsNumber() * numParam(p, "scale", 1)))
		})
}

func pingPongEntry() Entry {
	return phaseLensEntry("pingPong", nil,
		func(main ir.Value, _ map[string]ir.Value) ir.Value {
			folded := math.Mod(main.AsNumber()*2, 2)
			if folded < 0 {
				folded += 2
			}

			return ir.Number(1 - math.Abs(folded-1))
		})
}

func phaseQuantizeEntry() Entry {
	return phaseLensEntry("phaseQuantize",
		[]ParamSpec{{Name: "steps", Type: signalPhase(), DefaultValue: ir.Number(0), UIHint: "knob"}},
		func(main ir.Value, p map[string]ir.Value) ir.Value {
			steps := numParam(p, "steps", 0)
			if steps <= 0 {
				return main
			}

			return ir.Number(wrapUnit(math.Round(main.AsNumber()*steps) / steps))
		})
}

// phaseInvertEntry is the supplemental phase-family lens alongside the
// required set: reflects phase around 0.5, e.g. for reversing an LFO.
func phaseInvertEntry() Entry {
	return phaseLensEntry("phaseInvert", nil,
		func(main ir.Value, _ map[string]ir.Value) ir.Value {
			return ir.Number(wrapUnit(1 - main.AsNumber()))
		})
}
