package transform

import (
	"math"

	"github.com/patchgraph/corepatch/ir"
	"github.com/patchgraph/corepatch/typesystem"
)

func signalColor() typesystem.TypeDesc {
	return typesystem.TypeDesc{World: typesystem.Signal, Domain: typesystem.DomainColor, Category: typesystem.Core, BusEligible: true}
}

func colorLensEntry(id string, params []ParamSpec, fn func(main ir.Value, p map[string]ir.Value) ir.Value) Entry {
	t := signalColor()
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

func colorGainEntry() Entry {
	return colorLensEntry("colorGain",
		[]ParamSpec{{Name: "amount", Type: signalColor(), DefaultValue: ir.Number(1), RangeHint: &[2]float64{0, 4}}},
		func(main ir.Value, p map[string]ir.Value) ir.Value {
			amount := numParam(p, "amount", 1)
			c := main.Color

			return ir.ColorValue(c[0]*amount, c[1]*amount, c[2]*amount, c[3])
		})
}

// rgbToHSV and hsvToRGB convert within [0,1]^3 channels; h wraps in [0,1)
// rather than [0,360) to stay consistent with the phase-domain convention
// used elsewhere (wrapUnit).
func rgbToHSV(r, g, b float64) (h, s, v float64) {
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	v = maxC
	delta := maxC - minC
	if delta < 1e-9 {
		return 0, 0, v
	}
	s = delta / maxC

	switch maxC {
	case r:
		h = math.Mod((g-b)/delta, 6)
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}
	h = wrapUnit(h / 6)

	return h, s, v
}

func hsvToRGB(h, s, v float64) (r, g, b float64) {
	if s <= 1e-9 {
		return v, v, v
	}
	h6 := wrapUnit(h) * 6
	i := math.Floor(h6)
	f := h6 - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	switch int(i) % 6 {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}

func hueShiftEntry() Entry {
	return colorLensEntry("hueShift",
		[]ParamSpec{{Name: "turns", Type: signalColor(), DefaultValue: ir.Number(0), RangeHint: &[2]float64{-1, 1}}},
		func(main ir.Value, p map[string]ir.Value) ir.Value {
			c := main.Color
			h, s, v := rgbToHSV(c[0], c[1], c[2])
			h = wrapUnit(h + numParam(p, "turns", 0))
			r, g, b := hsvToRGB(h, s, v)

			return ir.ColorValue(r, g, b, c[3])
		})
}

func saturateEntry() Entry {
	return colorLensEntry("saturate",
		[]ParamSpec{{Name: "amount", Type: signalColor(), DefaultValue: ir.Number(1), RangeHint: &[2]float64{0, 2}}},
		func(main ir.Value, p map[string]ir.Value) ir.Value {
			c := main.Color
			h, s, v := rgbToHSV(c[0], c[1], c[2])
			s = math.Max(0, math.Min(1, s*numParam(p, "amount", 1)))
			r, g, b := hsvToRGB(h, s, v)

			return ir.ColorValue(r, g, b, c[3])
		})
}
