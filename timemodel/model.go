package timemodel

import (
	"fmt"

	"github.com/patchgraph/corepatch/ir"
)

// Kind is the closed set of TimeModel variants.
type Kind int

// The closed set of Kind values.
const (
	Finite Kind = iota
	Cyclic
	Infinite
)

// CycleMode is the closed set of CycleTimeRoot modes.
type CycleMode string

// The closed set of CycleMode values.
const (
	CycleLoop     CycleMode = "loop"
	CyclePingpong CycleMode = "pingpong"
)

// TimeModel is the closed tagged union spec §4.6 Pass 3 / §4.10 derive
// from the patch's single TimeRoot block. Only the fields meaningful to
// Kind are populated.
type TimeModel struct {
	Kind Kind

	// DurationMs is set for Kind == Finite.
	DurationMs float64

	// PeriodMs and Mode are set for Kind == Cyclic.
	PeriodMs float64
	Mode     CycleMode

	// WindowMs is set for Kind == Infinite.
	WindowMs float64
}

// FromTimeRoot derives a TimeModel purely from the TimeRoot block's type
// name and param map (spec §8 property 6: "TimeModel is a pure function
// of the single TimeRoot block's type and params").
func FromTimeRoot(blockType string, params map[string]ir.Value) (TimeModel, error) {
	switch blockType {
	case "FiniteTimeRoot":
		return TimeModel{Kind: Finite, DurationMs: numberParam(params, "durationMs", 1000)}, nil
	case "CycleTimeRoot":
		mode := CycleLoop
		if v, ok := params["mode"]; ok && v.Str == string(CyclePingpong) {
			mode = CyclePingpong
		}

		return TimeModel{Kind: Cyclic, PeriodMs: numberParam(params, "periodMs", 1000), Mode: mode}, nil
	case "InfiniteTimeRoot":
		return TimeModel{Kind: Infinite, WindowMs: numberParam(params, "windowMs", 10000)}, nil
	default:
		return TimeModel{}, fmt.Errorf("timemodel.FromTimeRoot(%s): %w", blockType, ErrUnknownTimeRootType)
	}
}

func numberParam(params map[string]ir.Value, key string, fallback float64) float64 {
	v, ok := params[key]
	if !ok {
		return fallback
	}

	return v.AsNumber()
}
