package transform

import (
	"fmt"

	"github.com/patchgraph/corepatch/ir"
	"github.com/patchgraph/corepatch/typesystem"
)

// unaryApply adapts a pure (mainValue, paramValues) -> outputValue function
// into an ApplyFunc. Every lens in this package is unary in exactly this
// shape: one upstream value plus a fixed set of named params.
func unaryApply(fn func(main ir.Value, params map[string]ir.Value) ir.Value) ApplyFunc {
	return func(value ir.Value, params map[string]ir.Value, _ ApplyContext) (ir.Value, error) {
		return fn(value, params), nil
	}
}

// unaryCompile adapts the same (mainValue, paramValues) -> outputValue
// function into a CompileFunc. paramOrder fixes the positional order in
// which resolved param ValueRefs are threaded through the IR's Zip node —
// the kernel closure reconstructs the params map from that fixed order at
// eval time, once per frame, never retaining it across frames.
func unaryCompile(paramOrder []string, fn func(main ir.Value, params map[string]ir.Value) ir.Value, outType typesystem.TypeDesc) CompileFunc {
	return func(input ir.ValueRef, params map[string]ir.ValueRef, builder *ir.Builder, ctx CompileContext) (ir.ValueRef, error) {
		srcs := make([]ir.ValueRef, 0, 1+len(paramOrder))
		srcs = append(srcs, input)
		for _, name := range paramOrder {
			ref, ok := params[name]
			if !ok {
				return ir.ValueRef{}, fmt.Errorf("transform: %s: missing param %q", ctx.TransformID, name)
			}
			srcs = append(srcs, ref)
		}

		kernel := func(_ *ir.EvalContext, ins []ir.Value) ir.Value {
			p := make(map[string]ir.Value, len(paramOrder))
			for i, name := range paramOrder {
				p[name] = ins[1+i]
			}

			return fn(ins[0], p)
		}

		label := ctx.TransformID

		return builder.Zip(srcs, kernel, label, outType), nil
	}
}

// numParam reads a numeric param by name, falling back to def if absent
// (defensive only — Pass 8 always binds every declared ParamSpec to at
// least its DefaultValue before compilation, so absence here would
// indicate a compiler bug, not a patch authoring error).
func numParam(p map[string]ir.Value, name string, def float64) float64 {
	if v, ok := p[name]; ok {
		return v.AsNumber()
	}

	return def
}
