package ir

import "github.com/patchgraph/corepatch/typesystem"

// Artifact is the output shape a V1 (closure-returning) block produces:
// a value tagged with its type, carried either as a literal Value or as
// an opaque per-frame closure over an EvalContext (spec §4.7's
// "Artifact {world, type, value}" where value may be a closure).
type Artifact struct {
	Type    typesystem.TypeDesc
	Value   Value
	Closure func(ctx *EvalContext) Value
}

// IsClosure reports whether a carries a closure rather than a literal Value.
func (a Artifact) IsClosure() bool { return a.Closure != nil }

// Bridge lowers a to a V2 ValueRef via b, the V1<->V2 bridge spec §4.7
// requires so a legacy block's output can feed a ValueRef-consuming
// builder step: a literal Value becomes a Const node, a closure becomes a
// Closure node.
func Bridge(b *Builder, a Artifact) ValueRef {
	if a.IsClosure() {
		return b.Closure(a.Closure, a.Type)
	}

	return b.Const(a.Value)
}
