package ir

import "github.com/patchgraph/corepatch/typesystem"

// Builder accumulates IR nodes and the shared const pool. A Builder is not
// safe for concurrent use; the compiler (package compiler) owns exactly
// one Builder per compilation and is itself single-threaded and pure.
type Builder struct {
	consts      []Value
	signals     []SignalNode
	fields      []FieldNode
	events      []EventNode
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Const allocates (or reuses, if an identical constant already exists in
// the pool) a KindScalarConst ValueRef for v. Reuse keeps the const pool
// free of duplicate literals across a whole compilation, the same
// amortized-constant-time, dedup-on-insert spirit as core.Graph's edge-id
// map.
func (b *Builder) Const(v Value) ValueRef {
	for i, existing := range b.consts {
		if existing == v {
			return ValueRef{Kind: KindScalarConst, ID: i}
		}
	}
	b.consts = append(b.consts, v)

	return ValueRef{Kind: KindScalarConst, ID: len(b.consts) - 1}
}

// Param allocates a Signal node reading a named compile-time parameter
// binding (spec §4.6 Pass 8's "literal"/"default" lens-param bindings that
// resolve through a live wire use Wire/Bus instead; Param is for bindings
// that resolve to a block's own params map entry).
func (b *Builder) Param(paramID string, t typesystem.TypeDesc) ValueRef {
	b.signals = append(b.signals, SignalNode{Kind: SigParam, Type: t, ParamID: paramID})

	return ValueRef{Kind: KindSig, ID: len(b.signals) - 1}
}

// Map allocates a Signal node applying kernel (labeled label, for
// structural-equality diagnostics) to a single upstream signal.
func (b *Builder) Map(src ValueRef, kernel Kernel, label string, t typesystem.TypeDesc) ValueRef {
	b.signals = append(b.signals, SignalNode{Kind: SigMap, Type: t, Src: src, Kernel: kernel, KernelLabel: label})

	return ValueRef{Kind: KindSig, ID: len(b.signals) - 1}
}

// Zip allocates a Signal node combining several upstream signals (in the
// given order — this is the combine-node shape Pass 5 uses) with kernel.
func (b *Builder) Zip(srcs []ValueRef, kernel Kernel, label string, t typesystem.TypeDesc) ValueRef {
	cp := append([]ValueRef(nil), srcs...)
	b.signals = append(b.signals, SignalNode{Kind: SigZip, Type: t, Srcs: cp, Kernel: kernel, KernelLabel: label})

	return ValueRef{Kind: KindSig, ID: len(b.signals) - 1}
}

// Closure allocates a Signal node wrapping an opaque per-frame function —
// the V1↔V2 bridge's escape hatch for a legacy block whose Artifact.value
// is a closure rather than a composable kernel.
func (b *Builder) Closure(fn func(ctx *EvalContext) Value, t typesystem.TypeDesc) ValueRef {
	b.signals = append(b.signals, SignalNode{Kind: SigClosure, Type: t, Closure: fn})

	return ValueRef{Kind: KindSig, ID: len(b.signals) - 1}
}

// Broadcast allocates a Field node that lifts a Signal to every element of
// an implicit domain (the domain is supplied by whatever Field node
// eventually zips against it via ZipSignal, or by the render sink itself
// for a bare broadcast).
func (b *Builder) Broadcast(sig ValueRef, t typesystem.TypeDesc) ValueRef {
	b.fields = append(b.fields, FieldNode{Kind: FieldBroadcast, Type: t, SignalSrc: sig})

	return ValueRef{Kind: KindFieldExpr, ID: len(b.fields) - 1}
}

// Source allocates a Field node generating per-element values directly
// from a Domain (e.g. each grid cell's position), tagged with fieldKind so
// the evaluator knows which generator to run.
func (b *Builder) Source(domain DomainRef, fieldKind string, t typesystem.TypeDesc) ValueRef {
	b.fields = append(b.fields, FieldNode{Kind: FieldSource, Type: t, Domain: domain, FieldKind: fieldKind})

	return ValueRef{Kind: KindFieldExpr, ID: len(b.fields) - 1}
}

// FieldMap allocates a Field node applying kernel element-wise to a single
// upstream field.
func (b *Builder) FieldMap(src ValueRef, kernel Kernel, label string, t typesystem.TypeDesc) ValueRef {
	b.fields = append(b.fields, FieldNode{Kind: FieldMap, Type: t, FieldSrc: src, Kernel: kernel, KernelLabel: label})

	return ValueRef{Kind: KindFieldExpr, ID: len(b.fields) - 1}
}

// FieldZip allocates a Field node combining several upstream fields
// element-wise with kernel; all sources must share the same Domain (the
// compiler, not Builder, enforces that — Builder is a pure recorder).
func (b *Builder) FieldZip(srcs []ValueRef, kernel Kernel, label string, t typesystem.TypeDesc) ValueRef {
	cp := append([]ValueRef(nil), srcs...)
	b.fields = append(b.fields, FieldNode{Kind: FieldZip, Type: t, FieldSrcs: cp, Kernel: kernel, KernelLabel: label})

	return ValueRef{Kind: KindFieldExpr, ID: len(b.fields) - 1}
}

// FieldZipSignal allocates a Field node combining one upstream field with
// one upstream signal (broadcast implicitly per element) via kernel.
func (b *Builder) FieldZipSignal(field, sig ValueRef, kernel Kernel, label string, t typesystem.TypeDesc) ValueRef {
	b.fields = append(b.fields, FieldNode{
		Kind: FieldZipSignal, Type: t,
		FieldSrc: field, SignalSrc: sig,
		Kernel: kernel, KernelLabel: label,
	})

	return ValueRef{Kind: KindFieldExpr, ID: len(b.fields) - 1}
}

// Pulse allocates an Event node deriving a pulse stream from sourceRef
// (typically a phase wrap signal).
func (b *Builder) Pulse(source ValueRef, t typesystem.TypeDesc) ValueRef {
	b.events = append(b.events, EventNode{Kind: EventPulse, Type: t, Source: source})

	return ValueRef{Kind: KindEvent, ID: len(b.events) - 1}
}

// Div allocates an Event node that fires once every n occurrences of
// phaseRef.
func (b *Builder) Div(phase ValueRef, n int, t typesystem.TypeDesc) ValueRef {
	b.events = append(b.events, EventNode{Kind: EventDiv, Type: t, Source: phase, Divisor: n})

	return ValueRef{Kind: KindEvent, ID: len(b.events) - 1}
}

// Or allocates an Event node that fires whenever any of sources fires.
func (b *Builder) Or(sources []ValueRef, t typesystem.TypeDesc) ValueRef {
	cp := append([]ValueRef(nil), sources...)
	b.events = append(b.events, EventNode{Kind: EventOr, Type: t, SourceIDs: cp})

	return ValueRef{Kind: KindEvent, ID: len(b.events) - 1}
}

// Rising allocates an Event node firing on the rising edge of signalRef.
func (b *Builder) Rising(signal ValueRef, t typesystem.TypeDesc) ValueRef {
	b.events = append(b.events, EventNode{Kind: EventRising, Type: t, Source: signal})

	return ValueRef{Kind: KindEvent, ID: len(b.events) - 1}
}

// Build freezes the accumulated nodes and const pool into an immutable
// LinkedIR. Calling Build does not reset the Builder; compiler.Compile
// allocates a fresh Builder per compilation, matching core.NewGraph's
// one-graph-per-constructor-call discipline.
func (b *Builder) Build() LinkedIR {
	return LinkedIR{
		ConstPool: append([]Value(nil), b.consts...),
		Signals:   append([]SignalNode(nil), b.signals...),
		Fields:    append([]FieldNode(nil), b.fields...),
		Events:    append([]EventNode(nil), b.events...),
	}
}

// NodeCount returns the number of nodes allocated so far across all three
// IR families, used by the compiler to size the schedule and frame cache.
func (b *Builder) NodeCount() int {
	return len(b.signals) + len(b.fields) + len(b.events)
}
