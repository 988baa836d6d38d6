package ir

import "github.com/patchgraph/corepatch/typesystem"

// DomainRef is the IR-level handle to a Domain artifact (spec §3): a
// stable identity and element count, produced by a block (e.g. a grid
// block) and referenced — never materialized — by Field IR nodes. Element
// values themselves are never stored in the IR; a render sink walks
// 0..ElementCount-1 and evaluates the field expression tree per element.
type DomainRef struct {
	ID           string
	ElementCount int
}

// SignalNodeKind is the closed set of Signal IR node shapes.
type SignalNodeKind int

const (
	SigConst SignalNodeKind = iota
	SigParam
	SigMap
	SigZip
	SigClosure
)

// SignalNode is one node in the Signal IR array. Exactly the fields
// relevant to Kind are meaningful; Builder never populates the others.
type SignalNode struct {
	Kind SignalNodeKind
	Type typesystem.TypeDesc

	ConstID int      // SigConst: index into the shared ConstPool
	ParamID string    // SigParam: name of the bound parameter
	Src     ValueRef  // SigMap: single upstream signal
	Srcs    []ValueRef // SigZip: upstream signals, in order

	Kernel      Kernel // SigMap/SigZip
	KernelLabel string // transform id (or "builtin:<name>") that produced Kernel

	Closure func(ctx *EvalContext) Value // SigClosure: V1 bridge escape hatch
}

// FieldNodeKind is the closed set of Field IR node shapes.
type FieldNodeKind int

const (
	FieldBroadcast FieldNodeKind = iota
	FieldSource
	FieldMap
	FieldZip
	FieldZipSignal
)

// FieldNode is one node in the Field IR array. Field IR never materializes
// on its own (spec §4.7); a render sink evaluates it into a reused typed
// buffer during Evaluator.Step.
type FieldNode struct {
	Kind FieldNodeKind
	Type typesystem.TypeDesc

	SignalSrc ValueRef // FieldBroadcast/FieldZipSignal: the broadcast signal

	Domain   DomainRef // FieldSource
	FieldKind string    // FieldSource: which per-element generator to run

	FieldSrc  ValueRef   // FieldMap/FieldZipSignal: single upstream field
	FieldSrcs []ValueRef // FieldZip: upstream fields

	Kernel      Kernel
	KernelLabel string
}

// EventNodeKind is the closed set of Event IR node shapes.
type EventNodeKind int

const (
	EventPulse EventNodeKind = iota
	EventDiv
	EventOr
	EventRising
)

// EventNode is one node in the Event IR array.
type EventNode struct {
	Kind EventNodeKind
	Type typesystem.TypeDesc

	Source    ValueRef   // EventPulse/EventDiv/EventRising
	Divisor   int        // EventDiv
	SourceIDs []ValueRef // EventOr
}
