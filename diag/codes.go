package diag

import "errors"

// Code is the closed set of diagnostic codes the compiler/runtime can
// raise (spec §4.11, minimum taxonomy).
type Code string

// The closed set of diagnostic codes.
const (
	CodeMissingTimeRoot        Code = "TR-001"
	CodeMultipleTimeRoots      Code = "TR-002"
	CodeTimeRootHasInput       Code = "TR-003"
	CodeMissingPrimaryPhase    Code = "TM-101"
	CodeReservedBusTypeMismatch Code = "TM-103"
	CodeIllegalFeedback        Code = "FB-301"
	CodeAmbiguousClockInput    Code = "PC-202"
	CodeTypeMismatch           Code = "TypeMismatch"
	CodeMultiWriterForbidden   Code = "MultiWriterForbidden"
	CodeUnknownTransform       Code = "UnknownTransform"
	CodeAdapterPolicyViolation Code = "AdapterPolicyViolation"

	// CodeUnusedBindingField is a warning-only code: a param binding
	// carried an adapterChain/lensStack field the compiler ignores per
	// the resolved Open Question on nested lens stacks on bus bindings
	// (SPEC_FULL.md "Resolved Open Questions" #2).
	CodeUnusedBindingField Code = "UnusedBindingField"

	// CodeUnfedInput indicates an input slot has no enabled writer and no
	// registered default source (compiler Pass 0).
	CodeUnfedInput Code = "PC-201"

	// CodeMalformedEdge indicates an edge references a block or slot id
	// that does not exist (compiler Pass 1).
	CodeMalformedEdge Code = "PC-203"

	// CodeUnknownBlockType indicates a block's Type is not registered
	// (compiler Pass 1).
	CodeUnknownBlockType Code = "PC-204"

	// CodeCombineModeUnsupported indicates a multi-writer input resolved
	// to a CombineMode this IR cannot lower (merge/array need a richer
	// value representation than the scalar ir.Value union provides).
	CodeCombineModeUnsupported Code = "PC-205"

	// CodeLegacyInputNotConstant indicates a V1 (closure-returning) block
	// was fed an input whose resolved value is not a compile-time
	// constant. A V1 block's compile function runs entirely in Go-closure
	// space with no access to the IR evaluator, so it can only consume an
	// already-folded literal, never a Signal/Field/Event node.
	CodeLegacyInputNotConstant Code = "PC-206"

	// CodeInvalidOp indicates a transaction op failed pre-apply validation
	// (unknown target id, duplicate id, wrong op shape) before any op in
	// the transaction was applied (spec §4.12).
	CodeInvalidOp Code = "TX-401"
)

// IsValid reports whether c is one of the closed Code values.
func (c Code) IsValid() bool {
	switch c {
	case CodeMissingTimeRoot, CodeMultipleTimeRoots, CodeTimeRootHasInput,
		CodeMissingPrimaryPhase, CodeReservedBusTypeMismatch, CodeIllegalFeedback,
		CodeAmbiguousClockInput, CodeTypeMismatch, CodeMultiWriterForbidden,
		CodeUnknownTransform, CodeAdapterPolicyViolation, CodeUnusedBindingField,
		CodeUnfedInput, CodeMalformedEdge, CodeUnknownBlockType, CodeCombineModeUnsupported,
		CodeLegacyInputNotConstant, CodeInvalidOp:
		return true
	default:
		return false
	}
}

// Severity distinguishes a fatal compile error from a warning that never
// blocks producing a program.
type Severity int

// The closed set of severities.
const (
	SeverityError Severity = iota
	SeverityWarning
)

// sentinelFor returns the one sentinel error each Code wraps, so
// CompileError.Unwrap lets callers branch with errors.Is against a plain
// package-level var the same way every other corepatch package does.
var sentinelFor = map[Code]error{
	CodeMissingTimeRoot:         errors.New("diag: missing time root"),
	CodeMultipleTimeRoots:       errors.New("diag: multiple time roots"),
	CodeTimeRootHasInput:        errors.New("diag: time root has an incoming edge"),
	CodeMissingPrimaryPhase:     errors.New("diag: missing primary phase bus"),
	CodeReservedBusTypeMismatch: errors.New("diag: reserved bus type mismatch"),
	CodeIllegalFeedback:         errors.New("diag: illegal feedback cycle"),
	CodeAmbiguousClockInput:     errors.New("diag: ambiguous clock input"),
	CodeTypeMismatch:            errors.New("diag: type mismatch"),
	CodeMultiWriterForbidden:    errors.New("diag: multiple writers forbidden by combine policy"),
	CodeUnknownTransform:        errors.New("diag: unknown transform id"),
	CodeAdapterPolicyViolation:  errors.New("diag: adapter policy violation"),
	CodeUnusedBindingField:      errors.New("diag: unused binding field"),
	CodeUnfedInput:              errors.New("diag: unfed input"),
	CodeMalformedEdge:           errors.New("diag: malformed edge"),
	CodeUnknownBlockType:        errors.New("diag: unknown block type"),
	CodeCombineModeUnsupported:  errors.New("diag: combine mode unsupported"),
	CodeLegacyInputNotConstant:  errors.New("diag: legacy block input is not a compile-time constant"),
	CodeInvalidOp:               errors.New("diag: invalid transaction op"),
}
