// Package corepatch is the compiler and runtime core of a live,
// deterministic visual-patching environment: a patch graph of blocks and
// wires compiles down to a linked Signal/Field/Event IR, which a runtime
// evaluator steps frame by frame to drive a render tree and a reserved
// set of UI buses.
//
// The pipeline, start to finish:
//
//	patch/      — the immutable patch graph: blocks, edges, transforms
//	blocks/     — the block type registry and system block catalog
//	typesystem/ — the Signal/Field/Event type algebra blocks are checked against
//	transform/  — the lens/adapter registry feeding edges' transform chains
//	pathfinder/ — deterministic adapter-path search between mismatched types
//	timemodel/  — the patch's single derived time model and reserved UI buses
//	compiler/   — the ten-pass pipeline from patch to compiled program
//	ir/         — the linked Signal/Field/Event node graph the compiler emits
//	runtime/    — the frame evaluator, state store, and render tree
//	hotswap/    — classifying and committing a live patch edit without a reset
//	txn/        — the atomic patch-mutation API and undo/redo history
//	diag/       — the structured diagnostics every pass and op can raise
//
// core/, dfs/, and dijkstra/ beneath this are the generic graph primitives
// the compiler's cycle/schedule pass and the pathfinder's unconstrained
// adapter-distance search build on; nothing else in this module reaches
// into them directly.
package corepatch
