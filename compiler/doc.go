// Package compiler turns a patch.Patch into a CompiledProgram: a fully
// linked, immutable IR graph plus the schedule order and metadata the
// runtime needs to evaluate it every frame (spec §4.6).
//
// Compile is the single exported entry point, grounded on the same
// single-orchestrator, sequential-pass shape the teacher's builder
// package uses for BuildGraph: one function drives a fixed sequence of
// private pass functions over a shared, package-private state, wrapping
// every externally visible result at the boundary rather than leaking
// partial state from an aborted pass.
//
// The ten passes spec §4.6 names are implemented as:
//
//	Pass 0  pass0MaterializeDefaults    — synthesize hidden default-source blocks
//	Pass 1  pass1Normalize              — drop disabled edges, validate endpoints
//	Pass 2  pass2Types                  — walk edges, check lenses, auto-insert adapters
//	Pass 3  (timemodel package)         — locate the TimeRoot, bind reserved buses
//	Pass 4  pass4CanonicalizeAndSchedule — build the block dependency graph, reject
//	                                      illegal feedback, compute the schedule
//	Pass 5  resolveWriters              — combine multi-writer inputs per policy
//	Pass 6  lowerBlock                  — invoke each block's compile function
//	Pass 7  (bus sanity)                — folded into lowerBusBlock: a BusBlock
//	                                      never allocates its own node
//	Pass 8  resolveTransformParams      — resolve lens/adapter param bindings
//	Pass 9  pass9Finalize               — freeze the Builder into a CompiledProgram
//
// Passes 5 to 8 are driven by pass5to8Lower.
//
// Passes 5, 6, 7 and 8 are fused into one walk over the Pass 4 schedule
// order rather than four separate whole-patch traversals: resolving an
// input's writers, lowering the block that consumes them, and resolving
// that lowering's own transform param bindings all need the same
// already-lowered upstream ValueRefs, so doing them one block at a time
// in dependency order is both simpler and avoids re-deriving the
// dependency graph a second time.
package compiler
