// Package hotswap implements the Hot-Swap Scheduler component (spec
// §4.9): classifying a patch edit into Class A/B/C, compiling the new
// patch in the background while the old program keeps rendering, and
// atomically swapping the active compiler.CompiledProgram (plus a
// StateKey-migrated runtime.StateStore) in for it at the chosen frame
// boundary.
//
// The two-phase shape mirrors the teacher's single-orchestrator,
// sequential-apply-then-atomic-commit style (compiler.Compile threading
// one state struct through ordered passes before ever touching the
// caller-visible result): a Scheduler threads one pendingSwap through
// Classify -> background compile -> boundary check -> Commit, and no
// intermediate state is ever visible to Step's caller.
package hotswap
