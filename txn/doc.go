// Package txn implements the Transaction / Patch Mutation API (spec
// §4.12): a closed vocabulary of patch edit ops, applied atomically
// through ApplyTx (validate every op against the starting snapshot first,
// apply none if any fails), plus a push-only undo/redo History over
// patch.Patch's already-immutable snapshots.
//
// The shape mirrors the teacher's single-orchestrator,
// validate-then-commit style (compiler.Compile threading one state
// struct through ordered passes, never exposing an intermediate result):
// ApplyTx builds the whole next patch.Patch against a working copy before
// ever returning it, and returns the untouched starting Patch the moment
// any op fails.
package txn
