// Package runtime implements the Evaluator / Runtime component (spec
// §4.8): a single-threaded, cooperative per-frame scheduler that walks a
// compiler.CompiledProgram's schedule, evaluates its IR with at-most-once
// semantics via SigFrameCache, and produces a RenderTree for the host.
//
// The evaluation model mirrors the teacher's traversal-state shape — dfs's
// tri-color visited/in-progress/done bookkeeping becomes SigFrameCache's
// per-frame memo table, reset once per Step the same way a fresh DFS run
// starts from an empty color map. Persistent cross-frame state lives in a
// StateStore guarded the way core.Graph guards its adjacency maps: a
// single mutex, never touched by the compiler, mutated only by the
// evaluator during its own frame tick (spec §5's shared-resource policy).
package runtime
