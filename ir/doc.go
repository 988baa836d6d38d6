// Package ir defines the typed expression intermediate representation the
// compiler (package compiler) lowers a patch into, and that the runtime
// (package runtime) evaluates every frame.
//
// IR is a set of indexed, content-addressed node arrays — not a pointer
// graph — matching the teacher's preference for flat, deterministically
// ordered data (core.Graph.Vertices()/Edges() always return sorted slices,
// never expose raw map iteration). A ValueRef is an opaque, cheap-to-copy
// address into one of three parallel node arrays (signal, field, event)
// plus a shared const pool; equal ValueRefs always denote the same node.
//
// Three IR families mirror the three time-carrying worlds from spec §3:
//
//   - Signal IR: const, param, map, zip, and a closure escape hatch used by
//     the V1↔V2 bridge (see Builder.Closure).
//   - Field IR: broadcast, source, map, zip, zipSignal. Field IR never
//     materializes on its own; a render sink walks a domain and evaluates
//     into a reused typed buffer (package runtime).
//   - Event IR: pulse, div, or, rising.
//
// Kernels (the per-node computation) are plain Go closures over Value; a
// Builder never inspects kernel internals, only threads them through.
// Because closures are not comparable or printable, every kernel-carrying
// signal and field node also carries a KernelLabel string — derived from the transform id that produced it —
// so two compiles of the same patch can be compared structurally even
// though their closures are distinct function values.
package ir
