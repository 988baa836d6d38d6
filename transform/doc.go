// Package transform is the single registry of lenses (type-preserving,
// pure, parameterized) and adapters (type-converting, pure, policy+cost
// tagged) that mediate type mismatches on a patch edge (spec §4.2).
//
// Every entry is keyed by a stable transformId and carries two functions:
// Apply, a pure value-level transform used outside IR compilation (const
// folding, testing), and CompileToIR, which lowers the same transform into
// an ir.Builder node. Registration is validate-early/never-panic, the same
// contract builder.BuildGraph enforces on its Constructor values: a lens
// that would change its value's world/domain/category, a duplicate
// transform id, or an adapter missing a policy are all registry errors
// returned from Register, never a panic and never a silent skip.
package transform
