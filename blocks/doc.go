// Package blocks implements the Block Registry (spec §4.5): BlockDef
// declares a stable type name, ordered input/output slot signatures, a
// compile function, and optional hidden/role tags. Registry.Register
// validates early and never panics, matching builder.BuildGraph's
// validate-once, sentinel-errors-only contract (grounded on
// builder/api.go's single-orchestrator shape).
//
// The required system blocks — the TimeRoot variants and the
// DefaultSourceProvider family — are registered by RegisterSystemBlocks,
// mirroring transform.RegisterBuiltins's single call that seeds a fresh
// Registry with the canonical catalog. BusBlock is not registered: the
// compiler builds its BlockDef per instance via NewBusBlockDef. Two small non-hidden archetypes,
// Const and Osc, are registered the same way so the pipeline has
// something to compile end to end in tests without inventing ad hoc
// fixtures (spec's own S1 scenario names these two blocks).
package blocks
