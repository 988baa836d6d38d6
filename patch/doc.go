// Package patch implements the immutable patch graph value: an ordered
// set of Block instances and an ordered set of Edges between block slots
// (spec §3/§4.4). A Patch is a plain value — every mutator (AddBlock,
// RemoveBlock, AddEdge, RemoveEdge, SetParam, SetTransforms) returns a new
// Patch rather than mutating the receiver, the same copy-on-write
// discipline core.Graph.Clone()/CloneEmpty() use for the teacher's mutable
// graph, adapted here to a value type that never needs an explicit Clone
// because every mutation already produces one.
//
// Patch only enforces the structural invariants it can check without a
// block registry or type system: block/edge id uniqueness, edge endpoint
// existence, and no duplicate (from, to) edge pairs. Slot existence and
// type connectability (spec §4.4's "slot types are connectable after
// transforms/adapters") require the block registry and transform registry
// and are layered on top by package txn's ApplyTx, which validates a
// whole operation against a snapshot before ever calling into patch.
package patch
