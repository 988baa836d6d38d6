package blocks

import (
	"github.com/patchgraph/corepatch/ir"
	"github.com/patchgraph/corepatch/typesystem"
)

// BusBlockType is the fixed BlockDef.Type the compiler recognizes a
// bus-as-block instance by (spec §3 "Bus-as-Block").
const BusBlockType = "BusBlock"

// RoleBus marks a BlockDef produced by NewBusBlockDef.
const RoleBus = "Bus"

// NewBusBlockDef builds the BlockDef for one BusBlock instance carrying
// type t with the given combine policy and default value. Unlike every
// other system block, BusBlock is never registered into a Registry: its
// slot type varies per instance (one BusBlock per reserved or
// user-declared bus, each potentially carrying a different bus-eligible
// type), so the compiler calls this constructor directly once per
// BusBlock instance it encounters in the patch, rather than looking a
// fixed type up by name.
//
// Per the resolved Open Question on BusBlock output nodes (SPEC_FULL.md
// "Resolved Open Questions" #3), "out" is a pass-through alias of the
// combine node already produced for "in": CompileV2 never allocates a
// second node, it echoes back the ValueRef the compiler's writer
// resolution pass (Pass 5) already built for "in".
func NewBusBlockDef(t typesystem.TypeDesc, combine CombinePolicy, defaultValue ir.Value) BlockDef {
	return BlockDef{
		Type:      BusBlockType,
		Inputs:    []InputSlot{{ID: "in", Type: t, Combine: combine}},
		Outputs:   []OutputSlot{{ID: "out", Type: t}},
		CompileV2: busBlockCompileV2,
		Hidden:    true,
		Role:      RoleBus,
	}
}

// busBlockCompileV2 aliases "out" to the already-resolved "in" ValueRef;
// a BusBlock never allocates its own node (see NewBusBlockDef's doc).
func busBlockCompileV2(args CompileArgsV2) (map[string]ir.ValueRef, error) {
	in, ok := args.Inputs["in"]
	if !ok {
		return nil, ErrMissingInput
	}

	return map[string]ir.ValueRef{"out": in}, nil
}
