package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patchgraph/corepatch/ir"
	"github.com/patchgraph/corepatch/typesystem"
)

func validOutput(id string) OutputSlot {
	return OutputSlot{ID: id, Type: typesystem.TypeDesc{World: typesystem.Scalar, Domain: typesystem.DomainFloat, Category: typesystem.Core}}
}

func TestRegisterRejectsEmptyType(t *testing.T) {
	err := NewRegistry().Register(BlockDef{})
	assert.ErrorIs(t, err, ErrEmptyBlockType)
}

func TestRegisterRejectsDuplicateType(t *testing.T) {
	r := NewRegistry()
	d := BlockDef{Type: "X", Outputs: []OutputSlot{validOutput("out")}, CompileV2: func(CompileArgsV2) (map[string]ir.ValueRef, error) { return nil, nil }}
	require.NoError(t, r.Register(d))

	err := r.Register(d)
	assert.ErrorIs(t, err, ErrDuplicateBlockType)
}

func TestRegisterRejectsNilCompile(t *testing.T) {
	err := NewRegistry().Register(BlockDef{Type: "X"})
	assert.ErrorIs(t, err, ErrNilCompile)
}

func TestRegisterRejectsBothCompileFuncs(t *testing.T) {
	d := BlockDef{
		Type:      "X",
		Compile:   func(CompileArgs) (map[string]ir.Artifact, error) { return nil, nil },
		CompileV2: func(CompileArgsV2) (map[string]ir.ValueRef, error) { return nil, nil },
	}
	err := NewRegistry().Register(d)
	assert.ErrorIs(t, err, ErrBothCompileFuncs)
}

func TestRegisterRejectsDuplicateSlotID(t *testing.T) {
	d := BlockDef{
		Type:      "X",
		Outputs:   []OutputSlot{validOutput("out"), validOutput("out")},
		CompileV2: func(CompileArgsV2) (map[string]ir.ValueRef, error) { return nil, nil },
	}
	err := NewRegistry().Register(d)
	assert.ErrorIs(t, err, ErrDuplicateSlotID)
}

func TestRegisterRejectsInvalidSlotType(t *testing.T) {
	d := BlockDef{
		Type:      "X",
		Outputs:   []OutputSlot{{ID: "out"}},
		CompileV2: func(CompileArgsV2) (map[string]ir.ValueRef, error) { return nil, nil },
	}
	err := NewRegistry().Register(d)
	assert.ErrorIs(t, err, ErrInvalidSlotType)
}

func TestRegisterRejectsInvalidCombinePolicy(t *testing.T) {
	d := BlockDef{
		Type: "X",
		Inputs: []InputSlot{{
			ID:      "in",
			Type:    typesystem.TypeDesc{World: typesystem.Signal, Domain: typesystem.DomainFloat, Category: typesystem.Core},
			Combine: CombinePolicy{When: CombineWhen(99), Mode: ModeLatest},
		}},
		CompileV2: func(CompileArgsV2) (map[string]ir.ValueRef, error) { return nil, nil },
	}
	err := NewRegistry().Register(d)
	assert.ErrorIs(t, err, ErrInvalidCombinePolicy)
}

func TestGetUnknownType(t *testing.T) {
	_, err := NewRegistry().Get("ghost")
	assert.ErrorIs(t, err, ErrUnknownBlockType)
}

func TestListSortedByType(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterSystemBlocks(r))

	defs := r.List()
	require.Len(t, defs, 10)
	for i := 1; i < len(defs); i++ {
		assert.Less(t, defs[i-1].Type, defs[i].Type)
	}
}

func TestByRoleTimeRootHasExactlyThree(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterSystemBlocks(r))

	roots := r.ByRole(RoleTimeRoot)
	assert.Len(t, roots, 3)
}
