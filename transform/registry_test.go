package transform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patchgraph/corepatch/ir"
	"github.com/patchgraph/corepatch/typesystem"
)

func TestRegisterBuiltinsAll(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterBuiltins(r))

	all := r.List()
	assert.Len(t, all, 19+8)

	// List is sorted by id.
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(gainEntry()))

	err := r.Register(gainEntry())
	assert.ErrorIs(t, err, ErrDuplicateTransformID)
}

func TestRegisterRejectsLensTypeChange(t *testing.T) {
	r := NewRegistry()
	bad := gainEntry()
	bad.ID = "badLens"
	bad.OutputType = signalPhase()

	err := r.Register(bad)
	assert.ErrorIs(t, err, ErrLensChangesType)
}

func TestRegisterRejectsAdapterMissingPolicy(t *testing.T) {
	r := NewRegistry()
	bad := constToSignalEntry()
	bad.ID = "badAdapter"
	bad.Policy = Policy(99)

	err := r.Register(bad)
	assert.ErrorIs(t, err, ErrAdapterMissingPolicy)
}

func TestGetUnknownTransform(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownTransform)
}

func TestAdaptersFromSortedAndFiltered(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterBuiltins(r))

	from := typesystem.TypeDesc{World: typesystem.Signal, Domain: typesystem.DomainFloat, Category: typesystem.Core}
	got := r.AdaptersFrom(from)
	require.NotEmpty(t, got)
	for _, e := range got {
		assert.Equal(t, Adapter, e.Kind)
		assert.True(t, typesystem.Equal(e.InputType, from))
	}
}

func TestGainApply(t *testing.T) {
	e := gainEntry()
	out, err := e.Apply(ir.Number(2), map[string]ir.Value{"amount": ir.Number(3)}, ApplyContext{})
	require.NoError(t, err)
	assert.Equal(t, 6.0, out.AsNumber())
}

func TestClampApply(t *testing.T) {
	e := clampEntry()
	out, err := e.Apply(ir.Number(5), map[string]ir.Value{"min": ir.Number(-1), "max": ir.Number(1)}, ApplyContext{})
	require.NoError(t, err)
	assert.Equal(t, 1.0, out.AsNumber())
}

func TestReduceFieldToSignalRequiresMode(t *testing.T) {
	e := reduceFieldToSignalEntry()
	_, err := e.Apply(ir.Value{}, map[string]ir.Value{}, ApplyContext{})
	assert.ErrorIs(t, err, ErrReductionModeRequired)

	_, err = e.Apply(ir.Value{}, map[string]ir.Value{"mode": ir.StringValue("bogus")}, ApplyContext{})
	assert.ErrorIs(t, err, ErrReductionModeRequired)
}

func TestReductionModeIsValid(t *testing.T) {
	assert.True(t, ReduceMean.IsValid())
	assert.True(t, ReduceSum.IsValid())
	assert.True(t, ReduceMin.IsValid())
	assert.True(t, ReduceMax.IsValid())
	assert.False(t, ReductionMode("bogus").IsValid())
}

func TestReduceFieldToSignalCompileRequiresModeRef(t *testing.T) {
	e := reduceFieldToSignalEntry()
	b := ir.NewBuilder()
	_, err := e.CompileToIR(ir.ValueRef{}, map[string]ir.ValueRef{}, b, CompileContext{TransformID: "r1"})
	assert.True(t, errors.Is(err, ErrReductionModeRequired))
}

func TestHueShiftWrapsAround(t *testing.T) {
	e := hueShiftEntry()
	red := ir.ColorValue(1, 0, 0, 1)
	out, err := e.Apply(red, map[string]ir.Value{"turns": ir.Number(1)}, ApplyContext{})
	require.NoError(t, err)
	assert.InDelta(t, red.Color[0], out.Color[0], 1e-6)
	assert.InDelta(t, red.Color[1], out.Color[1], 1e-6)
	assert.InDelta(t, red.Color[2], out.Color[2], 1e-6)
}

func TestPhaseOffsetWraps(t *testing.T) {
	e := phaseOffsetEntry()
	out, err := e.Apply(ir.Number(0.9), map[string]ir.Value{"offset": ir.Number(0.2)}, ApplyContext{})
	require.NoError(t, err)
	assert.InDelta(t, 0.1, out.AsNumber(), 1e-9)
}

func TestCompileToIRAllocatesNode(t *testing.T) {
	e := gainEntry()
	b := ir.NewBuilder()
	input := b.Const(ir.Number(1))
	amount := b.Const(ir.Number(2))

	ref, err := e.CompileToIR(input, map[string]ir.ValueRef{"amount": amount}, b, CompileContext{TransformID: "gain#1"})
	require.NoError(t, err)
	assert.Equal(t, ir.KindSig, ref.Kind)
	assert.Equal(t, 1, b.NodeCount())
}
