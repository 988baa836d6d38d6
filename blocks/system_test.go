package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patchgraph/corepatch/ir"
	"github.com/patchgraph/corepatch/typesystem"
)

// fakeState is a minimal ir.StateAccessor backed by a single slot, enough
// to drive a stateful kernel (Osc's phase integrator) across several
// frames in a test without a full StateStore.
type fakeState struct {
	v  ir.Value
	ok bool
}

func (f *fakeState) Get() (ir.Value, bool) { return f.v, f.ok }
func (f *fakeState) Set(v ir.Value)        { f.v = v; f.ok = true }

func TestConstCompileV2(t *testing.T) {
	b := ir.NewBuilder()
	out, err := constCompileV2(CompileArgsV2{Params: map[string]ir.Value{"value": ir.Number(5)}, Builder: b})
	require.NoError(t, err)

	ref := out["out"]
	assert.Equal(t, ir.KindScalarConst, ref.Kind)
}

func TestOscPhaseKernelIntegratesAndWraps(t *testing.T) {
	state := &fakeState{}
	ctx := &ir.EvalContext{Dt: 0.25, State: state}

	v1 := oscPhaseKernel(ctx, []ir.Value{ir.Number(1)}) // freq=1Hz, dt=0.25 -> phase 0.25
	assert.InDelta(t, 0.25, v1.AsNumber(), 1e-9)

	v2 := oscPhaseKernel(ctx, []ir.Value{ir.Number(1)})
	assert.InDelta(t, 0.5, v2.AsNumber(), 1e-9)

	// two more quarter-steps reach 1.0, which wraps back around to 0
	oscPhaseKernel(ctx, []ir.Value{ir.Number(1)})
	v4 := oscPhaseKernel(ctx, []ir.Value{ir.Number(1)})
	assert.InDelta(t, 0.0, v4.AsNumber(), 1e-9)
}

func TestOscValueKernelIsSinOfPhase(t *testing.T) {
	v := oscValueKernel(nil, []ir.Value{ir.Number(0.25)})
	assert.InDelta(t, 1.0, v.AsNumber(), 1e-9)
}

func TestOscCompileV2RequiresFrequencyInput(t *testing.T) {
	_, err := oscCompileV2(CompileArgsV2{Builder: ir.NewBuilder(), Inputs: map[string]ir.ValueRef{}})
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestFiniteTimeRootProgressClampsToUnit(t *testing.T) {
	artifacts, err := finiteTimeRootCompile(CompileArgs{Params: map[string]ir.Value{"durationMs": ir.Number(1000)}})
	require.NoError(t, err)

	progress := artifacts["progress"]
	require.True(t, progress.IsClosure())

	at500ms := progress.Closure(&ir.EvalContext{T: 0.5})
	assert.InDelta(t, 0.5, at500ms.AsNumber(), 1e-9)

	past := progress.Closure(&ir.EvalContext{T: 5})
	assert.Equal(t, 1.0, past.AsNumber())
}

func TestCyclePhaseLoopAndPingpong(t *testing.T) {
	assert.InDelta(t, 0.25, cyclePhase(0.25, 1000, "loop"), 1e-9)
	assert.InDelta(t, 0.25, cyclePhase(1.25, 1000, "loop"), 1e-9)

	// pingpong at 0.25 of the period is still rising: 0.25*2 = 0.5
	assert.InDelta(t, 0.5, cyclePhase(0.25, 1000, "pingpong"), 1e-9)
	// at 0.75 of the period pingpong has folded back: 2 - 0.75*2 = 0.5
	assert.InDelta(t, 0.5, cyclePhase(0.75, 1000, "pingpong"), 1e-9)
}

func TestCycleTimeRootCompileV2AllocatesPhaseAndWrap(t *testing.T) {
	b := ir.NewBuilder()
	out, err := cycleTimeRootCompileV2(CompileArgsV2{Params: map[string]ir.Value{"periodMs": ir.Number(1000), "mode": ir.StringValue("loop")}, Builder: b})
	require.NoError(t, err)

	assert.Equal(t, ir.KindSig, out["phase"].Kind)
	assert.Equal(t, ir.KindEvent, out["wrap"].Kind)
}

func TestBusBlockCompileV2AliasesOutToIn(t *testing.T) {
	in := ir.ValueRef{Kind: ir.KindSig, ID: 3}
	out, err := busBlockCompileV2(CompileArgsV2{Inputs: map[string]ir.ValueRef{"in": in}})
	require.NoError(t, err)
	assert.Equal(t, in, out["out"])
}

func TestBusBlockCompileV2RequiresInput(t *testing.T) {
	_, err := busBlockCompileV2(CompileArgsV2{Inputs: map[string]ir.ValueRef{}})
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestNewBusBlockDefShape(t *testing.T) {
	t2 := typesystem.TypeDesc{World: typesystem.Signal, Domain: typesystem.DomainFloat, Category: typesystem.Core, BusEligible: true}
	d := NewBusBlockDef(t2, CombinePolicy{When: WhenAlways, Mode: ModeSum}, ir.Number(0))

	assert.Equal(t, BusBlockType, d.Type)
	assert.True(t, d.Hidden)
	require.Len(t, d.Inputs, 1)
	require.Len(t, d.Outputs, 1)
	assert.Equal(t, t2, d.Inputs[0].Type)
	assert.Equal(t, t2, d.Outputs[0].Type)
}

func TestDefaultSourceProviderFor(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterSystemBlocks(r))

	d, err := DefaultSourceProviderFor(r, typesystem.Signal, typesystem.DomainFloat)
	require.NoError(t, err)
	assert.Equal(t, "DSConstSignalFloat", d.Type)

	_, err = DefaultSourceProviderFor(r, typesystem.Field, typesystem.DomainWaveform)
	assert.ErrorIs(t, err, ErrNoDefaultSourceProvider)
}
