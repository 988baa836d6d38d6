package runtime

import (
	"fmt"

	"github.com/patchgraph/corepatch/ir"
)

// evalFrame evaluates everything this frame's RenderTree needs: the
// reserved-bus UI bindings plus every host-registered signal/field sink
// (spec §4.8 step 3). If any of them fails, the caller keeps the
// previous frame's RenderTree per spec §7's root-sink-failure rule.
func (e *Evaluator) evalFrame(cache *SigFrameCache, dt float64) (RenderTree, error) {
	tree := RenderTree{
		Frame:   e.frame,
		T:       e.t,
		Signals: make(map[string]ir.Value, len(e.signalSinks)),
		Fields:  make(map[string][]ir.Value, len(e.fieldSinks)),
	}

	ui, err := e.evalUIBindings(cache, dt)
	if err != nil {
		return RenderTree{}, err
	}
	tree.UI = ui

	for name, ref := range e.signalSinks {
		v, err := e.evalBlockSignal(ref.blockID, ref.slotID, cache, dt)
		if err != nil {
			return RenderTree{}, fmt.Errorf("signal sink %q: %w", name, err)
		}
		tree.Signals[name] = v
	}

	for name, ref := range e.fieldSinks {
		buf, err := e.evalBlockField(ref, cache, dt)
		if err != nil {
			return RenderTree{}, fmt.Errorf("field sink %q: %w", name, err)
		}
		tree.Fields[name] = buf
	}

	return tree, nil
}

// evalUIBindings resolves the six reserved-bus values (spec §6); a bus
// left unbound by the patch (empty block id) leaves its UIFrame field at
// its zero value with Bound=false rather than erroring.
func (e *Evaluator) evalUIBindings(cache *SigFrameCache, dt float64) (UIFrame, error) {
	var ui UIFrame

	bindings := e.program.UIBindings

	if bindings.PhaseA != "" {
		v, err := e.evalBusSignal(bindings.PhaseA, cache, dt)
		if err != nil {
			return UIFrame{}, fmt.Errorf("phaseA: %w", err)
		}
		ui.PhaseA, ui.PhaseABound = v, true
	}

	if bindings.PhaseB != "" {
		v, err := e.evalBusSignal(bindings.PhaseB, cache, dt)
		if err != nil {
			return UIFrame{}, fmt.Errorf("phaseB: %w", err)
		}
		ui.PhaseB, ui.PhaseBBound = v, true
	}

	if bindings.Energy != "" {
		v, err := e.evalBusSignal(bindings.Energy, cache, dt)
		if err != nil {
			return UIFrame{}, fmt.Errorf("energy: %w", err)
		}
		ui.Energy, ui.EnergyBound = v, true
	}

	if bindings.Palette != "" {
		v, err := e.evalBusSignal(bindings.Palette, cache, dt)
		if err != nil {
			return UIFrame{}, fmt.Errorf("palette: %w", err)
		}
		ui.Palette, ui.PaletteBound = v, true
	}

	if bindings.Progress != "" {
		v, err := e.evalBusSignal(bindings.Progress, cache, dt)
		if err != nil {
			return UIFrame{}, fmt.Errorf("progress: %w", err)
		}
		ui.Progress, ui.ProgressBound = v, true
	}

	if bindings.Pulse != "" {
		ref, ok := e.program.Outputs[bindings.Pulse]["out"]
		if !ok {
			return UIFrame{}, fmt.Errorf("pulse bus %q has no out output", bindings.Pulse)
		}
		fired, err := e.evalEvent(ref, cache, dt)
		if err != nil {
			return UIFrame{}, fmt.Errorf("pulse: %w", err)
		}
		ui.Pulse, ui.PulseBound = fired, true
	}

	return ui, nil
}

func (e *Evaluator) evalBusSignal(blockID string, cache *SigFrameCache, dt float64) (ir.Value, error) {
	return e.evalBlockSignal(blockID, "out", cache, dt)
}

func (e *Evaluator) evalBlockSignal(blockID, slotID string, cache *SigFrameCache, dt float64) (ir.Value, error) {
	ref, ok := e.program.Outputs[blockID][slotID]
	if !ok {
		return ir.Value{}, fmt.Errorf("block %q has no output %q", blockID, slotID)
	}

	switch ref.Kind {
	case ir.KindScalarConst, ir.KindSig:
		return e.evalSignal(ref, cache, dt)
	case ir.KindEvent:
		fired, err := e.evalEvent(ref, cache, dt)

		return ir.BoolValue(fired), err
	default:
		return ir.Value{}, fmt.Errorf("block %q output %q is not a scalar/signal/event", blockID, slotID)
	}
}

func (e *Evaluator) evalBlockField(ref fieldSinkRef, cache *SigFrameCache, dt float64) ([]ir.Value, error) {
	valRef, ok := e.program.Outputs[ref.blockID][ref.slotID]
	if !ok {
		return nil, fmt.Errorf("block %q has no output %q", ref.blockID, ref.slotID)
	}
	if valRef.Kind != ir.KindFieldExpr {
		return nil, fmt.Errorf("block %q output %q is not a field", ref.blockID, ref.slotID)
	}

	return e.evalField(valRef, cache, dt, ref.elementCount)
}

// evalSignal resolves ref to a Value, memoizing in cache so any other
// consumer of the same node this frame reuses the result instead of
// re-running the kernel (testable property 7).
func (e *Evaluator) evalSignal(ref ir.ValueRef, cache *SigFrameCache, dt float64) (ir.Value, error) {
	if ref.Kind == ir.KindScalarConst {
		v, ok := e.program.IR.ConstAt(ref)
		if !ok {
			return ir.Value{}, fmt.Errorf("dangling const ref %v", ref)
		}

		return v, nil
	}

	if ref.Kind != ir.KindSig {
		return ir.Value{}, fmt.Errorf("%v is not a signal ref", ref)
	}

	if v, ok := cache.signal(ref.ID); ok {
		return v, nil
	}

	node, ok := e.program.IR.SignalNode(ref)
	if !ok {
		return ir.Value{}, fmt.Errorf("dangling signal ref %v", ref)
	}

	var out ir.Value

	switch node.Kind {
	case ir.SigConst:
		if node.ConstID < 0 || node.ConstID >= len(e.program.IR.ConstPool) {
			return ir.Value{}, fmt.Errorf("signal node %d: const id %d out of range", ref.ID, node.ConstID)
		}
		out = e.program.IR.ConstPool[node.ConstID]

	case ir.SigParam:
		out = e.params[node.ParamID]

	case ir.SigMap:
		src, err := e.evalSignal(node.Src, cache, dt)
		if err != nil {
			return ir.Value{}, err
		}
		ctx := e.evalContextFor(ref.ID, node.Kind, dt)
		out = node.Kernel(ctx, []ir.Value{src})
		if out.IsError() {
			e.logger.Warn("signal kernel evaluation error, substituting upstream value", map[string]string{
				"node": node.KernelLabel, "error": out.Str,
			})
			out = src
		}

	case ir.SigZip:
		ins := make([]ir.Value, len(node.Srcs))
		for i, s := range node.Srcs {
			v, err := e.evalSignal(s, cache, dt)
			if err != nil {
				return ir.Value{}, err
			}
			ins[i] = v
		}
		ctx := e.evalContextFor(ref.ID, node.Kind, dt)
		out = node.Kernel(ctx, ins)
		if out.IsError() {
			e.logger.Warn("combine kernel evaluation error, substituting zero value", map[string]string{
				"node": node.KernelLabel, "error": out.Str,
			})
			out = ir.Value{}
		}

	case ir.SigClosure:
		ctx := e.evalContextFor(ref.ID, node.Kind, dt)
		out = node.Closure(ctx)
		if out.IsError() {
			e.logger.Warn("closure evaluation error, substituting zero value", map[string]string{
				"error": out.Str,
			})
			out = ir.Value{}
		}

	default:
		return ir.Value{}, fmt.Errorf("signal node %d: unknown kind %d", ref.ID, node.Kind)
	}

	cache.setSignal(ref.ID, out)

	return out, nil
}

// evalField resolves ref to a per-element buffer. fallbackCount is used
// only for a Broadcast node with no FieldSource in its own upstream
// chain to derive an element count from.
func (e *Evaluator) evalField(ref ir.ValueRef, cache *SigFrameCache, dt float64, fallbackCount int) ([]ir.Value, error) {
	if ref.Kind != ir.KindFieldExpr {
		return nil, fmt.Errorf("%v is not a field ref", ref)
	}

	if buf, ok := cache.field(ref.ID); ok {
		return buf, nil
	}

	node, ok := e.program.IR.FieldNodeAt(ref)
	if !ok {
		return nil, fmt.Errorf("dangling field ref %v", ref)
	}

	var out []ir.Value

	switch node.Kind {
	case ir.FieldBroadcast:
		sig, err := e.evalSignal(node.SignalSrc, cache, dt)
		if err != nil {
			return nil, err
		}
		count := fallbackCount
		if count <= 0 {
			return nil, fmt.Errorf("field node %d: broadcast has no derivable element count", ref.ID)
		}
		out = make([]ir.Value, count)
		for i := range out {
			out[i] = sig
		}

	case ir.FieldSource:
		count := node.Domain.ElementCount
		out = make([]ir.Value, count)

	case ir.FieldMap:
		src, err := e.evalField(node.FieldSrc, cache, dt, fallbackCount)
		if err != nil {
			return nil, err
		}
		out = make([]ir.Value, len(src))
		for i, v := range src {
			ctx := e.elementContext(dt, i, len(src))
			out[i] = node.Kernel(ctx, []ir.Value{v})
		}

	case ir.FieldZip:
		if len(node.FieldSrcs) == 0 {
			out = nil

			break
		}
		srcs := make([][]ir.Value, len(node.FieldSrcs))
		for i, s := range node.FieldSrcs {
			v, err := e.evalField(s, cache, dt, fallbackCount)
			if err != nil {
				return nil, err
			}
			srcs[i] = v
		}
		count := len(srcs[0])
		out = make([]ir.Value, count)
		for i := 0; i < count; i++ {
			ins := make([]ir.Value, len(srcs))
			for j := range srcs {
				ins[j] = srcs[j][i]
			}
			ctx := e.elementContext(dt, i, count)
			out[i] = node.Kernel(ctx, ins)
		}

	case ir.FieldZipSignal:
		field, err := e.evalField(node.FieldSrc, cache, dt, fallbackCount)
		if err != nil {
			return nil, err
		}
		sig, err := e.evalSignal(node.SignalSrc, cache, dt)
		if err != nil {
			return nil, err
		}
		out = make([]ir.Value, len(field))
		for i, v := range field {
			ctx := e.elementContext(dt, i, len(field))
			out[i] = node.Kernel(ctx, []ir.Value{v, sig})
		}

	default:
		return nil, fmt.Errorf("field node %d: unknown kind %d", ref.ID, node.Kind)
	}

	cache.setField(ref.ID, out)

	return out, nil
}

// evalEvent resolves ref to whether it fired this frame.
func (e *Evaluator) evalEvent(ref ir.ValueRef, cache *SigFrameCache, dt float64) (bool, error) {
	if ref.Kind != ir.KindEvent {
		return false, fmt.Errorf("%v is not an event ref", ref)
	}

	if v, ok := cache.event(ref.ID); ok {
		return v, nil
	}

	node, ok := e.program.IR.EventNodeAt(ref)
	if !ok {
		return false, fmt.Errorf("dangling event ref %v", ref)
	}

	var fired bool

	switch node.Kind {
	case ir.EventPulse, ir.EventDiv:
		curr, err := e.evalSignal(node.Source, cache, dt)
		if err != nil {
			return false, err
		}
		wrapped := e.signalWrapped(node.Source, curr)
		if node.Kind == ir.EventPulse {
			fired = wrapped
		} else {
			if wrapped {
				e.eventOccur[ref.ID]++
			}
			divisor := node.Divisor
			if divisor <= 0 {
				divisor = 1
			}
			fired = wrapped && e.eventOccur[ref.ID]%divisor == 0
		}

	case ir.EventOr:
		for _, s := range node.SourceIDs {
			v, err := e.evalEvent(s, cache, dt)
			if err != nil {
				return false, err
			}
			if v {
				fired = true
			}
		}

	case ir.EventRising:
		curr, err := e.evalSignal(node.Source, cache, dt)
		if err != nil {
			return false, err
		}
		prev, had := e.prevSignal[node.Source.ID]
		fired = truthy(curr) && !(had && truthy(prev))

	default:
		return false, fmt.Errorf("event node %d: unknown kind %d", ref.ID, node.Kind)
	}

	cache.setEvent(ref.ID, fired)

	return fired, nil
}

// signalWrapped reports whether the Signal node addressed by src
// decreased from last frame to curr, the wrap signature a cyclic phase
// exhibits once per period.
func (e *Evaluator) signalWrapped(src ir.ValueRef, curr ir.Value) bool {
	if src.Kind != ir.KindSig {
		return false
	}
	prev, had := e.prevSignal[src.ID]
	if !had {
		return false
	}

	return curr.AsNumber() < prev.AsNumber()
}

func truthy(v ir.Value) bool {
	if v.Kind == ir.KBool {
		return v.Bool
	}

	return v.AsNumber() > 0
}

// evalContextFor builds the EvalContext a Signal node's kernel/closure
// receives, binding State to a StateAccessor addressed by the node's
// owning block (spec §4.8's StateKey(blockId, internalKey)) so the slot
// survives a recompile as long as the block id and output slot are
// unchanged.
func (e *Evaluator) evalContextFor(signalNodeID int, kind ir.SignalNodeKind, dt float64) *ir.EvalContext {
	key := e.stateKeyFor(signalNodeID)

	return &ir.EvalContext{
		T:     e.t,
		Dt:    dt,
		Frame: e.frame,
		State: e.state.Accessor(key, kind),
	}
}

func (e *Evaluator) elementContext(dt float64, index, count int) *ir.EvalContext {
	return &ir.EvalContext{
		T:            e.t,
		Dt:           dt,
		Frame:        e.frame,
		ElementIndex: index,
		ElementCount: count,
	}
}

func (e *Evaluator) stateKeyFor(signalNodeID int) StateKey {
	owner, ok := e.owner[signalNodeID]
	if !ok {
		return StateKey{BlockKey: fmt.Sprintf("__node__%d", signalNodeID)}
	}

	blockKey := owner.blockID
	if k, ok := e.program.StateKeys[owner.blockID]; ok {
		blockKey = k
	}

	return StateKey{BlockKey: blockKey, InternalKey: owner.slotID}
}
