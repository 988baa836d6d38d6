package runtime

import (
	"fmt"
	"sort"

	"github.com/patchgraph/corepatch/compiler"
	"github.com/patchgraph/corepatch/ir"
)

// Option configures an Evaluator at construction, the same functional-
// options shape every corepatch package uses (compiler.Option,
// blocks.Registry's registration helpers' sibling convention).
type Option func(*Evaluator)

// WithLogger supplies the sink for non-fatal evaluation diagnostics.
func WithLogger(l Logger) Option {
	return func(e *Evaluator) { e.logger = l }
}

// WithStateStore seeds the evaluator with an existing StateStore, the
// hook the hot-swap scheduler uses to hand a freshly migrated store to
// the evaluator running the new program.
func WithStateStore(s *StateStore) Option {
	return func(e *Evaluator) { e.state = s }
}

// WithSpeed sets the initial time-scale factor applied to every Step's
// dt (spec §4.8 "Time scaling: dt *= speed"). Default 1.
func WithSpeed(speed float64) Option {
	return func(e *Evaluator) { e.speed = speed }
}

// WithObservedSignal registers a named render-sink output: every Step,
// RenderTree.Signals[name] is set to the current value of (blockID,
// slotID)'s output signal.
func WithObservedSignal(name, blockID, slotID string) Option {
	return func(e *Evaluator) {
		e.signalSinks[name] = sinkRef{blockID: blockID, slotID: slotID}
	}
}

// WithObservedField registers a named render-sink output over a Field
// output whose element count cannot be derived from a FieldSource node
// in its own upstream chain (a bare Broadcast, say); elementCount sizes
// the reused buffer RenderTree.Fields[name] holds.
func WithObservedField(name, blockID, slotID string, elementCount int) Option {
	return func(e *Evaluator) {
		e.fieldSinks[name] = fieldSinkRef{sinkRef: sinkRef{blockID: blockID, slotID: slotID}, elementCount: elementCount}
	}
}

// WithParam binds a named host parameter a SigParam node resolves by id
// (ir.Builder.Param). Unset parameters evaluate to the Value zero value.
func WithParam(id string, v ir.Value) Option {
	return func(e *Evaluator) { e.params[id] = v }
}

type sinkRef struct {
	blockID, slotID string
}

type fieldSinkRef struct {
	sinkRef
	elementCount int
}

// Evaluator is the single-threaded, cooperative per-frame scheduler spec
// §4.8 describes. It owns exactly one compiler.CompiledProgram and one
// StateStore; a hot-swap builds a brand new Evaluator bound to the new
// program and the migrated StateStore, then atomically swaps it in for
// the old one — it never mutates an existing Evaluator in place.
type Evaluator struct {
	program *compiler.CompiledProgram
	state   *StateStore
	logger  Logger
	speed   float64

	frozen bool
	t      float64
	frame  uint64

	signalSinks map[string]sinkRef
	fieldSinks  map[string]fieldSinkRef

	// owner maps a Signal node id to the block/slot that publishes it,
	// built once per program so stateful kernels address a StateKey
	// derived from the owning block rather than a raw node index (which
	// is not stable across a recompile).
	owner map[int]sinkRef

	// prevSignal holds last frame's value for every Signal node that
	// some Event node depends on (Pulse/Rising need a derivative), an
	// evaluator-internal bookkeeping detail distinct from StateStore:
	// it is never migrated across a hot-swap, since it addresses this
	// program's own node ids, not a cross-compile-stable StateKey.
	prevSignal map[int]ir.Value

	// eventOccur counts EventDiv wrap occurrences per event node id, so a
	// divisor > 1 can fire once every N occurrences rather than every one.
	eventOccur map[int]int

	// params holds host-bound values for SigParam nodes, set via
	// WithParam.
	params map[string]ir.Value

	lastRender RenderTree
	lastCache  *SigFrameCache
}

// NewEvaluator constructs an Evaluator bound to program, ready to Step
// from t=0. Pass WithStateStore to resume from an existing store (hot-
// swap); otherwise a fresh, empty StateStore is allocated.
func NewEvaluator(program *compiler.CompiledProgram, opts ...Option) *Evaluator {
	e := &Evaluator{
		program:     program,
		logger:      noopLogger{},
		speed:       1,
		signalSinks: make(map[string]sinkRef),
		fieldSinks:  make(map[string]fieldSinkRef),
		prevSignal:  make(map[int]ir.Value),
		eventOccur:  make(map[int]int),
		params:      make(map[string]ir.Value),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.state == nil {
		e.state = NewStateStore()
	}

	e.owner = buildOwnerIndex(program)

	return e
}

// buildOwnerIndex inverts CompiledProgram.Outputs (blockID -> slotID ->
// ValueRef) into (Signal node id -> owning block/slot), so a stateful
// kernel's StateKey can be derived from the block that publishes it.
// Iteration is deterministic (sorted block then slot ids) so that, in the
// rare case two slots alias the same node, the owner chosen is stable
// across identical compiles (testable property 1).
func buildOwnerIndex(program *compiler.CompiledProgram) map[int]sinkRef {
	out := make(map[int]sinkRef)
	if program == nil {
		return out
	}

	blockIDs := make([]string, 0, len(program.Outputs))
	for id := range program.Outputs {
		blockIDs = append(blockIDs, id)
	}
	sort.Strings(blockIDs)

	for _, blockID := range blockIDs {
		slots := program.Outputs[blockID]
		slotIDs := make([]string, 0, len(slots))
		for id := range slots {
			slotIDs = append(slotIDs, id)
		}
		sort.Strings(slotIDs)

		for _, slotID := range slotIDs {
			ref := slots[slotID]
			if ref.Kind != ir.KindSig {
				continue
			}
			if _, taken := out[ref.ID]; taken {
				continue
			}
			out[ref.ID] = sinkRef{blockID: blockID, slotID: slotID}
		}
	}

	return out
}

// Freeze stops advancing t; Step keeps returning the last computed
// RenderTree untouched until Run is called (spec §4.8 / §5: "freeze stops
// advancing t but preserves state; run resumes").
func (e *Evaluator) Freeze() { e.frozen = true }

// Run resumes advancing t after a Freeze.
func (e *Evaluator) Run() { e.frozen = false }

// Frozen reports whether the evaluator is currently frozen.
func (e *Evaluator) Frozen() bool { return e.frozen }

// T returns the evaluator's current host-clock sample.
func (e *Evaluator) T() float64 { return e.t }

// Frame returns the number of frames evaluated so far.
func (e *Evaluator) Frame() uint64 { return e.frame }

// State returns the evaluator's StateStore, for a hot-swap to read a
// snapshot from before constructing the new program's migrated store.
func (e *Evaluator) State() *StateStore { return e.state }

// Step advances the evaluator by dt seconds (already unscaled by the
// host clock; Step applies the speed factor) and returns the frame's
// RenderTree. If frozen, t does not advance and the previous RenderTree
// is returned unchanged. If the root sink (any registered signal/field
// sink) fails to evaluate, the previous frame's RenderTree is kept per
// spec §7.
func (e *Evaluator) Step(dt float64) RenderTree {
	if e.frozen {
		return e.lastRender
	}

	dt *= e.speed
	e.t += dt
	e.frame++

	cache := newSigFrameCache(e.frame)

	tree, err := e.evalFrame(cache, dt)
	if err != nil {
		e.logger.Warn("frame evaluation failed, keeping previous render", map[string]string{
			"error": err.Error(),
			"frame": fmt.Sprintf("%d", e.frame),
		})

		return e.lastRender
	}

	e.lastRender = tree
	e.lastCache = cache
	e.promotePrevSignals(cache)

	return tree
}

// EvalCount reports how many times the Signal/Field/Event node addressed
// by ref was actually evaluated (not cache-served) during the most recent
// completed Step, instrumentation for testable property 7 ("at-most-once
// evaluation"). Returns 0 before the first Step or for a ref untouched
// that frame.
func (e *Evaluator) EvalCount(ref ir.ValueRef) int {
	if e.lastCache == nil {
		return 0
	}

	return e.lastCache.EvalCount(ref.ID)
}

// promotePrevSignals copies this frame's memoized signal values into
// prevSignal, the only state Pulse/Rising event evaluation needs from the
// frame before.
func (e *Evaluator) promotePrevSignals(cache *SigFrameCache) {
	for id, v := range cache.signals {
		e.prevSignal[id] = v
	}
}
