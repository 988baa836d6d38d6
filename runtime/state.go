package runtime

import (
	"sync"

	"github.com/patchgraph/corepatch/compiler"
	"github.com/patchgraph/corepatch/ir"
)

// StateKey addresses one persistent state slot (spec §4.8's "StateStore
// keyed by StateKey(blockId, internalKey)"). BlockKey is the compiler's
// stable per-block identifier (compiler.CompiledProgram.StateKeys), which
// survives a recompile as long as the block id is unchanged; InternalKey
// disambiguates multiple stateful outputs within a single block (e.g. a
// future block with two independent integrators) and defaults to the
// output slot id that carries the stateful node.
type StateKey struct {
	BlockKey    string
	InternalKey string
}

// stateEntry pairs a stored Value with the SignalNodeKind that wrote it,
// so a StateStore migration can refuse to carry a slot forward when the
// new program's node at that key is a structurally different kind (spec
// §4.9: "a mismatch reinitializes").
type stateEntry struct {
	value ir.Value
	kind  ir.SignalNodeKind
}

// StateStore holds every persistent per-node state slot across frames,
// concrete implementation of ir.StateAccessor handed to kernels via
// ir.EvalContext.State. Only the Evaluator mutates a StateStore, and only
// from its own single-threaded frame tick (spec §5); the mutex exists
// solely to let a UI read a consistent snapshot concurrently.
type StateStore struct {
	mu     sync.Mutex
	values map[StateKey]stateEntry
}

// NewStateStore returns an empty StateStore.
func NewStateStore() *StateStore {
	return &StateStore{values: make(map[StateKey]stateEntry)}
}

// Accessor returns an ir.StateAccessor bound to key, tagged with kind so
// a later Get from a differently-shaped node at the same key reports
// "not found" rather than returning a stale, incompatible Value.
func (s *StateStore) Accessor(key StateKey, kind ir.SignalNodeKind) ir.StateAccessor {
	return &stateAccessor{store: s, key: key, kind: kind}
}

// Snapshot returns a copy of every key this store currently holds, for
// read-only UI inspection (spec §5: "readers from the UI go through a
// read-only snapshot interface").
func (s *StateStore) Snapshot() map[StateKey]ir.Value {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[StateKey]ir.Value, len(s.values))
	for k, e := range s.values {
		out[k] = e.value
	}

	return out
}

// MigrateFrom copies forward every entry of old whose StateKey is present
// in keep with a matching SignalNodeKind (spec §4.9's two-phase swap: "a
// StateKey present in both programs with matching node kind copies
// forward; a mismatch reinitializes"). Called once, on the new program's
// fresh StateStore, immediately after a hot-swap.
func (s *StateStore) MigrateFrom(old *StateStore, keep map[StateKey]ir.SignalNodeKind) {
	old.mu.Lock()
	defer old.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, wantKind := range keep {
		e, ok := old.values[key]
		if !ok || e.kind != wantKind {
			continue
		}
		s.values[key] = e
	}
}

// DeriveStateKinds walks program's published outputs to build the
// StateKey -> SignalNodeKind map a hot-swap needs before calling
// StateStore.MigrateFrom (spec §4.9: "a StateKey present in both programs
// with matching node kind copies forward; a mismatch reinitializes").
func DeriveStateKinds(program *compiler.CompiledProgram) map[StateKey]ir.SignalNodeKind {
	out := make(map[StateKey]ir.SignalNodeKind)
	if program == nil {
		return out
	}

	for nodeID, owner := range buildOwnerIndex(program) {
		node, ok := program.IR.SignalNode(ir.ValueRef{Kind: ir.KindSig, ID: nodeID})
		if !ok {
			continue
		}

		blockKey := owner.blockID
		if k, ok := program.StateKeys[owner.blockID]; ok {
			blockKey = k
		}

		out[StateKey{BlockKey: blockKey, InternalKey: owner.slotID}] = node.Kind
	}

	return out
}

type stateAccessor struct {
	store *StateStore
	key   StateKey
	kind  ir.SignalNodeKind
}

func (a *stateAccessor) Get() (ir.Value, bool) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	e, ok := a.store.values[a.key]
	if !ok || e.kind != a.kind {
		return ir.Value{}, false
	}

	return e.value, true
}

func (a *stateAccessor) Set(v ir.Value) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	a.store.values[a.key] = stateEntry{value: v, kind: a.kind}
}
