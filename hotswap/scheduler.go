package hotswap

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/patchgraph/corepatch/blocks"
	"github.com/patchgraph/corepatch/compiler"
	"github.com/patchgraph/corepatch/patch"
	"github.com/patchgraph/corepatch/pathfinder"
	"github.com/patchgraph/corepatch/runtime"
	"github.com/patchgraph/corepatch/transform"
)

// pendingSwap is the one in-flight compile a Scheduler ever tracks; a
// second RequestSwap supersedes it rather than queuing behind it (spec
// §5: "pending compile discarded if newer edit supersedes before swap").
type pendingSwap struct {
	id       uuid.UUID
	class    EditClass
	boundary Boundary
	newPatch patch.Patch

	cancel context.CancelFunc
	done   chan struct{}

	program *compiler.CompiledProgram
	err     error
}

// Scheduler owns exactly one live runtime.Evaluator and compiles patch
// edits against it per spec §4.9's two-phase protocol: Classify, compile
// in the background, commit atomically at the chosen Boundary.
type Scheduler struct {
	mu sync.Mutex

	blockReg     *blocks.Registry
	transformReg *transform.Registry
	finder       *pathfinder.Finder
	evalOpts     []runtime.Option

	currentPatch patch.Patch
	evaluator    *runtime.Evaluator
	lastTree     runtime.RenderTree

	pending *pendingSwap
}

// NewScheduler compiles initialPatch synchronously — there is no "old
// program" yet for a first compile to swap against — and constructs the
// Evaluator that runs until the first RequestSwap commits.
func NewScheduler(initialPatch patch.Patch, blockReg *blocks.Registry, transformReg *transform.Registry, finder *pathfinder.Finder, evalOpts ...runtime.Option) (*Scheduler, error) {
	if blockReg == nil {
		return nil, ErrNilBlockRegistry
	}
	if transformReg == nil {
		return nil, ErrNilTransformRegistry
	}
	if finder == nil {
		return nil, ErrNilPathfinder
	}

	res, err := compiler.Compile(initialPatch, blockReg, transformReg, finder)
	if err != nil {
		return nil, err
	}
	if !res.OK {
		return nil, fmt.Errorf("%w: %v", ErrCompileRejected, res.Errors)
	}

	return &Scheduler{
		blockReg:     blockReg,
		transformReg: transformReg,
		finder:       finder,
		evalOpts:     evalOpts,
		currentPatch: initialPatch,
		evaluator:    runtime.NewEvaluator(res.Program, evalOpts...),
	}, nil
}

// RequestSwap classifies newPatch against the currently running patch and
// starts compiling it in the background. It returns immediately with a
// correlation id; the swap itself commits later, inside a Step call, once
// the compile finishes and the chosen Boundary is reached.
//
// boundary overrides the class's default boundary (BoundaryNextFrame for
// Class A, BoundaryNextFrame/BoundaryNextPulse — cyclic-patch-dependent —
// for Class B). A Class C edit requires an explicit boundary; omitting
// one returns ErrClassCRequiresChoice and starts no compile.
func (s *Scheduler) RequestSwap(ctx context.Context, newPatch patch.Patch, boundary ...Boundary) (uuid.UUID, EditClass, error) {
	s.mu.Lock()
	class := ClassifyEdit(s.currentPatch, newPatch, s.blockReg)
	s.mu.Unlock()

	chosen, err := resolveBoundary(class, newPatch, s.blockReg, boundary)
	if err != nil {
		return uuid.Nil, class, err
	}

	egctx, cancel := context.WithCancel(ctx)
	eg, egctx := errgroup.WithContext(egctx)

	ps := &pendingSwap{
		id:       uuid.New(),
		class:    class,
		boundary: chosen,
		newPatch: newPatch,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	s.mu.Lock()
	if s.pending != nil {
		s.pending.err = ErrSuperseded
		s.pending.cancel()
	}
	s.pending = ps
	blockReg, transformReg, finder := s.blockReg, s.transformReg, s.finder
	s.mu.Unlock()

	eg.Go(func() error {
		defer close(ps.done)

		res, compileErr := compiler.Compile(newPatch, blockReg, transformReg, finder)

		s.mu.Lock()
		defer s.mu.Unlock()

		if s.pending != ps {
			return nil // superseded while compiling; result is discarded
		}

		if egctx.Err() != nil {
			ps.err = egctx.Err()

			return ps.err
		}

		if compileErr != nil || !res.OK {
			ps.err = fmt.Errorf("%w: %v", ErrCompileRejected, res.Errors)

			return ps.err
		}

		ps.program = res.Program

		return nil
	})

	return ps.id, class, nil
}

// resolveBoundary applies spec §4.9's default-boundary-per-class rule
// when the caller supplies none: Class A always swaps at the next frame;
// Class B prefers the next pulse boundary when newPatch's TimeRoot is
// cyclic, next frame otherwise; Class C has no default.
func resolveBoundary(class EditClass, newPatch patch.Patch, reg *blocks.Registry, explicit []Boundary) (Boundary, error) {
	if len(explicit) > 0 {
		return explicit[0], nil
	}

	switch class {
	case ClassA:
		return BoundaryNextFrame, nil
	case ClassB:
		if newPatchIsCyclic(newPatch, reg) {
			return BoundaryNextPulse, nil
		}

		return BoundaryNextFrame, nil
	default:
		return 0, ErrClassCRequiresChoice
	}
}

func newPatchIsCyclic(p patch.Patch, reg *blocks.Registry) bool {
	root := findTimeRoot(blocksByID(p), reg)

	return root != nil && root.Type == "CycleTimeRoot"
}

// Step advances the active Evaluator by dt, first committing any pending
// swap whose compile has finished and whose Boundary is satisfied.
func (s *Scheduler) Step(dt float64) runtime.RenderTree {
	s.mu.Lock()
	s.tryCommitLocked()
	ev := s.evaluator
	s.mu.Unlock()

	tree := ev.Step(dt)

	s.mu.Lock()
	s.lastTree = tree
	s.mu.Unlock()

	return tree
}

// tryCommitLocked applies s.pending if its compile has finished
// successfully and its Boundary condition holds, reporting whether a
// commit actually happened this call. Called with s.mu held.
func (s *Scheduler) tryCommitLocked() error {
	ps := s.pending
	if ps == nil {
		return ErrNoPendingSwap
	}

	select {
	case <-ps.done:
	default:
		return ErrSwapNotReady // compile still in flight
	}

	if ps.err != nil {
		err := ps.err
		s.pending = nil

		return err
	}

	if !s.boundaryReadyLocked(ps.boundary) {
		return ErrSwapNotReady
	}

	keep := runtime.DeriveStateKinds(ps.program)
	migrated := runtime.NewStateStore()
	migrated.MigrateFrom(s.evaluator.State(), keep)

	opts := append(append([]runtime.Option{}, s.evalOpts...), runtime.WithStateStore(migrated))
	s.evaluator = runtime.NewEvaluator(ps.program, opts...)
	s.currentPatch = ps.newPatch
	s.pending = nil

	return nil
}

func (s *Scheduler) boundaryReadyLocked(b Boundary) bool {
	switch b {
	case BoundaryNextFrame, BoundaryNow:
		return true
	case BoundaryNextPulse:
		return s.lastTree.UI.PulseBound && s.lastTree.UI.Pulse
	case BoundaryWhenFrozen:
		return s.evaluator.Frozen()
	default:
		return false
	}
}

// Commit forces tryCommitLocked to run outside of a Step call, for a
// host that wants to apply a BoundaryWhenFrozen swap the instant it
// freezes rather than waiting for the next Step. Returns nil only when a
// swap actually committed this call; ErrNoPendingSwap when nothing is
// queued, ErrSwapNotReady when something is queued but not yet
// committable, or the compile's own rejection error.
func (s *Scheduler) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tryCommitLocked()
}

// CancelPending discards the in-flight or completed-but-uncommitted swap,
// if any.
func (s *Scheduler) CancelPending() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		s.pending.cancel()
		s.pending = nil
	}
}

// Freeze/Run/Frozen delegate to the active Evaluator.
func (s *Scheduler) Freeze() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evaluator.Freeze()
}

func (s *Scheduler) Run() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evaluator.Run()
}

func (s *Scheduler) Frozen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.evaluator.Frozen()
}

// CurrentPatch returns the patch the active program was compiled from.
func (s *Scheduler) CurrentPatch() patch.Patch {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.currentPatch
}

// Evaluator returns the currently active Evaluator. The pointer itself
// may be replaced by a later commit, so callers needing a stable view
// across multiple Step calls should use Scheduler.Step rather than
// caching this return value.
func (s *Scheduler) Evaluator() *runtime.Evaluator {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.evaluator
}
