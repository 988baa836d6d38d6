package txn

import (
	"sync"

	"github.com/google/uuid"

	"github.com/patchgraph/corepatch/blocks"
	"github.com/patchgraph/corepatch/diag"
	"github.com/patchgraph/corepatch/patch"
)

// HistoryEntry is one committed transaction: the snapshot it produced,
// the events it emitted, and a handle a host can log or reference.
type HistoryEntry struct {
	ID     uuid.UUID
	Patch  patch.Patch
	Events []Event
}

// History is a push-only two-stack undo/redo log over patch.Patch
// snapshots. No structural sharing is needed beyond what patch.Patch
// already provides (copy-on-write per mutator call), so Undo/Redo are
// plain stack pops (spec §4.12: "undo stack stores snapshot references;
// redo works symmetrically").
type History struct {
	mu      sync.Mutex
	current patch.Patch
	undo    []HistoryEntry
	redo    []HistoryEntry
}

// NewHistory starts a History at initial with empty undo/redo stacks.
func NewHistory(initial patch.Patch) *History {
	return &History{current: initial}
}

// Current returns the patch the most recent Apply/Undo/Redo produced.
func (h *History) Current() patch.Patch {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.current
}

// Apply runs ApplyTx against the current snapshot. On success it pushes a
// new HistoryEntry onto the undo stack and clears the redo stack (the
// standard editor contract: a fresh edit invalidates any redo branch),
// advancing Current to the result. On failure Current is untouched and
// the diagnostics are returned exactly as ApplyTx produced them.
func (h *History) Apply(reg *blocks.Registry, ops ...Op) (patch.Patch, []Event, []diag.CompileError) {
	h.mu.Lock()
	defer h.mu.Unlock()

	next, events, errs := ApplyTx(h.current, reg, ops...)
	if len(errs) > 0 {
		return h.current, nil, errs
	}

	h.undo = append(h.undo, HistoryEntry{ID: uuid.New(), Patch: h.current, Events: events})
	h.redo = nil
	h.current = next

	return h.current, events, nil
}

// Undo pops the most recent entry off the undo stack, pushes the current
// snapshot onto the redo stack, and returns the restored patch. ok is
// false (Current left untouched) if the undo stack is empty.
func (h *History) Undo() (p patch.Patch, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undo) == 0 {
		return h.current, false
	}

	last := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, HistoryEntry{ID: uuid.New(), Patch: h.current})
	h.current = last.Patch

	return h.current, true
}

// Redo pops the most recent entry off the redo stack, pushes the current
// snapshot back onto the undo stack, and returns the reapplied patch. ok
// is false (Current left untouched) if the redo stack is empty.
func (h *History) Redo() (p patch.Patch, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redo) == 0 {
		return h.current, false
	}

	last := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, HistoryEntry{ID: uuid.New(), Patch: h.current})
	h.current = last.Patch

	return h.current, true
}

// CanUndo/CanRedo report whether Undo/Redo would succeed right now.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.undo) > 0
}

func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.redo) > 0
}
