package transform

import (
	"fmt"
	"sort"
	"sync"

	"github.com/patchgraph/corepatch/typesystem"
)

// Registry is the single catalog of lens and adapter entries, keyed by
// transformId. A zero Registry is ready to use via NewRegistry; Register
// validates early and never panics, mirroring builder's
// validate-early/sentinel-errors-only contract.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register validates and inserts e. Validation order (first failure wins,
// matching builder/errors.go's documented tie-break priority):
//  1. empty id / nil Apply / nil CompileToIR
//  2. duplicate id
//  3. lens changes type
//  4. adapter missing policy
func (r *Registry) Register(e Entry) error {
	if e.ID == "" {
		return fmt.Errorf("transform.Register: empty transform id: %w", ErrDuplicateTransformID)
	}
	if e.Apply == nil {
		return fmt.Errorf("transform.Register(%s): %w", e.ID, ErrNilApply)
	}
	if e.CompileToIR == nil {
		return fmt.Errorf("transform.Register(%s): %w", e.ID, ErrNilCompileToIR)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[e.ID]; exists {
		return fmt.Errorf("transform.Register(%s): %w", e.ID, ErrDuplicateTransformID)
	}

	if e.Kind == Lens && !e.preservesType() {
		return fmt.Errorf("transform.Register(%s): %s -> %s: %w",
			e.ID, typesystem.Format(e.InputType), typesystem.Format(e.OutputType), ErrLensChangesType)
	}

	if e.Kind == Adapter && !e.Policy.IsValid() {
		return fmt.Errorf("transform.Register(%s): %w", e.ID, ErrAdapterMissingPolicy)
	}

	r.entries[e.ID] = e

	return nil
}

// Get returns the entry registered under id.
func (r *Registry) Get(id string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return Entry{}, fmt.Errorf("transform.Get(%s): %w", id, ErrUnknownTransform)
	}

	return e, nil
}

// List returns every registered entry sorted by id, so callers never
// observe Go's randomized map iteration order.
func (r *Registry) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// AdaptersFrom returns every registered Adapter entry whose InputType
// equals from (structural equality, ignoring BusEligible), sorted by id.
// Used by the adapter pathfinder (package pathfinder) to enumerate
// candidate first hops.
func (r *Registry) AdaptersFrom(from typesystem.TypeDesc) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0)
	for _, e := range r.entries {
		if e.Kind == Adapter && typesystem.Equal(e.InputType, from) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}
