package blocks

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is the single catalog of registered block types, keyed by
// Type. Obtain a ready Registry via NewRegistry (the zero value has no
// map and cannot be registered into); Register validates early and
// never panics, the same contract
// builder.BuildGraph's constructors follow.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]BlockDef
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]BlockDef)}
}

// Register validates and inserts d. Validation order (first failure
// wins):
//  1. empty type / duplicate type
//  2. compile function: exactly one of Compile/CompileV2 must be set
//  3. each input slot in order: non-empty id, no duplicate id, type
//     IsValid, combine policy IsValid
//  4. each output slot in order: non-empty id, no duplicate id, type
//     IsValid
func (r *Registry) Register(d BlockDef) error {
	if d.Type == "" {
		return fmt.Errorf("blocks.Register: %w", ErrEmptyBlockType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[d.Type]; exists {
		return fmt.Errorf("blocks.Register(%s): %w", d.Type, ErrDuplicateBlockType)
	}

	if d.Compile == nil && d.CompileV2 == nil {
		return fmt.Errorf("blocks.Register(%s): %w", d.Type, ErrNilCompile)
	}
	if d.Compile != nil && d.CompileV2 != nil {
		return fmt.Errorf("blocks.Register(%s): %w", d.Type, ErrBothCompileFuncs)
	}

	seenIn := make(map[string]struct{}, len(d.Inputs))
	for _, in := range d.Inputs {
		if in.ID == "" {
			return fmt.Errorf("blocks.Register(%s): input: %w", d.Type, ErrEmptySlotID)
		}
		if _, dup := seenIn[in.ID]; dup {
			return fmt.Errorf("blocks.Register(%s): input %s: %w", d.Type, in.ID, ErrDuplicateSlotID)
		}
		seenIn[in.ID] = struct{}{}

		if !in.Type.IsValid() {
			return fmt.Errorf("blocks.Register(%s): input %s: %w", d.Type, in.ID, ErrInvalidSlotType)
		}
		if !in.Combine.IsValid() {
			return fmt.Errorf("blocks.Register(%s): input %s: %w", d.Type, in.ID, ErrInvalidCombinePolicy)
		}
	}

	seenOut := make(map[string]struct{}, len(d.Outputs))
	for _, out := range d.Outputs {
		if out.ID == "" {
			return fmt.Errorf("blocks.Register(%s): output: %w", d.Type, ErrEmptySlotID)
		}
		if _, dup := seenOut[out.ID]; dup {
			return fmt.Errorf("blocks.Register(%s): output %s: %w", d.Type, out.ID, ErrDuplicateSlotID)
		}
		seenOut[out.ID] = struct{}{}

		if !out.Type.IsValid() {
			return fmt.Errorf("blocks.Register(%s): output %s: %w", d.Type, out.ID, ErrInvalidSlotType)
		}
	}

	r.defs[d.Type] = d

	return nil
}

// Get returns the BlockDef registered under typeName.
func (r *Registry) Get(typeName string) (BlockDef, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.defs[typeName]
	if !ok {
		return BlockDef{}, fmt.Errorf("blocks.Get(%s): %w", typeName, ErrUnknownBlockType)
	}

	return d, nil
}

// List returns every registered BlockDef sorted by Type, so callers never
// observe Go's randomized map iteration order.
func (r *Registry) List() []BlockDef {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]BlockDef, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })

	return out
}

// ByRole returns every registered BlockDef whose Role equals role, sorted
// by Type. Used by the compiler's Time Topology pass to locate the single
// role="TimeRoot" block.
func (r *Registry) ByRole(role string) []BlockDef {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]BlockDef, 0)
	for _, d := range r.defs {
		if d.Role == role {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })

	return out
}
