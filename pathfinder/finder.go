package pathfinder

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/patchgraph/corepatch/transform"
	"github.com/patchgraph/corepatch/typesystem"
)

// Finder searches a transform.Registry for adapter paths between types,
// caching results keyed by (from, to, Context).
//
// A Finder is safe for concurrent use: reads take cache.mu.RLock, and the
// singleflight.Group collapses concurrent misses for the same key into a
// single search, matching core.Graph's cheap-reads/serialized-writes
// discipline.
type Finder struct {
	registry *transform.Registry

	mu    sync.RWMutex
	cache map[string]cacheEntry

	group singleflight.Group
}

type cacheEntry struct {
	path  Path
	found bool
}

// NewFinder returns a Finder over registry. registry must not be nil.
func NewFinder(registry *transform.Registry) (*Finder, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}

	return &Finder{
		registry: registry,
		cache:    make(map[string]cacheEntry),
	}, nil
}

// Find resolves a path from "from" to "to" under ctx, per spec §4.3:
//  1. If from is directly assignable to to, the empty Path is returned
//     (found=true, zero steps, no confirmation needed).
//  2. Otherwise every adapter chain of length 1 or 2 whose head input and
//     tail output match from/to is enumerated.
//  3. Chains are filtered by policy (auto-only, plus explicit if
//     ctx.AllowExplicit) and cost (excluding heavy adapters unless
//     ctx.AllowHeavy).
//  4. The minimum-cost chain wins; ties break first by fewer steps, then
//     by the lexicographically smallest sequence of adapter ids.
//  5. If no such chain exists but a suggest-tier chain does, that chain is
//     returned with RequiresConfirmation set.
//
// found is false only when no chain of either tier exists.
func (f *Finder) Find(from, to typesystem.TypeDesc, ctx Context) (Path, bool, error) {
	if typesystem.Assignable(from, to) {
		return Path{}, true, nil
	}

	key := cacheKey(from, to, ctx)

	f.mu.RLock()
	entry, ok := f.cache[key]
	f.mu.RUnlock()
	if ok {
		return entry.path, entry.found, nil
	}

	result, err, _ := f.group.Do(key, func() (interface{}, error) {
		path, found := f.search(from, to, ctx)

		return cacheEntry{path: path, found: found}, nil
	})
	if err != nil {
		return Path{}, false, err
	}

	computed := result.(cacheEntry)

	f.mu.Lock()
	f.cache[key] = computed
	f.mu.Unlock()

	return computed.path, computed.found, nil
}

func cacheKey(from, to typesystem.TypeDesc, ctx Context) string {
	return fmt.Sprintf("%s->%s|explicit=%t|heavy=%t",
		typesystem.Format(from), typesystem.Format(to), ctx.AllowExplicit, ctx.AllowHeavy)
}

// candidate is one enumerated chain of 1 or 2 adapter entries.
type candidate struct {
	entries []transform.Entry
}

func (c candidate) cost() int {
	total := 0
	for _, e := range c.entries {
		total += e.Cost
	}

	return total
}

func (c candidate) ids() []string {
	ids := make([]string, len(c.entries))
	for i, e := range c.entries {
		ids[i] = e.ID
	}

	return ids
}

func (c candidate) toPath(requiresConfirmation bool) Path {
	steps := make([]Step, len(c.entries))
	for i, e := range c.entries {
		steps[i] = Step{TransformID: e.ID, Cost: e.Cost}
	}

	return Path{Steps: steps, RequiresConfirmation: requiresConfirmation}
}

// search enumerates every 1-hop and 2-hop adapter chain from "from" to
// "to", then selects the best valid-tier chain or, failing that, the best
// suggest-tier chain.
func (f *Finder) search(from, to typesystem.TypeDesc, ctx Context) (Path, bool) {
	var all []candidate

	for _, first := range f.registry.AdaptersFrom(from) {
		if typesystem.Equal(first.OutputType, to) {
			all = append(all, candidate{entries: []transform.Entry{first}})
		}
		for _, second := range f.registry.AdaptersFrom(first.OutputType) {
			if typesystem.Equal(second.OutputType, to) {
				all = append(all, candidate{entries: []transform.Entry{first, second}})
			}
		}
	}

	if valid := bestCandidate(all, func(c candidate) bool { return everyStepAllowed(c, ctx, false) }); valid != nil {
		return valid.toPath(false), true
	}

	if suggest := bestCandidate(all, func(c candidate) bool { return everyStepAllowed(c, ctx, true) }); suggest != nil {
		return suggest.toPath(true), true
	}

	return Path{}, false
}

// everyStepAllowed reports whether every adapter in c's chain passes the
// heavy-cost gate and the policy gate. allowSuggest widens the policy gate
// to also accept PolicySuggest entries, used for the confirmation-required
// fallback tier.
func everyStepAllowed(c candidate, ctx Context, allowSuggest bool) bool {
	for _, e := range c.entries {
		if e.Cost >= transform.HeavyCostThreshold && !ctx.AllowHeavy {
			return false
		}
		switch e.Policy {
		case transform.PolicyAuto:
			// always allowed
		case transform.PolicyExplicit:
			if !ctx.AllowExplicit {
				return false
			}
		case transform.PolicySuggest:
			if !allowSuggest {
				return false
			}
		default:
			return false
		}
	}

	return true
}

// bestCandidate returns the minimum-cost candidate satisfying keep, with
// ties broken by fewer steps then lexicographically smallest id sequence.
// Returns nil if none qualify.
func bestCandidate(all []candidate, keep func(candidate) bool) *candidate {
	var qualifying []candidate
	for _, c := range all {
		if keep(c) {
			qualifying = append(qualifying, c)
		}
	}
	if len(qualifying) == 0 {
		return nil
	}

	sort.Slice(qualifying, func(i, j int) bool {
		a, b := qualifying[i], qualifying[j]
		if a.cost() != b.cost() {
			return a.cost() < b.cost()
		}
		if len(a.entries) != len(b.entries) {
			return len(a.entries) < len(b.entries)
		}

		return strings.Join(a.ids(), ">") < strings.Join(b.ids(), ">")
	})

	best := qualifying[0]

	return &best
}
