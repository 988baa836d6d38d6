package typesystem

import "fmt"

// World is the structural kind of a value: compile-time-constant, time
// varying, per-element over a domain, or a discrete pulse stream.
type World string

// The closed set of worlds.
const (
	Scalar World = "scalar"
	Signal World = "signal"
	Field  World = "field"
	Event  World = "event"
)

// IsValid reports whether w is one of the closed World values.
func (w World) IsValid() bool {
	switch w {
	case Scalar, Signal, Field, Event:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (w World) String() string { return string(w) }

// Domain is the semantic content carried by a type, independent of world.
type Domain string

// The closed set of domains named by spec §3.
const (
	DomainFloat    Domain = "float"
	DomainInt      Domain = "int"
	DomainPhase    Domain = "phase"
	DomainUnit     Domain = "unit"
	DomainDuration Domain = "duration"
	DomainColor    Domain = "color"
	DomainVec2     Domain = "vec2"
	DomainPoint    Domain = "point"
	DomainString   Domain = "string"
	DomainWaveform Domain = "waveform"
	DomainTime     Domain = "time"
	DomainRate     Domain = "rate"
	DomainBoolean  Domain = "boolean"
)

// IsValid reports whether d is one of the closed Domain values.
func (d Domain) IsValid() bool {
	switch d {
	case DomainFloat, DomainInt, DomainPhase, DomainUnit, DomainDuration,
		DomainColor, DomainVec2, DomainPoint, DomainString, DomainWaveform,
		DomainTime, DomainRate, DomainBoolean:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (d Domain) String() string { return string(d) }

// Category marks a type as core (freely assignable) or internal (requires
// an adapter to relax into a core type of the same world/domain).
type Category string

// The closed set of categories.
const (
	Core     Category = "core"
	Internal Category = "internal"
)

// IsValid reports whether c is one of the closed Category values.
func (c Category) IsValid() bool {
	switch c {
	case Core, Internal:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (c Category) String() string { return string(c) }

// TypeDesc is the type of a value flowing through the patch graph.
// It is a plain comparable struct: two TypeDescs with equal fields are
// interchangeable as map keys (used by the transform registry and the
// adapter pathfinder cache).
type TypeDesc struct {
	World       World
	Domain      Domain
	Category    Category
	BusEligible bool
}

// IsValid reports whether every component field is one of its closed set's
// recognized values.
func (t TypeDesc) IsValid() bool {
	return t.World.IsValid() && t.Domain.IsValid() && t.Category.IsValid()
}

// Equal reports structural equality between a and b. Per spec §4.1,
// BusEligible is ignored for equality in transform dispatch: two types
// that agree on world/domain/category are the same type for the purposes
// of registry lookups and lens/adapter applicability, regardless of
// whether either instance happens to be bus-eligible.
func Equal(a, b TypeDesc) bool {
	return a.World == b.World && a.Domain == b.Domain && a.Category == b.Category
}

// Assignable reports whether a value of type src may flow directly (with
// no transform) into a slot of type dst: world and domain must match
// exactly, and category must either match or relax from core to internal.
// Internal-to-core requires an adapter and is never directly assignable.
func Assignable(src, dst TypeDesc) bool {
	if src.World != dst.World || src.Domain != dst.Domain {
		return false
	}
	if src.Category == dst.Category {
		return true
	}

	return src.Category == Core && dst.Category == Internal
}

// Format renders t in its diagnostic form, e.g. "signal:phase/core".
func Format(t TypeDesc) string {
	return fmt.Sprintf("%s:%s/%s", t.World, t.Domain, t.Category)
}

// CheckAssignable is Assignable with a structured error on failure: it
// distinguishes a plain world/domain mismatch from the specific
// category-downcast case the spec calls out by name (ErrCategoryDowncast),
// which compile Pass 2 uses to decide whether an adapter search is even
// meaningful (a world/domain mismatch always needs an adapter; a pure
// category downcast might be resolvable by an adapter whose input/output
// types are otherwise identical).
func CheckAssignable(src, dst TypeDesc) error {
	if Assignable(src, dst) {
		return nil
	}
	if src.World == dst.World && src.Domain == dst.Domain {
		return fmt.Errorf("typesystem: %s -> %s: %w", Format(src), Format(dst), ErrCategoryDowncast)
	}

	return fmt.Errorf("typesystem: %s is not assignable to %s", Format(src), Format(dst))
}
