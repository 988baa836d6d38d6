package ir

// Kind is the closed set of concrete value shapes a Value can hold. It is
// deliberately smaller and flatter than typesystem.Domain: several domains
// (float, int, phase, unit, duration, rate) all share the Number shape at
// the IR level, since the IR only needs to move bits around — domain
// semantics are enforced earlier, by the type system and transform
// registry, not re-checked here.
type Kind int

// The closed set of IR value shapes.
const (
	KNumber Kind = iota
	KBool
	KVec2
	KColor
	KString
	KTime

	// KError is the sentinel shape a kernel or closure returns to signal an
	// evaluation error (spec §7): the runtime logs it, substitutes the
	// failing node's input slot default, and completes the frame rather
	// than propagating a panic.
	KError
)

// Value is the runtime representation threaded through kernels. It is a
// plain, comparable-by-convention tagged union rather than an interface,
// so Builder and the evaluator never pay for boxing on the hot per-frame
// path.
type Value struct {
	Kind  Kind
	Num   float64
	Vec2  [2]float64
	Color [4]float64
	Str   string
	Bool  bool
}

// Number constructs a KNumber Value.
func Number(n float64) Value { return Value{Kind: KNumber, Num: n} }

// BoolValue constructs a KBool Value.
func BoolValue(b bool) Value { return Value{Kind: KBool, Bool: b} }

// Vec2Value constructs a KVec2 Value.
func Vec2Value(x, y float64) Value { return Value{Kind: KVec2, Vec2: [2]float64{x, y}} }

// ColorValue constructs a KColor Value (r, g, b, a in [0,1]).
func ColorValue(r, g, b, a float64) Value {
	return Value{Kind: KColor, Color: [4]float64{r, g, b, a}}
}

// StringValue constructs a KString Value.
func StringValue(s string) Value { return Value{Kind: KString, Str: s} }

// TimeValue constructs a KTime Value (milliseconds since the patch's time
// origin).
func TimeValue(ms float64) Value { return Value{Kind: KTime, Num: ms} }

// AsNumber returns the Value's numeric component regardless of Kind; for
// non-numeric kinds this is 0, matching the evaluator's "substitute and
// keep going" error policy (§7) rather than panicking mid-frame.
func (v Value) AsNumber() float64 { return v.Num }

// ErrorValue constructs a KError sentinel Value carrying msg as its
// diagnostic text (stored in Str).
func ErrorValue(msg string) Value { return Value{Kind: KError, Str: msg} }

// IsError reports whether v is a KError sentinel.
func (v Value) IsError() bool { return v.Kind == KError }
