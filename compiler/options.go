package compiler

// Option configures Compile via the functional-options pattern, the same
// convention every corepatch package uses for its constructors.
type Option func(*config)

// config holds Compile's resolved options. The zero value is the
// strictest configuration: no explicit or heavy adapters auto-inserted,
// no suggest-tier adapter path accepted without confirmation.
type config struct {
	allowExplicitAdapters  bool
	allowHeavyAdapters     bool
	allowSuggestedAdapters bool
}

func defaultConfig() config { return config{} }

// WithAllowExplicitAdapters lets Pass 2's adapter search consider
// PolicyExplicit adapters, not just PolicyAuto ones.
func WithAllowExplicitAdapters() Option {
	return func(c *config) { c.allowExplicitAdapters = true }
}

// WithAllowHeavyAdapters lets Pass 2's adapter search consider adapters at
// or above transform.HeavyCostThreshold.
func WithAllowHeavyAdapters() Option {
	return func(c *config) { c.allowHeavyAdapters = true }
}

// WithAllowSuggestedAdapters accepts a pathfinder.Path whose
// RequiresConfirmation is set without surfacing it as a type mismatch.
// Without this option, a suggest-tier-only path is reported as
// diag.CodeTypeMismatch with help text naming the suggested path, since
// Compile itself has no interactive confirmation channel; a caller that
// already obtained confirmation out of band passes this option.
func WithAllowSuggestedAdapters() Option {
	return func(c *config) { c.allowSuggestedAdapters = true }
}
