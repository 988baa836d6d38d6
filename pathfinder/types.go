package pathfinder

// Context carries the two policy flags spec §4.3 names: whether the
// search may use explicit-policy adapters and heavy-cost adapters. Both
// default to false, the strictest (auto-only, cheap/medium-only) search.
type Context struct {
	AllowExplicit bool
	AllowHeavy    bool
}

// Step is one adapter hop in a resolved Path.
type Step struct {
	TransformID string
	Cost        int
}

// Path is the ordered sequence of adapter hops connecting fromType to
// toType. A Path with no Steps and RequiresConfirmation false means
// fromType was already directly assignable to toType (spec §4.3 step 1) —
// distinguish this from "no path exists" via Find's found return value.
type Path struct {
	Steps                []Step
	RequiresConfirmation bool
}

// TotalCost sums the Cost of every step.
func (p Path) TotalCost() int {
	total := 0
	for _, s := range p.Steps {
		total += s.Cost
	}

	return total
}
