package diag_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patchgraph/corepatch/diag"
)

func TestNewDefaultsToSeverityError(t *testing.T) {
	e := diag.New(diag.CodeTypeMismatch, "Type mismatch", "signal:phase/core not assignable to signal:number/core")
	assert.False(t, e.IsWarning())
	assert.Equal(t, diag.CodeTypeMismatch, e.Code)
}

func TestWarningSetsSeverityWarning(t *testing.T) {
	e := diag.Warning(diag.CodeUnusedBindingField, "Unused field", "adapterChain ignored on bus binding")
	assert.True(t, e.IsWarning())
}

func TestUnwrapMatchesSentinelFor(t *testing.T) {
	e := diag.New(diag.CodeIllegalFeedback, "Illegal feedback", "cycle A,B has no memory node")
	assert.ErrorIs(t, e, diag.SentinelFor(diag.CodeIllegalFeedback))
	assert.False(t, errors.Is(e, diag.SentinelFor(diag.CodeTypeMismatch)))
}

func TestWithDetailsAndHelpAreImmutable(t *testing.T) {
	base := diag.New(diag.CodeMissingTimeRoot, "Missing time root", "no block has role=TimeRoot")
	withDetails := base.WithDetails(map[string]string{"patchID": "p1"})

	assert.Nil(t, base.Details)
	assert.Equal(t, "p1", withDetails.Details["patchID"])
}

func TestCodeIsValid(t *testing.T) {
	assert.True(t, diag.CodeTypeMismatch.IsValid())
	assert.False(t, diag.Code("NOPE").IsValid())
}

func TestLocationsCarryThrough(t *testing.T) {
	loc := diag.Location{Kind: diag.LocSCC, SCCBlockIDs: []string{"a", "b"}}
	e := diag.New(diag.CodeIllegalFeedback, "Illegal feedback", "cycle detected", loc)
	assert.Equal(t, []string{"a", "b"}, e.Locations[0].SCCBlockIDs)
}
