package timemodel

import (
	"github.com/patchgraph/corepatch/diag"
	"github.com/patchgraph/corepatch/patch"
	"github.com/patchgraph/corepatch/typesystem"
)

// ReservedBuses is the fixed set of canonical bus ids and the exact type
// each must carry (spec §6 "Reserved buses").
var ReservedBuses = map[string]typesystem.TypeDesc{
	"phaseA":   {World: typesystem.Signal, Domain: typesystem.DomainPhase, Category: typesystem.Core, BusEligible: true},
	"phaseB":   {World: typesystem.Signal, Domain: typesystem.DomainPhase, Category: typesystem.Core, BusEligible: true},
	"pulse":    {World: typesystem.Event, Domain: typesystem.DomainBoolean, Category: typesystem.Core, BusEligible: true},
	"energy":   {World: typesystem.Signal, Domain: typesystem.DomainFloat, Category: typesystem.Core, BusEligible: true},
	"palette":  {World: typesystem.Signal, Domain: typesystem.DomainColor, Category: typesystem.Core, BusEligible: true},
	"progress": {World: typesystem.Signal, Domain: typesystem.DomainUnit, Category: typesystem.Core, BusEligible: true},
}

// UIBindings names, for each reserved bus that exists in the patch, the
// BusBlock id backing it — the uiBindings field of CompiledProgram (spec
// §6). A field is empty if that reserved bus has no BusBlock in the
// patch.
type UIBindings struct {
	PhaseA   string
	PhaseB   string
	Pulse    string
	Energy   string
	Palette  string
	Progress string
}

// ResolveReservedBuses walks p's BusBlocks in their deterministic
// (sortKey, id) order, binds each one tagged Tags["reservedBus"] to the
// matching UIBindings field, and reports CodeReservedBusTypeMismatch for
// any whose resolved type (as already computed by the compiler's type
// pass and supplied via busTypes, keyed by block id) disagrees with
// ReservedBuses' required shape.
func ResolveReservedBuses(p patch.Patch, busTypes map[string]typesystem.TypeDesc) (UIBindings, []diag.CompileError) {
	var bindings UIBindings
	var errs []diag.CompileError

	for _, b := range p.GetBusBlocks() {
		name, tagged := b.Tags["reservedBus"]
		if !tagged {
			continue
		}
		want, known := ReservedBuses[name]
		if !known {
			continue
		}

		if got, hasType := busTypes[b.ID]; hasType && !typesystem.Equal(got, want) {
			errs = append(errs, diag.New(
				diag.CodeReservedBusTypeMismatch,
				"Reserved bus type mismatch",
				name+": expected "+typesystem.Format(want)+", got "+typesystem.Format(got),
				diag.Location{Kind: diag.LocBus, BusID: b.ID},
			))

			continue
		}

		bindBus(&bindings, name, b.ID)
	}

	return bindings, errs
}

func bindBus(b *UIBindings, name, blockID string) {
	switch name {
	case "phaseA":
		b.PhaseA = blockID
	case "phaseB":
		b.PhaseB = blockID
	case "pulse":
		b.Pulse = blockID
	case "energy":
		b.Energy = blockID
	case "palette":
		b.Palette = blockID
	case "progress":
		b.Progress = blockID
	}
}
