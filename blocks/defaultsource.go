package blocks

import (
	"fmt"

	"github.com/patchgraph/corepatch/ir"
	"github.com/patchgraph/corepatch/typesystem"
)

// RoleDefaultSourceProvider marks a BlockDef Pass 0 may instantiate as a
// hidden provider block for an unfed input slot (spec §4.5
// "DefaultSourceProvider family (hidden): one per (world, domain) pair
// that can carry a default").
const RoleDefaultSourceProvider = "defaultSourceProvider"

// defaultSourceProviderDef builds one provider BlockDef for the given
// (world, domain) pair, publishing a single constant output "value" held
// in its own Params["value"].
func defaultSourceProviderDef(typeName string, world typesystem.World, domain typesystem.Domain, fallback ir.Value) BlockDef {
	outT := typesystem.TypeDesc{World: world, Domain: domain, Category: typesystem.Core, BusEligible: true}

	return BlockDef{
		Type:    typeName,
		Outputs: []OutputSlot{{ID: "value", Type: outT}},
		Compile: func(args CompileArgs) (map[string]ir.Artifact, error) {
			v, ok := args.Params["value"]
			if !ok {
				v = fallback
			}

			return map[string]ir.Artifact{"value": {Type: outT, Value: v}}, nil
		},
		Hidden: true,
		Role:   RoleDefaultSourceProvider,
	}
}

// DSConstScalarFloat provides a constant scalar:float/core default.
func dsConstScalarFloat() BlockDef {
	return defaultSourceProviderDef("DSConstScalarFloat", typesystem.Scalar, typesystem.DomainFloat, ir.Number(0))
}

// DSConstSignalFloat provides a constant signal:float/core default (named
// directly in spec §4.5's example).
func dsConstSignalFloat() BlockDef {
	return defaultSourceProviderDef("DSConstSignalFloat", typesystem.Signal, typesystem.DomainFloat, ir.Number(0))
}

// DSConstSignalPhase provides a constant signal:phase/core default.
func dsConstSignalPhase() BlockDef {
	return defaultSourceProviderDef("DSConstSignalPhase", typesystem.Signal, typesystem.DomainPhase, ir.Number(0))
}

// DSConstSignalUnit provides a constant signal:unit/core default.
func dsConstSignalUnit() BlockDef {
	return defaultSourceProviderDef("DSConstSignalUnit", typesystem.Signal, typesystem.DomainUnit, ir.Number(0))
}

// DSConstSignalColor provides a constant signal:color/core default.
func dsConstSignalColor() BlockDef {
	return defaultSourceProviderDef("DSConstSignalColor", typesystem.Signal, typesystem.DomainColor, ir.ColorValue(0, 0, 0, 1))
}

// DefaultSourceProviderFor returns the registered provider BlockDef whose
// sole output matches (world, domain), used by compiler Pass 0 to
// synthesize a hidden provider block for an unfed input slot. Category is
// ignored: every provider publishes a Core output, which is always
// assignable to an Internal slot of the same world/domain per
// typesystem.Assignable.
func DefaultSourceProviderFor(r *Registry, world typesystem.World, domain typesystem.Domain) (BlockDef, error) {
	for _, d := range r.ByRole(RoleDefaultSourceProvider) {
		if len(d.Outputs) != 1 {
			continue
		}
		if d.Outputs[0].Type.World == world && d.Outputs[0].Type.Domain == domain {
			return d, nil
		}
	}

	return BlockDef{}, fmt.Errorf("blocks.DefaultSourceProviderFor(%s, %s): %w", world, domain, ErrNoDefaultSourceProvider)
}
