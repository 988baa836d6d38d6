package blocks

// RegisterSystemBlocks registers the required system blocks (spec §4.5)
// into r: the three TimeRoot variants, the DefaultSourceProvider family,
// and the two supplemented archetypes Const/Osc. BusBlock is deliberately
// not registered here — see NewBusBlockDef's doc for why it is built
// per-instance by the compiler instead. Returns the first registration
// error encountered, mirroring transform.RegisterBuiltins.
func RegisterSystemBlocks(r *Registry) error {
	defs := []BlockDef{
		finiteTimeRootDef(),
		cycleTimeRootDef(),
		infiniteTimeRootDef(),
		dsConstScalarFloat(),
		dsConstSignalFloat(),
		dsConstSignalPhase(),
		dsConstSignalUnit(),
		dsConstSignalColor(),
		constDef(),
		oscDef(),
	}

	for _, d := range defs {
		if err := r.Register(d); err != nil {
			return err
		}
	}

	return nil
}
