package transform

// RegisterBuiltins registers every canonical lens and adapter entry into r.
// Callers that want a registry scoped to only part of the catalog should
// call the individual *Entry constructors directly instead.
func RegisterBuiltins(r *Registry) error {
	entries := []Entry{
		// number lenses
		gainEntry(),
		biasEntry(),
		polarityEntry(),
		clampEntry(),
		slewEntry(),
		quantizeEntry(),
		easeEntry(),
		mapRangeEntry(),

		// phase lenses
		phaseOffsetEntry(),
		phaseScaleEntry(),
		pingPongEntry(),
		phaseQuantizeEntry(),
		phaseInvertEntry(),

		// vec2 lenses
		vec2GainBiasEntry(),
		rotate2DEntry(),
		translate2DEntry(),

		// color lenses
		colorGainEntry(),
		hueShiftEntry(),
		saturateEntry(),

		// adapters
		constToSignalEntry(),
		broadcastScalarToFieldEntry(),
		broadcastSignalToFieldEntry(),
		reduceFieldToSignalEntry(),
		normalizeToPhaseEntry(),
		phaseToNumberEntry(),
		numberToDurationMsEntry(),
		durationToNumberMsEntry(),
	}

	for _, e := range entries {
		if err := r.Register(e); err != nil {
			return err
		}
	}

	return nil
}
