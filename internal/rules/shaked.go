package rules

// Shaked track / Amendment 139 constants (תיקון 139 - חלופת שקד).
const (
	// ShakedDemolishRebuildMultiplier is the maximum multiplier applied to
	// the existing gross floor area in the demolition-rebuild alternative.
	ShakedDemolishRebuildMultiplier = 4.0

	// ShakedStrengthenMultiplier is the maximum multiplier for the
	// strengthening alternative.
	ShakedStrengthenMultiplier = 2.0

	// BettermentLevyRate is the levy charged on the value of rights granted
	// above the statutory base.
	BettermentLevyRate = 0.25
)
