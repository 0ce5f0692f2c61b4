package rules

// InclusiveDistrict is a scored district of the citywide inclusive-housing
// policy (דיור בהישג יד). Aliases are matched by substring containment
// against the parcel's neighborhood name.
type InclusiveDistrict struct {
	Name    string
	Aliases []string
	Rate    float64 // share of the developer's units to be mandated
}

// InclusiveMinUnits is the project size (potential units, high estimate)
// below which the policy does not apply.
const InclusiveMinUnits = 10

var InclusiveDistricts = []InclusiveDistrict{
	{
		Name:    "הדר",
		Aliases: []string{"הדר", "ואדי ניסנאס", "ואדי סאליב", "העיר התחתית"},
		Rate:    0.15,
	},
	{
		Name:    "נוה שאנן",
		Aliases: []string{"נווה שאנן", "נוה שאנן", "רמת אלמוגי"},
		Rate:    0.10,
	},
	{
		Name:    "קריית חיים",
		Aliases: []string{"קריית חיים", "קרית חיים"},
		Rate:    0.10,
	},
	{
		Name:    "בת גלים",
		Aliases: []string{"בת גלים"},
		Rate:    0.12,
	},
}
