package rules

// HFP/2666 calculation parameters (חפ/2666 מסמך מלא).
const (
	// Hfp2666Coverage is the permitted ground coverage share of the plot.
	Hfp2666Coverage = 0.80

	// Hfp2666BalconyPerUnit is the balcony area per unit under חפ/2666 (m²).
	// Differs from the 12 m² of TAMA 38.
	Hfp2666BalconyPerUnit = 14.0
)

// Small-building override (hard ceilings for buildings of few units).
// When a parcel holds a small existing building, the sub-area figures are
// clamped down to these values. The override tightens only, never loosens.
const (
	SmallBuildingMaxUnits      = 4
	SmallBuildingMultiplierCap = 1.35
	SmallBuildingMaxFloorsCap  = 4
	SmallBuildingDensityCap    = 11.0
)

// SmallBuildingExemptDistricts lists district ids where the small-building
// override does not apply (strengthening-only terrain and the intensive
// densification axis keep their own figures).
var SmallBuildingExemptDistricts = map[int]bool{
	7:  true,
	10: true,
}

// Building-H citywide variant (בניין H). Applies by building shape, not by
// district; bypasses the district tables entirely.
const (
	BuildingHMultiplier = 3.5
	BuildingHMaxFloors  = 9
)

// Condition restricts when a sub-area may govern a parcel. It is a closed
// set: the resolver type-switches exhaustively over the five kinds, so a new
// kind is a compile-visible change wherever conditions are handled.
type Condition interface {
	conditionKind()
}

// MinUnitsCondition matches buildings with at least Min existing units.
type MinUnitsCondition struct {
	Min int
}

// MaxUnitsCondition matches buildings with at most Max existing units.
type MaxUnitsCondition struct {
	Max int
}

// StrengthenOnlyCondition marks a sub-area where demolition is not
// permitted; only the flat per-unit strengthening addition applies.
type StrengthenOnlyCondition struct{}

// ConsolidationCondition requires a consolidated application over at least
// MinParcels parcels. Never auto-selected; manual selection only.
type ConsolidationCondition struct {
	MinParcels int
}

// FocalHubCondition requires a consolidated area of at least MinArea m².
// Never auto-selected; manual selection only.
type FocalHubCondition struct {
	MinArea float64
}

func (MinUnitsCondition) conditionKind()        {}
func (MaxUnitsCondition) conditionKind()        {}
func (StrengthenOnlyCondition) conditionKind()  {}
func (ConsolidationCondition) conditionKind()   {}
func (FocalHubCondition) conditionKind()        {}

// SubArea is one governed band within an HFP/2666 district.
type SubArea struct {
	ID               int
	Name             string
	Multiplier       float64 // residential primary-area multiplier
	CommercialBonus  float64 // optional, share of plot area; 0 = none
	MaxFloors        int
	MaxUnitsPerDunam float64
	Default          bool
	Condition        Condition // nil = unconditional
}

// District is an HFP/2666 planning district with its ordered sub-areas.
type District struct {
	ID       int
	Name     string
	SubAreas []SubArea
}

// Hfp2666Districts holds the ten planning districts of חפ/2666, updated per
// טבלה 5 (נובמבר 2023). Sub-area order matters: the resolver scans in
// declaration order and takes the first match.
var Hfp2666Districts = []District{
	{
		ID:   1,
		Name: "ק. שמואל צפון",
		SubAreas: []SubArea{
			{ID: 11, Name: "ק. שמואל צפון", Multiplier: 2.30, MaxFloors: 7, MaxUnitsPerDunam: 19, Default: true},
		},
	},
	{
		ID:   2,
		Name: "ק.חיים מערבית — אברבנאל",
		SubAreas: []SubArea{
			{ID: 21, Name: "אברבנאל", Multiplier: 1.80, MaxFloors: 7, MaxUnitsPerDunam: 15, Default: true},
			{ID: 22, Name: "אברבנאל — איחוד מגרשים", Multiplier: 2.10, MaxFloors: 9, MaxUnitsPerDunam: 18,
				Condition: ConsolidationCondition{MinParcels: 3}},
		},
	},
	{
		ID:   3,
		Name: "ק.חיים מזרחית",
		SubAreas: []SubArea{
			{ID: 31, Name: "ק.חיים מזרחית", Multiplier: 2.30, MaxFloors: 7, MaxUnitsPerDunam: 19, Default: true},
		},
	},
	{
		ID:   4,
		Name: "בת גלים ורחוב אלנבי",
		SubAreas: []SubArea{
			{ID: 41, Name: "בת גלים — מבנים קטנים", Multiplier: 2.50, MaxFloors: 7, MaxUnitsPerDunam: 22, Default: true,
				Condition: MaxUnitsCondition{Max: 12}},
			{ID: 42, Name: "בת גלים — מבנים גדולים", Multiplier: 2.70, MaxFloors: 8, MaxUnitsPerDunam: 22,
				Condition: MinUnitsCondition{Min: 13}},
		},
	},
	{
		ID:   5,
		Name: "מושבה גרמנית",
		SubAreas: []SubArea{
			{ID: 51, Name: "מושבה גרמנית", Multiplier: 1.85, MaxFloors: 6, MaxUnitsPerDunam: 15, Default: true},
		},
	},
	{
		ID:   6,
		Name: "הדר",
		SubAreas: []SubArea{
			{ID: 61, Name: "הדר", Multiplier: 2.30, MaxFloors: 6, MaxUnitsPerDunam: 22, Default: true},
			{ID: 62, Name: "הדר — מוקד מרכזי", Multiplier: 2.80, CommercialBonus: 0.30, MaxFloors: 8, MaxUnitsPerDunam: 22,
				Condition: FocalHubCondition{MinArea: 3000}},
		},
	},
	{
		ID:   7,
		Name: "המורדות הצפוניים",
		SubAreas: []SubArea{
			// Topographically sensitive slopes: no demolition permitted.
			{ID: 71, Name: "המורדות הצפוניים — חיזוק בלבד", Multiplier: 1.35, MaxFloors: 4, MaxUnitsPerDunam: 11, Default: true,
				Condition: StrengthenOnlyCondition{}},
		},
	},
	{
		ID:   8,
		Name: "כרמל",
		SubAreas: []SubArea{
			{ID: 81, Name: "כרמל", Multiplier: 1.85, MaxFloors: 7, MaxUnitsPerDunam: 15, Default: true},
			// Manual alternative for the old-Carmel fabric; declared after
			// the default so the automatic scan never reaches it.
			{ID: 82, Name: "כרמל ותיק", Multiplier: 1.60, MaxFloors: 6, MaxUnitsPerDunam: 15},
		},
	},
	{
		ID:   9,
		Name: "נוה שאנן",
		SubAreas: []SubArea{
			{ID: 91, Name: "נוה שאנן", Multiplier: 2.25, MaxFloors: 7, MaxUnitsPerDunam: 18, Default: true},
		},
	},
	{
		ID:   10,
		Name: "ציר הרכס",
		SubAreas: []SubArea{
			{ID: 101, Name: "מקטע 2 מוריה", Multiplier: 2.50, MaxFloors: 9, MaxUnitsPerDunam: 22, Default: true},
			{ID: 102, Name: "מקטעים 1, 3", Multiplier: 1.85, MaxFloors: 7, MaxUnitsPerDunam: 15},
		},
	},
}

// DistrictNameKey maps a neighborhood/quarter name fragment to a district.
// Lookup is substring containment, first entry wins; declaration order is a
// business rule, not an accident (e.g. "קריית חיים מערבית" must be tested
// before the bare "קריית חיים" fallback).
type DistrictNameKey struct {
	Key        string
	DistrictID int
}

// DistrictNameKeys is scanned in order against the parcel's neighborhood
// and then its quarter.
var DistrictNameKeys = []DistrictNameKey{
	// District 1
	{Key: "קריית שמואל", DistrictID: 1},
	// District 2
	{Key: "קריית חיים מערבית", DistrictID: 2},
	{Key: "אברבנאל", DistrictID: 2},
	// District 3 (bare ק.חיים defaults to eastern, the more common case)
	{Key: "קריית חיים מזרחית", DistrictID: 3},
	{Key: "קריית חיים", DistrictID: 3},
	// District 4
	{Key: "בת גלים", DistrictID: 4},
	{Key: "אלנבי", DistrictID: 4},
	// District 5
	{Key: "מושבה גרמנית", DistrictID: 5},
	{Key: "המושבה הגרמנית", DistrictID: 5},
	// District 6
	{Key: "הדר", DistrictID: 6},
	{Key: "העיר התחתית", DistrictID: 6},
	{Key: "ואדי סאליב", DistrictID: 6},
	{Key: "ואדי ניסנאס", DistrictID: 6},
	// District 7
	{Key: "המורדות הצפוניים", DistrictID: 7},
	{Key: "רמת שמואל", DistrictID: 7},
	// District 8
	{Key: "כרמל ותיק", DistrictID: 8},
	{Key: "כרמל מערבי", DistrictID: 8},
	{Key: "מרכז הכרמל", DistrictID: 8},
	{Key: "כרמליה", DistrictID: 8},
	{Key: "אחוזה", DistrictID: 8},
	{Key: "כרמל", DistrictID: 8},
	// District 9
	{Key: "נווה שאנן", DistrictID: 9},
	{Key: "נוה שאנן", DistrictID: 9},
	{Key: "רמת הנשיא", DistrictID: 9},
	{Key: "רמת אלמוגי", DistrictID: 9},
	// District 10 (Danya is excluded from TAMA 38 but carries an HFP/2666
	// assignment)
	{Key: "מוריה", DistrictID: 10},
	{Key: "דניה", DistrictID: 10},
}

// DistrictByID returns the district with the given id, or nil.
func DistrictByID(id int) *District {
	for i := range Hfp2666Districts {
		if Hfp2666Districts[i].ID == id {
			return &Hfp2666Districts[i]
		}
	}
	return nil
}

// SubAreaByID returns the sub-area with the given id within d, or nil.
func SubAreaByID(d *District, id int) *SubArea {
	if d == nil {
		return nil
	}
	for i := range d.SubAreas {
		if d.SubAreas[i].ID == id {
			return &d.SubAreas[i]
		}
	}
	return nil
}
