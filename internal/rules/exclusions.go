package rules

import "strings"

// ExclusionZone is a named area carved out of the intensive-densification
// tracks (אזורי החרגה, per חפ/2000). A parcel falls inside a zone when its
// gush appears in GushNumbers, lies within GushRange, or its street name
// contains one of Streets.
type ExclusionZone struct {
	Name           string
	GushNumbers    []int
	GushRange      [2]int // inclusive; zero value = unused
	AdditionalGush []int
	Streets        []string
	MaxAddition    float64 // m², strengthening addition only
	AllowNewUnits  bool
	Reason         string
}

// ExclusionZones is evaluated in declaration order.
var ExclusionZones = []ExclusionZone{
	{
		Name:        "הוד הכרמל (דניה)",
		GushNumbers: []int{10769, 10770, 10771, 10772, 10773, 10774, 10775, 10776, 12251},
		Streets: []string{
			"שדרות אבא חושי", "דניה", "קוסטה ריקה", "איטליה", "ליבריה",
			"פינלנד", "שוודיה", "גרינבוים", "הונדורס",
		},
		MaxAddition: 25,
		Reason:      "אזור בנייה צמודת קרקע בצפיפות נמוכה - אסור בציפוף אינטנסיבי",
	},
	{
		Name:           "קריית חיים מערבית",
		GushRange:      [2]int{11570, 11600},
		AdditionalGush: []int{11624},
		Streets: []string{
			"שדרות דגניה", "שדרות טרומן", "ורבורג", "בן צבי",
			"הציוד", "העמל", "שדרות מח\"ל",
		},
		MaxAddition: 25,
		Reason:      "מרקם תכנוני נמוך ממערב למסילת הרכבת - רחובות צרים",
	},
	{
		Name:        "רמת רמז - הגגות האדומים",
		Streets:     []string{"קומוי", "בורוכוב", "דורות", "אינטרנציונל"},
		MaxAddition: 25,
		Reason:      "אזור בתי מגורים נמוכים עם גגות רעפים - שימור אופי שכונתי",
	},
}

// MasterPlanArea is a pinui-binui master-plan area (תוכנית אב). Rights in
// these areas are set at the plan level; individual-parcel calculation is
// redirected to the governing plan.
type MasterPlanArea struct {
	Name          string
	PlanID        string
	Neighborhoods []string
	Description   string
}

var MasterPlanAreas = []MasterPlanArea{
	{
		Name:          "שכונות החוף (חפ/2350)",
		PlanID:        "חפ/2350",
		Neighborhoods: []string{"נווה דוד", "שער העלייה", "שפרינצק מערב", "עין הים"},
		Description:   "תוכנית אב להתחדשות שכונות החוף",
	},
	{
		Name:          "קריית אליעזר",
		PlanID:        "קריית אליעזר פינוי-בינוי",
		Neighborhoods: []string{"קריית אליעזר"},
		Description:   "216 יח\"ד ישנות → 970 דירות חדשות, 7 מגדלים 18-34 קומות",
	},
	{
		Name:          "רמת שאול",
		PlanID:        "רמת שאול תוכנית אב",
		Neighborhoods: []string{"רמת שאול"},
		Description:   "תוכנית אב שאושרה לאחרונה",
	},
	{
		Name:          "שפרינצק",
		PlanID:        "שפרינצק תוכנית אב",
		Neighborhoods: []string{"שפרינצק"},
		Description:   "תוכנית אב שאושרה לאחרונה",
	},
}

// SingleFamilyMaxAddition is the only allowance for a single-family home:
// a seismic-strengthening addition, protected room included.
const SingleFamilyMaxAddition = 25.0

// Contains reports whether gush falls inside the zone.
func (z ExclusionZone) Contains(gush int, street string) bool {
	for _, g := range z.GushNumbers {
		if g == gush {
			return true
		}
	}
	if z.GushRange[1] > 0 && gush >= z.GushRange[0] && gush <= z.GushRange[1] {
		return true
	}
	for _, g := range z.AdditionalGush {
		if g == gush {
			return true
		}
	}
	if street != "" {
		for _, s := range z.Streets {
			if strings.Contains(street, s) {
				return true
			}
		}
	}
	return false
}
