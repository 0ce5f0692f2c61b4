// Package resolver maps a parcel to its governing HFP/2666 district and
// sub-area. District lookup deliberately keeps the substring-containment,
// first-match-wins rule of the municipal tables: upgrading it to exact
// matching would change which parcels resolve where.
package resolver

import (
	"strings"

	"github.com/rights-calculator/app/models"
	"github.com/rights-calculator/internal/normalizer"
	"github.com/rights-calculator/internal/rules"
)

// Resolver resolves districts and sub-areas from parcel attributes.
type Resolver struct {
	normalizer *normalizer.PlaceNameNormalizer
}

func New() *Resolver {
	return &Resolver{normalizer: normalizer.NewPlaceNameNormalizer()}
}

// FindDistrict scans the name-key table in declaration order and returns the
// district of the first key contained in the parcel's neighborhood or
// quarter. Returns nil when nothing matches, leaving district selection to
// the caller.
func (r *Resolver) FindDistrict(geo models.ParcelGeoData) *rules.District {
	neighborhood := r.normalizer.Normalize(geo.Neighborhood)
	quarter := r.normalizer.Normalize(geo.Quarter)
	if neighborhood == "" && quarter == "" {
		return nil
	}

	for _, entry := range rules.DistrictNameKeys {
		key := r.normalizer.Normalize(entry.Key)
		if containsName(neighborhood, key) || containsName(quarter, key) {
			return rules.DistrictByID(entry.DistrictID)
		}
	}
	return nil
}

// ResolveSubArea picks the governing sub-area within a district.
//
// A manual sub-area id wins unconditionally. A single-sub-area district
// resolves to that sub-area. Otherwise sub-areas are scanned in declaration
// order: consolidation and focal-hub conditions are manual-only and skipped,
// unit-count conditions are tested against the existing-unit count, and the
// first match wins. When nothing matches, the default-flagged sub-area (or
// the first declared one) is returned.
func (r *Resolver) ResolveSubArea(d *rules.District, input models.BuildingInput, manualSubAreaID int) *rules.SubArea {
	if d == nil {
		return nil
	}
	if manualSubAreaID != 0 {
		return rules.SubAreaByID(d, manualSubAreaID)
	}
	if len(d.SubAreas) == 1 {
		return &d.SubAreas[0]
	}

	for i := range d.SubAreas {
		sa := &d.SubAreas[i]
		switch cond := sa.Condition.(type) {
		case nil:
			return sa
		case rules.MinUnitsCondition:
			if input.TotalExistingUnits >= cond.Min {
				return sa
			}
		case rules.MaxUnitsCondition:
			if input.TotalExistingUnits <= cond.Max {
				return sa
			}
		case rules.StrengthenOnlyCondition:
			return sa
		case rules.ConsolidationCondition:
			// manual-only
		case rules.FocalHubCondition:
			// manual-only
		}
	}

	for i := range d.SubAreas {
		if d.SubAreas[i].Default {
			return &d.SubAreas[i]
		}
	}
	return &d.SubAreas[0]
}

func containsName(haystack, needle string) bool {
	return haystack != "" && needle != "" && strings.Contains(haystack, needle)
}
