package engine

import (
	"math"

	"github.com/rights-calculator/app/models"
	"github.com/rights-calculator/internal/resolver"
	"github.com/rights-calculator/internal/rules"
)

var districtResolver = resolver.New()

// CalculateHfp2666 computes the HFP/2666 district-plan entitlement. Manual
// district and sub-area ids win over automatic resolution; zero means no
// override. Unlike TAMA 38 and Shaked, the floor and density figures here
// are hard zoning ceilings, so the final entitlement is the minimum of the
// raw figure and both caps.
func CalculateHfp2666(input models.BuildingInput, geo models.ParcelGeoData, manualDistrictID, manualSubAreaID int) models.Hfp2666Result {
	plotArea := input.EffectivePlotArea(geo)
	rightsHolders := input.RightsHolders()

	res := models.Hfp2666Result{
		DistrictDataAvailable:    true,
		PlotArea:                 plotArea,
		MinApartmentSize:         avgApartmentSize(input),
		RightsHolders:            rightsHolders,
		ReturnedPrimaryToTenants: returnedPrimaryToTenants(input),
		ReturnedMamadToTenants:   returnedMamadToTenants(input),
	}

	// The Building-H rule is citywide: it bypasses district resolution and
	// the density cap entirely.
	if input.IsBuildingH {
		res.BuildingHApplied = true
		existingGross := input.ExistingContour * float64(input.ExistingFloors)
		raw := math.Round(existingGross * rules.BuildingHMultiplier)
		maxByFloors := math.Round(float64(rules.BuildingHMaxFloors) * (plotArea * rules.Hfp2666Coverage))
		final := math.Min(raw, maxByFloors)

		res.RawPrimaryArea = &raw
		res.MaxByFloors = &maxByFloors
		fillHfp2666Derived(&res, input, geo, final, rightsHolders)
		return res
	}

	var district *rules.District
	if manualDistrictID != 0 {
		district = rules.DistrictByID(manualDistrictID)
	} else {
		district = districtResolver.FindDistrict(geo)
	}
	if district != nil {
		res.District = &models.DistrictRef{ID: district.ID, Name: district.Name}
	}

	subArea := districtResolver.ResolveSubArea(district, input, manualSubAreaID)
	if district == nil || subArea == nil {
		res.DistrictDataAvailable = false
		return res
	}

	if _, ok := subArea.Condition.(rules.StrengthenOnlyCondition); ok {
		res.SubArea = &models.SubAreaRef{
			ID:               subArea.ID,
			Name:             subArea.Name,
			Multiplier:       subArea.Multiplier,
			MaxFloors:        subArea.MaxFloors,
			MaxUnitsPerDunam: subArea.MaxUnitsPerDunam,
		}
		res.StrengthenOnly = true
		addition := float64(input.TotalExistingUnits) * rules.StrengthenAdditionPerUnit
		res.StrengthenAddition = &addition
		return res
	}

	multiplier := subArea.Multiplier
	maxFloors := subArea.MaxFloors
	density := subArea.MaxUnitsPerDunam

	// The small-building override only tightens: an otherwise more generous
	// sub-area rule is clamped down, never raised.
	if input.TotalExistingUnits > 0 &&
		input.TotalExistingUnits <= rules.SmallBuildingMaxUnits &&
		!rules.SmallBuildingExemptDistricts[district.ID] {
		res.SmallBuildingApplied = true
		multiplier = math.Min(multiplier, rules.SmallBuildingMultiplierCap)
		if maxFloors > rules.SmallBuildingMaxFloorsCap {
			maxFloors = rules.SmallBuildingMaxFloorsCap
		}
		density = math.Min(density, rules.SmallBuildingDensityCap)
	}

	res.SubArea = &models.SubAreaRef{
		ID:               subArea.ID,
		Name:             subArea.Name,
		Multiplier:       multiplier,
		MaxFloors:        maxFloors,
		MaxUnitsPerDunam: density,
	}
	res.Multiplier = &multiplier

	raw := math.Round(plotArea * multiplier)
	maxByFloors := math.Round(float64(maxFloors) * (plotArea * rules.Hfp2666Coverage))
	maxByDensity := math.Floor(plotArea/1000*density) * res.MinApartmentSize
	final := math.Min(raw, math.Min(maxByFloors, maxByDensity))

	res.RawPrimaryArea = &raw
	res.MaxByFloors = &maxByFloors
	res.MaxByDensity = &maxByDensity
	fillHfp2666Derived(&res, input, geo, final, rightsHolders)
	return res
}

// fillHfp2666Derived computes the unit, service-area and split figures for
// the two branches that produce a final entitlement (normal and Building-H).
func fillHfp2666Derived(res *models.Hfp2666Result, input models.BuildingInput, geo models.ParcelGeoData, final float64, rightsHolders int) {
	res.FinalPrimaryArea = &final

	unitsLow := int(math.Floor(final / res.MinApartmentSize))
	unitsHigh := int(math.Ceil(final / res.MinApartmentSize))
	res.PotentialUnitsLow = &unitsLow
	res.PotentialUnitsHigh = &unitsHigh

	developerLow := unitsLow - rightsHolders
	developerHigh := unitsHigh - rightsHolders
	res.DeveloperUnitsLow = &developerLow
	res.DeveloperUnitsHigh = &developerHigh

	totalMamad := float64(unitsHigh) * rules.MamadPerUnit
	totalBalcony := float64(unitsHigh) * rules.Hfp2666BalconyPerUnit
	res.TotalMamad = &totalMamad
	res.TotalBalcony = &totalBalcony

	developerPrimary := final - res.ReturnedPrimaryToTenants
	developerService := (totalMamad + totalBalcony) - res.ReturnedMamadToTenants
	res.DeveloperPrimary = &developerPrimary
	res.DeveloperService = &developerService

	totalPaledelet := final + totalMamad
	developerPaledelet := developerPrimary + (totalMamad - res.ReturnedMamadToTenants)
	res.TotalPaledelet = &totalPaledelet
	res.DeveloperPaledelet = &developerPaledelet

	inclusive := ApplyInclusiveHousing(developerHigh, unitsHigh, geo.Neighborhood)
	res.InclusiveHousing = &inclusive
}
