// Package engine implements the regulatory calculation core: the exclusion
// filter pipeline and the three entitlement tracks (TAMA 38, Shaked,
// HFP/2666) with the inclusive-housing overlay. Everything here is a pure
// function of its inputs; "not computable" is a nil field, never an error.
package engine

import (
	"fmt"

	"github.com/rights-calculator/app/models"
	"github.com/rights-calculator/internal/rules"
)

// RunFilterPipeline evaluates the eligibility checks in fixed priority
// order, most restrictive first, and returns on the first non-CLEAR result.
// Unknown data never fails the pipeline: missing attributes simply leave
// their check CLEAR.
func RunFilterPipeline(geo models.ParcelGeoData, input models.BuildingInput) models.FilterResult {
	checks := []func(models.ParcelGeoData, models.BuildingInput) models.FilterResult{
		checkConservationBuilding,
		checkExclusionZone,
		checkMasterPlanArea,
		checkSingleFamilyHome,
		checkExistingTama38,
	}

	for _, check := range checks {
		if result := check(geo, input); result.Status != models.StatusClear {
			return result
		}
	}
	return clearResult()
}

// Legal protection status trumps all other checks.
func checkConservationBuilding(geo models.ParcelGeoData, _ models.BuildingInput) models.FilterResult {
	if !geo.IsConservationBuilding {
		return clearResult()
	}
	return models.FilterResult{
		Status:  models.StatusBlocked,
		Reason:  "מבנה לשימור",
		Details: "המבנה מסווג כמבנה לשימור. תמ\"א 38 וחפ/2666 אינם חלים על מבנים לשימור. נדרש אישור מחלקת שימור.",
	}
}

func checkExclusionZone(geo models.ParcelGeoData, _ models.BuildingInput) models.FilterResult {
	for _, zone := range rules.ExclusionZones {
		if zone.Contains(geo.ParcelID.Gush, geo.StreetName) {
			maxAddition := zone.MaxAddition
			return models.FilterResult{
				Status: models.StatusLimited,
				Reason: "אזור החרגה: " + zone.Name,
				Details: fmt.Sprintf("%s. תוספת מקסימלית: %.0f מ\"ר (ממ\"ד בלבד) ללא דירות יזם חדשות.",
					zone.Reason, maxAddition),
				MaxAddition: &maxAddition,
			}
		}
	}
	return clearResult()
}

func checkMasterPlanArea(geo models.ParcelGeoData, _ models.BuildingInput) models.FilterResult {
	if geo.Neighborhood == "" {
		return clearResult()
	}
	for _, area := range rules.MasterPlanAreas {
		for _, name := range area.Neighborhoods {
			if containsName(geo.Neighborhood, name) {
				planID := area.PlanID
				return models.FilterResult{
					Status: models.StatusRedirected,
					Reason: "אזור פינוי-בינוי מתחמי: " + area.Name,
					Details: fmt.Sprintf("החלקה נמצאת באזור תוכנית אב %s. %s. חישוב זכויות בודד אינו רלוונטי - הזכויות נקבעות ברמה המתחמית.",
						area.PlanID, area.Description),
					RedirectPlan: &planID,
				}
			}
		}
	}
	return clearResult()
}

func checkSingleFamilyHome(_ models.ParcelGeoData, input models.BuildingInput) models.FilterResult {
	if input.BuildingType != models.BuildingSingleFamily {
		return clearResult()
	}
	maxAddition := rules.SingleFamilyMaxAddition
	return models.FilterResult{
		Status:      models.StatusLimited,
		Reason:      "בית חד-משפחתי (יח\"ד אחת)",
		Details:     "מבנה הכולל יח\"ד אחת בלבד זכאי לתוספת חיזוק סייסמי של 25 מ\"ר בלבד (כולל ממ\"ד). לא יותרו תוספת יח\"ד וקומות.",
		MaxAddition: &maxAddition,
	}
}

func checkExistingTama38(_ models.ParcelGeoData, input models.BuildingInput) models.FilterResult {
	if !input.HasExistingTama38 {
		return clearResult()
	}
	return models.FilterResult{
		Status:  models.StatusBlocked,
		Reason:  "זכויות תמ\"א 38 מומשו",
		Details: "המבנה כבר מימש זכויות בנייה מכוח תמ\"א 38. תוכנית חפ/2666 אינה חלה על מבנים שכבר מימשו זכויות.",
	}
}

func clearResult() models.FilterResult {
	return models.FilterResult{
		Status:       models.StatusClear,
		AllowTama38:  true,
		AllowShaked:  true,
		AllowHfp2666: true,
	}
}
