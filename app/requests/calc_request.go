package requests

import (
	"fmt"
	"math"

	"github.com/rights-calculator/app/models"
	"github.com/rights-calculator/internal/search"
)

// CalcOptions carries per-request toggles and overrides.
type CalcOptions struct {
	ManualDistrictID     int      `json:"manual_district_id"`
	ManualSubAreaID      int      `json:"manual_sub_area_id"`
	EstimatedValuePerSqm *float64 `json:"estimated_value_per_sqm"`
	UseCache             *bool    `json:"use_cache"`
	Archive              bool     `json:"archive"`
}

// CalculateRequest is the body of POST /api/v1/calculations.
type CalculateRequest struct {
	Longitude float64              `json:"longitude" binding:"required"`
	Latitude  float64              `json:"latitude" binding:"required"`
	Gush      int                  `json:"gush"`
	Helka     int                  `json:"helka"`
	Building  models.BuildingInput `json:"building" binding:"required"`
	Options   CalcOptions          `json:"options"`
}

// Validate checks everything gin's binding tags cannot express.
func (r *CalculateRequest) Validate() error {
	if math.IsNaN(r.Longitude) || math.IsInf(r.Longitude, 0) ||
		math.IsNaN(r.Latitude) || math.IsInf(r.Latitude, 0) {
		return fmt.Errorf("coordinates must be finite numbers")
	}
	if r.Gush < 0 || r.Helka < 0 {
		return fmt.Errorf("gush and helka cannot be negative")
	}

	b := r.Building
	if b.ExistingContour <= 0 {
		return fmt.Errorf("existing_contour must be positive")
	}
	if b.ExistingFloors <= 0 {
		return fmt.Errorf("existing_floors must be positive")
	}
	if b.TotalExistingUnits <= 0 {
		return fmt.Errorf("total_existing_units must be positive")
	}
	if b.AdditionalFloors < 0 {
		return fmt.Errorf("additional_floors cannot be negative")
	}
	if b.PilotisArea < 0 {
		return fmt.Errorf("pilotis_area cannot be negative")
	}
	if b.PlotArea < 0 {
		return fmt.Errorf("plot_area cannot be negative")
	}
	if b.BuildingPercentage < 0 || b.BuildingPercentage > 1 {
		return fmt.Errorf("building_percentage must be between 0 and 1")
	}
	if b.DensityPerDunam != nil && *b.DensityPerDunam <= 0 {
		return fmt.Errorf("density_per_dunam must be positive when provided")
	}
	if b.MamadActualSize != nil && *b.MamadActualSize <= 0 {
		return fmt.Errorf("mamad_actual_size must be positive when provided")
	}
	if r.Options.EstimatedValuePerSqm != nil && *r.Options.EstimatedValuePerSqm < 0 {
		return fmt.Errorf("estimated_value_per_sqm cannot be negative")
	}
	return nil
}

// UseCache defaults to true when the caller does not say otherwise.
func (r *CalculateRequest) UseCache() bool {
	if r.Options.UseCache == nil {
		return true
	}
	return *r.Options.UseCache
}

// ParcelRequest is the query form for GET /api/v1/parcels.
type ParcelRequest struct {
	Longitude float64 `form:"longitude" binding:"required"`
	Latitude  float64 `form:"latitude" binding:"required"`
	Gush      int     `form:"gush"`
	Helka     int     `form:"helka"`
	UseCache  bool    `form:"use_cache,default=true"`
}

// SuggestRequest is the query form for neighborhood autocomplete. A
// district_id restricts matches to that district's neighborhoods.
type SuggestRequest struct {
	Query      string `form:"q" binding:"required,min=2"`
	Limit      int    `form:"limit,default=10"`
	DistrictID int    `form:"district_id"`
}

// SeedNeighborhoodsRequest is the admin gazetteer-seeding body.
type SeedNeighborhoodsRequest struct {
	Data           []search.NeighborhoodDoc `json:"data" binding:"required,min=1"`
	RebuildIndexes bool                     `json:"rebuild_indexes"`
}

// ExportRequest is the query form for admin data export.
type ExportRequest struct {
	Collection string `form:"collection" binding:"required"`
	Limit      int    `form:"limit,default=100"`
}
