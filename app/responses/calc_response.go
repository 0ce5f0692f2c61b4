package responses

import (
	"time"

	"github.com/rights-calculator/app/models"
	"github.com/rights-calculator/internal/search"
)

// CalculateResponse wraps a full calculation report with request metadata.
type CalculateResponse struct {
	Report           *models.EfesReport `json:"report"`
	ReportID         string             `json:"report_id,omitempty"`
	ProcessingTimeMs int64              `json:"processing_time_ms"`
	CacheHit         bool               `json:"cache_hit"`
	RulesVersion     string             `json:"rules_version"`
}

// ParcelResponse returns enrichment data without running a calculation.
type ParcelResponse struct {
	GeoData          *models.ParcelGeoData `json:"geo_data"`
	CacheHit         bool                  `json:"cache_hit"`
	ProcessingTimeMs int64                 `json:"processing_time_ms"`
}

// SuggestResponse lists ranked neighborhood suggestions for a query.
type SuggestResponse struct {
	Query       string              `json:"query"`
	Suggestions []search.Suggestion `json:"suggestions"`
	Count       int                 `json:"count"`
}

// DistrictInfo is a flattened district row for the listing endpoint.
type DistrictInfo struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Neighborhoods []string `json:"neighborhoods"`
	SubAreaCount  int      `json:"sub_area_count"`
	Exempt        bool     `json:"exempt"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse is the uniform success envelope for operations that
// return no domain body.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// HealthCheckResponse reports process and dependency health.
type HealthCheckResponse struct {
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	Uptime       string            `json:"uptime"`
	RulesVersion string            `json:"rules_version"`
	Services     map[string]string `json:"services"`
}

// NewErrorResponse creates an error envelope.
func NewErrorResponse(err string, details string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   err,
		Details: details,
	}
}

// NewSuccessResponse creates a success envelope.
func NewSuccessResponse(message string, data interface{}) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}
