// Package external holds clients for the municipal GIS collaborators.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/rights-calculator/app/models"
)

// GovMapClient fetches parcel attributes from the GovMap/GIS gateway.
type GovMapClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewGovMapClient creates a GovMap client with the given request timeout.
func NewGovMapClient(baseURL string, timeout time.Duration, logger *zap.Logger) *GovMapClient {
	return &GovMapClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// govmapParcel mirrors the gateway payload. Every attribute is optional;
// missing fields decode to their zero value.
type govmapParcel struct {
	Gush         int     `json:"gush"`
	Helka        int     `json:"helka"`
	PlotArea     float64 `json:"plot_area"`
	Neighborhood string  `json:"neighborhood"`
	Quarter      string  `json:"quarter"`
	SubQuarter   string  `json:"sub_quarter"`
	ZoningType   string  `json:"zoning_type"`
	StreetName   string  `json:"street_name"`

	Conservation bool `json:"conservation"`
	Preservation bool `json:"preservation"`
	Archaeology  bool `json:"archaeology"`
	UnescoCore   bool `json:"unesco_core"`
	UnescoBuffer bool `json:"unesco_buffer"`
}

// Enrich resolves the parcel under the given coordinate. Gush/helka are
// optional hints (0 = unknown) that the gateway uses to disambiguate
// boundary cases. Non-finite coordinates are rejected here so the
// calculation core never sees them.
func (gc *GovMapClient) Enrich(ctx context.Context, longitude, latitude float64, gush, helka int) (*models.ParcelGeoData, error) {
	if !isFinite(longitude) || !isFinite(latitude) {
		return nil, fmt.Errorf("non-finite coordinates: lon=%v lat=%v", longitude, latitude)
	}

	q := url.Values{}
	q.Set("lon", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	if gush > 0 {
		q.Set("gush", strconv.Itoa(gush))
	}
	if helka > 0 {
		q.Set("helka", strconv.Itoa(helka))
	}

	reqURL := gc.baseURL + "/api/parcel?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := gc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("govmap request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("govmap returned status %d", resp.StatusCode)
	}

	var parcel govmapParcel
	if err := json.NewDecoder(resp.Body).Decode(&parcel); err != nil {
		return nil, fmt.Errorf("decoding govmap response: %w", err)
	}

	if parcel.Gush == 0 {
		parcel.Gush = gush
	}
	if parcel.Helka == 0 {
		parcel.Helka = helka
	}

	geo := &models.ParcelGeoData{
		ParcelID:     models.ParcelID{Gush: parcel.Gush, Helka: parcel.Helka},
		PlotArea:     parcel.PlotArea,
		Neighborhood: parcel.Neighborhood,
		Quarter:      parcel.Quarter,
		SubQuarter:   parcel.SubQuarter,
		ZoningType:   parcel.ZoningType,
		StreetName:   parcel.StreetName,

		IsConservationBuilding: parcel.Conservation,
		IsInPreservationArea:   parcel.Preservation,
		IsArchaeologicalSite:   parcel.Archaeology,
		IsUnescoCore:           parcel.UnescoCore,
		IsUnescoBuffer:         parcel.UnescoBuffer,
	}

	gc.logger.Debug("govmap parcel resolved",
		zap.Int("gush", geo.ParcelID.Gush),
		zap.Int("helka", geo.ParcelID.Helka),
		zap.String("neighborhood", geo.Neighborhood))

	return geo, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
