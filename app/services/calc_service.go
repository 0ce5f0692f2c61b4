package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/rights-calculator/app/config"
	"github.com/rights-calculator/app/models"
	"github.com/rights-calculator/helpers/utils"
	"github.com/rights-calculator/internal/engine"
)

// CalcOverrides carries the caller's manual overrides into a single
// calculation. Every calculation gets its own value; the service holds no
// mutable override state.
type CalcOverrides struct {
	ManualDistrictID     int
	ManualSubAreaID      int
	EstimatedValuePerSqm *float64
}

// CalcService orchestrates a full calculation: geodata resolution, the
// filter pipeline, the three tracks, and report archival.
type CalcService struct {
	geodata   *GeodataService
	reports   *mongo.Collection
	logger    *zap.Logger
	startTime time.Time
}

// NewCalcService creates a CalcService. db may be nil, which disables
// report archival.
func NewCalcService(geodata *GeodataService, db *mongo.Database, logger *zap.Logger) *CalcService {
	cs := &CalcService{
		geodata:   geodata,
		logger:    logger,
		startTime: time.Now(),
	}

	if db != nil {
		cs.reports = db.Collection("efes_reports")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		indexModels := []mongo.IndexModel{
			{
				Keys:    bson.D{bson.E{Key: "report_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys: bson.D{bson.E{Key: "parcel_id.gush", Value: 1}, bson.E{Key: "parcel_id.helka", Value: 1}},
			},
			{
				Keys: bson.D{bson.E{Key: "generated_at", Value: -1}},
			},
		}
		if _, err := cs.reports.Indexes().CreateMany(ctx, indexModels); err != nil {
			logger.Warn("could not create efes_reports indexes", zap.Error(err))
		}
	}

	return cs
}

// Calculate runs the filter pipeline and every permitted track for an
// already-enriched parcel. Pure given its inputs: no I/O, safe to call
// concurrently for different parcels.
func (cs *CalcService) Calculate(input models.BuildingInput, geo models.ParcelGeoData, overrides CalcOverrides) *models.EfesReport {
	input = withConfigDefaults(input)

	report := &models.EfesReport{
		RulesVersion: config.C.RulesVersion,
		ParcelID:     geo.ParcelID,
		GeoData:      geo,
		Input:        input,
		GeneratedAt:  time.Now(),
	}

	report.FilterResult = engine.RunFilterPipeline(geo, input)

	if report.FilterResult.AllowTama38 {
		tama := engine.CalculateTama38(input, geo)
		report.Tama38 = &tama
	}
	if report.FilterResult.AllowShaked {
		value := overrides.EstimatedValuePerSqm
		if value == nil {
			value = input.EstimatedValuePerSqm
		}
		shaked := engine.CalculateShaked(input, geo, value)
		report.Shaked = &shaked
	}
	if report.FilterResult.AllowHfp2666 {
		hfp := engine.CalculateHfp2666(input, geo, overrides.ManualDistrictID, overrides.ManualSubAreaID)
		report.Hfp2666 = &hfp
	}

	return report
}

// CalculateForParcel resolves the parcel's geodata and computes a full
// report. The boolean reports whether the geodata came from the cache.
func (cs *CalcService) CalculateForParcel(ctx context.Context, longitude, latitude float64, gush, helka int, input models.BuildingInput, overrides CalcOverrides, useCache bool) (*models.EfesReport, bool, error) {
	geo, cacheHit, err := cs.geodata.GetParcelGeoData(ctx, longitude, latitude, gush, helka, useCache)
	if err != nil {
		return nil, false, fmt.Errorf("resolving parcel geodata: %w", err)
	}

	report := cs.Calculate(input, *geo, overrides)

	cs.logger.Info("calculation complete",
		zap.Int("gush", geo.ParcelID.Gush),
		zap.Int("helka", geo.ParcelID.Helka),
		zap.String("filter_status", string(report.FilterResult.Status)),
		zap.Bool("geodata_cache_hit", cacheHit))

	return report, cacheHit, nil
}

// ArchiveReport persists a report and returns its assigned id.
func (cs *CalcService) ArchiveReport(ctx context.Context, report *models.EfesReport) (string, error) {
	if cs.reports == nil {
		return "", fmt.Errorf("report archival is disabled")
	}

	report.ReportID = utils.GenerateUUID()

	if _, err := cs.reports.InsertOne(ctx, report); err != nil {
		return "", fmt.Errorf("archiving report: %w", err)
	}

	cs.logger.Info("report archived",
		zap.String("report_id", report.ReportID),
		zap.Int("gush", report.ParcelID.Gush),
		zap.Int("helka", report.ParcelID.Helka))

	return report.ReportID, nil
}

// GetReport fetches an archived report by id.
func (cs *CalcService) GetReport(ctx context.Context, reportID string) (*models.EfesReport, error) {
	if cs.reports == nil {
		return nil, fmt.Errorf("report archival is disabled")
	}

	var report models.EfesReport
	err := cs.reports.FindOne(ctx, bson.M{"report_id": reportID}).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("report %s not found", reportID)
		}
		return nil, fmt.Errorf("fetching report: %w", err)
	}
	return &report, nil
}

// ListReports returns the most recent archived reports for a parcel.
func (cs *CalcService) ListReports(ctx context.Context, gush, helka int, limit int) ([]models.EfesReport, error) {
	if cs.reports == nil {
		return nil, fmt.Errorf("report archival is disabled")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "generated_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := cs.reports.Find(ctx, bson.M{"parcel_id.gush": gush, "parcel_id.helka": helka}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer cursor.Close(ctx)

	var reports []models.EfesReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("decoding reports: %w", err)
	}
	return reports, nil
}

// GetStartTime reports when the service was created, for uptime reporting.
func (cs *CalcService) GetStartTime() time.Time {
	return cs.startTime
}

// withConfigDefaults substitutes the configured defaults for omitted
// building-input fields. A pilotis area of zero means "not declared": the
// policy allowance applies unless the caller declares a figure.
func withConfigDefaults(input models.BuildingInput) models.BuildingInput {
	defaults := config.C.Defaults

	if input.PilotisArea == 0 {
		input.PilotisArea = defaults.PilotisArea
	}
	if input.MinApartmentSize == 0 {
		input.MinApartmentSize = defaults.AvgApartmentSize
	}
	if input.BuildingPercentage == 0 {
		input.BuildingPercentage = defaults.BuildingPercentage
	}
	if input.ReturnPerUnit == 0 {
		input.ReturnPerUnit = defaults.ReturnPerUnit
	}
	if input.MamadReturnPerUnit == 0 {
		input.MamadReturnPerUnit = defaults.MamadReturnPerUnit
	}
	return input
}
