package models

import "time"

// EfesReport is the combined calculation record for one parcel: the
// enrichment snapshot, the filter verdict, the caller's input, and the three
// track results side by side. Plain data, ready for serialization or
// archival; tracks a filter disabled are nil.
type EfesReport struct {
	ReportID     string        `json:"report_id,omitempty" bson:"report_id,omitempty"`
	RulesVersion string        `json:"rules_version,omitempty" bson:"rules_version,omitempty"`
	ParcelID     ParcelID      `json:"parcel_id" bson:"parcel_id"`
	GeoData      ParcelGeoData `json:"geo_data" bson:"geo_data"`
	FilterResult FilterResult  `json:"filter_result" bson:"filter_result"`
	Input        BuildingInput `json:"input" bson:"input"`

	Tama38  *Tama38Result  `json:"tama38,omitempty" bson:"tama38,omitempty"`
	Shaked  *ShakedResult  `json:"shaked,omitempty" bson:"shaked,omitempty"`
	Hfp2666 *Hfp2666Result `json:"hfp2666,omitempty" bson:"hfp2666,omitempty"`

	GeneratedAt time.Time `json:"generated_at" bson:"generated_at"`
}
