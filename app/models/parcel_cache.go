package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParcelCache is the persistent cache entry for one enriched parcel. The
// fingerprint is a hash of the cache key so lookups never depend on key
// formatting. RulesVersion records which rule tables were current when the
// entry was written; entries from older versions are invalidated wholesale.
type ParcelCache struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Fingerprint string             `bson:"fingerprint" json:"fingerprint"`
	Gush        int                `bson:"gush" json:"gush"`
	Helka       int                `bson:"helka" json:"helka"`

	GeoData ParcelGeoData `bson:"geo_data" json:"geo_data"`

	RulesVersion     string `bson:"rules_version" json:"rules_version"`
	ManuallyVerified bool   `bson:"manually_verified" json:"manually_verified"`

	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	LastAccessed time.Time `bson:"last_accessed" json:"last_accessed"`
	AccessCount  int64     `bson:"access_count" json:"access_count"`
}
