package models

// FilterStatus is the outcome of the exclusion filter pipeline.
type FilterStatus string

const (
	StatusClear      FilterStatus = "CLEAR"
	StatusBlocked    FilterStatus = "BLOCKED"
	StatusLimited    FilterStatus = "LIMITED"
	StatusRedirected FilterStatus = "REDIRECTED"
)

// FilterResult gates which calculation tracks may run for a parcel. Exactly
// one status holds; the three allow flags are modeled independently even
// though current rules always set them uniformly, to leave room for
// per-track divergence.
type FilterResult struct {
	Status  FilterStatus `json:"status"`
	Reason  string       `json:"reason"`
	Details string       `json:"details"`

	AllowTama38  bool `json:"allow_tama38"`
	AllowShaked  bool `json:"allow_shaked"`
	AllowHfp2666 bool `json:"allow_hfp2666"`

	MaxAddition  *float64 `json:"max_addition,omitempty"`  // LIMITED only, m²
	RedirectPlan *string  `json:"redirect_plan,omitempty"` // REDIRECTED only
}
