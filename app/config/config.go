package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// CalcDefaults are the figures substituted when the caller leaves an input
// empty. They mirror the policy-document defaults.
type CalcDefaults struct {
	PilotisArea        float64 `yaml:"pilotis_area" json:"pilotis_area"`
	AvgApartmentSize   float64 `yaml:"avg_apartment_size" json:"avg_apartment_size"`
	BuildingPercentage float64 `yaml:"building_percentage" json:"building_percentage"`
	ReturnPerUnit      float64 `yaml:"return_per_unit" json:"return_per_unit"`
	MamadReturnPerUnit float64 `yaml:"mamad_return_per_unit" json:"mamad_return_per_unit"`
}

// FuzzyWeights tune the gazetteer suggestion re-rank.
type FuzzyWeights struct {
	JWWeight  float64 `yaml:"jw_weight" json:"jw_weight"`
	LevWeight float64 `yaml:"lev_weight" json:"lev_weight"`
	MinScore  float64 `yaml:"min_score" json:"min_score"`
}

// GovMapCfg configures the GIS enrichment gateway.
type GovMapCfg struct {
	BaseURL   string `yaml:"base_url" json:"base_url"`
	TimeoutMs int    `yaml:"timeout_ms" json:"timeout_ms"`
}

// CalcCfg is the application configuration for the rights calculator.
type CalcCfg struct {
	RulesVersion string       `yaml:"rules_version" json:"rules_version"`
	Defaults     CalcDefaults `yaml:"defaults" json:"defaults"`
	Fuzzy        FuzzyWeights `yaml:"fuzzy" json:"fuzzy"`
	GovMap       GovMapCfg    `yaml:"govmap" json:"govmap"`
}

var C CalcCfg

// Load reads the yaml configuration and applies environment overrides.
func Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, &C); err != nil {
		return err
	}
	applyDefaults()

	// ENV overrides
	if url := os.Getenv("GOVMAP_URL"); url != "" {
		C.GovMap.BaseURL = url
	}
	if v := os.Getenv("RULES_VERSION"); v != "" {
		C.RulesVersion = v
	}
	return nil
}

// Default resets the configuration to the built-in defaults. Used when no
// configuration file is present.
func Default() {
	C = CalcCfg{}
	applyDefaults()
}

func applyDefaults() {
	if C.RulesVersion == "" {
		C.RulesVersion = "2666-5"
	}
	if C.Defaults.PilotisArea == 0 {
		C.Defaults.PilotisArea = 70
	}
	if C.Defaults.AvgApartmentSize == 0 {
		C.Defaults.AvgApartmentSize = 85
	}
	if C.Defaults.BuildingPercentage == 0 {
		C.Defaults.BuildingPercentage = 0.60
	}
	if C.Defaults.ReturnPerUnit == 0 {
		C.Defaults.ReturnPerUnit = 12
	}
	if C.Defaults.MamadReturnPerUnit == 0 {
		C.Defaults.MamadReturnPerUnit = 12
	}
	if C.Fuzzy.JWWeight == 0 && C.Fuzzy.LevWeight == 0 {
		C.Fuzzy.JWWeight, C.Fuzzy.LevWeight = 0.6, 0.4
	}
	if C.GovMap.TimeoutMs == 0 {
		C.GovMap.TimeoutMs = 5000
	}
}

// GovMapTimeout returns the enrichment request timeout.
func GovMapTimeout() time.Duration { return time.Duration(C.GovMap.TimeoutMs) * time.Millisecond }
