package config

import (
	"fmt"
	"time"

	"github.com/obsnight/transitplan/core/filter"
)

// windowLayouts are the accepted time-window formats.
var windowLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// PlannerConfig is the file representation of the admission options.
// Window bounds are strings here; FilterConfig parses them so malformed
// values fail before any row is processed.
type PlannerConfig struct {
	Magnitude            filter.Range `json:"magnitude" yaml:"magnitude"`
	AirMassCap           bool         `json:"air_mass_cap" yaml:"air_mass_cap"`
	SetupTime            bool         `json:"setup_time" yaml:"setup_time"`
	Period               filter.Range `json:"period" yaml:"period"`
	TransitDepth         filter.Range `json:"transit_depth" yaml:"transit_depth"`
	MaxIngressAirMass    float64      `json:"max_ingress_air_mass" yaml:"max_ingress_air_mass"`
	MaxEgressAirMass     float64      `json:"max_egress_air_mass" yaml:"max_egress_air_mass"`
	IgnoreMissingAirMass bool         `json:"ignore_missing_air_mass" yaml:"ignore_missing_air_mass"`
	WindowStart          string       `json:"window_start" yaml:"window_start"`
	WindowEnd            string       `json:"window_end" yaml:"window_end"`
}

// SetDefaults applies the conventional survey limits used when a field
// is left unset.
func (c *PlannerConfig) SetDefaults() {
	if !c.Magnitude.Enabled && c.Magnitude.Min == 0 && c.Magnitude.Max == 0 {
		c.Magnitude = filter.Range{Min: 0, Max: 14.5, Enabled: true}
	}
	if !c.TransitDepth.Enabled && c.TransitDepth.Min == 0 && c.TransitDepth.Max == 0 {
		c.TransitDepth = filter.Range{Min: 0, Max: 0.5, Enabled: true}
	}
	if c.MaxIngressAirMass == 0 {
		c.MaxIngressAirMass = 2
	}
	if c.MaxEgressAirMass == 0 {
		c.MaxEgressAirMass = 2
	}
}

// FilterConfig converts to the core admission config, parsing and
// validating the window bounds.
func (c PlannerConfig) FilterConfig() (filter.Config, error) {
	cfg := filter.Config{
		Magnitude:            c.Magnitude,
		AirMassCap:           c.AirMassCap,
		SetupTime:            c.SetupTime,
		Period:               c.Period,
		TransitDepth:         c.TransitDepth,
		MaxIngressAirMass:    c.MaxIngressAirMass,
		MaxEgressAirMass:     c.MaxEgressAirMass,
		IgnoreMissingAirMass: c.IgnoreMissingAirMass,
	}
	if c.WindowStart != "" {
		t, err := parseWindowTime(c.WindowStart)
		if err != nil {
			return filter.Config{}, fmt.Errorf("window_start: %w", err)
		}
		cfg.WindowStart = &t
	}
	if c.WindowEnd != "" {
		t, err := parseWindowTime(c.WindowEnd)
		if err != nil {
			return filter.Config{}, fmt.Errorf("window_end: %w", err)
		}
		cfg.WindowEnd = &t
	}
	if err := cfg.Validate(); err != nil {
		return filter.Config{}, err
	}
	return cfg, nil
}

func parseWindowTime(s string) (time.Time, error) {
	for _, layout := range windowLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}
