package filter

import (
	"fmt"
	"time"
)

// MidAirMassCap is the fixed mid-transit air mass ceiling applied when
// the boolean cap is enabled.
const MidAirMassCap = 2.0

// Range bounds an inclusive numeric interval. A disabled range admits
// every value.
type Range struct {
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	Enabled bool    `json:"enabled" yaml:"enabled"`
}

// Validate checks the range bounds; name identifies the offending field
// in the returned error.
func (r Range) Validate(name string) error {
	if r.Enabled && r.Min > r.Max {
		return fmt.Errorf("%s: min %g greater than max %g", name, r.Min, r.Max)
	}
	return nil
}

// outside reports whether a known value v falls outside an enabled
// range. Missing values never fail a range check: there is no evidence
// to reject on.
func (r Range) outside(v float64, valid bool) bool {
	return r.Enabled && valid && (v < r.Min || v > r.Max)
}

// Config enumerates the admission options. All filters are independently
// togglable and there is no ambient configuration state.
type Config struct {
	Magnitude            Range      `json:"magnitude" yaml:"magnitude"`
	AirMassCap           bool       `json:"air_mass_cap" yaml:"air_mass_cap"`
	SetupTime            bool       `json:"setup_time" yaml:"setup_time"`
	Period               Range      `json:"period" yaml:"period"`
	TransitDepth         Range      `json:"transit_depth" yaml:"transit_depth"`
	MaxIngressAirMass    float64    `json:"max_ingress_air_mass" yaml:"max_ingress_air_mass"`
	MaxEgressAirMass     float64    `json:"max_egress_air_mass" yaml:"max_egress_air_mass"`
	IgnoreMissingAirMass bool       `json:"ignore_missing_air_mass" yaml:"ignore_missing_air_mass"`
	WindowStart          *time.Time `json:"window_start" yaml:"window_start"`
	WindowEnd            *time.Time `json:"window_end" yaml:"window_end"`
}

// Validate fails fast on contract violations so a caller bug cannot
// silently produce an always-empty schedule.
func (c Config) Validate() error {
	if err := c.Magnitude.Validate("magnitude"); err != nil {
		return err
	}
	if err := c.Period.Validate("period"); err != nil {
		return err
	}
	if err := c.TransitDepth.Validate("transit_depth"); err != nil {
		return err
	}
	if c.MaxIngressAirMass < 0 {
		return fmt.Errorf("max_ingress_air_mass must not be negative")
	}
	if c.MaxEgressAirMass < 0 {
		return fmt.Errorf("max_egress_air_mass must not be negative")
	}
	if c.WindowStart != nil && c.WindowEnd != nil && c.WindowStart.After(*c.WindowEnd) {
		return fmt.Errorf("time window starts after it ends")
	}
	return nil
}
