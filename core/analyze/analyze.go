package analyze

import (
	"gonum.org/v1/gonum/stat"

	"github.com/obsnight/transitplan/core/model"
)

// Summary describes a planned night at a glance.
type Summary struct {
	Targets       int     // distinct target names in the schedule
	SpanHours     float64 // first transit start to last transit end
	MeanAirMass   float64
	StdAirMass    float64
	MeanMagnitude float64
	StdMagnitude  float64
}

// Summarize computes observation statistics over the planned schedule.
// Missing per-event values are excluded from the means; a schedule with
// fewer than two contributing values reports a zero spread.
func Summarize(s model.Schedule) Summary {
	sum := Summary{}
	if len(s) == 0 {
		return sum
	}
	seen := make(map[string]struct{}, len(s))
	var airMass, magnitude []float64
	for _, slot := range s {
		seen[slot.Event.Name] = struct{}{}
		if slot.Event.MidAirMass.Valid {
			airMass = append(airMass, slot.Event.MidAirMass.Value)
		}
		if slot.Event.Magnitude.Valid {
			magnitude = append(magnitude, slot.Event.Magnitude.Value)
		}
	}
	sum.Targets = len(seen)
	first, last := s.Span()
	sum.SpanHours = last.Sub(first).Hours()
	sum.MeanAirMass, sum.StdAirMass = meanStd(airMass)
	sum.MeanMagnitude, sum.StdMagnitude = meanStd(magnitude)
	return sum
}

func meanStd(vals []float64) (float64, float64) {
	switch len(vals) {
	case 0:
		return 0, 0
	case 1:
		return vals[0], 0
	}
	return stat.MeanStdDev(vals, nil)
}
