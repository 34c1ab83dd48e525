package transit

import (
	"math"
	"time"

	"github.com/obsnight/transitplan/core/model"
)

// SetupBuffer is the symmetric pad applied around every transit window
// when setup buffering is enabled. It accounts for instrument pointing
// and calibration before ingress and teardown after egress, and is
// identical for every event in a run.
const SetupBuffer = 30 * time.Minute

// Window returns the unbuffered transit window around midpoint for a
// duration given in hours. A zero duration yields a zero-width window.
func Window(midpoint time.Time, durationHours float64) (time.Time, time.Time) {
	half := time.Duration(durationHours / 2 * float64(time.Hour))
	return midpoint.Add(-half), midpoint.Add(half)
}

// Slot derives both windows for ev. The transit window is the bare
// midpoint±duration/2 interval; the effective window pads it by
// SetupBuffer on each side when setup is true. The second return is
// false when the event has no usable duration, in which case no times
// can be derived.
func Slot(ev model.CandidateEvent, setup bool) (model.ScheduleSlot, bool) {
	if !ev.Duration.Valid || math.IsNaN(ev.Duration.Value) {
		return model.ScheduleSlot{}, false
	}
	ts, te := Window(ev.Midpoint, ev.Duration.Value)
	ss, se := ts, te
	if setup {
		ss = ts.Add(-SetupBuffer)
		se = te.Add(SetupBuffer)
	}
	return model.ScheduleSlot{
		Event:        ev,
		TransitStart: ts,
		TransitEnd:   te,
		Start:        ss,
		End:          se,
	}, true
}
