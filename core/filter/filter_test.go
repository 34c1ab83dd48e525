package filter

import (
	"testing"
	"time"

	"github.com/obsnight/transitplan/core/model"
)

var night = time.Date(2024, 10, 9, 0, 0, 0, 0, time.UTC)

// goodEvent passes every check of defaultConfig.
func goodEvent(name string, midHour float64) model.CandidateEvent {
	return model.CandidateEvent{
		Name:           name,
		Duration:       model.Float(2),
		Midpoint:       night.Add(time.Duration(midHour * float64(time.Hour))),
		RA:             model.Float(97.64),
		Dec:            model.Float(29.67),
		Period:         model.Float(1.09),
		TransitDepth:   model.Float(0.014),
		MidAirMass:     model.Float(1.2),
		IngressAirMass: model.Float(1.4),
		EgressAirMass:  model.Float(1.3),
		Magnitude:      model.Float(10.2),
	}
}

func defaultConfig() Config {
	return Config{
		Magnitude:         Range{Min: 0, Max: 14.5, Enabled: true},
		AirMassCap:        true,
		TransitDepth:      Range{Min: 0, Max: 0.5, Enabled: true},
		MaxIngressAirMass: 2,
		MaxEgressAirMass:  2,
	}
}

func allColumns() Columns {
	return Columns{MidAirMass: true, IngressAirMass: true, EgressAirMass: true}
}

func mustPipeline(t *testing.T, cfg Config, cols Columns) *Pipeline {
	t.Helper()
	p, err := New(cfg, cols)
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	return p
}

func runOne(t *testing.T, p *Pipeline, ev model.CandidateEvent) model.RejectedEntry {
	t.Helper()
	res := p.Run([]model.CandidateEvent{ev})
	if len(res.Rejected) != 1 || len(res.Admitted) != 0 {
		t.Fatalf("expected one rejection, got %d admitted %d rejected", len(res.Admitted), len(res.Rejected))
	}
	return res.Rejected[0]
}

func TestAdmitsCleanEvent(t *testing.T) {
	p := mustPipeline(t, defaultConfig(), allColumns())
	res := p.Run([]model.CandidateEvent{goodEvent("a", 22)})
	if len(res.Admitted) != 1 || len(res.Rejected) != 0 {
		t.Fatalf("expected admission, got %+v", res)
	}
	slot := res.Admitted[0]
	if !slot.Start.Before(slot.End) {
		t.Fatalf("slot window inverted")
	}
}

func TestDurationNaNSkipsDerivation(t *testing.T) {
	ev := goodEvent("a", 22)
	ev.Duration = model.OptFloat{}
	// Even with every other field in range the event is cut with no
	// derived times.
	entry := runOne(t, mustPipeline(t, defaultConfig(), allColumns()), ev)
	if entry.Cause != model.CauseDurationNaN {
		t.Fatalf("cause %q", entry.Cause)
	}
	if entry.Slot != nil {
		t.Fatalf("expected nil slot, got %+v", entry.Slot)
	}
}

func TestCauseStrings(t *testing.T) {
	if got := model.CauseDurationNaN.String(); got != "Duration is NaN" {
		t.Fatalf("duration cause %q", got)
	}
	if got := model.CauseOverlap.String(); got != "Overlapping with another target" {
		t.Fatalf("overlap cause %q", got)
	}
	if got := model.CauseEdgeAirMassMissing.String(); got != "Ingress/Egress air mass data missing" {
		t.Fatalf("missing cause %q", got)
	}
}

func TestPeriodLimit(t *testing.T) {
	cfg := defaultConfig()
	cfg.Period = Range{Min: 1, Max: 10, Enabled: true}
	ev := goodEvent("a", 22)
	ev.Period = model.Float(42)
	entry := runOne(t, mustPipeline(t, cfg, allColumns()), ev)
	if entry.Cause != model.CausePeriodLimit {
		t.Fatalf("cause %q", entry.Cause)
	}
	if entry.Slot != nil {
		t.Fatalf("period check precedes window derivation")
	}
}

func TestTimeWindowCauses(t *testing.T) {
	cfg := defaultConfig()
	ws := night.Add(20 * time.Hour)
	we := night.Add(30 * time.Hour)
	cfg.WindowStart = &ws
	cfg.WindowEnd = &we

	early := goodEvent("early", 19)
	entry := runOne(t, mustPipeline(t, cfg, allColumns()), early)
	if entry.Cause != model.CauseBeforeWindow {
		t.Fatalf("cause %q", entry.Cause)
	}
	if entry.Slot == nil {
		t.Fatalf("window rejects keep derived times")
	}

	late := goodEvent("late", 30)
	entry = runOne(t, mustPipeline(t, cfg, allColumns()), late)
	if entry.Cause != model.CauseAfterWindow {
		t.Fatalf("cause %q", entry.Cause)
	}
}

func TestFirstMatchWins(t *testing.T) {
	// Fails both the magnitude and the depth limits: the magnitude check
	// runs first, so it owns the cause.
	ev := goodEvent("a", 22)
	ev.Magnitude = model.Float(19)
	ev.TransitDepth = model.Float(0.9)
	entry := runOne(t, mustPipeline(t, defaultConfig(), allColumns()), ev)
	if entry.Cause != model.CauseMagnitudeLimit {
		t.Fatalf("cause %q", entry.Cause)
	}
}

func TestMidAirMassCap(t *testing.T) {
	ev := goodEvent("a", 22)
	ev.MidAirMass = model.Float(2.4)
	entry := runOne(t, mustPipeline(t, defaultConfig(), allColumns()), ev)
	if entry.Cause != model.CauseAirMassLimit {
		t.Fatalf("cause %q", entry.Cause)
	}

	// Cap disabled: the same event is admitted.
	cfg := defaultConfig()
	cfg.AirMassCap = false
	res := mustPipeline(t, cfg, allColumns()).Run([]model.CandidateEvent{ev})
	if len(res.Admitted) != 1 {
		t.Fatalf("expected admission with cap disabled")
	}
}

func TestDepthLimit(t *testing.T) {
	ev := goodEvent("a", 22)
	ev.TransitDepth = model.Float(0.75)
	entry := runOne(t, mustPipeline(t, defaultConfig(), allColumns()), ev)
	if entry.Cause != model.CauseDepthLimit {
		t.Fatalf("cause %q", entry.Cause)
	}
}

func TestEdgeAirMassNaNVsMissing(t *testing.T) {
	// Both columns present, egress value NaN.
	ev := goodEvent("a", 22)
	ev.EgressAirMass = model.OptFloat{}
	entry := runOne(t, mustPipeline(t, defaultConfig(), allColumns()), ev)
	if entry.Cause != model.CauseEdgeAirMassNaN {
		t.Fatalf("cause %q", entry.Cause)
	}

	// Ingress column entirely absent, egress present and admissible: the
	// cause must report missing data, not a NaN value.
	cols := allColumns()
	cols.IngressAirMass = false
	ev = goodEvent("a", 22)
	ev.IngressAirMass = model.OptFloat{}
	entry = runOne(t, mustPipeline(t, defaultConfig(), cols), ev)
	if entry.Cause != model.CauseEdgeAirMassMissing {
		t.Fatalf("cause %q", entry.Cause)
	}
}

func TestIgnoreMissingAirMass(t *testing.T) {
	cfg := defaultConfig()
	cfg.IgnoreMissingAirMass = true
	cols := allColumns()
	cols.IngressAirMass = false
	cols.EgressAirMass = false
	ev := goodEvent("a", 22)
	ev.IngressAirMass = model.OptFloat{}
	ev.EgressAirMass = model.OptFloat{}
	res := mustPipeline(t, cfg, cols).Run([]model.CandidateEvent{ev})
	if len(res.Admitted) != 1 {
		t.Fatalf("expected admission when missing air mass is ignored")
	}
}

func TestEdgeAirMassLimit(t *testing.T) {
	ev := goodEvent("a", 22)
	ev.EgressAirMass = model.Float(2.6)
	entry := runOne(t, mustPipeline(t, defaultConfig(), allColumns()), ev)
	if entry.Cause != model.CauseEdgeAirMassLimit {
		t.Fatalf("cause %q", entry.Cause)
	}
}

func TestPartitionComplete(t *testing.T) {
	events := []model.CandidateEvent{goodEvent("a", 20), goodEvent("b", 23)}
	bad := goodEvent("c", 26)
	bad.Magnitude = model.Float(20)
	events = append(events, bad)
	res := mustPipeline(t, defaultConfig(), allColumns()).Run(events)
	if len(res.Admitted)+len(res.Rejected) != len(events) {
		t.Fatalf("partition lost events: %d + %d != %d", len(res.Admitted), len(res.Rejected), len(events))
	}
	if res.Admitted[0].Event.Name != "a" || res.Admitted[1].Event.Name != "b" {
		t.Fatalf("admitted order not preserved")
	}
}

func TestBufferingDoesNotChangeNonWindowAdmission(t *testing.T) {
	events := []model.CandidateEvent{goodEvent("a", 20), goodEvent("b", 23)}
	bad := goodEvent("c", 26)
	bad.TransitDepth = model.Float(0.9)
	events = append(events, bad)

	cfg := defaultConfig()
	plain := mustPipeline(t, cfg, allColumns()).Run(events)
	cfg.SetupTime = true
	buffered := mustPipeline(t, cfg, allColumns()).Run(events)

	if len(plain.Admitted) != len(buffered.Admitted) {
		t.Fatalf("buffering changed admissions: %d vs %d", len(plain.Admitted), len(buffered.Admitted))
	}
	for i := range plain.Admitted {
		p, b := plain.Admitted[i], buffered.Admitted[i]
		if got := p.Start.Sub(b.Start); got != 30*time.Minute {
			t.Fatalf("start shift %v", got)
		}
		if got := b.End.Sub(p.End); got != 30*time.Minute {
			t.Fatalf("end shift %v", got)
		}
	}
}

func TestConfigValidation(t *testing.T) {
	cfg := defaultConfig()
	cfg.Magnitude = Range{Min: 10, Max: 2, Enabled: true}
	if _, err := New(cfg, allColumns()); err == nil {
		t.Fatalf("expected error for inverted magnitude range")
	}

	cfg = defaultConfig()
	ws := night.Add(10 * time.Hour)
	we := night.Add(2 * time.Hour)
	cfg.WindowStart = &ws
	cfg.WindowEnd = &we
	if _, err := New(cfg, allColumns()); err == nil {
		t.Fatalf("expected error for inverted window")
	}

	cfg = defaultConfig()
	cfg.MaxIngressAirMass = -1
	if _, err := New(cfg, allColumns()); err == nil {
		t.Fatalf("expected error for negative air mass cap")
	}

	// A disabled range may be inverted without failing validation.
	cfg = defaultConfig()
	cfg.Period = Range{Min: 10, Max: 1}
	if _, err := New(cfg, allColumns()); err != nil {
		t.Fatalf("disabled range should not be validated: %v", err)
	}
}
