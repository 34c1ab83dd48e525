package filter

import (
	"github.com/obsnight/transitplan/core/model"
	"github.com/obsnight/transitplan/core/transit"
)

// Columns records which air-mass columns the source table provided.
// Column absence is observable: it changes the rejection cause for
// events with no ingress/egress data and is reported once per run by
// the caller, never per row.
type Columns struct {
	MidAirMass     bool
	IngressAirMass bool
	EgressAirMass  bool
}

// Result partitions the input. Admitted keeps the original input order;
// Rejected is in evaluation order. Every input event lands in exactly
// one of the two.
type Result struct {
	Admitted []model.ScheduleSlot
	Rejected []model.RejectedEntry
}

// Pipeline applies the ordered admission checks to candidate events.
type Pipeline struct {
	cfg   Config
	cols  Columns
	rules []rule
}

// rule is one post-derivation predicate. It returns CauseNone when the
// slot passes.
type rule func(model.ScheduleSlot) model.RejectCause

// New validates cfg and builds the pipeline. The check order is fixed:
// duration, period, time window, magnitude, mid air mass, transit depth,
// ingress/egress presence, ingress/egress limit. The first failing check
// determines the cause.
func New(cfg Config, cols Columns) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{cfg: cfg, cols: cols}
	p.rules = []rule{
		p.checkMagnitude,
		p.checkMidAirMass,
		p.checkDepth,
		p.checkEdgeAirMassPresent,
		p.checkEdgeAirMassLimit,
	}
	return p, nil
}

// Run classifies every event. It never mutates its input and holds no
// state across calls, so re-running on the same input yields identical
// output.
func (p *Pipeline) Run(events []model.CandidateEvent) Result {
	res := Result{}
	for _, ev := range events {
		slot, cause := p.classify(ev)
		if cause == model.CauseNone {
			res.Admitted = append(res.Admitted, *slot)
			continue
		}
		res.Rejected = append(res.Rejected, model.RejectedEntry{Event: ev, Slot: slot, Cause: cause})
	}
	return res
}

func (p *Pipeline) classify(ev model.CandidateEvent) (*model.ScheduleSlot, model.RejectCause) {
	if !ev.Duration.Valid {
		// No windows can be derived; later checks are skipped.
		return nil, model.CauseDurationNaN
	}
	if p.cfg.Period.outside(ev.Period.Value, ev.Period.Valid) {
		return nil, model.CausePeriodLimit
	}

	slot, ok := transit.Slot(ev, p.cfg.SetupTime)
	if !ok {
		return nil, model.CauseDurationNaN
	}

	// The window check uses the effective (buffered) interval, the same
	// one the overlap test runs on, so admission and scheduling agree.
	if p.cfg.WindowStart != nil && slot.Start.Before(*p.cfg.WindowStart) {
		return &slot, model.CauseBeforeWindow
	}
	if p.cfg.WindowEnd != nil && slot.End.After(*p.cfg.WindowEnd) {
		return &slot, model.CauseAfterWindow
	}

	for _, check := range p.rules {
		if cause := check(slot); cause != model.CauseNone {
			return &slot, cause
		}
	}
	return &slot, model.CauseNone
}

func (p *Pipeline) checkMagnitude(s model.ScheduleSlot) model.RejectCause {
	if p.cfg.Magnitude.outside(s.Event.Magnitude.Value, s.Event.Magnitude.Valid) {
		return model.CauseMagnitudeLimit
	}
	return model.CauseNone
}

func (p *Pipeline) checkMidAirMass(s model.ScheduleSlot) model.RejectCause {
	if p.cfg.AirMassCap && s.Event.MidAirMass.Valid && s.Event.MidAirMass.Value > MidAirMassCap {
		return model.CauseAirMassLimit
	}
	return model.CauseNone
}

func (p *Pipeline) checkDepth(s model.ScheduleSlot) model.RejectCause {
	if p.cfg.TransitDepth.outside(s.Event.TransitDepth.Value, s.Event.TransitDepth.Valid) {
		return model.CauseDepthLimit
	}
	return model.CauseNone
}

// checkEdgeAirMassPresent distinguishes a value that is present but NaN
// from a column the source never provided.
func (p *Pipeline) checkEdgeAirMassPresent(s model.ScheduleSlot) model.RejectCause {
	if p.cfg.IgnoreMissingAirMass {
		return model.CauseNone
	}
	if s.Event.IngressAirMass.Valid && s.Event.EgressAirMass.Valid {
		return model.CauseNone
	}
	if p.cols.IngressAirMass && p.cols.EgressAirMass {
		return model.CauseEdgeAirMassNaN
	}
	return model.CauseEdgeAirMassMissing
}

func (p *Pipeline) checkEdgeAirMassLimit(s model.ScheduleSlot) model.RejectCause {
	if s.Event.IngressAirMass.Valid && s.Event.IngressAirMass.Value > p.cfg.MaxIngressAirMass {
		return model.CauseEdgeAirMassLimit
	}
	if s.Event.EgressAirMass.Valid && s.Event.EgressAirMass.Value > p.cfg.MaxEgressAirMass {
		return model.CauseEdgeAirMassLimit
	}
	return model.CauseNone
}
