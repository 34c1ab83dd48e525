package model

// RejectCause identifies why an event was cut. Causes are assigned by a
// fixed priority order: the first failing check wins and no later check
// runs, so every rejected event carries exactly one cause.
type RejectCause int

const (
	CauseNone RejectCause = iota
	CauseDurationNaN
	CausePeriodLimit
	CauseBeforeWindow
	CauseAfterWindow
	CauseMagnitudeLimit
	CauseAirMassLimit
	CauseDepthLimit
	CauseEdgeAirMassNaN
	CauseEdgeAirMassMissing
	CauseEdgeAirMassLimit
	CauseOverlap
)

// String returns the report wording for the cause. The strings are part
// of the cut-list format consumed by downstream tooling; do not reword.
func (c RejectCause) String() string {
	switch c {
	case CauseNone:
		return ""
	case CauseDurationNaN:
		return "Duration is NaN"
	case CausePeriodLimit:
		return "Period limit exceeded"
	case CauseBeforeWindow:
		return "Transit start time is before the time window"
	case CauseAfterWindow:
		return "Transit end time is after the time window"
	case CauseMagnitudeLimit:
		return "Magnitude limit exceeded"
	case CauseAirMassLimit:
		return "Air mass limit exceeded"
	case CauseDepthLimit:
		return "Transit depth limit exceeded"
	case CauseEdgeAirMassNaN:
		return "NaN in ingress/egress air mass"
	case CauseEdgeAirMassMissing:
		return "Ingress/Egress air mass data missing"
	case CauseEdgeAirMassLimit:
		return "Ingress/Egress air mass limit exceeded"
	case CauseOverlap:
		return "Overlapping with another target"
	default:
		return "unknown"
	}
}
