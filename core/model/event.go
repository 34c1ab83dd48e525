package model

import (
	"math"
	"time"
)

// OptFloat is an optional float64. Tabular transit sources mark missing
// numeric values with empty cells or NaN; both parse to an invalid
// OptFloat so comparisons never propagate NaN.
type OptFloat struct {
	Value float64
	Valid bool
}

// Float wraps v in a valid OptFloat. NaN values are treated as missing.
func Float(v float64) OptFloat {
	if math.IsNaN(v) {
		return OptFloat{}
	}
	return OptFloat{Value: v, Valid: true}
}

// CandidateEvent is one prospective transit observation as ingested from
// the source table. Derived times are not stored here; see transit.Slot.
type CandidateEvent struct {
	Name           string
	Duration       OptFloat // transit duration in hours
	Midpoint       time.Time
	RA             OptFloat
	Dec            OptFloat
	Period         OptFloat // orbital period in days
	TransitDepth   OptFloat
	MidAirMass     OptFloat // air mass at mid-transit
	IngressAirMass OptFloat
	EgressAirMass  OptFloat
	Magnitude      OptFloat // K-band magnitude
}

// ScheduleSlot is an admitted event together with its derived windows.
// Start/End is the effective window used for the time-window and overlap
// checks; it equals the transit window padded by the setup buffer when
// buffering is enabled, and the transit window itself otherwise.
type ScheduleSlot struct {
	Event        CandidateEvent
	TransitStart time.Time
	TransitEnd   time.Time
	Start        time.Time
	End          time.Time
}

// RejectedEntry records an event removed from consideration. Slot is nil
// when the event was cut before its windows could be derived.
type RejectedEntry struct {
	Event CandidateEvent
	Slot  *ScheduleSlot
	Cause RejectCause
}

// Schedule is an ordered sequence of non-overlapping slots sorted by
// effective start time. Consecutive slots may touch but never overlap.
type Schedule []ScheduleSlot

// Span returns the interval covered by the schedule's transit windows,
// or zero times for an empty schedule.
func (s Schedule) Span() (time.Time, time.Time) {
	if len(s) == 0 {
		return time.Time{}, time.Time{}
	}
	first := s[0].TransitStart
	last := s[0].TransitEnd
	for _, slot := range s[1:] {
		if slot.TransitStart.Before(first) {
			first = slot.TransitStart
		}
		if slot.TransitEnd.After(last) {
			last = slot.TransitEnd
		}
	}
	return first, last
}
