package schedule

import (
	"sort"
	"time"

	"github.com/obsnight/transitplan/core/model"
)

// Plan selects a maximum-cardinality set of non-overlapping slots from
// the admitted candidates using greedy earliest-finish selection, which
// is optimal for unweighted interval scheduling.
//
// Candidates are stable-sorted by effective end time; slots with equal
// end times keep their relative admitted order, so the output is fully
// deterministic for a given input. A slot is accepted when its effective
// start is not before the last accepted end (touching intervals are
// allowed); otherwise it joins the returned overlap rejections, which
// the caller appends to the cut list after the admission rejections.
func Plan(admitted []model.ScheduleSlot) (model.Schedule, []model.RejectedEntry) {
	candidates := make([]model.ScheduleSlot, len(admitted))
	copy(candidates, admitted)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].End.Before(candidates[j].End)
	})

	var planned model.Schedule
	var rejected []model.RejectedEntry
	var lastEnd time.Time
	taken := false
	for _, slot := range candidates {
		if !taken || !slot.Start.Before(lastEnd) {
			planned = append(planned, slot)
			lastEnd = slot.End
			taken = true
			continue
		}
		s := slot
		rejected = append(rejected, model.RejectedEntry{Event: s.Event, Slot: &s, Cause: model.CauseOverlap})
	}
	return planned, rejected
}

// CountEquivalent reports how many candidate orderings tie the reference
// optimum: each candidate sequence is reduced by the same greedy forward
// scan, in the order given and without re-sorting, and counted when the
// resulting cardinality equals max. Inputs are not mutated.
func CountEquivalent(candidates [][]model.ScheduleSlot, max int) int {
	count := 0
	for _, seq := range candidates {
		if greedyCount(seq) == max {
			count++
		}
	}
	return count
}

// greedyCount runs the forward scan of Plan over slots as ordered and
// returns the number it would accept.
func greedyCount(slots []model.ScheduleSlot) int {
	n := 0
	var lastEnd time.Time
	taken := false
	for _, slot := range slots {
		if !taken || !slot.Start.Before(lastEnd) {
			lastEnd = slot.End
			taken = true
			n++
		}
	}
	return n
}
