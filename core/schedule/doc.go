package schedule

// Package schedule packs the most transit observations into a night.
// It selects non-overlapping slots by greedy earliest-finish scheduling
// and can count how many alternative candidate orderings tie the
// optimum under the same rule.
