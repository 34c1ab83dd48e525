package filter

// Package filter classifies candidate transit events as admissible or
// rejected with a single deterministic cause. Checks run in a fixed
// priority order and stop at the first failure, so an event breaking two
// limits always reports the earlier one.
