package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Tracker errors
	ErrSessionNotFound  = errors.New("session not found")
	ErrGoalNotFound     = errors.New("goal not found")
	ErrGoalNotActive    = errors.New("goal is not active")
	ErrDurationTooShort = errors.New("session shorter than one minute")

	// Achievement errors
	ErrUnknownAchievement = errors.New("achievement id not in catalog")
	ErrUnknownRequirement = errors.New("unrecognized requirement type")

	// Store errors
	ErrStoreUnavailable = errors.New("record store unavailable")
)
