// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package model

import "time"

// SessionRecord is the mutable session bookkeeping owned by the controller.
type SessionRecord struct {
	State       SessionState
	SessionID   string
	StartedAt   time.Time
	PausedAt    time.Time
	PausedTotal time.Duration
	UpdatedAt   time.Time
}

// NewSessionRecord returns an idle record.
func NewSessionRecord(now time.Time) SessionRecord {
	return SessionRecord{State: StateIdle, UpdatedAt: now}
}

// Recorded returns the captured duration so far, excluding paused time.
func (r SessionRecord) Recorded(now time.Time) time.Duration {
	if !r.State.IsActive() || r.StartedAt.IsZero() {
		return 0
	}
	end := now
	if r.State == StatePaused && !r.PausedAt.IsZero() {
		end = r.PausedAt
	}
	d := end.Sub(r.StartedAt) - r.PausedTotal
	if d < 0 {
		return 0
	}
	return d
}
