// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import (
	"time"

	"github.com/ManuGH/capctl/internal/domain/capture/model"
)

// ApplyTransition mutates the session record according to the transition.
func ApplyTransition(rec *model.SessionRecord, tr Transition, ev Event, now time.Time) Applied {
	out := Applied{Transition: tr, SessionID: rec.SessionID}

	switch tr.Event {
	case EvStartRequested:
		rec.SessionID = ev.SessionID
		rec.StartedAt = now
		rec.PausedAt = time.Time{}
		rec.PausedTotal = 0
		out.SessionID = ev.SessionID
	case EvPauseRequested:
		rec.PausedAt = now
	case EvResumeRequested:
		if !rec.PausedAt.IsZero() {
			rec.PausedTotal += now.Sub(rec.PausedAt)
		}
		rec.PausedAt = time.Time{}
	case EvStopRequested:
		out.Recorded = rec.Recorded(now)
		rec.SessionID = ""
		rec.StartedAt = time.Time{}
		rec.PausedAt = time.Time{}
		rec.PausedTotal = 0
	}

	rec.State = tr.To
	rec.UpdatedAt = now
	return out
}
