package eventlog

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeClock turns "m:ss" or "m.ss" into canonical "m:ss". Anything that
// does not parse, or whose seconds are out of range, clears to empty — a
// missing clock is fine, a wrong one is not kept.
func NormalizeClock(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, ".", ":")
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return ""
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || m < 0 {
		return ""
	}
	sec, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || sec < 0 || sec >= 60 {
		return ""
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}

// goalField addresses one of a goal event's three participant slots.
type goalField int

const (
	fieldScorer goalField = iota
	fieldAssist1
	fieldAssist2
)

// setParticipant writes a player into one field of a goal event. If the same
// player already sits in another field of that event, the other field is
// cleared — a player cannot assist their own goal or be credited twice.
// Passing nil clears the field.
func setParticipant(ev *GoalEvent, field goalField, playerID *uint) {
	fields := [3]**uint{&ev.ScorerID, &ev.Assist1ID, &ev.Assist2ID}
	if playerID != nil && *playerID != 0 {
		for i, f := range fields {
			if goalField(i) == field {
				continue
			}
			if *f != nil && **f == *playerID {
				*f = nil
			}
		}
	}
	*fields[field] = playerID
}

// setPenaltyShot toggles the penalty-shot flag. Turning it on wipes both
// assists (a penalty shot has none); turning it off leaves them empty for
// the editor to refill.
func setPenaltyShot(ev *GoalEvent, on bool) {
	ev.PenaltyShot = on
	if on {
		ev.Assist1ID = nil
		ev.Assist2ID = nil
	}
}

// ReconcileCount forces the goal-event list to exactly n entries: excess
// events are truncated from the tail, missing ones padded with empty rows.
// Surviving entries keep their relative order. Running it twice with the
// same n is a no-op.
func ReconcileCount(events []GoalEvent, n int) []GoalEvent {
	if n < 0 {
		n = 0
	}
	if len(events) > n {
		return events[:n]
	}
	for len(events) < n {
		events = append(events, GoalEvent{Period: Period1})
	}
	return events
}

// Clean prepares a log for persistence: goal events without a scorer and
// penalties without a player are dropped (editor scaffolding, not data),
// clocks are normalized, and out-of-set minutes/periods are coerced to the
// nearest sane value rather than rejected.
func Clean(l Log) Log {
	out := Log{Version: Version, GoalEvents: []GoalEvent{}, PenaltyEvents: []PenaltyEvent{}}
	for _, ev := range l.GoalEvents {
		if ev.ScorerID == nil || *ev.ScorerID == 0 {
			continue
		}
		ev.Clock = NormalizeClock(ev.Clock)
		if !ValidPeriod(ev.Period) {
			ev.Period = Period1
		}
		// Participants must be pairwise distinct; the log arrives wholesale,
		// so the per-field rules are re-asserted here. Scorer wins over
		// either assist, assist1 over assist2.
		setParticipant(&ev, fieldScorer, ev.ScorerID)
		setParticipant(&ev, fieldAssist1, ev.Assist1ID)
		setPenaltyShot(&ev, ev.PenaltyShot)
		out.GoalEvents = append(out.GoalEvents, ev)
	}
	for _, p := range l.PenaltyEvents {
		if p.PlayerID == nil || *p.PlayerID == 0 {
			continue
		}
		if !ValidMinutes(p.Minutes) {
			p.Minutes = 2
		}
		if !ValidPeriod(p.Period) {
			p.Period = Period1
		}
		out.PenaltyEvents = append(out.PenaltyEvents, p)
	}
	if l.GoalieReport != nil && l.GoalieReport.GoalieID != nil && *l.GoalieReport.GoalieID != 0 {
		r := *l.GoalieReport
		switch r.Performance {
		case GoalieExcellent, GoalieGood, GoalieAverage, GoalieBad:
		default:
			r.Performance = GoalieAverage
		}
		out.GoalieReport = &r
	}
	return out
}
