package eventlog

// Version is written into every encoded payload. Decoding treats any other
// value as an unreadable log.
const Version = 1

// Period identifies the game segment an event belongs to.
type Period string

const (
	Period1  Period = "1"
	Period2  Period = "2"
	Period3  Period = "3"
	PeriodOT Period = "OT"
	PeriodSO Period = "SO"
)

func ValidPeriod(p Period) bool {
	switch p {
	case Period1, Period2, Period3, PeriodOT, PeriodSO:
		return true
	}
	return false
}

// GoalEvent records one goal for our team. Scorer is required by the time the
// log is persisted; the editor works with empty rows before that.
type GoalEvent struct {
	ScorerID    *uint  `json:"scorer_id"`
	Assist1ID   *uint  `json:"assist1_id"`
	Assist2ID   *uint  `json:"assist2_id"`
	Period      Period `json:"period"`
	Clock       string `json:"clock"` // normalized "m:ss", or empty
	PenaltyShot bool   `json:"penalty_shot"`
}

// PenaltyMinutes is the closed set of bench-recordable penalty lengths.
var PenaltyMinutes = []int{2, 4, 5, 10, 20}

func ValidMinutes(m int) bool {
	for _, v := range PenaltyMinutes {
		if v == m {
			return true
		}
	}
	return false
}

type PenaltyEvent struct {
	PlayerID *uint  `json:"player_id"`
	Minutes  int    `json:"minutes"`
	Period   Period `json:"period"`
}

// GoaliePerformance is the coach's post-game grade.
type GoaliePerformance string

const (
	GoalieExcellent GoaliePerformance = "excellent"
	GoalieGood      GoaliePerformance = "good"
	GoalieAverage   GoaliePerformance = "average"
	GoalieBad       GoaliePerformance = "bad"
)

type GoalieReport struct {
	GoalieID    *uint             `json:"goalie_id"`
	Performance GoaliePerformance `json:"performance"`
}

// Log is a game's full event record. It is stored wholesale as one JSON
// payload on the game row and replaced on every save.
type Log struct {
	Version       int            `json:"version"`
	GoalEvents    []GoalEvent    `json:"goal_events"`
	PenaltyEvents []PenaltyEvent `json:"penalty_events"`
	GoalieReport  *GoalieReport  `json:"goalie_report"`
}

// Empty reports whether the log carries nothing worth storing.
func (l Log) Empty() bool {
	return len(l.GoalEvents) == 0 && len(l.PenaltyEvents) == 0 && l.GoalieReport == nil
}

// Participants returns every player id referenced by any event, deduplicated.
func (l Log) Participants() []uint {
	seen := map[uint]bool{}
	var out []uint
	add := func(p *uint) {
		if p != nil && *p != 0 && !seen[*p] {
			seen[*p] = true
			out = append(out, *p)
		}
	}
	for i := range l.GoalEvents {
		add(l.GoalEvents[i].ScorerID)
		add(l.GoalEvents[i].Assist1ID)
		add(l.GoalEvents[i].Assist2ID)
	}
	for i := range l.PenaltyEvents {
		add(l.PenaltyEvents[i].PlayerID)
	}
	return out
}
