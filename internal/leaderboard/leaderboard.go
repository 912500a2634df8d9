package leaderboard

import (
	"sort"

	"github.com/Bulkmaker/propeleri-sub000/internal/stats"
)

// Totals is one player's aggregate across every materialized stat row.
// Recomputed on read, never persisted.
type Totals struct {
	PlayerID       uint `json:"player_id"`
	Goals          int  `json:"goals"`
	Assists        int  `json:"assists"`
	Points         int  `json:"points"`
	PenaltyMinutes int  `json:"penalty_minutes"`
	PlusMinus      int  `json:"plus_minus"`
	GamesPlayed    int  `json:"games_played"`
}

// Metric selects the primary ranking key.
type Metric string

const (
	MetricPoints  Metric = "points"
	MetricGoals   Metric = "goals"
	MetricAssists Metric = "assists"
)

func ParseMetric(s string) (Metric, bool) {
	switch Metric(s) {
	case MetricPoints, MetricGoals, MetricAssists:
		return Metric(s), true
	case "":
		return MetricPoints, true
	}
	return "", false
}

// Aggregate sums stat rows per player. Players with no rows simply do not
// appear; there is nothing to divide by.
func Aggregate(rows []stats.StatLine) []Totals {
	byPlayer := map[uint]*Totals{}
	for _, r := range rows {
		t, ok := byPlayer[r.PlayerID]
		if !ok {
			t = &Totals{PlayerID: r.PlayerID}
			byPlayer[r.PlayerID] = t
		}
		t.Goals += r.Goals
		t.Assists += r.Assists
		t.PenaltyMinutes += r.PenaltyMinutes
		t.PlusMinus += r.PlusMinus
		t.GamesPlayed++
	}
	out := make([]Totals, 0, len(byPlayer))
	for _, t := range byPlayer {
		t.Points = t.Goals + t.Assists
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out
}

// Rank orders totals by the metric, descending. Ties break by player id
// ascending so output is deterministic; whether a real secondary key (games
// played? head-to-head?) should apply is an open product decision.
func Rank(totals []Totals, m Metric) []Totals {
	key := func(t Totals) int {
		switch m {
		case MetricGoals:
			return t.Goals
		case MetricAssists:
			return t.Assists
		default:
			return t.Points
		}
	}
	out := make([]Totals, len(totals))
	copy(out, totals)
	sort.SliceStable(out, func(i, j int) bool {
		ki, kj := key(out[i]), key(out[j])
		if ki != kj {
			return ki > kj
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

// AttendanceTotals counts training attendance rows per player, the training
// analogue of games played.
type AttendanceTotals struct {
	PlayerID uint `json:"player_id"`
	Attended int  `json:"attended"`
}

func AggregateAttendance(playerIDs []uint) []AttendanceTotals {
	byPlayer := map[uint]int{}
	for _, id := range playerIDs {
		byPlayer[id]++
	}
	out := make([]AttendanceTotals, 0, len(byPlayer))
	for id, n := range byPlayer {
		out = append(out, AttendanceTotals{PlayerID: id, Attended: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Attended != out[j].Attended {
			return out[i].Attended > out[j].Attended
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}
