package stats

import (
	"sort"

	"github.com/Bulkmaker/propeleri-sub000/internal/eventlog"
)

// StatLine is one player's derived totals for one game. Owned entirely by
// the materializer: the whole set for a game is deleted and regenerated from
// the event log on every save. Plus/minus is the one admin-entered column;
// it is carried through rematerialization, never derived.
type StatLine struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	GameID         uint `gorm:"index;not null" json:"game_id"`
	PlayerID       uint `gorm:"index;not null" json:"player_id"`
	Goals          int  `json:"goals"`
	Assists        int  `json:"assists"`
	PenaltyMinutes int  `json:"penalty_minutes"`
	PlusMinus      int  `json:"plus_minus"`
}

func (StatLine) TableName() string { return "stat_lines" }

// Materialize derives the stat rows for a game from its event log. A row is
// produced for every player in the events, plus every id in present (lineup
// players and players from the prior stat set), so attendance stays visible
// at zero stats. Output is sorted by player id: the same log always yields
// the same rows.
func Materialize(gameID uint, log eventlog.Log, present []uint, plusMinus map[uint]int) []StatLine {
	byPlayer := map[uint]*StatLine{}
	row := func(id uint) *StatLine {
		if r, ok := byPlayer[id]; ok {
			return r
		}
		r := &StatLine{GameID: gameID, PlayerID: id}
		byPlayer[id] = r
		return r
	}

	for _, id := range present {
		if id != 0 {
			row(id)
		}
	}
	for _, ev := range log.GoalEvents {
		if ev.ScorerID != nil && *ev.ScorerID != 0 {
			row(*ev.ScorerID).Goals++
		}
		for _, a := range []*uint{ev.Assist1ID, ev.Assist2ID} {
			if a != nil && *a != 0 {
				row(*a).Assists++
			}
		}
	}
	for _, p := range log.PenaltyEvents {
		if p.PlayerID != nil && *p.PlayerID != 0 {
			row(*p.PlayerID).PenaltyMinutes += p.Minutes
		}
	}
	for id, pm := range plusMinus {
		if _, ok := byPlayer[id]; ok {
			byPlayer[id].PlusMinus = pm
		}
	}

	out := make([]StatLine, 0, len(byPlayer))
	for _, r := range byPlayer {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out
}
