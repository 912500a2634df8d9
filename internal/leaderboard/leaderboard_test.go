package leaderboard

import (
	"testing"

	"github.com/Bulkmaker/propeleri-sub000/internal/stats"
)

func TestAggregate_SumsAcrossGames(t *testing.T) {
	rows := []stats.StatLine{
		{GameID: 1, PlayerID: 9, Goals: 2, Assists: 1},
		{GameID: 2, PlayerID: 9, Goals: 0, Assists: 3},
	}
	got := Aggregate(rows)
	if len(got) != 1 {
		t.Fatalf("players = %d, want 1", len(got))
	}
	p := got[0]
	if p.Goals != 2 || p.Assists != 4 || p.Points != 6 || p.GamesPlayed != 2 {
		t.Errorf("totals = %+v, want goals 2 assists 4 points 6 games 2", p)
	}
}

func TestAggregate_NoRowsNoPlayers(t *testing.T) {
	if got := Aggregate(nil); len(got) != 0 {
		t.Errorf("empty input produced %+v", got)
	}
}

func TestAggregate_PIMAndPlusMinus(t *testing.T) {
	rows := []stats.StatLine{
		{GameID: 1, PlayerID: 4, PenaltyMinutes: 5, PlusMinus: -1},
		{GameID: 2, PlayerID: 4, PenaltyMinutes: 2, PlusMinus: 3},
	}
	p := Aggregate(rows)[0]
	if p.PenaltyMinutes != 7 || p.PlusMinus != 2 {
		t.Errorf("totals = %+v, want PIM 7 plus/minus 2", p)
	}
}

func TestRank_MetricsAndTies(t *testing.T) {
	totals := []Totals{
		{PlayerID: 1, Goals: 5, Assists: 0, Points: 5},
		{PlayerID: 2, Goals: 1, Assists: 6, Points: 7},
		{PlayerID: 3, Goals: 3, Assists: 2, Points: 5},
	}

	byPoints := Rank(totals, MetricPoints)
	if byPoints[0].PlayerID != 2 {
		t.Errorf("points leader = %d, want 2", byPoints[0].PlayerID)
	}
	// 5-point tie breaks by player id ascending.
	if byPoints[1].PlayerID != 1 || byPoints[2].PlayerID != 3 {
		t.Errorf("tie order = %d, %d; want 1, 3", byPoints[1].PlayerID, byPoints[2].PlayerID)
	}

	byGoals := Rank(totals, MetricGoals)
	if byGoals[0].PlayerID != 1 {
		t.Errorf("goals leader = %d, want 1", byGoals[0].PlayerID)
	}

	byAssists := Rank(totals, MetricAssists)
	if byAssists[0].PlayerID != 2 {
		t.Errorf("assists leader = %d, want 2", byAssists[0].PlayerID)
	}

	// Rank must not mutate its input.
	if totals[0].PlayerID != 1 || totals[2].PlayerID != 3 {
		t.Errorf("input reordered: %+v", totals)
	}
}

func TestParseMetric(t *testing.T) {
	if m, ok := ParseMetric(""); !ok || m != MetricPoints {
		t.Errorf("empty metric should default to points")
	}
	if _, ok := ParseMetric("vibes"); ok {
		t.Errorf("unknown metric accepted")
	}
}

func TestAggregateAttendance(t *testing.T) {
	got := AggregateAttendance([]uint{1, 2, 1, 3, 1, 2})
	if len(got) != 3 {
		t.Fatalf("players = %d, want 3", len(got))
	}
	if got[0].PlayerID != 1 || got[0].Attended != 3 {
		t.Errorf("top = %+v, want player 1 with 3", got[0])
	}
	if got[1].PlayerID != 2 || got[2].PlayerID != 3 {
		t.Errorf("order wrong: %+v", got)
	}
}
