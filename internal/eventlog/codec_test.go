package eventlog

import "testing"

func TestDecode_Defensive(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"garbage", "not json at all"},
		{"wrong version", `{"version": 2, "goal_events": [{"scorer_id": 1}]}`},
		{"no version", `{"goal_events": [{"scorer_id": 1}]}`},
		{"wrong shape", `[1,2,3]`},
	}
	for _, c := range cases {
		got := Decode([]byte(c.raw))
		if !got.Empty() {
			t.Errorf("%s: expected empty log, got %+v", c.name, got)
		}
		if got.Version != Version {
			t.Errorf("%s: version = %d", c.name, got.Version)
		}
	}
}

func TestDecode_IgnoresUnknownFields(t *testing.T) {
	raw := `{"version": 1, "goal_events": [{"scorer_id": 7, "future_field": true}], "penalty_events": [], "wat": {}}`
	got := Decode([]byte(raw))
	if len(got.GoalEvents) != 1 || got.GoalEvents[0].ScorerID == nil || *got.GoalEvents[0].ScorerID != 7 {
		t.Fatalf("decode lost data: %+v", got)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	l := Log{
		GoalEvents: []GoalEvent{
			{ScorerID: pid(1), Assist1ID: pid(2), Period: Period2, Clock: "3:45"},
			{ScorerID: pid(3), PenaltyShot: true, Period: PeriodOT},
		},
		PenaltyEvents: []PenaltyEvent{{PlayerID: pid(4), Minutes: 5, Period: Period3}},
		GoalieReport:  &GoalieReport{GoalieID: pid(9), Performance: GoalieGood},
	}
	raw, err := Encode(l)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got := Decode(raw)
	if len(got.GoalEvents) != 2 || len(got.PenaltyEvents) != 1 {
		t.Fatalf("round trip lost events: %+v", got)
	}
	if got.GoalEvents[0].Clock != "3:45" || got.GoalEvents[1].Period != PeriodOT {
		t.Errorf("round trip mangled fields: %+v", got.GoalEvents)
	}
	if got.GoalieReport == nil || got.GoalieReport.Performance != GoalieGood {
		t.Errorf("goalie report lost: %+v", got.GoalieReport)
	}
}
