package lineup

import (
	"math/rand"
	"testing"
)

func occupant(e *Engine, k SlotKey) uint { return e.Get(k).PlayerID }

func TestAssign_MovesNotDuplicates(t *testing.T) {
	e := NewEngine()
	e.AddLine() // lines 1 and 2

	center2 := SlotKey{Line: 2, Pos: PosCenter}
	lw1 := SlotKey{Line: 1, Pos: PosLeftWing}

	e.Assign(center2, 7)
	e.Assign(lw1, 7)

	if got := occupant(e, lw1); got != 7 {
		t.Errorf("left wing line 1 = %d, want 7", got)
	}
	if got := occupant(e, center2); got != 0 {
		t.Errorf("center line 2 = %d, want empty after move", got)
	}
	if ids := e.AssignedPlayerIDs(); len(ids) != 1 {
		t.Errorf("player placed %d times, want once", len(ids))
	}
}

func TestAssign_OverwriteUnassignsOccupant(t *testing.T) {
	e := NewEngine()
	k := SlotKey{Line: 1, Pos: PosCenter}
	e.Assign(k, 1)
	e.Assign(k, 2)

	if got := occupant(e, k); got != 2 {
		t.Fatalf("slot = %d, want 2", got)
	}
	if _, ok := e.SlotOf(1); ok {
		t.Errorf("displaced player should be unassigned")
	}
}

func TestSwap_BothFilled(t *testing.T) {
	e := NewEngine()
	a := SlotKey{Line: 1, Pos: PosLeftWing}
	b := SlotKey{Line: 1, Pos: PosRightWing}
	e.Assign(a, 1)
	e.Assign(b, 2)

	e.Swap(a, b)
	if occupant(e, a) != 2 || occupant(e, b) != 1 {
		t.Fatalf("swap lost a player: a=%d b=%d", occupant(e, a), occupant(e, b))
	}

	// Swap twice restores the original occupants.
	e.Swap(a, b)
	if occupant(e, a) != 1 || occupant(e, b) != 2 {
		t.Errorf("double swap is not identity: a=%d b=%d", occupant(e, a), occupant(e, b))
	}
}

func TestSwap_WithEmptyIsMove(t *testing.T) {
	e := NewEngine()
	a := SlotKey{Line: 1, Pos: PosCenter}
	b := SlotKey{Line: 1, Pos: PosLeftDefense}
	e.Assign(a, 5)

	e.Swap(a, b)
	if occupant(e, a) != 0 || occupant(e, b) != 5 {
		t.Errorf("move via swap failed: a=%d b=%d", occupant(e, a), occupant(e, b))
	}
}

func TestSwap_GoalieAndField(t *testing.T) {
	e := NewEngine()
	e.Assign(GoalieSlot(), 30)
	e.Assign(SlotKey{Line: 1, Pos: PosCenter}, 9)

	e.Swap(GoalieSlot(), SlotKey{Line: 1, Pos: PosCenter})
	if occupant(e, GoalieSlot()) != 9 {
		t.Errorf("goalie slot = %d, want 9", occupant(e, GoalieSlot()))
	}
	if occupant(e, SlotKey{Line: 1, Pos: PosCenter}) != 30 {
		t.Errorf("center = %d, want 30", occupant(e, SlotKey{Line: 1, Pos: PosCenter}))
	}
}

func TestClear(t *testing.T) {
	e := NewEngine()
	a := SlotKey{Line: 1, Pos: PosCenter}
	b := SlotKey{Line: 1, Pos: PosLeftWing}
	e.Assign(a, 1)
	e.Assign(b, 2)

	e.Clear(a)
	if occupant(e, a) != 0 {
		t.Errorf("cleared slot still occupied")
	}
	if occupant(e, b) != 2 {
		t.Errorf("clear disturbed another slot")
	}
}

func TestCycleDesignation(t *testing.T) {
	e := NewEngine()
	k := SlotKey{Line: 1, Pos: PosCenter}
	e.Assign(k, 1)

	want := []Designation{DesignationCaptain, DesignationAssistant, DesignationPlayer}
	for _, w := range want {
		e.CycleDesignation(k)
		if got := e.Get(k).Designation; got != w {
			t.Fatalf("designation = %q, want %q", got, w)
		}
	}

	// Empty slot: no-op.
	empty := SlotKey{Line: 1, Pos: PosRightWing}
	e.CycleDesignation(empty)
	if e.Get(empty).PlayerID != 0 {
		t.Errorf("cycling an empty slot must not occupy it")
	}
}

func TestDesignationTravelsOnMove(t *testing.T) {
	e := NewEngine()
	a := SlotKey{Line: 1, Pos: PosCenter}
	e.Assign(a, 1)
	e.CycleDesignation(a) // captain

	b := SlotKey{Line: 1, Pos: PosLeftWing}
	e.Assign(b, 1)
	if got := e.Get(b).Designation; got != DesignationCaptain {
		t.Errorf("designation after move = %q, want captain", got)
	}
}

func TestAddRemoveLine(t *testing.T) {
	e := NewEngine()
	if e.Lines() != 1 {
		t.Fatalf("new engine lines = %d, want 1", e.Lines())
	}
	e.AddLine()
	e.AddLine()
	e.Assign(SlotKey{Line: 2, Pos: PosCenter}, 2)
	e.Assign(SlotKey{Line: 3, Pos: PosCenter}, 3)

	e.RemoveLine(2)
	if e.Lines() != 2 {
		t.Fatalf("lines = %d, want 2", e.Lines())
	}
	if _, ok := e.SlotOf(2); ok {
		t.Errorf("removed line's player should be discarded, not reassigned")
	}
	// Line 3 shifted down to 2.
	if got := occupant(e, SlotKey{Line: 2, Pos: PosCenter}); got != 3 {
		t.Errorf("shifted line occupant = %d, want 3", got)
	}

	// Never below one line.
	e.RemoveLine(2)
	e.RemoveLine(1)
	if e.Lines() != 1 {
		t.Errorf("lines = %d, want floor of 1", e.Lines())
	}
}

// Uniqueness holds under arbitrary assign/swap/clear sequences.
func TestUniqueness_RandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	e := NewEngine()
	e.AddLine()
	e.AddLine()

	keys := []SlotKey{GoalieSlot(), BackupGoalieSlot()}
	for line := 1; line <= 3; line++ {
		for _, p := range FieldPositions {
			keys = append(keys, SlotKey{Line: line, Pos: p})
		}
	}

	for i := 0; i < 2000; i++ {
		switch rng.Intn(4) {
		case 0, 1:
			e.Assign(keys[rng.Intn(len(keys))], uint(1+rng.Intn(10)))
		case 2:
			e.Swap(keys[rng.Intn(len(keys))], keys[rng.Intn(len(keys))])
		case 3:
			e.Clear(keys[rng.Intn(len(keys))])
		}

		seen := map[uint]SlotKey{}
		for _, k := range keys {
			id := occupant(e, k)
			if id == 0 {
				continue
			}
			if prev, dup := seen[id]; dup {
				t.Fatalf("op %d: player %d in both %v and %v", i, id, prev, k)
			}
			seen[id] = k
		}
	}
}

func TestSnapshotLoad_RoundTrip(t *testing.T) {
	e := NewEngine()
	e.AddLine()
	e.Assign(GoalieSlot(), 30)
	e.Assign(SlotKey{Line: 1, Pos: PosCenter}, 9)
	e.CycleDesignation(SlotKey{Line: 1, Pos: PosCenter})
	e.Assign(SlotKey{Line: 2, Pos: PosLeftDefense}, 4)

	rows := e.Snapshot(77)
	if len(rows) != 3 {
		t.Fatalf("snapshot rows = %d, want 3", len(rows))
	}
	for _, r := range rows {
		if r.GameID != 77 {
			t.Errorf("row game id = %d", r.GameID)
		}
	}
	if rows[0].SlotPosition != "GK" || rows[0].PositionPlayed != "goalie" || rows[0].LineNumber != 0 {
		t.Errorf("goalie row shape wrong: %+v", rows[0])
	}

	e2 := NewEngine()
	e2.Load(rows)
	if e2.Lines() != 2 {
		t.Errorf("loaded lines = %d, want 2", e2.Lines())
	}
	if occupant(e2, GoalieSlot()) != 30 {
		t.Errorf("goalie lost in round trip")
	}
	if got := e2.Get(SlotKey{Line: 1, Pos: PosCenter}); got.PlayerID != 9 || got.Designation != DesignationCaptain {
		t.Errorf("center lost in round trip: %+v", got)
	}
}

func TestLoad_ToleratesDuplicateRows(t *testing.T) {
	e := NewEngine()
	e.Load([]Row{
		{PlayerID: 5, LineNumber: 1, SlotPosition: "C"},
		{PlayerID: 5, LineNumber: 1, SlotPosition: "LW"}, // bad stored data
	})
	if ids := e.AssignedPlayerIDs(); len(ids) != 1 {
		t.Errorf("duplicate stored rows must collapse to one placement, got %v", ids)
	}
}
