package lineup

import "sort"

// Engine holds one game's slot assignments in memory. A reverse index by
// player id backs the single invariant every mutation preserves: a player id
// occupies at most one slot at a time. Callers never see a "slot taken"
// error — conflicting assigns resolve by moving the player.
//
// The engine is not goroutine safe; the owning session serializes access.
type Engine struct {
	lines    int
	slots    map[SlotKey]Assignment
	byPlayer map[uint]SlotKey
}

func NewEngine() *Engine {
	return &Engine{
		lines:    1,
		slots:    map[SlotKey]Assignment{},
		byPlayer: map[uint]SlotKey{},
	}
}

// Lines returns the current number of field lines (always ≥ 1).
func (e *Engine) Lines() int { return e.lines }

func (e *Engine) validKey(k SlotKey) bool {
	if k.isGoalie() {
		return true
	}
	if k.Line < 1 || k.Line > e.lines {
		return false
	}
	for _, p := range FieldPositions {
		if p == k.Pos {
			return true
		}
	}
	return false
}

// Get returns the slot's current assignment (zero value when empty).
func (e *Engine) Get(k SlotKey) Assignment {
	a := e.slots[k]
	if a.Designation == "" {
		a.Designation = DesignationPlayer
	}
	return a
}

func (e *Engine) set(k SlotKey, a Assignment) {
	if a.Designation == "" {
		a.Designation = DesignationPlayer
	}
	if prev := e.slots[k]; prev.PlayerID != 0 {
		delete(e.byPlayer, prev.PlayerID)
	}
	if a.PlayerID == 0 {
		delete(e.slots, k)
		return
	}
	e.slots[k] = a
	e.byPlayer[a.PlayerID] = k
}

// Assign places playerID into slot k. If the player already occupies another
// slot, that slot is vacated in the same operation (move, never duplicate).
// A different player already in k simply becomes unassigned.
func (e *Engine) Assign(k SlotKey, playerID uint) {
	if !e.validKey(k) || playerID == 0 {
		return
	}
	moving := Assignment{PlayerID: playerID, Designation: DesignationPlayer}
	if prev, ok := e.byPlayer[playerID]; ok {
		if prev == k {
			return
		}
		moving.Designation = e.slots[prev].Designation
		e.set(prev, Assignment{})
	}
	e.set(k, moving)
}

// Swap exchanges the occupants of two slots. One side being empty makes it a
// move; dragging a filled slot onto another filled slot loses neither player.
// Designations travel with the players.
func (e *Engine) Swap(a, b SlotKey) {
	if !e.validKey(a) || !e.validKey(b) || a == b {
		return
	}
	av, bv := e.slots[a], e.slots[b]
	e.set(a, Assignment{})
	e.set(b, Assignment{})
	e.set(a, bv)
	e.set(b, av)
}

// Clear empties a slot, leaving every other slot untouched.
func (e *Engine) Clear(k SlotKey) {
	if !e.validKey(k) {
		return
	}
	e.set(k, Assignment{})
}

// CycleDesignation advances an occupied slot's designation through the fixed
// cycle. Empty slots are left alone.
func (e *Engine) CycleDesignation(k SlotKey) {
	a, ok := e.slots[k]
	if !ok || a.PlayerID == 0 {
		return
	}
	a.Designation = NextDesignation(a.Designation)
	e.slots[k] = a
}

// AddLine appends a new empty field line and returns its index.
func (e *Engine) AddLine() int {
	e.lines++
	return e.lines
}

// RemoveLine deletes field line idx, discarding its assignments. Lines above
// shift down to stay contiguous. The line count never drops below 1.
func (e *Engine) RemoveLine(idx int) {
	if idx < 1 || idx > e.lines || e.lines == 1 {
		return
	}
	for _, p := range FieldPositions {
		e.set(SlotKey{Line: idx, Pos: p}, Assignment{})
	}
	for line := idx + 1; line <= e.lines; line++ {
		for _, p := range FieldPositions {
			from := SlotKey{Line: line, Pos: p}
			if a, ok := e.slots[from]; ok {
				e.set(from, Assignment{})
				e.set(SlotKey{Line: line - 1, Pos: p}, a)
			}
		}
	}
	e.lines--
}

// AssignedPlayerIDs returns every placed player, sorted, for computing the
// "available players" complement.
func (e *Engine) AssignedPlayerIDs() []uint {
	out := make([]uint, 0, len(e.byPlayer))
	for id := range e.byPlayer {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SlotOf reports which slot a player currently occupies, if any.
func (e *Engine) SlotOf(playerID uint) (SlotKey, bool) {
	k, ok := e.byPlayer[playerID]
	return k, ok
}

// Snapshot flattens the non-empty slots into persistable rows for one game.
func (e *Engine) Snapshot(gameID uint) []Row {
	out := make([]Row, 0, len(e.slots))
	for k, a := range e.slots {
		if a.PlayerID == 0 {
			continue
		}
		out = append(out, Row{
			GameID:         gameID,
			PlayerID:       a.PlayerID,
			Designation:    string(a.Designation),
			PositionPlayed: k.PositionPlayed(),
			LineNumber:     k.Line,
			SlotPosition:   string(k.Pos),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LineNumber != out[j].LineNumber {
			return out[i].LineNumber < out[j].LineNumber
		}
		return out[i].SlotPosition < out[j].SlotPosition
	})
	return out
}

// Load replaces the in-memory state from persisted rows. Rows that collide
// on player id keep the first occurrence; the invariant holds even against
// bad stored data.
func (e *Engine) Load(rows []Row) {
	e.lines = 1
	e.slots = map[SlotKey]Assignment{}
	e.byPlayer = map[uint]SlotKey{}
	for _, r := range rows {
		if r.LineNumber > e.lines {
			e.lines = r.LineNumber
		}
	}
	for _, r := range rows {
		k := SlotKey{Line: r.LineNumber, Pos: SlotPos(r.SlotPosition)}
		if !e.validKey(k) || r.PlayerID == 0 {
			continue
		}
		if _, taken := e.byPlayer[r.PlayerID]; taken {
			continue
		}
		if _, occupied := e.slots[k]; occupied {
			continue
		}
		e.set(k, Assignment{PlayerID: r.PlayerID, Designation: Designation(r.Designation)})
	}
}
