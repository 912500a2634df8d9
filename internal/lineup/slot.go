package lineup

// SlotPos is the closed set of tactical positions.
type SlotPos string

const (
	PosGoalie       SlotPos = "GK"
	PosBackupGoalie SlotPos = "BK"
	PosLeftWing     SlotPos = "LW"
	PosCenter       SlotPos = "C"
	PosRightWing    SlotPos = "RW"
	PosLeftDefense  SlotPos = "LD"
	PosRightDefense SlotPos = "RD"
)

// FieldPositions is the slot order within one numbered line.
var FieldPositions = []SlotPos{PosLeftWing, PosCenter, PosRightWing, PosLeftDefense, PosRightDefense}

// SlotKey addresses one slot. Goalie slots live on line 0 (GK primary, BK
// backup); field slots on lines ≥ 1.
type SlotKey struct {
	Line int     `json:"line"`
	Pos  SlotPos `json:"pos"`
}

func GoalieSlot() SlotKey       { return SlotKey{Line: 0, Pos: PosGoalie} }
func BackupGoalieSlot() SlotKey { return SlotKey{Line: 0, Pos: PosBackupGoalie} }

func (k SlotKey) isGoalie() bool {
	return k.Line == 0 && (k.Pos == PosGoalie || k.Pos == PosBackupGoalie)
}

// PositionPlayed maps a slot kind to the broad position recorded on lineup
// rows.
func (k SlotKey) PositionPlayed() string {
	switch k.Pos {
	case PosGoalie, PosBackupGoalie:
		return "goalie"
	case PosLeftDefense, PosRightDefense:
		return "defense"
	default:
		return "forward"
	}
}

// Designation marks a slot's occupant as plain player, captain, or assistant
// captain.
type Designation string

const (
	DesignationPlayer    Designation = "player"
	DesignationCaptain   Designation = "captain"
	DesignationAssistant Designation = "assistant_captain"
)

// NextDesignation advances through the fixed cycle player → captain →
// assistant_captain → player.
func NextDesignation(d Designation) Designation {
	switch d {
	case DesignationPlayer:
		return DesignationCaptain
	case DesignationCaptain:
		return DesignationAssistant
	default:
		return DesignationPlayer
	}
}

// Assignment is one slot's contents. PlayerID 0 means empty.
type Assignment struct {
	PlayerID    uint        `json:"player_id"`
	Designation Designation `json:"designation"`
}
