package roster

import "time"

// Position is the player's listed (not per-game tactical) position.
type Position string

const (
	PositionGoalie  Position = "goalie"
	PositionDefense Position = "defense"
	PositionForward Position = "forward"
)

// Player is the directory entry the rest of the system references by id.
type Player struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name         string   `json:"name"`
	JerseyNumber int      `json:"jersey_number"`
	Position     Position `gorm:"size:16" json:"position"`
	Active       bool     `gorm:"default:true" json:"active"`
}
