package games

import (
	"time"

	"gorm.io/datatypes"
)

// ShootoutWinner values for the Game record. Empty means the game did not go
// to a shootout (or is unplayed).
const (
	ShootoutUs   = "us"
	ShootoutThem = "them"
)

// Game is one fixture for the team. The EventLog column holds the game's
// full goal/penalty record as a single versioned JSON payload, replaced
// wholesale on every goals-tab save.
type Game struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Opponent   string `json:"opponent"`
	League     string `json:"league"`
	Venue      string `json:"venue"`
	City       string `json:"city"`
	DateRaw    string `json:"date_raw"` // "2006-01-02"
	TimeRaw    string `json:"time_raw"` // "15:04"
	GatherTime string `json:"gather_time"`
	Notes      string `json:"notes"`

	Played         bool   `json:"played"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	ShootoutWinner string `gorm:"size:8" json:"shootout_winner"`

	EventLog datatypes.JSON `json:"event_log"`
}

// RegulationGoalsFor is our team's goal count net of the shootout bonus: a
// shootout win adds one to the raw score that no goal event backs.
func (g Game) RegulationGoalsFor() int {
	n := g.GoalsFor
	if g.ShootoutWinner == ShootoutUs {
		n--
	}
	if n < 0 {
		n = 0
	}
	return n
}
