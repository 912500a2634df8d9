package lineup

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Row is the persisted form of one occupied slot. Goalie rows carry
// line_number 0 and slot_position "GK"/"BK".
type Row struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	GameID         uint   `gorm:"index;not null" json:"game_id"`
	PlayerID       uint   `gorm:"index;not null" json:"player_id"`
	Designation    string `json:"designation"`
	PositionPlayed string `gorm:"size:16" json:"position_played"`
	LineNumber     int    `json:"line_number"`
	SlotPosition   string `gorm:"size:4" json:"slot_position"`
}

func (Row) TableName() string { return "lineup_rows" }

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// Load returns the persisted rows for a game in stable order.
func (r *Repo) Load(ctx context.Context, gameID uint) ([]Row, error) {
	var out []Row
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("line_number, slot_position").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("load lineup: %w", err)
	}
	return out, nil
}

// Replace persists a snapshot with full-replace semantics: every old row for
// the game is deleted, then the new rows inserted. Idempotent regardless of
// prior state; readers may observe a transient empty lineup between the two
// steps.
func (r *Repo) Replace(ctx context.Context, gameID uint, rows []Row) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("game_id = ?", gameID).Delete(&Row{}).Error; err != nil {
		return fmt.Errorf("delete lineup rows: %w", err)
	}
	for i := range rows {
		rows[i].ID = 0
		rows[i].GameID = gameID
	}
	if len(rows) == 0 {
		return nil
	}
	if err := db.Create(&rows).Error; err != nil {
		return fmt.Errorf("insert lineup rows: %w", err)
	}
	return nil
}

// DeleteForGame removes a game's lineup entirely (game deletion, explicit
// clear-all).
func (r *Repo) DeleteForGame(ctx context.Context, gameID uint) error {
	if err := r.db.WithContext(ctx).Where("game_id = ?", gameID).Delete(&Row{}).Error; err != nil {
		return fmt.Errorf("delete lineup: %w", err)
	}
	return nil
}
