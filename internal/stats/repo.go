package stats

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) ListForGame(ctx context.Context, gameID uint) ([]StatLine, error) {
	var out []StatLine
	err := r.db.WithContext(ctx).Where("game_id = ?", gameID).Order("player_id").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list stats: %w", err)
	}
	return out, nil
}

// ListAll returns every stat row across all games (leaderboard input).
func (r *Repo) ListAll(ctx context.Context) ([]StatLine, error) {
	var out []StatLine
	err := r.db.WithContext(ctx).Order("game_id, player_id").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list all stats: %w", err)
	}
	return out, nil
}

// ReplaceForGame swaps in a freshly materialized row set: delete everything
// for the game, then insert. There is no client-side transaction; a failure
// between the two steps leaves the game with zero rows, and the caller must
// surface the error so the operator retries the same save (the delete is
// scoped and repeatable, so the retry converges).
func (r *Repo) ReplaceForGame(ctx context.Context, gameID uint, rows []StatLine) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("game_id = ?", gameID).Delete(&StatLine{}).Error; err != nil {
		return fmt.Errorf("delete stat rows: %w", err)
	}
	for i := range rows {
		rows[i].ID = 0
		rows[i].GameID = gameID
	}
	if len(rows) == 0 {
		return nil
	}
	if err := db.Create(&rows).Error; err != nil {
		return fmt.Errorf("insert stat rows: %w", err)
	}
	return nil
}
