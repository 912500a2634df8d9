package roster

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Create(ctx context.Context, p *Player) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create player: %w", err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id uint) (Player, error) {
	var p Player
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return Player{}, err
	}
	return p, nil
}

// List returns the directory sorted by jersey number, the order slot pickers
// present candidates in.
func (r *Repo) List(ctx context.Context) ([]Player, error) {
	var out []Player
	err := r.db.WithContext(ctx).Order("jersey_number, name").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return out, nil
}

func (r *Repo) Save(ctx context.Context, p *Player) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("save player: %w", err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&Player{}, id).Error; err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	return nil
}
