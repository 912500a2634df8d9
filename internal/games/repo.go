package games

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Create(ctx context.Context, g *Game) error {
	if err := r.db.WithContext(ctx).Create(g).Error; err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id uint) (Game, error) {
	var g Game
	if err := r.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return Game{}, err
	}
	return g, nil
}

func (r *Repo) List(ctx context.Context) ([]Game, error) {
	var out []Game
	err := r.db.WithContext(ctx).Order("date_raw, time_raw, id").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return out, nil
}

func (r *Repo) Save(ctx context.Context, g *Game) error {
	if err := r.db.WithContext(ctx).Save(g).Error; err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

// SaveEventLog replaces only the event-log payload column.
func (r *Repo) SaveEventLog(ctx context.Context, id uint, raw []byte) error {
	err := r.db.WithContext(ctx).Model(&Game{}).Where("id = ?", id).
		Update("event_log", raw).Error
	if err != nil {
		return fmt.Errorf("save event log: %w", err)
	}
	return nil
}

// Delete removes a game together with its derived collections. The owned
// rows live in other packages' tables; deleting by game_id here keeps game
// deletion a single call site.
func (r *Repo) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Exec("DELETE FROM lineup_rows WHERE game_id = ?", id).Error; err != nil {
		return fmt.Errorf("delete lineup rows: %w", err)
	}
	if err := db.Exec("DELETE FROM stat_lines WHERE game_id = ?", id).Error; err != nil {
		return fmt.Errorf("delete stat lines: %w", err)
	}
	if err := db.Delete(&Game{}, id).Error; err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	return nil
}

// DeleteAll wipes every game and derived row (maintenance endpoint).
func (r *Repo) DeleteAll(ctx context.Context) (int64, error) {
	db := r.db.WithContext(ctx)
	if err := db.Exec("DELETE FROM lineup_rows").Error; err != nil {
		return 0, err
	}
	if err := db.Exec("DELETE FROM stat_lines").Error; err != nil {
		return 0, err
	}
	res := db.Exec("DELETE FROM games")
	return res.RowsAffected, res.Error
}

// StartTime builds the local kickoff time from the raw date/time fields.
func (g Game) StartTime(loc *time.Location) (time.Time, bool) {
	if g.DateRaw == "" {
		return time.Time{}, false
	}
	tm := g.TimeRaw
	if tm == "" {
		tm = "00:00"
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", g.DateRaw+" "+tm, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
