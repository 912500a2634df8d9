package trainings

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Training is one practice session.
type Training struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	DateRaw   string    `json:"date_raw"`
	Notes     string    `json:"notes"`
}

// Attendance marks one player present at one training.
type Attendance struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	TrainingID uint `gorm:"index;not null" json:"training_id"`
	PlayerID   uint `gorm:"index;not null" json:"player_id"`
}

func (Attendance) TableName() string { return "training_attendance" }

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Create(ctx context.Context, t *Training) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create training: %w", err)
	}
	return nil
}

func (r *Repo) List(ctx context.Context) ([]Training, error) {
	var out []Training
	err := r.db.WithContext(ctx).Order("date_raw, id").Find(&out).Error
	return out, err
}

func (r *Repo) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("training_id = ?", id).Delete(&Attendance{}).Error; err != nil {
		return err
	}
	return db.Delete(&Training{}, id).Error
}

// SetAttendance replaces a training's attendance list wholesale, same
// replace-on-save shape the lineup rows use.
func (r *Repo) SetAttendance(ctx context.Context, trainingID uint, playerIDs []uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("training_id = ?", trainingID).Delete(&Attendance{}).Error; err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	rows := make([]Attendance, 0, len(playerIDs))
	for _, id := range playerIDs {
		if id != 0 {
			rows = append(rows, Attendance{TrainingID: trainingID, PlayerID: id})
		}
	}
	if len(rows) == 0 {
		return nil
	}
	if err := db.Create(&rows).Error; err != nil {
		return fmt.Errorf("insert attendance: %w", err)
	}
	return nil
}

// AllAttendance returns every attendance row's player id (aggregate input).
func (r *Repo) AllAttendance(ctx context.Context) ([]uint, error) {
	var rows []Attendance
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	out := make([]uint, 0, len(rows))
	for _, a := range rows {
		out = append(out, a.PlayerID)
	}
	return out, nil
}

func RegisterRoutes(r *gin.Engine, repo *Repo) {
	api := r.Group("/api")

	api.GET("/trainings", func(c *gin.Context) {
		list, err := repo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, list)
	})

	api.POST("/trainings", func(c *gin.Context) {
		var t Training
		if err := c.BindJSON(&t); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		t.ID = 0
		if err := repo.Create(c.Request.Context(), &t); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, t)
	})

	api.DELETE("/trainings/:id", func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		if err := repo.Delete(c.Request.Context(), uint(id)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	})

	api.PUT("/trainings/:id/attendance", func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		var req struct {
			PlayerIDs []uint `json:"player_ids"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		if err := repo.SetAttendance(c.Request.Context(), uint(id), req.PlayerIDs); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "retryable": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"saved": len(req.PlayerIDs)})
	})
}
