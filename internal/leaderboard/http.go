package leaderboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Bulkmaker/propeleri-sub000/internal/stats"
	"github.com/Bulkmaker/propeleri-sub000/internal/trainings"
)

func RegisterRoutes(r *gin.Engine, statsRepo *stats.Repo, trainingsRepo *trainings.Repo) {
	api := r.Group("/api")

	// Ranked totals across all games. ?metric=points|goals|assists
	api.GET("/leaderboard", func(c *gin.Context) {
		metric, ok := ParseMetric(c.Query("metric"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown metric"})
			return
		}
		rows, err := statsRepo.ListAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, Rank(Aggregate(rows), metric))
	})

	api.GET("/leaderboard/attendance", func(c *gin.Context) {
		ids, err := trainingsRepo.AllAttendance(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, AggregateAttendance(ids))
	})
}
