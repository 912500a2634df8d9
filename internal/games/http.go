package games

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type createOrUpdateReq struct {
	Opponent       *string `json:"opponent"`
	League         *string `json:"league"`
	Venue          *string `json:"venue"`
	City           *string `json:"city"`
	DateRaw        *string `json:"date_raw"`
	TimeRaw        *string `json:"time_raw"`
	GatherTime     *string `json:"gather_time"`
	Notes          *string `json:"notes"`
	Played         *bool   `json:"played"`
	GoalsFor       *int    `json:"goals_for"`
	GoalsAgainst   *int    `json:"goals_against"`
	ShootoutWinner *string `json:"shootout_winner"`
}

// apply merges the request onto a game: nil fields keep the current value.
func (req createOrUpdateReq) apply(g *Game) error {
	setStr := func(dst *string, p *string) {
		if p != nil {
			*dst = *p
		}
	}
	setStr(&g.Opponent, req.Opponent)
	setStr(&g.League, req.League)
	setStr(&g.Venue, req.Venue)
	setStr(&g.City, req.City)
	setStr(&g.DateRaw, req.DateRaw)
	setStr(&g.TimeRaw, req.TimeRaw)
	setStr(&g.GatherTime, req.GatherTime)
	setStr(&g.Notes, req.Notes)
	if req.Played != nil {
		g.Played = *req.Played
	}
	if req.GoalsFor != nil {
		g.GoalsFor = *req.GoalsFor
	}
	if req.GoalsAgainst != nil {
		g.GoalsAgainst = *req.GoalsAgainst
	}
	if req.ShootoutWinner != nil {
		switch *req.ShootoutWinner {
		case "", ShootoutUs, ShootoutThem:
			g.ShootoutWinner = *req.ShootoutWinner
		default:
			return fmt.Errorf("shootout_winner must be %q, %q or empty", ShootoutUs, ShootoutThem)
		}
	}
	return nil
}

func RegisterRoutes(r *gin.Engine, repo *Repo) {
	api := r.Group("/api")

	api.GET("/games", func(c *gin.Context) {
		list, err := repo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, list)
	})

	api.GET("/games/:id", func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		g, err := repo.Get(c.Request.Context(), uint(id))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
			return
		}
		c.JSON(http.StatusOK, g)
	})

	api.POST("/games", func(c *gin.Context) {
		var req createOrUpdateReq
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		var g Game
		if err := req.apply(&g); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := repo.Create(c.Request.Context(), &g); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, g)
	})

	api.PUT("/games/:id", func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		g, err := repo.Get(c.Request.Context(), uint(id))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
			return
		}
		var req createOrUpdateReq
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		if err := req.apply(&g); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := repo.Save(c.Request.Context(), &g); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, g)
	})

	api.DELETE("/games/:id", func(c *gin.Context) {
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

	// Delete all games (dangerous)
	api.DELETE("/games", func(c *gin.Context) {
		n, err := repo.DeleteAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": n})
	})

	// Import a season schedule from CSV or XLSX
	api.POST("/games/import", func(c *gin.Context) {
		if err := c.Request.ParseMultipartForm(12 << 20); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "multipart too large"})
			return
		}
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
			return
		}
		rows, err := parseImport(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		imported := 0
		var errs []string
		for idx := range rows {
			if err := repo.Create(c.Request.Context(), &rows[idx]); err != nil {
				errs = append(errs, fmt.Sprintf("row %d: %v", idx+2, err))
			} else {
				imported++
			}
		}
		c.JSON(http.StatusOK, gin.H{"imported": imported, "failed": len(errs), "errors": errs})
	})

	// iCal export of the schedule
	api.GET("/games.ics", func(c *gin.Context) {
		list, err := repo.List(c.Request.Context())
		if err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}

		c.Header("Content-Type", "text/calendar; charset=utf-8")
		c.Header("Content-Disposition", "attachment; filename=games.ics")
		writeICS(c.Writer, list, time.Now())
	})
}

// writeICS renders the schedule as an iCalendar document. RFC 5545 wants
// CRLF line endings throughout.
func writeICS(w io.Writer, list []Game, now time.Time) {
	fmt.Fprint(w, "BEGIN:VCALENDAR\r\n")
	fmt.Fprint(w, "VERSION:2.0\r\n")
	fmt.Fprint(w, "PRODID:-//propeleri//EN\r\n")
	fmt.Fprint(w, "CALSCALE:GREGORIAN\r\n")

	stamp := now.UTC().Format("20060102T150405Z")
	loc, _ := time.LoadLocation("Europe/Zagreb")

	for _, g := range list {
		start, ok := g.StartTime(loc)
		if !ok {
			continue
		}
		summary := "Game"
		if g.Opponent != "" {
			summary = "vs " + g.Opponent
		}
		location := g.Venue
		if g.City != "" {
			if location != "" {
				location += ", "
			}
			location += g.City
		}
		fmt.Fprint(w, "BEGIN:VEVENT\r\n")
		fmt.Fprintf(w, "UID:game-%d@propeleri\r\n", g.ID)
		fmt.Fprintf(w, "DTSTAMP:%s\r\n", stamp)
		fmt.Fprintf(w, "DTSTART:%s\r\n", start.UTC().Format("20060102T150405Z"))
		fmt.Fprintf(w, "DTEND:%s\r\n", start.Add(90*time.Minute).UTC().Format("20060102T150405Z"))
		fmt.Fprintf(w, "SUMMARY:%s\r\n", summary)
		if location != "" {
			fmt.Fprintf(w, "LOCATION:%s\r\n", location)
		}
		fmt.Fprint(w, "END:VEVENT\r\n")
	}
	fmt.Fprint(w, "END:VCALENDAR\r\n")
}
