package stats

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Bulkmaker/propeleri-sub000/internal/eventlog"
	"github.com/Bulkmaker/propeleri-sub000/internal/games"
	"github.com/Bulkmaker/propeleri-sub000/internal/lineup"
)

// Handler owns the goals-tab save flow: event log in, stat rows out.
type Handler struct {
	gamesRepo  *games.Repo
	lineupRepo *lineup.Repo
	repo       *Repo
}

func NewHandler(gamesRepo *games.Repo, lineupRepo *lineup.Repo, repo *Repo) *Handler {
	return &Handler{gamesRepo: gamesRepo, lineupRepo: lineupRepo, repo: repo}
}

type saveEventsReq struct {
	GoalEvents    []eventlog.GoalEvent    `json:"goal_events"`
	PenaltyEvents []eventlog.PenaltyEvent `json:"penalty_events"`
	GoalieReport  *eventlog.GoalieReport  `json:"goalie_report"`
	// Admin-entered plus/minus per player; omitted players keep their prior value.
	PlusMinus map[uint]int `json:"plus_minus"`
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	gameID := func(c *gin.Context) (uint, bool) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
			return 0, false
		}
		return uint(id), true
	}

	// The editor view: stored log with the goal-event list reconciled to the
	// regulation goal count (padded with empty rows or truncated).
	api.GET("/games/:id/events", func(c *gin.Context) {
		id, ok := gameID(c)
		if !ok {
			return
		}
		g, err := h.gamesRepo.Get(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
			return
		}
		l := eventlog.Decode(g.EventLog)
		target := g.RegulationGoalsFor()
		l.GoalEvents = eventlog.ReconcileCount(l.GoalEvents, target)
		c.JSON(http.StatusOK, gin.H{
			"log":          l,
			"target_goals": target,
		})
	})

	// Replace the event log and rematerialize the game's stat rows.
	//
	// Callers that changed score/shootout fields must save those first: the
	// regulation goal count read here comes from the stored game record.
	api.PUT("/games/:id/events", func(c *gin.Context) {
		id, ok := gameID(c)
		if !ok {
			return
		}
		g, err := h.gamesRepo.Get(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
			return
		}
		var req saveEventsReq
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		l := eventlog.Clean(eventlog.Log{
			GoalEvents:    req.GoalEvents,
			PenaltyEvents: req.PenaltyEvents,
			GoalieReport:  req.GoalieReport,
		})
		// Empty editor rows are already gone; excess events beyond the
		// regulation count cannot stand either.
		if target := g.RegulationGoalsFor(); len(l.GoalEvents) > target {
			l.GoalEvents = eventlog.ReconcileCount(l.GoalEvents, target)
		}

		raw, err := eventlog.Encode(l)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := h.gamesRepo.SaveEventLog(c.Request.Context(), id, raw); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		// Presence: everyone in the lineup or the prior stat set keeps a row
		// even at zero stats, and prior plus/minus survives unless the
		// request overrides it.
		prior, err := h.repo.ListForGame(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		lineupRows, err := h.lineupRepo.Load(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		var present []uint
		plusMinus := map[uint]int{}
		for _, row := range prior {
			present = append(present, row.PlayerID)
			plusMinus[row.PlayerID] = row.PlusMinus
		}
		for _, row := range lineupRows {
			present = append(present, row.PlayerID)
		}
		for playerID, pm := range req.PlusMinus {
			plusMinus[playerID] = pm
		}

		rows := Materialize(id, l, present, plusMinus)
		if err := h.repo.ReplaceForGame(c.Request.Context(), id, rows); err != nil {
			// Delete may have landed without the insert; the same save must
			// be retried to converge.
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "retryable": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"rows": rows})
	})

	// Hand-entered rows, legacy games only: once a game has an event log the
	// materializer owns the rows and direct edits are refused.
	api.PUT("/games/:id/stats", func(c *gin.Context) {
		id, ok := gameID(c)
		if !ok {
			return
		}
		g, err := h.gamesRepo.Get(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
			return
		}
		if !eventlog.Decode(g.EventLog).Empty() {
			c.JSON(http.StatusConflict, gin.H{"error": "stats are derived from the event log for this game"})
			return
		}
		var rows []StatLine
		if err := c.BindJSON(&rows); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		if err := h.repo.ReplaceForGame(c.Request.Context(), id, rows); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "retryable": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"rows": rows})
	})

	// Materialized rows for a game.
	api.GET("/games/:id/stats", func(c *gin.Context) {
		id, ok := gameID(c)
		if !ok {
			return
		}
		rows, err := h.repo.ListForGame(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rows)
	})
}
