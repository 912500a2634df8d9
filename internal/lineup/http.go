package lineup

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type slotReq struct {
	Line int     `json:"line"`
	Pos  SlotPos `json:"pos"`
}

func (s slotReq) key() SlotKey { return SlotKey{Line: s.Line, Pos: s.Pos} }

type viewResp struct {
	GameID    uint   `json:"game_id"`
	SessionID string `json:"session_id"`
	Lines     int    `json:"lines"`
	Rows      []Row  `json:"rows"`
	Assigned  []uint `json:"assigned_player_ids"`
}

func viewOf(s *Session) viewResp {
	rows, assigned, lines := s.View()
	return viewResp{GameID: s.GameID, SessionID: s.ID, Lines: lines, Rows: rows, Assigned: assigned}
}

// RegisterRoutes mounts the lineup editor under /api/games/:id/lineup.
// Mutations operate on the in-memory session; persistence happens through
// the debounced auto-save (or POST .../flush).
func RegisterRoutes(r *gin.Engine, sessions *Sessions, repo *Repo) {
	api := r.Group("/api/games/:id/lineup")

	gameID := func(c *gin.Context) (uint, bool) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
			return 0, false
		}
		return uint(id), true
	}

	// Open (or rejoin) the editor session for a game.
	api.POST("/session", func(c *gin.Context) {
		id, ok := gameID(c)
		if !ok {
			return
		}
		s, err := sessions.Open(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, viewOf(s))
	})

	// Persisted rows, bypassing any open session (what storage holds now).
	api.GET("", func(c *gin.Context) {
		id, ok := gameID(c)
		if !ok {
			return
		}
		rows, err := repo.Load(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rows)
	})

	withSession := func(c *gin.Context) (*Session, bool) {
		id, ok := gameID(c)
		if !ok {
			return nil, false
		}
		s, ok := sessions.Get(id)
		if !ok {
			c.JSON(http.StatusConflict, gin.H{"error": "no open lineup session for game"})
			return nil, false
		}
		return s, true
	}

	api.POST("/assign", func(c *gin.Context) {
		s, ok := withSession(c)
		if !ok {
			return
		}
		var req struct {
			Slot     slotReq `json:"slot"`
			PlayerID uint    `json:"player_id"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		s.Assign(req.Slot.key(), req.PlayerID)
		c.JSON(http.StatusOK, viewOf(s))
	})

	api.POST("/swap", func(c *gin.Context) {
		s, ok := withSession(c)
		if !ok {
			return
		}
		var req struct {
			A slotReq `json:"a"`
			B slotReq `json:"b"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		s.Swap(req.A.key(), req.B.key())
		c.JSON(http.StatusOK, viewOf(s))
	})

	api.POST("/clear", func(c *gin.Context) {
		s, ok := withSession(c)
		if !ok {
			return
		}
		var req struct {
			Slot slotReq `json:"slot"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		s.Clear(req.Slot.key())
		c.JSON(http.StatusOK, viewOf(s))
	})

	api.POST("/designation", func(c *gin.Context) {
		s, ok := withSession(c)
		if !ok {
			return
		}
		var req struct {
			Slot slotReq `json:"slot"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		s.CycleDesignation(req.Slot.key())
		c.JSON(http.StatusOK, viewOf(s))
	})

	api.POST("/lines", func(c *gin.Context) {
		s, ok := withSession(c)
		if !ok {
			return
		}
		s.AddLine()
		c.JSON(http.StatusOK, viewOf(s))
	})

	api.DELETE("/lines/:line", func(c *gin.Context) {
		s, ok := withSession(c)
		if !ok {
			return
		}
		line, err := strconv.Atoi(c.Param("line"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line"})
			return
		}
		s.RemoveLine(line)
		c.JSON(http.StatusOK, viewOf(s))
	})

	api.GET("/status", func(c *gin.Context) {
		s, ok := withSession(c)
		if !ok {
			return
		}
		st, lastErr := s.Status()
		resp := gin.H{"status": st}
		if lastErr != nil {
			resp["last_error"] = lastErr.Error()
		}
		c.JSON(http.StatusOK, resp)
	})

	api.POST("/flush", func(c *gin.Context) {
		s, ok := withSession(c)
		if !ok {
			return
		}
		s.Flush()
		st, lastErr := s.Status()
		if lastErr != nil {
			c.JSON(http.StatusBadGateway, gin.H{"status": st, "error": lastErr.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": st})
	})

	// Clear the whole lineup: wipe persisted rows and reset any open editor.
	api.DELETE("", func(c *gin.Context) {
		id, ok := gameID(c)
		if !ok {
			return
		}
		if err := repo.DeleteForGame(c.Request.Context(), id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if s, ok := sessions.Get(id); ok {
			s.Reset()
		}
		c.Status(http.StatusNoContent)
	})

	api.DELETE("/session", func(c *gin.Context) {
		id, ok := gameID(c)
		if !ok {
			return
		}
		sessions.Close(id)
		c.Status(http.StatusNoContent)
	})
}
