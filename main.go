package main

import (
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	dbpkg "github.com/Bulkmaker/propeleri-sub000/internal/db"
	"github.com/Bulkmaker/propeleri-sub000/internal/games"
	"github.com/Bulkmaker/propeleri-sub000/internal/leaderboard"
	"github.com/Bulkmaker/propeleri-sub000/internal/lineup"
	"github.com/Bulkmaker/propeleri-sub000/internal/roster"
	"github.com/Bulkmaker/propeleri-sub000/internal/stats"
	"github.com/Bulkmaker/propeleri-sub000/internal/trainings"
)

func main() {
	d := dbpkg.Open(env("DB_PATH", "propeleri.db"))
	dbpkg.AutoMigrate(d,
		&roster.Player{},
		&games.Game{},
		&lineup.Row{},
		&stats.StatLine{},
		&trainings.Training{},
		&trainings.Attendance{},
	)

	rosterRepo := roster.NewRepo(d)
	gamesRepo := games.NewRepo(d)
	lineupRepo := lineup.NewRepo(d)
	statsRepo := stats.NewRepo(d)
	trainingsRepo := trainings.NewRepo(d)

	r := gin.Default()
	// Default trusts only loopback; override via TRUSTED_PROXIES (comma-separated CIDRs/IPs)
	tp := strings.Split(env("TRUSTED_PROXIES", "127.0.0.1,::1"), ",")
	for i := range tp {
		tp[i] = strings.TrimSpace(tp[i])
	}
	if err := r.SetTrustedProxies(tp); err != nil {
		log.Fatalf("trusted proxies: %v", err)
	}

	roster.RegisterRoutes(r, rosterRepo)
	games.RegisterRoutes(r, gamesRepo)
	lineup.RegisterRoutes(r, lineup.NewSessions(lineupRepo), lineupRepo)
	stats.NewHandler(gamesRepo, lineupRepo, statsRepo).RegisterRoutes(r)
	trainings.RegisterRoutes(r, trainingsRepo)
	leaderboard.RegisterRoutes(r, statsRepo, trainingsRepo)

	addr := env("ADDR", ":8080")
	log.Printf("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
