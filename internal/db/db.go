package db

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "modernc.org/sqlite"
)

// Open connects via the cgo-free modernc driver (registered name "sqlite").
func Open(path string) *gorm.DB {
	d, err := gorm.Open(sqlite.New(sqlite.Config{
		DSN:        path,
		DriverName: "sqlite",
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	// SQLite leaves FK constraints off unless asked
	d.Exec("PRAGMA foreign_keys = ON;")
	return d
}
