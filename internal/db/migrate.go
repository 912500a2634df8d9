package db

import (
	"log"

	"gorm.io/gorm"
)

// AutoMigrate creates or extends the schema for the given models at startup.
// Additive only; it never drops columns a newer build stops using.
func AutoMigrate(d *gorm.DB, models ...any) {
	if err := d.AutoMigrate(models...); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Printf("schema up to date (%d models)", len(models))
}
