package main

import (
	"log"

	"github.com/receitinhas/backend/config"
	"github.com/receitinhas/backend/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := database.RunMigrations(db.Gorm()); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Printf("Migrations complete")
}
