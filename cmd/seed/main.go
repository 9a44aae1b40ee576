package main

import (
	"log"

	"github.com/SpeedAtlas/SA-Backend/internal/config"
	"github.com/SpeedAtlas/SA-Backend/internal/db"
	"github.com/SpeedAtlas/SA-Backend/internal/seeds"
	"github.com/SpeedAtlas/SA-Backend/internal/speedtest"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	conn, err := db.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("❌ Failed to open database: %v", err)
	}

	store := speedtest.NewStore(conn)
	if err := store.Migrate(); err != nil {
		log.Fatalf("❌ Failed to migrate database: %v", err)
	}

	if err := seeds.SeedSpeedTests(store, 100); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
}
