package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/david/sam-finder/internal/api"
	"github.com/david/sam-finder/internal/config"
	"github.com/david/sam-finder/internal/sam"
)

func main() {
	// Optional .env next to the binary; real environments set vars directly.
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	catalog, err := config.LoadCatalog()
	if err != nil {
		log.Fatalf("Catalog error: %v", err)
	}

	client := sam.New(cfg.BaseURL, cfg.APIKey, nil)
	srv := api.NewServer(client, catalog)
	log.Printf("Server starting on port %s...", cfg.Port)
	if err := srv.Start(cfg.Port); err != nil {
		log.Fatal(err)
	}
}
