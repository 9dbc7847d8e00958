package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/ibrahim11elian/PeakBooker/internal/app"
	"github.com/ibrahim11elian/PeakBooker/internal/config"
)

func main() {
	// Missing .env is fine, config falls back to the yaml file.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
