package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/swipeup-app/swipeup/db"
	"github.com/swipeup-app/swipeup/internal/auth"
	"github.com/swipeup-app/swipeup/internal/config"
	"github.com/swipeup-app/swipeup/internal/router"
	"github.com/swipeup-app/swipeup/internal/store/gormstore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := auth.Init(cfg.JWTSecret); err != nil {
		log.Fatalf("Failed to init auth: %v", err)
	}

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	gormDB, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	r := router.NewRouter(cfg, gormstore.New(gormDB))

	if err := r.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
