package main

import (
	"log"

	"github.com/Skb111/Community-API-Backend-sub001/internal/bootstrap"
	"github.com/Skb111/Community-API-Backend-sub001/internal/config"
	"github.com/Skb111/Community-API-Backend-sub001/internal/server"
	"github.com/Skb111/Community-API-Backend-sub001/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(database.Config{
		Host:     cfg.DBHost,
		User:     cfg.DBUser,
		Password: cfg.DBPass,
		Name:     cfg.DBName,
		Port:     cfg.DBPort,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedRootUser(db); err != nil {
			log.Fatalf("failed to seed root user: %v", err)
		}
	}

	srv, err := server.NewServer(cfg, db)
	if err != nil {
		log.Fatalf("failed to build server: %v", err)
	}

	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
