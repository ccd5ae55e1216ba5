package main

import (
	"net/http"

	"github.com/clubhub/backend/internal/config"
	"github.com/clubhub/backend/internal/database"
	"github.com/clubhub/backend/internal/logger"
	"github.com/clubhub/backend/internal/routes"
)

func main() {
	cfg := config.MustLoad()

	log := logger.NewLogger("club-backend")
	defer log.Sync()

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := database.Migrate(db, log); err != nil {
		log.Fatal("Failed to run migrations", "error", err)
	}

	router := routes.RegisterAllRoutes(db, cfg)

	log.Info("Server is running", "port", cfg.Server.Port, "env", cfg.Env)
	if err := http.ListenAndServe(":"+cfg.Server.Port, router); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}
