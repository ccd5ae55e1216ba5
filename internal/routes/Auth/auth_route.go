package authRoute

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"

	"github.com/clubhub/backend/internal/config"
	"github.com/clubhub/backend/internal/handlers"
	"github.com/clubhub/backend/internal/middleware"
	"github.com/clubhub/backend/internal/repo"
	services "github.com/clubhub/backend/internal/service/auth"
)

func RegisterAuthRoutes(router *mux.Router, db *sqlx.DB, cfg *config.Config) {
	authService := services.NewAuthService(repo.NewUserRepo(db), cfg.JWTSecret)
	authHandler := handlers.NewAuthHandler(authService)

	// Public routes without auth middleware
	publicRouter := router.PathPrefix("/users").Subrouter()
	publicRouter.Use(middleware.ResponseWrapper)
	publicRouter.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	publicRouter.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
}
