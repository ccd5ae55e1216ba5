package userRoutes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"

	"github.com/clubhub/backend/internal/config"
	"github.com/clubhub/backend/internal/middleware"
	"github.com/clubhub/backend/internal/repo"
	profileService "github.com/clubhub/backend/internal/service/users"
)

func UserProfileRoutes(router *mux.Router, db *sqlx.DB, cfg *config.Config) {
	profileService := profileService.NewProfileService(repo.NewUserRepo(db))

	// Protected routes requiring authentication
	protectedRouter := router.PathPrefix("/users/profile").Subrouter()
	protectedRouter.Use(middleware.Auth(cfg.JWTSecret), middleware.ResponseWrapper)

	protectedRouter.HandleFunc("/photo", profileService.UpdateProfilePhoto).Methods(http.MethodPut)
	protectedRouter.HandleFunc("/me", profileService.GetMyProfile).Methods(http.MethodGet)
}
