package eventroutes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"

	"github.com/clubhub/backend/internal/config"
	"github.com/clubhub/backend/internal/middleware"
	models "github.com/clubhub/backend/internal/models/users"
	"github.com/clubhub/backend/internal/repo"
	eventService "github.com/clubhub/backend/internal/service/event"
)

func EventRoutes(router *mux.Router, db *sqlx.DB, cfg *config.Config) {
	eventService := eventService.NewEventService(repo.NewEventRepo(db))

	publicRouter := router.PathPrefix("/events").Subrouter()
	publicRouter.Use(middleware.ResponseWrapper)
	publicRouter.HandleFunc("", eventService.ListEvents).Methods(http.MethodGet)
	publicRouter.HandleFunc("/{id}", eventService.GetEvent).Methods(http.MethodGet)

	protectedRouter := router.PathPrefix("/events").Subrouter()
	protectedRouter.Use(middleware.Auth(cfg.JWTSecret), middleware.ResponseWrapper)
	protectedRouter.HandleFunc("", eventService.CreateEvent).Methods(http.MethodPost)
	protectedRouter.HandleFunc("/{id}/vote", eventService.Vote).Methods(http.MethodPost)
	protectedRouter.HandleFunc("/{id}/register", eventService.Register).Methods(http.MethodPost)
	// Complete checks organizer-or-admin itself; the route only requires a token.
	protectedRouter.HandleFunc("/{id}/complete", eventService.Complete).Methods(http.MethodPost)

	adminRouter := router.PathPrefix("/events").Subrouter()
	adminRouter.Use(middleware.Auth(cfg.JWTSecret), middleware.RequireRole(models.RoleAdmin), middleware.ResponseWrapper)
	adminRouter.HandleFunc("/{id}/approve", eventService.Approve).Methods(http.MethodPatch)
	adminRouter.HandleFunc("/{id}/registrants", eventService.ListRegistrants).Methods(http.MethodGet)
	adminRouter.HandleFunc("/{id}", eventService.DeleteEvent).Methods(http.MethodDelete)
}
