package teamroutes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"

	"github.com/clubhub/backend/internal/config"
	"github.com/clubhub/backend/internal/middleware"
	models "github.com/clubhub/backend/internal/models/users"
	"github.com/clubhub/backend/internal/repo"
	teamService "github.com/clubhub/backend/internal/service/team"
)

func TeamRoutes(router *mux.Router, db *sqlx.DB, cfg *config.Config) {
	teamService := teamService.NewTeamService(repo.NewTeamRepo(db))

	publicRouter := router.PathPrefix("/teams").Subrouter()
	publicRouter.Use(middleware.ResponseWrapper)
	publicRouter.HandleFunc("", teamService.ListTeams).Methods(http.MethodGet)

	protectedRouter := router.PathPrefix("/teams").Subrouter()
	protectedRouter.Use(middleware.Auth(cfg.JWTSecret), middleware.ResponseWrapper)
	protectedRouter.HandleFunc("", teamService.CreateTeam).Methods(http.MethodPost)
	protectedRouter.HandleFunc("/{id}/request-join", teamService.RequestJoin).Methods(http.MethodPost)
	protectedRouter.HandleFunc("/{id}/approve-request", teamService.ApproveRequest).Methods(http.MethodPost)
	protectedRouter.HandleFunc("/{id}/reject-request", teamService.RejectRequest).Methods(http.MethodPost)

	adminRouter := router.PathPrefix("/teams").Subrouter()
	adminRouter.Use(middleware.Auth(cfg.JWTSecret), middleware.RequireRole(models.RoleAdmin), middleware.ResponseWrapper)
	adminRouter.HandleFunc("/{id}", teamService.DeleteTeam).Methods(http.MethodDelete)
}
