package analyticsRoutes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"

	"github.com/clubhub/backend/internal/config"
	"github.com/clubhub/backend/internal/middleware"
	models "github.com/clubhub/backend/internal/models/users"
	"github.com/clubhub/backend/internal/repo"
	statsService "github.com/clubhub/backend/internal/service/analytics"
)

func AnalyticsRoutes(router *mux.Router, db *sqlx.DB, cfg *config.Config) {
	statsService := statsService.NewStatsService(repo.NewStatsRepo(db))

	adminRouter := router.PathPrefix("/analytics").Subrouter()
	adminRouter.Use(middleware.Auth(cfg.JWTSecret), middleware.RequireRole(models.RoleAdmin), middleware.ResponseWrapper)
	adminRouter.HandleFunc("/stats", statsService.GetStats).Methods(http.MethodGet)
}
