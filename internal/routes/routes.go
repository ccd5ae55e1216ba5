package routes

import (
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"

	"github.com/clubhub/backend/internal/config"
	analyticsRoutes "github.com/clubhub/backend/internal/routes/analytics"
	authRoute "github.com/clubhub/backend/internal/routes/Auth"
	eventroutes "github.com/clubhub/backend/internal/routes/EventRoutes"
	teamroutes "github.com/clubhub/backend/internal/routes/TeamRoutes"
	userRoutes "github.com/clubhub/backend/internal/routes/user"
)

// List of all route registration functions
var routeModules = []func(*mux.Router, *sqlx.DB, *config.Config){
	authRoute.RegisterAuthRoutes,
	userRoutes.UserProfileRoutes,
	teamroutes.TeamRoutes,
	eventroutes.EventRoutes,
	analyticsRoutes.AnalyticsRoutes,
}

// Register all routes dynamically
func RegisterAllRoutes(db *sqlx.DB, cfg *config.Config) *mux.Router {
	router := mux.NewRouter()

	for _, register := range routeModules {
		register(router, db, cfg)
	}

	return router
}
