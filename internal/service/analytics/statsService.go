package statsService

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/clubhub/backend/internal/logger"
	eventmodels "github.com/clubhub/backend/internal/models/events"
)

// StatsStore is the read-only aggregation surface. It carries no invariants
// of its own.
type StatsStore interface {
	Counts(ctx context.Context) (users, events, teams int64, err error)
	MostPopularEvent(ctx context.Context) (*eventmodels.PopularEvent, error)
}

type StatsService struct {
	Store StatsStore
	Log   *logger.Logger
}

func NewStatsService(store StatsStore) *StatsService {
	return &StatsService{
		Store: store,
		Log:   logger.NewLogger("stats-service"),
	}
}

// GetStats returns aggregate counts and the most popular approved event.
// The admin gate sits in the route middleware.
func (ss *StatsService) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, events, teams, err := ss.Store.Counts(ctx)
	if err != nil {
		ss.Log.Error("Failed to count entities", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to get stats")
		return
	}

	popular, err := ss.Store.MostPopularEvent(ctx)
	if err != nil {
		ss.Log.Error("Failed to find most popular event", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to get stats")
		return
	}

	stats := map[string]interface{}{
		"users": map[string]interface{}{"total": users},
		"events": map[string]interface{}{
			"total":       events,
			"mostPopular": popular,
		},
		"teams": map[string]interface{}{"total": teams},
	}

	respondWithJSON(w, http.StatusOK, stats)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"message": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
