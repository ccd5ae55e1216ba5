package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	eventmodels "github.com/clubhub/backend/internal/models/events"
)

type StatsRepo struct {
	db *sqlx.DB
}

func NewStatsRepo(db *sqlx.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// Counts returns the total number of users, events and teams.
func (r *StatsRepo) Counts(ctx context.Context) (users, events, teams int64, err error) {
	const op = "repo.stats.Counts"

	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM events),
			(SELECT COUNT(*) FROM teams)`

	if err := r.db.QueryRowxContext(ctx, query).Scan(&users, &events, &teams); err != nil {
		return 0, 0, 0, fmt.Errorf("%s: %w", op, err)
	}

	return users, events, teams, nil
}

// MostPopularEvent returns the approved event with the most registrations,
// or nil when no approved event exists.
func (r *StatsRepo) MostPopularEvent(ctx context.Context) (*eventmodels.PopularEvent, error) {
	const op = "repo.stats.MostPopularEvent"

	query := `
		SELECT e.name,
		       (SELECT COUNT(*) FROM event_registrations er WHERE er.event_id = e.event_id) AS registrations
		FROM events e
		WHERE e.approved = 1
		ORDER BY registrations DESC, e.event_id
		LIMIT 1`

	var popular eventmodels.PopularEvent
	if err := r.db.GetContext(ctx, &popular, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &popular, nil
}
