package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/clubhub/backend/internal/apperrors"
	eventmodels "github.com/clubhub/backend/internal/models/events"
	teammodels "github.com/clubhub/backend/internal/models/teams"
	models "github.com/clubhub/backend/internal/models/users"
)

type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// CreateUser inserts a new user with the member role. The unique keys on
// username and email back the global uniqueness invariant.
func (r *UserRepo) CreateUser(ctx context.Context, username, email, hashedPassword string) (int64, error) {
	const op = "repo.user.CreateUser"

	query := `INSERT INTO users (username, email, password, role, created_at) VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, username, email, hashedPassword, models.RoleMember, time.Now().UTC().Unix())
	if err != nil {
		if isDuplicateKey(err, "uq_users_username") {
			return 0, fmt.Errorf("%s: %w", op, apperrors.ErrUsernameTaken)
		}
		if isDuplicateKey(err, "uq_users_email") {
			return 0, fmt.Errorf("%s: %w", op, apperrors.ErrEmailTaken)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	const op = "repo.user.GetUserByUsername"

	query := `SELECT user_id, username, email, password, role, avatar, created_at FROM users WHERE username = ?`

	var user models.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("%s: %w", op, apperrors.ErrUserNotFound)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (r *UserRepo) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	const op = "repo.user.GetUserByID"

	query := `SELECT user_id, username, email, role, avatar, created_at FROM users WHERE user_id = ?`

	var user models.User
	if err := r.db.GetContext(ctx, &user, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("%s: %w", op, apperrors.ErrUserNotFound)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (r *UserRepo) SetAvatar(ctx context.Context, userID int64, avatar string) error {
	const op = "repo.user.SetAvatar"

	query := `UPDATE users SET avatar = ? WHERE user_id = ?`

	result, err := r.db.ExecContext(ctx, query, avatar, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// Rows affected is 0 both for a missing user and an unchanged avatar, so
	// confirm existence separately only when nothing matched.
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		if _, err := r.GetUserByID(ctx, userID); err != nil {
			return err
		}
	}

	return nil
}

// GetUserTeams returns the teams the user belongs to.
func (r *UserRepo) GetUserTeams(ctx context.Context, userID int64) ([]teammodels.Team, error) {
	const op = "repo.user.GetUserTeams"

	query := `
		SELECT t.team_id, t.team_name, t.description, t.leader_id, t.avatar, t.created_at
		FROM teams t
		JOIN team_members tm ON t.team_id = tm.team_id
		WHERE tm.user_id = ?
		ORDER BY t.created_at DESC`

	teams := []teammodels.Team{}
	if err := r.db.SelectContext(ctx, &teams, query, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return teams, nil
}

// GetRegisteredEvents returns the approved events the user registered for.
func (r *UserRepo) GetRegisteredEvents(ctx context.Context, userID int64) ([]eventmodels.Event, error) {
	const op = "repo.user.GetRegisteredEvents"

	query := `
		SELECT e.event_id, e.name, e.description, e.event_date, e.location, e.approved,
		       (SELECT COUNT(*) FROM event_votes v WHERE v.event_id = e.event_id) AS votes,
		       e.winner_name, e.post_event_description, e.created_at
		FROM events e
		JOIN event_registrations er ON e.event_id = er.event_id
		WHERE er.user_id = ? AND e.approved = 1
		ORDER BY e.event_date`

	events := []eventmodels.Event{}
	if err := r.db.SelectContext(ctx, &events, query, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}
