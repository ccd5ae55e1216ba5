package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/clubhub/backend/internal/apperrors"
	teammodels "github.com/clubhub/backend/internal/models/teams"
)

type TeamRepo struct {
	db *sqlx.DB
}

func NewTeamRepo(db *sqlx.DB) *TeamRepo {
	return &TeamRepo{db: db}
}

// CreateTeam inserts the team and its leader's membership row in one
// transaction, so the leader is always a member.
func (r *TeamRepo) CreateTeam(ctx context.Context, team teammodels.Team) (int64, error) {
	const op = "repo.team.CreateTeam"

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Unix()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO teams (team_name, description, leader_id, avatar, created_at) VALUES (?, ?, ?, ?, ?)`,
		team.Name, team.Description, team.LeaderID, team.Avatar, now)
	if err != nil {
		if isDuplicateKey(err, "uq_teams_name") {
			return 0, fmt.Errorf("%s: %w", op, apperrors.ErrTeamNameTaken)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	teamID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO team_members (team_id, user_id, joined_at) VALUES (?, ?, ?)`,
		teamID, team.LeaderID, now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return teamID, nil
}

func (r *TeamRepo) GetTeam(ctx context.Context, teamID int64) (teammodels.Team, error) {
	const op = "repo.team.GetTeam"

	query := `SELECT team_id, team_name, description, leader_id, avatar, created_at FROM teams WHERE team_id = ?`

	var team teammodels.Team
	if err := r.db.GetContext(ctx, &team, query, teamID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return teammodels.Team{}, fmt.Errorf("%s: %w", op, apperrors.ErrTeamNotFound)
		}
		return teammodels.Team{}, fmt.Errorf("%s: %w", op, err)
	}

	return team, nil
}

// ListTeams returns every team with leader, members and pending requests
// resolved to usernames.
func (r *TeamRepo) ListTeams(ctx context.Context) ([]teammodels.TeamDetail, error) {
	const op = "repo.team.ListTeams"

	var teams []teammodels.Team
	if err := r.db.SelectContext(ctx, &teams,
		`SELECT team_id, team_name, description, leader_id, avatar, created_at FROM teams ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	members, err := r.membersByTeam(ctx, `team_members`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	pending, err := r.membersByTeam(ctx, `team_join_requests`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	leaders := make(map[int64]string)
	for _, ms := range members {
		for _, m := range ms {
			leaders[m.UserID] = m.Username
		}
	}

	details := make([]teammodels.TeamDetail, 0, len(teams))
	for _, t := range teams {
		detail := teammodels.TeamDetail{
			Team:            t,
			Leader:          leaders[t.LeaderID],
			Members:         members[t.ID],
			PendingRequests: pending[t.ID],
		}
		if detail.Members == nil {
			detail.Members = []teammodels.Member{}
		}
		if detail.PendingRequests == nil {
			detail.PendingRequests = []teammodels.Member{}
		}
		details = append(details, detail)
	}

	return details, nil
}

func (r *TeamRepo) membersByTeam(ctx context.Context, table string) (map[int64][]teammodels.Member, error) {
	query := fmt.Sprintf(`
		SELECT tm.team_id, u.user_id, u.username
		FROM %s tm
		JOIN users u ON u.user_id = tm.user_id
		ORDER BY tm.team_id, u.user_id`, table)

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]teammodels.Member)
	for rows.Next() {
		var teamID int64
		var m teammodels.Member
		if err := rows.Scan(&teamID, &m.UserID, &m.Username); err != nil {
			return nil, err
		}
		result[teamID] = append(result[teamID], m)
	}

	return result, rows.Err()
}

func (r *TeamRepo) IsMember(ctx context.Context, teamID, userID int64) (bool, error) {
	const op = "repo.team.IsMember"

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM team_members WHERE team_id = ? AND user_id = ?)`
	if err := r.db.GetContext(ctx, &exists, query, teamID, userID); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

// AddJoinRequest records a pending join request. The composite primary key
// makes a concurrent duplicate request lose atomically.
func (r *TeamRepo) AddJoinRequest(ctx context.Context, teamID, userID int64) error {
	const op = "repo.team.AddJoinRequest"

	query := `INSERT INTO team_join_requests (team_id, user_id, requested_at) VALUES (?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query, teamID, userID, time.Now().UTC().Unix()); err != nil {
		if isDuplicateKey(err, "") {
			return fmt.Errorf("%s: %w", op, apperrors.ErrAlreadyRequested)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ApproveJoinRequest moves a user from the pending set to the member set in
// one transaction. Both steps are idempotent, matching the original's pull
// plus add-to-set semantics.
func (r *TeamRepo) ApproveJoinRequest(ctx context.Context, teamID, userID int64) error {
	const op = "repo.team.ApproveJoinRequest"

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM team_join_requests WHERE team_id = ? AND user_id = ?`, teamID, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT IGNORE INTO team_members (team_id, user_id, joined_at) VALUES (?, ?, ?)`,
		teamID, userID, time.Now().UTC().Unix()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RemoveJoinRequest drops a pending request. Removing an absent request is a
// silent no-op.
func (r *TeamRepo) RemoveJoinRequest(ctx context.Context, teamID, userID int64) error {
	const op = "repo.team.RemoveJoinRequest"

	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM team_join_requests WHERE team_id = ? AND user_id = ?`, teamID, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteTeam removes the team. Membership and pending-request rows cascade,
// which also clears the team from every member's team set.
func (r *TeamRepo) DeleteTeam(ctx context.Context, teamID int64) error {
	const op = "repo.team.DeleteTeam"

	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE team_id = ?`, teamID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, apperrors.ErrTeamNotFound)
	}

	return nil
}
