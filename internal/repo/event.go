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
)

type EventRepo struct {
	db *sqlx.DB
}

func NewEventRepo(db *sqlx.DB) *EventRepo {
	return &EventRepo{db: db}
}

const eventColumns = `e.event_id, e.name, e.description, e.event_date, e.location, e.approved,
	(SELECT COUNT(*) FROM event_votes v WHERE v.event_id = e.event_id) AS votes,
	e.winner_name, e.post_event_description, e.created_at`

// CreateEvent inserts the event and its creating organizer in one
// transaction.
func (r *EventRepo) CreateEvent(ctx context.Context, event eventmodels.Event, organizerID int64) (int64, error) {
	const op = "repo.event.CreateEvent"

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO events (name, description, event_date, location, created_at) VALUES (?, ?, ?, ?, ?)`,
		event.Name, event.Description, event.Date, event.Location, time.Now().UTC().Unix())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	eventID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO event_organizers (event_id, user_id) VALUES (?, ?)`, eventID, organizerID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return eventID, nil
}

func (r *EventRepo) ListEvents(ctx context.Context) ([]eventmodels.EventSummary, error) {
	const op = "repo.event.ListEvents"

	query := `SELECT ` + eventColumns + `,
		(SELECT COUNT(*) FROM event_registrations er WHERE er.event_id = e.event_id) AS registrations
		FROM events e ORDER BY e.created_at DESC`

	events := []eventmodels.EventSummary{}
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	organizers, err := r.organizersByEvent(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i := range events {
		events[i].Organizers = organizers[events[i].ID]
		if events[i].Organizers == nil {
			events[i].Organizers = []string{}
		}
	}

	return events, nil
}

func (r *EventRepo) organizersByEvent(ctx context.Context) (map[int64][]string, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT eo.event_id, u.username
		FROM event_organizers eo
		JOIN users u ON u.user_id = eo.user_id
		ORDER BY eo.event_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]string)
	for rows.Next() {
		var eventID int64
		var username string
		if err := rows.Scan(&eventID, &username); err != nil {
			return nil, err
		}
		result[eventID] = append(result[eventID], username)
	}

	return result, rows.Err()
}

// GetEvent loads one event with its organizer, voter, registrant and photo
// sets.
func (r *EventRepo) GetEvent(ctx context.Context, eventID int64) (eventmodels.EventDetail, error) {
	const op = "repo.event.GetEvent"

	var detail eventmodels.EventDetail
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.event_id = ?`
	if err := r.db.GetContext(ctx, &detail.Event, query, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return eventmodels.EventDetail{}, fmt.Errorf("%s: %w", op, apperrors.ErrEventNotFound)
		}
		return eventmodels.EventDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	detail.Organizers = []string{}
	if err := r.db.SelectContext(ctx, &detail.Organizers, `
		SELECT u.username FROM event_organizers eo
		JOIN users u ON u.user_id = eo.user_id
		WHERE eo.event_id = ? ORDER BY u.user_id`, eventID); err != nil {
		return eventmodels.EventDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	detail.VotedBy = []int64{}
	if err := r.db.SelectContext(ctx, &detail.VotedBy,
		`SELECT user_id FROM event_votes WHERE event_id = ? ORDER BY voted_at, user_id`, eventID); err != nil {
		return eventmodels.EventDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	detail.RegisteredUsers = []int64{}
	if err := r.db.SelectContext(ctx, &detail.RegisteredUsers,
		`SELECT user_id FROM event_registrations WHERE event_id = ? ORDER BY registered_at, user_id`, eventID); err != nil {
		return eventmodels.EventDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	detail.Photos = []string{}
	if err := r.db.SelectContext(ctx, &detail.Photos,
		`SELECT url FROM event_photos WHERE event_id = ? ORDER BY photo_id`, eventID); err != nil {
		return eventmodels.EventDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	return detail, nil
}

// IsOrganizer reports whether the user organizes the event.
func (r *EventRepo) IsOrganizer(ctx context.Context, eventID, userID int64) (bool, error) {
	const op = "repo.event.IsOrganizer"

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM event_organizers WHERE event_id = ? AND user_id = ?)`
	if err := r.db.GetContext(ctx, &exists, query, eventID, userID); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

// AddVote records a vote. The composite primary key turns "vote once" into a
// single atomic insert; a concurrent duplicate loses with a key violation.
func (r *EventRepo) AddVote(ctx context.Context, eventID, userID int64) error {
	const op = "repo.event.AddVote"

	query := `INSERT INTO event_votes (event_id, user_id, voted_at) VALUES (?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query, eventID, userID, time.Now().UTC().Unix()); err != nil {
		if isDuplicateKey(err, "") {
			return fmt.Errorf("%s: %w", op, apperrors.ErrAlreadyVoted)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SetApproved marks the event approved. Approving an already-approved event
// is a silent no-op.
func (r *EventRepo) SetApproved(ctx context.Context, eventID int64) error {
	const op = "repo.event.SetApproved"

	if _, err := r.db.ExecContext(ctx, `UPDATE events SET approved = 1 WHERE event_id = ?`, eventID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// AddRegistration registers a user for an approved event. The INSERT ... SELECT
// re-checks the approval gate in the same statement, and the composite primary
// key rejects a duplicate registration atomically.
func (r *EventRepo) AddRegistration(ctx context.Context, eventID, userID int64) error {
	const op = "repo.event.AddRegistration"

	query := `
		INSERT INTO event_registrations (event_id, user_id, registered_at)
		SELECT event_id, ?, ? FROM events WHERE event_id = ? AND approved = 1`

	result, err := r.db.ExecContext(ctx, query, userID, time.Now().UTC().Unix(), eventID)
	if err != nil {
		if isDuplicateKey(err, "") {
			return fmt.Errorf("%s: %w", op, apperrors.ErrAlreadyRegistered)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotApproved)
	}

	return nil
}

func (r *EventRepo) ListRegistrants(ctx context.Context, eventID int64) ([]eventmodels.Registrant, error) {
	const op = "repo.event.ListRegistrants"

	query := `
		SELECT u.user_id, u.username, u.email
		FROM event_registrations er
		JOIN users u ON u.user_id = er.user_id
		WHERE er.event_id = ?
		ORDER BY er.registered_at, u.user_id`

	registrants := []eventmodels.Registrant{}
	if err := r.db.SelectContext(ctx, &registrants, query, eventID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return registrants, nil
}

// CompleteEvent applies the post-event fields. Winner and description keep
// their prior value when the supplied one is empty; photos are appended,
// never replaced.
func (r *EventRepo) CompleteEvent(ctx context.Context, eventID int64, winnerName, postEventDescription string, photos []string) error {
	const op = "repo.event.CompleteEvent"

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE events SET
			winner_name = IF(? = '', winner_name, ?),
			post_event_description = IF(? = '', post_event_description, ?)
		WHERE event_id = ?`,
		winnerName, winnerName, postEventDescription, postEventDescription, eventID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, url := range photos {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO event_photos (event_id, url) VALUES (?, ?)`, eventID, url); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *EventRepo) DeleteEvent(ctx context.Context, eventID int64) error {
	const op = "repo.event.DeleteEvent"

	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE event_id = ?`, eventID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, apperrors.ErrEventNotFound)
	}

	return nil
}
