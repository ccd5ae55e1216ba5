package eventmodels

import "time"

// Event represents an event entity. Votes is derived from the vote rows and
// is never stored, so it always matches the number of voters.
type Event struct {
	ID                   int64      `json:"id" db:"event_id"`
	Name                 string     `json:"name" db:"name"`
	Description          string     `json:"description" db:"description"`
	Date                 *time.Time `json:"date,omitempty" db:"event_date"`
	Location             string     `json:"location" db:"location"`
	Approved             bool       `json:"approved" db:"approved"`
	Votes                int        `json:"votes" db:"votes"`
	WinnerName           string     `json:"winner_name,omitempty" db:"winner_name"`
	PostEventDescription string     `json:"post_event_description,omitempty" db:"post_event_description"`
	CreatedAt            int64      `json:"created_at" db:"created_at"`
}

// EventSummary is the list-view shape: the event plus organizer usernames
// and the registration count.
type EventSummary struct {
	Event
	Organizers    []string `json:"organizers"`
	Registrations int      `json:"registrations" db:"registrations"`
}

// EventDetail is the single-event shape with every membership set resolved.
type EventDetail struct {
	Event
	Organizers      []string `json:"organizers"`
	VotedBy         []int64  `json:"voted_by"`
	RegisteredUsers []int64  `json:"registered_users"`
	Photos          []string `json:"photos"`
}

// Registrant is a registered user resolved to display identity.
type Registrant struct {
	UserID   int64  `json:"user_id" db:"user_id"`
	Username string `json:"username" db:"username"`
	Email    string `json:"email" db:"email"`
}

// PopularEvent is the analytics shape for the most-registered approved event.
type PopularEvent struct {
	Name          string `json:"name" db:"name"`
	Registrations int    `json:"registrations" db:"registrations"`
}
