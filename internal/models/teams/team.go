package teammodels

// Team represents a team entity
type Team struct {
	ID          int64  `json:"id" db:"team_id"`
	Name        string `json:"name" db:"team_name"`
	Description string `json:"description" db:"description"`
	LeaderID    int64  `json:"leader_id" db:"leader_id"`
	Avatar      string `json:"avatar,omitempty" db:"avatar"`
	CreatedAt   int64  `json:"created_at" db:"created_at"`
}

// Member is a team member or pending requester resolved to display identity.
type Member struct {
	UserID   int64  `json:"user_id" db:"user_id"`
	Username string `json:"username" db:"username"`
}

// TeamDetail is a team with its membership sets resolved.
type TeamDetail struct {
	Team
	Leader          string   `json:"leader"`
	Members         []Member `json:"members"`
	PendingRequests []Member `json:"pending_requests"`
}
