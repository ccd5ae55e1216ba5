package models

// Role is the closed set of user roles.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleMember     Role = "member"
	RoleTeamLeader Role = "teamLeader"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMember, RoleTeamLeader:
		return true
	}
	return false
}

type User struct {
	UserID    int64  `json:"user_id" db:"user_id"`
	Username  string `json:"username" db:"username"`
	Email     string `json:"email" db:"email"`
	Password  string `json:"password,omitempty" db:"password"`
	Role      Role   `json:"role" db:"role"`
	Avatar    string `json:"avatar,omitempty" db:"avatar"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}
