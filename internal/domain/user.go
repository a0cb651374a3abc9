package domain

// Role represents a user's current part in the game
type Role string

const (
	RoleParticipant Role = "PARTICIPANT"
	RoleDrawer      Role = "DRAWER"
	RoleAdmin       Role = "ADMIN"
)

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// IsDrawer returns true if this role is the drawer
func (r Role) IsDrawer() bool {
	return r == RoleDrawer
}

// User is a registered player. The record is owned by the user directory;
// the coordinator reads and mutates role/score through it.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Team  int    `json:"team"`
	Score int    `json:"score"`
	Role  Role   `json:"role,omitempty"`
}

// ScoreBoardEntry is the outward-facing ranking view of a user
type ScoreBoardEntry struct {
	Name  string `json:"name"`
	Team  int    `json:"team"`
	Score int    `json:"score"`
}
