package model

import "time"

type MemberStatus string

const (
	MemberStatusActive  MemberStatus = "ACTIVE"
	MemberStatusDeleted MemberStatus = "DELETED"
)

// Member holds the local user data relevant to the application (outside of firebase db)
type Member struct {
	Id          string       `db:"firebase_id" json:"id"`
	DisplayName string       `db:"display_name" json:"displayName"`
	Status      MemberStatus `db:"status" json:"status"`
	CreatedAt   time.Time    `db:"created_at" json:"createdAt"`
	DeletedAt   *time.Time   `db:"deleted_at" json:"deletedAt,omitempty"`
}

func (m *Member) IsActive() bool {
	return m.Status == MemberStatusActive && m.DeletedAt == nil
}

// Role is the coarse role of the acting principal. Role-specific conditions
// (active assignment, active admin row) are re-validated per operation.
type Role string

const (
	RoleMember    Role = "MEMBER"
	RoleModerator Role = "MODERATOR"
	RoleAdmin     Role = "ADMIN"
)

// Principal is the verified identity attached to a request by the auth middleware.
type Principal struct {
	Id   string `json:"id"`
	Role Role   `json:"role"`
}
