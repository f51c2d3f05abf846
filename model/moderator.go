package model

import "time"

type ModeratorRole string

const (
	ModeratorRoleOwner     ModeratorRole = "OWNER"
	ModeratorRoleModerator ModeratorRole = "MODERATOR"
)

func (r ModeratorRole) IsValid() bool {
	return r == ModeratorRoleOwner || r == ModeratorRoleModerator
}

// ModeratorAssignment grants a member a moderator role within a community.
// An assignment with a nil EndAt is active. Every community must keep at
// least one active OWNER assignment.
type ModeratorAssignment struct {
	Id          int64         `db:"id" json:"id"`
	CommunityId int64         `db:"community_id" json:"communityId"`
	MemberId    string        `db:"member_id" json:"memberId"`
	Role        ModeratorRole `db:"role" json:"role"`
	AssignerId  string        `db:"assigner_id" json:"assignerId"`
	StartAt     time.Time     `db:"start_at" json:"startAt"`
	EndAt       *time.Time    `db:"end_at" json:"endAt,omitempty"`
}

func (a *ModeratorAssignment) IsActive() bool {
	return a.EndAt == nil
}

type AdminStatus string

const (
	AdminStatusActive   AdminStatus = "ACTIVE"
	AdminStatusInactive AdminStatus = "INACTIVE"
)

// Admin is a platform administrator record keyed by member id. The platform
// must keep at least one active superuser admin.
type Admin struct {
	MemberId  string      `db:"member_id" json:"memberId"`
	SuperUser bool        `db:"super_user" json:"superUser"`
	Status    AdminStatus `db:"status" json:"status"`
	CreatedAt time.Time   `db:"created_at" json:"createdAt"`
	DeletedAt *time.Time  `db:"deleted_at" json:"deletedAt,omitempty"`
}

func (a *Admin) IsActive() bool {
	return a.Status == AdminStatusActive && a.DeletedAt == nil
}
