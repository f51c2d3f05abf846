package model

import "time"

type ActorType string

const (
	ActorTypeMember    ActorType = "MEMBER"
	ActorTypeModerator ActorType = "MODERATOR"
	ActorTypeAdmin     ActorType = "ADMIN"
	ActorTypeSystem    ActorType = "SYSTEM"
)

// AuditLogEntry is one append-only record of a mutation performed by the
// moderation core. TargetId holds the target row's primary key as a string
// so string-keyed tables (admin) are addressable alongside numeric ones.
// Details holds a JSON snapshot of what changed.
type AuditLogEntry struct {
	Id          int64     `db:"id" json:"id"`
	ActorType   ActorType `db:"actor_type" json:"actorType"`
	ActorId     string    `db:"actor_id" json:"actorId"`
	ActionType  string    `db:"action_type" json:"actionType"`
	TargetTable string    `db:"target_table" json:"targetTable"`
	TargetId    string    `db:"target_id" json:"targetId"`
	Details     string    `db:"details" json:"details,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
