package model

import "time"

// ModerationQueueEntry is the triage record derived from a report. It is
// assignable to a moderator and carries its own status lifecycle.
type ModerationQueueEntry struct {
	Id                  int64       `db:"id" json:"id"`
	CommunityId         int64       `db:"community_id" json:"communityId"`
	ReportId            int64       `db:"report_id" json:"reportId"`
	AssignedModeratorId *string     `db:"assigned_moderator_id" json:"assignedModeratorId,omitempty"`
	Status              QueueStatus `db:"status" json:"status"`
	Priority            int         `db:"priority" json:"priority"`
	CreatedAt           time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time   `db:"updated_at" json:"updatedAt"`
}
