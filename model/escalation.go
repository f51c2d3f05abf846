package model

import "time"

// EscalationLog records the hand-off of a report from a moderator to a
// platform admin.
type EscalationLog struct {
	Id                 int64            `db:"id" json:"id"`
	ReportId           int64            `db:"report_id" json:"reportId"`
	InitiatorId        string           `db:"initiator_id" json:"initiatorId"`
	DestinationAdminId *string          `db:"destination_admin_id" json:"destinationAdminId,omitempty"`
	Reason             string           `db:"reason" json:"reason"`
	Status             EscalationStatus `db:"status" json:"status"`
	ResolutionSummary  *string          `db:"resolution_summary" json:"resolutionSummary,omitempty"`
	CreatedAt          time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time        `db:"updated_at" json:"updatedAt"`
	DeletedAt          *time.Time       `db:"deleted_at" json:"deletedAt,omitempty"`
}
