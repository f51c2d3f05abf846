package model

import "time"

type AppealType string

const (
	AppealTypeSanction   AppealType = "SANCTION"
	AppealTypeEscalation AppealType = "ESCALATION"
)

// Appeal is a challenge, by the party that initiated the referenced
// escalation, against that escalation's outcome.
type Appeal struct {
	Id                int64        `db:"id" json:"id"`
	EscalationId      int64        `db:"escalation_id" json:"escalationId"`
	AppellantId       string       `db:"appellant_id" json:"appellantId"`
	ReviewingAdminId  *string      `db:"reviewing_admin_id" json:"reviewingAdminId,omitempty"`
	AppealType        AppealType   `db:"appeal_type" json:"appealType"`
	Status            AppealStatus `db:"status" json:"status"`
	ResolutionType    *string      `db:"resolution_type" json:"resolutionType,omitempty"`
	ResolutionComment *string      `db:"resolution_comment" json:"resolutionComment,omitempty"`
	CreatedAt         time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time    `db:"updated_at" json:"updatedAt"`
}
