package model

import "time"

type ReportCategory struct {
	Id   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Report is a member-submitted complaint against a post or a comment.
// Exactly one of PostId/CommentId is set.
type Report struct {
	Id               int64        `db:"id" json:"id"`
	ReporterId       string       `db:"reporter_id" json:"reporterId"`
	PostId           *int64       `db:"post_id" json:"postId,omitempty"`
	CommentId        *int64       `db:"comment_id" json:"commentId,omitempty"`
	CategoryId       int64        `db:"category_id" json:"categoryId"`
	Reason           string       `db:"reason" json:"reason"`
	Status           ReportStatus `db:"status" json:"status"`
	ModerationResult *string      `db:"moderation_result" json:"moderationResult,omitempty"`
	ClosedById       *string      `db:"closed_by_id" json:"closedById,omitempty"`
	CreatedAt        time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time    `db:"updated_at" json:"updatedAt"`
}

// Target is the post-or-comment reference the report points at.
func (r *Report) Target() ContentRef {
	return ContentRef{PostId: r.PostId, CommentId: r.CommentId}
}

// ModerationAction records a concrete sanction taken against a post or a
// comment, optionally linked to the report that prompted it. Immutable after
// creation except by privileged correction.
type ModerationAction struct {
	Id          int64     `db:"id" json:"id"`
	ActorId     string    `db:"actor_id" json:"actorId"`
	PostId      *int64    `db:"post_id" json:"postId,omitempty"`
	CommentId   *int64    `db:"comment_id" json:"commentId,omitempty"`
	ReportId    *int64    `db:"report_id" json:"reportId,omitempty"`
	ActionType  string    `db:"action_type" json:"actionType"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

