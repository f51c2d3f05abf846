package model

import "time"

type ContentStatus string

const (
	ContentStatusPosted  ContentStatus = "POSTED"
	ContentStatusDeleted ContentStatus = "DELETED"
)

// Post and Comment are collaborators of the moderation core: reports and
// moderation actions target one or the other, so only existence and status
// matter here.
type Post struct {
	Id        int64         `db:"id" json:"id"`
	CreatorId string        `db:"creator_id" json:"creatorId"`
	Status    ContentStatus `db:"status" json:"status"`
	CreatedAt time.Time     `db:"created_at" json:"createdAt"`
}

type Comment struct {
	Id        int64         `db:"id" json:"id"`
	PostId    int64         `db:"post_id" json:"postId"`
	CreatorId string        `db:"creator_id" json:"creatorId"`
	Status    ContentStatus `db:"status" json:"status"`
	CreatedAt time.Time     `db:"created_at" json:"createdAt"`
}

// ContentRef points at exactly one of a post or a comment.
type ContentRef struct {
	PostId    *int64 `json:"postId,omitempty"`
	CommentId *int64 `json:"commentId,omitempty"`
}

// IsValid requires exactly one of the two ids to be set.
func (r ContentRef) IsValid() bool {
	return (r.PostId != nil) != (r.CommentId != nil)
}
