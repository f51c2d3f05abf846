package planetscale

import (
	"context"

	"github.com/navbryce/next-dorm-trust/model"
	"github.com/upper/db/v4"
)

// ContentDB exposes the existence reads the moderation core needs against
// posts and comments. Content authoring lives in the main application.
type ContentDB struct {
	sess db.Session
}

func getContentDB(sess db.Session) *ContentDB {
	return &ContentDB{sess}
}

func (cdb *ContentDB) GetPostById(ctx context.Context, id int64) (*model.Post, error) {
	var post model.Post
	if err := cdb.sess.SQL().
		Select("p.id", "cm.creator_id", "cm.status", "cm.created_at").
		From("post as p").
		Join("content_metadata as cm").On("p.metadata_id = cm.id").
		Where("p.id = ?", id).
		IteratorContext(ctx).
		One(&post); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (cdb *ContentDB) GetCommentById(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	if err := cdb.sess.SQL().
		Select("c.id", "c.post_id", "cm.creator_id", "cm.status", "cm.created_at").
		From("comment as c").
		Join("content_metadata as cm").On("c.metadata_id = cm.id").
		Where("c.id = ?", id).
		IteratorContext(ctx).
		One(&comment); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}
