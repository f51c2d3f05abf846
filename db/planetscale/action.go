package planetscale

import (
	"context"

	db2 "github.com/navbryce/next-dorm-trust/db"
	"github.com/navbryce/next-dorm-trust/model"
	"github.com/upper/db/v4"
)

type ActionDB struct {
	sess db.Session
}

func getActionDB(sess db.Session) *ActionDB {
	return &ActionDB{sess}
}

func (adb *ActionDB) CreateModerationAction(ctx context.Context, req *db2.CreateModerationAction) (int64, error) {
	res, err := adb.sess.SQL().
		InsertInto("moderation_action").
		Columns("actor_id", "post_id", "comment_id", "report_id", "action_type", "description").
		Values(req.ActorId, req.PostId, req.CommentId, req.ReportId, req.ActionType, req.Description).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (adb *ActionDB) GetModerationActionById(ctx context.Context, id int64) (*model.ModerationAction, error) {
	var action model.ModerationAction
	if err := adb.sess.SQL().
		Select("*").
		From("moderation_action").
		Where("id = ?", id).
		IteratorContext(ctx).
		One(&action); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &action, nil
}

func (adb *ActionDB) UpdateModerationAction(ctx context.Context, id int64, req *db2.UpdateModerationAction) error {
	sets := map[string]interface{}{}
	if req.ActionType != nil {
		sets["action_type"] = *req.ActionType
	}
	if req.Description != nil {
		sets["description"] = *req.Description
	}
	if len(sets) == 0 {
		return nil
	}
	_, err := adb.sess.SQL().
		Update("moderation_action").
		Set(sets).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

func (adb *ActionDB) DeleteActionsForReport(ctx context.Context, reportId int64) error {
	_, err := adb.sess.SQL().
		DeleteFrom("moderation_action").
		Where("report_id = ?", reportId).
		ExecContext(ctx)
	return err
}
