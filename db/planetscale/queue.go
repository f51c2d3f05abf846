package planetscale

import (
	"context"

	db2 "github.com/navbryce/next-dorm-trust/db"
	"github.com/navbryce/next-dorm-trust/model"
	"github.com/upper/db/v4"
)

type QueueDB struct {
	sess db.Session
}

func getQueueDB(sess db.Session) *QueueDB {
	return &QueueDB{sess}
}

func (qdb *QueueDB) CreateQueueEntry(ctx context.Context, req *db2.CreateQueueEntry) (int64, error) {
	res, err := qdb.sess.SQL().
		InsertInto("moderation_queue_entry").
		Columns("community_id", "report_id", "priority", "status").
		Values(req.CommunityId, req.ReportId, req.Priority, model.QueueStatusOpen).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (qdb *QueueDB) GetQueueEntryById(ctx context.Context, id int64) (*model.ModerationQueueEntry, error) {
	var entry model.ModerationQueueEntry
	if err := qdb.sess.SQL().
		Select("*").
		From("moderation_queue_entry").
		Where("id = ?", id).
		IteratorContext(ctx).
		One(&entry); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (qdb *QueueDB) GetQueueEntryByIdForUpdate(ctx context.Context, id int64) (*model.ModerationQueueEntry, error) {
	rows, err := qdb.sess.SQL().
		QueryContext(ctx, `SELECT * FROM moderation_queue_entry WHERE id = ? FOR UPDATE`, id)
	if err != nil {
		return nil, err
	}
	var entry model.ModerationQueueEntry
	if err := qdb.sess.SQL().NewIteratorContext(ctx, rows).One(&entry); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (qdb *QueueDB) GetOpenQueueEntries(ctx context.Context, communityId int64) ([]*model.ModerationQueueEntry, error) {
	var entries []*model.ModerationQueueEntry
	return entries, qdb.sess.SQL().
		Select("*").
		From("moderation_queue_entry").
		Where("community_id = ? AND status IN ?", communityId,
			[]model.QueueStatus{model.QueueStatusOpen, model.QueueStatusAssigned}).
		OrderBy("priority DESC", "created_at").
		IteratorContext(ctx).
		All(&entries)
}

func (qdb *QueueDB) UpdateQueueEntry(ctx context.Context, id int64, req *db2.UpdateQueueEntry) error {
	sets := map[string]interface{}{}
	if req.Status != nil {
		sets["status"] = *req.Status
	}
	if req.AssignedModeratorId != nil {
		sets["assigned_moderator_id"] = *req.AssignedModeratorId
	}
	if len(sets) == 0 {
		return nil
	}
	_, err := qdb.sess.SQL().
		Update("moderation_queue_entry").
		Set(sets).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

func (qdb *QueueDB) DeleteQueueEntry(ctx context.Context, id int64) error {
	_, err := qdb.sess.SQL().
		DeleteFrom("moderation_queue_entry").
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

func (qdb *QueueDB) DeleteQueueEntriesForReport(ctx context.Context, reportId int64) error {
	_, err := qdb.sess.SQL().
		DeleteFrom("moderation_queue_entry").
		Where("report_id = ?", reportId).
		ExecContext(ctx)
	return err
}
