package planetscale

import (
	"context"
	"encoding/json"

	db2 "github.com/navbryce/next-dorm-trust/db"
	"github.com/navbryce/next-dorm-trust/model"
	"github.com/upper/db/v4"
)

type AuditDB struct {
	sess db.Session
}

func getAuditDB(sess db.Session) *AuditDB {
	return &AuditDB{sess}
}

func (adb *AuditDB) CreateAuditLogEntry(ctx context.Context, req *db2.CreateAuditLogEntry) (int64, error) {
	details := "{}"
	if req.Details != nil {
		blob, err := json.Marshal(req.Details)
		if err != nil {
			return 0, err
		}
		details = string(blob)
	}
	res, err := adb.sess.SQL().
		InsertInto("audit_log").
		Columns("actor_type", "actor_id", "action_type", "target_table", "target_id", "details").
		Values(req.ActorType, req.ActorId, req.ActionType, req.TargetTable, req.TargetId, details).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (adb *AuditDB) GetAuditLogEntries(ctx context.Context, targetTable string, targetId string) ([]*model.AuditLogEntry, error) {
	var entries []*model.AuditLogEntry
	return entries, adb.sess.SQL().
		Select("*").
		From("audit_log").
		Where("target_table = ? AND target_id = ?", targetTable, targetId).
		OrderBy("created_at").
		IteratorContext(ctx).
		All(&entries)
}
