package planetscale

import (
	"context"

	db2 "github.com/navbryce/next-dorm-trust/db"
	"github.com/navbryce/next-dorm-trust/model"
	"github.com/upper/db/v4"
)

type EscalationDB struct {
	sess db.Session
}

func getEscalationDB(sess db.Session) *EscalationDB {
	return &EscalationDB{sess}
}

func (edb *EscalationDB) CreateEscalation(ctx context.Context, req *db2.CreateEscalation) (int64, error) {
	res, err := edb.sess.SQL().
		InsertInto("escalation_log").
		Columns("report_id", "initiator_id", "destination_admin_id", "reason", "status").
		Values(req.ReportId, req.InitiatorId, req.DestinationAdminId, req.Reason, model.EscalationStatusPending).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (edb *EscalationDB) GetEscalationById(ctx context.Context, id int64) (*model.EscalationLog, error) {
	var escalation model.EscalationLog
	if err := edb.sess.SQL().
		Select("*").
		From("escalation_log").
		Where("id = ?", id).
		IteratorContext(ctx).
		One(&escalation); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &escalation, nil
}

func (edb *EscalationDB) UpdateEscalation(ctx context.Context, id int64, req *db2.UpdateEscalation) error {
	sets := map[string]interface{}{}
	if req.Status != nil {
		sets["status"] = *req.Status
	}
	if req.DestinationAdminId != nil {
		sets["destination_admin_id"] = *req.DestinationAdminId
	}
	if req.ResolutionSummary != nil {
		sets["resolution_summary"] = *req.ResolutionSummary
	}
	if len(sets) == 0 {
		return nil
	}
	_, err := edb.sess.SQL().
		Update("escalation_log").
		Set(sets).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

func (edb *EscalationDB) DeleteEscalationsForReport(ctx context.Context, reportId int64) error {
	_, err := edb.sess.SQL().
		DeleteFrom("escalation_log").
		Where("report_id = ?", reportId).
		ExecContext(ctx)
	return err
}
