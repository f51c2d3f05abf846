package planetscale

import (
	"context"

	db2 "github.com/navbryce/next-dorm-trust/db"
	"github.com/navbryce/next-dorm-trust/model"
	"github.com/upper/db/v4"
)

type AppealDB struct {
	sess db.Session
}

func getAppealDB(sess db.Session) *AppealDB {
	return &AppealDB{sess}
}

func (adb *AppealDB) CreateAppeal(ctx context.Context, req *db2.CreateAppeal) (int64, error) {
	res, err := adb.sess.SQL().
		InsertInto("appeal").
		Columns("escalation_id", "appellant_id", "appeal_type", "status").
		Values(req.EscalationId, req.AppellantId, req.AppealType, model.AppealStatusPending).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (adb *AppealDB) GetAppealById(ctx context.Context, id int64) (*model.Appeal, error) {
	var appeal model.Appeal
	if err := adb.sess.SQL().
		Select("*").
		From("appeal").
		Where("id = ?", id).
		IteratorContext(ctx).
		One(&appeal); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &appeal, nil
}

func (adb *AppealDB) GetAppealByIdForUpdate(ctx context.Context, id int64) (*model.Appeal, error) {
	rows, err := adb.sess.SQL().
		QueryContext(ctx, `SELECT * FROM appeal WHERE id = ? FOR UPDATE`, id)
	if err != nil {
		return nil, err
	}
	var appeal model.Appeal
	if err := adb.sess.SQL().NewIteratorContext(ctx, rows).One(&appeal); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &appeal, nil
}

func (adb *AppealDB) ResolveAppeal(ctx context.Context, id int64, req *db2.ResolveAppeal) error {
	_, err := adb.sess.SQL().
		Update("appeal").
		Set(map[string]interface{}{
			"status":             model.AppealStatusResolved,
			"resolution_type":    req.ResolutionType,
			"resolution_comment": req.ResolutionComment,
			"reviewing_admin_id": req.ReviewingAdminId,
		}).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}
