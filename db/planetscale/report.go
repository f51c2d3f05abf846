package planetscale

import (
	"context"

	db2 "github.com/navbryce/next-dorm-trust/db"
	"github.com/navbryce/next-dorm-trust/model"
	"github.com/upper/db/v4"
)

type ReportDB struct {
	sess db.Session
}

func getReportDB(sess db.Session) *ReportDB {
	return &ReportDB{sess}
}

func (rdb *ReportDB) CreateReport(ctx context.Context, req *db2.CreateReport) (int64, error) {
	res, err := rdb.sess.SQL().
		InsertInto("report").
		Columns("reporter_id", "post_id", "comment_id", "category_id", "reason", "status").
		Values(req.ReporterId, req.PostId, req.CommentId, req.CategoryId, req.Reason, model.ReportStatusPending).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (rdb *ReportDB) GetReportById(ctx context.Context, id int64) (*model.Report, error) {
	var report model.Report
	if err := rdb.sess.SQL().
		Select("*").
		From("report").
		Where("id = ?", id).
		IteratorContext(ctx).
		One(&report); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (rdb *ReportDB) GetReportByIdForUpdate(ctx context.Context, id int64) (*model.Report, error) {
	rows, err := rdb.sess.SQL().
		QueryContext(ctx, `SELECT * FROM report WHERE id = ? FOR UPDATE`, id)
	if err != nil {
		return nil, err
	}
	var report model.Report
	if err := rdb.sess.SQL().NewIteratorContext(ctx, rows).One(&report); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (rdb *ReportDB) GetReportsByStatus(ctx context.Context, status model.ReportStatus, limit int) ([]*model.Report, error) {
	var reports []*model.Report
	return reports, rdb.sess.SQL().
		Select("*").
		From("report").
		Where("status = ?", status).
		OrderBy("created_at").
		Limit(limit).
		IteratorContext(ctx).
		All(&reports)
}

func (rdb *ReportDB) UpdateReportStatus(ctx context.Context, id int64, req *db2.UpdateReportStatus) error {
	sets := map[string]interface{}{
		"status": req.Status,
	}
	if req.ModerationResult != nil {
		sets["moderation_result"] = *req.ModerationResult
	}
	if req.ClosedById != nil {
		sets["closed_by_id"] = *req.ClosedById
	}
	_, err := rdb.sess.SQL().
		Update("report").
		Set(sets).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

func (rdb *ReportDB) DeleteReport(ctx context.Context, id int64) error {
	_, err := rdb.sess.SQL().
		DeleteFrom("report").
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

func (rdb *ReportDB) GetReportCategoryById(ctx context.Context, id int64) (*model.ReportCategory, error) {
	var category model.ReportCategory
	if err := rdb.sess.SQL().
		Select("*").
		From("report_category").
		Where("id = ?", id).
		IteratorContext(ctx).
		One(&category); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}
