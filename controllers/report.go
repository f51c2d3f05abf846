package controllers

import (
	"context"

	"github.com/navbryce/next-dorm-trust/apperror"
	"github.com/navbryce/next-dorm-trust/db"
	"github.com/navbryce/next-dorm-trust/model"
	"github.com/navbryce/next-dorm-trust/util"
	"go.uber.org/zap"
)

// ReportController owns the report lifecycle: intake, status transitions,
// and the cascading delete that removes a closed report together with its
// queue entries, actions, and escalations.
type ReportController struct {
	db     db.Database
	logger *zap.Logger
}

func NewReportController(database db.Database, logger *zap.Logger) *ReportController {
	return &ReportController{db: database, logger: logger}
}

type CreateReportReq struct {
	PostId     *int64
	CommentId  *int64
	CategoryId int64
	Reason     string
}

func (rc *ReportController) Create(ctx context.Context, actor *model.Principal, req *CreateReportReq) (*model.Report, error) {
	if err := Decide(actor, ActionReportCreate); err != nil {
		return nil, err
	}
	reason := util.XSSSanitize(req.Reason)

	var report *model.Report
	err := rc.db.Tx(ctx, func(tx db.Database) error {
		if _, err := ensureActiveMember(ctx, tx, actor.Id); err != nil {
			return err
		}
		category, err := tx.GetReportCategoryById(ctx, req.CategoryId)
		if err != nil {
			return err
		}
		if category == nil {
			return apperror.NotFound("report category %v not found", req.CategoryId)
		}
		if err := ensureTargetExists(ctx, tx, model.ContentRef{PostId: req.PostId, CommentId: req.CommentId}); err != nil {
			return err
		}

		reportId, err := tx.CreateReport(ctx, &db.CreateReport{
			ReporterId: actor.Id,
			PostId:     req.PostId,
			CommentId:  req.CommentId,
			CategoryId: req.CategoryId,
			Reason:     reason,
		})
		if err != nil {
			return err
		}
		if err := appendAudit(ctx, tx, actor, "report.create", "report", reportId, nil); err != nil {
			return err
		}
		report, err = tx.GetReportById(ctx, reportId)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (rc *ReportController) GetById(ctx context.Context, actor *model.Principal, id int64) (*model.Report, error) {
	report, err := rc.db.GetReportById(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, apperror.NotFound("report %v not found", id)
	}
	// reporters may read their own reports; anything else is staff only
	if report.ReporterId != actor.Id {
		if err := Decide(actor, ActionReportRead); err != nil {
			return nil, err
		}
	}
	return report, nil
}

func (rc *ReportController) ListByStatus(ctx context.Context, actor *model.Principal, status model.ReportStatus, limit int) ([]*model.Report, error) {
	if err := Decide(actor, ActionReportRead); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, apperror.BadInput("unknown report status %v", status)
	}
	return rc.db.GetReportsByStatus(ctx, status, limit)
}

type UpdateReportStatusReq struct {
	Status           model.ReportStatus
	ModerationResult *string
}

// UpdateStatus applies a forward transition. Reports in RESOLVED or
// DISMISSED are closed for good and reject every further transition.
func (rc *ReportController) UpdateStatus(ctx context.Context, actor *model.Principal, id int64, req *UpdateReportStatusReq) (*model.Report, error) {
	if err := Decide(actor, ActionReportUpdate); err != nil {
		return nil, err
	}
	if !req.Status.IsValid() {
		return nil, apperror.BadInput("unknown report status %v", req.Status)
	}

	var report *model.Report
	err := rc.db.Tx(ctx, func(tx db.Database) error {
		current, err := tx.GetReportByIdForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.NotFound("report %v not found", id)
		}
		if !current.Status.CanTransitionTo(req.Status) {
			return apperror.InvalidStateTransition("report %v cannot move from %v to %v",
				id, current.Status, req.Status)
		}

		update := &db.UpdateReportStatus{
			Status:           req.Status,
			ModerationResult: req.ModerationResult,
		}
		if req.Status == model.ReportStatusResolved || req.Status == model.ReportStatusDismissed {
			update.ClosedById = &actor.Id
		}
		if err := tx.UpdateReportStatus(ctx, id, update); err != nil {
			return err
		}
		if err := appendAudit(ctx, tx, actor, "report.update_status", "report", id, map[string]interface{}{
			"from": current.Status,
			"to":   req.Status,
		}); err != nil {
			return err
		}
		report, err = tx.GetReportById(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Delete removes a closed report and every row that references it in one
// transaction, leaving a single audit entry recording the pre-deletion
// status. Reports outside the terminal-deletable set fail with Conflict.
func (rc *ReportController) Delete(ctx context.Context, actor *model.Principal, id int64) error {
	if err := Decide(actor, ActionReportDelete); err != nil {
		return err
	}
	err := rc.db.Tx(ctx, func(tx db.Database) error {
		report, err := tx.GetReportByIdForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if report == nil {
			return apperror.NotFound("report %v not found", id)
		}
		if !report.Status.IsDeletable() {
			return apperror.Conflict("report %v in status %v cannot be deleted", id, report.Status)
		}

		if err := tx.DeleteQueueEntriesForReport(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteActionsForReport(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteEscalationsForReport(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteReport(ctx, id); err != nil {
			return err
		}
		return appendAudit(ctx, tx, actor, "report.delete", "report", id, map[string]interface{}{
			"pre_status": report.Status,
		})
	})
	if err == nil {
		rc.logger.Info("report deleted",
			zap.Int64("reportId", id),
			zap.String("actorId", actor.Id))
	}
	return err
}
