package controllers

import (
	"context"

	"github.com/navbryce/next-dorm-trust/apperror"
	"github.com/navbryce/next-dorm-trust/db"
	"github.com/navbryce/next-dorm-trust/model"
	"go.uber.org/zap"
)

// EscalationController records hand-offs of reports to platform admins.
//
// Unlike reports and queue entries, escalations carry no terminal lock:
// Update accepts any status change, resolved included, so an admin can
// reopen a closed escalation. The asymmetry is deliberate.
type EscalationController struct {
	db     db.Database
	logger *zap.Logger
}

func NewEscalationController(database db.Database, logger *zap.Logger) *EscalationController {
	return &EscalationController{db: database, logger: logger}
}

type OpenEscalationReq struct {
	ReportId           int64
	DestinationAdminId *string
	Reason             string
}

func (ec *EscalationController) Open(ctx context.Context, actor *model.Principal, req *OpenEscalationReq) (*model.EscalationLog, error) {
	if err := Decide(actor, ActionEscalationOpen); err != nil {
		return nil, err
	}
	var escalation *model.EscalationLog
	err := ec.db.Tx(ctx, func(tx db.Database) error {
		report, err := tx.GetReportById(ctx, req.ReportId)
		if err != nil {
			return err
		}
		if report == nil {
			return apperror.NotFound("report %v not found", req.ReportId)
		}
		if _, err := ensureActiveMember(ctx, tx, actor.Id); err != nil {
			return err
		}
		if req.DestinationAdminId != nil {
			if _, err := ensureActiveAdmin(ctx, tx, *req.DestinationAdminId); err != nil {
				return err
			}
		}

		escalationId, err := tx.CreateEscalation(ctx, &db.CreateEscalation{
			ReportId:           req.ReportId,
			InitiatorId:        actor.Id,
			DestinationAdminId: req.DestinationAdminId,
			Reason:             req.Reason,
		})
		if err != nil {
			return err
		}
		if err := appendAudit(ctx, tx, actor, "escalation.open", "escalation_log", escalationId,
			map[string]interface{}{"report_id": req.ReportId}); err != nil {
			return err
		}
		escalation, err = tx.GetEscalationById(ctx, escalationId)
		return err
	})
	if err != nil {
		return nil, err
	}
	return escalation, nil
}

func (ec *EscalationController) GetById(ctx context.Context, actor *model.Principal, id int64) (*model.EscalationLog, error) {
	if err := Decide(actor, ActionEscalationUpdate); err != nil {
		return nil, err
	}
	escalation, err := ec.db.GetEscalationById(ctx, id)
	if err != nil {
		return nil, err
	}
	if escalation == nil || escalation.DeletedAt != nil {
		return nil, apperror.NotFound("escalation %v not found", id)
	}
	return escalation, nil
}

// Update patches status, destination, or resolution summary. Only existence
// and reference validity are enforced; there is no terminal-state lock.
func (ec *EscalationController) Update(ctx context.Context, actor *model.Principal, id int64, req *db.UpdateEscalation) (*model.EscalationLog, error) {
	if err := Decide(actor, ActionEscalationUpdate); err != nil {
		return nil, err
	}
	if req.Status != nil && !req.Status.IsValid() {
		return nil, apperror.BadInput("unknown escalation status %v", *req.Status)
	}
	var escalation *model.EscalationLog
	err := ec.db.Tx(ctx, func(tx db.Database) error {
		current, err := tx.GetEscalationById(ctx, id)
		if err != nil {
			return err
		}
		if current == nil || current.DeletedAt != nil {
			return apperror.NotFound("escalation %v not found", id)
		}
		if req.DestinationAdminId != nil {
			if _, err := ensureActiveAdmin(ctx, tx, *req.DestinationAdminId); err != nil {
				return err
			}
		}
		if err := tx.UpdateEscalation(ctx, id, req); err != nil {
			return err
		}
		details := map[string]interface{}{"from": current.Status}
		if req.Status != nil {
			details["to"] = *req.Status
		}
		if err := appendAudit(ctx, tx, actor, "escalation.update", "escalation_log", id, details); err != nil {
			return err
		}
		escalation, err = tx.GetEscalationById(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return escalation, nil
}
