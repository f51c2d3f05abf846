package controllers

import (
	"context"

	"github.com/navbryce/next-dorm-trust/apperror"
	"github.com/navbryce/next-dorm-trust/db"
	"github.com/navbryce/next-dorm-trust/model"
	"go.uber.org/zap"
)

// AppealController records challenges against escalation outcomes.
type AppealController struct {
	db     db.Database
	logger *zap.Logger
}

func NewAppealController(database db.Database, logger *zap.Logger) *AppealController {
	return &AppealController{db: database, logger: logger}
}

type CreateAppealReq struct {
	EscalationId int64
	AppealType   model.AppealType
}

// Create opens an appeal on an escalation. Only the escalation's recorded
// initiator may appeal; anyone else gets Forbidden.
func (ac *AppealController) Create(ctx context.Context, actor *model.Principal, req *CreateAppealReq) (*model.Appeal, error) {
	if err := Decide(actor, ActionAppealCreate); err != nil {
		return nil, err
	}
	var appeal *model.Appeal
	err := ac.db.Tx(ctx, func(tx db.Database) error {
		escalation, err := tx.GetEscalationById(ctx, req.EscalationId)
		if err != nil {
			return err
		}
		if escalation == nil || escalation.DeletedAt != nil {
			return apperror.NotFound("escalation %v not found", req.EscalationId)
		}
		if escalation.InitiatorId != actor.Id {
			return apperror.Forbidden("only the initiator of escalation %v may appeal it", req.EscalationId)
		}

		appealId, err := tx.CreateAppeal(ctx, &db.CreateAppeal{
			EscalationId: req.EscalationId,
			AppellantId:  actor.Id,
			AppealType:   req.AppealType,
		})
		if err != nil {
			return err
		}
		if err := appendAudit(ctx, tx, actor, "appeal.create", "appeal", appealId,
			map[string]interface{}{"escalation_id": req.EscalationId}); err != nil {
			return err
		}
		appeal, err = tx.GetAppealById(ctx, appealId)
		return err
	})
	if err != nil {
		return nil, err
	}
	return appeal, nil
}

func (ac *AppealController) GetById(ctx context.Context, actor *model.Principal, id int64) (*model.Appeal, error) {
	appeal, err := ac.db.GetAppealById(ctx, id)
	if err != nil {
		return nil, err
	}
	if appeal == nil {
		return nil, apperror.NotFound("appeal %v not found", id)
	}
	if appeal.AppellantId != actor.Id {
		if err := Decide(actor, ActionAppealResolve); err != nil {
			return nil, err
		}
	}
	return appeal, nil
}

type ResolveAppealReq struct {
	ResolutionType    string
	ResolutionComment string
}

// Resolve closes an appeal for good. A resolved appeal rejects any further
// mutation.
func (ac *AppealController) Resolve(ctx context.Context, actor *model.Principal, id int64, req *ResolveAppealReq) (*model.Appeal, error) {
	if err := Decide(actor, ActionAppealResolve); err != nil {
		return nil, err
	}
	var appeal *model.Appeal
	err := ac.db.Tx(ctx, func(tx db.Database) error {
		current, err := tx.GetAppealByIdForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.NotFound("appeal %v not found", id)
		}
		if current.Status == model.AppealStatusResolved {
			return apperror.InvalidStateTransition("appeal %v is already resolved", id)
		}
		if _, err := ensureActiveAdmin(ctx, tx, actor.Id); err != nil {
			return err
		}

		if err := tx.ResolveAppeal(ctx, id, &db.ResolveAppeal{
			ResolutionType:    req.ResolutionType,
			ResolutionComment: req.ResolutionComment,
			ReviewingAdminId:  actor.Id,
		}); err != nil {
			return err
		}
		if err := appendAudit(ctx, tx, actor, "appeal.resolve", "appeal", id,
			map[string]interface{}{"resolution_type": req.ResolutionType}); err != nil {
			return err
		}
		appeal, err = tx.GetAppealById(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return appeal, nil
}
