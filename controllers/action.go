package controllers

import (
	"context"

	"github.com/navbryce/next-dorm-trust/apperror"
	"github.com/navbryce/next-dorm-trust/db"
	"github.com/navbryce/next-dorm-trust/model"
	"github.com/navbryce/next-dorm-trust/util"
	"go.uber.org/zap"
)

// ActionController records concrete sanctions against posts and comments.
// Actions are immutable after creation except via privileged correction.
type ActionController struct {
	db     db.Database
	logger *zap.Logger
}

func NewActionController(database db.Database, logger *zap.Logger) *ActionController {
	return &ActionController{db: database, logger: logger}
}

type RecordActionReq struct {
	PostId      *int64
	CommentId   *int64
	ReportId    *int64
	ActionType  string
	Description string
}

// Record writes a moderation action. The recorded actor is always the
// authenticated principal performing the write.
func (ac *ActionController) Record(ctx context.Context, actor *model.Principal, req *RecordActionReq) (*model.ModerationAction, error) {
	if err := Decide(actor, ActionActionRecord); err != nil {
		return nil, err
	}
	description := util.XSSSanitize(req.Description)

	var action *model.ModerationAction
	err := ac.db.Tx(ctx, func(tx db.Database) error {
		ref := model.ContentRef{PostId: req.PostId, CommentId: req.CommentId}
		if req.ReportId != nil {
			report, err := tx.GetReportById(ctx, *req.ReportId)
			if err != nil {
				return err
			}
			if report == nil {
				return apperror.NotFound("report %v not found", *req.ReportId)
			}
			// an action tied to a report defaults to the report's target
			if ref.PostId == nil && ref.CommentId == nil {
				ref = report.Target()
			}
		}
		if err := ensureTargetExists(ctx, tx, ref); err != nil {
			return err
		}

		actionId, err := tx.CreateModerationAction(ctx, &db.CreateModerationAction{
			ActorId:     actor.Id,
			PostId:      ref.PostId,
			CommentId:   ref.CommentId,
			ReportId:    req.ReportId,
			ActionType:  req.ActionType,
			Description: description,
		})
		if err != nil {
			return err
		}
		if err := appendAudit(ctx, tx, actor, "action.record", "moderation_action", actionId, nil); err != nil {
			return err
		}
		action, err = tx.GetModerationActionById(ctx, actionId)
		return err
	})
	if err != nil {
		return nil, err
	}
	return action, nil
}

// Correct is the privileged fix-up path for a recorded action.
func (ac *ActionController) Correct(ctx context.Context, actor *model.Principal, actionId int64, req *db.UpdateModerationAction) (*model.ModerationAction, error) {
	if err := Decide(actor, ActionActionCorrect); err != nil {
		return nil, err
	}
	var action *model.ModerationAction
	err := ac.db.Tx(ctx, func(tx db.Database) error {
		current, err := tx.GetModerationActionById(ctx, actionId)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.NotFound("moderation action %v not found", actionId)
		}
		if err := tx.UpdateModerationAction(ctx, actionId, req); err != nil {
			return err
		}
		if err := appendAudit(ctx, tx, actor, "action.correct", "moderation_action", actionId, nil); err != nil {
			return err
		}
		action, err = tx.GetModerationActionById(ctx, actionId)
		return err
	})
	if err != nil {
		return nil, err
	}
	return action, nil
}
