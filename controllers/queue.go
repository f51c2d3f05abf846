package controllers

import (
	"context"

	"github.com/navbryce/next-dorm-trust/apperror"
	"github.com/navbryce/next-dorm-trust/db"
	"github.com/navbryce/next-dorm-trust/model"
	"go.uber.org/zap"
)

// QueueController manages the moderation queue derived from reports.
type QueueController struct {
	db     db.Database
	logger *zap.Logger
}

func NewQueueController(database db.Database, logger *zap.Logger) *QueueController {
	return &QueueController{db: database, logger: logger}
}

type EnqueueReq struct {
	CommunityId int64
	ReportId    int64
	Priority    int
}

func (qc *QueueController) Enqueue(ctx context.Context, actor *model.Principal, req *EnqueueReq) (*model.ModerationQueueEntry, error) {
	if err := Decide(actor, ActionQueueManage); err != nil {
		return nil, err
	}
	var entry *model.ModerationQueueEntry
	err := qc.db.Tx(ctx, func(tx db.Database) error {
		if _, err := ensureActiveCommunity(ctx, tx, req.CommunityId); err != nil {
			return err
		}
		report, err := tx.GetReportById(ctx, req.ReportId)
		if err != nil {
			return err
		}
		if report == nil {
			return apperror.NotFound("report %v not found", req.ReportId)
		}

		entryId, err := tx.CreateQueueEntry(ctx, &db.CreateQueueEntry{
			CommunityId: req.CommunityId,
			ReportId:    req.ReportId,
			Priority:    req.Priority,
		})
		if err != nil {
			return err
		}
		if err := appendAudit(ctx, tx, actor, "queue.enqueue", "moderation_queue_entry", entryId,
			map[string]interface{}{"report_id": req.ReportId}); err != nil {
			return err
		}
		entry, err = tx.GetQueueEntryById(ctx, entryId)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Assign hands the entry to a moderator. Resolved entries reject assignment
// with Conflict; the moderator must be an active member holding an active
// assignment.
func (qc *QueueController) Assign(ctx context.Context, actor *model.Principal, entryId int64, moderatorId string) (*model.ModerationQueueEntry, error) {
	if err := Decide(actor, ActionQueueManage); err != nil {
		return nil, err
	}
	var entry *model.ModerationQueueEntry
	err := qc.db.Tx(ctx, func(tx db.Database) error {
		current, err := tx.GetQueueEntryByIdForUpdate(ctx, entryId)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.NotFound("queue entry %v not found", entryId)
		}
		if current.Status == model.QueueStatusResolved {
			return apperror.Conflict("queue entry %v is resolved", entryId)
		}
		if _, err := ensureActiveMember(ctx, tx, moderatorId); err != nil {
			return err
		}
		active, err := tx.HasActiveAssignment(ctx, moderatorId)
		if err != nil {
			return err
		}
		if !active {
			return apperror.Conflict("member %v is not an active moderator", moderatorId)
		}
		if current.Status != model.QueueStatusAssigned &&
			!current.Status.CanTransitionTo(model.QueueStatusAssigned) {
			return apperror.InvalidStateTransition("queue entry %v cannot move from %v to %v",
				entryId, current.Status, model.QueueStatusAssigned)
		}

		status := model.QueueStatusAssigned
		if err := tx.UpdateQueueEntry(ctx, entryId, &db.UpdateQueueEntry{
			Status:              &status,
			AssignedModeratorId: &moderatorId,
		}); err != nil {
			return err
		}
		if err := appendAudit(ctx, tx, actor, "queue.assign", "moderation_queue_entry", entryId,
			map[string]interface{}{"moderator_id": moderatorId}); err != nil {
			return err
		}
		entry, err = tx.GetQueueEntryById(ctx, entryId)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateStatus moves an entry through its lifecycle. RESOLVED is final:
// every transition out of it, CLOSED included, fails.
func (qc *QueueController) UpdateStatus(ctx context.Context, actor *model.Principal, entryId int64, status model.QueueStatus) (*model.ModerationQueueEntry, error) {
	if err := Decide(actor, ActionQueueManage); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, apperror.BadInput("unknown queue status %v", status)
	}
	var entry *model.ModerationQueueEntry
	err := qc.db.Tx(ctx, func(tx db.Database) error {
		current, err := tx.GetQueueEntryByIdForUpdate(ctx, entryId)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.NotFound("queue entry %v not found", entryId)
		}
		if !current.Status.CanTransitionTo(status) {
			return apperror.InvalidStateTransition("queue entry %v cannot move from %v to %v",
				entryId, current.Status, status)
		}
		if err := tx.UpdateQueueEntry(ctx, entryId, &db.UpdateQueueEntry{Status: &status}); err != nil {
			return err
		}
		if err := appendAudit(ctx, tx, actor, "queue.update_status", "moderation_queue_entry", entryId,
			map[string]interface{}{"from": current.Status, "to": status}); err != nil {
			return err
		}
		entry, err = tx.GetQueueEntryById(ctx, entryId)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes an entry once it is resolved or closed.
func (qc *QueueController) Delete(ctx context.Context, actor *model.Principal, entryId int64) error {
	if err := Decide(actor, ActionQueueManage); err != nil {
		return err
	}
	return qc.db.Tx(ctx, func(tx db.Database) error {
		current, err := tx.GetQueueEntryByIdForUpdate(ctx, entryId)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.NotFound("queue entry %v not found", entryId)
		}
		if !current.Status.IsDeletable() {
			return apperror.Conflict("queue entry %v in status %v cannot be deleted", entryId, current.Status)
		}
		if err := tx.DeleteQueueEntry(ctx, entryId); err != nil {
			return err
		}
		return appendAudit(ctx, tx, actor, "queue.delete", "moderation_queue_entry", entryId,
			map[string]interface{}{"pre_status": current.Status})
	})
}

func (qc *QueueController) ListOpen(ctx context.Context, actor *model.Principal, communityId int64) ([]*model.ModerationQueueEntry, error) {
	if err := Decide(actor, ActionQueueManage); err != nil {
		return nil, err
	}
	return qc.db.GetOpenQueueEntries(ctx, communityId)
}
