package controllers

import (
	"context"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/navbryce/next-dorm-trust/apperror"
	"github.com/navbryce/next-dorm-trust/db"
	"github.com/navbryce/next-dorm-trust/model"
	"go.uber.org/zap"
)

// ModeratorController manages moderator assignments. Every demotion or
// ending of an OWNER assignment runs through the ownership guard.
type ModeratorController struct {
	db     db.Database
	guard  *OwnershipGuard
	logger *zap.Logger
	now    func() time.Time
}

func NewModeratorController(database db.Database, guard *OwnershipGuard, logger *zap.Logger) *ModeratorController {
	return &ModeratorController{db: database, guard: guard, logger: logger, now: time.Now}
}

type AssignModeratorReq struct {
	CommunityId int64
	MemberId    string
	Role        model.ModeratorRole
}

func (mc *ModeratorController) Assign(ctx context.Context, actor *model.Principal, req *AssignModeratorReq) (*model.ModeratorAssignment, error) {
	if err := Decide(actor, ActionModeratorManage); err != nil {
		return nil, err
	}
	if !req.Role.IsValid() {
		return nil, apperror.BadInput("unknown moderator role %v", req.Role)
	}
	var assignment *model.ModeratorAssignment
	err := mc.db.Tx(ctx, func(tx db.Database) error {
		if _, err := ensureActiveCommunity(ctx, tx, req.CommunityId); err != nil {
			return err
		}
		if _, err := ensureActiveMember(ctx, tx, req.MemberId); err != nil {
			return err
		}
		existing, err := tx.GetActiveAssignment(ctx, req.CommunityId, req.MemberId)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.Conflict("member %v already moderates community %v", req.MemberId, req.CommunityId)
		}

		assignmentId, err := tx.CreateModeratorAssignment(ctx, &db.CreateModeratorAssignment{
			CommunityId: req.CommunityId,
			MemberId:    req.MemberId,
			Role:        req.Role,
			AssignerId:  actor.Id,
			StartAt:     mc.now(),
		})
		if err != nil {
			if mysqlErr, ok := err.(*mysql.MySQLError); ok && db.IsDupKeyErr(mysqlErr) {
				return apperror.Conflict("member %v already moderates community %v", req.MemberId, req.CommunityId)
			}
			return err
		}
		if err := appendAudit(ctx, tx, actor, "moderator.assign", "moderator_assignment", assignmentId,
			map[string]interface{}{"member_id": req.MemberId, "role": req.Role}); err != nil {
			return err
		}
		assignment, err = tx.GetModeratorAssignmentById(ctx, assignmentId)
		return err
	})
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

type UpdateAssignmentReq struct {
	Role  *model.ModeratorRole
	EndAt *time.Time
}

// Update patches an assignment's role or end timestamp. A change that would
// leave the community without an active owner fails with Conflict and
// leaves the assignment untouched.
func (mc *ModeratorController) Update(ctx context.Context, actor *model.Principal, assignmentId int64, req *UpdateAssignmentReq) (*model.ModeratorAssignment, error) {
	if err := Decide(actor, ActionModeratorManage); err != nil {
		return nil, err
	}
	if req.Role != nil && !req.Role.IsValid() {
		return nil, apperror.BadInput("unknown moderator role %v", *req.Role)
	}
	var assignment *model.ModeratorAssignment
	err := mc.db.Tx(ctx, func(tx db.Database) error {
		current, err := tx.GetModeratorAssignmentByIdForUpdate(ctx, assignmentId)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.NotFound("moderator assignment %v not found", assignmentId)
		}

		demotesOwner := (req.Role != nil && *req.Role != model.ModeratorRoleOwner) || req.EndAt != nil
		if demotesOwner {
			if err := mc.guard.CheckOwnerDemotion(ctx, tx, current); err != nil {
				return err
			}
		}

		if err := tx.UpdateModeratorAssignment(ctx, assignmentId, &db.UpdateModeratorAssignment{
			Role:  req.Role,
			EndAt: req.EndAt,
		}); err != nil {
			return err
		}
		if err := appendAudit(ctx, tx, actor, "moderator.update", "moderator_assignment", assignmentId, nil); err != nil {
			return err
		}
		assignment, err = tx.GetModeratorAssignmentById(ctx, assignmentId)
		return err
	})
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

// End closes an assignment, subject to the same last-owner guard.
func (mc *ModeratorController) End(ctx context.Context, actor *model.Principal, assignmentId int64) error {
	now := mc.now()
	_, err := mc.Update(ctx, actor, assignmentId, &UpdateAssignmentReq{EndAt: &now})
	return err
}
