package controllers

import (
	"context"

	"github.com/navbryce/next-dorm-trust/apperror"
	"github.com/navbryce/next-dorm-trust/db"
	"github.com/navbryce/next-dorm-trust/model"
	"go.uber.org/zap"
)

// AdminController updates platform admin records. Demoting or deactivating
// the last active superuser fails with Conflict.
type AdminController struct {
	db     db.Database
	guard  *OwnershipGuard
	logger *zap.Logger
}

func NewAdminController(database db.Database, guard *OwnershipGuard, logger *zap.Logger) *AdminController {
	return &AdminController{db: database, guard: guard, logger: logger}
}

type UpdateAdminReq struct {
	SuperUser *bool
	Status    *model.AdminStatus
}

func (ac *AdminController) Update(ctx context.Context, actor *model.Principal, memberId string, req *UpdateAdminReq) (*model.Admin, error) {
	if err := Decide(actor, ActionAdminManage); err != nil {
		return nil, err
	}
	var admin *model.Admin
	err := ac.db.Tx(ctx, func(tx db.Database) error {
		current, err := tx.GetAdminByIdForUpdate(ctx, memberId)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.NotFound("admin %v not found", memberId)
		}

		demotes := (req.SuperUser != nil && !*req.SuperUser) ||
			(req.Status != nil && *req.Status != model.AdminStatusActive)
		if demotes {
			if err := ac.guard.CheckSuperuserDemotion(ctx, tx, current); err != nil {
				return err
			}
		}

		if err := tx.UpdateAdmin(ctx, memberId, &db.UpdateAdmin{
			SuperUser: req.SuperUser,
			Status:    req.Status,
		}); err != nil {
			return err
		}
		if err := appendAuditKeyed(ctx, tx, actor, "admin.update", "admin", memberId, nil); err != nil {
			return err
		}
		admin, err = tx.GetAdminById(ctx, memberId)
		return err
	})
	if err != nil {
		return nil, err
	}
	return admin, nil
}
