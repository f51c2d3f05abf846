package controllers

import (
	"context"

	"github.com/navbryce/next-dorm-trust/apperror"
	"github.com/navbryce/next-dorm-trust/db"
	"github.com/navbryce/next-dorm-trust/model"
)

// OwnershipGuard enforces the two floor invariants of the platform: a
// community never loses its last active owner and the platform never loses
// its last active superuser. The checks are read-then-write, so they must
// run inside the same transaction as the demotion they guard.
type OwnershipGuard struct{}

func NewOwnershipGuard() *OwnershipGuard {
	return &OwnershipGuard{}
}

// CheckOwnerDemotion fails with Conflict when ending or demoting the given
// assignment would leave its community without an active owner.
func (g *OwnershipGuard) CheckOwnerDemotion(ctx context.Context, tx db.Database, assignment *model.ModeratorAssignment) error {
	if assignment.Role != model.ModeratorRoleOwner || !assignment.IsActive() {
		return nil
	}
	count, err := tx.CountOtherActiveOwners(ctx, assignment.CommunityId, assignment.Id)
	if err != nil {
		return err
	}
	if count == 0 {
		return apperror.Conflict("last owner of community %v", assignment.CommunityId)
	}
	return nil
}

// CheckSuperuserDemotion fails with Conflict when demoting or deactivating
// the given admin would leave the platform without an active superuser.
func (g *OwnershipGuard) CheckSuperuserDemotion(ctx context.Context, tx db.Database, admin *model.Admin) error {
	if !admin.SuperUser || !admin.IsActive() {
		return nil
	}
	count, err := tx.CountOtherActiveSuperusers(ctx, admin.MemberId)
	if err != nil {
		return err
	}
	if count == 0 {
		return apperror.Conflict("last superuser")
	}
	return nil
}
