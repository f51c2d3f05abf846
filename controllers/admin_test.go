package controllers

import (
	"context"
	"testing"

	"github.com/navbryce/next-dorm-trust/apperror"
	"github.com/navbryce/next-dorm-trust/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func adminStatusPtr(s model.AdminStatus) *model.AdminStatus {
	return &s
}

// TestLastSuperuserGuard pins the other floor invariant: the platform never
// loses its last active superuser.
func TestLastSuperuserGuard(t *testing.T) {
	ctx := context.Background()
	store := newMemDB()
	store.seedAdmin("root", true)

	admins := NewAdminController(store, NewOwnershipGuard(), zap.NewNop())
	actor := principal("root", model.RoleAdmin)

	_, err := admins.Update(ctx, actor, "root", &UpdateAdminReq{SuperUser: boolPtr(false)})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	_, err = admins.Update(ctx, actor, "root", &UpdateAdminReq{
		Status: adminStatusPtr(model.AdminStatusInactive),
	})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	current, _ := store.GetAdminById(ctx, "root")
	assert.True(t, current.SuperUser)
	assert.Equal(t, model.AdminStatusActive, current.Status)

	store.seedAdmin("root2", true)
	updated, err := admins.Update(ctx, actor, "root", &UpdateAdminReq{SuperUser: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, updated.SuperUser)
}

// Admin mutations are keyed in the audit trail by the admin's member id, so
// they can be listed the same way as numeric-id tables.
func TestAdminUpdateAuditKeyedByMemberId(t *testing.T) {
	ctx := context.Background()
	store := newMemDB()
	store.seedAdmin("root", true)
	store.seedAdmin("root2", true)

	admins := NewAdminController(store, NewOwnershipGuard(), zap.NewNop())

	_, err := admins.Update(ctx, principal("root", model.RoleAdmin), "root2", &UpdateAdminReq{
		SuperUser: boolPtr(false),
	})
	require.NoError(t, err)

	entries, err := store.GetAuditLogEntries(ctx, "admin", "root2")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "admin.update", entries[0].ActionType)
	assert.Equal(t, "root", entries[0].ActorId)
}

func TestAdminUpdateUnknownAdmin(t *testing.T) {
	ctx := context.Background()
	store := newMemDB()
	admins := NewAdminController(store, NewOwnershipGuard(), zap.NewNop())

	_, err := admins.Update(ctx, principal("root", model.RoleAdmin), "ghost", &UpdateAdminReq{
		SuperUser: boolPtr(true),
	})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestAdminUpdateRequiresAdminRole(t *testing.T) {
	ctx := context.Background()
	store := newMemDB()
	store.seedAdmin("root", true)
	admins := NewAdminController(store, NewOwnershipGuard(), zap.NewNop())

	_, err := admins.Update(ctx, principal("mod", model.RoleModerator), "root", &UpdateAdminReq{
		SuperUser: boolPtr(false),
	})
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}
