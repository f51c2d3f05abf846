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

func appealFixture(t *testing.T) (*memDB, *AppealController, int64) {
	t.Helper()
	store := newMemDB()
	store.seedMember("mod")
	store.seedMember("alice")
	postId := store.seedPost("bob")
	categoryId := store.seedCategory("spam")
	reportId := store.seedReport("alice", postId, categoryId, model.ReportStatusEscalated)
	escalationId := store.seedEscalation(reportId, "mod")
	return store, NewAppealController(store, zap.NewNop()), escalationId
}

// TestAppealOnlyInitiator pins who may challenge an escalation: the recorded
// initiator, nobody else.
func TestAppealOnlyInitiator(t *testing.T) {
	ctx := context.Background()
	_, appeals, escalationId := appealFixture(t)

	_, err := appeals.Create(ctx, principal("alice", model.RoleMember), &CreateAppealReq{
		EscalationId: escalationId,
		AppealType:   model.AppealTypeEscalation,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))

	appeal, err := appeals.Create(ctx, principal("mod", model.RoleModerator), &CreateAppealReq{
		EscalationId: escalationId,
		AppealType:   model.AppealTypeEscalation,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppealStatusPending, appeal.Status)
	assert.Equal(t, "mod", appeal.AppellantId)
}

func TestAppealResolveLock(t *testing.T) {
	ctx := context.Background()
	store, appeals, escalationId := appealFixture(t)
	store.seedMember("root")
	store.seedAdmin("root", false)

	appeal, err := appeals.Create(ctx, principal("mod", model.RoleModerator), &CreateAppealReq{
		EscalationId: escalationId,
		AppealType:   model.AppealTypeSanction,
	})
	require.NoError(t, err)

	resolved, err := appeals.Resolve(ctx, principal("root", model.RoleAdmin), appeal.Id, &ResolveAppealReq{
		ResolutionType:    "UPHELD",
		ResolutionComment: "original call stands",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppealStatusResolved, resolved.Status)
	require.NotNil(t, resolved.ReviewingAdminId)
	assert.Equal(t, "root", *resolved.ReviewingAdminId)

	_, err = appeals.Resolve(ctx, principal("root", model.RoleAdmin), appeal.Id, &ResolveAppealReq{
		ResolutionType: "OVERTURNED",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidStateTransition))
}

func TestAppealResolveRequiresAdminRow(t *testing.T) {
	ctx := context.Background()
	_, appeals, escalationId := appealFixture(t)

	appeal, err := appeals.Create(ctx, principal("mod", model.RoleModerator), &CreateAppealReq{
		EscalationId: escalationId,
		AppealType:   model.AppealTypeSanction,
	})
	require.NoError(t, err)

	// role claims admin, but there is no active admin record behind it
	_, err = appeals.Resolve(ctx, principal("impostor", model.RoleAdmin), appeal.Id, &ResolveAppealReq{
		ResolutionType: "UPHELD",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestAppealUnknownEscalation(t *testing.T) {
	ctx := context.Background()
	store := newMemDB()
	store.seedMember("mod")
	appeals := NewAppealController(store, zap.NewNop())

	_, err := appeals.Create(ctx, principal("mod", model.RoleModerator), &CreateAppealReq{
		EscalationId: 404,
		AppealType:   model.AppealTypeEscalation,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
