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

func principal(id string, role model.Role) *model.Principal {
	return &model.Principal{Id: id, Role: role}
}

func strPtr(s string) *string {
	return &s
}

// TestReportLifecycle walks a report from intake through queue triage to
// resolution and final deletion, checking the cascade and the audit trail.
func TestReportLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newMemDB()
	store.seedMember("alice")
	store.seedMember("mod")
	store.seedMember("root")
	store.seedAdmin("root", true)
	communityId := store.seedCommunity("lounge")
	store.seedAssignment(communityId, "mod", model.ModeratorRoleModerator)
	postId := store.seedPost("bob")
	categoryId := store.seedCategory("spam")

	reports := NewReportController(store, zap.NewNop())
	queues := NewQueueController(store, zap.NewNop())

	report, err := reports.Create(ctx, principal("alice", model.RoleMember), &CreateReportReq{
		PostId:     &postId,
		CategoryId: categoryId,
		Reason:     "<script>alert(1)</script>spam post",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReportStatusPending, report.Status)
	assert.Equal(t, "spam post", report.Reason, "reason should be sanitized")

	entry, err := queues.Enqueue(ctx, principal("mod", model.RoleModerator), &EnqueueReq{
		CommunityId: communityId,
		ReportId:    report.Id,
		Priority:    2,
	})
	require.NoError(t, err)
	assert.Equal(t, model.QueueStatusOpen, entry.Status)

	entry, err = queues.Assign(ctx, principal("mod", model.RoleModerator), entry.Id, "mod")
	require.NoError(t, err)
	assert.Equal(t, model.QueueStatusAssigned, entry.Status)
	require.NotNil(t, entry.AssignedModeratorId)
	assert.Equal(t, "mod", *entry.AssignedModeratorId)

	_, err = queues.UpdateStatus(ctx, principal("mod", model.RoleModerator), entry.Id, model.QueueStatusResolved)
	require.NoError(t, err)

	report, err = reports.UpdateStatus(ctx, principal("mod", model.RoleModerator), report.Id, &UpdateReportStatusReq{
		Status: model.ReportStatusUnderReview,
	})
	require.NoError(t, err)
	report, err = reports.UpdateStatus(ctx, principal("mod", model.RoleModerator), report.Id, &UpdateReportStatusReq{
		Status:           model.ReportStatusResolved,
		ModerationResult: strPtr("post removed"),
	})
	require.NoError(t, err)
	require.NotNil(t, report.ClosedById)
	assert.Equal(t, "mod", *report.ClosedById)

	require.NoError(t, reports.Delete(ctx, principal("root", model.RoleAdmin), report.Id))

	gone, err := store.GetReportById(ctx, report.Id)
	require.NoError(t, err)
	assert.Nil(t, gone)
	assert.Empty(t, store.queue, "queue entries referencing the report must be gone")

	entries, err := store.GetAuditLogEntries(ctx, "report", auditKey(report.Id))
	require.NoError(t, err)
	require.Len(t, entries, 4, "create, two status updates, delete")
	last := entries[len(entries)-1]
	assert.Equal(t, "report.delete", last.ActionType)
	assert.Contains(t, last.Details, `"pre_status":"RESOLVED"`)
}

func TestReportDeleteOpenReportConflict(t *testing.T) {
	ctx := context.Background()
	store := newMemDB()
	store.seedMember("alice")
	postId := store.seedPost("bob")
	categoryId := store.seedCategory("spam")
	reportId := store.seedReport("alice", postId, categoryId, model.ReportStatusPending)

	reports := NewReportController(store, zap.NewNop())

	err := reports.Delete(ctx, principal("root", model.RoleAdmin), reportId)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	report, err := store.GetReportById(ctx, reportId)
	require.NoError(t, err)
	require.NotNil(t, report, "failed delete must leave the report in place")

	entries, err := store.GetAuditLogEntries(ctx, "report", auditKey(reportId))
	require.NoError(t, err)
	assert.Empty(t, entries, "a rejected delete writes no audit entry")
}

func TestReportTerminalStatusLocked(t *testing.T) {
	ctx := context.Background()
	store := newMemDB()
	store.seedMember("alice")
	postId := store.seedPost("bob")
	categoryId := store.seedCategory("spam")
	reportId := store.seedReport("alice", postId, categoryId, model.ReportStatusResolved)

	reports := NewReportController(store, zap.NewNop())

	_, err := reports.UpdateStatus(ctx, principal("mod", model.RoleModerator), reportId, &UpdateReportStatusReq{
		Status: model.ReportStatusUnderReview,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidStateTransition))

	report, _ := store.GetReportById(ctx, reportId)
	assert.Equal(t, model.ReportStatusResolved, report.Status)
}

func TestReportCreateValidation(t *testing.T) {
	ctx := context.Background()
	store := newMemDB()
	store.seedMember("alice")
	postId := store.seedPost("bob")
	categoryId := store.seedCategory("spam")

	reports := NewReportController(store, zap.NewNop())
	actor := principal("alice", model.RoleMember)

	commentId := int64(999)
	_, err := reports.Create(ctx, actor, &CreateReportReq{
		PostId:     &postId,
		CommentId:  &commentId,
		CategoryId: categoryId,
		Reason:     "both targets",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindBadInput), "post and comment together must be rejected")

	missingPost := int64(12345)
	_, err = reports.Create(ctx, actor, &CreateReportReq{
		PostId:     &missingPost,
		CategoryId: categoryId,
		Reason:     "missing target",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	_, err = reports.Create(ctx, actor, &CreateReportReq{
		PostId:     &postId,
		CategoryId: 54321,
		Reason:     "missing category",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestReportGetByIdVisibility(t *testing.T) {
	ctx := context.Background()
	store := newMemDB()
	store.seedMember("alice")
	postId := store.seedPost("bob")
	categoryId := store.seedCategory("spam")
	reportId := store.seedReport("alice", postId, categoryId, model.ReportStatusPending)

	reports := NewReportController(store, zap.NewNop())

	report, err := reports.GetById(ctx, principal("alice", model.RoleMember), reportId)
	require.NoError(t, err)
	assert.Equal(t, reportId, report.Id)

	_, err = reports.GetById(ctx, principal("carol", model.RoleMember), reportId)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))

	_, err = reports.GetById(ctx, principal("mod", model.RoleModerator), reportId)
	assert.NoError(t, err)
}
