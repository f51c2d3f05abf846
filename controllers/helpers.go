package controllers

import (
	"context"
	"strconv"

	"github.com/navbryce/next-dorm-trust/apperror"
	"github.com/navbryce/next-dorm-trust/db"
	"github.com/navbryce/next-dorm-trust/model"
)

func actorTypeOf(actor *model.Principal) model.ActorType {
	switch actor.Role {
	case model.RoleAdmin:
		return model.ActorTypeAdmin
	case model.RoleModerator:
		return model.ActorTypeModerator
	}
	return model.ActorTypeMember
}

// appendAudit writes the audit entry for a mutation on a numeric-id table.
// It must run on the same tx as the mutation it describes.
func appendAudit(ctx context.Context, tx db.Database, actor *model.Principal, actionType, targetTable string, targetId int64, details map[string]interface{}) error {
	return appendAuditKeyed(ctx, tx, actor, actionType, targetTable, strconv.FormatInt(targetId, 10), details)
}

// appendAuditKeyed is the variant for tables whose primary key is not
// numeric, like admin rows keyed by member id.
func appendAuditKeyed(ctx context.Context, tx db.Database, actor *model.Principal, actionType, targetTable, targetKey string, details map[string]interface{}) error {
	_, err := tx.CreateAuditLogEntry(ctx, &db.CreateAuditLogEntry{
		ActorType:   actorTypeOf(actor),
		ActorId:     actor.Id,
		ActionType:  actionType,
		TargetTable: targetTable,
		TargetId:    targetKey,
		Details:     details,
	})
	return err
}

func ensureActiveMember(ctx context.Context, tx db.Database, id string) (*model.Member, error) {
	member, err := tx.GetMemberById(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil || !member.IsActive() {
		return nil, apperror.NotFound("member %v not found", id)
	}
	return member, nil
}

func ensureActiveCommunity(ctx context.Context, tx db.Database, id int64) (*model.Community, error) {
	community, err := tx.GetCommunityById(ctx, id)
	if err != nil {
		return nil, err
	}
	if community == nil || !community.IsActive() {
		return nil, apperror.NotFound("community %v not found", id)
	}
	return community, nil
}

func ensureActiveAdmin(ctx context.Context, tx db.Database, memberId string) (*model.Admin, error) {
	admin, err := tx.GetAdminById(ctx, memberId)
	if err != nil {
		return nil, err
	}
	if admin == nil || !admin.IsActive() {
		return nil, apperror.NotFound("admin %v not found", memberId)
	}
	return admin, nil
}

// ensureTargetExists validates the post-XOR-comment reference of reports and
// moderation actions.
func ensureTargetExists(ctx context.Context, tx db.Database, ref model.ContentRef) error {
	if !ref.IsValid() {
		return apperror.BadInput("exactly one of postId and commentId must be set")
	}
	if ref.PostId != nil {
		post, err := tx.GetPostById(ctx, *ref.PostId)
		if err != nil {
			return err
		}
		if post == nil {
			return apperror.NotFound("post %v not found", *ref.PostId)
		}
		return nil
	}
	comment, err := tx.GetCommentById(ctx, *ref.CommentId)
	if err != nil {
		return err
	}
	if comment == nil {
		return apperror.NotFound("comment %v not found", *ref.CommentId)
	}
	return nil
}

// isActiveStaff reports whether the member holds an active admin row or any
// active moderator assignment.
func isActiveStaff(ctx context.Context, tx db.Database, memberId string) (bool, error) {
	admin, err := tx.GetAdminById(ctx, memberId)
	if err != nil {
		return false, err
	}
	if admin != nil && admin.IsActive() {
		return true, nil
	}
	return tx.HasActiveAssignment(ctx, memberId)
}
