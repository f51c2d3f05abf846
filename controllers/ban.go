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

// BanController issues and patches bans. A ban is community-scoped or, with
// a nil community, platform-wide; the two are distinct keys and coexist —
// lifting a platform ban must not resurrect judgement calls made by
// individual community moderators, so neither scope supersedes the other.
type BanController struct {
	db     db.Database
	logger *zap.Logger
	now    func() time.Time
}

func NewBanController(database db.Database, logger *zap.Logger) *BanController {
	return &BanController{db: database, logger: logger, now: time.Now}
}

type IssueBanReq struct {
	BannedMemberId string
	CommunityId    *int64
	ReportId       *int64
	Reason         string
	BanType        model.BanType
	StartAt        time.Time
	EndAt          *time.Time
}

// Issue creates an active ban. At most one active ban may exist per
// (member, community) key; a second attempt fails with Conflict.
func (bc *BanController) Issue(ctx context.Context, actor *model.Principal, req *IssueBanReq) (*model.BanHistory, error) {
	if err := Decide(actor, ActionBanIssue); err != nil {
		return nil, err
	}
	if req.EndAt != nil && !req.EndAt.After(req.StartAt) {
		return nil, apperror.BadInput("ban end must come after its start")
	}

	var ban *model.BanHistory
	err := bc.db.Tx(ctx, func(tx db.Database) error {
		if _, err := ensureActiveMember(ctx, tx, actor.Id); err != nil {
			return err
		}
		staff, err := isActiveStaff(ctx, tx, actor.Id)
		if err != nil {
			return err
		}
		if !staff {
			return apperror.Forbidden("issuer %v is not an active admin or moderator", actor.Id)
		}
		if _, err := ensureActiveMember(ctx, tx, req.BannedMemberId); err != nil {
			return err
		}
		if req.CommunityId != nil {
			if _, err := ensureActiveCommunity(ctx, tx, *req.CommunityId); err != nil {
				return err
			}
		}
		if req.ReportId != nil {
			report, err := tx.GetReportById(ctx, *req.ReportId)
			if err != nil {
				return err
			}
			if report == nil {
				return apperror.NotFound("report %v not found", *req.ReportId)
			}
		}

		existing, err := tx.GetActiveBanForUpdate(ctx, req.BannedMemberId, req.CommunityId)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.Conflict("duplicate active ban for member %v", req.BannedMemberId)
		}

		banId, err := tx.CreateBan(ctx, &db.CreateBan{
			BannedMemberId: req.BannedMemberId,
			IssuerId:       actor.Id,
			CommunityId:    req.CommunityId,
			ReportId:       req.ReportId,
			Reason:         req.Reason,
			BanType:        req.BanType,
			StartAt:        req.StartAt,
			EndAt:          req.EndAt,
		})
		if err != nil {
			// the unique index backstops the locked read above
			if mysqlErr, ok := err.(*mysql.MySQLError); ok && db.IsDupKeyErr(mysqlErr) {
				return apperror.Conflict("duplicate active ban for member %v", req.BannedMemberId)
			}
			return err
		}
		if err := appendAudit(ctx, tx, actor, "ban.issue", "ban_history", banId,
			map[string]interface{}{"banned_member_id": req.BannedMemberId}); err != nil {
			return err
		}
		ban, err = tx.GetBanById(ctx, banId)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ban, nil
}

// Update patches a ban. Lifting is a patch setting isActive to false; there
// is no separate lift operation. Reactivating a ban whose end timestamp has
// passed fails with Conflict.
func (bc *BanController) Update(ctx context.Context, actor *model.Principal, banId int64, req *db.UpdateBan) (*model.BanHistory, error) {
	if err := Decide(actor, ActionBanUpdate); err != nil {
		return nil, err
	}
	var ban *model.BanHistory
	err := bc.db.Tx(ctx, func(tx db.Database) error {
		current, err := tx.GetBanByIdForUpdate(ctx, banId)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.NotFound("ban %v not found", banId)
		}
		if req.IsActive != nil && *req.IsActive {
			candidate := *current
			if req.EndAt != nil {
				candidate.EndAt = req.EndAt
			}
			if candidate.IsExpired(bc.now()) {
				return apperror.Conflict("cannot reactivate an expired ban")
			}
			if !current.IsActive {
				existing, err := tx.GetActiveBanForUpdate(ctx, current.BannedMemberId, current.CommunityId)
				if err != nil {
					return err
				}
				if existing != nil && existing.Id != banId {
					return apperror.Conflict("duplicate active ban for member %v", current.BannedMemberId)
				}
			}
		}
		if err := tx.UpdateBan(ctx, banId, req); err != nil {
			return err
		}
		if err := appendAudit(ctx, tx, actor, "ban.update", "ban_history", banId, nil); err != nil {
			return err
		}
		ban, err = tx.GetBanById(ctx, banId)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ban, nil
}

func (bc *BanController) ListForMember(ctx context.Context, actor *model.Principal, memberId string) ([]*model.BanHistory, error) {
	if actor.Id != memberId {
		if err := Decide(actor, ActionBanUpdate); err != nil {
			return nil, err
		}
	}
	return bc.db.GetBansForMember(ctx, memberId)
}
