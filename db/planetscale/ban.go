package planetscale

import (
	"context"

	db2 "github.com/navbryce/next-dorm-trust/db"
	"github.com/navbryce/next-dorm-trust/model"
	"github.com/upper/db/v4"
)

type BanDB struct {
	sess db.Session
}

func getBanDB(sess db.Session) *BanDB {
	return &BanDB{sess}
}

func (bdb *BanDB) CreateBan(ctx context.Context, req *db2.CreateBan) (int64, error) {
	res, err := bdb.sess.SQL().
		InsertInto("ban_history").
		Columns("banned_member_id", "issuer_id", "community_id", "report_id",
			"reason", "ban_type", "start_at", "end_at", "is_active").
		Values(req.BannedMemberId, req.IssuerId, req.CommunityId, req.ReportId,
			req.Reason, req.BanType, req.StartAt, req.EndAt, true).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (bdb *BanDB) GetBanById(ctx context.Context, id int64) (*model.BanHistory, error) {
	var ban model.BanHistory
	if err := bdb.sess.SQL().
		Select("*").
		From("ban_history").
		Where("id = ?", id).
		IteratorContext(ctx).
		One(&ban); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &ban, nil
}

func (bdb *BanDB) GetBanByIdForUpdate(ctx context.Context, id int64) (*model.BanHistory, error) {
	rows, err := bdb.sess.SQL().
		QueryContext(ctx, `SELECT * FROM ban_history WHERE id = ? FOR UPDATE`, id)
	if err != nil {
		return nil, err
	}
	var ban model.BanHistory
	if err := bdb.sess.SQL().NewIteratorContext(ctx, rows).One(&ban); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &ban, nil
}

// GetActiveBan reads the active row for the exact (member, community) key.
// The platform-wide key (nil community) never matches a community-scoped row.
func (bdb *BanDB) GetActiveBan(ctx context.Context, memberId string, communityId *int64) (*model.BanHistory, error) {
	var ban model.BanHistory
	if err := bdb.sess.SQL().
		Select("*").
		From("ban_history").
		Where("banned_member_id = ? AND community_id <=> ? AND is_active = ?", memberId, communityId, true).
		IteratorContext(ctx).
		One(&ban); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &ban, nil
}

// GetActiveBanForUpdate is GetActiveBan with the row locked.
func (bdb *BanDB) GetActiveBanForUpdate(ctx context.Context, memberId string, communityId *int64) (*model.BanHistory, error) {
	rows, err := bdb.sess.SQL().
		QueryContext(ctx, `SELECT * FROM ban_history
			WHERE banned_member_id = ? AND (community_id <=> ?) AND is_active = TRUE
			FOR UPDATE`, memberId, communityId)
	if err != nil {
		return nil, err
	}
	var ban model.BanHistory
	if err := bdb.sess.SQL().NewIteratorContext(ctx, rows).One(&ban); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &ban, nil
}

func (bdb *BanDB) GetBansForMember(ctx context.Context, memberId string) ([]*model.BanHistory, error) {
	var bans []*model.BanHistory
	return bans, bdb.sess.SQL().
		Select("*").
		From("ban_history").
		Where("banned_member_id = ?", memberId).
		OrderBy("created_at DESC").
		IteratorContext(ctx).
		All(&bans)
}

func (bdb *BanDB) UpdateBan(ctx context.Context, id int64, req *db2.UpdateBan) error {
	sets := map[string]interface{}{}
	if req.IsActive != nil {
		sets["is_active"] = *req.IsActive
	}
	if req.EndAt != nil {
		sets["end_at"] = *req.EndAt
	}
	if req.Reason != nil {
		sets["reason"] = *req.Reason
	}
	if len(sets) == 0 {
		return nil
	}
	_, err := bdb.sess.SQL().
		Update("ban_history").
		Set(sets).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}
