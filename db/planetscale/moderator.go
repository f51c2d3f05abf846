package planetscale

import (
	"context"

	db2 "github.com/navbryce/next-dorm-trust/db"
	"github.com/navbryce/next-dorm-trust/model"
	"github.com/upper/db/v4"
)

type ModeratorDB struct {
	sess db.Session
}

func getModeratorDB(sess db.Session) *ModeratorDB {
	return &ModeratorDB{sess}
}

func (mdb *ModeratorDB) CreateModeratorAssignment(ctx context.Context, req *db2.CreateModeratorAssignment) (int64, error) {
	res, err := mdb.sess.SQL().
		InsertInto("moderator_assignment").
		Columns("community_id", "member_id", "role", "assigner_id", "start_at").
		Values(req.CommunityId, req.MemberId, req.Role, req.AssignerId, req.StartAt).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (mdb *ModeratorDB) GetModeratorAssignmentById(ctx context.Context, id int64) (*model.ModeratorAssignment, error) {
	var assignment model.ModeratorAssignment
	if err := mdb.sess.SQL().
		Select("*").
		From("moderator_assignment").
		Where("id = ?", id).
		IteratorContext(ctx).
		One(&assignment); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

func (mdb *ModeratorDB) GetModeratorAssignmentByIdForUpdate(ctx context.Context, id int64) (*model.ModeratorAssignment, error) {
	rows, err := mdb.sess.SQL().
		QueryContext(ctx, `SELECT * FROM moderator_assignment WHERE id = ? FOR UPDATE`, id)
	if err != nil {
		return nil, err
	}
	var assignment model.ModeratorAssignment
	if err := mdb.sess.SQL().NewIteratorContext(ctx, rows).One(&assignment); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

func (mdb *ModeratorDB) GetActiveAssignment(ctx context.Context, communityId int64, memberId string) (*model.ModeratorAssignment, error) {
	var assignment model.ModeratorAssignment
	if err := mdb.sess.SQL().
		Select("*").
		From("moderator_assignment").
		Where("community_id = ? AND member_id = ? AND end_at IS NULL", communityId, memberId).
		IteratorContext(ctx).
		One(&assignment); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

func (mdb *ModeratorDB) HasActiveAssignment(ctx context.Context, memberId string) (bool, error) {
	row, err := mdb.sess.SQL().
		QueryRowContext(ctx, `SELECT COUNT(*) FROM moderator_assignment
			WHERE member_id = ? AND end_at IS NULL`, memberId)
	if err != nil {
		return false, err
	}
	var count int
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountOtherActiveOwners locks the counted rows so a concurrent demotion of
// the "other" owner cannot slip between the check and the write.
func (mdb *ModeratorDB) CountOtherActiveOwners(ctx context.Context, communityId int64, excludeAssignmentId int64) (int, error) {
	row, err := mdb.sess.SQL().
		QueryRowContext(ctx, `SELECT COUNT(*) FROM moderator_assignment
			WHERE community_id = ? AND role = ? AND end_at IS NULL AND id != ?
			FOR UPDATE`, communityId, model.ModeratorRoleOwner, excludeAssignmentId)
	if err != nil {
		return 0, err
	}
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (mdb *ModeratorDB) UpdateModeratorAssignment(ctx context.Context, id int64, req *db2.UpdateModeratorAssignment) error {
	sets := map[string]interface{}{}
	if req.Role != nil {
		sets["role"] = *req.Role
	}
	if req.EndAt != nil {
		sets["end_at"] = *req.EndAt
	}
	if len(sets) == 0 {
		return nil
	}
	_, err := mdb.sess.SQL().
		Update("moderator_assignment").
		Set(sets).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}
