package planetscale

import (
	"context"

	db2 "github.com/navbryce/next-dorm-trust/db"
	"github.com/navbryce/next-dorm-trust/model"
	"github.com/upper/db/v4"
)

type AdminDB struct {
	sess db.Session
}

func getAdminDB(sess db.Session) *AdminDB {
	return &AdminDB{sess}
}

func (adb *AdminDB) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	_, err := adb.sess.Collection("admin").
		Insert(admin)
	return err
}

func (adb *AdminDB) GetAdminById(ctx context.Context, memberId string) (*model.Admin, error) {
	var admin model.Admin
	if err := adb.sess.SQL().
		Select("*").
		From("admin").
		Where("member_id = ?", memberId).
		IteratorContext(ctx).
		One(&admin); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (adb *AdminDB) GetAdminByIdForUpdate(ctx context.Context, memberId string) (*model.Admin, error) {
	rows, err := adb.sess.SQL().
		QueryContext(ctx, `SELECT * FROM admin WHERE member_id = ? FOR UPDATE`, memberId)
	if err != nil {
		return nil, err
	}
	var admin model.Admin
	if err := adb.sess.SQL().NewIteratorContext(ctx, rows).One(&admin); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// CountOtherActiveSuperusers locks the counted rows; see CountOtherActiveOwners.
func (adb *AdminDB) CountOtherActiveSuperusers(ctx context.Context, excludeMemberId string) (int, error) {
	row, err := adb.sess.SQL().
		QueryRowContext(ctx, `SELECT COUNT(*) FROM admin
			WHERE super_user = TRUE AND status = ? AND deleted_at IS NULL AND member_id != ?
			FOR UPDATE`, model.AdminStatusActive, excludeMemberId)
	if err != nil {
		return 0, err
	}
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (adb *AdminDB) UpdateAdmin(ctx context.Context, memberId string, req *db2.UpdateAdmin) error {
	sets := map[string]interface{}{}
	if req.SuperUser != nil {
		sets["super_user"] = *req.SuperUser
	}
	if req.Status != nil {
		sets["status"] = *req.Status
	}
	if len(sets) == 0 {
		return nil
	}
	_, err := adb.sess.SQL().
		Update("admin").
		Set(sets).
		Where("member_id = ?", memberId).
		ExecContext(ctx)
	return err
}
