package planetscale

import (
	"context"

	"github.com/navbryce/next-dorm-trust/model"
	"github.com/upper/db/v4"
)

type CommunityDB struct {
	sess db.Session
}

func getCommunityDB(sess db.Session) *CommunityDB {
	return &CommunityDB{sess}
}

func (cdb *CommunityDB) CreateCommunity(ctx context.Context, name string) (int64, error) {
	res, err := cdb.sess.SQL().
		InsertInto("community").
		Values(name).
		Columns("name").
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (cdb *CommunityDB) GetCommunityById(ctx context.Context, id int64) (*model.Community, error) {
	var community model.Community
	if err := cdb.sess.SQL().
		Select("*").
		From("community").
		Where("id = ?", id).
		IteratorContext(ctx).
		One(&community); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &community, nil
}
