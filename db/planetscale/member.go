package planetscale

import (
	"context"

	"github.com/navbryce/next-dorm-trust/model"
	"github.com/upper/db/v4"
)

type MemberDB struct {
	sess db.Session
}

func getMemberDB(sess db.Session) *MemberDB {
	return &MemberDB{sess}
}

func (mdb *MemberDB) CreateMember(ctx context.Context, member *model.Member) error {
	_, err := mdb.sess.Collection("person").
		Insert(member)
	return err
}

func (mdb *MemberDB) GetMemberById(ctx context.Context, id string) (*model.Member, error) {
	var member model.Member
	if err := mdb.sess.SQL().
		Select("*").
		From("person").
		Where("firebase_id = ?", id).
		IteratorContext(ctx).
		One(&member); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}
