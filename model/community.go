package model

import "time"

type Community struct {
	Id        int64      `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	DeletedAt *time.Time `db:"deleted_at" json:"deletedAt,omitempty"`
}

func (c *Community) IsActive() bool {
	return c.DeletedAt == nil
}
