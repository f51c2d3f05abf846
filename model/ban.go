package model

import "time"

type BanType string

const (
	BanTypeTemporary BanType = "TEMPORARY"
	BanTypePermanent BanType = "PERMANENT"
)

// BanHistory is one ban row for a member, scoped to a community or, when
// CommunityId is nil, to the whole platform. At most one row per
// (member, community) key may have IsActive set; the nil community is its
// own key value.
type BanHistory struct {
	Id             int64      `db:"id" json:"id"`
	BannedMemberId string     `db:"banned_member_id" json:"bannedMemberId"`
	IssuerId       string     `db:"issuer_id" json:"issuerId"`
	CommunityId    *int64     `db:"community_id" json:"communityId,omitempty"`
	ReportId       *int64     `db:"report_id" json:"reportId,omitempty"`
	Reason         string     `db:"reason" json:"reason"`
	BanType        BanType    `db:"ban_type" json:"banType"`
	StartAt        time.Time  `db:"start_at" json:"startAt"`
	EndAt          *time.Time `db:"end_at" json:"endAt,omitempty"`
	IsActive       bool       `db:"is_active" json:"isActive"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
}

// IsExpired reports whether the ban's end timestamp has passed.
func (b *BanHistory) IsExpired(now time.Time) bool {
	return b.EndAt != nil && b.EndAt.Before(now)
}
