package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/navbryce/next-dorm-trust/model"

	_ "github.com/go-sql-driver/mysql"
)

// Database is the transactional store the moderation core runs against. The
// ForUpdate read variants lock the selected rows so the check-then-act
// invariants hold for the duration of a Tx.
type Database interface {
	MemberDatabase
	CommunityDatabase
	ContentDatabase
	ReportDatabase
	QueueDatabase
	ActionDatabase
	EscalationDatabase
	AppealDatabase
	BanDatabase
	ModeratorDatabase
	AdminDatabase
	AuditDatabase

	// Tx runs fn inside a single transaction. The Database handed to fn is
	// bound to that transaction; an error from fn rolls everything back.
	Tx(ctx context.Context, fn func(tx Database) error) error
	GetSQLDB() *sql.DB
	Close() error
}

type MemberDatabase interface {
	CreateMember(ctx context.Context, member *model.Member) error
	GetMemberById(ctx context.Context, id string) (*model.Member, error)
}

type CommunityDatabase interface {
	CreateCommunity(ctx context.Context, name string) (communityId int64, err error)
	GetCommunityById(ctx context.Context, id int64) (*model.Community, error)
}

type ContentDatabase interface {
	GetPostById(ctx context.Context, id int64) (*model.Post, error)
	GetCommentById(ctx context.Context, id int64) (*model.Comment, error)
}

type CreateReport struct {
	ReporterId string
	PostId     *int64
	CommentId  *int64
	CategoryId int64
	Reason     string
}

type UpdateReportStatus struct {
	Status           model.ReportStatus
	ModerationResult *string
	ClosedById       *string
}

type ReportDatabase interface {
	CreateReport(ctx context.Context, req *CreateReport) (reportId int64, err error)
	GetReportById(ctx context.Context, id int64) (*model.Report, error)
	GetReportByIdForUpdate(ctx context.Context, id int64) (*model.Report, error)
	GetReportsByStatus(ctx context.Context, status model.ReportStatus, limit int) ([]*model.Report, error)
	UpdateReportStatus(ctx context.Context, id int64, req *UpdateReportStatus) error
	DeleteReport(ctx context.Context, id int64) error
	GetReportCategoryById(ctx context.Context, id int64) (*model.ReportCategory, error)
}

type CreateQueueEntry struct {
	CommunityId int64
	ReportId    int64
	Priority    int
}

type UpdateQueueEntry struct {
	Status              *model.QueueStatus
	AssignedModeratorId *string
}

type QueueDatabase interface {
	CreateQueueEntry(ctx context.Context, req *CreateQueueEntry) (entryId int64, err error)
	GetQueueEntryById(ctx context.Context, id int64) (*model.ModerationQueueEntry, error)
	GetQueueEntryByIdForUpdate(ctx context.Context, id int64) (*model.ModerationQueueEntry, error)
	GetOpenQueueEntries(ctx context.Context, communityId int64) ([]*model.ModerationQueueEntry, error)
	UpdateQueueEntry(ctx context.Context, id int64, req *UpdateQueueEntry) error
	DeleteQueueEntry(ctx context.Context, id int64) error
	DeleteQueueEntriesForReport(ctx context.Context, reportId int64) error
}

type CreateModerationAction struct {
	ActorId     string
	PostId      *int64
	CommentId   *int64
	ReportId    *int64
	ActionType  string
	Description string
}

type UpdateModerationAction struct {
	ActionType  *string
	Description *string
}

type ActionDatabase interface {
	CreateModerationAction(ctx context.Context, req *CreateModerationAction) (actionId int64, err error)
	GetModerationActionById(ctx context.Context, id int64) (*model.ModerationAction, error)
	UpdateModerationAction(ctx context.Context, id int64, req *UpdateModerationAction) error
	DeleteActionsForReport(ctx context.Context, reportId int64) error
}

type CreateEscalation struct {
	ReportId           int64
	InitiatorId        string
	DestinationAdminId *string
	Reason             string
}

type UpdateEscalation struct {
	Status             *model.EscalationStatus
	DestinationAdminId *string
	ResolutionSummary  *string
}

type EscalationDatabase interface {
	CreateEscalation(ctx context.Context, req *CreateEscalation) (escalationId int64, err error)
	GetEscalationById(ctx context.Context, id int64) (*model.EscalationLog, error)
	UpdateEscalation(ctx context.Context, id int64, req *UpdateEscalation) error
	DeleteEscalationsForReport(ctx context.Context, reportId int64) error
}

type CreateAppeal struct {
	EscalationId int64
	AppellantId  string
	AppealType   model.AppealType
}

type ResolveAppeal struct {
	ResolutionType    string
	ResolutionComment string
	ReviewingAdminId  string
}

type AppealDatabase interface {
	CreateAppeal(ctx context.Context, req *CreateAppeal) (appealId int64, err error)
	GetAppealById(ctx context.Context, id int64) (*model.Appeal, error)
	GetAppealByIdForUpdate(ctx context.Context, id int64) (*model.Appeal, error)
	ResolveAppeal(ctx context.Context, id int64, req *ResolveAppeal) error
}

type CreateBan struct {
	BannedMemberId string
	IssuerId       string
	CommunityId    *int64
	ReportId       *int64
	Reason         string
	BanType        model.BanType
	StartAt        time.Time
	EndAt          *time.Time
}

type UpdateBan struct {
	IsActive *bool
	EndAt    *time.Time
	Reason   *string
}

type BanDatabase interface {
	CreateBan(ctx context.Context, req *CreateBan) (banId int64, err error)
	GetBanById(ctx context.Context, id int64) (*model.BanHistory, error)
	GetBanByIdForUpdate(ctx context.Context, id int64) (*model.BanHistory, error)
	// GetActiveBan returns the active ban for the exact (member, community)
	// key. A nil communityId addresses the platform-wide key, not all keys.
	GetActiveBan(ctx context.Context, memberId string, communityId *int64) (*model.BanHistory, error)
	// GetActiveBanForUpdate is GetActiveBan with the row locked for the
	// duration of the transaction.
	GetActiveBanForUpdate(ctx context.Context, memberId string, communityId *int64) (*model.BanHistory, error)
	GetBansForMember(ctx context.Context, memberId string) ([]*model.BanHistory, error)
	UpdateBan(ctx context.Context, id int64, req *UpdateBan) error
}

type CreateModeratorAssignment struct {
	CommunityId int64
	MemberId    string
	Role        model.ModeratorRole
	AssignerId  string
	StartAt     time.Time
}

type UpdateModeratorAssignment struct {
	Role  *model.ModeratorRole
	EndAt *time.Time
}

type ModeratorDatabase interface {
	CreateModeratorAssignment(ctx context.Context, req *CreateModeratorAssignment) (assignmentId int64, err error)
	GetModeratorAssignmentById(ctx context.Context, id int64) (*model.ModeratorAssignment, error)
	GetModeratorAssignmentByIdForUpdate(ctx context.Context, id int64) (*model.ModeratorAssignment, error)
	GetActiveAssignment(ctx context.Context, communityId int64, memberId string) (*model.ModeratorAssignment, error)
	HasActiveAssignment(ctx context.Context, memberId string) (bool, error)
	// CountOtherActiveOwners counts active OWNER assignments in the
	// community excluding the given assignment, locking the counted rows.
	CountOtherActiveOwners(ctx context.Context, communityId int64, excludeAssignmentId int64) (int, error)
	UpdateModeratorAssignment(ctx context.Context, id int64, req *UpdateModeratorAssignment) error
}

type UpdateAdmin struct {
	SuperUser *bool
	Status    *model.AdminStatus
}

type AdminDatabase interface {
	CreateAdmin(ctx context.Context, admin *model.Admin) error
	GetAdminById(ctx context.Context, memberId string) (*model.Admin, error)
	GetAdminByIdForUpdate(ctx context.Context, memberId string) (*model.Admin, error)
	// CountOtherActiveSuperusers counts active superuser admins excluding
	// the given one, locking the counted rows.
	CountOtherActiveSuperusers(ctx context.Context, excludeMemberId string) (int, error)
	UpdateAdmin(ctx context.Context, memberId string, req *UpdateAdmin) error
}

// CreateAuditLogEntry addresses its target by (table, key). The key is the
// target row's primary key rendered as a string, since admin rows are keyed
// by member id rather than a numeric id.
type CreateAuditLogEntry struct {
	ActorType   model.ActorType
	ActorId     string
	ActionType  string
	TargetTable string
	TargetId    string
	Details     map[string]interface{}
}

type AuditDatabase interface {
	CreateAuditLogEntry(ctx context.Context, req *CreateAuditLogEntry) (entryId int64, err error)
	GetAuditLogEntries(ctx context.Context, targetTable string, targetId string) ([]*model.AuditLogEntry, error)
}
