package controllers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/navbryce/next-dorm-trust/db"
	"github.com/navbryce/next-dorm-trust/model"
)

// memDB is an in-memory db.Database for controller tests. Tx snapshots every
// table and restores it when fn fails, mirroring the rollback semantics of
// the real store. Values are stored by value so a snapshot is a plain map
// copy.
type memDB struct {
	members     map[string]model.Member
	communities map[int64]model.Community
	posts       map[int64]model.Post
	comments    map[int64]model.Comment
	categories  map[int64]model.ReportCategory
	reports     map[int64]model.Report
	queue       map[int64]model.ModerationQueueEntry
	actions     map[int64]model.ModerationAction
	escalations map[int64]model.EscalationLog
	appeals     map[int64]model.Appeal
	bans        map[int64]model.BanHistory
	assignments map[int64]model.ModeratorAssignment
	admins      map[string]model.Admin
	audit       []model.AuditLogEntry
	nextId      int64
}

func newMemDB() *memDB {
	return &memDB{
		members:     make(map[string]model.Member),
		communities: make(map[int64]model.Community),
		posts:       make(map[int64]model.Post),
		comments:    make(map[int64]model.Comment),
		categories:  make(map[int64]model.ReportCategory),
		reports:     make(map[int64]model.Report),
		queue:       make(map[int64]model.ModerationQueueEntry),
		actions:     make(map[int64]model.ModerationAction),
		escalations: make(map[int64]model.EscalationLog),
		appeals:     make(map[int64]model.Appeal),
		bans:        make(map[int64]model.BanHistory),
		assignments: make(map[int64]model.ModeratorAssignment),
		admins:      make(map[string]model.Admin),
	}
}

func (m *memDB) id() int64 {
	m.nextId++
	return m.nextId
}

func (m *memDB) snapshot() memDB {
	snap := *newMemDB()
	for k, v := range m.members {
		snap.members[k] = v
	}
	for k, v := range m.communities {
		snap.communities[k] = v
	}
	for k, v := range m.posts {
		snap.posts[k] = v
	}
	for k, v := range m.comments {
		snap.comments[k] = v
	}
	for k, v := range m.categories {
		snap.categories[k] = v
	}
	for k, v := range m.reports {
		snap.reports[k] = v
	}
	for k, v := range m.queue {
		snap.queue[k] = v
	}
	for k, v := range m.actions {
		snap.actions[k] = v
	}
	for k, v := range m.escalations {
		snap.escalations[k] = v
	}
	for k, v := range m.appeals {
		snap.appeals[k] = v
	}
	for k, v := range m.bans {
		snap.bans[k] = v
	}
	for k, v := range m.assignments {
		snap.assignments[k] = v
	}
	for k, v := range m.admins {
		snap.admins[k] = v
	}
	snap.audit = append([]model.AuditLogEntry(nil), m.audit...)
	snap.nextId = m.nextId
	return snap
}

func (m *memDB) Tx(ctx context.Context, fn func(tx db.Database) error) error {
	snap := m.snapshot()
	if err := fn(m); err != nil {
		*m = snap
		return err
	}
	return nil
}

func (m *memDB) GetSQLDB() *sql.DB {
	return nil
}

func (m *memDB) Close() error {
	return nil
}

func (m *memDB) CreateMember(ctx context.Context, member *model.Member) error {
	m.members[member.Id] = *member
	return nil
}

func (m *memDB) GetMemberById(ctx context.Context, id string) (*model.Member, error) {
	if v, ok := m.members[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (m *memDB) CreateCommunity(ctx context.Context, name string) (int64, error) {
	id := m.id()
	m.communities[id] = model.Community{Id: id, Name: name, CreatedAt: time.Now()}
	return id, nil
}

func (m *memDB) GetCommunityById(ctx context.Context, id int64) (*model.Community, error) {
	if v, ok := m.communities[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (m *memDB) GetPostById(ctx context.Context, id int64) (*model.Post, error) {
	if v, ok := m.posts[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (m *memDB) GetCommentById(ctx context.Context, id int64) (*model.Comment, error) {
	if v, ok := m.comments[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (m *memDB) CreateReport(ctx context.Context, req *db.CreateReport) (int64, error) {
	id := m.id()
	now := time.Now()
	m.reports[id] = model.Report{
		Id:         id,
		ReporterId: req.ReporterId,
		PostId:     req.PostId,
		CommentId:  req.CommentId,
		CategoryId: req.CategoryId,
		Reason:     req.Reason,
		Status:     model.ReportStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return id, nil
}

func (m *memDB) GetReportById(ctx context.Context, id int64) (*model.Report, error) {
	if v, ok := m.reports[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (m *memDB) GetReportByIdForUpdate(ctx context.Context, id int64) (*model.Report, error) {
	return m.GetReportById(ctx, id)
}

func (m *memDB) GetReportsByStatus(ctx context.Context, status model.ReportStatus, limit int) ([]*model.Report, error) {
	var reports []*model.Report
	for _, v := range m.reports {
		if v.Status != status {
			continue
		}
		report := v
		reports = append(reports, &report)
		if limit > 0 && len(reports) == limit {
			break
		}
	}
	return reports, nil
}

func (m *memDB) UpdateReportStatus(ctx context.Context, id int64, req *db.UpdateReportStatus) error {
	report, ok := m.reports[id]
	if !ok {
		return fmt.Errorf("report %v not in store", id)
	}
	report.Status = req.Status
	if req.ModerationResult != nil {
		report.ModerationResult = req.ModerationResult
	}
	if req.ClosedById != nil {
		report.ClosedById = req.ClosedById
	}
	report.UpdatedAt = time.Now()
	m.reports[id] = report
	return nil
}

func (m *memDB) DeleteReport(ctx context.Context, id int64) error {
	delete(m.reports, id)
	return nil
}

func (m *memDB) GetReportCategoryById(ctx context.Context, id int64) (*model.ReportCategory, error) {
	if v, ok := m.categories[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (m *memDB) CreateQueueEntry(ctx context.Context, req *db.CreateQueueEntry) (int64, error) {
	id := m.id()
	now := time.Now()
	m.queue[id] = model.ModerationQueueEntry{
		Id:          id,
		CommunityId: req.CommunityId,
		ReportId:    req.ReportId,
		Status:      model.QueueStatusOpen,
		Priority:    req.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return id, nil
}

func (m *memDB) GetQueueEntryById(ctx context.Context, id int64) (*model.ModerationQueueEntry, error) {
	if v, ok := m.queue[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (m *memDB) GetQueueEntryByIdForUpdate(ctx context.Context, id int64) (*model.ModerationQueueEntry, error) {
	return m.GetQueueEntryById(ctx, id)
}

func (m *memDB) GetOpenQueueEntries(ctx context.Context, communityId int64) ([]*model.ModerationQueueEntry, error) {
	var entries []*model.ModerationQueueEntry
	for _, v := range m.queue {
		if v.CommunityId == communityId &&
			(v.Status == model.QueueStatusOpen || v.Status == model.QueueStatusAssigned) {
			entry := v
			entries = append(entries, &entry)
		}
	}
	return entries, nil
}

func (m *memDB) UpdateQueueEntry(ctx context.Context, id int64, req *db.UpdateQueueEntry) error {
	entry, ok := m.queue[id]
	if !ok {
		return fmt.Errorf("queue entry %v not in store", id)
	}
	if req.Status != nil {
		entry.Status = *req.Status
	}
	if req.AssignedModeratorId != nil {
		entry.AssignedModeratorId = req.AssignedModeratorId
	}
	entry.UpdatedAt = time.Now()
	m.queue[id] = entry
	return nil
}

func (m *memDB) DeleteQueueEntry(ctx context.Context, id int64) error {
	delete(m.queue, id)
	return nil
}

func (m *memDB) DeleteQueueEntriesForReport(ctx context.Context, reportId int64) error {
	for id, v := range m.queue {
		if v.ReportId == reportId {
			delete(m.queue, id)
		}
	}
	return nil
}

func (m *memDB) CreateModerationAction(ctx context.Context, req *db.CreateModerationAction) (int64, error) {
	id := m.id()
	m.actions[id] = model.ModerationAction{
		Id:          id,
		ActorId:     req.ActorId,
		PostId:      req.PostId,
		CommentId:   req.CommentId,
		ReportId:    req.ReportId,
		ActionType:  req.ActionType,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}
	return id, nil
}

func (m *memDB) GetModerationActionById(ctx context.Context, id int64) (*model.ModerationAction, error) {
	if v, ok := m.actions[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (m *memDB) UpdateModerationAction(ctx context.Context, id int64, req *db.UpdateModerationAction) error {
	action, ok := m.actions[id]
	if !ok {
		return fmt.Errorf("action %v not in store", id)
	}
	if req.ActionType != nil {
		action.ActionType = *req.ActionType
	}
	if req.Description != nil {
		action.Description = *req.Description
	}
	m.actions[id] = action
	return nil
}

func (m *memDB) DeleteActionsForReport(ctx context.Context, reportId int64) error {
	for id, v := range m.actions {
		if v.ReportId != nil && *v.ReportId == reportId {
			delete(m.actions, id)
		}
	}
	return nil
}

func (m *memDB) CreateEscalation(ctx context.Context, req *db.CreateEscalation) (int64, error) {
	id := m.id()
	now := time.Now()
	m.escalations[id] = model.EscalationLog{
		Id:                 id,
		ReportId:           req.ReportId,
		InitiatorId:        req.InitiatorId,
		DestinationAdminId: req.DestinationAdminId,
		Reason:             req.Reason,
		Status:             model.EscalationStatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	return id, nil
}

func (m *memDB) GetEscalationById(ctx context.Context, id int64) (*model.EscalationLog, error) {
	if v, ok := m.escalations[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (m *memDB) UpdateEscalation(ctx context.Context, id int64, req *db.UpdateEscalation) error {
	escalation, ok := m.escalations[id]
	if !ok {
		return fmt.Errorf("escalation %v not in store", id)
	}
	if req.Status != nil {
		escalation.Status = *req.Status
	}
	if req.DestinationAdminId != nil {
		escalation.DestinationAdminId = req.DestinationAdminId
	}
	if req.ResolutionSummary != nil {
		escalation.ResolutionSummary = req.ResolutionSummary
	}
	escalation.UpdatedAt = time.Now()
	m.escalations[id] = escalation
	return nil
}

func (m *memDB) DeleteEscalationsForReport(ctx context.Context, reportId int64) error {
	for id, v := range m.escalations {
		if v.ReportId == reportId {
			delete(m.escalations, id)
		}
	}
	return nil
}

func (m *memDB) CreateAppeal(ctx context.Context, req *db.CreateAppeal) (int64, error) {
	id := m.id()
	now := time.Now()
	m.appeals[id] = model.Appeal{
		Id:           id,
		EscalationId: req.EscalationId,
		AppellantId:  req.AppellantId,
		AppealType:   req.AppealType,
		Status:       model.AppealStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return id, nil
}

func (m *memDB) GetAppealById(ctx context.Context, id int64) (*model.Appeal, error) {
	if v, ok := m.appeals[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (m *memDB) GetAppealByIdForUpdate(ctx context.Context, id int64) (*model.Appeal, error) {
	return m.GetAppealById(ctx, id)
}

func (m *memDB) ResolveAppeal(ctx context.Context, id int64, req *db.ResolveAppeal) error {
	appeal, ok := m.appeals[id]
	if !ok {
		return fmt.Errorf("appeal %v not in store", id)
	}
	appeal.Status = model.AppealStatusResolved
	appeal.ResolutionType = &req.ResolutionType
	appeal.ResolutionComment = &req.ResolutionComment
	appeal.ReviewingAdminId = &req.ReviewingAdminId
	appeal.UpdatedAt = time.Now()
	m.appeals[id] = appeal
	return nil
}

func (m *memDB) CreateBan(ctx context.Context, req *db.CreateBan) (int64, error) {
	id := m.id()
	m.bans[id] = model.BanHistory{
		Id:             id,
		BannedMemberId: req.BannedMemberId,
		IssuerId:       req.IssuerId,
		CommunityId:    req.CommunityId,
		ReportId:       req.ReportId,
		Reason:         req.Reason,
		BanType:        req.BanType,
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
		IsActive:       true,
		CreatedAt:      time.Now(),
	}
	return id, nil
}

func (m *memDB) GetBanById(ctx context.Context, id int64) (*model.BanHistory, error) {
	if v, ok := m.bans[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (m *memDB) GetBanByIdForUpdate(ctx context.Context, id int64) (*model.BanHistory, error) {
	return m.GetBanById(ctx, id)
}

func banKeyMatches(ban model.BanHistory, memberId string, communityId *int64) bool {
	if ban.BannedMemberId != memberId {
		return false
	}
	if (ban.CommunityId == nil) != (communityId == nil) {
		return false
	}
	return communityId == nil || *ban.CommunityId == *communityId
}

func (m *memDB) GetActiveBan(ctx context.Context, memberId string, communityId *int64) (*model.BanHistory, error) {
	for _, v := range m.bans {
		if v.IsActive && banKeyMatches(v, memberId, communityId) {
			ban := v
			return &ban, nil
		}
	}
	return nil, nil
}

func (m *memDB) GetActiveBanForUpdate(ctx context.Context, memberId string, communityId *int64) (*model.BanHistory, error) {
	return m.GetActiveBan(ctx, memberId, communityId)
}

func (m *memDB) GetBansForMember(ctx context.Context, memberId string) ([]*model.BanHistory, error) {
	var bans []*model.BanHistory
	for _, v := range m.bans {
		if v.BannedMemberId == memberId {
			ban := v
			bans = append(bans, &ban)
		}
	}
	return bans, nil
}

func (m *memDB) UpdateBan(ctx context.Context, id int64, req *db.UpdateBan) error {
	ban, ok := m.bans[id]
	if !ok {
		return fmt.Errorf("ban %v not in store", id)
	}
	if req.IsActive != nil {
		ban.IsActive = *req.IsActive
	}
	if req.EndAt != nil {
		ban.EndAt = req.EndAt
	}
	if req.Reason != nil {
		ban.Reason = *req.Reason
	}
	m.bans[id] = ban
	return nil
}

func (m *memDB) CreateModeratorAssignment(ctx context.Context, req *db.CreateModeratorAssignment) (int64, error) {
	id := m.id()
	m.assignments[id] = model.ModeratorAssignment{
		Id:          id,
		CommunityId: req.CommunityId,
		MemberId:    req.MemberId,
		Role:        req.Role,
		AssignerId:  req.AssignerId,
		StartAt:     req.StartAt,
	}
	return id, nil
}

func (m *memDB) GetModeratorAssignmentById(ctx context.Context, id int64) (*model.ModeratorAssignment, error) {
	if v, ok := m.assignments[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (m *memDB) GetModeratorAssignmentByIdForUpdate(ctx context.Context, id int64) (*model.ModeratorAssignment, error) {
	return m.GetModeratorAssignmentById(ctx, id)
}

func (m *memDB) GetActiveAssignment(ctx context.Context, communityId int64, memberId string) (*model.ModeratorAssignment, error) {
	for _, v := range m.assignments {
		if v.CommunityId == communityId && v.MemberId == memberId && v.EndAt == nil {
			assignment := v
			return &assignment, nil
		}
	}
	return nil, nil
}

func (m *memDB) HasActiveAssignment(ctx context.Context, memberId string) (bool, error) {
	for _, v := range m.assignments {
		if v.MemberId == memberId && v.EndAt == nil {
			return true, nil
		}
	}
	return false, nil
}

func (m *memDB) CountOtherActiveOwners(ctx context.Context, communityId int64, excludeAssignmentId int64) (int, error) {
	count := 0
	for _, v := range m.assignments {
		if v.CommunityId == communityId && v.Role == model.ModeratorRoleOwner &&
			v.EndAt == nil && v.Id != excludeAssignmentId {
			count++
		}
	}
	return count, nil
}

func (m *memDB) UpdateModeratorAssignment(ctx context.Context, id int64, req *db.UpdateModeratorAssignment) error {
	assignment, ok := m.assignments[id]
	if !ok {
		return fmt.Errorf("assignment %v not in store", id)
	}
	if req.Role != nil {
		assignment.Role = *req.Role
	}
	if req.EndAt != nil {
		assignment.EndAt = req.EndAt
	}
	m.assignments[id] = assignment
	return nil
}

func (m *memDB) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	m.admins[admin.MemberId] = *admin
	return nil
}

func (m *memDB) GetAdminById(ctx context.Context, memberId string) (*model.Admin, error) {
	if v, ok := m.admins[memberId]; ok {
		return &v, nil
	}
	return nil, nil
}

func (m *memDB) GetAdminByIdForUpdate(ctx context.Context, memberId string) (*model.Admin, error) {
	return m.GetAdminById(ctx, memberId)
}

func (m *memDB) CountOtherActiveSuperusers(ctx context.Context, excludeMemberId string) (int, error) {
	count := 0
	for _, v := range m.admins {
		if v.SuperUser && v.IsActive() && v.MemberId != excludeMemberId {
			count++
		}
	}
	return count, nil
}

func (m *memDB) UpdateAdmin(ctx context.Context, memberId string, req *db.UpdateAdmin) error {
	admin, ok := m.admins[memberId]
	if !ok {
		return fmt.Errorf("admin %v not in store", memberId)
	}
	if req.SuperUser != nil {
		admin.SuperUser = *req.SuperUser
	}
	if req.Status != nil {
		admin.Status = *req.Status
	}
	m.admins[memberId] = admin
	return nil
}

func (m *memDB) CreateAuditLogEntry(ctx context.Context, req *db.CreateAuditLogEntry) (int64, error) {
	id := m.id()
	details := ""
	if req.Details != nil {
		raw, err := json.Marshal(req.Details)
		if err != nil {
			return 0, err
		}
		details = string(raw)
	}
	m.audit = append(m.audit, model.AuditLogEntry{
		Id:          id,
		ActorType:   req.ActorType,
		ActorId:     req.ActorId,
		ActionType:  req.ActionType,
		TargetTable: req.TargetTable,
		TargetId:    req.TargetId,
		Details:     details,
		CreatedAt:   time.Now(),
	})
	return id, nil
}

func (m *memDB) GetAuditLogEntries(ctx context.Context, targetTable string, targetId string) ([]*model.AuditLogEntry, error) {
	var entries []*model.AuditLogEntry
	for i := range m.audit {
		if m.audit[i].TargetTable == targetTable && m.audit[i].TargetId == targetId {
			entries = append(entries, &m.audit[i])
		}
	}
	return entries, nil
}

// auditKey renders a numeric row id the way appendAudit keys its entries.
func auditKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Seed helpers shared by the controller tests.

func (m *memDB) seedMember(id string) {
	m.members[id] = model.Member{Id: id, DisplayName: id, Status: model.MemberStatusActive, CreatedAt: time.Now()}
}

func (m *memDB) seedCommunity(name string) int64 {
	id, _ := m.CreateCommunity(context.Background(), name)
	return id
}

func (m *memDB) seedPost(creatorId string) int64 {
	id := m.id()
	m.posts[id] = model.Post{Id: id, CreatorId: creatorId, Status: model.ContentStatusPosted, CreatedAt: time.Now()}
	return id
}

func (m *memDB) seedCategory(name string) int64 {
	id := m.id()
	m.categories[id] = model.ReportCategory{Id: id, Name: name}
	return id
}

func (m *memDB) seedAssignment(communityId int64, memberId string, role model.ModeratorRole) int64 {
	id, _ := m.CreateModeratorAssignment(context.Background(), &db.CreateModeratorAssignment{
		CommunityId: communityId,
		MemberId:    memberId,
		Role:        role,
		AssignerId:  "seed",
		StartAt:     time.Now(),
	})
	return id
}

func (m *memDB) seedAdmin(memberId string, superUser bool) {
	m.admins[memberId] = model.Admin{
		MemberId:  memberId,
		SuperUser: superUser,
		Status:    model.AdminStatusActive,
		CreatedAt: time.Now(),
	}
}

func (m *memDB) seedReport(reporterId string, postId, categoryId int64, status model.ReportStatus) int64 {
	id, _ := m.CreateReport(context.Background(), &db.CreateReport{
		ReporterId: reporterId,
		PostId:     &postId,
		CategoryId: categoryId,
		Reason:     "seeded",
	})
	report := m.reports[id]
	report.Status = status
	m.reports[id] = report
	return id
}

func (m *memDB) seedEscalation(reportId int64, initiatorId string) int64 {
	id, _ := m.CreateEscalation(context.Background(), &db.CreateEscalation{
		ReportId:    reportId,
		InitiatorId: initiatorId,
		Reason:      "seeded",
	})
	return id
}
