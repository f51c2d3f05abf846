package controllers

import (
	"github.com/navbryce/next-dorm-trust/apperror"
	"github.com/navbryce/next-dorm-trust/model"
)

// Action names a capability a principal needs before a controller touches
// the store. Every operation runs Decide with its action instead of
// re-implementing role checks inline.
type Action string

const (
	ActionReportCreate     Action = "report.create"
	ActionReportRead       Action = "report.read"
	ActionReportUpdate     Action = "report.update"
	ActionReportDelete     Action = "report.delete"
	ActionQueueManage      Action = "queue.manage"
	ActionEscalationOpen   Action = "escalation.open"
	ActionEscalationUpdate Action = "escalation.update"
	ActionAppealCreate     Action = "appeal.create"
	ActionAppealResolve    Action = "appeal.resolve"
	ActionBanIssue         Action = "ban.issue"
	ActionBanUpdate        Action = "ban.update"
	ActionActionRecord     Action = "action.record"
	ActionActionCorrect    Action = "action.correct"
	ActionModeratorManage  Action = "moderator.manage"
	ActionAdminManage      Action = "admin.manage"
	ActionAuditRead        Action = "audit.read"
)

var memberActions = []Action{
	ActionReportCreate,
	ActionAppealCreate,
}

var moderatorActions = append([]Action{
	ActionReportRead,
	ActionReportUpdate,
	ActionQueueManage,
	ActionEscalationOpen,
	ActionEscalationUpdate,
	ActionBanIssue,
	ActionBanUpdate,
	ActionActionRecord,
}, memberActions...)

var adminActions = append([]Action{
	ActionReportDelete,
	ActionAppealResolve,
	ActionActionCorrect,
	ActionModeratorManage,
	ActionAdminManage,
	ActionAuditRead,
}, moderatorActions...)

var permissionsByRole = map[model.Role]map[Action]bool{
	model.RoleMember:    buildActionSet(memberActions),
	model.RoleModerator: buildActionSet(moderatorActions),
	model.RoleAdmin:     buildActionSet(adminActions),
}

func buildActionSet(actions []Action) map[Action]bool {
	set := make(map[Action]bool, len(actions))
	for _, action := range actions {
		set[action] = true
	}
	return set
}

// Decide is the single capability check for the moderation core. Controllers
// still re-validate role-specific conditions (active assignment, active
// admin row) inside their transactions.
func Decide(actor *model.Principal, action Action) error {
	if actor == nil {
		return apperror.Forbidden("no authenticated principal")
	}
	if !permissionsByRole[actor.Role][action] {
		return apperror.Forbidden("role %v may not perform %v", actor.Role, action)
	}
	return nil
}
