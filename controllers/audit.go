package controllers

import (
	"context"

	"github.com/navbryce/next-dorm-trust/db"
	"github.com/navbryce/next-dorm-trust/model"
)

// AuditController exposes the read side of the audit trail. Writes happen
// via appendAudit inside the mutating transactions of the other controllers.
type AuditController struct {
	db db.Database
}

func NewAuditController(database db.Database) *AuditController {
	return &AuditController{db: database}
}

func (ac *AuditController) List(ctx context.Context, actor *model.Principal, targetTable string, targetId string) ([]*model.AuditLogEntry, error) {
	if err := Decide(actor, ActionAuditRead); err != nil {
		return nil, err
	}
	return ac.db.GetAuditLogEntries(ctx, targetTable, targetId)
}
