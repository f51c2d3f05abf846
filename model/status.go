package model

// The status machines for every moderated entity live here so the legal
// transitions are validated in one place instead of per handler.

type ReportStatus string

const (
	ReportStatusPending     ReportStatus = "PENDING"
	ReportStatusUnderReview ReportStatus = "UNDER_REVIEW"
	ReportStatusEscalated   ReportStatus = "ESCALATED"
	ReportStatusResolved    ReportStatus = "RESOLVED"
	ReportStatusDismissed   ReportStatus = "DISMISSED"
	ReportStatusError       ReportStatus = "ERROR"
	ReportStatusInvalid     ReportStatus = "INVALID"
	ReportStatusErroneous   ReportStatus = "ERRONEOUS"
)

// reportTransitions is forward-only: RESOLVED and DISMISSED have no exits.
var reportTransitions = map[ReportStatus][]ReportStatus{
	ReportStatusPending: {ReportStatusUnderReview, ReportStatusEscalated, ReportStatusResolved,
		ReportStatusDismissed, ReportStatusError, ReportStatusInvalid, ReportStatusErroneous},
	ReportStatusUnderReview: {ReportStatusEscalated, ReportStatusResolved, ReportStatusDismissed,
		ReportStatusError, ReportStatusInvalid, ReportStatusErroneous},
	ReportStatusEscalated: {ReportStatusUnderReview, ReportStatusResolved, ReportStatusDismissed,
		ReportStatusError, ReportStatusInvalid, ReportStatusErroneous},
	ReportStatusError:     {ReportStatusResolved, ReportStatusDismissed, ReportStatusInvalid, ReportStatusErroneous},
	ReportStatusInvalid:   {ReportStatusResolved, ReportStatusDismissed, ReportStatusError, ReportStatusErroneous},
	ReportStatusErroneous: {ReportStatusResolved, ReportStatusDismissed, ReportStatusError, ReportStatusInvalid},
	ReportStatusResolved:  {},
	ReportStatusDismissed: {},
}

func (s ReportStatus) IsValid() bool {
	_, ok := reportTransitions[s]
	return ok
}

func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	for _, allowed := range reportTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsDeletable reports whether a report in this status may be hard-deleted
// together with its queue entries, actions, and escalations.
func (s ReportStatus) IsDeletable() bool {
	switch s {
	case ReportStatusResolved, ReportStatusDismissed, ReportStatusError,
		ReportStatusInvalid, ReportStatusErroneous:
		return true
	}
	return false
}

type QueueStatus string

const (
	QueueStatusOpen     QueueStatus = "OPEN"
	QueueStatusAssigned QueueStatus = "ASSIGNED"
	QueueStatusResolved QueueStatus = "RESOLVED"
	QueueStatusClosed   QueueStatus = "CLOSED"
)

// RESOLVED is final for queue entries. CLOSED entries may be reopened.
var queueTransitions = map[QueueStatus][]QueueStatus{
	QueueStatusOpen:     {QueueStatusAssigned, QueueStatusResolved, QueueStatusClosed},
	QueueStatusAssigned: {QueueStatusOpen, QueueStatusResolved, QueueStatusClosed},
	QueueStatusClosed:   {QueueStatusOpen},
	QueueStatusResolved: {},
}

func (s QueueStatus) IsValid() bool {
	_, ok := queueTransitions[s]
	return ok
}

func (s QueueStatus) CanTransitionTo(next QueueStatus) bool {
	for _, allowed := range queueTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsDeletable reports whether the entry may be removed from the queue.
func (s QueueStatus) IsDeletable() bool {
	return s == QueueStatusResolved || s == QueueStatusClosed
}

type EscalationStatus string

// Escalations carry no terminal lock: an admin may push a resolved
// escalation back into review, so every status stays writable.
const (
	EscalationStatusPending   EscalationStatus = "PENDING"
	EscalationStatusInReview  EscalationStatus = "IN_REVIEW"
	EscalationStatusEscalated EscalationStatus = "ESCALATED"
	EscalationStatusResolved  EscalationStatus = "RESOLVED"
)

func (s EscalationStatus) IsValid() bool {
	switch s {
	case EscalationStatusPending, EscalationStatusInReview,
		EscalationStatusEscalated, EscalationStatusResolved:
		return true
	}
	return false
}

type AppealStatus string

const (
	AppealStatusPending     AppealStatus = "PENDING"
	AppealStatusUnderReview AppealStatus = "UNDER_REVIEW"
	AppealStatusResolved    AppealStatus = "RESOLVED"
)

func (s AppealStatus) IsValid() bool {
	switch s {
	case AppealStatusPending, AppealStatusUnderReview, AppealStatusResolved:
		return true
	}
	return false
}
