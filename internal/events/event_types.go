package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountCreated     EventType = "account_created"
	EventAccountUpdated     EventType = "account_updated"
	EventAccountDeleted     EventType = "account_deleted"
	EventDepartmentChanged  EventType = "department_changed"
	EventProjectChanged     EventType = "project_changed"
	EventTaskChanged        EventType = "task_changed"
	EventKpiChanged         EventType = "kpi_changed"
	EventLeaveSubmitted     EventType = "leave_submitted"
	EventLeaveReviewed      EventType = "leave_reviewed"
	EventReviewChanged      EventType = "review_changed"
	EventPasswordChanged    EventType = "password_changed"
	EventLoginSucceeded     EventType = "login_succeeded"
	EventLogoutRecorded     EventType = "logout_recorded"
)

// Types lists every event the audit recorder subscribes to.
func Types() []EventType {
	return []EventType{
		EventAccountCreated,
		EventAccountUpdated,
		EventAccountDeleted,
		EventDepartmentChanged,
		EventProjectChanged,
		EventTaskChanged,
		EventKpiChanged,
		EventLeaveSubmitted,
		EventLeaveReviewed,
		EventReviewChanged,
		EventPasswordChanged,
		EventLoginSucceeded,
		EventLogoutRecorded,
	}
}

// Event represents a domain action emitted by services after a successful
// mutation. ActorID is nil for unattributed actions.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	ActorID    *string   `json:"actor_id,omitempty"`
	Action     string    `json:"action"`
	EntityName string    `json:"entity_name"`
	EntityID   string    `json:"entity_id"`
	Details    string    `json:"details,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
