package domain

import "time"

// AuditLog is one append-only record of a performed action.
type AuditLog struct {
	ID         string
	AccountID  *string
	Action     string
	EntityName string
	EntityID   string
	Details    string
	IPAddress  string
	CreatedAt  time.Time
}
