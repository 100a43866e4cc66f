package domain

import "time"

// LeaveStatus enumerates leave request states. APPROVED and REJECTED are
// terminal.
type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "PENDING"
	LeaveStatusApproved LeaveStatus = "APPROVED"
	LeaveStatusRejected LeaveStatus = "REJECTED"
)

// Terminal reports whether no further transition is defined from s.
func (s LeaveStatus) Terminal() bool {
	return s == LeaveStatusApproved || s == LeaveStatusRejected
}

// LeaveType enumerates request categories.
type LeaveType string

const (
	LeaveTypeLeave         LeaveType = "LEAVE"
	LeaveTypeWFH           LeaveType = "WFH"
	LeaveTypeReimbursement LeaveType = "REIMBURSEMENT"
	LeaveTypeHRRequest     LeaveType = "HR_REQUEST"
)

// LeaveRequest is an employee request awaiting managerial review.
type LeaveRequest struct {
	ID            string
	AccountID     string
	RequestType   LeaveType
	Description   string
	StartDate     *time.Time
	EndDate       *time.Time
	Status        LeaveStatus
	ReviewedByID  *string
	ReviewComment string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
