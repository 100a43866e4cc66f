package domain

import "time"

// Role enumerates the access levels an account can hold.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
	RoleUser     Role = "USER"
)

// Roles lists every defined role, broadest first.
func Roles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleEmployee, RoleUser}
}

// ParseRole validates a role string.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleEmployee, RoleUser:
		return Role(s), true
	}
	return "", false
}

// Account models an organizational member. ReportingManagerID is an
// index-based self reference; the relation must stay acyclic.
type Account struct {
	ID                    string
	Username              string
	Email                 string
	PasswordHash          string
	Role                  Role
	FirstName             string
	LastName              string
	PhoneNumber           string
	Address               string
	DateOfBirth           *time.Time
	HireDate              *time.Time
	Designation           string
	DepartmentID          *string
	ReportingManagerID    *string
	EmergencyContactName  string
	EmergencyContactPhone string
	Active                bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// AccountPatch carries a partial account update; nil fields leave the
// stored value untouched.
type AccountPatch struct {
	Email                 *string
	FirstName             *string
	LastName              *string
	PhoneNumber           *string
	Address               *string
	DateOfBirth           *time.Time
	HireDate              *time.Time
	Designation           *string
	DepartmentID          *string
	ReportingManagerID    *string
	EmergencyContactName  *string
	EmergencyContactPhone *string
	Role                  *Role
	Active                *bool
}

// Apply copies the present fields onto the account.
func (p AccountPatch) Apply(a *Account) {
	if p.Email != nil {
		a.Email = *p.Email
	}
	if p.FirstName != nil {
		a.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		a.LastName = *p.LastName
	}
	if p.PhoneNumber != nil {
		a.PhoneNumber = *p.PhoneNumber
	}
	if p.Address != nil {
		a.Address = *p.Address
	}
	if p.DateOfBirth != nil {
		a.DateOfBirth = p.DateOfBirth
	}
	if p.HireDate != nil {
		a.HireDate = p.HireDate
	}
	if p.Designation != nil {
		a.Designation = *p.Designation
	}
	if p.DepartmentID != nil {
		a.DepartmentID = p.DepartmentID
	}
	if p.ReportingManagerID != nil {
		a.ReportingManagerID = p.ReportingManagerID
	}
	if p.EmergencyContactName != nil {
		a.EmergencyContactName = *p.EmergencyContactName
	}
	if p.EmergencyContactPhone != nil {
		a.EmergencyContactPhone = *p.EmergencyContactPhone
	}
	if p.Role != nil {
		a.Role = *p.Role
	}
	if p.Active != nil {
		a.Active = *p.Active
	}
}

// FullName joins the name parts for display.
func (a *Account) FullName() string {
	return a.FirstName + " " + a.LastName
}
