package dto

import (
	"time"

	"github.com/spec-kit/workforce-service/internal/domain"
)

// CreateAccountRequest payload.
type CreateAccountRequest struct {
	Username              string     `json:"username"`
	Email                 string     `json:"email"`
	Password              string     `json:"password"`
	Role                  string     `json:"role"`
	FirstName             string     `json:"first_name"`
	LastName              string     `json:"last_name"`
	PhoneNumber           string     `json:"phone_number"`
	Address               string     `json:"address"`
	DateOfBirth           *time.Time `json:"date_of_birth"`
	HireDate              *time.Time `json:"hire_date"`
	Designation           string     `json:"designation"`
	DepartmentID          *string    `json:"department_id"`
	ReportingManagerID    *string    `json:"reporting_manager_id"`
	EmergencyContactName  string     `json:"emergency_contact_name"`
	EmergencyContactPhone string     `json:"emergency_contact_phone"`
}

// UpdateAccountRequest carries a partial update; absent fields leave the
// stored values untouched.
type UpdateAccountRequest struct {
	Email                 *string    `json:"email"`
	FirstName             *string    `json:"first_name"`
	LastName              *string    `json:"last_name"`
	PhoneNumber           *string    `json:"phone_number"`
	Address               *string    `json:"address"`
	DateOfBirth           *time.Time `json:"date_of_birth"`
	HireDate              *time.Time `json:"hire_date"`
	Designation           *string    `json:"designation"`
	DepartmentID          *string    `json:"department_id"`
	ReportingManagerID    *string    `json:"reporting_manager_id"`
	EmergencyContactName  *string    `json:"emergency_contact_name"`
	EmergencyContactPhone *string    `json:"emergency_contact_phone"`
	Role                  *string    `json:"role"`
	Active                *bool      `json:"active"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateAccountRequest) ToPatch() domain.AccountPatch {
	patch := domain.AccountPatch{
		Email:                 r.Email,
		FirstName:             r.FirstName,
		LastName:              r.LastName,
		PhoneNumber:           r.PhoneNumber,
		Address:               r.Address,
		DateOfBirth:           r.DateOfBirth,
		HireDate:              r.HireDate,
		Designation:           r.Designation,
		DepartmentID:          r.DepartmentID,
		ReportingManagerID:    r.ReportingManagerID,
		EmergencyContactName:  r.EmergencyContactName,
		EmergencyContactPhone: r.EmergencyContactPhone,
		Active:                r.Active,
	}
	if r.Role != nil {
		role := domain.Role(*r.Role)
		patch.Role = &role
	}
	return patch
}

// AccountResponse is the account representation returned to clients. The
// password hash never leaves the service.
type AccountResponse struct {
	ID                    string     `json:"id"`
	Username              string     `json:"username"`
	Email                 string     `json:"email"`
	Role                  string     `json:"role"`
	FirstName             string     `json:"first_name"`
	LastName              string     `json:"last_name"`
	PhoneNumber           string     `json:"phone_number"`
	Address               string     `json:"address"`
	DateOfBirth           *time.Time `json:"date_of_birth"`
	HireDate              *time.Time `json:"hire_date"`
	Designation           string     `json:"designation"`
	DepartmentID          *string    `json:"department_id"`
	ReportingManagerID    *string    `json:"reporting_manager_id"`
	EmergencyContactName  string     `json:"emergency_contact_name"`
	EmergencyContactPhone string     `json:"emergency_contact_phone"`
	Active                bool       `json:"active"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// NewAccountResponse maps a domain account.
func NewAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:                    a.ID,
		Username:              a.Username,
		Email:                 a.Email,
		Role:                  string(a.Role),
		FirstName:             a.FirstName,
		LastName:              a.LastName,
		PhoneNumber:           a.PhoneNumber,
		Address:               a.Address,
		DateOfBirth:           a.DateOfBirth,
		HireDate:              a.HireDate,
		Designation:           a.Designation,
		DepartmentID:          a.DepartmentID,
		ReportingManagerID:    a.ReportingManagerID,
		EmergencyContactName:  a.EmergencyContactName,
		EmergencyContactPhone: a.EmergencyContactPhone,
		Active:                a.Active,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
	}
}

// NewAccountResponses maps a slice of domain accounts.
func NewAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, NewAccountResponse(&accounts[i]))
	}
	return out
}
