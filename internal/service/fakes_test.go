package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/workforce-service/internal/authz"
	"github.com/spec-kit/workforce-service/internal/domain"
)

// In-memory repository fakes backing the service tests. They mirror the
// Postgres implementations' contract: pgx.ErrNoRows for unknown ids, ids
// assigned on create.

type memStore struct {
	seq int
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

type memAccountRepo struct {
	memStore
	accounts map[string]*domain.Account
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{accounts: make(map[string]*domain.Account)}
}

func (r *memAccountRepo) Create(_ context.Context, account *domain.Account) error {
	account.ID = r.nextID("acc")
	account.CreatedAt = time.Now().UTC()
	account.UpdatedAt = account.CreatedAt
	cp := *account
	r.accounts[account.ID] = &cp
	return nil
}

func (r *memAccountRepo) Update(_ context.Context, account *domain.Account) error {
	if _, ok := r.accounts[account.ID]; !ok {
		return pgx.ErrNoRows
	}
	account.UpdatedAt = time.Now().UTC()
	cp := *account
	r.accounts[account.ID] = &cp
	return nil
}

func (r *memAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *account
	return &cp, nil
}

func (r *memAccountRepo) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memAccountRepo) List(_ context.Context) ([]domain.Account, error) {
	out := make([]domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, *a)
	}
	return out, nil
}

func (r *memAccountRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.Account, error) {
	out := make([]domain.Account, 0)
	for _, a := range r.accounts {
		if a.Role == role {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memAccountRepo) ListByManager(_ context.Context, managerID string) ([]domain.Account, error) {
	out := make([]domain.Account, 0)
	for _, a := range r.accounts {
		if a.ReportingManagerID != nil && *a.ReportingManagerID == managerID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memAccountRepo) Delete(_ context.Context, id string) error {
	delete(r.accounts, id)
	return nil
}

type memDepartmentRepo struct {
	memStore
	departments map[string]*domain.Department
}

func newMemDepartmentRepo() *memDepartmentRepo {
	return &memDepartmentRepo{departments: make(map[string]*domain.Department)}
}

func (r *memDepartmentRepo) Create(_ context.Context, dept *domain.Department) error {
	dept.ID = r.nextID("dep")
	cp := *dept
	r.departments[dept.ID] = &cp
	return nil
}

func (r *memDepartmentRepo) Update(_ context.Context, dept *domain.Department) error {
	if _, ok := r.departments[dept.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *dept
	r.departments[dept.ID] = &cp
	return nil
}

func (r *memDepartmentRepo) GetByID(_ context.Context, id string) (*domain.Department, error) {
	dept, ok := r.departments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *dept
	return &cp, nil
}

func (r *memDepartmentRepo) GetByName(_ context.Context, name string) (*domain.Department, error) {
	for _, d := range r.departments {
		if d.Name == name {
			cp := *d
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memDepartmentRepo) List(_ context.Context) ([]domain.Department, error) {
	out := make([]domain.Department, 0, len(r.departments))
	for _, d := range r.departments {
		out = append(out, *d)
	}
	return out, nil
}

func (r *memDepartmentRepo) Delete(_ context.Context, id string) error {
	delete(r.departments, id)
	return nil
}

type memProjectRepo struct {
	memStore
	projects map[string]*domain.Project
}

func newMemProjectRepo() *memProjectRepo {
	return &memProjectRepo{projects: make(map[string]*domain.Project)}
}

func (r *memProjectRepo) Create(_ context.Context, project *domain.Project) error {
	project.ID = r.nextID("prj")
	cp := *project
	r.projects[project.ID] = &cp
	return nil
}

func (r *memProjectRepo) Update(_ context.Context, project *domain.Project) error {
	if _, ok := r.projects[project.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *project
	r.projects[project.ID] = &cp
	return nil
}

func (r *memProjectRepo) GetByID(_ context.Context, id string) (*domain.Project, error) {
	project, ok := r.projects[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *project
	return &cp, nil
}

func (r *memProjectRepo) List(_ context.Context) ([]domain.Project, error) {
	out := make([]domain.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (r *memProjectRepo) ListByManager(_ context.Context, managerID string) ([]domain.Project, error) {
	out := make([]domain.Project, 0)
	for _, p := range r.projects {
		if p.ManagerID != nil && *p.ManagerID == managerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProjectRepo) ListByIDs(_ context.Context, ids []string) ([]domain.Project, error) {
	out := make([]domain.Project, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.projects[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProjectRepo) Delete(_ context.Context, id string) error {
	delete(r.projects, id)
	return nil
}

type memTaskRepo struct {
	memStore
	tasks map[string]*domain.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *memTaskRepo) Create(_ context.Context, task *domain.Task) error {
	task.ID = r.nextID("tsk")
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *memTaskRepo) Update(_ context.Context, task *domain.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *memTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *task
	return &cp, nil
}

func (r *memTaskRepo) List(_ context.Context) ([]domain.Task, error) {
	out := make([]domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, *t)
	}
	return out, nil
}

func (r *memTaskRepo) ListByProject(_ context.Context, projectID string) ([]domain.Task, error) {
	out := make([]domain.Task, 0)
	for _, t := range r.tasks {
		if t.ProjectID == projectID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memTaskRepo) ListByAssignee(_ context.Context, accountID string) ([]domain.Task, error) {
	out := make([]domain.Task, 0)
	for _, t := range r.tasks {
		if t.AssignedToID != nil && *t.AssignedToID == accountID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memTaskRepo) HasAssignedTask(_ context.Context, projectID, accountID string) (bool, error) {
	for _, t := range r.tasks {
		if t.ProjectID == projectID && t.AssignedToID != nil && *t.AssignedToID == accountID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memTaskRepo) AssignedProjectIDs(_ context.Context, accountID string) ([]string, error) {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, t := range r.tasks {
		if t.AssignedToID != nil && *t.AssignedToID == accountID && !seen[t.ProjectID] {
			seen[t.ProjectID] = true
			out = append(out, t.ProjectID)
		}
	}
	return out, nil
}

func (r *memTaskRepo) Delete(_ context.Context, id string) error {
	delete(r.tasks, id)
	return nil
}

type memKpiRepo struct {
	memStore
	kpis map[string]*domain.Kpi
}

func newMemKpiRepo() *memKpiRepo {
	return &memKpiRepo{kpis: make(map[string]*domain.Kpi)}
}

func (r *memKpiRepo) Create(_ context.Context, kpi *domain.Kpi) error {
	kpi.ID = r.nextID("kpi")
	cp := *kpi
	r.kpis[kpi.ID] = &cp
	return nil
}

func (r *memKpiRepo) Update(_ context.Context, kpi *domain.Kpi) error {
	if _, ok := r.kpis[kpi.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *kpi
	r.kpis[kpi.ID] = &cp
	return nil
}

func (r *memKpiRepo) GetByID(_ context.Context, id string) (*domain.Kpi, error) {
	kpi, ok := r.kpis[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *kpi
	return &cp, nil
}

func (r *memKpiRepo) List(_ context.Context) ([]domain.Kpi, error) {
	out := make([]domain.Kpi, 0, len(r.kpis))
	for _, k := range r.kpis {
		out = append(out, *k)
	}
	return out, nil
}

func (r *memKpiRepo) ListByEmployee(_ context.Context, employeeID string) ([]domain.Kpi, error) {
	out := make([]domain.Kpi, 0)
	for _, k := range r.kpis {
		if k.EmployeeID == employeeID {
			out = append(out, *k)
		}
	}
	return out, nil
}

func (r *memKpiRepo) Delete(_ context.Context, id string) error {
	delete(r.kpis, id)
	return nil
}

type memLeaveRepo struct {
	memStore
	requests map[string]*domain.LeaveRequest
	accounts *memAccountRepo
}

func newMemLeaveRepo(accounts *memAccountRepo) *memLeaveRepo {
	return &memLeaveRepo{requests: make(map[string]*domain.LeaveRequest), accounts: accounts}
}

func (r *memLeaveRepo) Create(_ context.Context, lr *domain.LeaveRequest) error {
	lr.ID = r.nextID("lvr")
	cp := *lr
	r.requests[lr.ID] = &cp
	return nil
}

func (r *memLeaveRepo) Update(_ context.Context, lr *domain.LeaveRequest) error {
	if _, ok := r.requests[lr.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *lr
	r.requests[lr.ID] = &cp
	return nil
}

func (r *memLeaveRepo) GetByID(_ context.Context, id string) (*domain.LeaveRequest, error) {
	lr, ok := r.requests[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *lr
	return &cp, nil
}

func (r *memLeaveRepo) List(_ context.Context) ([]domain.LeaveRequest, error) {
	out := make([]domain.LeaveRequest, 0, len(r.requests))
	for _, lr := range r.requests {
		out = append(out, *lr)
	}
	return out, nil
}

func (r *memLeaveRepo) ListByAccount(_ context.Context, accountID string) ([]domain.LeaveRequest, error) {
	out := make([]domain.LeaveRequest, 0)
	for _, lr := range r.requests {
		if lr.AccountID == accountID {
			out = append(out, *lr)
		}
	}
	return out, nil
}

func (r *memLeaveRepo) ListByReportingManager(ctx context.Context, managerID string) ([]domain.LeaveRequest, error) {
	out := make([]domain.LeaveRequest, 0)
	for _, lr := range r.requests {
		account, err := r.accounts.GetByID(ctx, lr.AccountID)
		if err != nil {
			continue
		}
		if account.ReportingManagerID != nil && *account.ReportingManagerID == managerID {
			out = append(out, *lr)
		}
	}
	return out, nil
}

type memReviewRepo struct {
	memStore
	reviews map[string]*domain.PerformanceReview
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{reviews: make(map[string]*domain.PerformanceReview)}
}

func (r *memReviewRepo) Create(_ context.Context, review *domain.PerformanceReview) error {
	review.ID = r.nextID("rev")
	cp := *review
	r.reviews[review.ID] = &cp
	return nil
}

func (r *memReviewRepo) Update(_ context.Context, review *domain.PerformanceReview) error {
	if _, ok := r.reviews[review.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *review
	r.reviews[review.ID] = &cp
	return nil
}

func (r *memReviewRepo) GetByID(_ context.Context, id string) (*domain.PerformanceReview, error) {
	review, ok := r.reviews[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *review
	return &cp, nil
}

func (r *memReviewRepo) List(_ context.Context) ([]domain.PerformanceReview, error) {
	out := make([]domain.PerformanceReview, 0, len(r.reviews))
	for _, review := range r.reviews {
		out = append(out, *review)
	}
	return out, nil
}

func (r *memReviewRepo) ListByEmployee(_ context.Context, employeeID string) ([]domain.PerformanceReview, error) {
	out := make([]domain.PerformanceReview, 0)
	for _, review := range r.reviews {
		if review.EmployeeID == employeeID {
			out = append(out, *review)
		}
	}
	return out, nil
}

func (r *memReviewRepo) Delete(_ context.Context, id string) error {
	delete(r.reviews, id)
	return nil
}

type memAuditRepo struct {
	memStore
	logs []domain.AuditLog
}

func newMemAuditRepo() *memAuditRepo {
	return &memAuditRepo{}
}

func (r *memAuditRepo) Insert(_ context.Context, log *domain.AuditLog) error {
	log.ID = r.nextID("aud")
	r.logs = append(r.logs, *log)
	return nil
}

func (r *memAuditRepo) List(_ context.Context) ([]domain.AuditLog, error) {
	out := make([]domain.AuditLog, len(r.logs))
	copy(out, r.logs)
	return out, nil
}

func (r *memAuditRepo) ListByAccount(_ context.Context, accountID string) ([]domain.AuditLog, error) {
	out := make([]domain.AuditLog, 0)
	for _, l := range r.logs {
		if l.AccountID != nil && *l.AccountID == accountID {
			out = append(out, l)
		}
	}
	return out, nil
}

// env bundles a fully wired in-memory service stack rooted at one gate.
type env struct {
	accounts    *memAccountRepo
	departments *memDepartmentRepo
	projects    *memProjectRepo
	tasks       *memTaskRepo
	kpis        *memKpiRepo
	leaves      *memLeaveRepo
	reviews     *memReviewRepo
	audits      *memAuditRepo
	gate        *authz.Gate
}

func newEnv() *env {
	accounts := newMemAccountRepo()
	departments := newMemDepartmentRepo()
	projects := newMemProjectRepo()
	tasks := newMemTaskRepo()
	kpis := newMemKpiRepo()
	leaves := newMemLeaveRepo(accounts)
	reviews := newMemReviewRepo()
	audits := newMemAuditRepo()

	scope := authz.NewScopePolicy(tasks)
	refs := NewRecordSource(RecordSourceDependencies{
		AccountRepo:    accounts,
		DepartmentRepo: departments,
		ProjectRepo:    projects,
		TaskRepo:       tasks,
		KpiRepo:        kpis,
		LeaveRepo:      leaves,
		ReviewRepo:     reviews,
	})
	return &env{
		accounts:    accounts,
		departments: departments,
		projects:    projects,
		tasks:       tasks,
		kpis:        kpis,
		leaves:      leaves,
		reviews:     reviews,
		audits:      audits,
		gate:        authz.NewGate(scope, refs),
	}
}

func (e *env) addAccount(username string, role domain.Role, managerID *string) *domain.Account {
	account := &domain.Account{
		Username:           username,
		Email:              username + "@example.com",
		PasswordHash:       "x",
		Role:               role,
		ReportingManagerID: managerID,
		Active:             true,
	}
	_ = e.accounts.Create(context.Background(), account)
	return account
}

func asPrincipal(a *domain.Account) *authz.Principal {
	return &authz.Principal{ID: a.ID, Role: a.Role, Active: a.Active}
}
