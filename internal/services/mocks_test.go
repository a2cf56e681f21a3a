package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"nps/internal/models/db_models"
	"nps/internal/repositories"
	"nps/pkg/id"
)

// memEvaluationStore keeps evaluations in memory and applies the same
// conditional writes as the gorm repository.
type memEvaluationStore struct {
	mu        sync.Mutex
	rows      map[int64]db_models.Evaluation
	companies map[int64]*db_models.Company
	users     map[int64]*db_models.User

	// beforeDecision runs inside SaveDecision before the condition is checked.
	beforeDecision func(row *db_models.Evaluation)
	failWith       error
}

func newMemEvaluationStore() *memEvaluationStore {
	return &memEvaluationStore{
		rows:      map[int64]db_models.Evaluation{},
		companies: map[int64]*db_models.Company{},
		users:     map[int64]*db_models.User{},
	}
}

func (m *memEvaluationStore) Create(_ context.Context, e *db_models.Evaluation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if e.ID == 0 {
		e.ID = id.New()
	}
	now := time.Now()
	e.CreatedAt, e.UpdatedAt = now, now
	row := *e
	row.Company, row.Employee = nil, nil
	m.rows[e.ID] = row
	return nil
}

func (m *memEvaluationStore) FindByID(_ context.Context, evaluationID int64) (*db_models.Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	row, ok := m.rows[evaluationID]
	if !ok {
		return nil, nil
	}
	return m.hydrate(row), nil
}

func (m *memEvaluationStore) hydrate(row db_models.Evaluation) *db_models.Evaluation {
	row.Company = m.companies[row.CompanyID]
	if row.EmployeeID != nil {
		row.Employee = m.users[*row.EmployeeID]
	}
	return &row
}

func (m *memEvaluationStore) List(_ context.Context, q repositories.EvaluationQuery) ([]db_models.Evaluation, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, 0, m.failWith
	}

	var matched []db_models.Evaluation
	for _, row := range m.rows {
		if q.ActiveCompaniesOnly {
			if c := m.companies[row.CompanyID]; c == nil || !c.IsActive() {
				continue
			}
		}
		switch q.Status {
		case "pending":
			if row.ResolutionState != db_models.ResolutionPending && row.ApprovalState != db_models.ApprovalPending {
				continue
			}
		case "resolved":
			if row.ResolutionState != db_models.ResolutionResolved {
				continue
			}
		case "approved", "rejected":
			if string(row.ApprovalState) != q.Status {
				continue
			}
		}
		if q.CompanyID != 0 && row.CompanyID != q.CompanyID {
			continue
		}
		if q.EmployeeID != 0 && (row.EmployeeID == nil || *row.EmployeeID != q.EmployeeID) {
			continue
		}
		matched = append(matched, *m.hydrate(row))
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	start := (q.Page - 1) * q.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (m *memEvaluationStore) SaveResolution(_ context.Context, e *db_models.Evaluation, ownerID *int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return false, m.failWith
	}
	row, ok := m.rows[e.ID]
	if !ok {
		return false, nil
	}
	if ownerID != nil && (row.EmployeeID == nil || *row.EmployeeID != *ownerID) {
		return false, nil
	}
	row.ResolutionText = e.ResolutionText
	row.ResolutionState = e.ResolutionState
	row.UpdatedAt = e.UpdatedAt
	m.rows[e.ID] = row
	return true, nil
}

func (m *memEvaluationStore) SaveDecision(_ context.Context, e *db_models.Evaluation) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return false, m.failWith
	}
	row, ok := m.rows[e.ID]
	if !ok {
		return false, nil
	}
	if m.beforeDecision != nil {
		m.beforeDecision(&row)
		m.rows[e.ID] = row
	}
	if row.ResolutionState != db_models.ResolutionResolved || row.ApprovalState != db_models.ApprovalPending {
		return false, nil
	}
	row.ApprovalState = e.ApprovalState
	row.ApprovalComment = e.ApprovalComment
	row.RejectionReason = e.RejectionReason
	row.UpdatedAt = e.UpdatedAt
	m.rows[e.ID] = row
	return true, nil
}

func (m *memEvaluationStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// memCompanyStore backs the company repository with the maps shared with
// memEvaluationStore.
type memCompanyStore struct {
	evaluations *memEvaluationStore
	links       map[int64][]int64 // company id -> user ids
	createFn    func(ctx context.Context, c *db_models.Company) error
}

func newMemCompanyStore(evaluations *memEvaluationStore) *memCompanyStore {
	return &memCompanyStore{evaluations: evaluations, links: map[int64][]int64{}}
}

func (m *memCompanyStore) add(name string, status db_models.CompanyStatus) *db_models.Company {
	c := &db_models.Company{Name: name, Status: status}
	c.ID = id.New()
	m.evaluations.companies[c.ID] = c
	return c
}

func (m *memCompanyStore) Create(ctx context.Context, c *db_models.Company) error {
	if m.createFn != nil {
		return m.createFn(ctx, c)
	}
	c.ID = id.New()
	m.evaluations.companies[c.ID] = c
	return nil
}

func (m *memCompanyStore) FindByID(_ context.Context, companyID int64) (*db_models.Company, error) {
	c, ok := m.evaluations.companies[companyID]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memCompanyStore) FindByNameCI(_ context.Context, name string) (*db_models.Company, error) {
	for _, c := range m.evaluations.companies {
		if equalFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memCompanyStore) List(_ context.Context) ([]db_models.Company, error) {
	var out []db_models.Company
	for _, c := range m.evaluations.companies {
		if c.Status != db_models.CompanyDeleted {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memCompanyStore) ListActiveByUser(_ context.Context, userID int64) ([]db_models.Company, error) {
	var out []db_models.Company
	for companyID, userIDs := range m.links {
		c := m.evaluations.companies[companyID]
		if c == nil || !c.IsActive() {
			continue
		}
		for _, u := range userIDs {
			if u == userID {
				out = append(out, *c)
			}
		}
	}
	return out, nil
}

func (m *memCompanyStore) UpdateStatus(_ context.Context, companyID int64, status db_models.CompanyStatus) (bool, error) {
	c, ok := m.evaluations.companies[companyID]
	if !ok {
		return false, nil
	}
	c.Status = status
	return true, nil
}

func (m *memCompanyStore) Delete(_ context.Context, companyID int64) (bool, error) {
	if _, ok := m.evaluations.companies[companyID]; !ok {
		return false, nil
	}
	delete(m.evaluations.companies, companyID)
	return true, nil
}

func (m *memCompanyStore) CountEvaluations(_ context.Context, companyID int64) (int64, error) {
	var n int64
	for _, row := range m.evaluations.rows {
		if row.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

func (m *memCompanyStore) ListEmployees(_ context.Context, companyID int64) ([]db_models.User, error) {
	var out []db_models.User
	for _, userID := range m.links[companyID] {
		u := m.evaluations.users[userID]
		if u != nil && u.IsOperational() && u.IsActive() {
			out = append(out, *u)
		}
	}
	return out, nil
}

// memAccountStore serves the user lookups from memEvaluationStore's users.
type memAccountStore struct {
	evaluations *memEvaluationStore
	companies   *memCompanyStore
	insertFn    func(ctx context.Context, u *db_models.User, companyIDs []int64) error
}

func (m *memAccountStore) add(name, email string, role db_models.Role, status db_models.UserStatus) *db_models.User {
	u := &db_models.User{Name: name, Email: email, Role: role, Status: status}
	u.ID = id.New()
	m.evaluations.users[u.ID] = u
	return u
}

func (m *memAccountStore) link(userID, companyID int64) {
	m.companies.links[companyID] = append(m.companies.links[companyID], userID)
}

func (m *memAccountStore) InsertTx(ctx context.Context, u *db_models.User, companyIDs []int64) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, u, companyIDs)
	}
	u.ID = id.New()
	u.CreatedAt = time.Now()
	m.evaluations.users[u.ID] = u
	for _, companyID := range companyIDs {
		m.link(u.ID, companyID)
	}
	return nil
}

func (m *memAccountStore) UpdateTx(_ context.Context, u *db_models.User, companyIDs *[]int64) error {
	m.evaluations.users[u.ID] = u
	if companyIDs != nil {
		for companyID, userIDs := range m.companies.links {
			kept := userIDs[:0]
			for _, v := range userIDs {
				if v != u.ID {
					kept = append(kept, v)
				}
			}
			m.companies.links[companyID] = kept
		}
		for _, companyID := range *companyIDs {
			m.link(u.ID, companyID)
		}
	}
	return nil
}

func (m *memAccountStore) FindById(_ context.Context, userID int64) (*db_models.User, error) {
	u, ok := m.evaluations.users[userID]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memAccountStore) FindByEmail(_ context.Context, email string) (*db_models.User, error) {
	for _, u := range m.evaluations.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memAccountStore) List(_ context.Context) ([]db_models.User, error) {
	var out []db_models.User
	for _, u := range m.evaluations.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memAccountStore) UpdateStatus(_ context.Context, userID int64, status db_models.UserStatus) (bool, error) {
	u, ok := m.evaluations.users[userID]
	if !ok {
		return false, nil
	}
	u.Status = status
	return true, nil
}

func (m *memAccountStore) Delete(_ context.Context, userID int64) (bool, error) {
	if _, ok := m.evaluations.users[userID]; !ok {
		return false, nil
	}
	delete(m.evaluations.users, userID)
	return true, nil
}

func (m *memAccountStore) CompanyIDsByUser(_ context.Context, userIDs []int64) (map[int64][]int64, error) {
	out := map[int64][]int64{}
	for companyID, linked := range m.companies.links {
		for _, u := range linked {
			for _, want := range userIDs {
				if u == want {
					out[u] = append(out[u], companyID)
				}
			}
		}
	}
	return out, nil
}

func (m *memAccountStore) FirstOperationalLinkedTo(_ context.Context, companyID int64) (*db_models.User, error) {
	var best *db_models.User
	for _, userID := range m.companies.links[companyID] {
		u := m.evaluations.users[userID]
		if u == nil || !u.IsOperational() {
			continue
		}
		if best == nil || u.ID < best.ID {
			best = u
		}
	}
	return best, nil
}

func (m *memAccountStore) FirstOperationalWithPrimary(_ context.Context, companyID int64) (*db_models.User, error) {
	var best *db_models.User
	for _, u := range m.evaluations.users {
		if !u.IsOperational() || u.PrimaryCompanyID == nil || *u.PrimaryCompanyID != companyID {
			continue
		}
		if best == nil || u.ID < best.ID {
			best = u
		}
	}
	return best, nil
}

func (m *memAccountStore) ListOperational(_ context.Context) ([]db_models.User, error) {
	var out []db_models.User
	for _, u := range m.evaluations.users {
		if u.IsOperational() && u.IsActive() {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		x, y := a[i], b[i]
		if 'A' <= x && x <= 'Z' {
			x += 'a' - 'A'
		}
		if 'A' <= y && y <= 'Z' {
			y += 'a' - 'A'
		}
		if x != y {
			return false
		}
	}
	return true
}

type sentMail struct {
	kind       string
	employeeID int64
	evaluation int64
}

type mockMailService struct {
	sent chan sentMail
	err  error
}

func newMockMailService() *mockMailService {
	return &mockMailService{sent: make(chan sentMail, 16)}
}

func (m *mockMailService) NotifyDetractor(_ context.Context, employee *db_models.User, e *db_models.Evaluation) error {
	m.sent <- sentMail{kind: "detractor", employeeID: employee.ID, evaluation: e.ID}
	return m.err
}

func (m *mockMailService) NotifyRejection(_ context.Context, employee *db_models.User, e *db_models.Evaluation) error {
	m.sent <- sentMail{kind: "rejection", employeeID: employee.ID, evaluation: e.ID}
	return m.err
}

type mockDashboardRepo struct {
	summaryFn        func(ctx context.Context) (repositories.SummaryRow, error)
	statusCountsFn   func(ctx context.Context) (repositories.StatusRow, error)
	countSinceFn     func(ctx context.Context, since time.Time) (int64, error)
	companyScoresFn  func(ctx context.Context) ([]repositories.ScoreRow, error)
	employeeScoresFn func(ctx context.Context) ([]repositories.ScoreRow, error)
	companyVolumesFn func(ctx context.Context, limit int) ([]repositories.ScoreRow, error)
	operationalUsers int64
	activeCompanies  int64
}

func (m *mockDashboardRepo) Summary(ctx context.Context) (repositories.SummaryRow, error) {
	if m.summaryFn != nil {
		return m.summaryFn(ctx)
	}
	return repositories.SummaryRow{}, nil
}

func (m *mockDashboardRepo) StatusCounts(ctx context.Context) (repositories.StatusRow, error) {
	if m.statusCountsFn != nil {
		return m.statusCountsFn(ctx)
	}
	return repositories.StatusRow{}, nil
}

func (m *mockDashboardRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	if m.countSinceFn != nil {
		return m.countSinceFn(ctx, since)
	}
	return 0, nil
}

func (m *mockDashboardRepo) CompanyScores(ctx context.Context) ([]repositories.ScoreRow, error) {
	if m.companyScoresFn != nil {
		return m.companyScoresFn(ctx)
	}
	return nil, nil
}

func (m *mockDashboardRepo) EmployeeScores(ctx context.Context) ([]repositories.ScoreRow, error) {
	if m.employeeScoresFn != nil {
		return m.employeeScoresFn(ctx)
	}
	return nil, nil
}

func (m *mockDashboardRepo) CompanyVolumes(ctx context.Context, limit int) ([]repositories.ScoreRow, error) {
	if m.companyVolumesFn != nil {
		return m.companyVolumesFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockDashboardRepo) CountOperationalUsers(context.Context) (int64, error) {
	return m.operationalUsers, nil
}

func (m *mockDashboardRepo) CountActiveCompanies(context.Context) (int64, error) {
	return m.activeCompanies, nil
}
