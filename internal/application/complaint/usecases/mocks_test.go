package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/civictrack/civictrack/internal/domain/complaint"
	vo "github.com/civictrack/civictrack/internal/domain/complaint/valueobjects"
	"github.com/civictrack/civictrack/internal/domain/user"
	uvo "github.com/civictrack/civictrack/internal/domain/user/valueobjects"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

// ---------------------------------------------------------------------------
// Repositories
// ---------------------------------------------------------------------------

type mockComplaintRepository struct {
	CreateFunc            func(ctx context.Context, c *complaint.Complaint) error
	UpdateStatusPatchFunc func(ctx context.Context, c *complaint.Complaint, patch complaint.StatusPatch) error
	UpdateRatingFunc      func(ctx context.Context, c *complaint.Complaint) error
	DeleteFunc            func(ctx context.Context, id uint) error
	GetByIDFunc           func(ctx context.Context, id uint) (*complaint.Complaint, error)
	GetBySIDFunc          func(ctx context.Context, sid string) (*complaint.Complaint, error)
	ListFunc              func(ctx context.Context, filter complaint.Filter) ([]*complaint.Complaint, int64, error)
	StatsFunc             func(ctx context.Context) (*complaint.Stats, error)
}

func (m *mockComplaintRepository) Create(ctx context.Context, c *complaint.Complaint) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return c.SetID(1)
}

func (m *mockComplaintRepository) UpdateStatusPatch(ctx context.Context, c *complaint.Complaint, patch complaint.StatusPatch) error {
	if m.UpdateStatusPatchFunc != nil {
		return m.UpdateStatusPatchFunc(ctx, c, patch)
	}
	return nil
}

func (m *mockComplaintRepository) UpdateRating(ctx context.Context, c *complaint.Complaint) error {
	if m.UpdateRatingFunc != nil {
		return m.UpdateRatingFunc(ctx, c)
	}
	return nil
}

func (m *mockComplaintRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockComplaintRepository) GetByID(ctx context.Context, id uint) (*complaint.Complaint, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockComplaintRepository) GetBySID(ctx context.Context, sid string) (*complaint.Complaint, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, nil
}

func (m *mockComplaintRepository) List(ctx context.Context, filter complaint.Filter) ([]*complaint.Complaint, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockComplaintRepository) Stats(ctx context.Context) (*complaint.Stats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return &complaint.Stats{}, nil
}

// mockUserRepository serves users from a fixed map unless a func is set.
type mockUserRepository struct {
	users        map[uint]*user.User
	GetByIDsFunc func(ctx context.Context, ids []uint) ([]*user.User, error)
	GetBySIDFunc func(ctx context.Context, sid string) (*user.User, error)
}

func newMockUserRepository(users ...*user.User) *mockUserRepository {
	m := &mockUserRepository{users: make(map[uint]*user.User)}
	for _, u := range users {
		m.users[u.ID()] = u
	}
	return m
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error { return nil }

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error { return nil }

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	var out []*user.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepository) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	for _, u := range m.users {
		if u.SID() == sid {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email().String() == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := m.GetByEmail(ctx, email)
	return u != nil, nil
}

// ---------------------------------------------------------------------------
// Collaborators
// ---------------------------------------------------------------------------

type mockHumanIDGenerator struct {
	GenerateFunc func(ctx context.Context) (string, error)
}

func (m *mockHumanIDGenerator) Generate(ctx context.Context) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx)
	}
	return "CT17600000000000001", nil
}

type mockNotifier struct {
	calls      int
	recipients []string
	err        error
}

func (m *mockNotifier) NotifyStatusChanged(ctx context.Context, recipient *user.User, c *complaint.Complaint) error {
	m.calls++
	m.recipients = append(m.recipients, recipient.Email().String())
	return m.err
}

type mockImageStore struct {
	stored  map[string]string
	removed []string
	err     error
}

func (m *mockImageStore) uploads() int { return len(m.stored) }

func (m *mockImageStore) Store(ctx context.Context, complaintSID string, payload string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.stored == nil {
		m.stored = make(map[string]string)
	}
	m.stored[complaintSID] = payload
	return "https://images.example.com/complaints/" + complaintSID, nil
}

func (m *mockImageStore) Remove(ctx context.Context, complaintSID string) error {
	m.removed = append(m.removed, complaintSID)
	return m.err
}

type passthroughSanitizer struct{}

func (passthroughSanitizer) PlainText(input string) string { return input }

// policyChecker evaluates the default policy table without casbin.
type policyChecker struct{}

func (policyChecker) Can(identity authorization.Identity, resource authorization.Resource, action authorization.Action) bool {
	scope := authorization.ScopeFor(identity, resource)
	for _, p := range authorization.DefaultPolicies() {
		if p.Role != identity.Role || p.Resource != resource.Kind || p.Action != action {
			continue
		}
		if p.Scope == authorization.ScopeAny || p.Scope == scope {
			return true
		}
	}
	return false
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                   {}
func (m *mockLogger) Info(msg string, args ...any)                    {}
func (m *mockLogger) Warn(msg string, args ...any)                    {}
func (m *mockLogger) Error(msg string, args ...any)                   {}
func (m *mockLogger) Fatal(msg string, args ...any)                   {}
func (m *mockLogger) With(args ...any) logger.Interface               { return m }
func (m *mockLogger) Named(name string) logger.Interface              { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Fatalw(msg string, keysAndValues ...interface{}) {}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

var (
	citizenA = authorization.Identity{UserID: 10, Role: authorization.RoleCitizen}
	citizenB = authorization.Identity{UserID: 11, Role: authorization.RoleCitizen}
	officer  = authorization.Identity{UserID: 20, Role: authorization.RoleDepartmentOfficer}
	admin    = authorization.Identity{UserID: 30, Role: authorization.RoleAdmin}
)

const testComplaintSID = "cmp_abcdefABCDEF"

func newTestUser(t *testing.T, id uint, sid, name, email string, role authorization.UserRole) *user.User {
	t.Helper()
	n, err := uvo.NewName(name)
	require.NoError(t, err)
	e, err := uvo.NewEmail(email)
	require.NoError(t, err)
	u, err := user.ReconstructUser(id, sid, n, e, "hash", role, user.Contact{Phone: "555-0100"}, time.Now(), time.Now())
	require.NoError(t, err)
	return u
}

func defaultUsers(t *testing.T) *mockUserRepository {
	return newMockUserRepository(
		newTestUser(t, citizenA.UserID, "usr_citizenAAAA", "Asha Rao", "asha@example.com", authorization.RoleCitizen),
		newTestUser(t, citizenB.UserID, "usr_citizenBBBB", "Bala Iyer", "bala@example.com", authorization.RoleCitizen),
		newTestUser(t, officer.UserID, "usr_officer0000", "Ravi Kumar", "ravi@city.gov", authorization.RoleDepartmentOfficer),
		newTestUser(t, admin.UserID, "usr_admin000000", "Meera Nair", "meera@city.gov", authorization.RoleAdmin),
	)
}

func existingComplaint(t *testing.T, citizenID uint, status vo.ComplaintStatus) *complaint.Complaint {
	t.Helper()
	loc, err := vo.NewLocation("MG Road", 18.52, 73.85)
	require.NoError(t, err)
	created := time.Now().UTC().Add(-time.Hour)
	c, err := complaint.ReconstructComplaint(
		1, testComplaintSID, "CT17000000000000001", citizenID,
		vo.IssueTypePothole, "Pothole near the school gate", loc, nil,
		status, vo.PriorityMedium,
		nil, nil, nil, nil, nil,
		created, created,
	)
	require.NoError(t, err)
	return c
}

func repoWith(c *complaint.Complaint) *mockComplaintRepository {
	return &mockComplaintRepository{
		GetBySIDFunc: func(ctx context.Context, sid string) (*complaint.Complaint, error) {
			if sid == c.SID() {
				return c, nil
			}
			return nil, nil
		},
		GetByIDFunc: func(ctx context.Context, id uint) (*complaint.Complaint, error) {
			if id == c.ID() {
				return c, nil
			}
			return nil, nil
		},
	}
}

func strPtr(s string) *string { return &s }

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
