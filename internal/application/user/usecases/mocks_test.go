package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/civictrack/civictrack/internal/domain/user"
	vo "github.com/civictrack/civictrack/internal/domain/user/valueobjects"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

// memoryUserRepository is a map-backed user.Repository.
type memoryUserRepository struct {
	users      map[uint]*user.User
	nextID     uint
	CreateFunc func(ctx context.Context, u *user.User) error
	UpdateFunc func(ctx context.Context, u *user.User) error
}

func newMemoryUserRepository(users ...*user.User) *memoryUserRepository {
	m := &memoryUserRepository{users: make(map[uint]*user.User), nextID: 100}
	for _, u := range users {
		m.users[u.ID()] = u
	}
	return m
}

func (m *memoryUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	m.nextID++
	if err := u.SetID(m.nextID); err != nil {
		return err
	}
	m.users[u.ID()] = u
	return nil
}

func (m *memoryUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, u)
	}
	m.users[u.ID()] = u
	return nil
}

func (m *memoryUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return m.users[id], nil
}

func (m *memoryUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	var out []*user.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memoryUserRepository) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	for _, u := range m.users {
		if u.SID() == sid {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email().String() == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memoryUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, err := m.GetByEmail(ctx, email)
	return u != nil, err
}

// prefixHasher stores "hashed:<password>".
type prefixHasher struct{}

func (prefixHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (prefixHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return errors.New("password verification failed")
	}
	return nil
}

type stubTokenIssuer struct {
	err error
}

func (s stubTokenIssuer) Issue(u *user.User) (string, time.Time, error) {
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	return fmt.Sprintf("token-for-%s", u.SID()), time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
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

func existingUser(t *testing.T, id uint, email, password string, role authorization.UserRole) *user.User {
	t.Helper()
	name, err := vo.NewName("Asha Rao")
	require.NoError(t, err)
	e, err := vo.NewEmail(email)
	require.NoError(t, err)
	sid := "usr_" + strings.Repeat("a", 12)
	u, err := user.ReconstructUser(id, sid, name, e, "hashed:"+password, role,
		user.Contact{Phone: "555-0100", Address: "14 Lake Road", City: "Pune"}, time.Now(), time.Now())
	require.NoError(t, err)
	return u
}

func strPtr(s string) *string { return &s }
