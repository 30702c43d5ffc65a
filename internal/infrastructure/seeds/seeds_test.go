package seeds

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/civictrack/civictrack/internal/infrastructure/persistence/models"
	"github.com/civictrack/civictrack/internal/infrastructure/repository"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

const seedYAML = `
users:
  - name: City Administrator
    email: Admin@CivicTrack.local
    password: ${SEED_ADMIN_PASSWORD}
    role: admin
  - name: Roads Officer
    email: roads@civictrack.local
    password: officer-pass
    role: department_officer
    city: Pune
`

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Verify(password, hash string) error   { return nil }

func newSeeder(t *testing.T) (*Seeder, *repository.UserRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.UserModel{}))

	repo := repository.NewUserRepository(db)
	return NewSeeder(repo, plainHasher{}, logger.NewLogger()), repo
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("SEED_ADMIN_PASSWORD", "s3cret-admin")
	path := filepath.Join(t.TempDir(), "staff.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	require.Len(t, f.Users, 2)
	assert.Equal(t, "s3cret-admin", f.Users[0].Password)
	assert.Equal(t, "department_officer", f.Users[1].Role)
	assert.Equal(t, "Pune", f.Users[1].City)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("users: [unterminated"))
	assert.Error(t, err)
}

func TestSeeder_ApplyIsIdempotent(t *testing.T) {
	t.Setenv("SEED_ADMIN_PASSWORD", "s3cret-admin")
	seeder, repo := newSeeder(t)
	ctx := context.Background()

	f, err := Parse([]byte(seedYAML))
	require.NoError(t, err)

	result, err := seeder.Apply(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, &Result{Created: 2}, result)

	admin, err := repo.GetByEmail(ctx, "admin@civictrack.local")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, authorization.RoleAdmin, admin.Role())
	assert.Equal(t, "hashed:s3cret-admin", admin.PasswordHash())

	result, err = seeder.Apply(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, &Result{Unchanged: 2}, result)
}

func TestSeeder_PromotesExistingAccount(t *testing.T) {
	seeder, repo := newSeeder(t)
	ctx := context.Background()

	_, err := seeder.Apply(ctx, &File{Users: []StaffUser{
		{Name: "Roads Officer", Email: "roads@civictrack.local", Password: "officer-pass", Role: "citizen"},
	}})
	require.NoError(t, err)

	result, err := seeder.Apply(ctx, &File{Users: []StaffUser{
		{Name: "Roads Officer", Email: "roads@civictrack.local", Password: "ignored-now", Role: "department_officer"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	u, err := repo.GetByEmail(ctx, "roads@civictrack.local")
	require.NoError(t, err)
	assert.Equal(t, authorization.RoleDepartmentOfficer, u.Role())
	assert.Equal(t, "hashed:officer-pass", u.PasswordHash())
}

func TestSeeder_RejectsBadEntries(t *testing.T) {
	seeder, _ := newSeeder(t)
	ctx := context.Background()

	tests := []struct {
		name string
		user StaffUser
	}{
		{"unknown role", StaffUser{Name: "X Person", Email: "x@civictrack.local", Password: "long-enough", Role: "mayor"}},
		{"bad email", StaffUser{Name: "X Person", Email: "not-an-email", Password: "long-enough", Role: "admin"}},
		{"missing name", StaffUser{Email: "x@civictrack.local", Password: "long-enough", Role: "admin"}},
		{"short password", StaffUser{Name: "X Person", Email: "x@civictrack.local", Password: "short", Role: "admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := seeder.Apply(ctx, &File{Users: []StaffUser{tt.user}})
			assert.Error(t, err)
		})
	}
}
