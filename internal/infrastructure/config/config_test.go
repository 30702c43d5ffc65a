package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("", "")
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "UTC", cfg.Server.Timezone)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "database", cfg.Complaint.SequenceBackend)
	assert.False(t, cfg.Email.Enabled())
	assert.False(t, cfg.Storage.CloudinaryEnabled())
	assert.Same(t, cfg, Get())
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8080
database:
  driver: postgres
  host: db.internal
  port: 5432
  username: civic
  password: secret
  database: civictrack
`), 0o600))
	t.Setenv("CIVICTRACK_SERVER_PORT", "9090")

	cfg, err := Load("production", path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t,
		"host=db.internal port=5432 user=civic password=secret dbname=civictrack sslmode=disable TimeZone=UTC",
		cfg.Database.GetDSN())
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CIVICTRACK_AUTH_JWT_ISSUER=from-dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("CIVICTRACK_AUTH_JWT_ISSUER") })

	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Auth.JWT.Issuer)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := Load("", "does-not-exist.yaml")
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
