package config

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path.Join(dir, name), []byte(content), 0o644))
}

func TestMustLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "public.yaml", `
log_level: debug
log_json: true
allowed_origins:
  - http://localhost:3000
`)
	writeConfig(t, dir, "private.yaml", `
pg:
  host: dbhost
  port: 5433
  user: u
  password: p
  dbname: liblend
admin_signup_code: sekrit
google_client_id: client-123
`)

	cfg := MustLoad(dir)

	assert.Equal(t, "debug", cfg.Public.LogLevel)
	assert.True(t, cfg.Public.LogJSON)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Public.AllowedOrigins)
	assert.Equal(t, "dbhost", cfg.Private.Pg.Host)
	assert.Equal(t, 5433, cfg.Private.Pg.Port)
	assert.Equal(t, "sekrit", cfg.Private.AdminSignupCode)
	assert.Equal(t, "client-123", cfg.Private.GoogleClientId)
}

func TestMustLoadMissingFile(t *testing.T) {
	assert.Panics(t, func() { MustLoad(t.TempDir()) })
}

func TestMustLoadBrokenYaml(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "public.yaml", "log_level: [broken")
	writeConfig(t, dir, "private.yaml", "")

	assert.Panics(t, func() { MustLoad(dir) })
}
