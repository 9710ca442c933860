package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "astrolabe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "localhost:6379", cfg.Store.RedisAddr)
	assert.Equal(t, 24*time.Hour, cfg.Voting.Window)
	assert.Equal(t, 30*time.Second, cfg.Voting.DeadlineJitter)
	assert.Equal(t, PolicyMajority, cfg.Voting.Policy)
	assert.Equal(t, 1, cfg.Voting.MinApprovals)
	assert.Equal(t, 3*time.Hour, cfg.Publication.EventDuration)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "@every 1m", cfg.SweepSchedule)
	assert.Empty(t, cfg.HTTPAddr)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
discord:
  token: file-token
  guild_id: "1234"
store:
  backend: Postgres
  postgres_dsn: postgres://localhost/astrolabe
voting:
  window: 10m
  policy: quorum
  min_approvals: 3
  early_resolve: true
publication:
  event_duration: 90m
timezone: America/New_York
http_addr: ":8080"
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-token", cfg.Discord.Token)
	assert.Equal(t, "1234", cfg.Discord.GuildID)
	assert.Equal(t, BackendPostgres, cfg.Store.Backend)
	assert.Equal(t, 10*time.Minute, cfg.Voting.Window)
	assert.Equal(t, PolicyQuorum, cfg.Voting.Policy)
	assert.Equal(t, 3, cfg.Voting.MinApprovals)
	assert.True(t, cfg.Voting.EarlyResolve)
	assert.Equal(t, 90*time.Minute, cfg.Publication.EventDuration)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	require.NoError(t, cfg.Validate())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, `
discord:
  token: file-token
voting:
  window: 10m
`)
	t.Setenv("DISCORD_TOKEN", "env-token")
	t.Setenv("VOTING_WINDOW", "2h")
	t.Setenv("VOTING_EARLY_RESOLVE", "true")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Discord.Token)
	assert.Equal(t, 2*time.Hour, cfg.Voting.Window)
	assert.True(t, cfg.Voting.EarlyResolve)
	assert.Equal(t, 2, cfg.Store.RedisDB)
}

func TestInvalidEnv(t *testing.T) {
	t.Setenv("VOTING_WINDOW", "soon")

	_, err := Load("")
	assert.ErrorContains(t, err, "VOTING_WINDOW")
}

func TestInvalidYAML(t *testing.T) {
	path := writeFile(t, "voting: [unterminated")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{
			name:   "postgres without dsn",
			mutate: func(c *Config) { c.Store.Backend = BackendPostgres },
			errMsg: "postgres_dsn",
		},
		{
			name:   "unknown backend",
			mutate: func(c *Config) { c.Store.Backend = "sqlite" },
			errMsg: "unknown store backend",
		},
		{
			name:   "unknown policy",
			mutate: func(c *Config) { c.Voting.Policy = "unanimous" },
			errMsg: "unknown voting policy",
		},
		{
			name:   "bad timezone",
			mutate: func(c *Config) { c.Timezone = "Mars/Olympus" },
			errMsg: "invalid timezone",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tc.errMsg)
		})
	}
}

func TestSlogLevelFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "loud"
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())

	cfg.LogLevel = "warn"
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
}
