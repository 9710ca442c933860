package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store backends
const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Voting policies
const (
	PolicyMajority = "majority"
	PolicyQuorum   = "quorum"
)

// DiscordConfig holds the bot credentials
type DiscordConfig struct {
	Token         string `yaml:"token"`
	ApplicationID string `yaml:"application_id"`

	// GuildID registers commands for one guild only, for development
	GuildID string `yaml:"guild_id"`
}

// StoreConfig selects and configures persistence. Voting sessions always
// live in Redis; Backend only chooses where the catalog is kept.
type StoreConfig struct {
	Backend string `yaml:"backend"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	PostgresDSN string `yaml:"postgres_dsn"`
}

// VotingConfig tunes the voting window and how outcomes are decided
type VotingConfig struct {
	Window         time.Duration `yaml:"window"`
	DeadlineJitter time.Duration `yaml:"deadline_jitter"`

	Policy       string `yaml:"policy"`
	MinApprovals int    `yaml:"min_approvals"`
	EarlyResolve bool   `yaml:"early_resolve"`
}

// PublicationConfig tunes scheduled event creation
type PublicationConfig struct {
	EventDuration time.Duration `yaml:"event_duration"`
	Timeout       time.Duration `yaml:"timeout"`
}

// Config is the top-level application configuration
type Config struct {
	Discord     DiscordConfig     `yaml:"discord"`
	Store       StoreConfig       `yaml:"store"`
	Voting      VotingConfig      `yaml:"voting"`
	Publication PublicationConfig `yaml:"publication"`

	// Timezone is the IANA zone typed dates and times are read in
	Timezone string `yaml:"timezone"`

	// SweepSchedule is a cron spec for the deadline sweeper
	SweepSchedule string `yaml:"sweep_schedule"`

	// HTTPAddr is where the read-only API listens; empty disables it
	HTTPAddr string `yaml:"http_addr"`

	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns an in-memory default configuration
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Normalize()
	return cfg
}

// Normalize fills in zero values with defaults
func (c *Config) Normalize() {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	if c.Store.Backend == "" {
		c.Store.Backend = BackendRedis
	}
	if c.Store.RedisAddr == "" {
		c.Store.RedisAddr = "localhost:6379"
	}

	if c.Voting.Window <= 0 {
		c.Voting.Window = 24 * time.Hour
	}
	if c.Voting.DeadlineJitter <= 0 {
		c.Voting.DeadlineJitter = 30 * time.Second
	}
	c.Voting.Policy = strings.ToLower(strings.TrimSpace(c.Voting.Policy))
	if c.Voting.Policy == "" {
		c.Voting.Policy = PolicyMajority
	}
	if c.Voting.MinApprovals <= 0 {
		c.Voting.MinApprovals = 1
	}

	if c.Publication.EventDuration <= 0 {
		c.Publication.EventDuration = 3 * time.Hour
	}
	if c.Publication.Timeout <= 0 {
		c.Publication.Timeout = 30 * time.Second
	}

	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.SweepSchedule == "" {
		c.SweepSchedule = "@every 1m"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate reports settings that cannot work
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendRedis:
	case BackendPostgres:
		if c.Store.PostgresDSN == "" {
			return errors.New("store.postgres_dsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	switch c.Voting.Policy {
	case PolicyMajority, PolicyQuorum:
	default:
		return fmt.Errorf("unknown voting policy %q", c.Voting.Policy)
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Load reads the YAML file at path, applies environment overrides and
// normalizes the result. A missing file or an empty path yields defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return cfg, nil
}

// applyEnv overrides file values with any set environment variables
func (c *Config) applyEnv() error {
	setString(&c.Discord.Token, "DISCORD_TOKEN")
	setString(&c.Discord.ApplicationID, "APPLICATION_ID")
	setString(&c.Discord.GuildID, "GUILD_ID")

	setString(&c.Store.Backend, "STORE_BACKEND")
	setString(&c.Store.RedisAddr, "REDIS_ADDR")
	setString(&c.Store.RedisPassword, "REDIS_PASSWORD")
	setString(&c.Store.PostgresDSN, "DATABASE_URL")

	setString(&c.Voting.Policy, "VOTING_POLICY")
	setString(&c.Timezone, "TIMEZONE")
	setString(&c.SweepSchedule, "SWEEP_SCHEDULE")
	setString(&c.HTTPAddr, "HTTP_ADDR")
	setString(&c.LogLevel, "LOG_LEVEL")

	if err := setInt(&c.Store.RedisDB, "REDIS_DB"); err != nil {
		return err
	}
	if err := setInt(&c.Voting.MinApprovals, "VOTING_MIN_APPROVALS"); err != nil {
		return err
	}
	if err := setBool(&c.Voting.EarlyResolve, "VOTING_EARLY_RESOLVE"); err != nil {
		return err
	}
	if err := setDuration(&c.Voting.Window, "VOTING_WINDOW"); err != nil {
		return err
	}
	if err := setDuration(&c.Voting.DeadlineJitter, "VOTING_DEADLINE_JITTER"); err != nil {
		return err
	}
	if err := setDuration(&c.Publication.EventDuration, "EVENT_DURATION"); err != nil {
		return err
	}
	return setDuration(&c.Publication.Timeout, "PUBLISH_TIMEOUT")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = b
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}
