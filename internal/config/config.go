package config

import "time"

// Token store backends.
const (
	TokenStoreSQLite = "sqlite"
	TokenStoreBolt   = "bolt"
	TokenStoreRedis  = "redis"
	TokenStoreMemory = "memory"
)

// Image upload backends.
const (
	UploaderBackend = "backend"
	UploaderS3      = "s3"
)

// Config holds runtime settings for the prepadmin console and dev server.
type Config struct {
	// APIBaseURL is the single base address of every backend call.
	APIBaseURL string
	// RequestTimeout of 0 leaves the transport default in place.
	RequestTimeout time.Duration

	TokenStore   string
	DatabasePath string
	BoltPath     string
	RedisAddr    string
	RedisPass    string
	RedisDB      int
	RedisPrefix  string

	LogFormat string
	LogLevel  string

	ImageUploader   string
	S3Region        string
	S3Bucket        string
	S3BaseEndpoint  string
	S3AccessKey     string
	S3SecretKey     string
	S3PublicBaseURL string

	DevServerAddr     string
	DevServerSecret   string
	DevAdminEmail     string
	DevAdminPassword  string
	DevTokenValidity  time.Duration
	DevMemberEmail    string
	DevMemberPassword string
}

// LoadDefaults populates c with defaults suitable for a local backend.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api/v1"
	c.RequestTimeout = 0

	c.TokenStore = TokenStoreSQLite
	c.DatabasePath = "prepadmin.db"
	c.BoltPath = "prepadmin.bolt"
	c.RedisAddr = "localhost:6379"
	c.RedisPrefix = "prepadmin:"

	c.LogFormat = "text"
	c.LogLevel = "info"

	c.ImageUploader = UploaderBackend
	c.S3Region = "us-east-1"

	c.DevServerAddr = ":8000"
	c.DevAdminEmail = "admin@example.com"
	c.DevAdminPassword = "admin"
	c.DevMemberEmail = "member@example.com"
	c.DevMemberPassword = "member"
	c.DevTokenValidity = time.Hour
}

// LoadConfig applies defaults, then the config file (JSON or YAML), then
// PREPADMIN_* environment variables, then command-line flags. Later sources
// take precedence.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
