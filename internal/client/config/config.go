package config

import (
	"os"
	"time"
)

// APIKeyEnvVar is read for the analyzer key when no file or flag sets it.
const APIKeyEnvVar = "OPENAI_API_KEY"

// Config holds runtime settings for the ArcheData CLI.
//
// Fields:
//   - DatabasePath: SQLite file holding the local store.
//   - LogLevel / LogFormat: slog level name and "text" or "json".
//   - AdminEmail / AdminPassword: credentials of the built-in Admin account.
//     An empty password leaves the Admin without a hash, so it cannot log in
//     with a password.
//   - AIEndpoint / AIModel / AIAPIKey / AITimeout / AIRequestsPerMinute:
//     OpenAI-compatible analyzer settings. With no key and no endpoint the
//     analyzer always falls back.
//   - S3Bucket / S3Region / S3BaseEndpoint / S3AccessKey / S3SecretKey:
//     document storage. An empty bucket disables uploads.
type Config struct {
	DatabasePath        string
	LogLevel            string
	LogFormat           string
	AdminEmail          string
	AdminPassword       string
	AIEndpoint          string
	AIModel             string
	AIAPIKey            string
	AITimeout           time.Duration
	AIRequestsPerMinute int
	S3Bucket            string
	S3Region            string
	S3BaseEndpoint      string
	S3AccessKey         string
	S3SecretKey         string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "data/archedata.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.AdminEmail = "admin@archedata.local"
	c.AIModel = "gpt-4o-mini"
	c.AIAPIKey = os.Getenv(APIKeyEnvVar)
	c.AITimeout = 30 * time.Second
	c.AIRequestsPerMinute = 10
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// DocumentsEnabled reports whether an object store is configured.
func (c *Config) DocumentsEnabled() bool {
	return c.S3Bucket != ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
