package config

import "time"

// File store kinds.
const (
	FileStoreParse = "parse"
	FileStoreS3    = "s3"
)

// Config holds runtime settings for the bereal CLI.
//
// Fields:
//   - ServerURL: base URL of the Parse REST API (e.g. https://parseapi.back4app.com).
//   - ApplicationID / RESTAPIKey: Parse application credentials.
//   - DataDir: directory for the local database and downloaded images.
//   - FeedLimit: maximum number of posts fetched for the feed.
//   - RequestTimeout: per-request deadline for backend calls.
//   - JPEGQuality: quality (1-100) used when compressing photos before upload.
//   - NotificationPollInterval: how often due reminders are checked.
//   - FileStore: "parse" (Parse files endpoint) or "s3".
//   - S3*: settings for the S3-compatible file store.
type Config struct {
	ServerURL                string
	ApplicationID            string
	RESTAPIKey               string
	DataDir                  string
	FeedLimit                int
	RequestTimeout           time.Duration
	LogLevel                 string
	JPEGQuality              int
	NotificationPollInterval time.Duration

	FileStore     string
	S3Bucket      string
	S3Region      string
	S3Endpoint    string
	S3AccessKey   string
	S3SecretKey   string
	S3URLValidity time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "https://parseapi.back4app.com"
	c.DataDir = ".bereal"
	c.FeedLimit = 50
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "info"
	c.JPEGQuality = 10
	c.NotificationPollInterval = 30 * time.Second
	c.FileStore = FileStoreParse
	c.S3Region = "us-east-1"
	c.S3URLValidity = 7 * 24 * time.Hour
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (.env), JSON (if present) and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
