package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/bereal/internal/flagx"
	"github.com/dmitrijs2005/bereal/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the corresponding Config field untouched.
type JsonConfig struct {
	ServerURL                string          `json:"server_url"`
	ApplicationID            string          `json:"application_id"`
	RESTAPIKey               string          `json:"rest_api_key"`
	DataDir                  string          `json:"data_dir"`
	FeedLimit                *int            `json:"feed_limit"`
	RequestTimeout           *timex.Duration `json:"request_timeout"`
	LogLevel                 string          `json:"log_level"`
	JPEGQuality              *int            `json:"jpeg_quality"`
	NotificationPollInterval *timex.Duration `json:"notification_poll_interval"`
	FileStore                string          `json:"file_store"`
	S3                       *JsonS3Config   `json:"s3"`
}

type JsonS3Config struct {
	Bucket      string          `json:"bucket"`
	Region      string          `json:"region"`
	Endpoint    string          `json:"endpoint"`
	AccessKey   string          `json:"access_key"`
	SecretKey   string          `json:"secret_key"`
	URLValidity *timex.Duration `json:"url_validity"`
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c / -config. Without the flag nothing happens. Read or decode errors
// panic; the caller runs this once at startup.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.ServerURL, jc.ServerURL)
	overlay(&cfg.ApplicationID, jc.ApplicationID)
	overlay(&cfg.RESTAPIKey, jc.RESTAPIKey)
	overlay(&cfg.DataDir, jc.DataDir)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.FileStore, jc.FileStore)

	if jc.FeedLimit != nil {
		cfg.FeedLimit = *jc.FeedLimit
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.JPEGQuality != nil {
		cfg.JPEGQuality = *jc.JPEGQuality
	}
	if jc.NotificationPollInterval != nil {
		cfg.NotificationPollInterval = jc.NotificationPollInterval.Duration
	}

	if s3 := jc.S3; s3 != nil {
		overlay(&cfg.S3Bucket, s3.Bucket)
		overlay(&cfg.S3Region, s3.Region)
		overlay(&cfg.S3Endpoint, s3.Endpoint)
		overlay(&cfg.S3AccessKey, s3.AccessKey)
		overlay(&cfg.S3SecretKey, s3.SecretKey)
		if s3.URLValidity != nil {
			cfg.S3URLValidity = s3.URLValidity.Duration
		}
	}
}
