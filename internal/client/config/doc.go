// Package config loads runtime configuration for the bereal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally loaded from a dotenv file
//     (-env path, or ./.env when present).
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-s string   Parse server URL
//	-a string   Parse application id
//	-k string   Parse REST API key
//	-d string   data directory
//	-l int      feed limit
//	-t int      request timeout (seconds)
//	-v string   log level (debug|info|warn|error)
//	-f string   file store (parse|s3)
//	-q int      JPEG quality used for uploads (1-100)
//
// # Environment
//
//	BEREAL_SERVER_URL, BEREAL_APP_ID, BEREAL_REST_KEY, BEREAL_DATA_DIR,
//	BEREAL_LOG_LEVEL, BEREAL_FILE_STORE, BEREAL_S3_BUCKET, BEREAL_S3_REGION,
//	BEREAL_S3_ENDPOINT, BEREAL_S3_ACCESS_KEY, BEREAL_S3_SECRET_KEY
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "15s" or
// integer nanoseconds:
//
//	{
//	  "server_url": "https://parseapi.back4app.com",
//	  "application_id": "...",
//	  "rest_api_key": "...",
//	  "feed_limit": 50,
//	  "request_timeout": "15s",
//	  "file_store": "s3",
//	  "s3": {"bucket": "photos", "region": "us-east-1", "endpoint": "http://127.0.0.1:9000"}
//	}
package config
