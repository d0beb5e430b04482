package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/bereal/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// parseEnv overlays Config with BEREAL_* environment variables. A dotenv
// file given with -env must exist; the default ./.env is optional. Values
// already present in the process environment win over the file.
func parseEnv(cfg *Config) {
	path := flagx.EnvFileFlag(os.Args[1:])
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	setString(&cfg.ServerURL, "BEREAL_SERVER_URL")
	setString(&cfg.ApplicationID, "BEREAL_APP_ID")
	setString(&cfg.RESTAPIKey, "BEREAL_REST_KEY")
	setString(&cfg.DataDir, "BEREAL_DATA_DIR")
	setString(&cfg.LogLevel, "BEREAL_LOG_LEVEL")
	setString(&cfg.FileStore, "BEREAL_FILE_STORE")
	setString(&cfg.S3Bucket, "BEREAL_S3_BUCKET")
	setString(&cfg.S3Region, "BEREAL_S3_REGION")
	setString(&cfg.S3Endpoint, "BEREAL_S3_ENDPOINT")
	setString(&cfg.S3AccessKey, "BEREAL_S3_ACCESS_KEY")
	setString(&cfg.S3SecretKey, "BEREAL_S3_SECRET_KEY")
}
