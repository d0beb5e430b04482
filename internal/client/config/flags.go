package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/bereal/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-s string   Parse server URL
//	-a string   Parse application id
//	-k string   Parse REST API key
//	-d string   data directory
//	-l int      feed limit
//	-t int      request timeout in seconds
//	-v string   log level
//	-f string   file store (parse|s3)
//	-q int      JPEG quality
//
// os.Args is filtered with flagx.FilterArgs first, so -c/-env handled by
// the other loaders do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-a", "-k", "-d", "-l", "-t", "-v", "-f", "-q"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "s", cfg.ServerURL, "Parse server URL")
	fs.StringVar(&cfg.ApplicationID, "a", cfg.ApplicationID, "Parse application id")
	fs.StringVar(&cfg.RESTAPIKey, "k", cfg.RESTAPIKey, "Parse REST API key")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.IntVar(&cfg.FeedLimit, "l", cfg.FeedLimit, "feed limit")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.FileStore, "f", cfg.FileStore, "file store (parse|s3)")
	fs.IntVar(&cfg.JPEGQuality, "q", cfg.JPEGQuality, "JPEG quality (1-100)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
