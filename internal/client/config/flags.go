package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/archedata/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   SQLite database path
//	-l string   log level (debug, info, warn, error)
//	-f string   log format (text, json)
//	-e string   analyzer endpoint (OpenAI-compatible base URL)
//	-m string   analyzer model
//	-k string   analyzer API key
//	-t int      analyzer timeout (in seconds)
//	-r int      analyzer requests per minute
//	-b string   S3 bucket
//	-g string   S3 region
//	-s string   S3 base endpoint
//	-u string   S3 access key
//	-p string   S3 secret key
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-l", "-f", "-e", "-m", "-k", "-t", "-r", "-b", "-g", "-s", "-u", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "SQLite database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (text or json)")

	fs.StringVar(&cfg.AIEndpoint, "e", cfg.AIEndpoint, "analyzer endpoint")
	fs.StringVar(&cfg.AIModel, "m", cfg.AIModel, "analyzer model")
	fs.StringVar(&cfg.AIAPIKey, "k", cfg.AIAPIKey, "analyzer API key")
	aiTimeout := fs.Int("t", int(cfg.AITimeout.Seconds()), "analyzer timeout (in seconds)")
	fs.IntVar(&cfg.AIRequestsPerMinute, "r", cfg.AIRequestsPerMinute, "analyzer requests per minute")

	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "s", cfg.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&cfg.S3AccessKey, "u", cfg.S3AccessKey, "S3 access key")
	fs.StringVar(&cfg.S3SecretKey, "p", cfg.S3SecretKey, "S3 secret key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AITimeout = time.Duration(*aiTimeout) * time.Second
}
