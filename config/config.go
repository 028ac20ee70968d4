// Package config loads the server configuration from flags, PARLOUR_*
// environment variables and an optional config file, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"strings"
	"time"

	"github.com/peterbourgon/ff/v3"
)

const EnvPrefix = "PARLOUR"

type Config struct {
	Addr           string
	MongoURI       string
	DBUser         string
	DBPass         string
	DBName         string
	SigningKey     string
	SecureCookies  bool
	CORSOrigins    []string
	LogLevel       string
	LogFormat      string
	ConnectTimeout time.Duration
}

var ErrMissingSigningKey = errors.New("signing-key is required")

// Load parses args (without the program name). Cookies are Secure unless
// explicitly disabled for local development.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("parlour", flag.ContinueOnError)
	cfg := &Config{}

	fs.StringVar(&cfg.Addr, "addr", ":5000", "address to listen on")
	fs.StringVar(&cfg.MongoURI, "mongo-uri", "mongodb://127.0.0.1:27017", "MongoDB connection string")
	fs.StringVar(&cfg.DBUser, "db-user", "", "MongoDB user")
	fs.StringVar(&cfg.DBPass, "db-pass", "", "MongoDB password")
	fs.StringVar(&cfg.DBName, "db-name", "parlourDB", "MongoDB database")
	fs.StringVar(&cfg.SigningKey, "signing-key", "", "HMAC secret for session tokens")
	fs.BoolVar(&cfg.SecureCookies, "secure-cookies", true, "set the Secure flag on session cookies")
	origins := fs.String("cors-origins", "*", "comma separated list of allowed CORS origins")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", "json", "log format, json or console")
	fs.DurationVar(&cfg.ConnectTimeout, "connect-timeout", 10*time.Second, "MongoDB connect timeout")
	_ = fs.String("config", "", "config file")

	err := ff.Parse(fs, args,
		ff.WithEnvVarPrefix(EnvPrefix),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	)
	if err != nil {
		return nil, err
	}

	for _, o := range strings.Split(*origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if cfg.SigningKey == "" {
		return nil, ErrMissingSigningKey
	}
	return cfg, nil
}
