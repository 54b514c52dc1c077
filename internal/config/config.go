// Package config loads server settings from flags, the environment, an
// optional .env file and an optional .admingate.yaml file, in that order
// of precedence.
package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "ADMINGATE"

// Config holds all configuration for the web server.
type Config struct {
	Addr  string
	DSN   string
	Debug bool

	Logging LoggingConfig
	Cookies CookieConfig

	// AdminPasswordHash is the bcrypt hash the login form is checked against.
	// When empty nobody can sign in.
	AdminPasswordHash string
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// CookieConfig holds the keys used to mint admin session tokens.
// Nil keys mean a random key is generated at startup.
type CookieConfig struct {
	Secure   bool
	HashKey  []byte
	BlockKey []byte
}

// Load parses args (without the program name) and merges them with the
// environment and config files.
func Load(args []string) (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")

	fs := pflag.NewFlagSet("web", pflag.ContinueOnError)
	fs.String("addr", ":4001", "HTTP network address")
	fs.String("dsn", "", "MySQL data source name for the session store")
	fs.Bool("debug", false, "Enable debug mode in the browser")
	fs.String("log-level", "info", "Log level (debug, info, warn, error)")
	fs.String("log-format", "json", "Log format (json, console)")
	fs.Bool("secure-cookies", true, "Mark cookies Secure")
	fs.String("admin-password-hash", "", "bcrypt hash of the admin password")
	fs.String("cookie-hash-key", "", "base64 HMAC key for session tokens")
	fs.String("cookie-block-key", "", "base64 AES key for session tokens")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	v.SetConfigType("yaml")
	v.SetConfigName(".admingate")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	hashKey, err := decodeKey(v.GetString("cookie-hash-key"))
	if err != nil {
		return nil, fmt.Errorf("cookie-hash-key: %w", err)
	}

	blockKey, err := decodeKey(v.GetString("cookie-block-key"))
	if err != nil {
		return nil, fmt.Errorf("cookie-block-key: %w", err)
	}

	return &Config{
		Addr:  v.GetString("addr"),
		DSN:   v.GetString("dsn"),
		Debug: v.GetBool("debug"),
		Logging: LoggingConfig{
			Level:  v.GetString("log-level"),
			Format: v.GetString("log-format"),
		},
		Cookies: CookieConfig{
			Secure:   v.GetBool("secure-cookies"),
			HashKey:  hashKey,
			BlockKey: blockKey,
		},
		AdminPasswordHash: v.GetString("admin-password-hash"),
	}, nil
}

func decodeKey(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}

	return base64.StdEncoding.DecodeString(s)
}
