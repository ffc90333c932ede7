// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

// DefaultMaxBodyBytes caps request bodies at 1 MiB; larger payloads get 413.
const DefaultMaxBodyBytes = 1 << 20

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	TokenSecret  string
	TokenIssuer  string
	MaxBodyBytes int64
}

// ParseFlags validates flags and fills in configuration from the
// environment where flags are absent.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("pollboard", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.Int64Var(&cfg.MaxBodyBytes, "max-body", 0, "Maximum request body size in bytes")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.TokenSecret, "token-secret", "", "Access token signing secret (prefer env)")
	fs.StringVar(&cfg.TokenIssuer, "token-issuer", "", "Expected token issuer (optional)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}

	if cfg.MaxBodyBytes == 0 {
		if sizeStr := os.Getenv("MAX_BODY_BYTES"); sizeStr != "" {
			size, err := strconv.ParseInt(sizeStr, 10, 64)
			if err != nil {
				return Config{}, errors.New("invalid MAX_BODY_BYTES env variable")
			}
			cfg.MaxBodyBytes = size
		} else {
			cfg.MaxBodyBytes = DefaultMaxBodyBytes
		}
	}

	// Secrets - token secret MUST be provided
	if cfg.TokenSecret == "" {
		cfg.TokenSecret = os.Getenv("TOKEN_SECRET")
	}
	if cfg.TokenSecret == "" {
		return Config{}, errors.New("TOKEN_SECRET required")
	}

	if cfg.TokenIssuer == "" {
		cfg.TokenIssuer = os.Getenv("TOKEN_ISSUER")
	}

	return cfg, nil
}
