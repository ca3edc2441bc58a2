package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/quickly-vote/models"
)

// Defaults
const (
	DefaultPort              = 3318
	DefaultDatabaseType      = "sqlite"
	DefaultDatabaseURL       = "file:quickly-vote.db"
	DefaultRetryAfterSeconds = 50
	DefaultRateLimitMax      = 100
	DefaultRateLimitWindow   = 15 * time.Minute
	DefaultRateLimitCapacity = 10000
)

// Local frontends are always allowed
var defaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3001",
}

type Config struct {
	Port                  int
	DatabaseURL           string
	DatabaseType          string
	ConfirmationThreshold int
	RetryAfter            time.Duration
	RateLimitMax          int
	RateLimitWindow       time.Duration
	RateLimitCapacity     int
	CORSOrigins           []string
	TrustProxy            bool
	IdentitySalt          string
}

// ParseFlags validates flags and fills the rest from the environment.
// A .env file in the working directory is loaded first if present; it never
// overrides variables that are already set.
func ParseFlags(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	var retryAfterSeconds int

	fs := flag.NewFlagSet("quickly-vote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres or memory)")

	// Core behavior
	fs.IntVar(&cfg.ConfirmationThreshold, "threshold", 0, "Confirmations needed to confirm an event")
	fs.IntVar(&retryAfterSeconds, "retry-after", 0, "Seconds clients should wait after a transient failure")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", false, "Read client IPs from X-Forwarded-For/X-Real-IP")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.IdentitySalt, "identity-salt", "", "Identity hashing salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	var err error
	if cfg.Port == 0 {
		if cfg.Port, err = envInt("PORT", DefaultPort); err != nil {
			return Config{}, err
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DefaultDatabaseType
		}
	}
	switch cfg.DatabaseType {
	case "sqlite", "postgres", "memory":
	default:
		return Config{}, fmt.Errorf("unsupported DATABASE_TYPE %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		switch cfg.DatabaseType {
		case "sqlite":
			cfg.DatabaseURL = DefaultDatabaseURL
		case "postgres":
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	}

	if cfg.ConfirmationThreshold == 0 {
		if cfg.ConfirmationThreshold, err = envInt("CONFIRMATION_THRESHOLD", models.DefaultConfirmationThreshold); err != nil {
			return Config{}, err
		}
	}
	if cfg.ConfirmationThreshold < 1 {
		return Config{}, errors.New("confirmation threshold must be at least 1")
	}

	if retryAfterSeconds == 0 {
		if retryAfterSeconds, err = envInt("RETRY_AFTER_SECONDS", DefaultRetryAfterSeconds); err != nil {
			return Config{}, err
		}
	}
	if retryAfterSeconds < 1 {
		return Config{}, errors.New("retry-after must be at least 1 second")
	}
	cfg.RetryAfter = time.Duration(retryAfterSeconds) * time.Second

	// Rate limiting (env only)
	if cfg.RateLimitMax, err = envInt("RATE_LIMIT_MAX", DefaultRateLimitMax); err != nil {
		return Config{}, err
	}
	windowMS, err := envInt("RATE_LIMIT_WINDOW_MS", int(DefaultRateLimitWindow/time.Millisecond))
	if err != nil {
		return Config{}, err
	}
	cfg.RateLimitWindow = time.Duration(windowMS) * time.Millisecond
	if cfg.RateLimitCapacity, err = envInt("RATE_LIMIT_CAPACITY", DefaultRateLimitCapacity); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitMax < 1 || cfg.RateLimitWindow <= 0 || cfg.RateLimitCapacity < 1 {
		return Config{}, errors.New("rate limit settings must be positive")
	}

	cfg.CORSOrigins = append([]string{}, defaultCORSOrigins...)
	for _, origin := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	// Forwarding headers are client-controlled unless a proxy overwrites them
	if !cfg.TrustProxy {
		if raw := os.Getenv("TRUST_PROXY"); raw != "" {
			if cfg.TrustProxy, err = strconv.ParseBool(raw); err != nil {
				return Config{}, errors.New("invalid TRUST_PROXY env variable")
			}
		}
	}

	// Secrets - MUST be provided
	if cfg.IdentitySalt == "" {
		cfg.IdentitySalt = os.Getenv("IDENTITY_SALT")
	}
	if cfg.IdentitySalt == "" {
		return Config{}, errors.New("IDENTITY_SALT required")
	}

	return cfg, nil
}

func envInt(name string, def int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", name)
	}
	return n, nil
}
