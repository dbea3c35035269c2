package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

const (
	defaultListenAddr     = ":8080"
	defaultBucket         = "vegetation-maps"
	defaultComputeBin     = "./runner"
	defaultComputeTimeout = 5 * time.Minute
	defaultFixtureDir     = "local_test_data"
	defaultOutputDir      = "local_outputs"
	defaultWorkDir        = "."

	envListenAddr     = "AGROVISION_LISTEN_ADDR"
	envLogLevel       = "AGROVISION_LOG_LEVEL"
	envBucket         = "AGROVISION_BUCKET"
	envComputeBin     = "AGROVISION_COMPUTE_BIN"
	envComputeTimeout = "AGROVISION_COMPUTE_TIMEOUT"
	envFixtureDir     = "AGROVISION_FIXTURE_DIR"
	envOutputDir      = "AGROVISION_OUTPUT_DIR"
	envWorkDir        = "AGROVISION_WORK_DIR"
	envSupabaseURL    = "SUPABASE_URL"
	envSupabaseKey    = "SUPABASE_SERVICE_KEY"
	envAPIKey         = "SERVER_API_KEY"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	ListenAddr string
	LogLevel   slog.Level

	// Remote storage credentials and bucket.
	SupabaseURL string
	SupabaseKey string
	Bucket      string

	// Shared secret expected in the X-API-Key header.
	APIKey string

	// External computation binary and the cap on a single invocation.
	ComputeBin     string
	ComputeTimeout time.Duration

	// Filesystem layout: local fixtures, local results, workspace base.
	FixtureDir string
	OutputDir  string
	WorkDir    string
}

// Load reads configuration from environment variables with sensible defaults.
// Required secrets are checked separately via Validate so loading never fails.
func Load() Config {
	cfg := Config{
		ListenAddr:     defaultListenAddr,
		LogLevel:       slog.LevelInfo,
		SupabaseURL:    os.Getenv(envSupabaseURL),
		SupabaseKey:    os.Getenv(envSupabaseKey),
		Bucket:         defaultBucket,
		APIKey:         os.Getenv(envAPIKey),
		ComputeBin:     defaultComputeBin,
		ComputeTimeout: defaultComputeTimeout,
		FixtureDir:     defaultFixtureDir,
		OutputDir:      defaultOutputDir,
		WorkDir:        defaultWorkDir,
	}

	if v := os.Getenv(envListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = parseLogLevel(v)
	}
	if v := os.Getenv(envBucket); v != "" {
		cfg.Bucket = v
	}
	if v := os.Getenv(envComputeBin); v != "" {
		cfg.ComputeBin = v
	}
	if v := os.Getenv(envComputeTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ComputeTimeout = d
		}
	}
	if v := os.Getenv(envFixtureDir); v != "" {
		cfg.FixtureDir = v
	}
	if v := os.Getenv(envOutputDir); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv(envWorkDir); v != "" {
		cfg.WorkDir = v
	}

	return cfg
}

// Validate checks that the secrets required for remote operation are set.
// The process refuses to start without them so a misconfigured deployment
// fails at startup instead of on the first remote job.
func (c Config) Validate() error {
	var missing []string
	if c.SupabaseURL == "" {
		missing = append(missing, envSupabaseURL)
	}
	if c.SupabaseKey == "" {
		missing = append(missing, envSupabaseKey)
	}
	if c.APIKey == "" {
		missing = append(missing, envAPIKey)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a structured JSON logger writing to w at the configured level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
