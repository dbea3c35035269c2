package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/Swayam-a/agrovision-backend/internal/api"
	"github.com/Swayam-a/agrovision-backend/internal/compute"
	"github.com/Swayam-a/agrovision-backend/internal/config"
	"github.com/Swayam-a/agrovision-backend/internal/pipeline"
	"github.com/Swayam-a/agrovision-backend/internal/storage"
)

func main() {
	// Load .env file if present; real environment variables take precedence.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := config.NewLogger(os.Stdout, cfg.LogLevel)

	logger.Info("agrovision: starting",
		"listen_addr", cfg.ListenAddr,
		"bucket", cfg.Bucket,
		"compute_bin", cfg.ComputeBin,
		"compute_timeout", cfg.ComputeTimeout.String(),
	)

	store := storage.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey, cfg.Bucket)
	invoker := compute.NewInvoker(cfg.ComputeBin, ".", cfg.ComputeTimeout, logger)
	runner := pipeline.NewRunner(pipeline.NewWorkspaces(cfg.WorkDir), invoker, logger)

	srv := api.NewServer(cfg, runner, store, logger)
	if err := srv.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
