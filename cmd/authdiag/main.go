package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Sidd-007/authdiag/cmd/authdiag/internal/report"
	"github.com/Sidd-007/authdiag/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger := setupLogger(cfg)
	logger.Debug().
		Str("env_file", cfg.Report.EnvFile).
		Strs("variables", cfg.Variables()).
		Msg("Starting auth diagnostics")

	r := report.New(cfg.Report, os.LookupEnv, logger)
	if err := r.Run(os.Stdout); err != nil {
		logger.Fatal().Err(err).Msg("Diagnostics failed")
	}
}

// setupLogger logs to stderr so stdout carries only the report
func setupLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Observability.Logging.Level)
	if err != nil {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsPretty() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().
			Timestamp().
			Logger()
	}

	return zerolog.New(os.Stderr).With().
		Timestamp().
		Str("service", "authdiag").
		Logger()
}
