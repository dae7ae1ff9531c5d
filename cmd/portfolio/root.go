package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nishantarora/portfolio/internal/platform/config"
	"github.com/nishantarora/portfolio/internal/platform/logging"
	"github.com/nishantarora/portfolio/internal/platform/telemetry"
)

// errIncomplete marks a run that wrote some output but not all of it.
// Details have already been logged.
var errIncomplete = errors.New("output incomplete")

// runtimeEnv is what every command gets once configuration is loaded.
type runtimeEnv struct {
	cfg    *config.Config
	logger *slog.Logger
}

type envKey struct{}

// cliState holds what outlives a single command: the telemetry provider
// is flushed after the command returns, whether or not it failed.
type cliState struct {
	telemetry *telemetry.Provider
}

func (s *cliState) shutdown(ctx context.Context) {
	if s.telemetry == nil {
		return
	}

	if err := s.telemetry.Shutdown(ctx); err != nil {
		slog.Default().Error("telemetry shutdown error", slog.Any("error", err))
	}
}

func newRootCmd(state *cliState) *cobra.Command {
	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Build and preview the portfolio site",
		Long:          "portfolio writes a shell page for every post and project, regenerates the RSS feed,\nand serves the result with a JSON content API for local preview.",
		Version:       fmt.Sprintf("%s (%s, built %s)", Version, Commit, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadEnv()
			if err != nil {
				return err
			}

			state.telemetry, err = telemetry.New(cmd.Context(), &telemetry.Config{
				Enabled:      env.cfg.Telemetry.Enabled,
				Endpoint:     env.cfg.Telemetry.Endpoint,
				ServiceName:  env.cfg.Telemetry.ServiceName,
				Version:      env.cfg.App.Version,
				Environment:  env.cfg.App.Environment,
				SamplingRate: env.cfg.Telemetry.SamplingRate,
			})
			if err != nil {
				return fmt.Errorf("initializing telemetry: %w", err)
			}

			cmd.SetContext(context.WithValue(cmd.Context(), envKey{}, env))

			return nil
		},
	}

	root.AddCommand(newBuildCmd(), newFeedCmd(), newServeCmd())

	return root
}

// execute runs the CLI and returns the process exit code.
func execute(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state := &cliState{}
	defer state.shutdown(context.WithoutCancel(ctx))

	root := newRootCmd(state)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errIncomplete) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}

		return 1
	}

	return 0
}

// loadEnv loads and validates configuration for the APP_ENVIRONMENT
// profile and builds the process logger.
func loadEnv() (*runtimeEnv, error) {
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	slog.SetDefault(logger)

	return &runtimeEnv{cfg: cfg, logger: logger}, nil
}

func envFrom(cmd *cobra.Command) *runtimeEnv {
	env, ok := cmd.Context().Value(envKey{}).(*runtimeEnv)
	if !ok {
		panic("portfolio: command ran without a loaded environment")
	}

	return env
}
