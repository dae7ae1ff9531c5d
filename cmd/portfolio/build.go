package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nishantarora/portfolio/internal/app"
	"github.com/nishantarora/portfolio/internal/domain"
)

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Write a shell page for every post and project",
		Long: "build writes {section}/{id}/index.html for every record in the post and project\n" +
			"metadata lists and removes generated pages whose record is gone. It exits non-zero\n" +
			"when a metadata list is unusable or any record could not be written.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := envFrom(cmd)

			comps, err := newComponents(env.cfg, env.logger)
			if err != nil {
				return err
			}

			builder, err := comps.pageBuilder(env.cfg, env.logger)
			if err != nil {
				return err
			}

			return runBuild(cmd, builder, cmd.OutOrStdout(), env.logger)
		},
	}
}

// runBuild builds every kind. A fatal error for one kind does not stop
// the other.
func runBuild(cmd *cobra.Command, builder *app.PageBuilder, out io.Writer, logger *slog.Logger) error {
	failed := false

	for _, kind := range domain.Kinds {
		report, err := builder.Build(cmd.Context(), kind)
		if report != nil {
			fmt.Fprintf(out, "%s: %d of %d pages written", kind.Section(), report.Succeeded, report.Total)

			if len(report.Removed) > 0 {
				fmt.Fprintf(out, ", %d removed", len(report.Removed))
			}

			fmt.Fprintln(out)
		}

		if err == nil {
			continue
		}

		failed = true

		if domain.IsBuildFatal(err) {
			fmt.Fprintf(out, "%s: build aborted: %v\n", kind.Section(), err)
		}

		logger.Error("page build failed",
			slog.String("kind", string(kind)),
			slog.Bool("fatal", domain.IsBuildFatal(err)),
			slog.Any("error", err),
		)
	}

	if failed {
		return fmt.Errorf("build: %w", errIncomplete)
	}

	return nil
}
