package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

func newFeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "feed",
		Short: "Regenerate the RSS feed from the post list",
		Long: "feed rewrites the RSS 2.0 feed from the post metadata list. The previous feed is\n" +
			"kept when the post list cannot be read or the new document fails verification.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := envFrom(cmd)

			comps, err := newComponents(env.cfg, env.logger)
			if err != nil {
				return err
			}

			report, err := comps.feedBuilder(env.cfg, env.logger).Run(cmd.Context(), time.Now())
			if err != nil {
				env.logger.Error("feed build failed", slog.Any("error", err))
				fmt.Fprintf(cmd.OutOrStdout(), "feed: build aborted: %v\n", err)

				return fmt.Errorf("feed: %w", errIncomplete)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "feed: %d items written to %s\n", report.Items, report.Path)

			return nil
		},
	}
}
