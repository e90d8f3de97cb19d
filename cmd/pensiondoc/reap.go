package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pensiondoc/internal/service"
)

func newReapCmd() *cobra.Command {
	var maxAge time.Duration

	cmd := &cobra.Command{
		Use:   "reap",
		Short: "Delete uploaded documents left behind at the provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup()
			if err != nil {
				return err
			}
			if maxAge <= 0 {
				maxAge = env.cfg.Reaper.MaxAge
			}
			if window := env.cfg.Analyzer.InFlightWindow(); maxAge <= window {
				return fmt.Errorf("--max-age %s must exceed %s so in-flight documents are kept", maxAge, window)
			}

			reaper := service.NewArtifactReaper(env.backend, service.ArtifactReaperConfig{
				MaxAge:      maxAge,
				Concurrency: env.cfg.Reaper.Concurrency,
			})
			deleted, err := reaper.RunOnce(env.logger.WithContext(cmd.Context()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d artifacts\n", deleted)
			return nil
		},
	}

	cmd.Flags().DurationVar(&maxAge, "max-age", 0, "minimum artifact age to delete (default from PENSIONDOC_REAPER_MAX_AGE)")
	return cmd
}
