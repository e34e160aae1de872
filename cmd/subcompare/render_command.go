package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"subcompare/internal/library"
	"subcompare/internal/report"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "render [movie...]",
		Short: "Render HTML dashboards from comparison reports",
		Long: `Turn comparison JSON reports into standalone HTML dashboards. Without
arguments every movie with a report gets a dashboard.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if len(args) == 0 {
				renderer := report.NewRenderer(cfg, logger)
				written, err := renderer.RenderAll(cmd.Context())
				if err != nil {
					return err
				}
				if len(written) == 0 {
					fmt.Fprintln(out, "No comparison reports found; run `subcompare compare` first")
					return nil
				}
				for _, path := range written {
					fmt.Fprintln(out, path)
				}
				return nil
			}

			for _, movie := range args {
				movieDir := filepath.Join(cfg.Paths.DataDir, movie)
				if !library.IsMovieDir(movieDir) {
					return fmt.Errorf("movie folder not found: %s", movieDir)
				}
				jsonPath := filepath.Join(movieDir, movie+cfg.Comparison.OutputSuffix+".json")
				outPath := strings.TrimSuffix(jsonPath, ".json") + ".html"
				if err := report.RenderFile(jsonPath, outPath); err != nil {
					return err
				}
				fmt.Fprintln(out, outPath)
			}
			return nil
		},
	}
}
