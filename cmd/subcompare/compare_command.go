package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"subcompare/internal/compare"
	"subcompare/internal/library"
)

func newCompareCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "compare [movie...]",
		Short: "Compare translations against the reference track",
		Long: `Align every candidate subtitle file against the movie's reference track and
write CSV and JSON reports into the movie folder. Without arguments every
movie in the library is processed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			comparer := compare.New(cfg, logger, store)

			var results []*compare.Result
			if len(args) == 0 {
				results, err = comparer.CompareAll(cmd.Context())
				if err != nil {
					return err
				}
			} else {
				for _, movie := range args {
					movieDir := filepath.Join(cfg.Paths.DataDir, movie)
					if !library.IsMovieDir(movieDir) {
						return fmt.Errorf("movie folder not found: %s", movieDir)
					}
					result, err := comparer.CompareMovie(cmd.Context(), movieDir)
					if err != nil {
						return err
					}
					results = append(results, result)
				}
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No movies compared")
				return nil
			}

			rows := make([][]string, 0, len(results))
			for _, result := range results {
				var sum float64
				for _, v := range result.Coverage {
					sum += v
				}
				mean := sum / float64(len(result.Coverage))
				rows = append(rows, []string{
					shortID(result.RunID),
					result.Movie,
					fmt.Sprintf("%d", result.ReferenceCues),
					fmt.Sprintf("%d", len(result.Files)),
					fmt.Sprintf("%.0f%%", mean*100),
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Run", "Movie", "Cues", "Files", "Coverage"}, rows, 2, 3, 4))
			return nil
		},
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
