package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"subcompare/internal/catalog"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded comparison runs",
	}

	runsCmd.AddCommand(newRunsListCommand(ctx))
	runsCmd.AddCommand(newRunsShowCommand(ctx))

	return runsCmd
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var movie string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List comparison runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			var runs []*catalog.Run
			if movie != "" {
				runs, err = store.ListByMovie(cmd.Context(), movie)
			} else {
				runs, err = store.List(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, runListPayload(runs))
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortID(run.ID),
					run.Movie,
					fmt.Sprintf("%d", run.ReferenceCues),
					fmt.Sprintf("%d", run.CandidateFiles),
					fmt.Sprintf("%.0f%%", run.MeanCoverage*100),
					run.StartedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Run", "Movie", "Cues", "Files", "Coverage", "Started"}, rows, 2, 3, 4))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum runs to list (0 for all)")
	cmd.Flags().StringVarP(&movie, "movie", "m", "", "Only list runs for one movie")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one comparison run (id prefixes accepted)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, runPayload(run))
			}

			coverage, err := run.Coverage()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run:       %s\n", run.ID)
			fmt.Fprintf(out, "Movie:     %s\n", run.Movie)
			fmt.Fprintf(out, "Cues:      %d\n", run.ReferenceCues)
			fmt.Fprintf(out, "Files:     %d\n", run.CandidateFiles)
			fmt.Fprintf(out, "Coverage:  %.0f%%\n", run.MeanCoverage*100)
			fmt.Fprintf(out, "Started:   %s\n", run.StartedAt.Local().Format(time.RFC3339))
			fmt.Fprintf(out, "Duration:  %s\n", run.Duration().Round(time.Millisecond))
			fmt.Fprintf(out, "CSV:       %s\n", run.CSVPath)
			fmt.Fprintf(out, "JSON:      %s\n", run.JSONPath)

			if len(coverage) > 0 {
				keys := make([]string, 0, len(coverage))
				for key := range coverage {
					keys = append(keys, key)
				}
				sort.Strings(keys)
				fmt.Fprintln(out, "Per-file coverage:")
				for _, key := range keys {
					fmt.Fprintf(out, "  %-24s %.0f%%\n", key, coverage[key]*100)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of text")
	return cmd
}

type runView struct {
	ID             string             `json:"id"`
	Movie          string             `json:"movie"`
	ReferenceCues  int                `json:"reference_cues"`
	CandidateFiles int                `json:"candidate_files"`
	MeanCoverage   float64            `json:"mean_coverage"`
	Coverage       map[string]float64 `json:"coverage,omitempty"`
	CSVPath        string             `json:"csv_path"`
	JSONPath       string             `json:"json_path"`
	StartedAt      string             `json:"started_at"`
	FinishedAt     string             `json:"finished_at"`
}

func runPayload(run *catalog.Run) runView {
	coverage, _ := run.Coverage()
	return runView{
		ID:             run.ID,
		Movie:          run.Movie,
		ReferenceCues:  run.ReferenceCues,
		CandidateFiles: run.CandidateFiles,
		MeanCoverage:   run.MeanCoverage,
		Coverage:       coverage,
		CSVPath:        run.CSVPath,
		JSONPath:       run.JSONPath,
		StartedAt:      run.StartedAt.UTC().Format(time.RFC3339),
		FinishedAt:     run.FinishedAt.UTC().Format(time.RFC3339),
	}
}

func runListPayload(runs []*catalog.Run) []runView {
	views := make([]runView, 0, len(runs))
	for _, run := range runs {
		views = append(views, runPayload(run))
	}
	return views
}
