package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subcompare/internal/library"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Normalize the library layout",
		Long: `Scan the library and bring every movie folder into the canonical layout:
rename the loose subtitle file to the reference name, rename legacy candidate
folders, move downloaded zips into the archive folder, and flatten nested
candidate folders.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			organizer := library.NewOrganizer(cfg, logger)
			plan, err := organizer.Plan(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if plan.Empty() && len(plan.Notes) == 0 {
				fmt.Fprintln(out, "Library already organized")
				return nil
			}

			if !plan.Empty() {
				rows := make([][]string, 0, len(plan.Actions))
				for _, action := range plan.Actions {
					rows = append(rows, []string{
						string(action.Kind),
						action.Movie,
						action.Source,
						action.Target,
					})
				}
				fmt.Fprintln(out, renderTable([]string{"Action", "Movie", "Source", "Target"}, rows))
			}
			for _, note := range plan.Notes {
				fmt.Fprintf(out, "note: %s\n", note)
			}

			if dryRun {
				fmt.Fprintf(out, "Dry run: %d action(s) not applied\n", len(plan.Actions))
				return nil
			}

			result, err := organizer.Apply(cmd.Context(), plan)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Applied %d action(s)", result.Applied)
			if result.Failed > 0 {
				fmt.Fprintf(out, ", %d failed", result.Failed)
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show the plan without applying it")
	return cmd
}
