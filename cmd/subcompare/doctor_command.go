package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"subcompare/internal/library"
	"subcompare/internal/subtitle"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the library and configuration for problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			problems := 0

			fmt.Fprintln(out, "Directories")
			for _, check := range []library.Check{
				library.CheckDirectoryAccess("data directory", cfg.Paths.DataDir),
				library.CheckDirectoryAccess("log directory", cfg.Paths.LogDir),
			} {
				kind := statusOK
				if !check.Passed {
					kind = statusError
					problems++
				}
				fmt.Fprintln(out, renderStatusLine(check.Name, kind, check.Detail, colorize))
			}

			if store, err := ctx.openStore(); err != nil {
				problems++
				fmt.Fprintln(out, renderStatusLine("run catalog", statusError, err.Error(), colorize))
			} else {
				fmt.Fprintln(out, renderStatusLine("run catalog", statusOK, store.Path(), colorize))
				store.Close()
			}

			movies, err := library.Movies(cfg.Paths.DataDir)
			if err != nil {
				return err
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Movies")
			if len(movies) == 0 {
				fmt.Fprintln(out, renderStatusLine("library", statusWarn, "no movie folders found", colorize))
			}
			for _, movieDir := range movies {
				movie := filepath.Base(movieDir)
				issues := library.MovieIssues(cfg, movieDir)

				reference := filepath.Join(movieDir, cfg.Comparison.ReferenceName)
				if library.IsMovieDir(movieDir) {
					if fileIssues := subtitle.ValidateFile(reference); len(fileIssues) > 0 {
						// A missing reference is already reported by MovieIssues.
						if !strings.HasPrefix(fileIssues[0], "read_error") || len(issues) == 0 {
							issues = append(issues, fileIssues...)
						}
					}
				}

				if len(issues) == 0 {
					fmt.Fprintln(out, renderStatusLine(movie, statusOK, "", colorize))
					continue
				}
				problems++
				fmt.Fprintln(out, renderStatusLine(movie, statusWarn, strings.Join(issues, "; "), colorize))
			}

			fmt.Fprintln(out)
			if problems > 0 {
				fmt.Fprintf(out, "%d problem(s) found\n", problems)
				return nil
			}
			fmt.Fprintln(out, "No problems found")
			return nil
		},
	}
}
