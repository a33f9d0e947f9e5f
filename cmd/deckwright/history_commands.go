package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"deckwright/internal/history"
)

const shortIDLength = 8

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded pipeline runs",
	}
	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryRemoveCommand(ctx))
	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var (
		limit      int
		statusArgs []string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := parseStatuses(statusArgs)
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *history.Store) error {
				runs, err := store.List(cmd.Context(), limit, statuses...)
				if err != nil {
					return err
				}
				if jsonOutput {
					if runs == nil {
						runs = []*history.Run{}
					}
					return writeJSON(cmd, runs)
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No runs recorded")
					return nil
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Topic", "Status", "Progress", "Slides", "Started", "Elapsed"},
					runRows(runs, time.Now()),
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().StringSliceVarP(&statusArgs, "status", "s", nil, "Only show runs with these statuses")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print runs as JSON")
	return cmd
}

func parseStatuses(values []string) ([]history.Status, error) {
	statuses := make([]history.Status, 0, len(values))
	for _, value := range values {
		status, ok := history.ParseStatus(value)
		if !ok {
			valid := make([]string, 0, len(history.AllStatuses()))
			for _, s := range history.AllStatuses() {
				valid = append(valid, string(s))
			}
			return nil, fmt.Errorf("unknown status %q (valid: %s)", value, strings.Join(valid, ", "))
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func runRows(runs []*history.Run, now time.Time) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		progress := run.ProgressLabel
		if progress == "" {
			progress = "-"
		}
		rows = append(rows, []string{
			shortID(run.ID),
			truncate(run.Topic, 40),
			string(run.Status),
			fmt.Sprintf("%s (%d%%)", progress, run.ProgressPercent),
			strconv.Itoa(run.SlideCount),
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
			run.Elapsed(now).Round(time.Second).String(),
		})
	}
	return rows
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one run by id or unique id prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *history.Store) error {
				run, err := store.FindByPrefix(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if run == nil {
					return fmt.Errorf("run %q not found", args[0])
				}
				if jsonOutput {
					return writeJSON(cmd, run)
				}
				writeRunDetails(cmd.OutOrStdout(), run, time.Now())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run as JSON")
	return cmd
}

func writeRunDetails(out io.Writer, run *history.Run, now time.Time) {
	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(out, "%-10s %s\n", label+":", value)
		}
	}
	field("ID", run.ID)
	field("Topic", run.Topic)
	field("Audience", run.Audience)
	field("Language", run.Language)
	field("Duration", fmt.Sprintf("%d min", run.DurationMinutes))
	field("Theme", run.Theme)
	field("Status", string(run.Status))
	field("Stage", run.Stage)
	field("Progress", fmt.Sprintf("%s (%d%%)", run.ProgressLabel, run.ProgressPercent))
	field("Deck", run.DeckPath)
	field("Script", run.ScriptPath)
	field("Plan", run.PlanPath)
	if run.Status == history.StatusCompleted {
		field("Slides", fmt.Sprintf("%d (%d with images)", run.SlideCount, run.ImagesIncluded))
		field("Review", fmt.Sprintf("%d/10", run.ReviewScore))
	}
	field("Error", run.ErrorMessage)
	field("Started", run.CreatedAt.Local().Format(time.RFC3339))
	field("Elapsed", run.Elapsed(now).Round(time.Second).String())
}

func newHistoryRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a run record (generated files are kept)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *history.Store) error {
				run, err := store.FindByPrefix(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if run == nil {
					return fmt.Errorf("run %q not found", args[0])
				}
				removed, err := store.Remove(cmd.Context(), run.ID)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("run %q not found", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed run %s\n", shortID(run.ID))
				return nil
			})
		},
	}
}

func shortID(id string) string {
	if len(id) > shortIDLength {
		return id[:shortIDLength]
	}
	return id
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-1]) + "…"
}
