package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"deckwright/internal/notifications"
	"deckwright/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var offline bool
	var notify bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check directories, credentials, and backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			results := preflight.RunAll(cmd.Context(), cfg, preflight.Options{SkipRemote: offline})
			for _, line := range preflightLines(results, colorize) {
				fmt.Fprintln(out, line)
			}

			if notify {
				fmt.Fprintln(out)
				svc := notifications.NewService(cfg)
				if !notifications.Enabled(svc) {
					fmt.Fprintln(out, renderStatusLine("Notifications", statusWarn, "ntfy topic not configured", colorize))
				} else if err := svc.TestNotification(cmd.Context()); err != nil {
					fmt.Fprintln(out, renderStatusLine("Notifications", statusError, err.Error(), colorize))
					return fmt.Errorf("send test notification: %w", err)
				} else {
					fmt.Fprintln(out, renderStatusLine("Notifications", statusOK, "test notification sent", colorize))
				}
			}

			return preflight.Err(results)
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Skip checks that contact remote services")
	cmd.Flags().BoolVar(&notify, "notify", false, "Send a test notification")
	return cmd
}

func preflightLines(results []preflight.Result, colorize bool) []string {
	lines := renderSectionHeader("Preflight", colorize)
	failed := preflight.Failed(results)
	summary := fmt.Sprintf("%d/%d checks passed", len(results)-len(failed), len(results))
	summaryKind := statusOK
	if len(failed) > 0 {
		summaryKind = statusError
	}
	lines = append(lines, renderStatusLine("Summary", summaryKind, summary, colorize))
	for _, r := range results {
		kind := statusOK
		if !r.Passed {
			kind = statusError
		}
		lines = append(lines, renderStatusLine(r.Name, kind, r.Detail, colorize))
	}
	return lines
}
