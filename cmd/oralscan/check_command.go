package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"oralscan/internal/config"
	"oralscan/internal/evidence"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var userFlag string
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "check <video>",
		Short: "Run a quick check: extract, match against baseline, assemble evidence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := strings.TrimSpace(userFlag)
			if userID == "" {
				return fmt.Errorf("--user is required")
			}

			videoPath, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			p, err := ctx.newPipeline()
			if err != nil {
				return err
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			bundle, err := p.QuickCheck(cmd.Context(), store, videoPath, userID)
			if err != nil {
				return err
			}

			if outputFlag != "" {
				target, err := config.ExpandPath(outputFlag)
				if err != nil {
					return err
				}
				raw, err := bundle.JSON()
				if err != nil {
					return err
				}
				if err := os.WriteFile(target, raw, 0o644); err != nil {
					return fmt.Errorf("write evidence bundle: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote evidence bundle to %s\n", target)
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, bundle)
			}

			printBundleSummary(cmd, bundle)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userFlag, "user", "u", "", "User whose baseline to compare against")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the full evidence bundle JSON to this path")
	return cmd
}

func printBundleSummary(cmd *cobra.Command, bundle *evidence.Bundle) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session %s: %d keyframes\n", bundle.SessionID, bundle.TotalFrames)

	if bundle.Baseline != nil {
		fmt.Fprintf(out, "Baseline: %s, comparison mode %s\n",
			yesNo(bundle.Baseline.HasBaseline), bundle.Baseline.ComparisonMode)
	}

	rows := make([][]string, 0, len(bundle.Frames))
	matchByFrame := make(map[string]evidence.MatchRecord)
	if bundle.Baseline != nil {
		for _, match := range bundle.Baseline.Matches {
			matchByFrame[match.FrameID] = match
		}
	}
	for _, frame := range bundle.Frames {
		matched := "-"
		if match, ok := matchByFrame[frame.FrameID]; ok {
			matched = fmt.Sprintf("%s (%s)", displayTag(match.ZoneName), formatScore(match.MatchScore))
		}
		rows = append(rows, []string{
			frame.Timestamp,
			displayTag(string(frame.MetaTags.Region)),
			displayIssues(frame.MetaTags.Issues),
			formatScore(frame.AnomalyScore),
			matched,
		})
	}
	fmt.Fprintln(out, renderTable([]string{"Time", "Region", "Issues", "Anomaly", "Baseline Match"}, rows, 3))
}
