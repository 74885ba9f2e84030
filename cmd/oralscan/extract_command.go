package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"oralscan/internal/config"
	"oralscan/internal/evidence"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var sessionFlag string

	cmd := &cobra.Command{
		Use:   "extract <video>",
		Short: "Extract semantically tagged keyframes from a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoPath, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			sessionID := strings.TrimSpace(sessionFlag)
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			p, err := ctx.newPipeline()
			if err != nil {
				return err
			}

			keyframes, err := p.ExtractKeyframes(cmd.Context(), videoPath, sessionID)
			if err != nil {
				return err
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, map[string]any{
					"session_id": sessionID,
					"keyframes":  keyframes,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Session %s: %d keyframes\n", sessionID, len(keyframes))
			fmt.Fprintln(out, renderKeyframeTable(keyframes))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionFlag, "session", "", "Session identifier (random when omitted)")
	return cmd
}

func renderKeyframeTable(keyframes []evidence.Keyframe) string {
	rows := make([][]string, 0, len(keyframes))
	for _, kf := range keyframes {
		rows = append(rows, []string{
			kf.Timestamp,
			displayTag(kf.Strategy),
			displayTag(string(kf.Tags.Side)),
			displayTag(string(kf.Tags.ToothType)),
			displayTag(string(kf.Tags.Region)),
			displayIssues(kf.Tags.Issues),
			formatScore(kf.AnomalyScore),
			formatScore(kf.Tags.Confidence),
		})
	}
	return renderTable(
		[]string{"Time", "Strategy", "Side", "Type", "Region", "Issues", "Anomaly", "Confidence"},
		rows, 6, 7)
}
