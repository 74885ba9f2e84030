package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gocv.io/x/gocv"

	"oralscan/internal/config"
)

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <image>",
		Short: "Classify a single frame image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imagePath, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			frame := gocv.IMRead(imagePath, gocv.IMReadColor)
			defer frame.Close()
			if frame.Empty() {
				return fmt.Errorf("cannot decode image %s", imagePath)
			}

			p, err := ctx.newPipeline()
			if err != nil {
				return err
			}
			tags := p.Classify(frame)

			if ctx.jsonOutput() {
				return writeJSON(cmd, tags)
			}

			rows := [][]string{
				{"Side", displayTag(string(tags.Side))},
				{"Tooth type", displayTag(string(tags.ToothType))},
				{"Region", displayTag(string(tags.Region))},
				{"Issues", displayIssues(tags.Issues)},
				{"Confidence", formatScore(tags.Confidence)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows))
			return nil
		},
	}
}
