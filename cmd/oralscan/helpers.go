package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"oralscan/internal/semantics"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var titleCaser = cases.Title(language.Und)

// displayTag renders a stored tag value for table output: underscores become
// spaces and words are title-cased, so "dark_deposit" reads "Dark Deposit".
func displayTag(raw string) string {
	return titleCaser.String(strings.ReplaceAll(raw, "_", " "))
}

func displayIssues(issues []semantics.Issue) string {
	if len(issues) == 0 {
		return displayTag(string(semantics.IssueNone))
	}
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		parts = append(parts, displayTag(string(issue)))
	}
	return strings.Join(parts, ", ")
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
