package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"oralscan/internal/baseline"
	"oralscan/internal/config"
)

func newBaselineCommand(ctx *commandContext) *cobra.Command {
	baselineCmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage per-user baseline recordings",
	}

	baselineCmd.AddCommand(newBaselineAddCommand(ctx))
	baselineCmd.AddCommand(newBaselineCoverageCommand(ctx))
	baselineCmd.AddCommand(newBaselineSessionsCommand(ctx))
	baselineCmd.AddCommand(newBaselineRepresentativeCommand(ctx))

	return baselineCmd
}

func newBaselineAddCommand(ctx *commandContext) *cobra.Command {
	var userFlag string
	var zoneFlag int

	cmd := &cobra.Command{
		Use:   "add <video>",
		Short: "Record a baseline session for one zone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := strings.TrimSpace(userFlag)
			if userID == "" {
				return fmt.Errorf("--user is required")
			}
			zone, err := baseline.ParseZone(zoneFlag)
			if err != nil {
				return err
			}

			videoPath, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			// Baseline writes are append-only; serialize them across
			// processes so concurrent recordings cannot interleave sessions.
			lock := flock.New(filepath.Join(cfg.Paths.LogDir, "baseline.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire baseline lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another baseline recording is in progress")
			}
			defer func() { _ = lock.Unlock() }()

			p, err := ctx.newPipeline()
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			bundle, err := p.RecordBaseline(cmd.Context(), store, videoPath, userID, zone)
			if err != nil {
				return err
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, bundle)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d frames for %s (%s)\n",
				bundle.TotalFrames, zone.DisplayName(), userID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userFlag, "user", "u", "", "User the baseline belongs to")
	cmd.Flags().IntVarP(&zoneFlag, "zone", "z", 0, "Mouth zone the recording covers (1-7)")
	return cmd
}

func newBaselineCoverageCommand(ctx *commandContext) *cobra.Command {
	var userFlag string

	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Show which zones have baseline frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := strings.TrimSpace(userFlag)
			if userID == "" {
				return fmt.Errorf("--user is required")
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			snapshot, err := store.LoadSnapshot(cmd.Context(), userID)
			if err != nil {
				return err
			}
			coverage := snapshot.Coverage()

			if ctx.jsonOutput() {
				byZone := make(map[string]bool, len(coverage))
				for zone, covered := range coverage {
					byZone[strconv.Itoa(int(zone))] = covered
				}
				return writeJSON(cmd, map[string]any{
					"user_id":  userID,
					"complete": snapshotComplete(coverage),
					"zones":    byZone,
				})
			}

			rows := make([][]string, 0, baseline.ZoneCount)
			for _, zone := range baseline.AllZones() {
				rows = append(rows, []string{
					strconv.Itoa(int(zone)),
					displayTag(zone.DisplayName()),
					yesNo(coverage[zone]),
					strconv.Itoa(len(snapshot.FramesForZone(zone))),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Zone", "Name", "Covered", "Frames"}, rows, 0, 3))
			fmt.Fprintf(out, "Baseline complete: %s\n", yesNo(snapshotComplete(coverage)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&userFlag, "user", "u", "", "User to report on")
	return cmd
}

func newBaselineSessionsCommand(ctx *commandContext) *cobra.Command {
	var userFlag string

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recorded baseline sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := strings.TrimSpace(userFlag)
			if userID == "" {
				return fmt.Errorf("--user is required")
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			sessions, err := store.Sessions(cmd.Context(), userID)
			if err != nil {
				return err
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, sessions)
			}

			rows := make([][]string, 0, len(sessions))
			for _, session := range sessions {
				rows = append(rows, []string{
					session.ID,
					displayTag(session.Zone.DisplayName()),
					session.CreatedAt.Local().Format(time.RFC3339),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Session", "Zone", "Recorded"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&userFlag, "user", "u", "", "User to report on")
	return cmd
}

func newBaselineRepresentativeCommand(ctx *commandContext) *cobra.Command {
	var userFlag string

	cmd := &cobra.Command{
		Use:   "representative",
		Short: "Show the stand-in reference frame for each covered zone",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := strings.TrimSpace(userFlag)
			if userID == "" {
				return fmt.Errorf("--user is required")
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

			reps, err := p.BuildRepresentativeBaseline(cmd.Context(), store, userID)
			if err != nil {
				return err
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, reps)
			}

			rows := make([][]string, 0, len(reps))
			for _, zone := range baseline.AllZones() {
				frame, ok := reps[zone]
				if !ok {
					continue
				}
				rows = append(rows, []string{
					displayTag(zone.DisplayName()),
					displayTag(string(frame.Tags.Region)),
					frame.ImagePath,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Zone", "Region", "Image"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&userFlag, "user", "u", "", "User to report on")
	return cmd
}

func snapshotComplete(coverage map[baseline.Zone]bool) bool {
	for _, zone := range baseline.AllZones() {
		if !coverage[zone] {
			return false
		}
	}
	return true
}
