// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/overlay-extract/internal/history"
	"github.com/pdiddy/overlay-extract/internal/logging"
	"github.com/pdiddy/overlay-extract/internal/pipeline"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded runs, or the misses of one run",
	Long: `History reads the run ledger kept in the history database. Without
arguments it lists recent runs, newest first. With a run id it lists the
references that run could not resolve.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.Open(settings.History.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	ctx := cmd.Context()

	if len(args) == 1 {
		misses, err := store.Misses(ctx, args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(misses)
		}
		for _, m := range misses {
			fmt.Fprintln(os.Stdout, m)
		}
		fmt.Fprintf(os.Stdout, "\n%d unmatched\n", len(misses))
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Runs(ctx, limit)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(runs)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-22s  %7s  %6s  %6s\n",
		"Run", "Created", "Interface", "Entries", "Items", "Misses")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))
	for _, r := range runs {
		spec := r.Spec
		if len(spec) > 22 {
			spec = spec[:19] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-22s  %7d  %6d  %6d\n",
			r.ID, r.Created.Local().Format("2006-01-02 15:04:05"), spec, r.Entries, r.Items, r.Misses)
	}
	return nil
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// recordRun adds rep to the history database when history is enabled. The
// artifacts are already written, so a ledger failure is only logged.
func recordRun(ctx context.Context, rep *pipeline.Report) {
	if !settings.History.Enabled {
		return
	}
	log := logging.Component(ctx, "history")

	store, err := history.Open(settings.History.DB)
	if err != nil {
		log.Warn().Err(err).Msg("history unavailable")
		return
	}
	defer store.Close()

	if err := store.Record(ctx, rep.Manifest, rep.Overlay.Diagnostics, outputDir()); err != nil {
		log.Warn().Err(err).Str("run_id", rep.RunID).Msg("recording run failed")
		return
	}
	log.Debug().Str("run_id", rep.RunID).Str("db", settings.History.DB).Msg("run recorded")
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}
