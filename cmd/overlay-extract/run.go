// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/overlay-extract/internal/output"
	"github.com/pdiddy/overlay-extract/internal/pipeline"
	"github.com/pdiddy/overlay-extract/pkg/types"
)

// --- run subcommand ---

var runCmd = &cobra.Command{
	Use:   "run <running-config> <interface>",
	Short: "Select, resolve and extract the overlay of an interface",
	Long: `Run executes the whole pipeline. <interface> is either one sub-interface
(Bundle-Ether7.100) or a bundle (Bundle-Ether7), which selects the bundle and
all of its sub-interfaces.

Artifacts are written to the output directory, which must already exist.
References that could not be resolved are listed in <artifact>.unmatched.txt.`,
	Args: cobra.ExactArgs(2),
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	rep, err := pipeline.Run(cmd.Context(), args[0], args[1], settings, outputDir(), os.Stdout)
	if err != nil {
		return err
	}
	recordRun(cmd.Context(), rep)
	return nil
}

// --- select subcommand ---

var selectCmd = &cobra.Command{
	Use:   "select <running-config> <interface>",
	Short: "Select interfaces and write the level-1 artifact",
	Long: `Select runs only interface selection. It prints one line per selected
(interface, vrf) pair and writes level1.yaml to the output directory, where
"extract --from-level1" picks it up.`,
	Args: cobra.ExactArgs(2),
	RunE: runSelect,
}

func runSelect(cmd *cobra.Command, args []string) error {
	sel, err := pipeline.SelectLevel1(cmd.Context(), args[0], args[1], settings, outputDir())
	if err != nil {
		return err
	}
	for _, e := range sel.Entries {
		fmt.Fprintln(os.Stdout, e)
	}
	fmt.Fprintf(os.Stdout, "\n%d interface(s) selected for %s\n", len(sel.Entries), sel.Spec)
	return nil
}

// --- extract subcommand ---

var extractCmd = &cobra.Command{
	Use:   "extract [running-config]",
	Short: "Resolve and extract from a previously written level-1 artifact",
	Long: `Extract runs every stage after selection, reading the selected interfaces
from level1.yaml. The running configuration recorded in the artifact is used
unless one is given on the command line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from-level1")
	if from == "" {
		from = outputDir()
	}
	var doc string
	if len(args) == 1 {
		doc = args[0]
	}

	rep, err := pipeline.RunFromLevel1(cmd.Context(), from, doc, settings, outputDir(), os.Stdout)
	if err != nil {
		return err
	}
	recordRun(cmd.Context(), rep)
	return nil
}

// --- order subcommand ---

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Print the order in which to apply or remove the artifacts",
	Long: `Order prints the artifact paths in dependency order: policy objects and
VRFs before the interfaces and routing that reference them. With --remove the
order is reversed.`,
	Args: cobra.NoArgs,
	RunE: runOrder,
}

func runOrder(cmd *cobra.Command, args []string) error {
	remove, _ := cmd.Flags().GetBool("remove")
	dir := outputDir()

	var files []string
	if m, err := output.ReadManifest(dir); err == nil {
		files = m.ApplyOrder
		if remove {
			files = m.RemoveOrder
		}
	} else {
		for _, c := range orderFor(remove) {
			files = append(files, c.FileName())
		}
	}

	for i, f := range files {
		fmt.Fprintf(os.Stdout, "%d  %s\n", i+1, filepath.Join(dir, f))
	}
	return nil
}

// orderFor returns the artifact categories for re-application or removal.
func orderFor(remove bool) []types.Category {
	if remove {
		return types.RemoveOrder()
	}
	return types.ApplyOrder()
}

func init() {
	for _, c := range []*cobra.Command{runCmd, selectCmd} {
		c.Flags().Bool("include-global", false, "also select interfaces that declare no VRF")
	}
	extractCmd.Flags().String("from-level1", "", "directory holding level1.yaml (default: the output directory)")
	orderCmd.Flags().Bool("remove", false, "print the removal order")

	rootCmd.AddCommand(runCmd, selectCmd, extractCmd, orderCmd)
}
