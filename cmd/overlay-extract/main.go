// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the overlay-extract CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pdiddy/overlay-extract/internal/config"
	"github.com/pdiddy/overlay-extract/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// settings holds the configuration loaded before any subcommand runs.
var settings = config.Defaults()

// flagKeys maps config keys to the flags that override them.
var flagKeys = map[string]string{
	"output.dir":            "out",
	"match.mode":            "match",
	"pipeline.workers":      "workers",
	"select.include_global": "include-global",
	"log.level":             "log-level",
	"log.format":            "log-format",
}

// rootCmd is the base command for the overlay-extract CLI.
var rootCmd = &cobra.Command{
	Use:   "overlay-extract",
	Short: "Extract the configuration overlay of a bundle interface from an IOS-XR running config",
	Long: `overlay-extract reads a flattened IOS-XR running configuration ("show
running-config formal"), selects the Bundle-Ether sub-interfaces named on the
command line and writes every configuration line they depend on: VRFs,
interface lines, BGP, static and HSRP routing, policy-maps and route-policies.

Each category is written to its own file in an existing output directory,
together with a file of unmatched references per category and a manifest
listing the order in which to re-apply or remove them.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./overlay-extract.yaml or ~/.config/overlay-extract/overlay-extract.yaml)")
	pf.StringP("out", "o", "", "existing output directory (default: overlay)")
	pf.String("match", "", "reference matching mode: substring or strict")
	pf.Int("workers", 0, "parallel per-interface scans (default: 1)")
	pf.String("log-level", "", "log level: trace, debug, info, warn, error")
	pf.String("log-format", "", "log format: console or json")
}

// loadSettings binds the command's flags, loads the configuration and
// attaches a logger to the command context.
func loadSettings(cmd *cobra.Command, args []string) error {
	loader := config.NewLoader()
	for key, name := range flagKeys {
		if err := loader.Bind(key, cmd.Flags().Lookup(name)); err != nil {
			return err
		}
	}

	path, _ := cmd.Flags().GetString("config")
	cfg, used, err := loader.Load(path)
	if err != nil {
		return err
	}
	settings = cfg

	log := logging.New(cfg.Log, os.Stderr)
	if used != "" {
		log.Debug().Str("file", used).Msg("using config file")
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithContext(ctx, log))
	return nil
}

// outputDir returns the configured output directory.
func outputDir() string {
	return settings.Output.Dir
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}
