// Package cmd holds the vinylscan command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"vinylscan/internal/app/server/config"
	"vinylscan/internal/utils/logger"
)

var (
	cfgFile string
	cfg     *config.Config
	log     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vinylscan",
	Short: "VinylScan backend",
	Long: `VinylScan looks up vinyl barcodes on Discogs and keeps a per-user
record collection.

Configuration comes from the environment (or .env) and an optional
config file passed with --config.`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log = logger.New(cfg.Env)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json, toml or env)")

	rootCmd.AddCommand(serveCmd, migrateCmd, lookupCmd, userCmd)
}
