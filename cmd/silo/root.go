package main

import (
	"fmt"
	"os"

	"github.com/aretw0/silo/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "silo",
	Short: "Silo is a pluggable session-persistence backend",
	Long:  `Silo stores opaque session blobs durably through swappable snapshot adapters. This tool serves a store and inspects or maintains its snapshots.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "silo.yaml", "Path to the silo config file")
	rootCmd.PersistentFlags().String("location", "", "Base path for the file driver (overrides config)")
	rootCmd.PersistentFlags().String("collection", "", "Collection name (overrides config)")
}

// loadConfig resolves the config file plus flag overrides.
func loadConfig(cmd *cobra.Command) (cli.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := cli.LoadConfig(path)
	if err != nil {
		return cfg, err
	}

	if loc, _ := cmd.Flags().GetString("location"); loc != "" {
		cfg.Location = loc
	}
	if col, _ := cmd.Flags().GetString("collection"); col != "" {
		cfg.Collection = col
	}
	if cfg.Location == "" {
		cfg.Location = ".silo"
	}
	return cfg, nil
}

// collectionName resolves the effective collection.
func collectionName(cfg cli.Config) string {
	if cfg.Collection == "" {
		return "sessions"
	}
	return cfg.Collection
}

func fatal(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
	os.Exit(1)
}
