// Package cmd provides the CLI commands for bill-optimizer.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bill-optimizer/internal/config"
	"bill-optimizer/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bill-optimizer",
	Short: "Estimate household electricity bills",
	Long: `bill-optimizer estimates monthly electricity bills for households.

It combines a progressive tariff calculator with a statistical consumption
model, degrading gracefully to pure arithmetic when no model is loaded.

Examples:
  bill-optimizer estimate --ac 1 --fans 4 --hours 10 --previous 180
  bill-optimizer units ac=5 fridge=24
  bill-optimizer tariffs`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.bill-optimizer.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(unitsCmd)
	rootCmd.AddCommand(tariffsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("bill-optimizer version 1.0.0")
	},
}

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		fmt.Printf("version:           %s\n", cfg.Version)
		fmt.Printf("tariff schedule:   %s\n", orDefault(cfg.Tariff.SchedulePath, "(built-in NEPRA)"))
		fmt.Printf("default category:  %s\n", cfg.Tariff.DefaultCategory)
		fmt.Printf("model artifact:    %s\n", orDefault(cfg.Model.ArtifactPath, "(none, deterministic)"))
		fmt.Printf("history enabled:   %v\n", cfg.History.Enabled)
		fmt.Printf("history database:  %s\n", cfg.History.DatabasePath)
		fmt.Printf("server addr:       %s\n", cfg.Server.Addr)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write a default configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Default().Save(args[0]); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Printf("Configuration written to %s\n", args[0])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
