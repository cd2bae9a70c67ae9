// Package cmd provides the CLI commands for quotecalc.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quotecalc/internal/config"
	"quotecalc/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "quotecalc",
	Short: "Calculate and verify commercial quote pricing",
	Long: `quotecalc computes the full cost/price/profit breakdown for
multi-currency B2B trading quotes, and verifies the calculation against
historical spreadsheet quotes.

Examples:
  quotecalc calculate --settings org.yaml quote.json
  quotecalc validate --mode detailed legacy/*.xlsx
  quotecalc validate --format html --out report.html legacy/*.xlsx`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.quotecalc.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
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
		fmt.Println("quotecalc version 0.1.0")
	},
}
