// Package cmd - calculate command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quotecalc/core/engine"
	"quotecalc/core/types"
	"quotecalc/internal/config"
)

var settingsFile string

// quoteFile is the on-disk shape of a draft quote
type quoteFile struct {
	Quote    types.QuoteInput     `json:"quote"`
	Products []types.ProductInput `json:"products"`
}

// calculateCmd represents the calculate command
var calculateCmd = &cobra.Command{
	Use:   "calculate [quote.json]",
	Short: "Run the calculation pipeline on a quote",
	Long: `Compute the full per-product and quote-level price breakdown.

The quote file holds the quote-level inputs and the product line items;
organization settings come from the configured YAML file.

Examples:
  quotecalc calculate quote.json
  quotecalc calculate --settings org.yaml quote.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCalculate,
}

func init() {
	calculateCmd.Flags().StringVarP(&settingsFile, "settings", "s", "", "organization settings YAML (default from config)")
}

func runCalculate(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading quote file: %w", err)
	}
	var qf quoteFile
	if err := json.Unmarshal(data, &qf); err != nil {
		return fmt.Errorf("parsing quote file: %w", err)
	}

	result := engine.New().CalculateQuote(qf.Products, &qf.Quote, settings)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}
	if result.Failed > 0 {
		return fmt.Errorf("%d of %d products failed to compute", result.Failed, len(result.Products))
	}
	return nil
}

func loadSettings() (*types.OrganizationSettings, error) {
	path := settingsFile
	if path == "" {
		path = config.Get().Settings
	}
	settings, err := types.LoadOrganizationSettings(path)
	if err != nil {
		return nil, fmt.Errorf("loading organization settings: %w", err)
	}
	return settings, nil
}
