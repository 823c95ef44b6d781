// Package cmd - estimate command
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bill-optimizer/core/estimator"
	"bill-optimizer/core/predictor"
	"bill-optimizer/core/tariff"
	"bill-optimizer/core/types"
	"bill-optimizer/internal/config"
	"bill-optimizer/internal/logging"

	"go.uber.org/zap"
)

var (
	outputFormat  string
	householdSize int
	numAppliances int
	acUnits       int
	fridgeCount   int
	fanCount      int
	usageHours    float64
	previousUnits float64
	consumerType  string
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate a monthly electricity bill",
	Long: `Estimate a household's monthly electricity bill.

When a model artifact is configured the estimate is statistical; otherwise
a deterministic calculation over the declared appliances is used.

Examples:
  bill-optimizer estimate --ac 1 --fans 4 --hours 10 --previous 180
  bill-optimizer estimate --household 6 --appliances 15 --category protected
  bill-optimizer estimate --format json --ac 2 --hours 12`,
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&outputFormat, "format", "f", "cli", "output format (cli, json)")
	estimateCmd.Flags().IntVar(&householdSize, "household", 4, "number of people in the household")
	estimateCmd.Flags().IntVar(&numAppliances, "appliances", 10, "total appliance count")
	estimateCmd.Flags().IntVar(&acUnits, "ac", 0, "number of air conditioners")
	estimateCmd.Flags().IntVar(&fridgeCount, "fridges", 1, "number of refrigerators")
	estimateCmd.Flags().IntVar(&fanCount, "fans", 2, "number of fans")
	estimateCmd.Flags().Float64Var(&usageHours, "hours", 8, "average daily usage hours")
	estimateCmd.Flags().Float64Var(&previousUnits, "previous", 0, "previous month's consumption in units")
	estimateCmd.Flags().StringVar(&consumerType, "category", "general", "consumer category (lifeline, protected, general)")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.Get()

	table, err := loadTable(cfg)
	if err != nil {
		return err
	}

	engine := estimator.New(table, loadCapability(cfg))

	input := types.RawUserInput{
		HouseholdSize: householdSize,
		NumAppliances: numAppliances,
		ACUnits:       acUnits,
		FridgeCount:   fridgeCount,
		FanCount:      fanCount,
		UsageHours:    usageHours,
		PreviousUnits: previousUnits,
		ConsumerType:  consumerType,
	}

	result := engine.Estimate(ctx, input)

	if outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printResult(result)
	return nil
}

func printResult(result types.EstimationResult) {
	fmt.Printf("Estimated bill:   Rs. %.2f/month\n", result.PredictedBill)
	fmt.Printf("Estimated units:  %.2f kWh\n", result.EstimatedUnits)
	fmt.Printf("Tariff slab:      %s (%s, Rs. %.2f/unit)\n",
		result.TariffSlab.Label, result.TariffSlab.Category, result.TariffSlab.Rate)
	fmt.Printf("Method:           %s (confidence %.0f%%)\n",
		result.Method, result.Confidence*100)

	if len(result.Breakdown) > 0 {
		fmt.Println("\nBreakdown:")
		for _, line := range result.Breakdown {
			fmt.Printf("  %-16s %8.2f units x Rs. %6.2f = Rs. %10.2f\n",
				line.Label, line.Units, line.Rate, line.Amount)
		}
	}

	if len(result.OptimizationTips) > 0 {
		fmt.Println("\nOptimization tips:")
		for _, tip := range result.OptimizationTips {
			fmt.Printf("  - %s\n", tip)
		}
	}

	if len(result.SavingsOpportunities) > 0 {
		fmt.Println("\nSavings opportunities:")
		for _, opp := range result.SavingsOpportunities {
			fmt.Printf("  - %s\n", opp)
		}
	}
}

// loadTable builds the tariff table from configuration
func loadTable(cfg *config.Config) (*tariff.Table, error) {
	if cfg.Tariff.SchedulePath == "" {
		return tariff.NewDefaultTable(), nil
	}

	schedule, err := tariff.LoadSchedule(cfg.Tariff.SchedulePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load tariff schedule: %w", err)
	}
	return tariff.NewTable(schedule)
}

// loadCapability loads the configured model artifact, if any
func loadCapability(cfg *config.Config) predictor.Capability {
	if cfg.Model.ArtifactPath == "" {
		return nil
	}

	model, err := predictor.LoadLinearModel(cfg.Model.ArtifactPath)
	if err != nil {
		logging.Warn("model artifact unavailable, running deterministic",
			zap.String("path", cfg.Model.ArtifactPath), zap.Error(err))
		return nil
	}
	return model
}
