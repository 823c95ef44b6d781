// Package cmd - tariffs command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bill-optimizer/core/tariff"
	"bill-optimizer/internal/config"
)

// tariffsCmd represents the tariffs command
var tariffsCmd = &cobra.Command{
	Use:   "tariffs",
	Short: "Show the active tariff schedule",
	Long: `Print the tariff schedule the estimator is using.

The built-in schedule carries the official NEPRA residential tariffs.
Configure tariff.schedule_path to use a custom HCL schedule instead.`,
	RunE: runTariffs,
}

func runTariffs(cmd *cobra.Command, args []string) error {
	table, err := loadTable(config.Get())
	if err != nil {
		return err
	}

	for _, cat := range table.Categories() {
		fmt.Printf("%s Consumer\n", cat)
		notes := tariff.SavingsNotes[cat]
		for i, slab := range table.RateSlabs(cat) {
			fmt.Printf("  %-16s Rs. %6.2f/unit", slab.Label, slab.Rate.InexactFloat64())
			if i < len(notes) {
				fmt.Printf("   %s", notes[i])
			}
			fmt.Println()
		}
		fmt.Println()
	}

	fmt.Println("Source: NEPRA Official Tariffs. Additional taxes and duties may apply.")
	return nil
}
