// Package cmd - units command
package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bill-optimizer/core/appliance"
	"bill-optimizer/core/types"
	"bill-optimizer/internal/config"
)

var unitsCategory string

// unitsCmd represents the units command
var unitsCmd = &cobra.Command{
	Use:   "units <appliance=hours> [appliance=hours ...]",
	Short: "Estimate monthly units from appliance usage",
	Long: `Estimate monthly consumption from per-appliance daily usage hours.

Each argument pairs an appliance key with its daily usage hours. Unknown
appliance keys are ignored. Run "bill-optimizer units --list" to see the
known appliances and their rated wattage.

Examples:
  bill-optimizer units ac=5 fridge=24 fan=12
  bill-optimizer units --category protected ac=3 tv=4`,
	RunE: runUnits,
}

var listAppliances bool

func init() {
	unitsCmd.Flags().StringVar(&unitsCategory, "category", "general", "consumer category for the bill estimate")
	unitsCmd.Flags().BoolVar(&listAppliances, "list", false, "list known appliances and exit")
}

func runUnits(cmd *cobra.Command, args []string) error {
	if listAppliances {
		fmt.Println("Known appliances (rated watts):")
		for _, spec := range appliance.Catalog() {
			fmt.Printf("  %-16s %6.0f W\n", spec.Key, spec.RatedWatts)
		}
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("at least one appliance=hours pair is required")
	}

	usage := make(map[string]float64, len(args))
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("invalid argument %q, expected appliance=hours", arg)
		}
		hours, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid hours for %s: %q", key, raw)
		}
		if hours < 0 || hours > 24 {
			return fmt.Errorf("hours for %s must be between 0 and 24", key)
		}
		usage[key] = hours
	}

	units := appliance.UnitsFromAppliances(usage)
	cat := types.ParseCategory(unitsCategory)

	table, err := loadTable(config.Get())
	if err != nil {
		return err
	}
	bill, lines := table.Breakdown(units, cat)

	fmt.Printf("Monthly consumption:  %.2f units\n", units)
	fmt.Printf("Daily consumption:    %.2f units\n", units/30)
	fmt.Printf("Estimated bill:       Rs. %.2f (%s)\n", bill, cat)

	if len(lines) > 0 {
		fmt.Println("\nBreakdown:")
		for _, line := range lines {
			fmt.Printf("  %-16s %8.2f units x Rs. %6.2f = Rs. %10.2f\n",
				line.Label, line.Units, line.Rate, line.Amount)
		}
	}

	return nil
}
