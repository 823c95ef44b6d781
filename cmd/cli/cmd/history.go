// Package cmd - history command
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"bill-optimizer/db"
	"bill-optimizer/internal/config"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent estimations",
	Long: `List recent estimations recorded by the server or CLI.

History lives in a local SQLite database; see history.database_path in
the configuration.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum records to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	if !cfg.History.Enabled {
		return fmt.Errorf("history is disabled in the configuration")
	}

	store, err := db.OpenSQLite(cfg.History.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	records, err := store.RecentEstimations(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No estimations recorded yet.")
		return nil
	}

	fmt.Printf("%-36s  %-20s  %10s  %12s  %-8s\n",
		"ID", "WHEN", "UNITS", "BILL (Rs.)", "METHOD")
	for _, rec := range records {
		fmt.Printf("%-36s  %-20s  %10.2f  %12.2f  %-8s\n",
			rec.ID,
			rec.CreatedAt.Format("2006-01-02 15:04:05"),
			rec.EstimatedUnits,
			rec.PredictedBill,
			rec.Method)
	}

	return nil
}
