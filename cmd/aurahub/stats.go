package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the ecosystem aggregates",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	store, closer, err := openStore("memory")
	if err != nil {
		return err
	}
	defer store.Close()
	if closer != nil {
		defer closer()
	}

	stats := store.EcosystemStats()
	fmt.Printf("Total vendors:    %d\n", stats.TotalVendors)
	fmt.Printf("Active products:  %d\n", stats.ActiveProducts)
	fmt.Printf("Monthly volume:   %d\n", stats.MonthlyVolume)
	fmt.Printf("AI interactions:  %d\n", stats.AIInteractions)
	fmt.Printf("Live sales:       %d\n", store.LiveSales())
	fmt.Println("Trend forecast:")
	for _, forecast := range stats.TrendForecast {
		fmt.Printf("  %s  %-32s +%d%%\n", forecast.Year, forecast.Trend, forecast.Growth)
	}
	return nil
}
