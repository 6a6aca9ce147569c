package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aura-hub/aurahub"
)

var seedBackend string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the seed collections into the persistence backend",
	Long: `Write the built-in seed vendors, products, and orders into the configured
persistence backend. Useful for inspecting the stored form or priming a fresh
sqlite database.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedBackend, "backend", "", "storage backend override: sqlite, file, or memory")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	store, closer, err := openStore(seedBackend)
	if err != nil {
		return err
	}
	defer store.Close()
	if closer != nil {
		defer closer()
	}

	collections := map[string]any{
		aurahub.KeyVendors:  aurahub.SeedVendors(),
		aurahub.KeyProducts: aurahub.SeedProducts(),
		aurahub.KeyOrders:   aurahub.SeedOrders(),
	}

	for key, records := range collections {
		raw, err := json.Marshal(records)
		if err != nil {
			return fmt.Errorf("encoding collection %s : %w", key, err)
		}
		if err := store.Storage().Save(key, raw); err != nil {
			return fmt.Errorf("saving collection %s : %w", key, err)
		}
		log.WithField("key", key).Info("collection seeded")
	}
	return nil
}
