package aurahub

import (
	"fmt"
	"log"
	"os"
	"path"
	"time"

	"github.com/spf13/viper"

	"github.com/aura-hub/aurahub/domain"
)

const seedOverlayFile = "seed.yaml"

// WithOptions applies a series of configuration functions to the store.
// Each option function can modify the store and return an error if it fails.
func (store *Store) WithOptions(options ...func(*Store) error) error {
	for _, option := range options {
		err := option(store)
		if err != nil {
			return fmt.Errorf("applying option on store : %w", err)
		}
	}
	return nil
}

// WithStorage injects the persistence backend the store reads and writes
// through. Any CollectionStore implementation works: SQLite, plain files, or
// the in-memory store used by tests.
func WithStorage(storage domain.CollectionStore) func(*Store) error {
	return func(store *Store) error {
		store.storage = storage
		return nil
	}
}

// WithClock overrides the time source used for derived record ids. Tests use
// it to make starter-product ids deterministic.
func WithClock(now func() time.Time) func(*Store) error {
	return func(store *Store) error {
		store.now = now
		return nil
	}
}

// WithConfigDir configures the store to use the specified configuration
// directory. It creates the directory if it doesn't exist, initializes the
// configuration file using Viper, and applies an optional seed.yaml overlay
// found in the directory.
func WithConfigDir(appConfigDir string) func(*Store) error {
	return func(store *Store) error {
		_, err := os.ReadDir(appConfigDir)
		if err != nil {
			if os.IsNotExist(err) {
				log.Println("[*] creating config dir")
				err := os.MkdirAll(appConfigDir, 0700)
				if err != nil {
					return fmt.Errorf("creating config dir %s: %w", appConfigDir, err)
				}
			} else {
				return fmt.Errorf("checking if directory exists %s: %w", appConfigDir, err)
			}
		}

		v := viper.New()
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(appConfigDir)
		v.SetDefault("config_dir", appConfigDir)
		v.SetDefault("gemini_api_key", "")
		v.SetDefault("gemini_text_model", defaultTextModel)
		v.SetDefault("gemini_image_model", defaultImageModel)
		v.SetDefault("supabase_url", "")
		v.SetDefault("supabase_anon_key", "")
		v.SetDefault("listen_address", "127.0.0.1")
		v.SetDefault("listen_port", "8080")
		v.SetDefault("storage_backend", "file")
		err = v.ReadInConfig()
		if err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				err = v.SafeWriteConfig()
				if err != nil {
					return fmt.Errorf("writing config file : %w", err)
				}
			} else {
				return fmt.Errorf("reading config file : %w", err)
			}
		}

		config := &Config{viper: v}
		if err := v.Unmarshal(config); err != nil {
			return fmt.Errorf("unmarshalling config to struct : %w", err)
		}
		store.config = config

		overlay, err := loadSeedOverlay(path.Join(appConfigDir, seedOverlayFile))
		if err != nil {
			return err
		}
		if overlay != nil {
			store.seedVendors = append(store.seedVendors, overlay.Vendors...)
			store.seedProducts = append(store.seedProducts, overlay.Products...)
			store.seedOrders = append(store.seedOrders, overlay.Orders...)
		}
		return nil
	}
}
