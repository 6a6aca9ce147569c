package aurahub

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the persisted application configuration. It is loaded from the
// config directory's config.yaml by WithConfigDir and written back by Set.
type Config struct {
	viper            *viper.Viper
	ConfigDir        string `mapstructure:"config_dir"`         // Current config dir
	GeminiAPIKey     string `mapstructure:"gemini_api_key"`     // API key for the AI collaborator
	GeminiTextModel  string `mapstructure:"gemini_text_model"`  // Model used for assistant chat
	GeminiImageModel string `mapstructure:"gemini_image_model"` // Model used for try-on composites
	SupabaseURL      string `mapstructure:"supabase_url"`       // BaaS project URL, empty runs in mock mode
	SupabaseAnonKey  string `mapstructure:"supabase_anon_key"`  // BaaS anonymous key
	ListenAddress    string `mapstructure:"listen_address"`     // API bind address
	ListenPort       string `mapstructure:"listen_port"`        // API bind port
	StorageBackend   string `mapstructure:"storage_backend"`    // One of sqlite, file, memory
}

// Set updates a configuration key, persists the file, and refreshes the
// struct fields.
func (cfg *Config) Set(key string, value any) error {
	cfg.viper.Set(key, value)
	if err := cfg.viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	if err := cfg.viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshalling config to struct : %w", err)
	}
	return nil
}

// Viper exposes the underlying viper instance, mainly so the CLI can install
// a config watcher.
func (cfg *Config) Viper() *viper.Viper {
	return cfg.viper
}
