package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/aura-hub/aurahub"
	"github.com/aura-hub/aurahub/api"
	"github.com/aura-hub/aurahub/governance"
)

const rulesFile = "rules.lua"

var serveBackend string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Aura Hub API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveBackend, "backend", "", "storage backend override: sqlite, file, or memory")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	store, closer, err := openStore(serveBackend)
	if err != nil {
		return err
	}
	defer store.Close()
	if closer != nil {
		defer closer()
	}

	cfg := store.Config()

	// Reload config values edited on disk while the server runs.
	cfg.Viper().OnConfigChange(func(event fsnotify.Event) {
		log.WithField("file", event.Name).Info("config file changed, reloading")
		if err := cfg.Viper().Unmarshal(cfg); err != nil {
			log.WithError(err).Error("reloading config failed")
		}
	})
	cfg.Viper().WatchConfig()

	screener, err := loadScreener(cfg.ConfigDir)
	if err != nil {
		return err
	}

	gemini := aurahub.NewGeminiClient(store, cfg.GeminiAPIKey)
	supabase := aurahub.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	if !supabase.IsConfigured() {
		log.Info("no submission backend configured, applications run in mock mode")
	}

	server := api.NewServer(store, gemini, supabase, screener, log)

	errs := make(chan error, 1)
	go func() {
		address := net.JoinHostPort(cfg.ListenAddress, cfg.ListenPort)
		if err := server.Start(address); err != nil && err != http.ErrServerClosed {
			errs <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errs:
		return err
	case sig := <-stop:
		log.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

// loadScreener uses a rules.lua from the config dir when present, otherwise
// the built-in governance rules.
func loadScreener(dir string) (*governance.Engine, error) {
	custom := path.Join(dir, rulesFile)
	if _, err := os.Stat(custom); err == nil {
		log.WithField("file", custom).Info("using custom governance rules")
		return governance.NewFromFile(custom)
	}
	return governance.New(), nil
}
