package main

import (
	"fmt"
	"os"
	"path"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aura-hub/aurahub"
	"github.com/aura-hub/aurahub/db"
	"github.com/aura-hub/aurahub/domain"
	"github.com/aura-hub/aurahub/filestore"
	"github.com/aura-hub/aurahub/memstore"
)

var (
	configDir string

	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:          "aurahub",
	Short:        "Aura Hub multi-vendor marketplace server and tooling",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default: the user config dir)")
}

func resolveConfigDir() (string, error) {
	if configDir != "" {
		return configDir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir : %w", err)
	}
	return path.Join(base, "aurahub"), nil
}

// openStorage builds the persistence backend named by the config. The sqlite
// backend returns a closer for its connection; the others return a nil closer.
func openStorage(backend, dir string) (domain.CollectionStore, func() error, error) {
	switch backend {
	case "sqlite":
		conn, err := db.New(path.Join(dir, "aurahub.db"))
		if err != nil {
			return nil, nil, err
		}
		repo := db.NewCollectionRepo(conn)
		return repo, repo.Close, nil
	case "file":
		store, err := filestore.New(path.Join(dir, "collections"))
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	case "memory":
		return memstore.New(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q (want sqlite, file, or memory)", backend)
	}
}

// openStore builds a configured store on the backend the config (or the
// override) selects.
func openStore(backendOverride string) (*aurahub.Store, func() error, error) {
	dir, err := resolveConfigDir()
	if err != nil {
		return nil, nil, err
	}

	store, err := aurahub.New(aurahub.WithConfigDir(dir))
	if err != nil {
		return nil, nil, err
	}

	backend := store.Config().StorageBackend
	if backendOverride != "" {
		backend = backendOverride
	}

	storage, closer, err := openStorage(backend, dir)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	if err := store.WithOptions(aurahub.WithStorage(storage)); err != nil {
		store.Close()
		return nil, nil, err
	}

	log.WithFields(logrus.Fields{"config_dir": dir, "backend": backend}).Info("store ready")
	return store, closer, nil
}
