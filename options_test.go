package aurahub

import (
	"os"
	"path"
	"testing"
)

func TestWithConfigDir(t *testing.T) {
	t.Run("should write a config file with defaults into a fresh directory", func(t *testing.T) {
		dir := path.Join(t.TempDir(), "aura")

		store, err := New(WithConfigDir(dir))
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		defer store.Close()

		if _, err := os.Stat(path.Join(dir, "config.yaml")); err != nil {
			t.Fatalf("config file was not created : %v", err)
		}

		cfg := store.Config()
		if cfg == nil {
			t.Fatal("\nwanted:\na config\ngot:\nnil")
		}
		if cfg.ListenAddress != "127.0.0.1" || cfg.ListenPort != "8080" {
			t.Fatalf("\nwanted:\n127.0.0.1:8080\ngot:\n%s:%s", cfg.ListenAddress, cfg.ListenPort)
		}
		if cfg.StorageBackend != "file" {
			t.Fatalf("\nwanted:\nfile\ngot:\n%s", cfg.StorageBackend)
		}
	})

	t.Run("should persist values written through Set", func(t *testing.T) {
		dir := t.TempDir()

		store, err := New(WithConfigDir(dir))
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		defer store.Close()

		if err := store.Config().Set("gemini_api_key", "test-key"); err != nil {
			t.Fatalf("setting config value : %v", err)
		}
		if store.Config().GeminiAPIKey != "test-key" {
			t.Fatalf("\nwanted:\ntest-key\ngot:\n%s", store.Config().GeminiAPIKey)
		}

		reopened, err := New(WithConfigDir(dir))
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		defer reopened.Close()

		if reopened.Config().GeminiAPIKey != "test-key" {
			t.Fatalf("\nwanted:\ntest-key after reload\ngot:\n%s", reopened.Config().GeminiAPIKey)
		}
	})

	t.Run("should append a seed overlay found in the directory", func(t *testing.T) {
		dir := t.TempDir()
		overlay := `vendors:
  - id: 50
    name: Overlay Vendor
    slug: overlay-vendor
    status: APPROVED
products:
  - id: 500
    vendorId: 50
    name: Overlay Product
    price: 999
`
		if err := os.WriteFile(path.Join(dir, "seed.yaml"), []byte(overlay), 0600); err != nil {
			t.Fatalf("writing overlay : %v", err)
		}

		store, err := New(WithConfigDir(dir))
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		defer store.Close()

		if _, ok := store.VendorBySlug("overlay-vendor"); !ok {
			t.Fatal("\nwanted:\noverlay vendor in merged set\ngot:\nabsent")
		}
		if got := len(store.ProductsByVendor(50)); got != 1 {
			t.Fatalf("\nwanted:\n1\ngot:\n%d", got)
		}
	})
}
