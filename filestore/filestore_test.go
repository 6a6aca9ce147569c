package filestore

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStore_Load(t *testing.T) {
	t.Run("should return nil for a missing collection", func(t *testing.T) {
		store, err := New(t.TempDir())
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}

		data, err := store.Load("aura_vendors")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if data != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%q", data)
		}
	})

	t.Run("should reject keys that escape the directory", func(t *testing.T) {
		store, err := New(t.TempDir())
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}

		for _, key := range []string{"", "../etc", "a/b", `a\b`} {
			if _, err := store.Load(key); !errors.Is(err, ErrInvalidKey) {
				t.Fatalf("\nwanted:\nErrInvalidKey for %q\ngot:\n%v", key, err)
			}
		}
	})
}

func TestStore_Save(t *testing.T) {
	t.Run("should round-trip a collection through disk", func(t *testing.T) {
		dir := t.TempDir()
		store, err := New(dir)
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}

		want := []byte(`[{"id":101,"name":"Jamdani"}]`)
		if err := store.Save("aura_products", want); err != nil {
			t.Fatalf("saving collection : %v", err)
		}

		got, err := store.Load("aura_products")
		if err != nil {
			t.Fatalf("loading collection : %v", err)
		}
		if !bytes.Equal(want, got) {
			t.Fatalf("\nwanted:\n%s\ngot:\n%s", want, got)
		}
	})

	t.Run("should overwrite wholesale and leave no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		store, err := New(dir)
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}

		if err := store.Save("aura_orders", []byte(`[1]`)); err != nil {
			t.Fatalf("saving collection : %v", err)
		}
		if err := store.Save("aura_orders", []byte(`[2]`)); err != nil {
			t.Fatalf("saving collection : %v", err)
		}

		got, err := store.Load("aura_orders")
		if err != nil {
			t.Fatalf("loading collection : %v", err)
		}
		if !bytes.Equal(got, []byte(`[2]`)) {
			t.Fatalf("\nwanted:\n[2]\ngot:\n%s", got)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("reading store dir : %v", err)
		}
		for _, entry := range entries {
			if filepath.Ext(entry.Name()) == ".tmp" {
				t.Fatalf("\nwanted:\nno temp files\ngot:\n%s", entry.Name())
			}
		}
	})
}
