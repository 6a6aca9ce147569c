package memstore

import (
	"bytes"
	"testing"
)

func TestStore(t *testing.T) {
	t.Run("should return nil for a missing key", func(t *testing.T) {
		store := New()

		data, err := store.Load("aura_vendors")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if data != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%q", data)
		}
	})

	t.Run("should round-trip a saved collection", func(t *testing.T) {
		store := New()

		want := []byte(`[{"id":1}]`)
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

	t.Run("should not share the stored buffer with the caller", func(t *testing.T) {
		store := New()

		data := []byte(`[1,2,3]`)
		if err := store.Save("aura_orders", data); err != nil {
			t.Fatalf("saving collection : %v", err)
		}
		data[0] = 'x'

		got, err := store.Load("aura_orders")
		if err != nil {
			t.Fatalf("loading collection : %v", err)
		}
		if !bytes.Equal(got, []byte(`[1,2,3]`)) {
			t.Fatalf("\nwanted:\n[1,2,3]\ngot:\n%s", got)
		}
	})
}
