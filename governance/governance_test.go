package governance

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aura-hub/aurahub/domain"
)

func TestEngine_Screen(t *testing.T) {
	t.Run("should approve a vendor with a valid trade license", func(t *testing.T) {
		engine := New()

		result, err := engine.Screen(domain.Vendor{
			ID:           1,
			Name:         "Royal Bengal Looms",
			Slug:         "royal-bengal-looms",
			TradeLicense: "TRD-2024-8899",
		})
		if err != nil {
			t.Fatalf("screening vendor : %v", err)
		}
		if result.Status != domain.VendorApproved {
			t.Fatalf("\nwanted:\n%s\ngot:\n%s (%s)", domain.VendorApproved, result.Status, result.Reason)
		}
	})

	t.Run("should block a vendor with a missing or invalid license", func(t *testing.T) {
		engine := New()

		for _, license := range []string{"", "INVALID"} {
			result, err := engine.Screen(domain.Vendor{Slug: "shadow-market", TradeLicense: license})
			if err != nil {
				t.Fatalf("screening vendor : %v", err)
			}
			if result.Status != domain.VendorBlocked {
				t.Fatalf("\nwanted:\n%s for license %q\ngot:\n%s", domain.VendorBlocked, license, result.Status)
			}
			if result.Reason == "" {
				t.Fatal("\nwanted:\na reason\ngot:\nempty string")
			}
		}
	})

	t.Run("should pend a vendor whose license does not match the format", func(t *testing.T) {
		engine := New()

		result, err := engine.Screen(domain.Vendor{Slug: "urban-dhaka", TradeLicense: "LIC-999"})
		if err != nil {
			t.Fatalf("screening vendor : %v", err)
		}
		if result.Status != domain.VendorPending {
			t.Fatalf("\nwanted:\n%s\ngot:\n%s", domain.VendorPending, result.Status)
		}
	})

	t.Run("should run a custom rule script from disk", func(t *testing.T) {
		script := `function screen(vendor)
			if vendor.slug == "shadow-market" then
				return "BLOCKED", "known bad actor"
			end
			return "APPROVED", "allow-listed"
		end`
		path := filepath.Join(t.TempDir(), "rules.lua")
		if err := os.WriteFile(path, []byte(script), 0600); err != nil {
			t.Fatalf("writing rule script : %v", err)
		}

		engine, err := NewFromFile(path)
		if err != nil {
			t.Fatalf("NewFromFile() failed: %v", err)
		}

		result, err := engine.Screen(domain.Vendor{Slug: "shadow-market"})
		if err != nil {
			t.Fatalf("screening vendor : %v", err)
		}
		if result.Status != domain.VendorBlocked || result.Reason != "known bad actor" {
			t.Fatalf("\nwanted:\nBLOCKED known bad actor\ngot:\n%s %s", result.Status, result.Reason)
		}
	})

	t.Run("should reject a script without a screen function", func(t *testing.T) {
		engine := &Engine{script: `answer = 42`}

		_, err := engine.Screen(domain.Vendor{Slug: "urban-dhaka"})
		if !errors.Is(err, ErrNoScreenFunction) {
			t.Fatalf("\nwanted:\nErrNoScreenFunction\ngot:\n%v", err)
		}
	})

	t.Run("should reject an unknown verdict", func(t *testing.T) {
		engine := &Engine{script: `function screen(vendor) return "MAYBE", "undecided" end`}

		_, err := engine.Screen(domain.Vendor{Slug: "urban-dhaka"})
		if !errors.Is(err, ErrBadVerdict) {
			t.Fatalf("\nwanted:\nErrBadVerdict\ngot:\n%v", err)
		}
	})
}
