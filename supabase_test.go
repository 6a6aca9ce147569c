package aurahub

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSupabaseClient_SubmitVendorRequest(t *testing.T) {
	t.Run("should mock the submission when no project is configured", func(t *testing.T) {
		client := NewSupabaseClient("", "")
		client.MockDelay = 0

		if client.IsConfigured() {
			t.Fatal("\nwanted:\nmock mode\ngot:\nconfigured")
		}

		application := map[string]any{
			"name":          "Chattogram Silks",
			"trade_license": "TRD-2025-4411",
		}
		result, err := client.SubmitVendorRequest(context.Background(), application)
		if err != nil {
			t.Fatalf("submitting application : %v", err)
		}

		if result["name"] != "Chattogram Silks" || result["trade_license"] != "TRD-2025-4411" {
			t.Fatalf("\nwanted:\napplication fields echoed\ngot:\n%v", result)
		}
		id, ok := result["id"].(string)
		if !ok || !strings.HasPrefix(id, "MOCK-") {
			t.Fatalf("\nwanted:\nMOCK- id\ngot:\n%v", result["id"])
		}
		if _, present := application["id"]; present {
			t.Fatal("\nwanted:\ncaller payload untouched\ngot:\nid injected")
		}
	})

	t.Run("should respect context cancellation in mock mode", func(t *testing.T) {
		client := NewSupabaseClient("", "")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := client.SubmitVendorRequest(ctx, map[string]any{}); err == nil {
			t.Fatal("\nwanted:\ncontext error\ngot:\nnil")
		}
	})

	t.Run("should insert into the vendors table and return the representation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/rest/v1/vendors" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.Header.Get("apikey") != "anon-key" {
				t.Errorf("unexpected apikey header %s", r.Header.Get("apikey"))
			}
			if r.Header.Get("Authorization") != "Bearer anon-key" {
				t.Errorf("unexpected authorization header %s", r.Header.Get("Authorization"))
			}
			if r.Header.Get("Prefer") != "return=representation" {
				t.Errorf("unexpected prefer header %s", r.Header.Get("Prefer"))
			}

			var rows []map[string]any
			if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
				t.Errorf("decoding body : %v", err)
			}
			if len(rows) != 1 || rows[0]["name"] != "Sylhet Craft" {
				t.Errorf("unexpected payload %v", rows)
			}

			rows[0]["id"] = "db-generated-id"
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(rows)
		}))
		defer server.Close()

		client := NewSupabaseClient(server.URL, "anon-key")
		result, err := client.SubmitVendorRequest(context.Background(), map[string]any{"name": "Sylhet Craft"})
		if err != nil {
			t.Fatalf("submitting application : %v", err)
		}
		if result["id"] != "db-generated-id" {
			t.Fatalf("\nwanted:\ndb-generated-id\ngot:\n%v", result["id"])
		}
	})

	t.Run("should surface a rejected submission", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"message":"duplicate key"}`, http.StatusConflict)
		}))
		defer server.Close()

		client := NewSupabaseClient(server.URL, "anon-key")
		_, err := client.SubmitVendorRequest(context.Background(), map[string]any{"name": "Dup"})
		if err == nil {
			t.Fatal("\nwanted:\nrejection error\ngot:\nnil")
		}
		if !strings.Contains(err.Error(), "duplicate key") {
			t.Fatalf("\nwanted:\nserver message in error\ngot:\n%v", err)
		}
	})
}
