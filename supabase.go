package aurahub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"
)

const defaultMockSubmissionDelay = 1500 * time.Millisecond

// SupabaseClient submits vendor applications to the configured
// backend-as-a-service project. When no project is configured the client runs
// in mock mode: it simulates network latency and fabricates a placeholder id,
// so the application flow stays usable in a fresh install.
type SupabaseClient struct {
	URL     string
	AnonKey string
	Client  *http.Client

	// MockDelay is the simulated latency in mock mode. Tests set it to zero.
	MockDelay time.Duration
}

// NewSupabaseClient builds a client. Empty url or anonKey leave it in mock mode.
func NewSupabaseClient(url, anonKey string) *SupabaseClient {
	return &SupabaseClient{
		URL:       url,
		AnonKey:   anonKey,
		Client:    &http.Client{Timeout: 10 * time.Second},
		MockDelay: defaultMockSubmissionDelay,
	}
}

// IsConfigured reports whether a remote project is configured.
func (client *SupabaseClient) IsConfigured() bool {
	return client.URL != "" && client.AnonKey != ""
}

// SubmitVendorRequest inserts a vendor application. Configured, it forwards
// the payload to the project's vendors table and returns the inserted
// representation; failures are returned to the caller to render. In mock mode
// it waits MockDelay and echoes the payload with a MOCK-<n> identifier.
func (client *SupabaseClient) SubmitVendorRequest(ctx context.Context, application map[string]any) (map[string]any, error) {
	if !client.IsConfigured() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(client.MockDelay):
		}

		result := make(map[string]any, len(application)+1)
		for key, value := range application {
			result[key] = value
		}
		result["id"] = fmt.Sprintf("MOCK-%d", rand.IntN(10000))
		return result, nil
	}

	body, err := json.Marshal([]map[string]any{application})
	if err != nil {
		return nil, fmt.Errorf("marshalling application : %w", err)
	}

	url := client.URL + "/rest/v1/vendors"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request : %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", client.AnonKey)
	req.Header.Set("Authorization", "Bearer "+client.AnonKey)
	req.Header.Set("Prefer", "return=representation")

	resp, err := client.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submitting application : %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading resp body : %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("submission rejected with %s : %s", resp.Status, respBody)
	}

	var inserted []map[string]any
	if err := json.Unmarshal(respBody, &inserted); err != nil {
		return nil, fmt.Errorf("unmarshalling representation : %w", err)
	}
	if len(inserted) == 0 {
		return map[string]any{}, nil
	}
	return inserted[0], nil
}
