package aurahub

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultTextModel     = "gemini-3-flash-preview"
	defaultImageModel    = "gemini-2.5-flash-image"

	assistantTemperature = 0.7

	tryOnInstruction = "Generate a realistic image of the person in the first image wearing the clothing item shown in the second image. Maintain the person's pose, body shape, and the clothing's details and texture."

	// Fixed user-facing strings. AI failures are never surfaced as errors to
	// the page layer; they degrade to one of these.
	FallbackMissingKey   = "Aura System Alert: API Key missing. Please configure your environment."
	FallbackEmptyText    = "Aura রিক্যালিব্রেট করছে... দয়া করে আবার চেষ্টা করুন।"
	FallbackDisconnected = "Aura কানেকশন বিচ্ছিন্ন হয়েছে। সিস্টেম লগ চেক করুন।"
)

var (
	// ErrNoAPIKey is returned by image generation when no key is configured.
	ErrNoAPIKey = errors.New("gemini api key is not configured")
	// ErrNoImagePart signals that the model response contained no image part.
	ErrNoImagePart = errors.New("no image part in model response")
)

// GeminiClient talks to the generative AI service behind the assistant chat
// and the virtual try-on. The zero BaseURL and model names fall back to the
// production defaults; tests point BaseURL at a local server.
type GeminiClient struct {
	APIKey     string
	TextModel  string
	ImageModel string
	BaseURL    string
	Client     *http.Client

	store *Store
}

// NewGeminiClient builds a client bound to the store the assistant context is
// derived from.
func NewGeminiClient(store *Store, apiKey string) *GeminiClient {
	client := &GeminiClient{
		APIKey:     apiKey,
		TextModel:  defaultTextModel,
		ImageModel: defaultImageModel,
		BaseURL:    defaultGeminiBaseURL,
		Client:     &http.Client{Timeout: 10 * time.Second},
		store:      store,
	}
	if cfg := store.Config(); cfg != nil {
		if cfg.GeminiTextModel != "" {
			client.TextModel = cfg.GeminiTextModel
		}
		if cfg.GeminiImageModel != "" {
			client.ImageModel = cfg.GeminiImageModel
		}
	}
	return client
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (client *GeminiClient) generateContent(ctx context.Context, model string, request geminiRequest) (*geminiResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshalling request : %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", client.BaseURL, model, client.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request : %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling model %s : %w", model, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading resp body : %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model %s returned %s : %s", model, resp.Status, respBody)
	}

	var decoded geminiResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("unmarshalling response : %w", err)
	}
	return &decoded, nil
}

// AssistantContext builds the system instruction for the assistant from the
// live merged data: the current top products and the vendor roster.
func (store *Store) AssistantContext() string {
	products := store.Products()
	if len(products) > 5 {
		products = products[:5]
	}

	vendorNames := make(map[int]string)
	for _, vendor := range store.Vendors() {
		vendorNames[vendor.ID] = vendor.Name
	}

	lines := make([]string, 0, len(products))
	for _, product := range products {
		external := "No"
		if product.ExternalURL != "" {
			external = "Yes"
		}
		lines = append(lines, fmt.Sprintf("- %s (৳%s) by %s. External Link: %s",
			product.Name,
			strconv.FormatFloat(product.Price, 'f', -1, 64),
			vendorNames[product.VendorID],
			external))
	}

	return fmt.Sprintf(`
Identity: AURA AI - Supreme Soul of SNEHALATA-স্নেহলতা Hub.
Role: Multi-vendor ecosystem guardian and luxury fashion curator focused on Bangladesh.

Live Ecosystem Data:
%s

Rules:
1. Language Style: Use a mix of Bengali and English (Banglish style preferred). Formal, poetic, yet data-driven. Example: "আপনার স্টাইলের জন্য এই কালেকশনটি পারফেক্ট।"
2. Priority: "Bangladesh 1st". Always emphasize local heritage, Dhakai craftsmanship, and Bangladeshi culture.
3. If user asks about specific items, recommend from the list using mixed language.
4. If a product has an External Link, explicitly tell the user: "আপনি 'Official Site' বাটনে ক্লিক করে সরাসরি ভেন্ডরের ওয়েবসাইট থেকে কিনতে পারেন।"
5. If analyzing a new vendor (user input starts with "Audit:"), act as a strict governance officer checking for Bangladesh trade licenses.
6. NEVER recommend 'BLOCKED' vendors.
`, strings.Join(lines, "\n"))
}

// GenerateAuraResponse runs the assistant chat for a user prompt. It never
// returns an error: a missing key, a transport failure, or an empty model
// answer each degrade to the corresponding fixed fallback string.
func (client *GeminiClient) GenerateAuraResponse(ctx context.Context, userPrompt string) string {
	if client.APIKey == "" {
		return FallbackMissingKey
	}

	request := geminiRequest{
		Contents:          []geminiContent{{Parts: []geminiPart{{Text: userPrompt}}}},
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: client.store.AssistantContext()}}},
		GenerationConfig:  &geminiGenerationConfig{Temperature: assistantTemperature},
	}

	response, err := client.generateContent(ctx, client.TextModel, request)
	if err != nil {
		return FallbackDisconnected
	}

	for _, candidate := range response.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				return part.Text
			}
		}
	}
	return FallbackEmptyText
}

// GenerateTryOnTransformation sends a user photo and a product photo, both as
// base64-encoded JPEG data (with or without a data-URL header), together with
// the fixed try-on instruction. It returns the generated composite as a PNG
// data URL, or ErrNoImagePart when the response carried no image.
func (client *GeminiClient) GenerateTryOnTransformation(ctx context.Context, userImageB64, productImageB64 string) (string, error) {
	if client.APIKey == "" {
		return "", ErrNoAPIKey
	}

	cleanUserImage := dataURLPrefix.ReplaceAllString(userImageB64, "")
	cleanProductImage := dataURLPrefix.ReplaceAllString(productImageB64, "")

	request := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{
			{InlineData: &geminiInlineData{MimeType: "image/jpeg", Data: cleanUserImage}},
			{InlineData: &geminiInlineData{MimeType: "image/jpeg", Data: cleanProductImage}},
			{Text: tryOnInstruction},
		}}},
	}

	response, err := client.generateContent(ctx, client.ImageModel, request)
	if err != nil {
		return "", fmt.Errorf("generating try-on composite : %w", err)
	}

	for _, candidate := range response.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil {
				return "data:image/png;base64," + part.InlineData.Data, nil
			}
		}
	}
	return "", ErrNoImagePart
}
