package aurahub

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

// RestrictedImageMessage is shown when the product image cannot be fetched
// for the try-on, typically because the host restricts cross-origin access.
const RestrictedImageMessage = "Product image access restricted (CORS). Try uploading a product image manually in a real scenario."

const maxImageEdge = 1024

var (
	// ErrImageFetch marks a failed product-image download.
	ErrImageFetch = errors.New("fetching product image")
	// ErrUnsupportedImageType is returned when fetched data is not JPEG or PNG.
	ErrUnsupportedImageType = errors.New("unsupported image type")

	dataURLPrefix = regexp.MustCompile(`^data:image/(png|jpeg|jpg);base64,`)
)

// FetchProductImage downloads a product image and verifies it is JPEG or PNG
// by sniffing the content, not trusting the response headers.
func FetchProductImage(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request : %w", errors.Join(ErrImageFetch, err))
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("getting %s : %w", url, errors.Join(ErrImageFetch, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("getting %s : %w: %s", url, ErrImageFetch, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading image body : %w", errors.Join(ErrImageFetch, err))
	}

	mtype := mimetype.Detect(data)
	if !mtype.Is("image/jpeg") && !mtype.Is("image/png") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImageType, mtype.String())
	}
	return data, nil
}

// NormalizeImage decodes an image, caps its long edge at 1024 pixels, and
// re-encodes it as JPEG so inline payloads sent to the AI stay small.
func NormalizeImage(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image : %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxImageEdge || bounds.Dy() > maxImageEdge {
		img = imaging.Fit(img, maxImageEdge, maxImageEdge, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("encoding image : %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeImagePayload encodes raw image bytes for an inline AI request part.
func EncodeImagePayload(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeImagePayload decodes a base64 image payload, tolerating an optional
// data-URL header.
func DecodeImagePayload(payload string) ([]byte, error) {
	clean := dataURLPrefix.ReplaceAllString(payload, "")
	data, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("decoding image payload : %w", err)
	}
	return data, nil
}
