package aurahub

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/disintegration/imaging"
)

func encodeTestImage(t *testing.T, width, height int, format imaging.Format) []byte {
	t.Helper()

	img := imaging.New(width, height, color.White)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		t.Fatalf("encoding test image : %v", err)
	}
	return buf.Bytes()
}

func TestFetchProductImage(t *testing.T) {
	t.Run("should accept a png by sniffing its content", func(t *testing.T) {
		png := encodeTestImage(t, 10, 10, imaging.PNG)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Deliberately wrong content type: sniffing must win.
			w.Header().Set("Content-Type", "text/plain")
			w.Write(png)
		}))
		defer server.Close()

		data, err := FetchProductImage(context.Background(), server.Client(), server.URL)
		if err != nil {
			t.Fatalf("fetching image : %v", err)
		}
		if !bytes.Equal(data, png) {
			t.Fatal("\nwanted:\nthe served bytes\ngot:\ndifferent content")
		}
	})

	t.Run("should reject non-image content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte("<html>not an image</html>"))
		}))
		defer server.Close()

		_, err := FetchProductImage(context.Background(), server.Client(), server.URL)
		if !errors.Is(err, ErrUnsupportedImageType) {
			t.Fatalf("\nwanted:\nErrUnsupportedImageType\ngot:\n%v", err)
		}
	})

	t.Run("should return ErrImageFetch on a non-200 response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer server.Close()

		_, err := FetchProductImage(context.Background(), server.Client(), server.URL)
		if !errors.Is(err, ErrImageFetch) {
			t.Fatalf("\nwanted:\nErrImageFetch\ngot:\n%v", err)
		}
	})

	t.Run("should return ErrImageFetch when the host is unreachable", func(t *testing.T) {
		_, err := FetchProductImage(context.Background(), nil, "http://127.0.0.1:1")
		if !errors.Is(err, ErrImageFetch) {
			t.Fatalf("\nwanted:\nErrImageFetch\ngot:\n%v", err)
		}
	})
}

func TestNormalizeImage(t *testing.T) {
	t.Run("should cap the long edge at 1024 and re-encode as jpeg", func(t *testing.T) {
		oversized := encodeTestImage(t, 2048, 512, imaging.PNG)

		normalized, err := NormalizeImage(oversized)
		if err != nil {
			t.Fatalf("normalizing image : %v", err)
		}

		img, err := imaging.Decode(bytes.NewReader(normalized))
		if err != nil {
			t.Fatalf("decoding normalized image : %v", err)
		}
		if img.Bounds().Dx() != 1024 || img.Bounds().Dy() != 256 {
			t.Fatalf("\nwanted:\n1024x256\ngot:\n%dx%d", img.Bounds().Dx(), img.Bounds().Dy())
		}
	})

	t.Run("should leave small images at their original size", func(t *testing.T) {
		small := encodeTestImage(t, 200, 300, imaging.JPEG)

		normalized, err := NormalizeImage(small)
		if err != nil {
			t.Fatalf("normalizing image : %v", err)
		}

		img, err := imaging.Decode(bytes.NewReader(normalized))
		if err != nil {
			t.Fatalf("decoding normalized image : %v", err)
		}
		if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 300 {
			t.Fatalf("\nwanted:\n200x300\ngot:\n%dx%d", img.Bounds().Dx(), img.Bounds().Dy())
		}
	})

	t.Run("should fail on undecodable input", func(t *testing.T) {
		if _, err := NormalizeImage([]byte("garbage")); err == nil {
			t.Fatal("\nwanted:\na decode error\ngot:\nnil")
		}
	})
}

func TestImagePayload(t *testing.T) {
	t.Run("should round-trip raw bytes", func(t *testing.T) {
		raw := []byte{0x01, 0x02, 0xff}

		decoded, err := DecodeImagePayload(EncodeImagePayload(raw))
		if err != nil {
			t.Fatalf("decoding payload : %v", err)
		}
		if !bytes.Equal(decoded, raw) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", raw, decoded)
		}
	})

	t.Run("should tolerate a data-url header", func(t *testing.T) {
		decoded, err := DecodeImagePayload("data:image/png;base64,aGVsbG8=")
		if err != nil {
			t.Fatalf("decoding payload : %v", err)
		}
		if string(decoded) != "hello" {
			t.Fatalf("\nwanted:\nhello\ngot:\n%s", decoded)
		}
	})

	t.Run("should reject malformed base64", func(t *testing.T) {
		if _, err := DecodeImagePayload("%%%not base64%%%"); err == nil {
			t.Fatal("\nwanted:\na decode error\ngot:\nnil")
		}
	})
}
