package classifier

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// MaxImageSize caps how much of a remote image is downloaded.
const MaxImageSize = 20 * 1024 * 1024 // 20 MB

// allowedImageTypes is the set of MIME types accepted for classification.
// net/http.DetectContentType handles JPEG, PNG, and GIF via magic-byte
// sniffing. WebP is detected separately because the WHATWG sniff spec (and
// therefore the stdlib) does not include a WebP signature.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// isWebP reports whether data is a WebP image (RIFF container with "WEBP" at
// offset 8).
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

// DetectImageMIME returns the detected MIME type and true if the data is an
// accepted image format, or ("", false) otherwise. The Content-Type the remote
// server claims is ignored.
func DetectImageMIME(data []byte) (string, bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}

// FetchImage downloads imageURL for backends that need the image bytes rather
// than a link. It returns the data and its sniffed MIME type.
func FetchImage(ctx context.Context, client *http.Client, imageURL string) ([]byte, string, error) {
	if err := ValidateImageURL(imageURL); err != nil {
		return nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("invalid image url: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close image response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) > MaxImageSize {
		return nil, "", fmt.Errorf("image exceeds %d bytes", MaxImageSize)
	}

	mimeType, ok := DetectImageMIME(data)
	if !ok {
		return nil, "", fmt.Errorf("unsupported image format")
	}
	return data, mimeType, nil
}
