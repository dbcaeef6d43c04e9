// Package resolver maps a typed code or a scanned QR image to exactly one
// crop record. Image decoding and record matching are separate steps so
// matching is testable without image fixtures.
package resolver

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/farmchainx/trace-engine/internal/model"
)

var (
	// ErrDecodeFailed means the image was unreadable or carried no code.
	// Recoverable by re-upload.
	ErrDecodeFailed = errors.New("could not decode image")
	// ErrNotFound means a code was read but matches no known crop.
	ErrNotFound = errors.New("no matching crop")
)

// ImageDecoder extracts the embedded payload string from image bytes.
// The default is DecodeImage; tests may substitute their own.
type ImageDecoder func(data []byte) (string, error)

// Resolver resolves codes and images against a crop collection.
type Resolver struct {
	decode ImageDecoder
}

// New returns a resolver using the QR image decoder.
func New() *Resolver {
	return &Resolver{decode: DecodeImage}
}

// NewWithDecoder returns a resolver with a custom image decode boundary.
func NewWithDecoder(decode ImageDecoder) *Resolver {
	return &Resolver{decode: decode}
}

// Resolve matches a human-entered code against crop ids and QR references.
// Input is trimmed and lower-cased; only exact matches count, first match
// wins. A miss returns ErrNotFound, never a panic.
func (r *Resolver) Resolve(code string, crops []model.Crop) (model.Crop, error) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if normalized == "" {
		return model.Crop{}, ErrNotFound
	}
	for _, c := range crops {
		if normalized == strings.ToLower(c.ID) || normalized == strings.ToLower(c.QRCode) {
			return c.Clone(), nil
		}
	}
	return model.Crop{}, fmt.Errorf("%w: %q", ErrNotFound, normalized)
}

// ResolveImage decodes a QR image and resolves its payload. Decode failures
// (ErrDecodeFailed) are distinct from resolution misses (ErrNotFound) so
// callers can show the right feedback.
func (r *Resolver) ResolveImage(data []byte, crops []model.Crop) (model.Crop, error) {
	raw, err := r.decode(data)
	if err != nil {
		return model.Crop{}, err
	}
	if raw == "" {
		return model.Crop{}, ErrDecodeFailed
	}
	return r.Resolve(extractCode(raw), crops)
}

// extractCode handles both payload shapes: a JSON QR payload carrying a
// cropId (or qrCode) field, and the legacy bare identifier string.
func extractCode(raw string) string {
	var payload struct {
		CropID string `json:"cropId"`
		QRCode string `json:"qrCode"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err == nil {
		if payload.CropID != "" {
			return payload.CropID
		}
		if payload.QRCode != "" {
			return payload.QRCode
		}
	}
	return raw
}
