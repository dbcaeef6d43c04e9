package resolver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmchainx/trace-engine/internal/model"
)

var crops = []model.Crop{
	{ID: "42", Name: "Tomatoes", QRCode: "INV-42"},
	{ID: "abc-123", Name: "Lettuce", QRCode: "87654321"},
}

func TestResolver_Resolve_MatchesIDAndQRCode(t *testing.T) {
	r := New()

	byID, err := r.Resolve("42", crops)
	require.NoError(t, err)
	assert.Equal(t, "Tomatoes", byID.Name)

	byQR, err := r.Resolve("INV-42", crops)
	require.NoError(t, err)
	assert.Equal(t, "Tomatoes", byQR.Name)
}

func TestResolver_Resolve_NormalizesInput(t *testing.T) {
	r := New()

	crop, err := r.Resolve("  inv-42  ", crops)
	require.NoError(t, err)
	assert.Equal(t, "42", crop.ID)

	crop, err = r.Resolve("ABC-123", crops)
	require.NoError(t, err)
	assert.Equal(t, "Lettuce", crop.Name)
}

func TestResolver_Resolve_MissReturnsNotFound(t *testing.T) {
	r := New()

	_, err := r.Resolve("99", crops)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.Resolve("", crops)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.Resolve("42", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolver_Resolve_NoPartialMatches(t *testing.T) {
	r := New()
	_, err := r.Resolve("INV-4", crops)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolver_ResolveImage_JSONPayload(t *testing.T) {
	r := NewWithDecoder(func([]byte) (string, error) {
		return `{"cropId":"abc-123","name":"Lettuce"}`, nil
	})

	crop, err := r.ResolveImage([]byte("png-bytes"), crops)
	require.NoError(t, err)
	assert.Equal(t, "Lettuce", crop.Name)
}

func TestResolver_ResolveImage_BarePayload(t *testing.T) {
	r := NewWithDecoder(func([]byte) (string, error) {
		return "INV-42", nil
	})

	crop, err := r.ResolveImage([]byte("png-bytes"), crops)
	require.NoError(t, err)
	assert.Equal(t, "Tomatoes", crop.Name)
}

func TestResolver_ResolveImage_DecodeFailureIsDistinct(t *testing.T) {
	r := NewWithDecoder(func([]byte) (string, error) {
		return "", ErrDecodeFailed
	})

	_, err := r.ResolveImage([]byte("garbage"), crops)
	assert.ErrorIs(t, err, ErrDecodeFailed)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestResolver_ResolveImage_DecodedMissIsNotFound(t *testing.T) {
	r := NewWithDecoder(func([]byte) (string, error) {
		return "99999999", nil
	})

	_, err := r.ResolveImage([]byte("png-bytes"), crops)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDecodeImage_GarbageBytes(t *testing.T) {
	_, err := DecodeImage([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrDecodeFailed)
}
