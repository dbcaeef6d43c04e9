package resolver

import (
	"encoding/json"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/farmchainx/trace-engine/internal/model"
)

// Payload is the JSON document embedded in a crop's QR code at upload time.
type Payload struct {
	CropID         string `json:"cropId"`
	Name           string `json:"name"`
	Farmer         string `json:"farmer"`
	Location       string `json:"location"`
	Timestamp      string `json:"timestamp"`
	HarvestedDate  string `json:"harvestedDate"`
	FreshUntilDate string `json:"freshUntilDate"`
}

// NewPayload builds the QR payload for a crop.
func NewPayload(crop model.Crop) Payload {
	return Payload{
		CropID:         crop.ID,
		Name:           crop.Name,
		Farmer:         crop.FarmerName,
		Location:       crop.Location,
		Timestamp:      crop.CreatedAt,
		HarvestedDate:  crop.HarvestedDate,
		FreshUntilDate: crop.FreshUntilDate,
	}
}

// Encode serializes the payload to its QR text form.
func (p Payload) Encode() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// EncodePNG renders the payload as a scannable QR image of size×size pixels.
func (p Payload) EncodePNG(size int) ([]byte, error) {
	text, err := p.Encode()
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(text, qrcode.Medium, size)
}

// ParsePayload reads a QR text payload; ok is false for non-JSON (legacy
// bare-identifier) payloads.
func ParsePayload(raw string) (Payload, bool) {
	var p Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Payload{}, false
	}
	return p, true
}
