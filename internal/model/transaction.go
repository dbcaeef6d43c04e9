package model

// EventType tags a provenance ledger entry.
type EventType string

const (
	EventCropUpload        EventType = "crop_upload"
	EventForwardToRetailer EventType = "forward_to_retailer"
	EventMarkAvailable     EventType = "mark_available"
	EventPurchase          EventType = "purchase"
)

var eventDisplayNames = map[EventType]string{
	EventCropUpload:        "Crop Uploaded",
	EventForwardToRetailer: "Forwarded to Retailer",
	EventMarkAvailable:     "Marked Available",
	EventPurchase:          "Purchased",
}

// Display returns the human-readable event type name.
func (t EventType) Display() string {
	if name, ok := eventDisplayNames[t]; ok {
		return name
	}
	return string(t)
}

// TransactionEvent is one immutable entry in the provenance ledger. Entries
// are only ever appended; never mutated or deleted.
type TransactionEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	CropID    string    `json:"crop_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Timestamp string    `json:"timestamp"`
	Details   string    `json:"details"`

	// Populated for purchase events only.
	Quantity    int     `json:"quantity,omitempty"`
	TotalAmount float64 `json:"total_amount,omitempty"`
}
