// Package ledger turns the flat provenance event log into per-crop
// narratives and streams appended events to the provenance topic.
package ledger

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/farmchainx/trace-engine/internal/model"
)

// Step is one entry in a crop's journey timeline.
type Step struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
	Status      string `json:"status"`
	Icon        string `json:"icon"`
}

// Journey reconstructs the ordered timeline for one crop: a synthetic
// "created" step, every ledger entry referencing the crop sorted ascending
// by timestamp (ties keep ledger order), and a final synthetic step for the
// crop's live status at now. The result is never empty and the final step
// is always last.
func Journey(crop model.Crop, events []model.TransactionEvent, now time.Time) []Step {
	journey := []Step{{
		ID:          "created",
		Title:       "Crop Planted",
		Description: fmt.Sprintf("%s was planted at %s", crop.Name, crop.Location),
		Timestamp:   crop.CreatedAt,
		Status:      "completed",
		Icon:        "🌱",
	}}

	var matched []model.TransactionEvent
	for _, e := range events {
		if e.CropID == crop.ID {
			matched = append(matched, e)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return eventTime(matched[i]).Before(eventTime(matched[j]))
	})

	for _, e := range matched {
		title, description, icon := describe(e)
		journey = append(journey, Step{
			ID:          "transaction-" + e.ID,
			Title:       title,
			Description: description,
			Timestamp:   e.Timestamp,
			Status:      "completed",
			Icon:        icon,
		})
	}

	statusText := strings.ReplaceAll(string(crop.Status), "_", " ")
	journey = append(journey, Step{
		ID:          "current",
		Title:       "Current Status: " + strings.ToUpper(statusText),
		Description: "The crop is currently " + statusText,
		Timestamp:   now.Format(time.RFC3339),
		Status:      "current",
		Icon:        "📍",
	})

	return journey
}

// describe is total over event types: an unrecognized type falls back to a
// generic status update carrying the event's free text.
func describe(e model.TransactionEvent) (title, description, icon string) {
	switch e.Type {
	case model.EventCropUpload:
		return "Crop Harvested & Uploaded", fmt.Sprintf("Farmer %s uploaded the crop", e.UserName), "📤"
	case model.EventForwardToRetailer:
		return "Forwarded to Retailer", fmt.Sprintf("Distributor %s forwarded the crop", e.UserName), "🚚"
	case model.EventMarkAvailable:
		return "Available for Sale", fmt.Sprintf("Retailer %s marked as available", e.UserName), "🏪"
	case model.EventPurchase:
		return "Purchased by Consumer", fmt.Sprintf("Consumer %s purchased the crop", e.UserName), "🛒"
	default:
		return "Status Update", e.Details, "📝"
	}
}

func eventTime(e model.TransactionEvent) time.Time {
	t, err := time.Parse(time.RFC3339, e.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}
