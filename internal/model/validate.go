package model

import (
	"strings"
	"time"
)

// ValidationErrors maps a field name to its failure message.
type ValidationErrors map[string]string

// Valid reports whether no field failed.
func (e ValidationErrors) Valid() bool { return len(e) == 0 }

// ValidateCropDraft checks the fields a caller must supply before a crop
// upload. The store itself does not validate; this runs at the form boundary.
func ValidateCropDraft(c Crop) ValidationErrors {
	errs := ValidationErrors{}

	if len(strings.TrimSpace(c.Name)) < 2 {
		errs["name"] = "Crop name must be at least 2 characters long"
	}
	if c.Quantity < 1 {
		errs["quantity"] = "Quantity must be at least 1"
	}
	if len(strings.TrimSpace(c.Location)) < 5 {
		errs["location"] = "Location must be at least 5 characters long"
	}

	var harvested, freshUntil time.Time
	if c.HarvestedDate == "" {
		errs["harvestedDate"] = "Harvested date is required"
	} else if t, err := parseDate(c.HarvestedDate); err != nil {
		errs["harvestedDate"] = "Provide a valid harvested date"
	} else {
		harvested = t
	}
	if c.FreshUntilDate == "" {
		errs["freshUntilDate"] = "Fresh-until date is required"
	} else if t, err := parseDate(c.FreshUntilDate); err != nil {
		errs["freshUntilDate"] = "Provide a valid fresh-until date"
	} else {
		freshUntil = t
	}
	if !harvested.IsZero() && !freshUntil.IsZero() && freshUntil.Before(harvested) {
		errs["freshUntilDate"] = "Fresh-until date must be after harvested date"
	}

	return errs
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
