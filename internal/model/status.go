package model

// CropStatus is the crop's position in the supply chain.
type CropStatus string

const (
	StatusPlanted          CropStatus = "planted"
	StatusHarvested        CropStatus = "harvested"
	StatusInTransit        CropStatus = "in_transit"
	StatusAtDistributor    CropStatus = "at_distributor"
	StatusAtRetailer       CropStatus = "at_retailer"
	StatusAvailableForSale CropStatus = "available_for_sale"
	StatusSold             CropStatus = "sold"
)

// statusFlow is the ordered chain a crop moves through. StatusPlanted is kept
// for records seeded before upload but is not reachable through current flows.
var statusFlow = map[CropStatus]CropStatus{
	StatusPlanted:          StatusHarvested,
	StatusHarvested:        StatusInTransit,
	StatusInTransit:        StatusAtDistributor,
	StatusAtDistributor:    StatusAtRetailer,
	StatusAtRetailer:       StatusAvailableForSale,
	StatusAvailableForSale: StatusSold,
}

var statusDisplayNames = map[CropStatus]string{
	StatusPlanted:          "Planted",
	StatusHarvested:        "Harvested",
	StatusInTransit:        "In Transit",
	StatusAtDistributor:    "At Distributor",
	StatusAtRetailer:       "At Retailer",
	StatusAvailableForSale: "Available for Sale",
	StatusSold:             "Sold",
}

// Valid reports whether s is a member of the status vocabulary.
func (s CropStatus) Valid() bool {
	_, ok := statusDisplayNames[s]
	return ok
}

// Next returns the following status in the chain, or s itself when the chain
// ends (or s is unknown).
func (s CropStatus) Next() CropStatus {
	if next, ok := statusFlow[s]; ok {
		return next
	}
	return s
}

// Display returns the human-readable status name.
func (s CropStatus) Display() string {
	if name, ok := statusDisplayNames[s]; ok {
		return name
	}
	return string(s)
}

// NormalizeLegacyStatus maps a legacy product status tag onto the vocabulary.
// It is total: any unrecognized value maps to StatusHarvested.
func NormalizeLegacyStatus(raw string) CropStatus {
	switch raw {
	case "pending", "approved":
		return StatusHarvested
	case "in_transit", "intransit":
		return StatusInTransit
	default:
		return StatusHarvested
	}
}
