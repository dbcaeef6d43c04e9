// Package reconcile merges authoritative remote inventory rows with the
// locally-owned attributes the backend does not track.
package reconcile

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/farmchainx/trace-engine/internal/model"
	"github.com/farmchainx/trace-engine/internal/remote/dto"
)

const (
	unnamedCrop     = "Unnamed Crop"
	unknownLocation = "Unknown location"
	unknownFarmer   = "Unknown Farmer"
)

// Mapper converts remote inventory rows into crop records. Field precedence:
// descriptive fields are remote-wins with local fallback; pricing and AI
// fields are local-wins once set. Mapping the same row against the same
// local state twice yields identical output.
type Mapper struct {
	nowFn  func() time.Time
	codeFn func() string
}

// NewMapper returns a mapper using wall-clock time and random codes.
func NewMapper() *Mapper {
	return &Mapper{
		nowFn:  func() time.Time { return time.Now().UTC() },
		codeFn: model.EightDigitCode,
	}
}

// MapAll maps every row against the existing collection. Rows with no
// matching local record become newly discovered crops; they are never
// dropped.
func (m *Mapper) MapAll(rows []dto.InventoryRow, existing []model.Crop) []model.Crop {
	out := make([]model.Crop, 0, len(rows))
	for _, row := range rows {
		out = append(out, m.MapRow(row, existing))
	}
	return out
}

// MapRow maps one inventory row, preserving locally-known data from the
// matching record in existing, if any.
func (m *Mapper) MapRow(row dto.InventoryRow, existing []model.Crop) model.Crop {
	product := dto.ProductRow{}
	if row.Product != nil {
		product = *row.Product
	}
	owner := dto.OwnerRow{}
	if row.Owner != nil {
		owner = *row.Owner
	}

	invID := idString(row.ID)
	productID := idString(product.ID)
	local, found := findExisting(existing, invID, productID)

	crop := model.Crop{
		ID:          m.synthesizeID(local, found, invID, productID),
		InventoryID: invID,
		ProductID:   productID,
		Status:      normalizeStatus(row.Stage, product.Status),
		FarmerID:    idString(owner.ID),
	}

	crop.Name = firstNonEmpty(product.Name, local.Name, unnamedCrop)
	crop.Location = firstNonEmpty(product.Location, local.Location, unknownLocation)
	crop.Description = firstNonEmpty(product.Description, local.Description)
	crop.FarmerName = firstNonEmpty(owner.Name, unknownFarmer)
	crop.Image = firstNonEmpty(product.ImageURL, local.Image, model.DefaultCropImage)

	switch {
	case row.Quantity != nil:
		crop.Quantity = *row.Quantity
	case product.QuantityKg != nil:
		crop.Quantity = int(*product.QuantityKg)
	default:
		crop.Quantity = local.Quantity
	}

	crop.CreatedAt = firstNonEmpty(product.HarvestDate, local.CreatedAt, m.nowFn().Format(time.RFC3339))
	crop.HarvestedDate = firstNonEmpty(product.HarvestDate, local.HarvestedDate)
	crop.FreshUntilDate = firstNonEmpty(product.HarvestDate, local.FreshUntilDate)

	// Once set locally, pricing and AI fields always win over the remote
	// value; the backend does not model them long-term.
	crop.FarmerPrice = preferLocal(local.FarmerPrice, product.Price)
	crop.DistributorPrice = local.DistributorPrice
	crop.RetailerPrice = local.RetailerPrice
	crop.Price = preferLocal(local.Price, product.Price)
	crop.AIScore = preferLocal(local.AIScore, product.AIScore)
	crop.AIVerdict = local.AIVerdict
	if crop.AIVerdict == nil && product.AIVerdict != "" {
		crop.AIVerdict = model.String(product.AIVerdict)
	}

	// A QR reference never changes after creation.
	crop.QRCode = local.QRCode
	if crop.QRCode == "" {
		crop.QRCode = fmt.Sprintf("INV-%s", firstNonEmpty(invID, m.codeFn()))
	}

	return crop.Clone()
}

// findExisting matches by remote inventory id first, then by the record's
// own id against the row's inventory or product id.
func findExisting(existing []model.Crop, invID, productID string) (model.Crop, bool) {
	for _, c := range existing {
		if c.InventoryID != "" && invID != "" && c.InventoryID == invID {
			return c, true
		}
		if c.ID != "" && (c.ID == invID || (productID != "" && c.ID == productID)) {
			return c, true
		}
	}
	return model.Crop{}, false
}

func (m *Mapper) synthesizeID(local model.Crop, found bool, invID, productID string) string {
	if found && local.ID != "" {
		return local.ID
	}
	if invID != "" {
		return invID
	}
	if productID != "" {
		return productID
	}
	return m.codeFn()
}

// normalizeStatus prefers the row's own stage when it is a vocabulary
// member, falling back to the legacy product status mapping. Total: the
// result is always a vocabulary member.
func normalizeStatus(stage, legacy string) model.CropStatus {
	if s := model.CropStatus(strings.ToLower(stage)); s.Valid() {
		return s
	}
	return model.NormalizeLegacyStatus(strings.ToLower(legacy))
}

func preferLocal(local, remote *float64) *float64 {
	if local != nil {
		return local
	}
	return remote
}

func idString(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
