package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmchainx/trace-engine/internal/model"
	"github.com/farmchainx/trace-engine/internal/remote/dto"
)

func testMapper() *Mapper {
	return &Mapper{
		nowFn:  func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) },
		codeFn: func() string { return "87654321" },
	}
}

func intPtr(v int) *int { return &v }

func sampleRow() dto.InventoryRow {
	return dto.InventoryRow{
		ID:       7,
		Quantity: intPtr(120),
		Stage:    "at_distributor",
		Product: &dto.ProductRow{
			ID:          3,
			Name:        "Basmati Rice",
			QuantityKg:  model.Float(120),
			HarvestDate: "2024-05-20",
			Location:    "Punjab",
			ImageURL:    "https://img.example/rice.jpg",
			Status:      "approved",
		},
		Owner: &dto.OwnerRow{ID: 11, Name: "John Farmer"},
	}
}

func TestMapper_MapRow_NewRowBecomesCrop(t *testing.T) {
	crop := testMapper().MapRow(sampleRow(), nil)

	assert.Equal(t, "7", crop.ID)
	assert.Equal(t, "7", crop.InventoryID)
	assert.Equal(t, "3", crop.ProductID)
	assert.Equal(t, "Basmati Rice", crop.Name)
	assert.Equal(t, 120, crop.Quantity)
	assert.Equal(t, "Punjab", crop.Location)
	assert.Equal(t, model.StatusAtDistributor, crop.Status)
	assert.Equal(t, "11", crop.FarmerID)
	assert.Equal(t, "John Farmer", crop.FarmerName)
	assert.Equal(t, "INV-7", crop.QRCode)
	assert.Equal(t, "2024-05-20", crop.CreatedAt)
}

func TestMapper_MapRow_PreservesLocalPricingAndAI(t *testing.T) {
	existing := []model.Crop{{
		ID:               "7",
		InventoryID:      "7",
		FarmerPrice:      model.Float(25),
		DistributorPrice: model.Float(32),
		RetailerPrice:    model.Float(40),
		Price:            model.Float(40),
		AIScore:          model.Float(92),
		AIVerdict:        model.String("Fresh"),
	}}

	row := sampleRow()
	row.Product.Price = model.Float(999)
	row.Product.AIScore = model.Float(10)

	crop := testMapper().MapRow(row, existing)

	assert.Equal(t, 25.0, *crop.FarmerPrice)
	assert.Equal(t, 32.0, *crop.DistributorPrice)
	assert.Equal(t, 40.0, *crop.RetailerPrice)
	assert.Equal(t, 40.0, *crop.Price)
	assert.Equal(t, 92.0, *crop.AIScore)
	assert.Equal(t, "Fresh", *crop.AIVerdict)
}

func TestMapper_MapRow_RemoteDescriptiveFieldsWin(t *testing.T) {
	existing := []model.Crop{{
		ID:          "7",
		InventoryID: "7",
		Name:        "Old Name",
		Location:    "Old Location",
		Image:       "old.jpg",
		Quantity:    5,
	}}

	crop := testMapper().MapRow(sampleRow(), existing)

	assert.Equal(t, "Basmati Rice", crop.Name)
	assert.Equal(t, "Punjab", crop.Location)
	assert.Equal(t, "https://img.example/rice.jpg", crop.Image)
	assert.Equal(t, 120, crop.Quantity)
}

func TestMapper_MapRow_LocalFallbackWhenRemoteBlank(t *testing.T) {
	existing := []model.Crop{{
		ID:          "7",
		InventoryID: "7",
		Name:        "Local Rice",
		Location:    "Local Farm Rd",
		Image:       "local.jpg",
		Quantity:    8,
	}}

	row := dto.InventoryRow{ID: 7, Stage: "harvested"}
	crop := testMapper().MapRow(row, existing)

	assert.Equal(t, "Local Rice", crop.Name)
	assert.Equal(t, "Local Farm Rd", crop.Location)
	assert.Equal(t, "local.jpg", crop.Image)
	assert.Equal(t, 8, crop.Quantity)
}

func TestMapper_MapRow_MissingProductGetsPlaceholders(t *testing.T) {
	crop := testMapper().MapRow(dto.InventoryRow{ID: 42}, nil)

	assert.Equal(t, "Unnamed Crop", crop.Name)
	assert.Equal(t, "Unknown location", crop.Location)
	assert.Equal(t, "Unknown Farmer", crop.FarmerName)
	assert.Equal(t, model.DefaultCropImage, crop.Image)
	assert.Equal(t, model.StatusHarvested, crop.Status)
}

func TestMapper_MapRow_LegacyStatusMapping(t *testing.T) {
	tests := []struct {
		stage  string
		legacy string
		want   model.CropStatus
	}{
		{"at_retailer", "pending", model.StatusAtRetailer},
		{"AT_RETAILER", "pending", model.StatusAtRetailer},
		{"", "pending", model.StatusHarvested},
		{"", "intransit", model.StatusInTransit},
		{"shipping", "rejected", model.StatusHarvested},
	}
	for _, tt := range tests {
		row := dto.InventoryRow{ID: 1, Stage: tt.stage, Product: &dto.ProductRow{ID: 2, Status: tt.legacy}}
		crop := testMapper().MapRow(row, nil)
		assert.Equal(t, tt.want, crop.Status, "stage=%q legacy=%q", tt.stage, tt.legacy)
	}
}

func TestMapper_MapRow_QRReferenceNeverChanges(t *testing.T) {
	existing := []model.Crop{{ID: "7", InventoryID: "7", QRCode: "12345678"}}
	crop := testMapper().MapRow(sampleRow(), existing)
	assert.Equal(t, "12345678", crop.QRCode)
}

func TestMapper_MapRow_Idempotent(t *testing.T) {
	m := testMapper()
	row := sampleRow()

	first := m.MapRow(row, nil)
	second := m.MapRow(row, []model.Crop{first})

	assert.Equal(t, first, second)
}

func TestMapper_MapRow_ZeroIDRowSynthesizesCode(t *testing.T) {
	crop := testMapper().MapRow(dto.InventoryRow{}, nil)
	assert.Equal(t, "87654321", crop.ID)
	assert.Equal(t, "INV-87654321", crop.QRCode)
	assert.Empty(t, crop.InventoryID)
}

func TestMapper_MapAll_KeepsEveryRow(t *testing.T) {
	rows := []dto.InventoryRow{
		sampleRow(),
		{ID: 8, Stage: "harvested", Product: &dto.ProductRow{ID: 4, Name: "Wheat"}},
	}
	crops := testMapper().MapAll(rows, nil)
	require.Len(t, crops, 2)
	assert.Equal(t, "7", crops[0].ID)
	assert.Equal(t, "8", crops[1].ID)
	assert.Equal(t, "Wheat", crops[1].Name)
}
