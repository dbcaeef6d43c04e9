package model

// DefaultCropImage is used when neither the uploader nor the remote product
// supplies an image.
const DefaultCropImage = "https://placehold.co/600x400?text=Crop"

// Crop is the canonical traceability record for one produce lot.
//
// InventoryID and ProductID are weak back-references to the remote backend;
// they never carry ownership. Pricing and AI fields are nullable: once set
// locally they are never cleared by a reconciliation pass.
type Crop struct {
	ID          string     `json:"id"`
	InventoryID string     `json:"inventory_id,omitempty"`
	ProductID   string     `json:"product_id,omitempty"`
	Name        string     `json:"name"`
	Quantity    int        `json:"quantity"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	Status      CropStatus `json:"status"`

	FarmerPrice      *float64 `json:"farmer_price"`
	DistributorPrice *float64 `json:"distributor_price"`
	RetailerPrice    *float64 `json:"retailer_price"`
	Price            *float64 `json:"price"`

	FarmerID   string `json:"farmer_id"`
	FarmerName string `json:"farmer_name"`

	CreatedAt      string `json:"created_at"`
	HarvestedDate  string `json:"harvested_date,omitempty"`
	FreshUntilDate string `json:"fresh_until_date,omitempty"`

	Image  string `json:"image"`
	QRCode string `json:"qr_code"`

	AIScore   *float64 `json:"ai_score"`
	AIVerdict *string  `json:"ai_verdict"`
}

// EffectivePrice resolves the price a purchase is charged at: the base price
// when set, otherwise the deepest tier price known.
func (c Crop) EffectivePrice() float64 {
	for _, p := range []*float64{c.Price, c.RetailerPrice, c.DistributorPrice, c.FarmerPrice} {
		if p != nil {
			return *p
		}
	}
	return 0
}

// Clone returns a deep copy; pointer fields are duplicated so callers can
// never reach into store-owned state.
func (c Crop) Clone() Crop {
	cp := c
	cp.FarmerPrice = cloneFloat(c.FarmerPrice)
	cp.DistributorPrice = cloneFloat(c.DistributorPrice)
	cp.RetailerPrice = cloneFloat(c.RetailerPrice)
	cp.Price = cloneFloat(c.Price)
	cp.AIScore = cloneFloat(c.AIScore)
	if c.AIVerdict != nil {
		v := *c.AIVerdict
		cp.AIVerdict = &v
	}
	return cp
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// Float is a convenience for building nullable numeric fields.
func Float(v float64) *float64 { return &v }

// String is a convenience for building nullable string fields.
func String(v string) *string { return &v }
