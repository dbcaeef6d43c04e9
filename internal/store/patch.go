package store

import "github.com/farmchainx/trace-engine/internal/model"

// CropPatch is a partial crop update. Nil fields keep the record's previous
// value; field presence is explicit so a zero value can still be applied.
// ID, QRCode and the farmer identity are not patchable.
type CropPatch struct {
	ID               string
	Name             *string
	Quantity         *int
	Location         *string
	Description      *string
	Status           *model.CropStatus
	FarmerPrice      *float64
	DistributorPrice *float64
	RetailerPrice    *float64
	Price            *float64
	Image            *string
	HarvestedDate    *string
	FreshUntilDate   *string
	AIScore          *float64
	AIVerdict        *string
}

func (p CropPatch) apply(c model.Crop) model.Crop {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Quantity != nil {
		c.Quantity = *p.Quantity
	}
	if p.Location != nil {
		c.Location = *p.Location
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.FarmerPrice != nil {
		c.FarmerPrice = model.Float(*p.FarmerPrice)
	}
	if p.DistributorPrice != nil {
		c.DistributorPrice = model.Float(*p.DistributorPrice)
	}
	if p.RetailerPrice != nil {
		c.RetailerPrice = model.Float(*p.RetailerPrice)
	}
	if p.Price != nil {
		c.Price = model.Float(*p.Price)
	}
	if p.Image != nil {
		c.Image = *p.Image
	}
	if p.HarvestedDate != nil {
		c.HarvestedDate = *p.HarvestedDate
	}
	if p.FreshUntilDate != nil {
		c.FreshUntilDate = *p.FreshUntilDate
	}
	if p.AIScore != nil {
		c.AIScore = model.Float(*p.AIScore)
	}
	if p.AIVerdict != nil {
		c.AIVerdict = model.String(*p.AIVerdict)
	}
	return c
}

// UserPatch is a partial account update; nil fields keep previous values.
type UserPatch struct {
	ID       string
	Name     *string
	Email    *string
	Role     *model.Role
	IsActive *bool
}

func (p UserPatch) apply(u model.User) model.User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	return u
}
