// Package dto holds the wire shapes of the remote backend and the AI scorer.
// Field names follow the backend's JSON contract.
package dto

// InventoryRow is one authoritative inventory record as served by the
// backend. Nested payloads may be absent; consumers map missing product or
// owner data to zero-value defaults rather than failing.
type InventoryRow struct {
	ID       int64       `json:"id"`
	Quantity *int        `json:"quantity"`
	Stage    string      `json:"stage"`
	Product  *ProductRow `json:"product"`
	Owner    *OwnerRow   `json:"owner"`
}

type ProductRow struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	CropType     string   `json:"cropType"`
	QuantityKg   *float64 `json:"quantityKg"`
	QualityGrade string   `json:"qualityGrade"`
	HarvestDate  string   `json:"harvestDate"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Status       string   `json:"status"`
	ImageURL     string   `json:"imageUrl"`
	AIScore      *float64 `json:"aiScore"`
	AIVerdict    string   `json:"aiVerdict"`
	Price        *float64 `json:"price"`
}

type OwnerRow struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateProductRequest creates the product half of a crop upload.
type CreateProductRequest struct {
	Name         string   `json:"name"`
	CropType     string   `json:"cropType"`
	QuantityKg   float64  `json:"quantityKg"`
	QualityGrade string   `json:"qualityGrade"`
	AIScore      *float64 `json:"aiScore"`
	AIVerdict    *string  `json:"aiVerdict"`
	HarvestDate  string   `json:"harvestDate"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	ImageURL     string   `json:"imageUrl"`
	Price        float64  `json:"price"`
	Unit         string   `json:"unit"`
}

// CreateInventoryRequest registers the inventory half of a crop upload.
type CreateInventoryRequest struct {
	ProductID int64  `json:"productId"`
	OwnerID   int64  `json:"ownerId"`
	Quantity  int    `json:"quantity"`
	Stage     string `json:"stage"`
}

// UpdateInventoryRequest advances the stage of an inventory record.
type UpdateInventoryRequest struct {
	Stage string `json:"stage"`
}

// UserRow is a backend user record.
type UserRow struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

// AuthRequest carries login and registration credentials.
type AuthRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AuthResponse is the backend's answer to login/register. Any Message other
// than a success indicates failure; no session is established.
type AuthResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

// ScoreRequest submits a crop image (data URL) for AI quality scoring.
type ScoreRequest struct {
	Image string `json:"image"`
}

// ScoreResponse is the scorer's verdict for one image.
type ScoreResponse struct {
	AIScore      *float64 `json:"ai_score"`
	QualityLabel string   `json:"quality_label"`
}
