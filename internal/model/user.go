package model

// Role drives which mutations a user may legally perform. The engine stores
// the attribute; enforcement lives in the surrounding UI.
type Role string

const (
	RoleFarmer      Role = "farmer"
	RoleDistributor Role = "distributor"
	RoleRetailer    Role = "retailer"
	RoleConsumer    Role = "consumer"
	RoleAdmin       Role = "admin"
)

var roleDisplayNames = map[Role]string{
	RoleFarmer:      "Farmer",
	RoleDistributor: "Distributor",
	RoleRetailer:    "Retailer",
	RoleConsumer:    "Consumer",
	RoleAdmin:       "Admin",
}

// Valid reports whether r is a known role key.
func (r Role) Valid() bool {
	_, ok := roleDisplayNames[r]
	return ok
}

// Display returns the human-readable role name.
func (r Role) Display() string {
	if name, ok := roleDisplayNames[r]; ok {
		return name
	}
	return string(r)
}

// ParseRole normalizes a role value that may arrive either as a key or as a
// display name ("Distributor"). Unrecognized values pass through unchanged.
func ParseRole(raw string) Role {
	r := Role(raw)
	if r.Valid() {
		return r
	}
	for key, display := range roleDisplayNames {
		if display == raw {
			return key
		}
	}
	return r
}

// User is an account in the chain. Role is fixed at registration. Token is
// only set on the session user, issued by the auth collaborator.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at,omitempty"`
	Token     string `json:"token,omitempty"`
}

// CanActOn reports whether a user of this role may advance the given crop,
// mirroring the stage each role operates at.
func (u User) CanActOn(c Crop) bool {
	switch u.Role {
	case RoleFarmer:
		return c.Status == StatusPlanted
	case RoleDistributor:
		return c.Status == StatusAtDistributor
	case RoleRetailer:
		return c.Status == StatusAtRetailer
	case RoleConsumer:
		return c.Status == StatusAvailableForSale
	default:
		return false
	}
}
