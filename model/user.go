package model

// RoleAdmin is the role claim required for every catalog mutation.
const RoleAdmin = "admin"

// Identity is the caller identity resolved by the external user service.
// The admin service never verifies credentials itself; it trusts what the
// user service returns for the request token.
type Identity struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the identity carries the admin role claim.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}
