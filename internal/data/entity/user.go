package entity

import "starter-kit/pkg/utils"

type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleCustomer UserRole = "CUSTOMER"
	RoleSeller   UserRole = "SELLER"
)

// Roles lists every registrable role in display order.
var Roles = []UserRole{RoleAdmin, RoleCustomer, RoleSeller}

func (r UserRole) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Label is the human readable form of the role: "CUSTOMER" -> "Customer".
func (r UserRole) Label() string {
	return utils.ToTitleCase(string(r))
}

type User struct {
	Base
	Email string `db:"email"`
	// PasswordHash is nil for accounts created without a credential.
	PasswordHash *string  `db:"password"`
	Name         string   `db:"name"`
	Role         UserRole `db:"role"`
}

// StoredHash returns the bcrypt hash or "" when the account has none.
func (u *User) StoredHash() string {
	if u.PasswordHash == nil {
		return ""
	}
	return *u.PasswordHash
}
