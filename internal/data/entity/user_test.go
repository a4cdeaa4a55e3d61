package entity

import "testing"

func TestUserRole(t *testing.T) {
	for _, role := range Roles {
		if !role.Valid() {
			t.Fatalf("%s should be valid", role)
		}
	}
	if UserRole("customer").Valid() {
		t.Fatalf("roles are case-sensitive")
	}
	if got := RoleCustomer.Label(); got != "Customer" {
		t.Fatalf("Label = %q", got)
	}
}

func TestUserStoredHash(t *testing.T) {
	var u User
	if u.StoredHash() != "" {
		t.Fatalf("nil hash should read as empty")
	}
	hash := "$2a$10$x"
	u.PasswordHash = &hash
	if u.StoredHash() != hash {
		t.Fatalf("unexpected hash %q", u.StoredHash())
	}
}
