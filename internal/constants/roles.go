package constants

const (
	Admin          = "admin"
	VerifiedSeller = "verified_seller"
	UserRole       = "user"
)

// ValidRoles is the set of allowed values for a role grant.
var ValidRoles = []string{UserRole, VerifiedSeller, Admin}

// IsValidRole returns true if role is one of the allowed grant values.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
