package constants

// PermissionRoles maps each permission to the role grants allowed to perform
// it. Route-level coarse check; ownership rules (e.g. a verified seller may
// only distribute for their own property) live in the engine services.
var PermissionRoles = map[string][]string{
	ViewData:         {UserRole, VerifiedSeller, Admin},
	DepositFunds:     {UserRole, VerifiedSeller, Admin},
	BuyTokens:        {UserRole, VerifiedSeller, Admin},
	CreateProperty:   {VerifiedSeller, Admin},
	EditProperty:     {VerifiedSeller, Admin},
	VerifyProperty:   {Admin},
	DistributeProfit: {VerifiedSeller, Admin},
	AssignRole:       {Admin},
	MarkRendered:     {Admin},
}

// AllowedRole returns true if any of the user's roles is allowed the permission.
func AllowedRole(permission string, roles []string) bool {
	allowed, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, have := range roles {
		for _, want := range allowed {
			if have == want {
				return true
			}
		}
	}
	return false
}
