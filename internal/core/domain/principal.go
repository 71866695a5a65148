package domain

// Principal is the identity reconstructed from a verified token. It is built
// fresh per request, is immutable after construction, and is never persisted.
// Roles are the snapshot captured at token issuance: a role change takes
// effect only when the user logs in again and a new token is minted.
type Principal struct {
	UserID   string
	Username string
	Roles    []string
}

// HasRole reports whether the principal's role snapshot contains role.
func (p *Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the principal may bypass ownership checks.
func (p *Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}
