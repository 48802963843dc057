package shared

// Caller is the resolved identity of the authenticated requester, built by
// the auth middleware from the token claims. Services receive it instead of
// looking capabilities up themselves; the admin-gated listing only consults
// IsAdmin().
type Caller struct {
	UserID string
	Email  string
	Role   string
}

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}
