package dto

const (
	RoleAdmin  = "admin"
	RoleVendor = "vendor"
)

// Principal is the authenticated console user, read from the bearer token.
type Principal struct {
	ID    string
	Email string
	Name  string
	Role  string
	IP    string
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
