package domain

// Role identifies which kind of account a token was issued to.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleClientAdmin Role = "client-admin"
	RoleClientUser  Role = "client-user"
	RoleEmployee    Role = "employee"
	RoleRetailer    Role = "retailer"
	RoleCandidate   Role = "candidate"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleClientAdmin, RoleClientUser, RoleEmployee, RoleRetailer, RoleCandidate:
		return true
	}
	return false
}
