package enums

// UserRole distinguishes storefront customers from catalog administrators.
type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleAdmin    UserRole = "admin"
)

// Valid reports whether the role is a known value.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleCustomer, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) String() string {
	return string(r)
}
