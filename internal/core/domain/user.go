package domain

import "time"

// Role identifies which business area a user belongs to.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSales      Role = "SALES"
	RoleFinance    Role = "FINANCE"
	RoleOperations Role = "OPERATIONS"
)

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleSales, RoleFinance, RoleOperations}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSales, RoleFinance, RoleOperations:
		return true
	}
	return false
}

// DashboardPath is the shared landing page for users whose role has no
// dedicated area.
const DashboardPath = "/dashboard"

// landingRoutes is the single source of truth for the role→landing mapping.
// Post-login redirects and the role router both read from here.
var landingRoutes = map[Role]string{
	RoleAdmin:      "/admin",
	RoleSales:      "/sales",
	RoleFinance:    "/finance",
	RoleOperations: "/operations",
}

// LandingRoute returns the landing path for a role, falling back to the
// shared dashboard for anything unmatched.
func LandingRoute(r Role) string {
	if path, ok := landingRoutes[r]; ok {
		return path
	}
	return DashboardPath
}

// User models an authenticated actor in the system. The password hash never
// leaves the backend.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Role          Role      `json:"role"`
	Department    string    `json:"department,omitempty"`
	EmailVerified bool      `json:"emailVerified"`
	PasswordHash  string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
