// Package access decides whether a user may invoke a named capability.
// Pages and lifecycle actions are gated by capability tags carried on the
// user record; the admin role is a super-role that bypasses the tag set.
package access

import "stock-backend/internal/models"

// Capability is a named permission unit gating a page or action.
type Capability string

const (
	CapDashboard    Capability = "dashboard"
	CapProducts     Capability = "products"
	CapLocations    Capability = "locations"
	CapNewTransfer  Capability = "new-transfer"
	CapDispatch     Capability = "dispatch"
	CapReceive      Capability = "receive"
	CapAllTransfers Capability = "all-transfers"
	CapReports      Capability = "reports"
	CapUsers        Capability = "users"
	CapIntegration  Capability = "integration"
)

// AllCapabilities is the full tag vocabulary, in display order.
var AllCapabilities = []Capability{
	CapDashboard,
	CapProducts,
	CapLocations,
	CapNewTransfer,
	CapDispatch,
	CapReceive,
	CapAllTransfers,
	CapReports,
	CapUsers,
	CapIntegration,
}

// Roles known to the system.
const (
	RoleAdmin    = "admin"
	RoleDispatch = "dispatch"
	RoleReceiver = "receiver"
	RoleViewOnly = "view_only"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleDispatch, RoleReceiver, RoleViewOnly:
		return true
	}
	return false
}

// Can reports whether the user may invoke the capability. A nil user is
// never granted anything. Admin is granted every capability regardless of
// its explicit permission set; everyone else needs the tag in Permissions.
func Can(u *models.User, c Capability) bool {
	if u == nil {
		return false
	}
	if u.Role == RoleAdmin {
		return true
	}
	for _, p := range u.Permissions {
		if p == string(c) {
			return true
		}
	}
	return false
}

// DefaultPermissions returns the default tag set assigned when a user is
// created with, or switched to, the given role. The set is a convenience
// starting point; permissions remain editable afterwards.
func DefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		perms := make([]string, 0, len(AllCapabilities))
		for _, c := range AllCapabilities {
			perms = append(perms, string(c))
		}
		return perms
	case RoleDispatch:
		return []string{"dashboard", "products", "locations", "dispatch", "all-transfers"}
	case RoleReceiver:
		return []string{"dashboard", "products", "locations", "receive", "all-transfers"}
	case RoleViewOnly:
		return []string{"dashboard", "products", "locations", "all-transfers", "reports"}
	}
	return nil
}
