package access

import (
	"testing"

	"stock-backend/internal/models"
)

func TestCanAdminOverridesPermissions(t *testing.T) {
	// Admin with an empty explicit permission set is still granted everything.
	admin := &models.User{Role: RoleAdmin, Permissions: nil}
	for _, c := range AllCapabilities {
		if !Can(admin, c) {
			t.Errorf("admin denied %q", c)
		}
	}
}

func TestCanChecksPermissionSet(t *testing.T) {
	tests := []struct {
		name string
		user *models.User
		cap  Capability
		want bool
	}{
		{
			name: "view_only with dashboard only is denied dispatch",
			user: &models.User{Role: RoleViewOnly, Permissions: []string{"dashboard"}},
			cap:  CapDispatch,
			want: false,
		},
		{
			name: "granted tag is allowed",
			user: &models.User{Role: RoleDispatch, Permissions: []string{"dispatch"}},
			cap:  CapDispatch,
			want: true,
		},
		{
			name: "tag missing from set is denied",
			user: &models.User{Role: RoleReceiver, Permissions: []string{"receive", "dashboard"}},
			cap:  CapUsers,
			want: false,
		},
		{
			name: "duplicate tags are harmless",
			user: &models.User{Role: RoleReceiver, Permissions: []string{"receive", "receive"}},
			cap:  CapReceive,
			want: true,
		},
		{
			name: "nil user gets nothing",
			user: nil,
			cap:  CapDashboard,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Can(tt.user, tt.cap); got != tt.want {
				t.Errorf("Can() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultPermissions(t *testing.T) {
	if got := DefaultPermissions(RoleAdmin); len(got) != len(AllCapabilities) {
		t.Errorf("admin defaults have %d tags, want %d", len(got), len(AllCapabilities))
	}

	dispatch := DefaultPermissions(RoleDispatch)
	if !contains(dispatch, "dispatch") || contains(dispatch, "receive") {
		t.Errorf("dispatch defaults wrong: %v", dispatch)
	}
	// Dispatch operators move existing transfers; creating one is a
	// separately granted tag, not part of the role default.
	if contains(dispatch, "new-transfer") {
		t.Errorf("dispatch defaults include new-transfer: %v", dispatch)
	}

	receiver := DefaultPermissions(RoleReceiver)
	if !contains(receiver, "receive") || contains(receiver, "dispatch") {
		t.Errorf("receiver defaults wrong: %v", receiver)
	}

	viewOnly := DefaultPermissions(RoleViewOnly)
	if !contains(viewOnly, "reports") || contains(viewOnly, "users") {
		t.Errorf("view_only defaults wrong: %v", viewOnly)
	}

	if got := DefaultPermissions("bogus"); got != nil {
		t.Errorf("unknown role defaults = %v, want nil", got)
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleDispatch, RoleReceiver, RoleViewOnly} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false", role)
		}
	}
	if ValidRole("manager") {
		t.Error("ValidRole(manager) = true")
	}
}

func contains(set []string, tag string) bool {
	for _, s := range set {
		if s == tag {
			return true
		}
	}
	return false
}
