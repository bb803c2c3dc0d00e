package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"stock-backend/internal/access"
	"stock-backend/internal/apperrors"
	"stock-backend/internal/auth"
	"stock-backend/internal/config"
	"stock-backend/internal/memstore"
	"stock-backend/internal/models"
)

func newUserService(t *testing.T) (*UserService, *memstore.Store) {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "stock-backend-test"
	store := memstore.New()
	return NewUserService(store.Users, auth.NewJWTManager(cfg)), store
}

func TestCreateUserDefaultsPermissions(t *testing.T) {
	service, _ := newUserService(t)
	ctx := context.Background()

	user, err := service.CreateUser(ctx, &models.CreateUserRequest{
		Email:    "dispatch@fairfield.com",
		Name:     "Dispatch Desk",
		Password: "secret123",
		Role:     access.RoleDispatch,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.ID == "" {
		t.Error("store did not assign an id")
	}
	if !user.Active {
		t.Error("active should default to true")
	}
	if user.PasswordHash == "secret123" || user.PasswordHash == "" {
		t.Error("password was not hashed")
	}
	if !reflect.DeepEqual(user.Permissions, access.DefaultPermissions(access.RoleDispatch)) {
		t.Errorf("permissions = %v, want dispatch defaults", user.Permissions)
	}
}

func TestCreateUserValidation(t *testing.T) {
	service, _ := newUserService(t)
	ctx := context.Background()

	base := func() *models.CreateUserRequest {
		return &models.CreateUserRequest{
			Email:    "a@b.com",
			Name:     "A",
			Password: "pw",
			Role:     access.RoleViewOnly,
		}
	}

	tests := []struct {
		name   string
		mutate func(*models.CreateUserRequest)
	}{
		{"missing email", func(r *models.CreateUserRequest) { r.Email = "" }},
		{"missing name", func(r *models.CreateUserRequest) { r.Name = "" }},
		{"missing password", func(r *models.CreateUserRequest) { r.Password = "" }},
		{"unknown role", func(r *models.CreateUserRequest) { r.Role = "superuser" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base()
			tt.mutate(req)
			_, err := service.CreateUser(ctx, req)
			var verr *apperrors.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("err = %v, want ValidationError", err)
			}
		})
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	service, _ := newUserService(t)
	ctx := context.Background()

	req := &models.CreateUserRequest{
		Email:    "dup@fairfield.com",
		Name:     "First",
		Password: "pw",
		Role:     access.RoleViewOnly,
	}
	if _, err := service.CreateUser(ctx, req); err != nil {
		t.Fatal(err)
	}

	req.Name = "Second"
	_, err := service.CreateUser(ctx, req)
	var verr *apperrors.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("err = %v, want ValidationError for duplicate email", err)
	}
}

func TestLogin(t *testing.T) {
	service, _ := newUserService(t)
	ctx := context.Background()

	user, err := service.CreateUser(ctx, &models.CreateUserRequest{
		Email:    "login@fairfield.com",
		Name:     "Login User",
		Password: "correct-horse",
		Role:     access.RoleReceiver,
	})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := service.Login(ctx, &models.LoginRequest{Email: "login@fairfield.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" {
		t.Error("no token issued")
	}
	if resp.User.ID != user.ID {
		t.Errorf("user = %q, want %q", resp.User.ID, user.ID)
	}

	var verr *apperrors.ValidationError
	if _, err := service.Login(ctx, &models.LoginRequest{Email: "login@fairfield.com", Password: "wrong"}); !errors.As(err, &verr) {
		t.Errorf("wrong password: err = %v, want ValidationError", err)
	}
	if _, err := service.Login(ctx, &models.LoginRequest{Email: "ghost@fairfield.com", Password: "pw"}); !errors.As(err, &verr) {
		t.Errorf("unknown email: err = %v, want ValidationError", err)
	}

	inactive := false
	if _, err := service.UpdateUser(ctx, user.ID, &models.UpdateUserRequest{Active: &inactive}); err != nil {
		t.Fatal(err)
	}
	if _, err := service.Login(ctx, &models.LoginRequest{Email: "login@fairfield.com", Password: "correct-horse"}); !errors.As(err, &verr) {
		t.Errorf("deactivated account: err = %v, want ValidationError", err)
	}
}

func TestUpdateUserRoleChangeResetsPermissions(t *testing.T) {
	service, _ := newUserService(t)
	ctx := context.Background()

	user, err := service.CreateUser(ctx, &models.CreateUserRequest{
		Email:       "role@fairfield.com",
		Name:        "Role User",
		Password:    "pw",
		Role:        access.RoleDispatch,
		Permissions: []string{string(access.CapDashboard), string(access.CapReports)},
	})
	if err != nil {
		t.Fatal(err)
	}

	role := access.RoleReceiver
	updated, err := service.UpdateUser(ctx, user.ID, &models.UpdateUserRequest{Role: &role})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Role != access.RoleReceiver {
		t.Errorf("role = %q, want receiver", updated.Role)
	}
	if !reflect.DeepEqual(updated.Permissions, access.DefaultPermissions(access.RoleReceiver)) {
		t.Errorf("permissions = %v, want receiver defaults after role change", updated.Permissions)
	}

	// An explicit permission set in the same request overrides the reset.
	role = access.RoleDispatch
	custom := []string{string(access.CapDashboard)}
	updated, err = service.UpdateUser(ctx, user.ID, &models.UpdateUserRequest{Role: &role, Permissions: custom})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(updated.Permissions, custom) {
		t.Errorf("permissions = %v, want explicit set %v", updated.Permissions, custom)
	}
}

func TestUpdateUserPartial(t *testing.T) {
	service, _ := newUserService(t)
	ctx := context.Background()

	user, err := service.CreateUser(ctx, &models.CreateUserRequest{
		Email:    "partial@fairfield.com",
		Name:     "Before",
		Password: "pw",
		Role:     access.RoleViewOnly,
	})
	if err != nil {
		t.Fatal(err)
	}

	name := "After"
	updated, err := service.UpdateUser(ctx, user.ID, &models.UpdateUserRequest{Name: &name})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "After" {
		t.Errorf("name = %q, want After", updated.Name)
	}
	if updated.Email != "partial@fairfield.com" || updated.Role != access.RoleViewOnly {
		t.Error("untouched fields changed")
	}
}

func TestUpdateUserUnknown(t *testing.T) {
	service, _ := newUserService(t)

	name := "x"
	_, err := service.UpdateUser(context.Background(), "missing", &models.UpdateUserRequest{Name: &name})
	var nf *apperrors.NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("err = %v, want NotFoundError", err)
	}
}

func TestDeleteUser(t *testing.T) {
	service, store := newUserService(t)
	ctx := context.Background()

	user, err := service.CreateUser(ctx, &models.CreateUserRequest{
		Email:    "gone@fairfield.com",
		Name:     "Gone",
		Password: "pw",
		Role:     access.RoleViewOnly,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := service.DeleteUser(ctx, user.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Users.Get(ctx, user.ID); err == nil {
		t.Error("user still present after delete")
	}

	var nf *apperrors.NotFoundError
	if err := service.DeleteUser(ctx, user.ID); !errors.As(err, &nf) {
		t.Errorf("err = %v, want NotFoundError", err)
	}
}
