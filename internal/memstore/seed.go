package memstore

import (
	"context"
	"fmt"

	"stock-backend/internal/access"
	"stock-backend/internal/auth"
	"stock-backend/internal/models"
)

// SeedDemoUsers creates one user per role so a fresh demo-mode server can
// be logged into immediately. All accounts share the given password.
func (s *Store) SeedDemoUsers(ctx context.Context, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}

	seeds := []struct {
		email string
		name  string
		role  string
	}{
		{"admin@fairfield.com", "Admin User", access.RoleAdmin},
		{"dispatch@fairfield.com", "Dispatch User", access.RoleDispatch},
		{"receiver@fairfield.com", "Receiver User", access.RoleReceiver},
		{"viewer@fairfield.com", "View Only User", access.RoleViewOnly},
	}

	for _, seed := range seeds {
		u := &models.User{
			Email:        seed.email,
			Name:         seed.name,
			PasswordHash: hash,
			Role:         seed.role,
			Permissions:  access.DefaultPermissions(seed.role),
			Active:       true,
		}
		if err := s.Users.Create(ctx, u); err != nil {
			return fmt.Errorf("seeding user %s: %w", seed.email, err)
		}
	}
	return nil
}
