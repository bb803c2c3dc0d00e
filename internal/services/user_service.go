package services

import (
	"context"
	"strings"

	"stock-backend/internal/access"
	"stock-backend/internal/apperrors"
	"stock-backend/internal/auth"
	"stock-backend/internal/cache"
	"stock-backend/internal/metrics"
	"stock-backend/internal/models"
)

type UserService struct {
	store      UserStore
	jwtManager *auth.JWTManager
}

func NewUserService(store UserStore, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		store:      store,
		jwtManager: jwtManager,
	}
}

// Login authenticates a user and returns a JWT token. A Redis hit on the
// credential hash skips the bcrypt comparison; the user record is still
// loaded fresh so deactivation takes effect immediately.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.Validationf("email and password are required")
	}

	if userID, ok := cache.GetCachedAuth(ctx, req.Email, req.Password); ok {
		user, err := s.store.Get(ctx, userID)
		if err == nil && user.Active && user.Email == req.Email {
			token, err := s.jwtManager.GenerateToken(user)
			if err != nil {
				return nil, err
			}
			return &models.AuthResponse{Token: token, User: user}, nil
		}
		cache.InvalidateAuth(ctx, req.Email, req.Password)
	}

	user, err := s.store.GetByEmail(ctx, req.Email)
	if err != nil {
		metrics.LoginFailures.Inc()
		return nil, apperrors.Validationf("invalid email or password")
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		metrics.LoginFailures.Inc()
		return nil, apperrors.Validationf("invalid email or password")
	}

	if !user.Active {
		metrics.LoginFailures.Inc()
		return nil, apperrors.Validationf("account is deactivated")
	}

	cache.CacheAuth(ctx, req.Email, req.Password, user.ID)

	token, err := s.jwtManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// CreateUser creates a user. Permissions default to the role's standard set
// when the request omits them.
func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Name == "" || req.Password == "" {
		return nil, apperrors.Validationf("name, email and password are required")
	}
	if !access.ValidRole(req.Role) {
		return nil, apperrors.Validationf("unknown role %q", req.Role)
	}

	if existing, _ := s.store.GetByEmail(ctx, email); existing != nil {
		return nil, apperrors.Validationf("a user with email %s already exists", email)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	permissions := req.Permissions
	if permissions == nil {
		permissions = access.DefaultPermissions(req.Role)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	user := &models.User{
		Email:        email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         req.Role,
		Permissions:  permissions,
		Active:       active,
	}
	if err := s.store.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.store.Get(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.store.List(ctx)
}

// UpdateUser applies a partial update. A role change resets permissions to
// the new role's defaults unless the same request supplies an explicit
// permission set.
func (s *UserService) UpdateUser(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" {
			return nil, apperrors.Validationf("email cannot be empty")
		}
		if email != user.Email {
			if existing, _ := s.store.GetByEmail(ctx, email); existing != nil && existing.ID != id {
				return nil, apperrors.Validationf("a user with email %s already exists", email)
			}
		}
		user.Email = email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
		cache.InvalidateAuthPattern(ctx)
	}
	if req.Role != nil && *req.Role != user.Role {
		if !access.ValidRole(*req.Role) {
			return nil, apperrors.Validationf("unknown role %q", *req.Role)
		}
		user.Role = *req.Role
		user.Permissions = access.DefaultPermissions(*req.Role)
	}
	if req.Permissions != nil {
		user.Permissions = req.Permissions
	}
	if req.Active != nil {
		user.Active = *req.Active
		if !*req.Active {
			cache.InvalidateAuthPattern(ctx)
		}
	}

	if err := s.store.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}
	cache.InvalidateAuthPattern(ctx)
	return s.store.Delete(ctx, id)
}
