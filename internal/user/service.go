// File: internal/user/service.go
package user

import (
	"context"
	"strings"

	"poi_backend/internal/common"
	"poi_backend/internal/config"
	"poi_backend/internal/platform/crypto"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for identity business logic.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	ListUsers(ctx context.Context, page, pageSize int) ([]User, *common.Pagination, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	EnsureAdmin(ctx context.Context) error
}

// ServiceImplementation implements the identity Service interface.
type ServiceImplementation struct {
	repo   Repository
	cfg    *config.Config
	logger *zap.Logger
}

// NewService creates a new identity service.
func NewService(repo Repository, cfg *config.Config, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{repo: repo, cfg: cfg, logger: logger}
}

// Register creates a new user identity. The email must not be registered to
// any principal, user or admin; both live in the same table so the duplicate
// check covers the whole identity space.
func (s *ServiceImplementation) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if existing, err := s.repo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		s.logger.Info("Signup rejected: email already registered", zap.String("email", req.Email))
		return nil, common.ErrDuplicateEmail
	} else if err != nil {
		if apiErr, ok := common.IsAPIError(err); !ok || apiErr.Code != "NOT_FOUND" {
			return nil, err
		}
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password during signup", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not process credentials.")
	}

	newUser := &User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         common.RoleUser,
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("id", newUser.ID.String()),
		zap.String("email", newUser.Email))
	return newUser, nil
}

// Authenticate resolves an email to an identity and verifies the supplied
// password. The check fails closed: a session is only ever established on an
// explicit successful comparison. Unknown email and wrong password surface
// as the same error to callers; the distinction lives in the logs only.
func (s *ServiceImplementation) Authenticate(ctx context.Context, email, password string) (*User, error) {
	found, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if apiErr, ok := common.IsAPIError(err); ok && apiErr.Code == "NOT_FOUND" {
			s.logger.Info("Login rejected: email not registered", zap.String("email", email))
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(found.PasswordHash, password) {
		s.logger.Info("Login rejected: password mismatch", zap.String("email", email))
		return nil, common.ErrInvalidCredentials
	}

	return found, nil
}

// GetByID loads an identity, used for settings screens and admin views.
func (s *ServiceImplementation) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// ListUsers returns a page of non-admin identities for the admin overview.
func (s *ServiceImplementation) ListUsers(ctx context.Context, page, pageSize int) ([]User, *common.Pagination, error) {
	total, err := s.repo.CountByRole(ctx, common.RoleUser)
	if err != nil {
		s.logger.Error("Failed to count users", zap.Error(err))
		return nil, nil, common.ErrInternalServer.WithDetails("Could not retrieve users.")
	}

	offset := (page - 1) * pageSize
	users, err := s.repo.FindAllByRole(ctx, common.RoleUser, offset, pageSize)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, nil, common.ErrInternalServer.WithDetails("Could not retrieve users.")
	}
	return users, common.NewPagination(total, page, pageSize), nil
}

// UpdateProfile overwrites first/last name, email, and password credential.
// All four fields are required; the password is re-hashed.
func (s *ServiceImplementation) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*User, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password during profile update", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not process credentials.")
	}

	found.FirstName = strings.TrimSpace(req.FirstName)
	found.LastName = strings.TrimSpace(req.LastName)
	found.Email = req.Email
	found.PasswordHash = hash

	if err := s.repo.Update(ctx, found); err != nil {
		return nil, err
	}
	s.logger.Info("Profile updated", zap.String("id", found.ID.String()))
	return found, nil
}

// DeleteUser removes an identity. POIs created by the identity are left in
// place with a dangling creator reference, matching the documented behavior.
func (s *ServiceImplementation) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete user", zap.Error(err), zap.String("id", id.String()))
		return err
	}
	s.logger.Info("User deleted", zap.String("id", id.String()))
	return nil
}

// EnsureAdmin bootstraps the configured admin principal at startup. There is
// no admin signup route; the admin identity space is seeded from config.
func (s *ServiceImplementation) EnsureAdmin(ctx context.Context) error {
	if strings.TrimSpace(s.cfg.AdminEmail) == "" {
		s.logger.Info("No ADMIN_EMAIL configured, skipping admin bootstrap")
		return nil
	}

	if _, err := s.repo.FindByEmail(ctx, s.cfg.AdminEmail); err == nil {
		return nil
	} else if apiErr, ok := common.IsAPIError(err); !ok || apiErr.Code != "NOT_FOUND" {
		return err
	}

	hash, err := crypto.HashPassword(s.cfg.AdminPassword)
	if err != nil {
		return err
	}
	admin := &User{
		FirstName:    s.cfg.AdminFirstName,
		LastName:     s.cfg.AdminLastName,
		Email:        s.cfg.AdminEmail,
		PasswordHash: hash,
		Role:         common.RoleAdmin,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return err
	}
	s.logger.Info("Admin principal bootstrapped", zap.String("email", admin.Email))
	return nil
}
