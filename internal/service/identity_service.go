package service

import (
	"context"
	"strings"

	"github.com/spec-kit/campaign-service/internal/auth"
	"github.com/spec-kit/campaign-service/internal/config"
	"github.com/spec-kit/campaign-service/internal/domain"
	"github.com/spec-kit/campaign-service/internal/repository"
	apperrors "github.com/spec-kit/campaign-service/pkg/util/errorutil"
)

// IdentityService manages admin and client accounts.
type IdentityService struct {
	admins     repository.AdminRepository
	clients    repository.ClientRepository
	retailers  repository.RetailerRepository
	bcryptCost int
}

// IdentityDependencies bundles repositories for identity service.
type IdentityDependencies struct {
	AdminRepo    repository.AdminRepository
	ClientRepo   repository.ClientRepository
	RetailerRepo repository.RetailerRepository
}

// NewIdentityService constructs the service.
func NewIdentityService(cfg config.AuthConfig, deps IdentityDependencies) *IdentityService {
	return &IdentityService{
		admins:     deps.AdminRepo,
		clients:    deps.ClientRepo,
		retailers:  deps.RetailerRepo,
		bcryptCost: cfg.BcryptCost,
	}
}

// AddAdminInput describes a new admin account.
type AddAdminInput struct {
	Name     string
	Email    string
	Password string
}

// AddAdmin creates another admin. The email must be unused by admins,
// client accounts and retailers.
func (s *IdentityService) AddAdmin(ctx context.Context, in AddAdminInput) (*domain.Admin, error) {
	email := normalizeEmail(in.Email)
	if strings.TrimSpace(in.Name) == "" || email == "" || in.Password == "" {
		return nil, apperrors.NewValidationError("all fields are required", nil)
	}
	taken, err := s.emailTaken(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewConflict("email already exists", map[string]any{"email": email})
	}
	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	admin := &domain.Admin{Name: strings.TrimSpace(in.Name), Email: email, PasswordHash: hash}
	if err := s.admins.Create(ctx, admin); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("email already exists", map[string]any{"email": email})
		}
		return nil, err
	}
	return admin, nil
}

func (s *IdentityService) emailTaken(ctx context.Context, email string) (bool, error) {
	lookups := []func() error{
		func() error { _, err := s.admins.GetByEmail(ctx, email); return err },
		func() error { _, err := s.clients.GetAdminByEmail(ctx, email); return err },
		func() error { _, err := s.clients.GetUserByEmail(ctx, email); return err },
		func() error { _, err := s.retailers.GetByEmailOrPhone(ctx, email, ""); return err },
	}
	for _, lookup := range lookups {
		err := lookup()
		if err == nil {
			return true, nil
		}
		if !apperrors.IsNotFound(err) {
			return false, err
		}
	}
	return false, nil
}

// AddClientAdminInput describes a client organization admin.
type AddClientAdminInput struct {
	Name             string
	Email            string
	ContactNo        string
	OrganizationName string
}

// AddClientAdmin creates a client admin whose initial password is the contact number.
func (s *IdentityService) AddClientAdmin(ctx context.Context, in AddClientAdminInput) (*domain.ClientAdmin, error) {
	email := normalizeEmail(in.Email)
	contact := strings.TrimSpace(in.ContactNo)
	if strings.TrimSpace(in.Name) == "" || email == "" || contact == "" || strings.TrimSpace(in.OrganizationName) == "" {
		return nil, apperrors.NewValidationError("missing required fields", nil)
	}
	if _, err := s.clients.GetAdminByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("client admin already exists", nil)
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}
	hash, err := auth.HashPassword(contact, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	admin := &domain.ClientAdmin{
		Name:                 strings.TrimSpace(in.Name),
		Email:                email,
		ContactNo:            contact,
		OrganizationName:     strings.TrimSpace(in.OrganizationName),
		RegistrationUsername: email,
		PasswordHash:         hash,
	}
	if err := s.clients.CreateAdmin(ctx, admin); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("client admin already exists", nil)
		}
		return nil, err
	}
	return admin, nil
}

// AddClientUserInput describes a client user under a client admin.
type AddClientUserInput struct {
	Name                string
	Email               string
	ContactNo           string
	RoleProfile         string
	ParentClientAdminID string
	Password            string
}

// AddClientUser creates a client user. The parent client admin must exist.
func (s *IdentityService) AddClientUser(ctx context.Context, in AddClientUserInput) (*domain.ClientUser, error) {
	email := normalizeEmail(in.Email)
	if strings.TrimSpace(in.Name) == "" || email == "" || in.ParentClientAdminID == "" || in.Password == "" {
		return nil, apperrors.NewValidationError("missing required fields", nil)
	}
	profile := domain.ClientRoleProfile(in.RoleProfile)
	if !profile.Valid() {
		return nil, apperrors.NewValidationError("invalid role profile", map[string]any{"roleProfile": in.RoleProfile})
	}
	if _, err := s.clients.GetAdminByID(ctx, in.ParentClientAdminID); err != nil {
		return nil, notFoundOr(err, "client admin")
	}
	if _, err := s.clients.GetUserByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("client user already exists", nil)
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	user := &domain.ClientUser{
		Name:                strings.TrimSpace(in.Name),
		Email:               email,
		ContactNo:           strings.TrimSpace(in.ContactNo),
		RoleProfile:         profile,
		ParentClientAdminID: in.ParentClientAdminID,
		PasswordHash:        hash,
	}
	if err := s.clients.CreateUser(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("client user already exists", nil)
		}
		return nil, err
	}
	return user, nil
}
