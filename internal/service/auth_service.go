package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spec-kit/campaign-service/internal/auth"
	"github.com/spec-kit/campaign-service/internal/config"
	"github.com/spec-kit/campaign-service/internal/domain"
	"github.com/spec-kit/campaign-service/internal/events"
	"github.com/spec-kit/campaign-service/internal/repository"
	apperrors "github.com/spec-kit/campaign-service/pkg/util/errorutil"
)

var errInvalidCredentials = apperrors.NewUnauthorized("invalid credentials")

// AuthService issues tokens for every account type and handles admin password resets.
type AuthService struct {
	admins     repository.AdminRepository
	clients    repository.ClientRepository
	employees  repository.EmployeeRepository
	retailers  repository.RetailerRepository
	candidates repository.CandidateRepository
	otps       repository.OTPRepository
	dispatcher events.Dispatcher
	tokens     *auth.TokenManager
	bcryptCost int
	otpTTL     time.Duration
	otpLength  int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	AdminRepo     repository.AdminRepository
	ClientRepo    repository.ClientRepository
	EmployeeRepo  repository.EmployeeRepository
	RetailerRepo  repository.RetailerRepository
	CandidateRepo repository.CandidateRepository
	OTPRepo       repository.OTPRepository
	Dispatcher    events.Dispatcher
	Tokens        *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		admins:     deps.AdminRepo,
		clients:    deps.ClientRepo,
		employees:  deps.EmployeeRepo,
		retailers:  deps.RetailerRepo,
		candidates: deps.CandidateRepo,
		otps:       deps.OTPRepo,
		dispatcher: deps.Dispatcher,
		tokens:     deps.Tokens,
		bcryptCost: cfg.BcryptCost,
		otpTTL:     cfg.OTPTTL(),
		otpLength:  cfg.OTPLength,
	}
}

// AdminLogin authenticates a platform admin.
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*domain.Admin, *Session, error) {
	if email == "" || password == "" {
		return nil, nil, apperrors.NewValidationError("email and password required", nil)
	}
	admin, err := s.admins.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, nil, notFoundOr(err, "admin")
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, nil, errInvalidCredentials
	}
	session, err := issueSession(s.tokens, admin.ID, domain.RoleAdmin, admin.Email)
	if err != nil {
		return nil, nil, err
	}
	return admin, session, nil
}

// ClientAdminLogin authenticates a client organization's admin.
func (s *AuthService) ClientAdminLogin(ctx context.Context, email, password string) (*domain.ClientAdmin, *Session, error) {
	if email == "" || password == "" {
		return nil, nil, apperrors.NewValidationError("email and password required", nil)
	}
	admin, err := s.clients.GetAdminByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, nil, notFoundOr(err, "client admin")
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, nil, errInvalidCredentials
	}
	session, err := issueSession(s.tokens, admin.ID, domain.RoleClientAdmin, admin.Email)
	if err != nil {
		return nil, nil, err
	}
	return admin, session, nil
}

// ClientUserLogin authenticates a client user.
func (s *AuthService) ClientUserLogin(ctx context.Context, email, password string) (*domain.ClientUser, *Session, error) {
	if email == "" || password == "" {
		return nil, nil, apperrors.NewValidationError("email and password required", nil)
	}
	user, err := s.clients.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, nil, notFoundOr(err, "client user")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, errInvalidCredentials
	}
	session, err := issueSession(s.tokens, user.ID, domain.RoleClientUser, user.Email)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// EmployeeLogin accepts either the email or the phone number. New employees
// start with their phone number as password.
func (s *AuthService) EmployeeLogin(ctx context.Context, email, phone, password string) (*domain.Employee, *Session, error) {
	phone = strings.TrimSpace(phone)
	if (email == "" && phone == "") || password == "" {
		return nil, nil, apperrors.NewValidationError("email or phone and password required", nil)
	}
	employee, err := s.employees.GetByEmailOrPhone(ctx, normalizeEmail(email), phone)
	if err != nil {
		return nil, nil, notFoundOr(err, "employee")
	}
	if err := auth.ComparePassword(employee.PasswordHash, password); err != nil {
		return nil, nil, errInvalidCredentials
	}
	session, err := issueSession(s.tokens, employee.ID, domain.RoleEmployee, employee.Email)
	if err != nil {
		return nil, nil, err
	}
	return employee, session, nil
}

// RetailerLogin accepts the email or the contact number as identifier.
func (s *AuthService) RetailerLogin(ctx context.Context, identifier, password string) (*domain.Retailer, *Session, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, nil, apperrors.NewValidationError("email or contact number and password required", nil)
	}
	retailer, err := s.retailers.GetByEmailOrPhone(ctx, normalizeEmail(identifier), identifier)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil, errInvalidCredentials
		}
		return nil, nil, err
	}
	if err := auth.ComparePassword(retailer.PasswordHash, password); err != nil {
		return nil, nil, errInvalidCredentials
	}
	session, err := issueSession(s.tokens, retailer.ID, domain.RoleRetailer, retailer.Email)
	if err != nil {
		return nil, nil, err
	}
	return retailer, session, nil
}

// CandidateLogin authenticates a career applicant.
func (s *AuthService) CandidateLogin(ctx context.Context, email, password string) (*domain.CareerApplicant, *Session, error) {
	if email == "" || password == "" {
		return nil, nil, apperrors.NewValidationError("email and password are required", nil)
	}
	candidate, err := s.candidates.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, nil, notFoundOr(err, "account")
	}
	if err := auth.ComparePassword(candidate.PasswordHash, password); err != nil {
		return nil, nil, errInvalidCredentials
	}
	session, err := issueSession(s.tokens, candidate.ID, domain.RoleCandidate, candidate.Email)
	if err != nil {
		return nil, nil, err
	}
	return candidate, session, nil
}

// RequestAdminPasswordReset stores a hashed one-time code and emits an event
// that emails the plaintext code to the admin.
func (s *AuthService) RequestAdminPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return apperrors.NewValidationError("email is required", nil)
	}
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return notFoundOr(err, "admin")
	}
	code, err := generateOTP(s.otpLength)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.otps.Put(ctx, repository.OTPPurposeAdminReset, email, hashOTP(code), s.otpTTL); err != nil {
		return apperrors.NewInternalError(err)
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.New(events.EventAdminPasswordReset,
			events.Actor{ID: admin.ID, Role: domain.RoleAdmin},
			events.AdminPasswordResetPayload{Email: admin.Email, Name: admin.Name, Code: code, TTL: s.otpTTL}))
	}
	return nil
}

// ResetAdminPassword verifies and consumes the code, then replaces the password.
func (s *AuthService) ResetAdminPassword(ctx context.Context, email, code, newPassword string) error {
	email = normalizeEmail(email)
	if email == "" || code == "" || newPassword == "" {
		return apperrors.NewValidationError("email, OTP, and new password are required", nil)
	}
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return notFoundOr(err, "admin")
	}
	stored, err := s.otps.Get(ctx, repository.OTPPurposeAdminReset, email)
	if err != nil {
		if errors.Is(err, repository.ErrOTPNotFound) {
			return apperrors.NewValidationError("invalid or expired OTP", nil)
		}
		return apperrors.NewInternalError(err)
	}
	if !otpMatches(stored, code) {
		return apperrors.NewValidationError("invalid or expired OTP", nil)
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.admins.UpdatePassword(ctx, admin.ID, hash); err != nil {
		return err
	}
	return s.otps.Delete(ctx, repository.OTPPurposeAdminReset, email)
}

// notFoundOr converts a missing row into a named 404 and passes other errors through.
func notFoundOr(err error, resource string) error {
	if apperrors.IsNotFound(err) {
		return apperrors.NewNotFound(resource, nil)
	}
	return err
}
