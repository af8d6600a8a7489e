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
	"github.com/spec-kit/campaign-service/internal/identifier"
	"github.com/spec-kit/campaign-service/internal/persistence"
	"github.com/spec-kit/campaign-service/internal/repository"
	apperrors "github.com/spec-kit/campaign-service/pkg/util/errorutil"
)

// RetailerService handles retailer onboarding and self-service.
type RetailerService struct {
	retailers  repository.RetailerRepository
	documents  repository.DocumentRepository
	campaigns  repository.CampaignRepository
	otps       repository.OTPRepository
	ids        *identifier.Generator
	tx         persistence.Transactor
	dispatcher events.Dispatcher
	bcryptCost int
	otpTTL     time.Duration
	otpLength  int
}

// RetailerDependencies bundles collaborators for retailer service.
type RetailerDependencies struct {
	RetailerRepo repository.RetailerRepository
	DocumentRepo repository.DocumentRepository
	CampaignRepo repository.CampaignRepository
	OTPRepo      repository.OTPRepository
	IDs          *identifier.Generator
	Transactor   persistence.Transactor
	Dispatcher   events.Dispatcher
}

// NewRetailerService constructs the service.
func NewRetailerService(cfg config.AuthConfig, deps RetailerDependencies) *RetailerService {
	return &RetailerService{
		retailers:  deps.RetailerRepo,
		documents:  deps.DocumentRepo,
		campaigns:  deps.CampaignRepo,
		otps:       deps.OTPRepo,
		ids:        deps.IDs,
		tx:         deps.Transactor,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.BcryptCost,
		otpTTL:     cfg.OTPTTL(),
		otpLength:  cfg.OTPLength,
	}
}

// SendOTP stores a hashed code for the phone and emits an SMS event.
func (s *RetailerService) SendOTP(ctx context.Context, phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return apperrors.NewValidationError("phone is required", nil)
	}
	code, err := generateOTP(s.otpLength)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.otps.Put(ctx, repository.OTPPurposeRetailerPhone, phone, hashOTP(code), s.otpTTL); err != nil {
		return apperrors.NewInternalError(err)
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.New(events.EventRetailerOTPRequested, events.Actor{},
			events.RetailerOTPRequestedPayload{Phone: phone, Code: code, TTL: s.otpTTL}))
	}
	return nil
}

// VerifyOTP checks the code for the phone and consumes it on success.
func (s *RetailerService) VerifyOTP(ctx context.Context, phone, code string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" || strings.TrimSpace(code) == "" {
		return apperrors.NewValidationError("phone and otp are required", nil)
	}
	stored, err := s.otps.Get(ctx, repository.OTPPurposeRetailerPhone, phone)
	if err != nil {
		if errors.Is(err, repository.ErrOTPNotFound) {
			return apperrors.NewValidationError("invalid or expired OTP", nil)
		}
		return apperrors.NewInternalError(err)
	}
	if !otpMatches(stored, code) {
		return apperrors.NewValidationError("invalid or expired OTP", nil)
	}
	return s.otps.Delete(ctx, repository.OTPPurposeRetailerPhone, phone)
}

// RegisterRetailerInput carries the registration form.
type RegisterRetailerInput struct {
	Name          string
	ContactNo     string
	Email         string
	Password      string
	Gender        string
	GovtIDType    string
	GovtIDNumber  string
	ShopName      string
	BusinessType  string
	OwnershipType string
	GSTNo         string
	PANCard       string
	Address       string
	State         string
	City          string
	Latitude      float64
	Longitude     float64
	PartOfIndia   string
	CreatedBy     string
	BankName      string
	AccountNumber string
	IFSC          string
	BranchName    string
	Documents     map[domain.DocumentKind]FileUpload
}

// Register creates a retailer with its generated identifiers and uploaded documents.
// Duplicate email or phone is rejected before anything is written.
func (s *RetailerService) Register(ctx context.Context, in RegisterRetailerInput) (*domain.Retailer, error) {
	email := normalizeEmail(in.Email)
	contact := strings.TrimSpace(in.ContactNo)
	missing := map[string]any{}
	for field, v := range map[string]string{
		"name": in.Name, "contactNo": contact, "email": email, "password": in.Password,
		"shopName": in.ShopName, "businessType": in.BusinessType, "state": in.State, "city": in.City,
	} {
		if strings.TrimSpace(v) == "" {
			missing[field] = "required"
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", missing)
	}
	for kind := range in.Documents {
		if !allowedKind(domain.RetailerDocumentKinds, kind) {
			return nil, apperrors.NewValidationError("unsupported document", map[string]any{"field": string(kind)})
		}
	}

	if _, err := s.retailers.GetByEmailOrPhone(ctx, email, contact); err == nil {
		return nil, apperrors.NewValidationError("email or phone already registered", nil)
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	partOfIndia := identifier.NormalizePartOfIndia(in.PartOfIndia)
	uniqueID, err := s.ids.RetailerUniqueID(ctx, identifier.RetailerIDInput{
		PartOfIndia:  partOfIndia,
		BusinessType: in.BusinessType,
		State:        in.State,
		City:         in.City,
	})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	createdBy := domain.RetailerCreatedBySelf
	if domain.RetailerCreator(in.CreatedBy) == domain.RetailerCreatedByEmployee {
		createdBy = domain.RetailerCreatedByEmployee
	}
	retailer := &domain.Retailer{
		UniqueID:     uniqueID,
		RetailerCode: s.ids.RetailerCode(),
		Name:         strings.TrimSpace(in.Name),
		ContactNo:    contact,
		Email:        email,
		Gender:       strings.TrimSpace(in.Gender),
		GovtIDType:   strings.TrimSpace(in.GovtIDType),
		GovtIDNumber: strings.TrimSpace(in.GovtIDNumber),
		PartOfIndia:  partOfIndia,
		CreatedBy:    createdBy,
		Shop: domain.Shop{
			Name:          strings.TrimSpace(in.ShopName),
			BusinessType:  strings.TrimSpace(in.BusinessType),
			OwnershipType: strings.TrimSpace(in.OwnershipType),
			GSTNo:         strings.TrimSpace(in.GSTNo),
			PANCard:       strings.TrimSpace(in.PANCard),
			Address:       strings.TrimSpace(in.Address),
			State:         strings.TrimSpace(in.State),
			City:          strings.TrimSpace(in.City),
			Latitude:      in.Latitude,
			Longitude:     in.Longitude,
		},
		Bank: domain.BankDetails{
			BankName:      strings.TrimSpace(in.BankName),
			AccountNumber: strings.TrimSpace(in.AccountNumber),
			IFSC:          strings.TrimSpace(in.IFSC),
			BranchName:    strings.TrimSpace(in.BranchName),
		},
		PasswordHash: hash,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.retailers.Create(ctx, retailer); err != nil {
			return err
		}
		return storeDocuments(ctx, s.documents, retailer.ID, in.Documents)
	})
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewValidationError("email or phone already registered", nil)
		}
		return nil, err
	}
	return retailer, nil
}

// Profile returns the retailer with the kinds of documents on file.
func (s *RetailerService) Profile(ctx context.Context, retailerID string) (*domain.Retailer, []domain.DocumentKind, error) {
	retailer, err := s.retailers.GetByID(ctx, retailerID)
	if err != nil {
		return nil, nil, notFoundOr(err, "retailer")
	}
	kinds, err := s.documents.ListKinds(ctx, retailerID)
	if err != nil {
		return nil, nil, err
	}
	return retailer, kinds, nil
}

// Campaigns lists the campaigns assigned to the retailer.
func (s *RetailerService) Campaigns(ctx context.Context, retailerID string) ([]domain.Campaign, error) {
	if _, err := s.retailers.GetByID(ctx, retailerID); err != nil {
		return nil, notFoundOr(err, "retailer")
	}
	return s.campaigns.ListForRetailer(ctx, retailerID)
}

// List returns every retailer.
func (s *RetailerService) List(ctx context.Context) ([]domain.Retailer, error) {
	return s.retailers.List(ctx)
}
