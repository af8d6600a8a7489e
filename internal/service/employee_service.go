package service

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/spec-kit/campaign-service/internal/auth"
	"github.com/spec-kit/campaign-service/internal/config"
	"github.com/spec-kit/campaign-service/internal/domain"
	"github.com/spec-kit/campaign-service/internal/persistence"
	"github.com/spec-kit/campaign-service/internal/repository"
	"github.com/spec-kit/campaign-service/internal/spreadsheet"
	apperrors "github.com/spec-kit/campaign-service/pkg/util/errorutil"
)

// EmployeeService manages field employees.
type EmployeeService struct {
	employees  repository.EmployeeRepository
	documents  repository.DocumentRepository
	campaigns  repository.CampaignRepository
	tx         persistence.Transactor
	bcryptCost int
}

// EmployeeDependencies bundles repositories for employee service.
type EmployeeDependencies struct {
	EmployeeRepo repository.EmployeeRepository
	DocumentRepo repository.DocumentRepository
	CampaignRepo repository.CampaignRepository
	Transactor   persistence.Transactor
}

// NewEmployeeService constructs the service.
func NewEmployeeService(cfg config.AuthConfig, deps EmployeeDependencies) *EmployeeService {
	return &EmployeeService{
		employees:  deps.EmployeeRepo,
		documents:  deps.DocumentRepo,
		campaigns:  deps.CampaignRepo,
		tx:         deps.Transactor,
		bcryptCost: cfg.BcryptCost,
	}
}

// CreateEmployeeInput describes a single employee added by an admin.
type CreateEmployeeInput struct {
	Name         string
	Email        string
	ContactNo    string
	Gender       string
	Address      string
	DOB          *time.Time
	EmployeeType string
}

// Create adds an employee whose initial password is the contact number.
// Unknown employee types are stored as unset.
func (s *EmployeeService) Create(ctx context.Context, actor auth.Principal, in CreateEmployeeInput) (*domain.Employee, error) {
	email := normalizeEmail(in.Email)
	contact := strings.TrimSpace(in.ContactNo)
	if strings.TrimSpace(in.Name) == "" || email == "" || contact == "" {
		return nil, apperrors.NewValidationError("name, email and contactNo are required", nil)
	}
	if _, err := s.employees.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("employee already exists", map[string]any{"email": email})
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}
	employee, err := s.newEmployee(actor, strings.TrimSpace(in.Name), email, contact, in.Gender, in.Address)
	if err != nil {
		return nil, err
	}
	employee.DOB = in.DOB
	employee.EmployeeType = domain.NormalizeEmployeeType(in.EmployeeType)
	if err := s.employees.Create(ctx, employee); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("employee already exists", map[string]any{"email": email})
		}
		return nil, err
	}
	return employee, nil
}

func (s *EmployeeService) newEmployee(actor auth.Principal, name, email, phone, gender, address string) (*domain.Employee, error) {
	hash, err := auth.HashPassword(phone, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	createdBy := actor.ID
	return &domain.Employee{
		Name:             name,
		Email:            email,
		Phone:            phone,
		Gender:           strings.TrimSpace(gender),
		Address:          strings.TrimSpace(address),
		PasswordHash:     hash,
		IsFirstLogin:     true,
		CreatedByAdminID: &createdBy,
	}, nil
}

// BulkResult reports what a spreadsheet import did.
type BulkResult struct {
	Created []domain.Employee
	Skipped []int
}

// BulkCreate imports employees from the first sheet of an XLSX workbook.
// Incomplete rows and rows whose email already exists are skipped.
func (s *EmployeeService) BulkCreate(ctx context.Context, actor auth.Principal, r io.Reader) (*BulkResult, error) {
	rows, err := spreadsheet.ReadEmployees(r)
	if err != nil {
		return nil, apperrors.NewValidationError("unable to read spreadsheet", map[string]any{"error": err.Error()})
	}

	result := &BulkResult{}
	seen := map[string]bool{}
	var pending []*domain.Employee
	for _, row := range rows {
		if !row.Complete() || seen[row.Email] {
			result.Skipped = append(result.Skipped, row.Line)
			continue
		}
		if _, err := s.employees.GetByEmail(ctx, row.Email); err == nil {
			result.Skipped = append(result.Skipped, row.Line)
			continue
		} else if !apperrors.IsNotFound(err) {
			return nil, err
		}
		seen[row.Email] = true
		employee, err := s.newEmployee(actor, row.Name, row.Email, row.ContactNo, row.Gender, row.Address)
		if err != nil {
			return nil, err
		}
		pending = append(pending, employee)
	}
	if len(pending) == 0 {
		return nil, apperrors.NewValidationError("no valid employees to add", nil)
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, e := range pending {
			if err := s.employees.Create(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, e := range pending {
		result.Created = append(result.Created, *e)
	}
	return result, nil
}

// List returns every employee.
func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	return s.employees.List(ctx)
}

// ProfileUpdateInput carries optional profile fields. Nil means unchanged.
type ProfileUpdateInput struct {
	Name          *string
	Phone         *string
	Gender        *string
	Address       *string
	DOB           *time.Time
	NewPassword   *string
	ESINumber     *string
	PFNumber      *string
	UANNumber     *string
	BankName      *string
	AccountNumber *string
	IFSC          *string
	BranchName    *string
	Documents     map[domain.DocumentKind]FileUpload
}

func (in ProfileUpdateInput) touchesStatutory() bool {
	return in.ESINumber != nil || in.PFNumber != nil || in.UANNumber != nil
}

// UpdateProfile applies the employee's own profile changes. Statutory numbers
// are only editable by permanent employees. The first-login flag is cleared.
func (s *EmployeeService) UpdateProfile(ctx context.Context, employeeID string, in ProfileUpdateInput) (*domain.Employee, error) {
	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, notFoundOr(err, "employee")
	}
	if in.touchesStatutory() && employee.EmployeeType != domain.EmployeeTypePermanent {
		return nil, apperrors.NewValidationError("only permanent employees may set ESI, PF or UAN numbers",
			map[string]any{"employeeType": string(employee.EmployeeType)})
	}
	for kind := range in.Documents {
		if !allowedKind(domain.EmployeeDocumentKinds, kind) {
			return nil, apperrors.NewValidationError("unsupported document", map[string]any{"field": string(kind)})
		}
	}

	setString(&employee.Name, in.Name)
	setString(&employee.Phone, in.Phone)
	setString(&employee.Gender, in.Gender)
	setString(&employee.Address, in.Address)
	if in.DOB != nil {
		employee.DOB = in.DOB
	}
	setString(&employee.Statutory.ESINumber, in.ESINumber)
	setString(&employee.Statutory.PFNumber, in.PFNumber)
	setString(&employee.Statutory.UANNumber, in.UANNumber)
	setString(&employee.Bank.BankName, in.BankName)
	setString(&employee.Bank.AccountNumber, in.AccountNumber)
	setString(&employee.Bank.IFSC, in.IFSC)
	setString(&employee.Bank.BranchName, in.BranchName)
	if in.NewPassword != nil {
		if len(*in.NewPassword) < 6 {
			return nil, apperrors.NewValidationError("password must be at least 6 characters", nil)
		}
		hash, err := auth.HashPassword(*in.NewPassword, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		employee.PasswordHash = hash
	}
	employee.IsFirstLogin = false

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.employees.Update(ctx, employee); err != nil {
			return err
		}
		return storeDocuments(ctx, s.documents, employee.ID, in.Documents)
	})
	if err != nil {
		return nil, err
	}
	return employee, nil
}

// Campaigns lists the campaigns assigned to the employee.
func (s *EmployeeService) Campaigns(ctx context.Context, employeeID string) (*domain.Employee, []domain.Campaign, error) {
	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, nil, notFoundOr(err, "employee")
	}
	campaigns, err := s.campaigns.ListForEmployee(ctx, employeeID)
	if err != nil {
		return nil, nil, err
	}
	return employee, campaigns, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func allowedKind(kinds []domain.DocumentKind, kind domain.DocumentKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func storeDocuments(ctx context.Context, repo repository.DocumentRepository, ownerID string, docs map[domain.DocumentKind]FileUpload) error {
	for kind, f := range docs {
		if len(f.Data) == 0 {
			continue
		}
		doc := &domain.Document{
			OwnerID:     ownerID,
			Kind:        kind,
			FileName:    f.FileName,
			ContentType: f.ContentType,
			Data:        f.Data,
		}
		if err := repo.Upsert(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}
