package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/campaign-service/internal/auth"
	"github.com/spec-kit/campaign-service/internal/config"
	"github.com/spec-kit/campaign-service/internal/domain"
	"github.com/spec-kit/campaign-service/internal/events"
	"github.com/spec-kit/campaign-service/internal/identifier"
	"github.com/spec-kit/campaign-service/internal/testutil"
	apperrors "github.com/spec-kit/campaign-service/pkg/util/errorutil"
)

type fixture struct {
	store      *testutil.Store
	tx         *testutil.Transactor
	otps       *testutil.OTPStore
	enqueuer   *testutil.Enqueuer
	dispatcher events.Dispatcher
	tokens     *auth.TokenManager
	authCfg    config.AuthConfig
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:      testutil.NewStore(),
		tx:         &testutil.Transactor{},
		otps:       testutil.NewOTPStore(),
		enqueuer:   &testutil.Enqueuer{},
		dispatcher: events.NewInMemoryDispatcher(zap.NewNop()),
		tokens:     auth.NewTokenManager("test-secret", 0),
		authCfg:    config.AuthConfig{BcryptCost: bcrypt.MinCost, OTPTTLMinutes: 10, OTPLength: 6},
	}
	NewNotificationService(f.dispatcher, f.enqueuer, zap.NewNop()).RegisterHandlers()
	return f
}

func (f *fixture) authService() *AuthService {
	return NewAuthService(f.authCfg, AuthDependencies{
		AdminRepo:     f.store.Admins(),
		ClientRepo:    f.store.Clients(),
		EmployeeRepo:  f.store.Employees(),
		RetailerRepo:  f.store.Retailers(),
		CandidateRepo: f.store.Candidates(),
		OTPRepo:       f.otps,
		Dispatcher:    f.dispatcher,
		Tokens:        f.tokens,
	})
}

func (f *fixture) identityService() *IdentityService {
	return NewIdentityService(f.authCfg, IdentityDependencies{
		AdminRepo:    f.store.Admins(),
		ClientRepo:   f.store.Clients(),
		RetailerRepo: f.store.Retailers(),
	})
}

func (f *fixture) employeeService() *EmployeeService {
	return NewEmployeeService(f.authCfg, EmployeeDependencies{
		EmployeeRepo: f.store.Employees(),
		DocumentRepo: f.store.Documents(),
		CampaignRepo: f.store.Campaigns(),
		Transactor:   f.tx,
	})
}

func (f *fixture) retailerService(t *testing.T) *RetailerService {
	t.Helper()
	ids, err := identifier.NewGenerator(&testutil.Sequencer{}, 1)
	require.NoError(t, err)
	return NewRetailerService(f.authCfg, RetailerDependencies{
		RetailerRepo: f.store.Retailers(),
		DocumentRepo: f.store.Documents(),
		CampaignRepo: f.store.Campaigns(),
		OTPRepo:      f.otps,
		IDs:          ids,
		Transactor:   f.tx,
		Dispatcher:   f.dispatcher,
	})
}

func (f *fixture) assignmentService() *AssignmentService {
	return NewAssignmentService(AssignmentDependencies{
		CampaignRepo: f.store.Campaigns(),
		PaymentRepo:  f.store.Payments(),
		Transactor:   f.tx,
		Dispatcher:   f.dispatcher,
	})
}

func (f *fixture) paymentService() *PaymentService {
	return NewPaymentService(PaymentDependencies{
		CampaignRepo: f.store.Campaigns(),
		PaymentRepo:  f.store.Payments(),
		Transactor:   f.tx,
		Dispatcher:   f.dispatcher,
	})
}

func (f *fixture) recruitmentService() *RecruitmentService {
	return NewRecruitmentService(f.authCfg, RecruitmentDependencies{
		JobRepo:         f.store.Jobs(),
		ApplicationRepo: f.store.Applications(),
		CandidateRepo:   f.store.Candidates(),
		DocumentRepo:    f.store.Documents(),
		Transactor:      f.tx,
		Dispatcher:      f.dispatcher,
	})
}

func (f *fixture) reportService() *ReportService {
	return NewReportService(config.UploadConfig{MaxReportImg: 3}, ReportDependencies{
		ReportRepo:   f.store.Reports(),
		EmployeeRepo: f.store.Employees(),
		CampaignRepo: f.store.Campaigns(),
		RetailerRepo: f.store.Retailers(),
		Transactor:   f.tx,
	})
}

var adminActor = auth.Principal{ID: "admin-1", Role: domain.RoleAdmin, Email: "ops@example.com"}

func (f *fixture) seedCampaign(t *testing.T, name string) *domain.Campaign {
	t.Helper()
	c := &domain.Campaign{Name: name, Client: "Acme", Type: domain.CampaignTypeRetail, IsActive: true}
	require.NoError(t, f.store.Campaigns().Create(context.Background(), c))
	return c
}

func (f *fixture) seedEmployee(t *testing.T, email, phone string, kind domain.EmployeeType) *domain.Employee {
	t.Helper()
	hash, err := auth.HashPassword(phone, bcrypt.MinCost)
	require.NoError(t, err)
	e := &domain.Employee{Name: "Field Rep", Email: email, Phone: phone, EmployeeType: kind, PasswordHash: hash, IsFirstLogin: true}
	require.NoError(t, f.store.Employees().Create(context.Background(), e))
	return e
}

func (f *fixture) seedRetailer(t *testing.T, email, phone string) *domain.Retailer {
	t.Helper()
	hash, err := auth.HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)
	r := &domain.Retailer{
		Name: "Corner Store", Email: email, ContactNo: phone, PasswordHash: hash,
		UniqueID: "N" + phone, RetailerCode: "rc-" + phone,
		Shop: domain.Shop{Name: "Corner", BusinessType: "Kirana", State: "Delhi", City: "Delhi"},
	}
	require.NoError(t, f.store.Retailers().Create(context.Background(), r))
	return r
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de), "expected domain error, got %T: %v", err, err)
	require.Equal(t, status, de.HTTPStatus, de.Message)
}

func ptr[T any](v T) *T { return &v }
