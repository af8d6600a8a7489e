package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/campaign-service/internal/api/http/handlers"
	"github.com/spec-kit/campaign-service/internal/auth"
	"github.com/spec-kit/campaign-service/internal/config"
	"github.com/spec-kit/campaign-service/internal/domain"
	"github.com/spec-kit/campaign-service/internal/events"
	"github.com/spec-kit/campaign-service/internal/identifier"
	"github.com/spec-kit/campaign-service/internal/observability"
	"github.com/spec-kit/campaign-service/internal/service"
	"github.com/spec-kit/campaign-service/internal/testutil"
)

type testServer struct {
	app    *fiber.App
	store  *testutil.Store
	tokens *auth.TokenManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	store := testutil.NewStore()
	tx := &testutil.Transactor{}
	otps := testutil.NewOTPStore()
	dispatcher := events.NewInMemoryDispatcher(logger)
	tokens := auth.NewTokenManager("router-secret", 0)
	authCfg := config.AuthConfig{BcryptCost: bcrypt.MinCost, OTPTTLMinutes: 10, OTPLength: 6}
	service.NewNotificationService(dispatcher, &testutil.Enqueuer{}, logger).RegisterHandlers()

	ids, err := identifier.NewGenerator(&testutil.Sequencer{}, 1)
	require.NoError(t, err)

	authSvc := service.NewAuthService(authCfg, service.AuthDependencies{
		AdminRepo:     store.Admins(),
		ClientRepo:    store.Clients(),
		EmployeeRepo:  store.Employees(),
		RetailerRepo:  store.Retailers(),
		CandidateRepo: store.Candidates(),
		OTPRepo:       otps,
		Dispatcher:    dispatcher,
		Tokens:        tokens,
	})
	identitySvc := service.NewIdentityService(authCfg, service.IdentityDependencies{
		AdminRepo:    store.Admins(),
		ClientRepo:   store.Clients(),
		RetailerRepo: store.Retailers(),
	})
	employeeSvc := service.NewEmployeeService(authCfg, service.EmployeeDependencies{
		EmployeeRepo: store.Employees(),
		DocumentRepo: store.Documents(),
		CampaignRepo: store.Campaigns(),
		Transactor:   tx,
	})
	retailerSvc := service.NewRetailerService(authCfg, service.RetailerDependencies{
		RetailerRepo: store.Retailers(),
		DocumentRepo: store.Documents(),
		CampaignRepo: store.Campaigns(),
		OTPRepo:      otps,
		IDs:          ids,
		Transactor:   tx,
		Dispatcher:   dispatcher,
	})
	assignmentSvc := service.NewAssignmentService(service.AssignmentDependencies{
		CampaignRepo: store.Campaigns(),
		PaymentRepo:  store.Payments(),
		Transactor:   tx,
		Dispatcher:   dispatcher,
	})
	paymentSvc := service.NewPaymentService(service.PaymentDependencies{
		CampaignRepo: store.Campaigns(),
		PaymentRepo:  store.Payments(),
		Transactor:   tx,
		Dispatcher:   dispatcher,
	})
	recruitmentSvc := service.NewRecruitmentService(authCfg, service.RecruitmentDependencies{
		JobRepo:         store.Jobs(),
		ApplicationRepo: store.Applications(),
		CandidateRepo:   store.Candidates(),
		DocumentRepo:    store.Documents(),
		Transactor:      tx,
		Dispatcher:      dispatcher,
	})
	reportSvc := service.NewReportService(config.UploadConfig{MaxReportImg: 10}, service.ReportDependencies{
		ReportRepo:   store.Reports(),
		EmployeeRepo: store.Employees(),
		CampaignRepo: store.Campaigns(),
		RetailerRepo: store.Retailers(),
		Transactor:   tx,
	})

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger, metrics)})
	RegisterMiddlewares(app, logger, metrics, 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("campaign-service", "test", nil, metrics),
		Auth:           handlers.NewAuthHandler(authSvc),
		Admin:          handlers.NewAdminHandler(identitySvc, employeeSvc, retailerSvc),
		Campaigns:      handlers.NewCampaignHandler(service.NewCampaignService(store.Campaigns()), assignmentSvc, paymentSvc),
		Employees:      handlers.NewEmployeeHandler(employeeSvc),
		Retailers:      handlers.NewRetailerHandler(retailerSvc),
		Careers:        handlers.NewCareerHandler(recruitmentSvc),
		Reports:        handlers.NewReportHandler(reportSvc),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
	})
	return &testServer{app: app, store: store, tokens: tokens}
}

func (s *testServer) token(t *testing.T, id string, role domain.Role) string {
	t.Helper()
	tok, _, err := s.tokens.GenerateToken(id, role, id+"@example.com")
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return s.send(t, req, token)
}

func (s *testServer) send(t *testing.T, req *http.Request, token string) (*http.Response, map[string]any) {
	t.Helper()
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

var campaignBody = map[string]any{
	"name": "Diwali Push", "client": "Acme", "type": "Retail", "region": "North", "state": "Delhi",
}

func TestCreateCampaignRequiresAuthentication(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, http.MethodPost, "/api/admin/campaigns", "", campaignBody)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body["code"])
	assert.NotEmpty(t, body["message"])
	assert.Zero(t, s.store.Counts()["campaigns"])
}

func TestCreateCampaignRejectsOtherRoles(t *testing.T) {
	s := newTestServer(t)

	for _, role := range []domain.Role{domain.RoleEmployee, domain.RoleRetailer, domain.RoleClientAdmin} {
		resp, body := s.do(t, http.MethodPost, "/api/admin/campaigns", s.token(t, "u-1", role), campaignBody)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, role)
		assert.Equal(t, "FORBIDDEN", body["code"])
	}
	assert.Zero(t, s.store.Counts()["campaigns"])
}

func TestCreateCampaignAsAdmin(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.token(t, "admin-1", domain.RoleAdmin)

	resp, body := s.do(t, http.MethodPost, "/api/admin/campaigns", adminToken, campaignBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "Diwali Push", data["name"])
	assert.Equal(t, true, data["isActive"])
	assert.NotEmpty(t, resp.Header.Get(observability.RequestIDHeader))

	resp, body = s.do(t, http.MethodGet, "/api/admin/campaigns/"+data["id"].(string), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Acme", body["data"].(map[string]any)["client"])
}

func TestValidationErrorShape(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, http.MethodPost, "/api/admin/campaigns", s.token(t, "admin-1", domain.RoleAdmin),
		map[string]any{"name": "Only a name"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", body["code"])
	details := body["details"].(map[string]any)
	assert.Equal(t, "required", details["client"])
	assert.NotContains(t, body, "error")
}

func TestPublicLoginIsNotGuarded(t *testing.T) {
	s := newTestServer(t)
	hash, err := auth.HashPassword("hunter22", bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, s.store.Admins().Create(context.Background(), &domain.Admin{
		Name: "Ops", Email: "ops@example.com", PasswordHash: hash,
	}))

	resp, body := s.do(t, http.MethodPost, "/api/admin/login", "",
		map[string]any{"email": "ops@example.com", "password": "hunter22"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["auth"].(map[string]any)["token"])
	assert.Equal(t, "ops@example.com", data["admin"].(map[string]any)["email"])

	resp, _ = s.do(t, http.MethodPost, "/api/admin/login", "",
		map[string]any{"email": "ops@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestReportSubmitAndDownload(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	employee := &domain.Employee{Name: "Asha Rao", Email: "asha@example.com", Phone: "9000000001"}
	require.NoError(t, s.store.Employees().Create(ctx, employee))
	campaign := &domain.Campaign{Name: "Shelf Audit", Client: "Acme", Type: domain.CampaignTypeDisplay, IsActive: true}
	require.NoError(t, s.store.Campaigns().Create(ctx, campaign))
	retailer := &domain.Retailer{Name: "Corner", Email: "corner@example.com", ContactNo: "9000000002", UniqueID: "N1", RetailerCode: "R1"}
	require.NoError(t, s.store.Retailers().Create(ctx, retailer))

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"campaignId": campaign.ID, "retailerId": retailer.ID, "reportType": "Stock",
		"dateOfSubmission": "2024-06-01", "quantity": "12",
	} {
		require.NoError(t, w.WriteField(k, v))
	}
	part, err := w.CreateFormFile("images", "shelf.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("not really a png"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	employeeToken := s.token(t, employee.ID, domain.RoleEmployee)
	req := httptest.NewRequest(http.MethodPost, "/employee/report", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	resp, body := s.send(t, req, employeeToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 1, data["imageCount"])
	assert.EqualValues(t, 12, data["quantity"])
	reportID := data["id"].(string)

	resp, body = s.do(t, http.MethodGet, "/api/admin/reports", s.token(t, "admin-1", domain.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"], 1)

	resp, _ = s.do(t, http.MethodPost, "/employee/report/download", employeeToken, map[string]any{"reportId": reportID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "asha-rao-report-2024-06-01.pdf")
	assert.Equal(t, "shelf.png", resp.Header.Get("X-Skipped-Images"))

	resp, _ = s.do(t, http.MethodPost, "/employee/report/download", s.token(t, "someone-else", domain.RoleEmployee),
		map[string]any{"reportId": reportID})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/employee/report/download", s.token(t, "r-1", domain.RoleRetailer),
		map[string]any{"reportId": reportID})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, http.MethodGet, "/health/live", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alive", body["status"])

	resp, body = s.do(t, http.MethodGet, "/health/ready", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ready", body["status"])

	resp, body = s.do(t, http.MethodGet, "/health/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body["data"], "requests")
}
