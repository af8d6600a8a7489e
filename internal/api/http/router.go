package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campaign-service/internal/api/http/handlers"
	"github.com/spec-kit/campaign-service/internal/auth"
	"github.com/spec-kit/campaign-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Admin          *handlers.AdminHandler
	Campaigns      *handlers.CampaignHandler
	Employees      *handlers.EmployeeHandler
	Retailers      *handlers.RetailerHandler
	Careers        *handlers.CareerHandler
	Reports        *handlers.ReportHandler
	AuthMiddleware *auth.AuthMiddleware
}

// guard builds the handler chain for a protected route. Guards are attached per
// route rather than per group because public and protected routes share prefixes.
type guard func(h fiber.Handler) []fiber.Handler

func roleGuard(m *auth.AuthMiddleware, roles ...domain.Role) guard {
	return func(h fiber.Handler) []fiber.Handler {
		return []fiber.Handler{m.Handle, auth.RequireRoles(roles...), h}
	}
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	admin := roleGuard(cfg.AuthMiddleware, domain.RoleAdmin)
	client := roleGuard(cfg.AuthMiddleware, domain.RoleClientAdmin, domain.RoleClientUser)
	employee := roleGuard(cfg.AuthMiddleware, domain.RoleEmployee)
	retailer := roleGuard(cfg.AuthMiddleware, domain.RoleRetailer)
	candidate := roleGuard(cfg.AuthMiddleware, domain.RoleCandidate)
	reportReader := roleGuard(cfg.AuthMiddleware,
		domain.RoleAdmin, domain.RoleEmployee, domain.RoleClientAdmin, domain.RoleClientUser)

	api := app.Group("/api")

	adminGroup := api.Group("/admin")
	adminGroup.Post("/login", cfg.Auth.AdminLogin)
	adminGroup.Post("/client-admin-login", cfg.Auth.ClientAdminLogin)
	adminGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)
	adminGroup.Post("/reset-password", cfg.Auth.ResetPassword)
	adminGroup.Post("/add", admin(cfg.Admin.AddAdmin)...)
	adminGroup.Post("/client-admin", admin(cfg.Admin.AddClientAdmin)...)
	adminGroup.Post("/client-user", admin(cfg.Admin.AddClientUser)...)
	adminGroup.Post("/employees", admin(cfg.Admin.CreateEmployee)...)
	adminGroup.Post("/employees/bulk", admin(cfg.Admin.BulkCreateEmployees)...)
	adminGroup.Get("/employees", admin(cfg.Admin.ListEmployees)...)
	adminGroup.Get("/retailers", admin(cfg.Admin.ListRetailers)...)

	adminGroup.Post("/campaigns", admin(cfg.Campaigns.Create)...)
	adminGroup.Get("/campaigns", admin(cfg.Campaigns.List)...)
	adminGroup.Post("/campaigns/assign", admin(cfg.Campaigns.Assign)...)
	adminGroup.Post("/campaigns/payment", admin(cfg.Campaigns.RecordPayment)...)
	adminGroup.Get("/campaigns/:id", admin(cfg.Campaigns.Get)...)
	adminGroup.Patch("/campaigns/:id/status", admin(cfg.Campaigns.SetStatus)...)
	adminGroup.Delete("/campaigns/:id", admin(cfg.Campaigns.Delete)...)
	adminGroup.Get("/campaigns/:id/payments", admin(cfg.Campaigns.ListPayments)...)

	adminGroup.Post("/jobs", admin(cfg.Careers.CreateJob)...)
	adminGroup.Get("/jobs", admin(cfg.Careers.ListJobs)...)
	adminGroup.Get("/jobs/:id", admin(cfg.Careers.GetJob)...)
	adminGroup.Put("/jobs/:id", admin(cfg.Careers.UpdateJob)...)
	adminGroup.Get("/jobs/:id/applications", admin(cfg.Careers.JobApplications)...)
	adminGroup.Put("/applications/:id/status", admin(cfg.Careers.UpdateApplicationStatus)...)
	adminGroup.Get("/applications/:id/resume", admin(cfg.Careers.DownloadResume)...)
	adminGroup.Get("/reports", admin(cfg.Reports.List)...)

	clientGroup := api.Group("/client")
	clientGroup.Post("/admin/login", cfg.Auth.ClientAdminLogin)
	clientGroup.Post("/user/login", cfg.Auth.ClientUserLogin)
	clientGroup.Post("/campaigns/payment", client(cfg.Campaigns.SetPaymentPlan)...)

	employeeGroup := api.Group("/employee")
	employeeGroup.Post("/login", cfg.Auth.EmployeeLogin)
	employeeGroup.Put("/profile", employee(cfg.Employees.UpdateProfile)...)
	employeeGroup.Get("/campaigns", employee(cfg.Employees.Campaigns)...)
	employeeGroup.Put("/campaigns/:campaignId/status", employee(cfg.Campaigns.UpdateAssignmentStatus)...)

	retailerGroup := api.Group("/retailer")
	retailerGroup.Post("/send-otp", cfg.Retailers.SendOTP)
	retailerGroup.Post("/verify-otp", cfg.Retailers.VerifyOTP)
	retailerGroup.Post("/register", cfg.Retailers.Register)
	retailerGroup.Post("/login", cfg.Auth.RetailerLogin)
	retailerGroup.Get("/profile", retailer(cfg.Retailers.Profile)...)
	retailerGroup.Get("/campaigns", retailer(cfg.Retailers.Campaigns)...)
	retailerGroup.Put("/campaigns/:campaignId/status", retailer(cfg.Campaigns.UpdateAssignmentStatus)...)

	careerGroup := api.Group("/career")
	careerGroup.Post("/register", cfg.Careers.Register)
	careerGroup.Post("/login", cfg.Auth.CandidateLogin)
	careerGroup.Get("/jobs", cfg.Careers.ActiveJobs)
	careerGroup.Post("/apply", candidate(cfg.Careers.Apply)...)
	careerGroup.Get("/applications", candidate(cfg.Careers.MyApplications)...)

	// report routes live outside /api
	reports := app.Group("/employee")
	reports.Post("/report", employee(cfg.Reports.Submit)...)
	reports.Get("/reports", employee(cfg.Reports.List)...)
	reports.Post("/report/download", reportReader(cfg.Reports.Download)...)
	reports.Get("/report/:id", reportReader(cfg.Reports.Get)...)
}
