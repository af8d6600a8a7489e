package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campaign-service/internal/api/dto"
	"github.com/spec-kit/campaign-service/internal/service"
	apperrors "github.com/spec-kit/campaign-service/pkg/util/errorutil"
)

// AdminHandler manages accounts on behalf of platform admins.
type AdminHandler struct {
	identity  *service.IdentityService
	employees *service.EmployeeService
	retailers *service.RetailerService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(identity *service.IdentityService, employees *service.EmployeeService, retailers *service.RetailerService) *AdminHandler {
	return &AdminHandler{identity: identity, employees: employees, retailers: retailers}
}

// AddAdmin handles POST /api/admin/add.
func (h *AdminHandler) AddAdmin(c *fiber.Ctx) error {
	var req dto.AddAdminRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	admin, err := h.identity.AddAdmin(c.UserContext(), service.AddAdminInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "admin added",
		"data":    adminResponse(admin),
	})
}

// AddClientAdmin handles POST /api/admin/client-admin.
func (h *AdminHandler) AddClientAdmin(c *fiber.Ctx) error {
	var req dto.AddClientAdminRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	admin, err := h.identity.AddClientAdmin(c.UserContext(), service.AddClientAdminInput{
		Name:             req.Name,
		Email:            req.Email,
		ContactNo:        req.ContactNo,
		OrganizationName: req.OrganizationName,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "client admin added",
		"data":    clientAdminResponse(admin),
	})
}

// AddClientUser handles POST /api/admin/client-user.
func (h *AdminHandler) AddClientUser(c *fiber.Ctx) error {
	var req dto.AddClientUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.identity.AddClientUser(c.UserContext(), service.AddClientUserInput{
		Name:                req.Name,
		Email:               req.Email,
		ContactNo:           req.ContactNo,
		RoleProfile:         req.RoleProfile,
		ParentClientAdminID: req.ParentClientAdminID,
		Password:            req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "client user added",
		"data":    clientUserResponse(user),
	})
}

// CreateEmployee handles POST /api/admin/employees.
func (h *AdminHandler) CreateEmployee(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.CreateEmployeeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	dob, err := parseDate("dob", req.DOB)
	if err != nil {
		return err
	}
	employee, err := h.employees.Create(c.UserContext(), actor, service.CreateEmployeeInput{
		Name:         req.Name,
		Email:        req.Email,
		ContactNo:    req.ContactNo,
		Gender:       req.Gender,
		Address:      req.Address,
		DOB:          dob,
		EmployeeType: req.EmployeeType,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "employee added",
		"data":    employeeResponse(employee),
	})
}

// BulkCreateEmployees handles POST /api/admin/employees/bulk with an XLSX file in "file".
func (h *AdminHandler) BulkCreateEmployees(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("spreadsheet file is required", map[string]any{"file": "required"})
	}
	f, err := fh.Open()
	if err != nil {
		return apperrors.NewValidationError("unreadable file", map[string]any{"field": "file"})
	}
	defer f.Close()

	result, err := h.employees.BulkCreate(c.UserContext(), actor, f)
	if err != nil {
		return err
	}
	resp := dto.BulkEmployeeResponse{
		Created:      make([]dto.EmployeeResponse, 0, len(result.Created)),
		SkippedRows:  result.Skipped,
		CreatedCount: len(result.Created),
	}
	for i := range result.Created {
		resp.Created = append(resp.Created, employeeResponse(&result.Created[i]))
	}
	if resp.SkippedRows == nil {
		resp.SkippedRows = []int{}
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "employees imported",
		"data":    resp,
	})
}

// ListEmployees handles GET /api/admin/employees.
func (h *AdminHandler) ListEmployees(c *fiber.Ctx) error {
	employees, err := h.employees.List(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		resp = append(resp, employeeResponse(&employees[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// ListRetailers handles GET /api/admin/retailers.
func (h *AdminHandler) ListRetailers(c *fiber.Ctx) error {
	retailers, err := h.retailers.List(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.RetailerResponse, 0, len(retailers))
	for i := range retailers {
		resp = append(resp, retailerResponse(&retailers[i], nil))
	}
	return c.JSON(fiber.Map{"data": resp})
}
