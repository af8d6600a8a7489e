package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campaign-service/internal/api/dto"
	"github.com/spec-kit/campaign-service/internal/service"
)

// AuthHandler exposes the login endpoints of every account kind.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

func authPayload(key string, entity any, session *service.Session) fiber.Map {
	return fiber.Map{
		"data": fiber.Map{
			key:    entity,
			"auth": dto.AuthResponse{Token: session.Token, ExpiresAt: session.ExpiresAt},
		},
	}
}

// AdminLogin handles POST /api/admin/login.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	admin, session, err := h.auth.AdminLogin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(authPayload("admin", adminResponse(admin), session))
}

// ClientAdminLogin handles POST /api/client/admin/login and POST /api/admin/client-admin-login.
func (h *AuthHandler) ClientAdminLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	admin, session, err := h.auth.ClientAdminLogin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(authPayload("clientAdmin", clientAdminResponse(admin), session))
}

// ClientUserLogin handles POST /api/client/user/login.
func (h *AuthHandler) ClientUserLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, session, err := h.auth.ClientUserLogin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(authPayload("clientUser", clientUserResponse(user), session))
}

// EmployeeLogin handles POST /api/employee/login.
func (h *AuthHandler) EmployeeLogin(c *fiber.Ctx) error {
	var req dto.EmployeeLoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	phone := req.Phone
	if phone == "" {
		phone = req.ContactNo
	}
	employee, session, err := h.auth.EmployeeLogin(c.UserContext(), req.Email, phone, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(authPayload("employee", employeeResponse(employee), session))
}

// RetailerLogin handles POST /api/retailer/login.
func (h *AuthHandler) RetailerLogin(c *fiber.Ctx) error {
	var req dto.RetailerLoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	identifier := req.Identifier
	for _, v := range []string{req.Email, req.ContactNo} {
		if identifier == "" {
			identifier = v
		}
	}
	retailer, session, err := h.auth.RetailerLogin(c.UserContext(), identifier, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(authPayload("retailer", retailerResponse(retailer, nil), session))
}

// CandidateLogin handles POST /api/career/login.
func (h *AuthHandler) CandidateLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	candidate, session, err := h.auth.CandidateLogin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(authPayload("candidate", candidateResponse(candidate), session))
}

// ForgotPassword handles POST /api/admin/forgot-password.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.auth.RequestAdminPasswordReset(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"message": "reset code sent"})
}

// ResetPassword handles POST /api/admin/reset-password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.auth.ResetAdminPassword(c.UserContext(), req.Email, req.OTP, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "password updated"})
}
