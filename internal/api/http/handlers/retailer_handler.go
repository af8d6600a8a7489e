package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campaign-service/internal/api/dto"
	"github.com/spec-kit/campaign-service/internal/service"
)

// RetailerHandler serves retailer onboarding and the signed-in retailer's resources.
type RetailerHandler struct {
	retailers *service.RetailerService
}

// NewRetailerHandler constructs handler.
func NewRetailerHandler(retailers *service.RetailerService) *RetailerHandler {
	return &RetailerHandler{retailers: retailers}
}

// SendOTP handles POST /api/retailer/send-otp.
func (h *RetailerHandler) SendOTP(c *fiber.Ctx) error {
	var req dto.SendOTPRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.retailers.SendOTP(c.UserContext(), req.Phone); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "OTP sent"})
}

// VerifyOTP handles POST /api/retailer/verify-otp.
func (h *RetailerHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.retailers.VerifyOTP(c.UserContext(), req.Phone, req.OTP); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "OTP verified"})
}

// Register handles POST /api/retailer/register (multipart).
func (h *RetailerHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRetailerRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	lat, err := parseOptionalFloat("latitude", req.Latitude)
	if err != nil {
		return err
	}
	lng, err := parseOptionalFloat("longitude", req.Longitude)
	if err != nil {
		return err
	}
	files, err := uploads(c)
	if err != nil {
		return err
	}

	in := service.RegisterRetailerInput{
		Name:          req.Name,
		ContactNo:     req.ContactNo,
		Email:         req.Email,
		Password:      req.Password,
		Gender:        req.Gender,
		GovtIDType:    req.GovtIDType,
		GovtIDNumber:  req.GovtIDNumber,
		ShopName:      req.ShopName,
		BusinessType:  req.BusinessType,
		OwnershipType: req.OwnershipType,
		GSTNo:         req.GSTNo,
		PANCard:       req.PANCard,
		Address:       req.Address,
		State:         req.State,
		City:          req.City,
		PartOfIndia:   req.PartOfIndia,
		CreatedBy:     req.CreatedBy,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		IFSC:          req.IFSC,
		BranchName:    req.BranchName,
		Documents:     documentUploads(files),
	}
	if lat != nil {
		in.Latitude = *lat
	}
	if lng != nil {
		in.Longitude = *lng
	}

	retailer, err := h.retailers.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	kinds := make([]string, 0, len(in.Documents))
	for kind := range in.Documents {
		kinds = append(kinds, string(kind))
	}
	resp := retailerResponse(retailer, nil)
	resp.Documents = kinds
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "retailer registered",
		"data":    resp,
	})
}

// Profile handles GET /api/retailer/profile.
func (h *RetailerHandler) Profile(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	retailer, kinds, err := h.retailers.Profile(c.UserContext(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": retailerResponse(retailer, kinds)})
}

// Campaigns handles GET /api/retailer/campaigns.
func (h *RetailerHandler) Campaigns(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	campaigns, err := h.retailers.Campaigns(c.UserContext(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": subjectCampaigns(campaigns, actor.ID, false)})
}
