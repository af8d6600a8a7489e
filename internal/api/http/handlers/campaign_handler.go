package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campaign-service/internal/api/dto"
	"github.com/spec-kit/campaign-service/internal/service"
)

// CampaignHandler serves the campaign registry, assignment decisions and the payment ledger.
type CampaignHandler struct {
	campaigns   *service.CampaignService
	assignments *service.AssignmentService
	payments    *service.PaymentService
}

// NewCampaignHandler constructs handler.
func NewCampaignHandler(campaigns *service.CampaignService, assignments *service.AssignmentService, payments *service.PaymentService) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns, assignments: assignments, payments: payments}
}

// Create handles POST /api/admin/campaigns.
func (h *CampaignHandler) Create(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.CreateCampaignRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDate("endDate", req.EndDate)
	if err != nil {
		return err
	}
	campaign, err := h.campaigns.Create(c.UserContext(), actor, service.CreateCampaignInput{
		Name:        req.Name,
		Client:      req.Client,
		Type:        req.Type,
		Region:      req.Region,
		State:       req.State,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "campaign created",
		"data":    campaignResponse(campaign),
	})
}

// List handles GET /api/admin/campaigns.
func (h *CampaignHandler) List(c *fiber.Ctx) error {
	campaigns, err := h.campaigns.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": campaignResponses(campaigns)})
}

// Get handles GET /api/admin/campaigns/:id.
func (h *CampaignHandler) Get(c *fiber.Ctx) error {
	campaign, err := h.campaigns.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": campaignResponse(campaign)})
}

// SetStatus handles PATCH /api/admin/campaigns/:id/status.
func (h *CampaignHandler) SetStatus(c *fiber.Ctx) error {
	var req dto.CampaignStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	campaign, err := h.campaigns.SetActive(c.UserContext(), c.Params("id"), *req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "campaign status updated",
		"data":    campaignResponse(campaign),
	})
}

// Delete handles DELETE /api/admin/campaigns/:id.
func (h *CampaignHandler) Delete(c *fiber.Ctx) error {
	if err := h.campaigns.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "campaign deleted"})
}

// Assign handles POST /api/admin/campaigns/assign.
func (h *CampaignHandler) Assign(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.AssignRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	campaign, err := h.assignments.Assign(c.UserContext(), actor, req.CampaignID, req.EmployeeIDs, req.RetailerIDs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "campaign assigned",
		"data":    campaignResponse(campaign),
	})
}

// UpdateAssignmentStatus handles PUT /api/{employee,retailer}/campaigns/:campaignId/status.
// The caller's role decides which assignment list is updated.
func (h *CampaignHandler) UpdateAssignmentStatus(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.AssignmentStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	status, err := h.assignments.UpdateStatus(c.UserContext(), actor, c.Params("campaignId"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "campaign " + string(status),
		"data":    fiber.Map{"campaignId": c.Params("campaignId"), "status": status},
	})
}

// RecordPayment handles POST /api/admin/campaigns/payment.
func (h *CampaignHandler) RecordPayment(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.RecordPaymentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	payment, err := h.payments.RecordPayment(c.UserContext(), actor, service.RecordPaymentInput{
		CampaignID: req.CampaignID,
		RetailerID: req.RetailerID,
		AmountPaid: req.AmountPaid,
		UTRNumber:  req.UTRNumber,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "payment recorded",
		"data":    paymentResponse(payment),
	})
}

// SetPaymentPlan handles POST /api/client/campaigns/payment.
func (h *CampaignHandler) SetPaymentPlan(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.PaymentPlanRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	due, err := parseDate("dueDate", req.DueDate)
	if err != nil {
		return err
	}
	payment, err := h.payments.SetPlan(c.UserContext(), actor, service.SetPlanInput{
		CampaignID:  req.CampaignID,
		RetailerID:  req.RetailerID,
		TotalAmount: req.TotalAmount,
		Notes:       req.Notes,
		DueDate:     due,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "payment plan saved",
		"data":    paymentResponse(payment),
	})
}

// ListPayments handles GET /api/admin/campaigns/:id/payments.
func (h *CampaignHandler) ListPayments(c *fiber.Ctx) error {
	payments, err := h.payments.ListByCampaign(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	resp := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		resp = append(resp, paymentResponse(&payments[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

