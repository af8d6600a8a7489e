package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campaign-service/internal/api/dto"
	"github.com/spec-kit/campaign-service/internal/service"
)

// ReportHandler accepts field visit reports and exports them as PDF.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler constructs handler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Submit handles POST /employee/report (multipart, "images" and "billCopy" files).
func (h *ReportHandler) Submit(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.SubmitReportRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := submitInput(req)
	if err != nil {
		return err
	}
	files, err := uploads(c)
	if err != nil {
		return err
	}
	in.Images = append(files["images"], files["images[]"]...)
	if bill := files["billCopy"]; len(bill) > 0 {
		in.BillCopy = &bill[0]
	}

	report, err := h.reports.Submit(c.UserContext(), actor, in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "report submitted",
		"data":    reportResponse(report),
	})
}

func submitInput(req dto.SubmitReportRequest) (service.SubmitReportInput, error) {
	in := service.SubmitReportInput{
		CampaignID:       req.CampaignID,
		RetailerID:       req.RetailerID,
		ReportType:       req.ReportType,
		Frequency:        req.Frequency,
		Attended:         parseAttended(req.IsAttended),
		NotVisitedReason: req.NotVisitedReason,
		OtherReasonText:  req.OtherReasonText,
		StockType:        req.StockType,
		Brand:            req.Brand,
		Product:          req.Product,
		SKU:              req.SKU,
		ProductType:      req.ProductType,
		Remarks:          req.Remarks,
	}
	var err error
	if in.DateOfSubmission, err = parseDate("dateOfSubmission", req.DateOfSubmission); err != nil {
		return in, err
	}
	if in.Quantity, err = parseOptionalInt("quantity", req.Quantity); err != nil {
		return in, err
	}
	if in.Latitude, err = parseOptionalFloat("latitude", req.Latitude); err != nil {
		return in, err
	}
	if in.Longitude, err = parseOptionalFloat("longitude", req.Longitude); err != nil {
		return in, err
	}
	return in, nil
}

// parseAttended treats a missing flag as a completed visit.
func parseAttended(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "false", "no", "0":
		return false
	}
	return true
}

// List handles GET /api/admin/reports and GET /employee/reports with an optional ?campaignId filter.
func (h *ReportHandler) List(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	reports, err := h.reports.List(c.UserContext(), actor, c.Query("campaignId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reportSummaries(reports)})
}

// Get handles GET /employee/report/:id.
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	report, err := h.reports.Get(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reportResponse(report)})
}

// Download handles POST /employee/report/download.
func (h *ReportHandler) Download(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.DownloadReportRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	rendered, err := h.reports.RenderPDF(c.UserContext(), actor, req.ReportID)
	if err != nil {
		return err
	}
	if len(rendered.Skipped) > 0 {
		c.Set("X-Skipped-Images", strings.Join(rendered.Skipped, ","))
	}
	c.Attachment(rendered.FileName)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(rendered.Content)
}
