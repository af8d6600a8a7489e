package dto

import "time"

// SubmitReportRequest is the multipart report form. Numeric fields are optional.
type SubmitReportRequest struct {
	CampaignID       string `form:"campaignId" validate:"required"`
	RetailerID       string `form:"retailerId" validate:"required"`
	ReportType       string `form:"reportType" validate:"required"`
	Frequency        string `form:"frequency"`
	DateOfSubmission string `form:"dateOfSubmission"`
	IsAttended       string `form:"isAttended"`
	NotVisitedReason string `form:"reasonForNonAttendance"`
	OtherReasonText  string `form:"otherReason"`
	StockType        string `form:"stockType"`
	Brand            string `form:"brand"`
	Product          string `form:"product"`
	SKU              string `form:"sku"`
	ProductType      string `form:"productType"`
	Quantity         string `form:"quantity"`
	Remarks          string `form:"remarks"`
	Latitude         string `form:"latitude"`
	Longitude        string `form:"longitude"`
}

// DownloadReportRequest names the report to export.
type DownloadReportRequest struct {
	ReportID string `json:"reportId" validate:"required"`
}

// AttachmentResponse describes a stored file without its bytes.
type AttachmentResponse struct {
	ID          string `json:"id"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
}

// ReportResponse is a report's metadata.
type ReportResponse struct {
	ID               string               `json:"id"`
	EmployeeID       string               `json:"employeeId"`
	CampaignID       string               `json:"campaignId"`
	RetailerID       string               `json:"retailerId"`
	ReportType       string               `json:"reportType"`
	Frequency        string               `json:"frequency,omitempty"`
	DateOfSubmission *time.Time           `json:"dateOfSubmission,omitempty"`
	Attended         bool                 `json:"isAttended"`
	NotVisitedReason string               `json:"reasonForNonAttendance,omitempty"`
	OtherReasonText  string               `json:"otherReason,omitempty"`
	StockType        string               `json:"stockType,omitempty"`
	Brand            string               `json:"brand,omitempty"`
	Product          string               `json:"product,omitempty"`
	SKU              string               `json:"sku,omitempty"`
	ProductType      string               `json:"productType,omitempty"`
	Quantity         *int                 `json:"quantity,omitempty"`
	Remarks          string               `json:"remarks,omitempty"`
	Latitude         *float64             `json:"latitude,omitempty"`
	Longitude        *float64             `json:"longitude,omitempty"`
	Images           []AttachmentResponse `json:"images,omitempty"`
	BillCopy         *AttachmentResponse  `json:"billCopy,omitempty"`
	ImageCount       int                  `json:"imageCount"`
	HasBillCopy      bool                 `json:"hasBillCopy"`
	CreatedAt        time.Time            `json:"createdAt"`
}
