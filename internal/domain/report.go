package domain

import "time"

// AttachmentKind distinguishes report photos from the bill copy.
type AttachmentKind string

const (
	AttachmentImage    AttachmentKind = "image"
	AttachmentBillCopy AttachmentKind = "bill_copy"
)

// ReportAttachment is a binary blob stored with a report.
type ReportAttachment struct {
	ID          string
	ReportID    string
	Kind        AttachmentKind
	Position    int
	FileName    string
	ContentType string
	Data        []byte
}

// EmployeeReport is a field visit report. Reports are never updated.
type EmployeeReport struct {
	ID               string
	EmployeeID       string
	CampaignID       string
	RetailerID       string
	ReportType       string
	Frequency        string
	DateOfSubmission *time.Time
	Attended         bool
	NotVisitedReason string
	OtherReasonText  string
	StockType        string
	Brand            string
	Product          string
	SKU              string
	ProductType      string
	Quantity         *int
	Remarks          string
	Latitude         *float64
	Longitude        *float64
	Images           []ReportAttachment
	BillCopy         *ReportAttachment
	CreatedAt        time.Time
}
