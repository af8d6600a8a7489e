// Package pdf lays out employee visit reports as A4 documents.
package pdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/spec-kit/campaign-service/internal/domain"
)

const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	margin       = 15.0
	rowHeight    = 5.5
	labelWidth   = 55.0
	imageBoxTop  = 30.0
	imageMaxDown = pageHeight - imageBoxTop - margin
)

// ReportDocument bundles a report with the records it references.
// Any reference may be nil when it was deleted after submission.
type ReportDocument struct {
	Report   domain.EmployeeReport
	Employee *domain.Employee
	Campaign *domain.Campaign
	Retailer *domain.Retailer
}

// Result is the rendered PDF plus what was left out.
type Result struct {
	Bytes      []byte
	Pages      int
	ImagePages int
	Skipped    []string
}

type row struct {
	label string
	value string
}

// RenderReport produces the report PDF. Attachments that cannot be decoded are
// skipped and listed in Result.Skipped; they never fail the export.
func RenderReport(doc ReportDocument) (*Result, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle("Employee Report", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	res := &Result{}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Employee Visit Report", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	section(pdf, tr, "Employee Information", employeeRows(doc.Employee))
	section(pdf, tr, "Campaign Information", campaignRows(doc.Campaign))
	section(pdf, tr, "Retailer Information", retailerRows(doc.Retailer))
	section(pdf, tr, "Visit Information", visitRows(doc.Report))
	section(pdf, tr, "Geolocation", []row{
		{"Latitude", floatOrDash(doc.Report.Latitude)},
		{"Longitude", floatOrDash(doc.Report.Longitude)},
	})

	for i, img := range doc.Report.Images {
		title := fmt.Sprintf("Image %d", i+1)
		if addImagePage(pdf, tr, title, fmt.Sprintf("img-%d", i), img) {
			res.ImagePages++
		} else {
			res.Skipped = append(res.Skipped, img.FileName)
		}
	}
	if bill := doc.Report.BillCopy; bill != nil {
		if addImagePage(pdf, tr, "Bill Copy", "bill-copy", *bill) {
			res.ImagePages++
		} else {
			res.Skipped = append(res.Skipped, bill.FileName)
		}
	}

	res.Pages = pdf.PageNo()
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report pdf: %w", err)
	}
	res.Bytes = buf.Bytes()
	return res, nil
}

func section(pdf *fpdf.Fpdf, tr func(string) string, title string, rows []row) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 7, tr(title), "", 1, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		pdf.CellFormat(labelWidth, rowHeight, tr(r.label), "", 0, "L", false, 0, "")
		pdf.MultiCell(0, rowHeight, tr(orDash(r.value)), "", "L", false)
	}
	pdf.Ln(2)
}

// addImagePage registers the attachment before adding a page so a bad blob
// leaves no empty page behind.
func addImagePage(pdf *fpdf.Fpdf, tr func(string) string, title, name string, att domain.ReportAttachment) bool {
	if len(att.Data) == 0 {
		return false
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(att.Data))
	if err != nil {
		return false
	}
	info := pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: format}, bytes.NewReader(att.Data))
	if pdf.Err() || info == nil {
		pdf.ClearError()
		return false
	}

	w, h := fitInto(info.Width(), info.Height(), pageWidth-2*margin, imageMaxDown)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")
	pdf.ImageOptions(name, (pageWidth-w)/2, imageBoxTop, w, h, false, fpdf.ImageOptions{ImageType: format}, 0, "")
	return true
}

func fitInto(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return maxW, maxH
	}
	scale := maxW / w
	if s := maxH / h; s < scale {
		scale = s
	}
	return w * scale, h * scale
}

func employeeRows(e *domain.Employee) []row {
	if e == nil {
		return []row{{"Employee", "not available"}}
	}
	return []row{
		{"Name", e.Name},
		{"Email", e.Email},
		{"Phone", e.Phone},
	}
}

func campaignRows(c *domain.Campaign) []row {
	if c == nil {
		return []row{{"Campaign", "not available"}}
	}
	return []row{
		{"Name", c.Name},
		{"Client", c.Client},
		{"Type", string(c.Type)},
		{"Region", c.Region},
		{"State", c.State},
	}
}

func retailerRows(r *domain.Retailer) []row {
	if r == nil {
		return []row{{"Retailer", "not available"}}
	}
	return []row{
		{"Name", r.Name},
		{"Unique ID", r.UniqueID},
		{"Retailer Code", r.RetailerCode},
		{"Shop", r.Shop.Name},
		{"Contact", r.ContactNo},
		{"City", r.Shop.City},
		{"State", r.Shop.State},
	}
}

func visitRows(r domain.EmployeeReport) []row {
	date := ""
	if r.DateOfSubmission != nil {
		date = r.DateOfSubmission.Format("02 Jan 2006")
	} else if !r.CreatedAt.IsZero() {
		date = r.CreatedAt.Format("02 Jan 2006")
	}
	attended := "No"
	if r.Attended {
		attended = "Yes"
	}
	quantity := ""
	if r.Quantity != nil {
		quantity = strconv.Itoa(*r.Quantity)
	}
	return []row{
		{"Report Type", r.ReportType},
		{"Frequency", r.Frequency},
		{"Date of Submission", date},
		{"Attended", attended},
		{"Reason Not Visited", r.NotVisitedReason},
		{"Other Reason", r.OtherReasonText},
		{"Stock Type", r.StockType},
		{"Brand", r.Brand},
		{"Product", r.Product},
		{"SKU", r.SKU},
		{"Product Type", r.ProductType},
		{"Quantity", quantity},
		{"Remarks", r.Remarks},
	}
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func floatOrDash(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 6, 64)
}

// FileDate picks the date used in download filenames.
func FileDate(r domain.EmployeeReport) time.Time {
	if r.DateOfSubmission != nil {
		return *r.DateOfSubmission
	}
	return r.CreatedAt
}
