package service

import (
	"context"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/campaign-service/internal/auth"
	"github.com/spec-kit/campaign-service/internal/config"
	"github.com/spec-kit/campaign-service/internal/domain"
	"github.com/spec-kit/campaign-service/internal/pdf"
	"github.com/spec-kit/campaign-service/internal/persistence"
	"github.com/spec-kit/campaign-service/internal/repository"
	apperrors "github.com/spec-kit/campaign-service/pkg/util/errorutil"
)

// ReportService stores field visit reports and exports them as PDF.
type ReportService struct {
	reports   repository.ReportRepository
	employees repository.EmployeeRepository
	campaigns repository.CampaignRepository
	retailers repository.RetailerRepository
	tx        persistence.Transactor
	maxImages int
}

// ReportDependencies bundles collaborators for report service.
type ReportDependencies struct {
	ReportRepo   repository.ReportRepository
	EmployeeRepo repository.EmployeeRepository
	CampaignRepo repository.CampaignRepository
	RetailerRepo repository.RetailerRepository
	Transactor   persistence.Transactor
}

// NewReportService constructs the service.
func NewReportService(cfg config.UploadConfig, deps ReportDependencies) *ReportService {
	maxImages := cfg.MaxReportImg
	if maxImages <= 0 {
		maxImages = 10
	}
	return &ReportService{
		reports:   deps.ReportRepo,
		employees: deps.EmployeeRepo,
		campaigns: deps.CampaignRepo,
		retailers: deps.RetailerRepo,
		tx:        deps.Transactor,
		maxImages: maxImages,
	}
}

// SubmitReportInput is the report form. Quantity and coordinates are optional.
type SubmitReportInput struct {
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
	Images           []FileUpload
	BillCopy         *FileUpload
}

// Submit stores an immutable report for the calling employee.
func (s *ReportService) Submit(ctx context.Context, actor auth.Principal, in SubmitReportInput) (*domain.EmployeeReport, error) {
	missing := map[string]any{}
	for field, v := range map[string]string{
		"campaignId": in.CampaignID, "retailerId": in.RetailerID, "reportType": in.ReportType,
	} {
		if strings.TrimSpace(v) == "" {
			missing[field] = "required"
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", missing)
	}
	if len(in.Images) > s.maxImages {
		return nil, apperrors.NewValidationError("too many images", map[string]any{"max": s.maxImages})
	}
	if _, err := s.campaigns.GetByID(ctx, in.CampaignID); err != nil {
		return nil, notFoundOr(err, "campaign")
	}
	if _, err := s.retailers.GetByID(ctx, in.RetailerID); err != nil {
		return nil, notFoundOr(err, "retailer")
	}

	report := &domain.EmployeeReport{
		EmployeeID:       actor.ID,
		CampaignID:       in.CampaignID,
		RetailerID:       in.RetailerID,
		ReportType:       strings.TrimSpace(in.ReportType),
		Frequency:        strings.TrimSpace(in.Frequency),
		DateOfSubmission: in.DateOfSubmission,
		Attended:         in.Attended,
		NotVisitedReason: strings.TrimSpace(in.NotVisitedReason),
		OtherReasonText:  strings.TrimSpace(in.OtherReasonText),
		StockType:        strings.TrimSpace(in.StockType),
		Brand:            strings.TrimSpace(in.Brand),
		Product:          strings.TrimSpace(in.Product),
		SKU:              strings.TrimSpace(in.SKU),
		ProductType:      strings.TrimSpace(in.ProductType),
		Quantity:         in.Quantity,
		Remarks:          strings.TrimSpace(in.Remarks),
		Latitude:         in.Latitude,
		Longitude:        in.Longitude,
	}
	for i, img := range in.Images {
		report.Images = append(report.Images, domain.ReportAttachment{
			Kind:        domain.AttachmentImage,
			Position:    i,
			FileName:    img.FileName,
			ContentType: img.ContentType,
			Data:        img.Data,
		})
	}
	if in.BillCopy != nil && len(in.BillCopy.Data) > 0 {
		report.BillCopy = &domain.ReportAttachment{
			Kind:        domain.AttachmentBillCopy,
			FileName:    in.BillCopy.FileName,
			ContentType: in.BillCopy.ContentType,
			Data:        in.BillCopy.Data,
		}
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.reports.Create(ctx, report)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// List returns report summaries. Employees only see their own reports.
func (s *ReportService) List(ctx context.Context, actor auth.Principal, campaignID string) ([]repository.ReportSummary, error) {
	filter := repository.ReportFilter{CampaignID: campaignID}
	if actor.Role == domain.RoleEmployee {
		filter.EmployeeID = actor.ID
	}
	return s.reports.List(ctx, filter)
}

// Get loads a report with its attachments.
func (s *ReportService) Get(ctx context.Context, actor auth.Principal, id string) (*domain.EmployeeReport, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("reportId is required", nil)
	}
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "report")
	}
	if actor.Role == domain.RoleEmployee && report.EmployeeID != actor.ID {
		return nil, apperrors.NewForbidden("report belongs to another employee")
	}
	return report, nil
}

// RenderedReport is a PDF ready to stream.
type RenderedReport struct {
	FileName string
	Content  []byte
	Skipped  []string
}

// RenderPDF loads the report and its references and lays out the PDF.
// References that no longer exist are rendered as unavailable.
func (s *ReportService) RenderPDF(ctx context.Context, actor auth.Principal, id string) (*RenderedReport, error) {
	report, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	doc := pdf.ReportDocument{Report: *report}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e, err := s.employees.GetByID(gctx, report.EmployeeID)
		doc.Employee = e
		return ignoreNotFound(err)
	})
	g.Go(func() error {
		c, err := s.campaigns.GetByID(gctx, report.CampaignID)
		doc.Campaign = c
		return ignoreNotFound(err)
	})
	g.Go(func() error {
		r, err := s.retailers.GetByID(gctx, report.RetailerID)
		doc.Retailer = r
		return ignoreNotFound(err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res, err := pdf.RenderReport(doc)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &RenderedReport{
		FileName: reportFileName(doc),
		Content:  res.Bytes,
		Skipped:  res.Skipped,
	}, nil
}

func reportFileName(doc pdf.ReportDocument) string {
	name := "employee"
	if doc.Employee != nil && doc.Employee.Name != "" {
		name = doc.Employee.Name
	}
	base := slug.Make(name + " report " + pdf.FileDate(doc.Report).Format("2006-01-02"))
	return base + ".pdf"
}

func ignoreNotFound(err error) error {
	if err != nil && apperrors.IsNotFound(err) {
		return nil
	}
	return err
}
