package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campaign-service/internal/domain"
)

// ReportFilter narrows report listings. Empty fields do not filter.
type ReportFilter struct {
	EmployeeID string
	CampaignID string
}

// ReportSummary is a report without its blobs.
type ReportSummary struct {
	domain.EmployeeReport
	ImageCount  int
	HasBillCopy bool
}

// ReportRepository persists employee field reports and their attachments.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.EmployeeReport) error
	GetByID(ctx context.Context, id string) (*domain.EmployeeReport, error)
	List(ctx context.Context, filter ReportFilter) ([]ReportSummary, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository constructs repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

const reportColumns = `r.id, r.employee_id, r.campaign_id, r.retailer_id, r.report_type, r.frequency, r.date_of_submission,
        r.attended, r.not_visited_reason, r.other_reason_text, r.stock_type, r.brand, r.product, r.sku,
        r.product_type, r.quantity, r.remarks, r.latitude, r.longitude, r.created_at`

// Create inserts the report and its attachments; callers wrap it in a transaction.
func (r *reportRepository) Create(ctx context.Context, rep *domain.EmployeeReport) error {
	q := conn(ctx, r.pool)
	const query = `
        INSERT INTO employee_reports (employee_id, campaign_id, retailer_id, report_type, frequency,
            date_of_submission, attended, not_visited_reason, other_reason_text, stock_type, brand, product,
            sku, product_type, quantity, remarks, latitude, longitude)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
        RETURNING id, created_at`
	if err := q.QueryRow(ctx, query,
		rep.EmployeeID,
		rep.CampaignID,
		rep.RetailerID,
		rep.ReportType,
		rep.Frequency,
		rep.DateOfSubmission,
		rep.Attended,
		rep.NotVisitedReason,
		rep.OtherReasonText,
		rep.StockType,
		rep.Brand,
		rep.Product,
		rep.SKU,
		rep.ProductType,
		rep.Quantity,
		rep.Remarks,
		rep.Latitude,
		rep.Longitude,
	).Scan(&rep.ID, &rep.CreatedAt); err != nil {
		return err
	}

	for i := range rep.Images {
		if err := insertAttachment(ctx, q, rep.ID, &rep.Images[i]); err != nil {
			return err
		}
	}
	if rep.BillCopy != nil {
		if err := insertAttachment(ctx, q, rep.ID, rep.BillCopy); err != nil {
			return err
		}
	}
	return nil
}

func insertAttachment(ctx context.Context, q querier, reportID string, att *domain.ReportAttachment) error {
	const query = `
        INSERT INTO report_attachments (report_id, kind, position, file_name, content_type, data)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`
	att.ReportID = reportID
	return q.QueryRow(ctx, query, reportID, att.Kind, att.Position, att.FileName, att.ContentType, att.Data).Scan(&att.ID)
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.EmployeeReport, error) {
	q := conn(ctx, r.pool)
	rep, err := scanReport(q.QueryRow(ctx, `SELECT `+reportColumns+` FROM employee_reports r WHERE r.id=$1`, id))
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, `
        SELECT id, report_id, kind, position, file_name, content_type, data
        FROM report_attachments WHERE report_id=$1 ORDER BY kind, position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var att domain.ReportAttachment
		if err := rows.Scan(&att.ID, &att.ReportID, &att.Kind, &att.Position, &att.FileName, &att.ContentType, &att.Data); err != nil {
			return nil, err
		}
		if att.Kind == domain.AttachmentBillCopy {
			bill := att
			rep.BillCopy = &bill
			continue
		}
		rep.Images = append(rep.Images, att)
	}
	return rep, rows.Err()
}

func (r *reportRepository) List(ctx context.Context, filter ReportFilter) ([]ReportSummary, error) {
	query := `SELECT ` + reportColumns + `,
            (SELECT COUNT(*) FROM report_attachments a WHERE a.report_id = r.id AND a.kind = 'image'),
            EXISTS (SELECT 1 FROM report_attachments a WHERE a.report_id = r.id AND a.kind = 'bill_copy')
        FROM employee_reports r
        WHERE ($1 = '' OR r.employee_id::text = $1) AND ($2 = '' OR r.campaign_id::text = $2)
        ORDER BY r.created_at DESC`
	rows, err := conn(ctx, r.pool).Query(ctx, query, filter.EmployeeID, filter.CampaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ReportSummary
	for rows.Next() {
		var s ReportSummary
		if err := rows.Scan(append(reportScanTargets(&s.EmployeeReport), &s.ImageCount, &s.HasBillCopy)...); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func scanReport(row pgx.Row) (*domain.EmployeeReport, error) {
	var rep domain.EmployeeReport
	if err := row.Scan(reportScanTargets(&rep)...); err != nil {
		return nil, err
	}
	return &rep, nil
}

func reportScanTargets(rep *domain.EmployeeReport) []any {
	return []any{
		&rep.ID,
		&rep.EmployeeID,
		&rep.CampaignID,
		&rep.RetailerID,
		&rep.ReportType,
		&rep.Frequency,
		&rep.DateOfSubmission,
		&rep.Attended,
		&rep.NotVisitedReason,
		&rep.OtherReasonText,
		&rep.StockType,
		&rep.Brand,
		&rep.Product,
		&rep.SKU,
		&rep.ProductType,
		&rep.Quantity,
		&rep.Remarks,
		&rep.Latitude,
		&rep.Longitude,
		&rep.CreatedAt,
	}
}
