package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campaign-service/internal/domain"
)

// PaymentRepository persists the per (campaign, retailer) payment ledger.
type PaymentRepository interface {
	// CreateIfAbsent inserts p unless a payment exists for the pair; it reports whether it inserted.
	CreateIfAbsent(ctx context.Context, p *domain.Payment) (bool, error)
	Get(ctx context.Context, campaignID, retailerID string) (*domain.Payment, error)
	// GetForUpdate locks the row for the surrounding transaction.
	GetForUpdate(ctx context.Context, campaignID, retailerID string) (*domain.Payment, error)
	Update(ctx context.Context, p *domain.Payment) error
	AddUTR(ctx context.Context, paymentID string, entry domain.UTREntry) error
	ListByCampaign(ctx context.Context, campaignID string) ([]domain.Payment, error)
}

type paymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository returns a Postgres-backed implementation.
func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepository{pool: pool}
}

const paymentColumns = `id, campaign_id, retailer_id, total_amount, amount_paid, remaining_amount, payment_status,
        notes, due_date, plan_set_by, last_updated_by, created_at, updated_at`

func (r *paymentRepository) CreateIfAbsent(ctx context.Context, p *domain.Payment) (bool, error) {
	const query = `
        INSERT INTO payments (campaign_id, retailer_id, total_amount, amount_paid, remaining_amount,
            payment_status, notes, due_date, plan_set_by, last_updated_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        ON CONFLICT ON CONSTRAINT payments_campaign_retailer_key DO NOTHING
        RETURNING id, created_at, updated_at`
	err := conn(ctx, r.pool).QueryRow(ctx, query,
		p.CampaignID,
		p.RetailerID,
		p.TotalAmount,
		p.AmountPaid,
		p.RemainingAmount,
		p.Status,
		p.Notes,
		p.DueDate,
		p.PlanSetBy,
		p.LastUpdatedBy,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *paymentRepository) Get(ctx context.Context, campaignID, retailerID string) (*domain.Payment, error) {
	return r.getOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE campaign_id=$1 AND retailer_id=$2`, campaignID, retailerID)
}

func (r *paymentRepository) GetForUpdate(ctx context.Context, campaignID, retailerID string) (*domain.Payment, error) {
	return r.getOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE campaign_id=$1 AND retailer_id=$2 FOR UPDATE`, campaignID, retailerID)
}

// Update writes the plan and paid total; remaining amount and status are derived in the same statement.
func (r *paymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	const query = `
        UPDATE payments SET
            total_amount = $1::numeric,
            amount_paid = $2::numeric,
            remaining_amount = $1::numeric - $2::numeric,
            payment_status = CASE
                WHEN $2::numeric <= 0 THEN 'Pending'
                WHEN $2::numeric < $1::numeric THEN 'Partially Paid'
                ELSE 'Completed' END,
            notes = $3, due_date = $4, plan_set_by = $5, last_updated_by = $6, updated_at = NOW()
        WHERE id = $7
        RETURNING remaining_amount, payment_status, updated_at`
	return conn(ctx, r.pool).QueryRow(ctx, query,
		p.TotalAmount,
		p.AmountPaid,
		p.Notes,
		p.DueDate,
		p.PlanSetBy,
		p.LastUpdatedBy,
		p.ID,
	).Scan(&p.RemainingAmount, &p.Status, &p.UpdatedAt)
}

func (r *paymentRepository) AddUTR(ctx context.Context, paymentID string, entry domain.UTREntry) error {
	const query = `
        INSERT INTO payment_utrs (payment_id, utr_number, amount, paid_at, updated_by)
        VALUES ($1,$2,$3,$4,$5)`
	_, err := conn(ctx, r.pool).Exec(ctx, query, paymentID, entry.UTRNumber, entry.Amount, entry.Date, entry.UpdatedBy)
	return err
}

func (r *paymentRepository) ListByCampaign(ctx context.Context, campaignID string) ([]domain.Payment, error) {
	q := conn(ctx, r.pool)
	rows, err := q.Query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE campaign_id=$1 ORDER BY created_at`, campaignID)
	if err != nil {
		return nil, err
	}
	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		payments = append(payments, *p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range payments {
		utrs, err := r.listUTRs(ctx, q, payments[i].ID)
		if err != nil {
			return nil, err
		}
		payments[i].UTRs = utrs
	}
	return payments, nil
}

func (r *paymentRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Payment, error) {
	q := conn(ctx, r.pool)
	p, err := scanPayment(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	if p.UTRs, err = r.listUTRs(ctx, q, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) listUTRs(ctx context.Context, q querier, paymentID string) ([]domain.UTREntry, error) {
	const query = `
        SELECT utr_number, amount, paid_at, updated_by
        FROM payment_utrs WHERE payment_id=$1 ORDER BY paid_at, created_at`
	rows, err := q.Query(ctx, query, paymentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.UTREntry
	for rows.Next() {
		var e domain.UTREntry
		if err := rows.Scan(&e.UTRNumber, &e.Amount, &e.Date, &e.UpdatedBy); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	if err := row.Scan(
		&p.ID,
		&p.CampaignID,
		&p.RetailerID,
		&p.TotalAmount,
		&p.AmountPaid,
		&p.RemainingAmount,
		&p.Status,
		&p.Notes,
		&p.DueDate,
		&p.PlanSetBy,
		&p.LastUpdatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
