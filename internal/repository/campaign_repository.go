package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campaign-service/internal/domain"
)

// CampaignRepository persists campaigns and their assignment rows.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *domain.Campaign) error
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)
	List(ctx context.Context) ([]domain.Campaign, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error

	// Upsert*Assignment inserts a pending row or normalizes a row without status.
	// It reports whether a new row was created.
	UpsertEmployeeAssignment(ctx context.Context, campaignID, employeeID string, at time.Time) (bool, error)
	UpsertRetailerAssignment(ctx context.Context, campaignID, retailerID string, at time.Time) (bool, error)
	UpdateEmployeeStatus(ctx context.Context, campaignID, employeeID string, status domain.AssignmentStatus, at time.Time) error
	UpdateRetailerStatus(ctx context.Context, campaignID, retailerID string, status domain.AssignmentStatus, at time.Time) error
	GetRetailerAssignment(ctx context.Context, campaignID, retailerID string) (*domain.Assignment, error)

	ListForEmployee(ctx context.Context, employeeID string) ([]domain.Campaign, error)
	ListForRetailer(ctx context.Context, retailerID string) ([]domain.Campaign, error)
}

type campaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a Postgres-backed implementation.
func NewCampaignRepository(pool *pgxpool.Pool) CampaignRepository {
	return &campaignRepository{pool: pool}
}

const campaignColumns = `c.id, c.name, c.client, c.type, c.region, c.state, c.description, c.start_date, c.end_date,
        c.is_active, c.created_by, c.created_at, c.updated_at`

func (r *campaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	const query = `
        INSERT INTO campaigns (name, client, type, region, state, description, start_date, end_date, is_active, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return conn(ctx, r.pool).QueryRow(ctx, query,
		c.Name,
		c.Client,
		c.Type,
		c.Region,
		c.State,
		c.Description,
		c.StartDate,
		c.EndDate,
		c.IsActive,
		c.CreatedBy,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	campaigns, err := r.query(ctx, `SELECT `+campaignColumns+` FROM campaigns c WHERE c.id=$1`, id)
	if err != nil {
		return nil, err
	}
	if len(campaigns) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &campaigns[0], nil
}

func (r *campaignRepository) List(ctx context.Context) ([]domain.Campaign, error) {
	return r.query(ctx, `SELECT `+campaignColumns+` FROM campaigns c ORDER BY c.created_at DESC`)
}

func (r *campaignRepository) ListForEmployee(ctx context.Context, employeeID string) ([]domain.Campaign, error) {
	const query = `SELECT ` + campaignColumns + `
        FROM campaigns c JOIN campaign_employees ce ON ce.campaign_id = c.id
        WHERE ce.employee_id=$1 ORDER BY c.created_at DESC`
	return r.query(ctx, query, employeeID)
}

func (r *campaignRepository) ListForRetailer(ctx context.Context, retailerID string) ([]domain.Campaign, error) {
	const query = `SELECT ` + campaignColumns + `
        FROM campaigns c JOIN campaign_retailers cr ON cr.campaign_id = c.id
        WHERE cr.retailer_id=$1 ORDER BY c.created_at DESC`
	return r.query(ctx, query, retailerID)
}

func (r *campaignRepository) SetActive(ctx context.Context, id string, active bool) error {
	cmd, err := conn(ctx, r.pool).Exec(ctx, `UPDATE campaigns SET is_active=$1, updated_at=NOW() WHERE id=$2`, active, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *campaignRepository) Delete(ctx context.Context, id string) error {
	cmd, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM campaigns WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *campaignRepository) UpsertEmployeeAssignment(ctx context.Context, campaignID, employeeID string, at time.Time) (bool, error) {
	const query = `
        INSERT INTO campaign_employees AS ce (campaign_id, employee_id, status, assigned_at, updated_at)
        VALUES ($1, $2, 'pending', $3, $3)
        ON CONFLICT (campaign_id, employee_id) DO UPDATE
            SET status = COALESCE(ce.status, EXCLUDED.status),
                updated_at = CASE WHEN ce.status IS NULL THEN EXCLUDED.updated_at ELSE ce.updated_at END
        RETURNING (xmax = 0)`
	var inserted bool
	err := conn(ctx, r.pool).QueryRow(ctx, query, campaignID, employeeID, at).Scan(&inserted)
	return inserted, err
}

func (r *campaignRepository) UpsertRetailerAssignment(ctx context.Context, campaignID, retailerID string, at time.Time) (bool, error) {
	const query = `
        INSERT INTO campaign_retailers AS cr (campaign_id, retailer_id, status, assigned_at, updated_at)
        VALUES ($1, $2, 'pending', $3, $3)
        ON CONFLICT (campaign_id, retailer_id) DO UPDATE
            SET status = COALESCE(cr.status, EXCLUDED.status),
                updated_at = CASE WHEN cr.status IS NULL THEN EXCLUDED.updated_at ELSE cr.updated_at END
        RETURNING (xmax = 0)`
	var inserted bool
	err := conn(ctx, r.pool).QueryRow(ctx, query, campaignID, retailerID, at).Scan(&inserted)
	return inserted, err
}

func (r *campaignRepository) UpdateEmployeeStatus(ctx context.Context, campaignID, employeeID string, status domain.AssignmentStatus, at time.Time) error {
	const query = `UPDATE campaign_employees SET status=$1, updated_at=$2 WHERE campaign_id=$3 AND employee_id=$4`
	return execOne(ctx, conn(ctx, r.pool), query, status, at, campaignID, employeeID)
}

func (r *campaignRepository) UpdateRetailerStatus(ctx context.Context, campaignID, retailerID string, status domain.AssignmentStatus, at time.Time) error {
	const query = `UPDATE campaign_retailers SET status=$1, updated_at=$2 WHERE campaign_id=$3 AND retailer_id=$4`
	return execOne(ctx, conn(ctx, r.pool), query, status, at, campaignID, retailerID)
}

func (r *campaignRepository) GetRetailerAssignment(ctx context.Context, campaignID, retailerID string) (*domain.Assignment, error) {
	const query = `
        SELECT campaign_id, retailer_id, COALESCE(status, 'pending'), assigned_at, updated_at
        FROM campaign_retailers WHERE campaign_id=$1 AND retailer_id=$2`
	var a domain.Assignment
	if err := conn(ctx, r.pool).QueryRow(ctx, query, campaignID, retailerID).
		Scan(&a.CampaignID, &a.SubjectID, &a.Status, &a.AssignedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// query loads campaigns and then their assignment rows in two batched reads.
func (r *campaignRepository) query(ctx context.Context, query string, args ...any) ([]domain.Campaign, error) {
	q := conn(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	var campaigns []domain.Campaign
	for rows.Next() {
		var c domain.Campaign
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Client,
			&c.Type,
			&c.Region,
			&c.State,
			&c.Description,
			&c.StartDate,
			&c.EndDate,
			&c.IsActive,
			&c.CreatedBy,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			rows.Close()
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(campaigns) == 0 {
		return campaigns, nil
	}

	ids := make([]string, len(campaigns))
	index := make(map[string]int, len(campaigns))
	for i, c := range campaigns {
		ids[i] = c.ID
		index[c.ID] = i
	}

	employees, err := loadAssignments(ctx, q, `
        SELECT campaign_id, employee_id, COALESCE(status, 'pending'), assigned_at, updated_at
        FROM campaign_employees WHERE campaign_id = ANY($1::uuid[]) ORDER BY assigned_at`, ids)
	if err != nil {
		return nil, err
	}
	for _, a := range employees {
		c := &campaigns[index[a.CampaignID]]
		c.AssignedEmployees = append(c.AssignedEmployees, a)
	}

	retailers, err := loadAssignments(ctx, q, `
        SELECT campaign_id, retailer_id, COALESCE(status, 'pending'), assigned_at, updated_at
        FROM campaign_retailers WHERE campaign_id = ANY($1::uuid[]) ORDER BY assigned_at`, ids)
	if err != nil {
		return nil, err
	}
	for _, a := range retailers {
		c := &campaigns[index[a.CampaignID]]
		c.AssignedRetailers = append(c.AssignedRetailers, a)
	}
	return campaigns, nil
}

func loadAssignments(ctx context.Context, q querier, query string, ids []string) ([]domain.Assignment, error) {
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		if err := rows.Scan(&a.CampaignID, &a.SubjectID, &a.Status, &a.AssignedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func execOne(ctx context.Context, q querier, query string, args ...any) error {
	cmd, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
