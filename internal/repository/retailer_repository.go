package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campaign-service/internal/domain"
)

// RetailerRepository defines persistence access for retailers.
type RetailerRepository interface {
	Create(ctx context.Context, retailer *domain.Retailer) error
	GetByID(ctx context.Context, id string) (*domain.Retailer, error)
	GetByEmailOrPhone(ctx context.Context, email, phone string) (*domain.Retailer, error)
	List(ctx context.Context) ([]domain.Retailer, error)
}

type retailerRepository struct {
	pool *pgxpool.Pool
}

// NewRetailerRepository returns a Postgres-backed implementation.
func NewRetailerRepository(pool *pgxpool.Pool) RetailerRepository {
	return &retailerRepository{pool: pool}
}

const retailerColumns = `
        id, unique_id, retailer_code, name, contact_no, email, gender, govt_id_type, govt_id_number,
        part_of_india, created_by, shop_name, business_type, ownership_type, gst_no, pan_card,
        shop_address, state, city, latitude, longitude, bank_name, account_number, ifsc, branch_name,
        password_hash, created_at, updated_at`

func (r *retailerRepository) Create(ctx context.Context, rt *domain.Retailer) error {
	const query = `
        INSERT INTO retailers (unique_id, retailer_code, name, contact_no, email, gender, govt_id_type,
            govt_id_number, part_of_india, created_by, shop_name, business_type, ownership_type, gst_no,
            pan_card, shop_address, state, city, latitude, longitude, bank_name, account_number, ifsc,
            branch_name, password_hash)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25)
        RETURNING id, created_at, updated_at`
	return conn(ctx, r.pool).QueryRow(ctx, query,
		rt.UniqueID,
		rt.RetailerCode,
		rt.Name,
		rt.ContactNo,
		rt.Email,
		rt.Gender,
		rt.GovtIDType,
		rt.GovtIDNumber,
		rt.PartOfIndia,
		rt.CreatedBy,
		rt.Shop.Name,
		rt.Shop.BusinessType,
		rt.Shop.OwnershipType,
		rt.Shop.GSTNo,
		rt.Shop.PANCard,
		rt.Shop.Address,
		rt.Shop.State,
		rt.Shop.City,
		rt.Shop.Latitude,
		rt.Shop.Longitude,
		rt.Bank.BankName,
		rt.Bank.AccountNumber,
		rt.Bank.IFSC,
		rt.Bank.BranchName,
		rt.PasswordHash,
	).Scan(&rt.ID, &rt.CreatedAt, &rt.UpdatedAt)
}

func (r *retailerRepository) GetByID(ctx context.Context, id string) (*domain.Retailer, error) {
	return scanRetailer(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+retailerColumns+` FROM retailers WHERE id=$1`, id))
}

func (r *retailerRepository) GetByEmailOrPhone(ctx context.Context, email, phone string) (*domain.Retailer, error) {
	const where = ` FROM retailers WHERE ($1 <> '' AND lower(email)=lower($1)) OR ($2 <> '' AND contact_no=$2) LIMIT 1`
	return scanRetailer(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+retailerColumns+where, email, phone))
}

func (r *retailerRepository) List(ctx context.Context) ([]domain.Retailer, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+retailerColumns+` FROM retailers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Retailer
	for rows.Next() {
		rt, err := scanRetailer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rt)
	}
	return result, rows.Err()
}

func scanRetailer(row pgx.Row) (*domain.Retailer, error) {
	var rt domain.Retailer
	if err := row.Scan(
		&rt.ID,
		&rt.UniqueID,
		&rt.RetailerCode,
		&rt.Name,
		&rt.ContactNo,
		&rt.Email,
		&rt.Gender,
		&rt.GovtIDType,
		&rt.GovtIDNumber,
		&rt.PartOfIndia,
		&rt.CreatedBy,
		&rt.Shop.Name,
		&rt.Shop.BusinessType,
		&rt.Shop.OwnershipType,
		&rt.Shop.GSTNo,
		&rt.Shop.PANCard,
		&rt.Shop.Address,
		&rt.Shop.State,
		&rt.Shop.City,
		&rt.Shop.Latitude,
		&rt.Shop.Longitude,
		&rt.Bank.BankName,
		&rt.Bank.AccountNumber,
		&rt.Bank.IFSC,
		&rt.Bank.BranchName,
		&rt.PasswordHash,
		&rt.CreatedAt,
		&rt.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rt, nil
}
