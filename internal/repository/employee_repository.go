package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campaign-service/internal/domain"
)

// EmployeeRepository defines persistence access for field employees.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	GetByEmailOrPhone(ctx context.Context, email, phone string) (*domain.Employee, error)
	Update(ctx context.Context, employee *domain.Employee) error
	List(ctx context.Context) ([]domain.Employee, error)
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository returns a Postgres-backed implementation.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

const employeeColumns = `
        id, name, email, phone, gender, address, dob, employee_type, password_hash, is_first_login,
        esi_number, pf_number, uan_number, bank_name, account_number, ifsc, branch_name,
        created_by_admin_id, created_at, updated_at`

func (r *employeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	const query = `
        INSERT INTO employees (name, email, phone, gender, address, dob, employee_type, password_hash,
            is_first_login, created_by_admin_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return conn(ctx, r.pool).QueryRow(ctx, query,
		e.Name,
		e.Email,
		e.Phone,
		e.Gender,
		e.Address,
		e.DOB,
		e.EmployeeType,
		e.PasswordHash,
		e.IsFirstLogin,
		e.CreatedByAdminID,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	return scanEmployee(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id=$1`, id))
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return scanEmployee(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE lower(email)=lower($1)`, email))
}

func (r *employeeRepository) GetByEmailOrPhone(ctx context.Context, email, phone string) (*domain.Employee, error) {
	const where = ` FROM employees WHERE ($1 <> '' AND lower(email)=lower($1)) OR ($2 <> '' AND phone=$2) LIMIT 1`
	return scanEmployee(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+employeeColumns+where, email, phone))
}

func (r *employeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	const query = `
        UPDATE employees SET name=$1, phone=$2, gender=$3, address=$4, dob=$5, password_hash=$6,
            is_first_login=$7, esi_number=$8, pf_number=$9, uan_number=$10, bank_name=$11,
            account_number=$12, ifsc=$13, branch_name=$14, updated_at=NOW()
        WHERE id=$15
        RETURNING updated_at`
	err := conn(ctx, r.pool).QueryRow(ctx, query,
		e.Name,
		e.Phone,
		e.Gender,
		e.Address,
		e.DOB,
		e.PasswordHash,
		e.IsFirstLogin,
		e.Statutory.ESINumber,
		e.Statutory.PFNumber,
		e.Statutory.UANNumber,
		e.Bank.BankName,
		e.Bank.AccountNumber,
		e.Bank.IFSC,
		e.Bank.BranchName,
		e.ID,
	).Scan(&e.UpdatedAt)
	return err
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	return result, rows.Err()
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var e domain.Employee
	if err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Email,
		&e.Phone,
		&e.Gender,
		&e.Address,
		&e.DOB,
		&e.EmployeeType,
		&e.PasswordHash,
		&e.IsFirstLogin,
		&e.Statutory.ESINumber,
		&e.Statutory.PFNumber,
		&e.Statutory.UANNumber,
		&e.Bank.BankName,
		&e.Bank.AccountNumber,
		&e.Bank.IFSC,
		&e.Bank.BranchName,
		&e.CreatedByAdminID,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}
