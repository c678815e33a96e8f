package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/robomover/api/internal/entity"
)

// ErrCompanyNotFound is returned when no company matches the lookup criteria.
var ErrCompanyNotFound = errors.New("moving company not found")

// CompaniesRepository describes persistence operations for moving companies.
type CompaniesRepository interface {
	ResolveOrCreate(ctx context.Context, company *entity.MovingCompany) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.MovingCompany, error)
	GetByPhone(ctx context.Context, phoneNumber string) (*entity.MovingCompany, error)
	List(ctx context.Context, limit, offset int) ([]entity.MovingCompany, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PGXCompaniesRepository implements CompaniesRepository using pgx.
type PGXCompaniesRepository struct {
	pool pgxPool
}

// NewPGXCompaniesRepository wires a pgx backed repository.
func NewPGXCompaniesRepository(pool *pgxpool.Pool) *PGXCompaniesRepository {
	return &PGXCompaniesRepository{pool: pool}
}

const companyColumns = `id, name, phone_number, address, rating, rating_count, latitude, longitude, created_at, updated_at`

// ResolveOrCreate returns the id of the company owning the phone number,
// inserting it first if unseen. The unique constraint on phone_number makes
// the first writer win under concurrent discovery batches.
func (r *PGXCompaniesRepository) ResolveOrCreate(ctx context.Context, company *entity.MovingCompany) (uuid.UUID, error) {
	if company == nil {
		return uuid.Nil, fmt.Errorf("company payload is nil")
	}
	if company.PhoneNumber == "" {
		return uuid.Nil, fmt.Errorf("company phone number must not be empty")
	}

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
        INSERT INTO moving_companies (name, phone_number, address, rating, rating_count, latitude, longitude)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT ON CONSTRAINT moving_companies_phone_number_key DO NOTHING
        RETURNING id`,
		company.Name,
		company.PhoneNumber,
		company.Address,
		company.Rating,
		company.RatingCount,
		company.Latitude,
		company.Longitude,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("insert moving company: %w", err)
	}

	// Conflict path: another writer owns this phone number.
	err = r.pool.QueryRow(ctx, `SELECT id FROM moving_companies WHERE phone_number = $1`, company.PhoneNumber).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve moving company by phone: %w", err)
	}
	return id, nil
}

// GetByID retrieves a company by identifier.
func (r *PGXCompaniesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.MovingCompany, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM moving_companies WHERE id = $1`, id)

	company, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("query moving company: %w", err)
	}
	return company, nil
}

// GetByPhone retrieves a company by its business key.
func (r *PGXCompaniesRepository) GetByPhone(ctx context.Context, phoneNumber string) (*entity.MovingCompany, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM moving_companies WHERE phone_number = $1`, phoneNumber)

	company, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("query moving company by phone: %w", err)
	}
	return company, nil
}

// List returns companies ordered by rating then review volume.
func (r *PGXCompaniesRepository) List(ctx context.Context, limit, offset int) ([]entity.MovingCompany, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx, `
        SELECT `+companyColumns+` FROM moving_companies
        ORDER BY rating DESC NULLS LAST, rating_count DESC NULLS LAST, name ASC
        LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list moving companies: %w", err)
	}
	defer rows.Close()

	var companies []entity.MovingCompany
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan moving company row: %w", err)
		}
		companies = append(companies, *company)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate moving companies: %w", err)
	}
	return companies, nil
}

// Delete removes a company by id.
func (r *PGXCompaniesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM moving_companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete moving company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func scanCompany(row pgx.Row) (*entity.MovingCompany, error) {
	var company entity.MovingCompany
	if err := row.Scan(
		&company.ID,
		&company.Name,
		&company.PhoneNumber,
		&company.Address,
		&company.Rating,
		&company.RatingCount,
		&company.Latitude,
		&company.Longitude,
		&company.CreatedAt,
		&company.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &company, nil
}
