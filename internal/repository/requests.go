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

// ErrRequestNotFound is returned when no moving request matches the lookup.
var ErrRequestNotFound = errors.New("moving request not found")

// MovingRequestsRepository describes persistence operations for moving requests.
type MovingRequestsRepository interface {
	Create(ctx context.Context, request *entity.MovingRequest) (*entity.MovingRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.MovingRequest, error)
	List(ctx context.Context, limit, offset int) ([]entity.MovingRequest, error)
	Update(ctx context.Context, id uuid.UUID, locationFrom, locationTo, items, availability *string) (*entity.MovingRequest, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetDiscoveryOutcome(ctx context.Context, id uuid.UUID, quotesFound bool, companiesFound int) error
	SetOriginCoordinates(ctx context.Context, id uuid.UUID, lat, lng float64) error
}

// PGXMovingRequestsRepository implements MovingRequestsRepository with pgx.
type PGXMovingRequestsRepository struct {
	pool pgxPool
}

// NewPGXMovingRequestsRepository instantiates a moving requests repository.
func NewPGXMovingRequestsRepository(pool *pgxpool.Pool) *PGXMovingRequestsRepository {
	return &PGXMovingRequestsRepository{pool: pool}
}

const requestColumns = `id, location_from, location_to, from_latitude, from_longitude, items, availability, user_id, quotes_found, companies_found, created_at, updated_at`

// Create inserts a new moving request row.
func (r *PGXMovingRequestsRepository) Create(ctx context.Context, request *entity.MovingRequest) (*entity.MovingRequest, error) {
	if request == nil {
		return nil, fmt.Errorf("request payload is nil")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO moving_requests (location_from, location_to, items, availability, user_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING `+requestColumns,
		request.LocationFrom,
		request.LocationTo,
		request.Items,
		request.Availability,
		request.UserID,
	)

	created, err := scanRequest(row)
	if err != nil {
		return nil, fmt.Errorf("insert moving request: %w", err)
	}
	return created, nil
}

// GetByID retrieves a moving request by identifier.
func (r *PGXMovingRequestsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.MovingRequest, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+requestColumns+` FROM moving_requests WHERE id = $1`, id)

	request, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("query moving request: %w", err)
	}
	return request, nil
}

// List returns moving requests ordered by creation date (desc).
func (r *PGXMovingRequestsRepository) List(ctx context.Context, limit, offset int) ([]entity.MovingRequest, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx, `SELECT `+requestColumns+` FROM moving_requests ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list moving requests: %w", err)
	}
	defer rows.Close()

	var requests []entity.MovingRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan moving request row: %w", err)
		}
		requests = append(requests, *request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate moving requests: %w", err)
	}
	return requests, nil
}

// Update patches the free-text fields of a request.
func (r *PGXMovingRequestsRepository) Update(ctx context.Context, id uuid.UUID, locationFrom, locationTo, items, availability *string) (*entity.MovingRequest, error) {
	row := r.pool.QueryRow(ctx, `
        UPDATE moving_requests SET
            location_from = COALESCE($1, location_from),
            location_to = COALESCE($2, location_to),
            items = COALESCE($3, items),
            availability = COALESCE($4, availability),
            updated_at = NOW()
        WHERE id = $5
        RETURNING `+requestColumns,
		locationFrom, locationTo, items, availability, id,
	)

	request, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("update moving request: %w", err)
	}
	return request, nil
}

// Delete removes a moving request and, via cascade, its inquiries.
func (r *PGXMovingRequestsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM moving_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete moving request: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// SetDiscoveryOutcome records how many companies discovery produced.
func (r *PGXMovingRequestsRepository) SetDiscoveryOutcome(ctx context.Context, id uuid.UUID, quotesFound bool, companiesFound int) error {
	cmd, err := r.pool.Exec(ctx, `
        UPDATE moving_requests SET quotes_found = $1, companies_found = $2, updated_at = NOW() WHERE id = $3`,
		quotesFound, companiesFound, id,
	)
	if err != nil {
		return fmt.Errorf("set discovery outcome: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// SetOriginCoordinates stores the geocoded origin for later map display.
func (r *PGXMovingRequestsRepository) SetOriginCoordinates(ctx context.Context, id uuid.UUID, lat, lng float64) error {
	cmd, err := r.pool.Exec(ctx, `
        UPDATE moving_requests SET from_latitude = $1, from_longitude = $2, updated_at = NOW() WHERE id = $3`,
		lat, lng, id,
	)
	if err != nil {
		return fmt.Errorf("set origin coordinates: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func scanRequest(row pgx.Row) (*entity.MovingRequest, error) {
	var request entity.MovingRequest
	if err := row.Scan(
		&request.ID,
		&request.LocationFrom,
		&request.LocationTo,
		&request.FromLatitude,
		&request.FromLongitude,
		&request.Items,
		&request.Availability,
		&request.UserID,
		&request.QuotesFound,
		&request.CompaniesFound,
		&request.CreatedAt,
		&request.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &request, nil
}
