package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/robomover/api/internal/entity"
)

var (
	// ErrInquiryNotFound is returned when no inquiry matches the lookup.
	ErrInquiryNotFound = errors.New("inquiry not found")
	// ErrInquiryDuplicate indicates the (request, phone) pair already has an inquiry.
	ErrInquiryDuplicate = errors.New("inquiry already exists for this request and phone number")
)

// CompletionUpdate carries the fields delivered by an end-of-call report.
type CompletionUpdate struct {
	ProviderCallID  string
	PhoneNumber     string
	Price           *float64
	Summary         string
	Transcript      string
	DurationMinutes *float64
}

// InquiriesRepository describes persistence operations for inquiries.
type InquiriesRepository interface {
	Create(ctx context.Context, requestID, companyID uuid.UUID, phoneNumber string) (*entity.Inquiry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Inquiry, error)
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]entity.Inquiry, error)
	FindOpenForDispatch(ctx context.Context, requestID uuid.UUID, phoneNumber string) (*entity.Inquiry, error)
	RecordCallID(ctx context.Context, id uuid.UUID, providerCallID string) error
	RecordCompletion(ctx context.Context, update CompletionUpdate) (bool, error)
}

// PGXInquiriesRepository implements InquiriesRepository with pgx.
type PGXInquiriesRepository struct {
	pool pgxPool
}

// NewPGXInquiriesRepository instantiates an inquiries repository.
func NewPGXInquiriesRepository(pool *pgxpool.Pool) *PGXInquiriesRepository {
	return &PGXInquiriesRepository{pool: pool}
}

const inquiryColumns = `id, request_id, company_id, phone_number, provider_call_id, price, summary, transcript, duration_minutes, in_progress, created_at, updated_at`

// Create inserts an inquiry in its initial state: no call id, no price, not
// in progress. A second insert for the same (request, phone) pair fails with
// ErrInquiryDuplicate.
func (r *PGXInquiriesRepository) Create(ctx context.Context, requestID, companyID uuid.UUID, phoneNumber string) (*entity.Inquiry, error) {
	if phoneNumber == "" {
		return nil, fmt.Errorf("inquiry phone number must not be empty")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO inquiries (request_id, company_id, phone_number)
        VALUES ($1, $2, $3)
        RETURNING `+inquiryColumns,
		requestID, companyID, phoneNumber,
	)

	inquiry, err := scanInquiry(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, fmt.Errorf("%w: %v", ErrInquiryDuplicate, pgErr)
		}
		return nil, fmt.Errorf("insert inquiry: %w", err)
	}
	return inquiry, nil
}

// GetByID retrieves an inquiry by identifier.
func (r *PGXInquiriesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Inquiry, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+inquiryColumns+` FROM inquiries WHERE id = $1`, id)

	inquiry, err := scanInquiry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInquiryNotFound
		}
		return nil, fmt.Errorf("query inquiry: %w", err)
	}
	return inquiry, nil
}

// ListByRequest returns all inquiries created for one moving request.
func (r *PGXInquiriesRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]entity.Inquiry, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+inquiryColumns+` FROM inquiries WHERE request_id = $1 ORDER BY created_at ASC`, requestID)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	defer rows.Close()

	var inquiries []entity.Inquiry
	for rows.Next() {
		inquiry, err := scanInquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inquiry row: %w", err)
		}
		inquiries = append(inquiries, *inquiry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inquiries: %w", err)
	}
	return inquiries, nil
}

// FindOpenForDispatch resolves the inquiry a new call should attach to: the
// most recent one for the (request, phone) pair that has no provider call id
// yet. Resolving the concrete row before dialing keeps later updates
// unambiguous even if the same company is contacted again.
func (r *PGXInquiriesRepository) FindOpenForDispatch(ctx context.Context, requestID uuid.UUID, phoneNumber string) (*entity.Inquiry, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT `+inquiryColumns+` FROM inquiries
        WHERE request_id = $1 AND phone_number = $2 AND provider_call_id IS NULL
        ORDER BY created_at DESC
        LIMIT 1`,
		requestID, phoneNumber,
	)

	inquiry, err := scanInquiry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInquiryNotFound
		}
		return nil, fmt.Errorf("find open inquiry: %w", err)
	}
	return inquiry, nil
}

// RecordCallID stores the provider's call id and marks the inquiry in progress.
func (r *PGXInquiriesRepository) RecordCallID(ctx context.Context, id uuid.UUID, providerCallID string) error {
	cmd, err := r.pool.Exec(ctx, `
        UPDATE inquiries SET provider_call_id = $1, in_progress = TRUE, updated_at = NOW() WHERE id = $2`,
		providerCallID, id,
	)
	if err != nil {
		return fmt.Errorf("record call id: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrInquiryNotFound
	}
	return nil
}

// RecordCompletion overwrites the quote fields on the inquiry matched by
// provider call id and phone number. Zero matching rows is a legitimate
// no-op, reported via the boolean so callers can log it. The overwrite is
// unconditional, which makes redelivered reports idempotent.
func (r *PGXInquiriesRepository) RecordCompletion(ctx context.Context, update CompletionUpdate) (bool, error) {
	if update.ProviderCallID == "" || update.PhoneNumber == "" {
		return false, fmt.Errorf("completion update requires call id and phone number")
	}

	cmd, err := r.pool.Exec(ctx, `
        UPDATE inquiries SET
            price = $1,
            summary = $2,
            transcript = $3,
            duration_minutes = $4,
            in_progress = FALSE,
            updated_at = NOW()
        WHERE provider_call_id = $5 AND phone_number = $6`,
		update.Price,
		update.Summary,
		update.Transcript,
		update.DurationMinutes,
		update.ProviderCallID,
		update.PhoneNumber,
	)
	if err != nil {
		return false, fmt.Errorf("record completion: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanInquiry(row pgx.Row) (*entity.Inquiry, error) {
	var inquiry entity.Inquiry
	if err := row.Scan(
		&inquiry.ID,
		&inquiry.RequestID,
		&inquiry.CompanyID,
		&inquiry.PhoneNumber,
		&inquiry.ProviderCallID,
		&inquiry.Price,
		&inquiry.Summary,
		&inquiry.Transcript,
		&inquiry.DurationMinutes,
		&inquiry.InProgress,
		&inquiry.CreatedAt,
		&inquiry.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &inquiry, nil
}
