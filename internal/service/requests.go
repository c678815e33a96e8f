package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/robomover/api/internal/dto"
	"github.com/robomover/api/internal/entity"
	"github.com/robomover/api/internal/repository"
)

// ErrInvalidRequestPayload indicates a submission missing required fields.
var ErrInvalidRequestPayload = errors.New("location_from and location_to are required")

// DiscoveryScheduler hands a persisted request to the background discovery
// pipeline.
type DiscoveryScheduler interface {
	EnqueueDiscovery(ctx context.Context, requestID uuid.UUID) error
}

// MovingRequestsService owns the moving request lifecycle: intake, CRUD and
// the hand-off to discovery.
type MovingRequestsService struct {
	requests  repository.MovingRequestsRepository
	inquiries repository.InquiriesRepository
	scheduler DiscoveryScheduler
}

// NewMovingRequestsService wires the request service.
func NewMovingRequestsService(requests repository.MovingRequestsRepository, inquiries repository.InquiriesRepository, scheduler DiscoveryScheduler) *MovingRequestsService {
	return &MovingRequestsService{requests: requests, inquiries: inquiries, scheduler: scheduler}
}

// Submit persists a new request and queues its discovery run. The request
// survives a failed enqueue so a retry can pick it up.
func (s *MovingRequestsService) Submit(ctx context.Context, in dto.CreateMovingRequest, userID *uuid.UUID) (*entity.MovingRequest, error) {
	in.LocationFrom = strings.TrimSpace(in.LocationFrom)
	in.LocationTo = strings.TrimSpace(in.LocationTo)
	if in.LocationFrom == "" || in.LocationTo == "" {
		return nil, ErrInvalidRequestPayload
	}

	request, err := s.requests.Create(ctx, &entity.MovingRequest{
		LocationFrom: in.LocationFrom,
		LocationTo:   in.LocationTo,
		Items:        in.Items,
		Availability: in.Availability,
		UserID:       userID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.scheduler.EnqueueDiscovery(ctx, request.ID); err != nil {
		return nil, fmt.Errorf("enqueue discovery for request %s: %w", request.ID, err)
	}
	return request, nil
}

// Get retrieves a request by id.
func (s *MovingRequestsService) Get(ctx context.Context, id uuid.UUID) (*entity.MovingRequest, error) {
	return s.requests.GetByID(ctx, id)
}

// List returns stored requests with pagination defaults applied.
func (s *MovingRequestsService) List(ctx context.Context, limit, offset int) ([]entity.MovingRequest, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.requests.List(ctx, limit, offset)
}

// Update patches the free-text fields of a request.
func (s *MovingRequestsService) Update(ctx context.Context, id uuid.UUID, in dto.UpdateMovingRequest) (*entity.MovingRequest, error) {
	if in.LocationFrom == nil && in.LocationTo == nil && in.Items == nil && in.Availability == nil {
		return nil, errors.New("no fields to update")
	}
	return s.requests.Update(ctx, id, in.LocationFrom, in.LocationTo, in.Items, in.Availability)
}

// Delete removes a request and its inquiries.
func (s *MovingRequestsService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.requests.Delete(ctx, id)
}

// ListInquiries returns the quote ledger for one request, oldest first.
func (s *MovingRequestsService) ListInquiries(ctx context.Context, requestID uuid.UUID) ([]entity.Inquiry, error) {
	if _, err := s.requests.GetByID(ctx, requestID); err != nil {
		return nil, err
	}
	return s.inquiries.ListByRequest(ctx, requestID)
}
