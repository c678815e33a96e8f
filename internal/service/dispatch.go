package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/robomover/api/internal/repository"
	"github.com/robomover/api/internal/vapi"
)

// ErrInvalidPhoneNumber indicates a dispatch target that cannot be dialed.
var ErrInvalidPhoneNumber = errors.New("phone number cannot be normalized")

// CallCreator is the slice of the voice provider client dispatch needs.
type CallCreator interface {
	CreateCall(ctx context.Context, call vapi.CallRequest) (string, error)
}

// DispatchResult reports one dispatch attempt. A declined provider call is
// not an error: the caller keeps iterating over the remaining companies.
type DispatchResult struct {
	Dispatched bool
	CallID     string
	Reason     string
}

// DispatchService places outbound quote calls against open inquiries.
type DispatchService struct {
	requests      repository.MovingRequestsRepository
	inquiries     repository.InquiriesRepository
	calls         CallCreator
	assistantID   string
	phoneNumberID string
}

// NewDispatchService wires the dispatcher.
func NewDispatchService(requests repository.MovingRequestsRepository, inquiries repository.InquiriesRepository, calls CallCreator, assistantID, phoneNumberID string) *DispatchService {
	return &DispatchService{
		requests:      requests,
		inquiries:     inquiries,
		calls:         calls,
		assistantID:   assistantID,
		phoneNumberID: phoneNumberID,
	}
}

// Dispatch resolves the open inquiry for the (request, phone) pair, places
// the call and records the provider's call id on that row. The inquiry is
// pinned by primary key before dialing so the later webhook update cannot
// land on a different row.
func (s *DispatchService) Dispatch(ctx context.Context, requestID uuid.UUID, phoneNumber string) (DispatchResult, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return DispatchResult{}, err
	}

	normalized := NormalizePhoneNumber(phoneNumber)
	if normalized == "" {
		return DispatchResult{}, ErrInvalidPhoneNumber
	}

	inquiry, err := s.inquiries.FindOpenForDispatch(ctx, request.ID, normalized)
	if err != nil {
		return DispatchResult{}, err
	}

	callID, err := s.calls.CreateCall(ctx, vapi.CallRequest{
		AssistantID: s.assistantID,
		VariableValues: map[string]string{
			"from_location": request.LocationFrom,
			"to_location":   request.LocationTo,
			"items":         request.Items,
			"availability":  request.Availability,
		},
		CustomerNumber: normalized,
		PhoneNumberID:  s.phoneNumberID,
	})
	if err != nil {
		var provErr *vapi.ProviderError
		switch {
		case errors.As(err, &provErr):
			callsDispatchedTotal.WithLabelValues("rejected").Inc()
			return DispatchResult{Reason: fmt.Sprintf("provider rejected the call: status %d", provErr.StatusCode)}, nil
		case errors.Is(err, vapi.ErrUnreadableResponse):
			// The call may already be ringing; redialing would double-call
			// the company.
			callsDispatchedTotal.WithLabelValues("unreadable").Inc()
			return DispatchResult{Reason: "provider accepted the call but the response was unreadable; do not redial"}, nil
		default:
			callsDispatchedTotal.WithLabelValues("unreachable").Inc()
			return DispatchResult{Reason: "provider unreachable"}, nil
		}
	}

	if err := s.inquiries.RecordCallID(ctx, inquiry.ID, callID); err != nil {
		return DispatchResult{}, fmt.Errorf("record call id %s: %w", callID, err)
	}

	callsDispatchedTotal.WithLabelValues("ok").Inc()
	return DispatchResult{Dispatched: true, CallID: callID}, nil
}
