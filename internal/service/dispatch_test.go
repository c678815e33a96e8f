package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/robomover/api/internal/entity"
	"github.com/robomover/api/internal/repository"
	"github.com/robomover/api/internal/vapi"
)

func TestDispatch_PlacesCallAndRecordsID(t *testing.T) {
	inquiryID := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	requests := fixtureRequestsRepo(t)

	inquiries := &mockInquiriesRepository{
		findOpenForDispatch: func(ctx context.Context, requestID uuid.UUID, phoneNumber string) (*entity.Inquiry, error) {
			if phoneNumber != "+14105551234" {
				t.Fatalf("expected normalized phone, got %s", phoneNumber)
			}
			return &entity.Inquiry{ID: inquiryID, RequestID: requestID, PhoneNumber: phoneNumber}, nil
		},
		recordCallID: func(ctx context.Context, id uuid.UUID, providerCallID string) error {
			if id != inquiryID {
				t.Fatalf("call id recorded on wrong inquiry: %s", id)
			}
			if providerCallID != "call-789" {
				t.Fatalf("unexpected call id: %s", providerCallID)
			}
			return nil
		},
	}

	calls := &mockCallCreator{
		createCall: func(ctx context.Context, call vapi.CallRequest) (string, error) {
			if call.AssistantID != "assistant-1" || call.PhoneNumberID != "phone-1" {
				t.Fatalf("unexpected call identity: %+v", call)
			}
			if call.CustomerNumber != "+14105551234" {
				t.Fatalf("unexpected customer number: %s", call.CustomerNumber)
			}
			if call.VariableValues["from_location"] != "Boston, MA" || call.VariableValues["to_location"] != "Cambridge, MA" {
				t.Fatalf("unexpected variable values: %+v", call.VariableValues)
			}
			if call.VariableValues["items"] != "3 beds, 1 couch" || call.VariableValues["availability"] != "next weekend" {
				t.Fatalf("unexpected variable values: %+v", call.VariableValues)
			}
			return "call-789", nil
		},
	}

	svc := NewDispatchService(requests, inquiries, calls, "assistant-1", "phone-1")
	result, err := svc.Dispatch(context.Background(), testRequestID, "(410) 555-1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Dispatched || result.CallID != "call-789" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestDispatch_ProviderRejectionIsNotAnError(t *testing.T) {
	requests := fixtureRequestsRepo(t)
	inquiries := &mockInquiriesRepository{
		findOpenForDispatch: func(ctx context.Context, requestID uuid.UUID, phoneNumber string) (*entity.Inquiry, error) {
			return &entity.Inquiry{ID: uuid.New()}, nil
		},
		recordCallID: func(ctx context.Context, id uuid.UUID, providerCallID string) error {
			t.Fatalf("call id must not be recorded on rejection")
			return nil
		},
	}
	calls := &mockCallCreator{
		createCall: func(ctx context.Context, call vapi.CallRequest) (string, error) {
			return "", &vapi.ProviderError{StatusCode: http.StatusBadRequest, Body: "invalid number"}
		},
	}

	svc := NewDispatchService(requests, inquiries, calls, "assistant-1", "phone-1")
	result, err := svc.Dispatch(context.Background(), testRequestID, "(410) 555-1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Dispatched {
		t.Fatalf("expected undispatched result")
	}
	if result.Reason == "" {
		t.Fatalf("expected a reason on rejection")
	}
}

func TestDispatch_UnreadableAcceptanceIsNotUnreachable(t *testing.T) {
	requests := fixtureRequestsRepo(t)
	inquiries := &mockInquiriesRepository{
		findOpenForDispatch: func(ctx context.Context, requestID uuid.UUID, phoneNumber string) (*entity.Inquiry, error) {
			return &entity.Inquiry{ID: uuid.New()}, nil
		},
		recordCallID: func(ctx context.Context, id uuid.UUID, providerCallID string) error {
			t.Fatalf("no call id is known for an unreadable acceptance")
			return nil
		},
	}
	calls := &mockCallCreator{
		createCall: func(ctx context.Context, call vapi.CallRequest) (string, error) {
			return "", fmt.Errorf("%w: invalid character '<'", vapi.ErrUnreadableResponse)
		},
	}

	svc := NewDispatchService(requests, inquiries, calls, "assistant-1", "phone-1")
	result, err := svc.Dispatch(context.Background(), testRequestID, "(410) 555-1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Dispatched {
		t.Fatalf("expected undispatched result")
	}
	// The company's line may already be ringing. The reason must warn the
	// operator off redialing instead of suggesting the provider was down.
	if result.Reason == "provider unreachable" {
		t.Fatalf("unreadable acceptance reported as unreachable: %q", result.Reason)
	}
	if !strings.Contains(result.Reason, "do not redial") {
		t.Fatalf("expected a redial warning, got %q", result.Reason)
	}
}

func TestDispatch_NoOpenInquiry(t *testing.T) {
	requests := fixtureRequestsRepo(t)
	inquiries := &mockInquiriesRepository{
		findOpenForDispatch: func(ctx context.Context, requestID uuid.UUID, phoneNumber string) (*entity.Inquiry, error) {
			return nil, repository.ErrInquiryNotFound
		},
	}

	svc := NewDispatchService(requests, inquiries, &mockCallCreator{}, "assistant-1", "phone-1")
	_, err := svc.Dispatch(context.Background(), testRequestID, "(410) 555-1234")
	if !errors.Is(err, repository.ErrInquiryNotFound) {
		t.Fatalf("expected ErrInquiryNotFound, got %v", err)
	}
}

func TestDispatch_UnknownRequest(t *testing.T) {
	requests := &mockRequestsRepository{
		getByID: func(ctx context.Context, id uuid.UUID) (*entity.MovingRequest, error) {
			return nil, repository.ErrRequestNotFound
		},
	}

	svc := NewDispatchService(requests, &mockInquiriesRepository{}, &mockCallCreator{}, "assistant-1", "phone-1")
	_, err := svc.Dispatch(context.Background(), uuid.New(), "(410) 555-1234")
	if !errors.Is(err, repository.ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestDispatch_UnparsablePhone(t *testing.T) {
	requests := fixtureRequestsRepo(t)
	svc := NewDispatchService(requests, &mockInquiriesRepository{}, &mockCallCreator{}, "assistant-1", "phone-1")
	if _, err := svc.Dispatch(context.Background(), testRequestID, "   "); !errors.Is(err, ErrInvalidPhoneNumber) {
		t.Fatalf("expected ErrInvalidPhoneNumber, got %v", err)
	}
}
