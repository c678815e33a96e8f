package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/robomover/api/internal/dto"
	"github.com/robomover/api/internal/repository"
	"github.com/robomover/api/internal/service"
)

// CallsHandler exposes the outbound call dispatch endpoint.
type CallsHandler struct {
	dispatch *service.DispatchService
}

// NewCallsHandler constructs the handler.
func NewCallsHandler(dispatch *service.DispatchService) *CallsHandler {
	return &CallsHandler{dispatch: dispatch}
}

// Dispatch handles POST /call_moving_companies. A provider-side refusal is a
// 200 with dispatched=false; only bad input and missing rows are HTTP errors.
func (h *CallsHandler) Dispatch(c echo.Context) error {
	var req dto.DispatchCallRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	requestID, err := uuid.Parse(req.RequestID)
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid request id")
	}
	if req.PhoneNumber == "" {
		return Error(c, http.StatusBadRequest, "phone_number is required")
	}

	result, err := h.dispatch.Dispatch(c.Request().Context(), requestID, req.PhoneNumber)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRequestNotFound):
			return Error(c, http.StatusNotFound, "moving request not found")
		case errors.Is(err, repository.ErrInquiryNotFound):
			return Error(c, http.StatusNotFound, "no open inquiry for this phone number")
		case errors.Is(err, service.ErrInvalidPhoneNumber):
			return Error(c, http.StatusBadRequest, "phone number cannot be dialed")
		default:
			return Error(c, http.StatusInternalServerError, "unable to dispatch call")
		}
	}

	return Success(c, http.StatusOK, "call dispatch processed", dto.DispatchCallResponse{
		Dispatched: result.Dispatched,
		CallID:     result.CallID,
		Reason:     result.Reason,
	})
}
