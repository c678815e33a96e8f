package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/robomover/api/internal/dto"
	"github.com/robomover/api/internal/middleware"
	"github.com/robomover/api/internal/repository"
	"github.com/robomover/api/internal/service"
)

// MovingRequestsHandler exposes the moving request endpoints.
type MovingRequestsHandler struct {
	requests *service.MovingRequestsService
}

// NewMovingRequestsHandler constructs the handler.
func NewMovingRequestsHandler(requests *service.MovingRequestsService) *MovingRequestsHandler {
	return &MovingRequestsHandler{requests: requests}
}

// Submit handles POST /get_moving_companies: it persists the request and
// queues discovery, answering immediately with the request id.
func (h *MovingRequestsHandler) Submit(c echo.Context) error {
	var req dto.CreateMovingRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	var userID *uuid.UUID
	if subject, ok := c.Get(middleware.ContextKeyUserID).(string); ok {
		if parsed, err := uuid.Parse(subject); err == nil {
			userID = &parsed
		}
	}

	request, err := h.requests.Submit(c.Request().Context(), req, userID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequestPayload) {
			return Error(c, http.StatusBadRequest, err.Error())
		}
		return Error(c, http.StatusInternalServerError, "unable to accept moving request")
	}

	return Success(c, http.StatusAccepted, "moving request accepted", dto.SubmitResponse{RequestID: request.ID.String()})
}

// Get handles GET /moving_requests/:id.
func (h *MovingRequestsHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid request id")
	}

	request, err := h.requests.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return Error(c, http.StatusNotFound, "moving request not found")
		}
		return Error(c, http.StatusInternalServerError, "unable to fetch moving request")
	}
	return Success(c, http.StatusOK, "moving request retrieved", request)
}

// List handles GET /moving_requests.
func (h *MovingRequestsHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	requests, err := h.requests.List(c.Request().Context(), limit, offset)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to list moving requests")
	}
	return Success(c, http.StatusOK, "moving requests retrieved", requests)
}

// Update handles PATCH /moving_requests/:id.
func (h *MovingRequestsHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid request id")
	}

	var req dto.UpdateMovingRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	request, err := h.requests.Update(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return Error(c, http.StatusNotFound, "moving request not found")
		}
		return Error(c, http.StatusBadRequest, err.Error())
	}
	return Success(c, http.StatusOK, "moving request updated", request)
}

// Delete handles DELETE /moving_requests/:id.
func (h *MovingRequestsHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid request id")
	}

	if err := h.requests.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return Error(c, http.StatusNotFound, "moving request not found")
		}
		return Error(c, http.StatusInternalServerError, "unable to delete moving request")
	}
	return Success(c, http.StatusOK, "moving request deleted", nil)
}

// ListInquiries handles GET /moving_requests/:id/inquiries.
func (h *MovingRequestsHandler) ListInquiries(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid request id")
	}

	inquiries, err := h.requests.ListInquiries(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return Error(c, http.StatusNotFound, "moving request not found")
		}
		return Error(c, http.StatusInternalServerError, "unable to list inquiries")
	}
	return Success(c, http.StatusOK, "inquiries retrieved", dto.NewInquiryResponses(inquiries))
}
