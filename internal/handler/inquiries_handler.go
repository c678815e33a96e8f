package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/robomover/api/internal/dto"
	"github.com/robomover/api/internal/repository"
)

// InquiriesHandler exposes direct inquiry lookups.
type InquiriesHandler struct {
	inquiries repository.InquiriesRepository
}

// NewInquiriesHandler constructs the handler.
func NewInquiriesHandler(inquiries repository.InquiriesRepository) *InquiriesHandler {
	return &InquiriesHandler{inquiries: inquiries}
}

// Get handles GET /inquiries/:id.
func (h *InquiriesHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid inquiry id")
	}

	inquiry, err := h.inquiries.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrInquiryNotFound) {
			return Error(c, http.StatusNotFound, "inquiry not found")
		}
		return Error(c, http.StatusInternalServerError, "unable to fetch inquiry")
	}
	return Success(c, http.StatusOK, "inquiry retrieved", dto.NewInquiryResponse(inquiry))
}
