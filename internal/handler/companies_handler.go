package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/robomover/api/internal/repository"
)

// CompaniesHandler exposes the company catalogue endpoints.
type CompaniesHandler struct {
	companies repository.CompaniesRepository
}

// NewCompaniesHandler constructs the handler.
func NewCompaniesHandler(companies repository.CompaniesRepository) *CompaniesHandler {
	return &CompaniesHandler{companies: companies}
}

// List handles GET /moving_companies.
func (h *CompaniesHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	companies, err := h.companies.List(c.Request().Context(), limit, offset)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to list moving companies")
	}
	return Success(c, http.StatusOK, "moving companies retrieved", companies)
}

// Get handles GET /moving_companies/:id.
func (h *CompaniesHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid company id")
	}

	company, err := h.companies.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return Error(c, http.StatusNotFound, "moving company not found")
		}
		return Error(c, http.StatusInternalServerError, "unable to fetch moving company")
	}
	return Success(c, http.StatusOK, "moving company retrieved", company)
}

// Delete handles DELETE /moving_companies/:id.
func (h *CompaniesHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid company id")
	}

	if err := h.companies.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return Error(c, http.StatusNotFound, "moving company not found")
		}
		return Error(c, http.StatusInternalServerError, "unable to delete moving company")
	}
	return Success(c, http.StatusOK, "moving company deleted", nil)
}
