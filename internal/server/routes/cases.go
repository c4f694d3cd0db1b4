package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/luppa-project/luppa/internal/server/middleware"
	"github.com/luppa-project/luppa/pkg/logger"
	"github.com/luppa-project/luppa/pkg/store"
)

// GetCasesHandler lists all cases
func GetCasesHandler(c echo.Context) error {
	type getCasesResponse struct {
		Message string       `json:"message"`
		Cases   []store.Case `json:"cases"`
	}

	ctx := c.Request().Context()
	resultStore := c.(*middleware.AppContext).App.Store

	cases, err := resultStore.ListCases(ctx)
	if err != nil {
		logger.Error("Failed to list cases", "err", err)
		return c.JSON(http.StatusInternalServerError, getCasesResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, getCasesResponse{
		Message: "OK",
		Cases:   cases,
	})
}

// CreateCaseHandler creates a new investigation case
func CreateCaseHandler(c echo.Context) error {
	type createCaseBody struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description"`
	}

	type createCaseResponse struct {
		Message string      `json:"message"`
		Case    *store.Case `json:"case,omitempty"`
	}

	data := new(createCaseBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createCaseResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createCaseResponse{
			Message: "Invalid request body",
		})
	}

	ctx := c.Request().Context()
	resultStore := c.(*middleware.AppContext).App.Store

	created, err := resultStore.CreateCase(ctx, store.NewCaseParams{
		Name:        data.Name,
		Description: data.Description,
	})
	if err != nil {
		logger.Error("Failed to create case", "err", err)
		return c.JSON(http.StatusInternalServerError, createCaseResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, createCaseResponse{
		Message: "Case created successfully",
		Case:    &created,
	})
}

// GetCaseHandler returns a single case by ID
func GetCaseHandler(c echo.Context) error {
	type getCaseParams struct {
		CaseID string `param:"id" validate:"required"`
	}

	type getCaseResponse struct {
		Message string      `json:"message"`
		Case    *store.Case `json:"case,omitempty"`
	}

	params := new(getCaseParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, getCaseResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, getCaseResponse{
			Message: "Invalid request body",
		})
	}

	ctx := c.Request().Context()
	resultStore := c.(*middleware.AppContext).App.Store

	found, err := resultStore.GetCase(ctx, params.CaseID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, getCaseResponse{
				Message: "Case not found",
			})
		}
		logger.Error("Failed to get case", "err", err)
		return c.JSON(http.StatusInternalServerError, getCaseResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, getCaseResponse{
		Message: "OK",
		Case:    &found,
	})
}
