package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/luppa-project/luppa/internal/server/middleware"
	"github.com/luppa-project/luppa/pkg/common"
	"github.com/luppa-project/luppa/pkg/logger"
	"github.com/luppa-project/luppa/pkg/store"
)

func latestAnalysis(c echo.Context) (store.Analysis, int, error) {
	type caseParams struct {
		CaseID string `param:"id" validate:"required"`
	}

	params := new(caseParams)
	if err := c.Bind(params); err != nil {
		return store.Analysis{}, http.StatusBadRequest, err
	}
	if err := c.Validate(params); err != nil {
		return store.Analysis{}, http.StatusBadRequest, err
	}

	ctx := c.Request().Context()
	resultStore := c.(*middleware.AppContext).App.Store

	if _, err := resultStore.GetCase(ctx, params.CaseID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Analysis{}, http.StatusNotFound, err
		}
		return store.Analysis{}, http.StatusInternalServerError, err
	}

	analysis, err := resultStore.LatestAnalysis(ctx, params.CaseID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Analysis{}, http.StatusNotFound, err
		}
		return store.Analysis{}, http.StatusInternalServerError, err
	}

	return analysis, http.StatusOK, nil
}

// GetCaseNetworkHandler returns the latest graph snapshot for a case
func GetCaseNetworkHandler(c echo.Context) error {
	type getNetworkResponse struct {
		Message string          `json:"message"`
		Network *common.Network `json:"network,omitempty"`
	}

	analysis, status, err := latestAnalysis(c)
	if err != nil {
		if status == http.StatusInternalServerError {
			logger.Error("Failed to get latest analysis", "err", err)
		}
		return c.JSON(status, getNetworkResponse{Message: statusMessage(status)})
	}

	return c.JSON(http.StatusOK, getNetworkResponse{
		Message: "OK",
		Network: &analysis.Network,
	})
}

// GetCaseFindingsHandler returns the findings of the latest scan for a case
func GetCaseFindingsHandler(c echo.Context) error {
	type getFindingsResponse struct {
		Message  string           `json:"message"`
		Findings []common.Finding `json:"findings"`
	}

	analysis, status, err := latestAnalysis(c)
	if err != nil {
		if status == http.StatusInternalServerError {
			logger.Error("Failed to get latest analysis", "err", err)
		}
		return c.JSON(status, getFindingsResponse{Message: statusMessage(status)})
	}

	findings := analysis.Findings
	if findings == nil {
		findings = make([]common.Finding, 0)
	}

	return c.JSON(http.StatusOK, getFindingsResponse{
		Message:  "OK",
		Findings: findings,
	})
}

// GetCaseStatsHandler returns the latest graph statistics for a case
func GetCaseStatsHandler(c echo.Context) error {
	type getStatsResponse struct {
		Message string               `json:"message"`
		Stats   *common.NetworkStats `json:"stats,omitempty"`
	}

	analysis, status, err := latestAnalysis(c)
	if err != nil {
		if status == http.StatusInternalServerError {
			logger.Error("Failed to get latest analysis", "err", err)
		}
		return c.JSON(status, getStatsResponse{Message: statusMessage(status)})
	}

	return c.JSON(http.StatusOK, getStatsResponse{
		Message: "OK",
		Stats:   &analysis.Stats,
	})
}

// GetCaseAnalysesHandler lists all analyses of a case, newest first
func GetCaseAnalysesHandler(c echo.Context) error {
	type getAnalysesParams struct {
		CaseID string `param:"id" validate:"required"`
	}

	type getAnalysesResponse struct {
		Message  string           `json:"message"`
		Analyses []store.Analysis `json:"analyses"`
	}

	params := new(getAnalysesParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, getAnalysesResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, getAnalysesResponse{
			Message: "Invalid request body",
		})
	}

	ctx := c.Request().Context()
	resultStore := c.(*middleware.AppContext).App.Store

	if _, err := resultStore.GetCase(ctx, params.CaseID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, getAnalysesResponse{
				Message: "Case not found",
			})
		}
		logger.Error("Failed to get case", "err", err)
		return c.JSON(http.StatusInternalServerError, getAnalysesResponse{
			Message: "Internal server error",
		})
	}

	analyses, err := resultStore.ListAnalyses(ctx, params.CaseID)
	if err != nil {
		logger.Error("Failed to list analyses", "err", err)
		return c.JSON(http.StatusInternalServerError, getAnalysesResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, getAnalysesResponse{
		Message:  "OK",
		Analyses: analyses,
	})
}

func statusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Invalid request body"
	case http.StatusNotFound:
		return "No analysis found"
	default:
		return "Internal server error"
	}
}
