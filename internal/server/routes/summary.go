package routes

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/luppa-project/luppa/internal/server/middleware"
	"github.com/luppa-project/luppa/pkg/ai"
	"github.com/luppa-project/luppa/pkg/logger"
	"github.com/luppa-project/luppa/pkg/store"
)

// summaryPrompt renders the briefing prompt from the latest analysis of a
// case.
func summaryPrompt(caseName string, analysis store.Analysis) string {
	stats := fmt.Sprintf(
		"%d entities, %d relationships",
		analysis.Stats.Entities,
		analysis.Stats.Relationships,
	)

	if len(analysis.Findings) == 0 {
		return fmt.Sprintf(ai.SummaryPrompt, caseName, stats, "none")
	}

	lines := make([]string, 0, len(analysis.Findings))
	for _, f := range analysis.Findings {
		switch {
		case len(f.Nodes) > 0:
			lines = append(lines, fmt.Sprintf(
				"%s (risk %s): %s involving %s",
				f.Kind, f.RiskLevel, f.Description, strings.Join(f.Nodes, ", "),
			))
		default:
			lines = append(lines, fmt.Sprintf(
				"%s (risk %s): %s for %s with %d connections",
				f.Kind, f.RiskLevel, f.Description, f.Node, f.Degree,
			))
		}
	}

	return fmt.Sprintf(ai.SummaryPrompt, caseName, stats, strings.Join(lines, "; "))
}

// GetCaseSummaryHandler generates a plain-language briefing of the latest
// scan results for a case
func GetCaseSummaryHandler(c echo.Context) error {
	type getSummaryParams struct {
		CaseID string `param:"id" validate:"required"`
	}

	type getSummaryResponse struct {
		Message string           `json:"message"`
		Summary string           `json:"summary,omitempty"`
		Metrics *ai.ModelMetrics `json:"metrics,omitempty"`
	}

	params := new(getSummaryParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, getSummaryResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, getSummaryResponse{
			Message: "Invalid request body",
		})
	}

	ctx := c.Request().Context()
	resultStore := c.(*middleware.AppContext).App.Store

	found, err := resultStore.GetCase(ctx, params.CaseID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, getSummaryResponse{
				Message: "Case not found",
			})
		}
		logger.Error("Failed to get case", "err", err)
		return c.JSON(http.StatusInternalServerError, getSummaryResponse{
			Message: "Internal server error",
		})
	}

	analysis, err := resultStore.LatestAnalysis(ctx, params.CaseID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, getSummaryResponse{
				Message: "No analysis found",
			})
		}
		logger.Error("Failed to get latest analysis", "err", err)
		return c.JSON(http.StatusInternalServerError, getSummaryResponse{
			Message: "Internal server error",
		})
	}

	aiClient := c.(*middleware.AppContext).App.AiClient
	summary, err := aiClient.GenerateCompletion(ctx, summaryPrompt(found.Name, analysis))
	if err != nil {
		logger.Error("Failed to generate case summary", "case_id", params.CaseID, "err", err)
		return c.JSON(http.StatusInternalServerError, getSummaryResponse{
			Message: "Internal server error",
		})
	}

	metrics := aiClient.GetMetrics()
	return c.JSON(http.StatusOK, getSummaryResponse{
		Message: "OK",
		Summary: summary,
		Metrics: &metrics,
	})
}
