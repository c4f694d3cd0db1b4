package server

import (
	"github.com/labstack/echo/v4"

	"github.com/luppa-project/luppa/internal/server/middleware"
	"github.com/luppa-project/luppa/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Case routes
	apiRoutes.GET("/cases", routes.GetCasesHandler)
	apiRoutes.POST("/cases", routes.CreateCaseHandler)
	apiRoutes.GET("/cases/:id", routes.GetCaseHandler)

	// Document routes
	apiRoutes.POST("/cases/:id/documents", routes.AddDocumentHandler)
	apiRoutes.POST("/cases/:id/links", routes.AddLinkHandler)
	apiRoutes.POST("/cases/:id/document", routes.GetDocumentHandler)
	apiRoutes.DELETE("/cases/:id/documents", routes.DeleteDocumentHandler)

	// Analysis result routes
	apiRoutes.GET("/cases/:id/network", routes.GetCaseNetworkHandler)
	apiRoutes.GET("/cases/:id/findings", routes.GetCaseFindingsHandler)
	apiRoutes.GET("/cases/:id/stats", routes.GetCaseStatsHandler)
	apiRoutes.GET("/cases/:id/analyses", routes.GetCaseAnalysesHandler)
	apiRoutes.GET("/cases/:id/summary", routes.GetCaseSummaryHandler)

	// Vocabulary routes
	apiRoutes.GET("/types", routes.GetTypesHandler)
}
