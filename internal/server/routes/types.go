package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/luppa-project/luppa/pkg/vocabulary"
)

// GetTypesHandler returns the entity and relationship types the engine
// recognizes
func GetTypesHandler(c echo.Context) error {
	type getTypesResponse struct {
		Message           string                        `json:"message"`
		EntityTypes       []vocabulary.EntityType       `json:"entity_types"`
		RelationshipTypes []vocabulary.RelationshipType `json:"relationship_types"`
	}

	vocab := vocabulary.Default()

	return c.JSON(http.StatusOK, getTypesResponse{
		Message:           "OK",
		EntityTypes:       vocab.EntityTypes(),
		RelationshipTypes: vocab.RelationshipTypes(),
	})
}
