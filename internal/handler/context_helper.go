package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-api/internal/middleware"
	"github.com/noah-isme/classroom-api/internal/models"
	"github.com/noah-isme/classroom-api/internal/query"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
)

func identityFromContext(c *gin.Context) (models.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return models.Identity{}, appErrors.ErrUnauthorized
	}
	return *identity, nil
}

func pathID(c *gin.Context, message string) (int64, error) {
	id, ok := query.ParseID(c.Param("id"))
	if !ok {
		return 0, appErrors.Validation(message)
	}
	return id, nil
}

func invalidPayload(err error) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
}
