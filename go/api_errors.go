package adoptionserver

import (
	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
	"github.com/Apurer/pet-adoption-api/internal/shared/validation"
)

// bindJSON decodes and validates the request body into dst. On failure it
// responds with the first offending field and returns false.
func bindJSON(c *gin.Context, responder *apierrors.Responder, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		responder.RespondError(c, apierrors.Validation(validation.Message(err)))
		return false
	}
	return true
}
