package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kitchen-orders/internal/domain"
)

// respondError maps engine errors onto HTTP statuses: missing entities are
// 404, business-rule violations 400 with the rule's code, everything else 500.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "code": ve.Code})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
