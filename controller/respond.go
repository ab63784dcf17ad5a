package controller

import (
	"errors"
	"net/http"

	"hostelhub/service"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto the HTTP taxonomy. Forbidden is
// deliberately answered like NotFound so that resource existence and
// membership cannot be probed.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Warnf("[%s] unexpected error: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// caller returns the authenticated caller placed in the context by the
// token middleware.
func caller(c *gin.Context) (*service.AccessDetails, bool) {
	v, exists := c.Get("caller")
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Please login first"})
		return nil, false
	}
	details, ok := v.(*service.AccessDetails)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Please login first"})
		return nil, false
	}
	return details, true
}
