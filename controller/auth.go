package controller

import (
	"net/http"

	"hostelhub/model"
	"hostelhub/service"

	"github.com/gin-gonic/gin"
)

// AuthController ...
type AuthController struct{}

var tokenService = new(service.TokenService)

// TokenValid resolves the bearer token into an authenticated caller and
// aborts with 401 when it cannot. The caller value object replaces any
// global session state.
func (a AuthController) TokenValid(c *gin.Context) {
	tokenAuth, err := tokenService.ExtractTokenMetadata(c.Request)
	if err != nil {
		//Token either expired or not valid
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Please login first"})
		return
	}

	c.Set("caller", tokenAuth)
	c.Set("UserId", tokenAuth.UserID)
	c.Set("UserName", tokenAuth.UserName)
}

// RequireRole gates a route group to the given roles.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		details, ok := caller(c)
		if !ok {
			return
		}
		for _, role := range roles {
			if details.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Insufficient role"})
	}
}

// Refresh issues a fresh token to a caller holding a valid one.
func (a AuthController) Refresh(c *gin.Context) {
	tokenAuth, err := tokenService.ExtractTokenMetadata(c.Request)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid authorization, please login again"})
		return
	}

	ts, createErr := tokenService.CreateToken(tokenAuth.UserID, tokenAuth.UserName, tokenAuth.Role)
	if createErr != nil {
		c.JSON(http.StatusForbidden, gin.H{"message": "Invalid authorization, please login again"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": ts.AccessToken})
}
