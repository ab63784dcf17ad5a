package controller

import (
	"net/http"
	"strconv"

	"hostelhub/service"

	"github.com/gin-gonic/gin"
)

// NotificationController ...
type NotificationController struct{}

var notificationService = service.NotificationService{}

func (ctrl NotificationController) ListMine(c *gin.Context) {
	details, ok := caller(c)
	if !ok {
		return
	}
	notifications, err := notificationService.ListFor(details.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (ctrl NotificationController) MarkRead(c *gin.Context) {
	details, ok := caller(c)
	if !ok {
		return
	}
	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id"})
		return
	}
	if err := notificationService.MarkRead(details.UserID, uint(notificationID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
