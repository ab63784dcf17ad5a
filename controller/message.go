package controller

import (
	"net/http"
	"strconv"

	"hostelhub/service"

	"github.com/gin-gonic/gin"
)

// MessageController serves the messaging inbox. GET /messages multiplexes
// on its query parameter: search=, targetId= or type=primary|requests.
type MessageController struct{}

var messagingService = service.MessagingService{}

func (ctrl MessageController) Get(c *gin.Context) {
	details, ok := caller(c)
	if !ok {
		return
	}

	if query := c.Query("search"); query != "" {
		candidates, err := messagingService.SearchCandidates(details.UserID, query)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": candidates})
		return
	}

	if target := c.Query("targetId"); target != "" {
		targetID, err := strconv.ParseUint(target, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid targetId"})
			return
		}
		messages, err := messagingService.MessagesWith(details.UserID, uint(targetID))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"messages": messages})
		return
	}

	box := service.ThreadBox(c.DefaultQuery("type", string(service.BoxPrimary)))
	threads, err := messagingService.ListThreads(details.UserID, box)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"threads": threads})
}

func (ctrl MessageController) Send(c *gin.Context) {
	details, ok := caller(c)
	if !ok {
		return
	}

	var input struct {
		Content    string `json:"content" binding:"required"`
		ReceiverID uint   `json:"receiverId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	message, err := messagingService.SendMessage(details.UserID, input.ReceiverID, input.Content)
	if err != nil {
		logger.Warnf("[%s] Failed to send message from %d to %d: %s",
			c.GetString("requestId"), details.UserID, input.ReceiverID, err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message)
}

func (ctrl MessageController) Accept(c *gin.Context) {
	details, ok := caller(c)
	if !ok {
		return
	}

	var input struct {
		ConversationID string `json:"conversationId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if err := messagingService.Accept(details.UserID, input.ConversationID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
