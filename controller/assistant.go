package controller

import (
	"net/http"

	"hostelhub/service"

	"github.com/gin-gonic/gin"
)

type AssistantController struct{}

var assistantService = service.AssistantService{}

func (ctrl AssistantController) Chat(c *gin.Context) {
	details, ok := caller(c)
	if !ok {
		return
	}

	var input struct {
		Prompt string `json:"prompt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Warnf("[%s] Invalid input, %s", c.GetString("requestId"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if err := assistantService.Chat(c, details.UserID, input.Prompt); err != nil {
		logger.Warnf("[%s] Failed to chat: %s", c.GetString("requestId"), err)
	}
}

func (ctrl AssistantController) Summary(c *gin.Context) {
	var input struct {
		Url string `json:"url" binding:"required,url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Warnf("[%s] Invalid input, %s", c.GetString("requestId"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if err := assistantService.SummarizeCircular(c, input.Url); err != nil {
		logger.Warnf("[%s] Failed to get summary: %s", c.GetString("requestId"), err)
	}
}
