package controller

import (
	"net/http"

	"hostelhub/service"

	"github.com/gin-gonic/gin"
)

// AdminController ...
type AdminController struct{}

var statsService = service.StatsService{}

func (ctrl AdminController) Stats(c *gin.Context) {
	stats, err := statsService.Collect()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
