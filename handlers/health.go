package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autobook/utils"
)

// Health returns the latest stored dependency health snapshot.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
