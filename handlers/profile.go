package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autobook/models"
	"autobook/utils"
)

// UpsertProfile creates or updates the detailer's public profile.
func (h *DetailerHandler) UpsertProfile(c *gin.Context) {
	var d models.Detailer
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	d.ID = c.Param("id")

	if err := h.Svc.UpsertProfile(c.Request.Context(), d); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

// GetProfile returns the detailer's public profile.
func (h *DetailerHandler) GetProfile(c *gin.Context) {
	d, err := h.Svc.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		if utils.IsCode(err, utils.CodeNotFound) {
			respondWorkflowError(c, err)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, d)
}
