package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autobook/models"
	"autobook/utils"
)

// AddService creates a catalog entry for the detailer.
func (h *DetailerHandler) AddService(c *gin.Context) {
	detailerID := c.Param("id")
	var input models.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	id, err := h.Svc.AddService(c.Request.Context(), detailerID, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add service"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"serviceId": id})
}

// ListServices returns the detailer's catalog.
func (h *DetailerHandler) ListServices(c *gin.Context) {
	services, err := h.Svc.ListServices(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list services"})
		return
	}
	c.JSON(http.StatusOK, services)
}

// UpdateService edits a catalog entry. Existing bookings keep their
// snapshotted name and price.
func (h *DetailerHandler) UpdateService(c *gin.Context) {
	var input models.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Svc.UpdateService(c.Request.Context(), c.Param("serviceId"), input); err != nil {
		if utils.IsCode(err, utils.CodeNotFound) {
			respondWorkflowError(c, err)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update service"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// DeleteService removes a catalog entry.
func (h *DetailerHandler) DeleteService(c *gin.Context) {
	if err := h.Svc.DeleteService(c.Request.Context(), c.Param("serviceId")); err != nil {
		if utils.IsCode(err, utils.CodeNotFound) {
			respondWorkflowError(c, err)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete service"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
