package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"autobook/models"
	"autobook/services/detailer"
	"autobook/utils"
)

// DetailerHandler exposes availability and catalog management.
type DetailerHandler struct {
	Svc    detailer.DetailerService
	Logger *zap.Logger
}

func NewDetailerHandler(svc detailer.DetailerService, logger *zap.Logger) *DetailerHandler {
	return &DetailerHandler{Svc: svc, Logger: logger}
}

// CreateSlots publishes one or more availability windows.
func (h *DetailerHandler) CreateSlots(c *gin.Context) {
	detailerID := c.Param("id")
	var req models.CreateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ids, err := h.Svc.CreateSlots(c.Request.Context(), detailerID, req.Slots)
	if err != nil {
		if utils.IsCode(err, utils.CodeInvalidRange) {
			respondWorkflowError(c, err)
			return
		}
		h.Logger.Error("create slots failed", zap.String("detailerId", detailerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create slots"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slotIds": ids})
}

// ListSlots returns all of a detailer's slots, any state.
func (h *DetailerHandler) ListSlots(c *gin.Context) {
	slots, err := h.Svc.ListSlots(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list slots"})
		return
	}
	c.JSON(http.StatusOK, slots)
}

// ListAvailableSlots returns only free, upcoming windows.
func (h *DetailerHandler) ListAvailableSlots(c *gin.Context) {
	slots, err := h.Svc.ListAvailableSlots(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list slots"})
		return
	}
	c.JSON(http.StatusOK, slots)
}

// DeleteSlot removes an unclaimed availability window.
func (h *DetailerHandler) DeleteSlot(c *gin.Context) {
	err := h.Svc.DeleteSlot(c.Request.Context(), c.Param("id"), c.Param("slotId"))
	if err != nil {
		if utils.IsCode(err, utils.CodeNotFound) {
			respondWorkflowError(c, err)
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
