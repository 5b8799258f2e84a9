package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"autobook/models"
	"autobook/services/booking"
	"autobook/utils"
)

// BookingHandler exposes the booking workflow over HTTP.
type BookingHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// statusForCode maps workflow error codes to HTTP statuses. PartialFailure
// deliberately presents as a generic failure: the details are for operators,
// not end users.
func statusForCode(code string) (int, string) {
	switch code {
	case utils.CodeNotFound:
		return http.StatusNotFound, "not found"
	case utils.CodeAlreadyBooked:
		return http.StatusConflict, "slot no longer available, please pick another"
	case utils.CodeInvalidRange, utils.CodeInvalidAmount:
		return http.StatusBadRequest, "invalid request"
	case utils.CodeNotOnboarded:
		return http.StatusBadRequest, "detailer not onboarded with stripe"
	case utils.CodeGateway:
		return http.StatusBadGateway, "payment provider error"
	case utils.CodePartialFailure:
		return http.StatusInternalServerError, "booking failed, please contact support if charged"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func respondWorkflowError(c *gin.Context, err error) {
	status, msg := statusForCode(utils.ErrCode(err))
	var se *utils.ServiceError
	details := ""
	// PartialFailure detail stays in the logs; the user gets the generic line.
	if errors.As(err, &se) && se.Code != utils.CodePartialFailure {
		details = se.Message
	}
	utils.JSONError(c, status, msg, details)
}

// BookSlot claims the slot and creates the pending booking in one backend
// call, so an untrusted client can never split the read from the write.
func (h *BookingHandler) BookSlot(c *gin.Context) {
	var req models.BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	customerID := c.GetString("userID")
	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing caller identity"})
		return
	}

	b, err := h.Svc.BookSlot(c.Request.Context(), customerID, req.DetailerID, req.SlotID, req.Service)
	if err != nil {
		h.Logger.Warn("bookSlot failed",
			zap.String("slotId", req.SlotID), zap.String("customerId", customerID), zap.Error(err))
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// ListBookings returns the caller's bookings; detailers pass ?as=detailer to
// see their incoming ones.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID := c.GetString("userID")

	var (
		bookings []models.Booking
		err      error
	)
	if c.Query("as") == "detailer" {
		bookings, err = h.Svc.ListDetailerBookings(c.Request.Context(), userID)
	} else {
		bookings, err = h.Svc.ListCustomerBookings(c.Request.Context(), userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// UpdateStatus drives pending → confirmed → completed transitions.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	bookingID := c.Param("id")
	var req models.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	updated, err := h.Svc.UpdateStatus(c.Request.Context(), bookingID, req.Status)
	if err != nil {
		if utils.ErrCode(err) != "" {
			respondWorkflowError(c, err)
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// CancelBooking deletes the booking; the slot is released asynchronously by
// the reconciliation worker.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID := c.Param("id")
	if err := h.Svc.CancelBooking(c.Request.Context(), bookingID); err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
