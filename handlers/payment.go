package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"autobook/models"
	"autobook/services/booking"
	"autobook/services/payment"
	"autobook/utils"
)

// PaymentHandler exposes checkout and detailer onboarding.
type PaymentHandler struct {
	Gateway payment.PaymentGateway
	Svc     booking.BookingService
	Logger  *zap.Logger
}

func NewPaymentHandler(gateway payment.PaymentGateway, svc booking.BookingService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Gateway: gateway, Svc: svc, Logger: logger}
}

// CreatePaymentIntent opens a destination charge and hands the client secret
// back for the mobile payment sheet. Non-positive amounts are a 400; an
// upstream Stripe failure is a 502 carrying Stripe's message.
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var req models.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	resp, err := h.Svc.PayAndConfirm(c.Request.Context(), req)
	if err != nil {
		h.Logger.Warn("payment intent failed", zap.Int64("amount", req.Amount), zap.Error(err))
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// OnboardDetailer starts Stripe Express onboarding and returns the hosted URL.
func (h *PaymentHandler) OnboardDetailer(c *gin.Context) {
	var req models.OnboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing detailerId or email"})
		return
	}

	url, err := h.Gateway.OnboardDetailer(c.Request.Context(), req.DetailerID, req.Email, req.Country)
	if err != nil {
		h.Logger.Error("onboarding failed", zap.String("detailerId", req.DetailerID), zap.Error(err))
		if utils.IsCode(err, utils.CodeGateway) {
			respondWorkflowError(c, err)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "onboarding failed"})
		return
	}

	c.JSON(http.StatusOK, models.OnboardResponse{OnboardingURL: url})
}
