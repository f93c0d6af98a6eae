package events

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Cracken-1/pandamart-notifications/internal/domain"
	"github.com/Cracken-1/pandamart-notifications/internal/observability/tracing"
)

type OrderStatusInputDTO struct {
	UserID      string                  `json:"user_id" binding:"required"`
	OrderNumber string                  `json:"order_number" binding:"required"`
	Status      string                  `json:"status" binding:"required"`
	Contact     domain.RecipientContact `json:"contact"`
}

type PaymentConfirmedInputDTO struct {
	UserID      string                  `json:"user_id" binding:"required"`
	OrderNumber string                  `json:"order_number" binding:"required"`
	Amount      float64                 `json:"amount" binding:"required"`
	Method      string                  `json:"method" binding:"required"`
	Contact     domain.RecipientContact `json:"contact"`
}

type LoyaltyPointsInputDTO struct {
	UserID     string                  `json:"user_id" binding:"required"`
	Points     int                     `json:"points" binding:"required"`
	Reason     string                  `json:"reason"`
	NewBalance int                     `json:"new_balance"`
	Tier       string                  `json:"tier"`
	Contact    domain.RecipientContact `json:"contact"`
}

type SecurityAlertInputDTO struct {
	UserID  string                  `json:"user_id" binding:"required"`
	Event   string                  `json:"event" binding:"required"`
	Detail  string                  `json:"detail" binding:"required"`
	Contact domain.RecipientContact `json:"contact"`
}

// Handler exposes the typed event helpers over HTTP, one endpoint per
// recurring storefront event.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) HandleOrderStatus(c *gin.Context) {
	ctx, span := tracing.Tracer.Start(c.Request.Context(), "EventsHandler.HandleOrderStatus")
	defer span.End()

	var input OrderStatusInputDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	result, err := h.service.OrderStatusChanged(ctx, input.UserID, input.OrderNumber, input.Status, input.Contact)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to dispatch notification"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) HandlePaymentConfirmed(c *gin.Context) {
	ctx, span := tracing.Tracer.Start(c.Request.Context(), "EventsHandler.HandlePaymentConfirmed")
	defer span.End()

	var input PaymentConfirmedInputDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	result, err := h.service.PaymentConfirmed(ctx, input.UserID, input.OrderNumber, input.Amount, input.Method, input.Contact)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to dispatch notification"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) HandleLoyaltyPoints(c *gin.Context) {
	ctx, span := tracing.Tracer.Start(c.Request.Context(), "EventsHandler.HandleLoyaltyPoints")
	defer span.End()

	var input LoyaltyPointsInputDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	result, err := h.service.LoyaltyPointsChanged(ctx, input.UserID, input.Points, input.Reason, input.NewBalance, input.Tier, input.Contact)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to dispatch notification"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) HandleSecurityAlert(c *gin.Context) {
	ctx, span := tracing.Tracer.Start(c.Request.Context(), "EventsHandler.HandleSecurityAlert")
	defer span.End()

	var input SecurityAlertInputDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	result, err := h.service.SecurityAlert(ctx, input.UserID, input.Event, input.Detail, input.Contact)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to dispatch notification"})
		return
	}
	c.JSON(http.StatusOK, result)
}
