package events

import (
	"context"
	"fmt"

	"github.com/Cracken-1/pandamart-notifications/internal/domain"
	"github.com/Cracken-1/pandamart-notifications/internal/usecases/dispatch"
)

// Service provides one typed helper per recurring storefront event. Each
// helper fixes the channel set and priority for its event type, builds the
// request, and delegates to the dispatcher, so call sites never hand-assemble
// a NotificationRequest for common cases.
type Service struct {
	dispatcher dispatch.UseCaseInterface
}

func NewService(dispatcher dispatch.UseCaseInterface) *Service {
	return &Service{dispatcher: dispatcher}
}

var orderStatusText = map[string]string{
	"confirmed":        "has been confirmed",
	"processing":       "is being prepared",
	"shipped":          "has shipped",
	"out_for_delivery": "is out for delivery",
	"delivered":        "has been delivered",
	"cancelled":        "has been cancelled",
}

func deliveryStage(status string) bool {
	switch status {
	case "shipped", "out_for_delivery", "delivered":
		return true
	}
	return false
}

// OrderStatusChanged notifies a customer that their order moved to a new
// status. Delivery-stage updates go out at high priority.
func (s *Service) OrderStatusChanged(ctx context.Context, userID, orderNumber, status string, contact domain.RecipientContact) (domain.DispatchResult, error) {
	statusText, ok := orderStatusText[status]
	if !ok {
		statusText = "has been updated to " + status
	}
	priority := domain.PriorityMedium
	if deliveryStage(status) {
		priority = domain.PriorityHigh
	}

	req := domain.NotificationRequest{
		RecipientID: userID,
		Category:    domain.CategoryOrder,
		Title:       fmt.Sprintf("Order %s update", orderNumber),
		Body:        fmt.Sprintf("Your order %s %s.", orderNumber, statusText),
		Data: map[string]string{
			"orderNumber": orderNumber,
			"status":      status,
		},
		Channels:  []domain.Channel{domain.ChannelEmail, domain.ChannelSMS, domain.ChannelPush, domain.ChannelInApp},
		Priority:  priority,
		ActionURL: "/account/orders/" + orderNumber,
	}
	return s.dispatcher.Execute(ctx, req, contact)
}

// PaymentConfirmed notifies a customer that a payment was received.
func (s *Service) PaymentConfirmed(ctx context.Context, userID, orderNumber string, amount float64, method string, contact domain.RecipientContact) (domain.DispatchResult, error) {
	req := domain.NotificationRequest{
		RecipientID: userID,
		Category:    domain.CategoryPayment,
		Title:       "Payment confirmed",
		Body:        fmt.Sprintf("We received your %s payment of KES %.2f for order %s.", method, amount, orderNumber),
		Data: map[string]string{
			"orderNumber": orderNumber,
			"amount":      fmt.Sprintf("%.2f", amount),
			"method":      method,
		},
		Channels:  []domain.Channel{domain.ChannelEmail, domain.ChannelSMS, domain.ChannelInApp},
		Priority:  domain.PriorityHigh,
		ActionURL: "/account/orders/" + orderNumber,
	}
	return s.dispatcher.Execute(ctx, req, contact)
}

// LoyaltyPointsChanged notifies a customer about a Panda Points movement.
func (s *Service) LoyaltyPointsChanged(ctx context.Context, userID string, points int, reason string, newBalance int, tier string, contact domain.RecipientContact) (domain.DispatchResult, error) {
	verb := "earned"
	if points < 0 {
		verb = "redeemed"
		points = -points
	}
	req := domain.NotificationRequest{
		RecipientID: userID,
		Category:    domain.CategoryLoyalty,
		Title:       "Panda Points update",
		Body:        fmt.Sprintf("You %s %d points (%s). New balance: %d.", verb, points, reason, newBalance),
		Data: map[string]string{
			"points":  fmt.Sprintf("%d", points),
			"reason":  reason,
			"balance": fmt.Sprintf("%d", newBalance),
			"tier":    tier,
		},
		Channels:  []domain.Channel{domain.ChannelEmail, domain.ChannelPush, domain.ChannelInApp},
		Priority:  domain.PriorityMedium,
		ActionURL: "/account/loyalty",
	}
	return s.dispatcher.Execute(ctx, req, contact)
}

// SecurityAlert notifies a customer about account security activity across
// every channel at urgent priority.
func (s *Service) SecurityAlert(ctx context.Context, userID, event, detail string, contact domain.RecipientContact) (domain.DispatchResult, error) {
	req := domain.NotificationRequest{
		RecipientID: userID,
		Category:    domain.CategorySecurity,
		Title:       "Security alert: " + event,
		Body:        detail,
		Data: map[string]string{
			"event": event,
		},
		Channels:  []domain.Channel{domain.ChannelEmail, domain.ChannelSMS, domain.ChannelPush, domain.ChannelInApp},
		Priority:  domain.PriorityUrgent,
		ActionURL: "/account/security",
	}
	return s.dispatcher.Execute(ctx, req, contact)
}
