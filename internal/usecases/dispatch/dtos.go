package dispatch

import "github.com/Cracken-1/pandamart-notifications/internal/domain"

// DispatchInputDTO is the HTTP payload for a raw dispatch: the notification
// request plus the recipient's contact identifiers. Contact data travels with
// the call; this service never stores it.
type DispatchInputDTO struct {
	Notification domain.NotificationRequest `json:"notification" binding:"required"`
	Contact      domain.RecipientContact    `json:"contact"`
}
