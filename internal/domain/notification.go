package domain

import (
	"errors"
	"time"
)

// Channel identifies one delivery mechanism.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelPush  Channel = "push"
	ChannelInApp Channel = "inapp"
)

// Category selects the template set and default priority for a notification.
type Category string

const (
	CategoryOrder     Category = "order"
	CategoryPayment   Category = "payment"
	CategoryLoyalty   Category = "loyalty"
	CategorySecurity  Category = "security"
	CategoryPromotion Category = "promotion"
	CategorySystem    Category = "system"
	CategoryCommunity Category = "community"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ErrNoChannels is returned when a dispatch request names no delivery channels.
var ErrNoChannels = errors.New("notification request has no channels")

// ErrNotFound is returned when an inbox record does not exist.
var ErrNotFound = errors.New("notification not found")

// NotificationRequest is the unit of work handed to the dispatcher. It is
// constructed by a caller, passed once through the dispatcher, and discarded;
// only the in-app channel makes a durable copy.
type NotificationRequest struct {
	RecipientID string            `json:"recipient_id"`
	Category    Category          `json:"category"`
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	Data        map[string]string `json:"data,omitempty"`
	Channels    []Channel         `json:"channels"`
	Priority    Priority          `json:"priority"`
	ActionURL   string            `json:"action_url,omitempty"`
	ExpiresAt   *time.Time        `json:"expires_at,omitempty"`
}

// RecipientContact carries the delivery addresses supplied by the caller.
// A channel whose field is empty is skipped, not attempted.
type RecipientContact struct {
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	PushToken   string `json:"push_token,omitempty"`
}

// DispatchResult reports one boolean per requested channel. A skipped channel
// and a failed attempt are both recorded false. Success is true when any
// channel succeeded; partial failure is a normal outcome, not an error.
type DispatchResult struct {
	Success  bool             `json:"success"`
	Channels map[Channel]bool `json:"channels"`
}

// InboxNotification is the durable in-app copy of a dispatched request.
type InboxNotification struct {
	ID          string            `json:"id"`
	RecipientID string            `json:"recipient_id"`
	Category    Category          `json:"category"`
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	Data        map[string]string `json:"data,omitempty"`
	Priority    Priority          `json:"priority"`
	ActionURL   string            `json:"action_url,omitempty"`
	ExpiresAt   *time.Time        `json:"expires_at,omitempty"`
	Read        bool              `json:"read"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Stale reports whether the record's advisory expiry has passed. Stale
// records are not purged by this service.
func (n InboxNotification) Stale(now time.Time) bool {
	return n.ExpiresAt != nil && now.After(*n.ExpiresAt)
}
