package inbox

import (
	"context"

	"github.com/Cracken-1/pandamart-notifications/internal/domain"
)

// Store persists in-app notification records keyed by recipient.
type Store interface {
	// Append writes a new record. The write is synchronous: once Append
	// returns, List will observe the record.
	Append(ctx context.Context, rec domain.InboxNotification) error

	// List returns a recipient's notifications newest-first.
	List(ctx context.Context, recipientID string, limit, offset int) ([]domain.InboxNotification, error)

	// MarkRead flips the read flag on one record. Returns domain.ErrNotFound
	// if the record does not exist for that recipient.
	MarkRead(ctx context.Context, recipientID, notificationID string) error

	// UnreadCount returns the number of unread records for a recipient.
	UnreadCount(ctx context.Context, recipientID string) (int64, error)
}
