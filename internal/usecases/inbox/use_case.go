package inbox

import (
	"context"

	"github.com/Cracken-1/pandamart-notifications/internal/domain"
	port "github.com/Cracken-1/pandamart-notifications/internal/domain/port/inbox"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// UseCaseInterface defines the read/mutate contract for a user's inbox.
type UseCaseInterface interface {
	List(ctx context.Context, recipientID string, limit, offset int) ([]domain.InboxNotification, error)
	MarkRead(ctx context.Context, recipientID, notificationID string) error
	UnreadCount(ctx context.Context, recipientID string) (int64, error)
}

type UseCase struct {
	store port.Store
}

func NewUseCase(store port.Store) *UseCase {
	return &UseCase{store: store}
}

// List returns a page of the recipient's notifications, newest first.
func (u *UseCase) List(ctx context.Context, recipientID string, limit, offset int) ([]domain.InboxNotification, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return u.store.List(ctx, recipientID, limit, offset)
}

func (u *UseCase) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	return u.store.MarkRead(ctx, recipientID, notificationID)
}

func (u *UseCase) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	return u.store.UnreadCount(ctx, recipientID)
}
