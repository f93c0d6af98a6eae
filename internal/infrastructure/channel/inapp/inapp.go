package inapp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Cracken-1/pandamart-notifications/internal/domain"
	"github.com/Cracken-1/pandamart-notifications/internal/domain/port/channel"
	"github.com/Cracken-1/pandamart-notifications/internal/domain/port/inbox"
	"github.com/Cracken-1/pandamart-notifications/pkg/logger"
	"go.uber.org/zap"
)

const ChannelName = domain.ChannelInApp

// Service implements channel.Sender by writing the full notification request
// to the inbox store. It has no external provider dependency and succeeds
// whenever the store write succeeds, independent of the recipient's contact
// fields. The write is synchronous: a caller awaiting the dispatch result can
// read the record immediately after.
type Service struct {
	store inbox.Store
	now   func() time.Time
}

// New constructs the in-app sender. Unlike the provider channels it is not
// registry-built: its dependency is the inbox store, not configuration.
func New(store inbox.Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) Send(ctx context.Context, msg channel.Message) error {
	req := msg.Request
	rec := domain.InboxNotification{
		ID:          uuid.New().String(),
		RecipientID: req.RecipientID,
		Category:    req.Category,
		Title:       req.Title,
		Body:        req.Body,
		Data:        req.Data,
		Priority:    req.Priority,
		ActionURL:   req.ActionURL,
		ExpiresAt:   req.ExpiresAt,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.store.Append(ctx, rec); err != nil {
		logger.L().Error("Error writing in-app notification",
			zap.String("recipientID", req.RecipientID),
			zap.String("traceID", logger.TraceIDFromContext(ctx)),
			zap.Error(err),
		)
		return fmt.Errorf("append inbox record for %s: %w", req.RecipientID, err)
	}

	logger.L().Info("In-app notification stored",
		zap.String("notificationID", rec.ID),
		zap.String("recipientID", req.RecipientID),
		zap.String("category", string(req.Category)),
		zap.String("traceID", logger.TraceIDFromContext(ctx)),
	)
	return nil
}
