package push

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/Cracken-1/pandamart-notifications/configs"
	"github.com/Cracken-1/pandamart-notifications/internal/app/registry"
	"github.com/Cracken-1/pandamart-notifications/internal/domain"
	"github.com/Cracken-1/pandamart-notifications/internal/domain/port/channel"
	"github.com/Cracken-1/pandamart-notifications/pkg/logger"
	"go.uber.org/zap"
)

const ChannelName = domain.ChannelPush

// Fixed display hints for every push; not caller-configurable.
const (
	androidIcon  = "ic_notification"
	androidColor = "#e53935"
	apnsSound    = "default"
)

// FCMService implements channel.Sender over Firebase Cloud Messaging.
type FCMService struct {
	client *messaging.Client
}

// Factory function for creating FCMService instances. A missing credentials
// file leaves the push channel disabled.
func NewFCMServiceFactory(cfg *configs.Config) (channel.Sender, error) {
	if cfg.FirebaseCredentialsFile == "" {
		return nil, errors.New("push configuration (firebase credentials file) cannot be empty")
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize fcm client: %w", err)
	}

	logger.L().Info("Initializing FCM push service",
		zap.String("credentialsFile", cfg.FirebaseCredentialsFile),
	)
	return &FCMService{client: client}, nil
}

func init() {
	if err := registry.RegisterSenderFactory(ChannelName, NewFCMServiceFactory); err != nil {
		panic(fmt.Sprintf("Failed to register sender factory '%s': %v", ChannelName, err))
	}
}

// Send delivers one push message to a device token. Expired tokens and
// project misconfiguration surface as errors here and aggregate to a failed
// channel at the dispatcher.
func (s *FCMService) Send(ctx context.Context, msg channel.Message) error {
	fcmMsg := &messaging.Message{
		Token: msg.To,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Icon:  androidIcon,
				Color: androidColor,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: apnsSound,
					Badge: intPtr(1),
				},
			},
		},
	}

	id, err := s.client.Send(ctx, fcmMsg)
	if err != nil {
		logger.L().Error("Error sending push notification",
			zap.String("traceID", logger.TraceIDFromContext(ctx)),
			zap.Error(err),
		)
		return fmt.Errorf("send push: %w", err)
	}

	logger.L().Info("Push notification sent",
		zap.String("messageID", id),
		zap.String("traceID", logger.TraceIDFromContext(ctx)),
	)
	return nil
}

func intPtr(i int) *int {
	return &i
}
