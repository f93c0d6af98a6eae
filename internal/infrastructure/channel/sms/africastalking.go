package sms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Cracken-1/pandamart-notifications/configs"
	"github.com/Cracken-1/pandamart-notifications/internal/app/registry"
	"github.com/Cracken-1/pandamart-notifications/internal/domain"
	"github.com/Cracken-1/pandamart-notifications/internal/domain/port/channel"
	"github.com/Cracken-1/pandamart-notifications/pkg/logger"
	"go.uber.org/zap"
)

const ChannelName = domain.ChannelSMS

// AfricasTalkingService implements channel.Sender against the Africa's
// Talking bulk SMS HTTP API.
type AfricasTalkingService struct {
	apiKey   string
	apiURL   string
	username string
	senderID string
	client   *http.Client
}

// Factory function for creating AfricasTalkingService instances. Missing
// credentials leave the SMS channel disabled.
func NewAfricasTalkingServiceFactory(cfg *configs.Config) (channel.Sender, error) {
	if cfg.SMSAPIKey == "" || cfg.SMSUsername == "" {
		return nil, errors.New("sms configuration (api_key, username) cannot be empty")
	}

	logger.L().Info("Initializing Africa's Talking SMS service",
		zap.String("apiURL", cfg.SMSAPIURL),
		zap.String("username", cfg.SMSUsername),
		zap.String("senderID", cfg.SMSSenderID),
	)
	return &AfricasTalkingService{
		apiKey:   cfg.SMSAPIKey,
		apiURL:   cfg.SMSAPIURL,
		username: cfg.SMSUsername,
		senderID: cfg.SMSSenderID,
		client:   &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func init() {
	if err := registry.RegisterSenderFactory(ChannelName, NewAfricasTalkingServiceFactory); err != nil {
		panic(fmt.Sprintf("Failed to register sender factory '%s': %v", ChannelName, err))
	}
}

// Send posts one SMS to the provider with a normalized destination number.
func (s *AfricasTalkingService) Send(ctx context.Context, msg channel.Message) error {
	to := NormalizePhone(msg.To)

	form := url.Values{}
	form.Set("username", s.username)
	form.Set("to", to)
	form.Set("message", msg.Text)
	if s.senderID != "" {
		form.Set("from", s.senderID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("apiKey", s.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.L().Error("Error sending SMS",
			zap.String("recipient", to),
			zap.String("traceID", logger.TraceIDFromContext(ctx)),
			zap.Error(err),
		)
		return fmt.Errorf("send sms to %s: %w", to, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.L().Error("SMS provider returned non-2xx status",
			zap.String("recipient", to),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", detail),
			zap.String("traceID", logger.TraceIDFromContext(ctx)),
		)
		return fmt.Errorf("sms provider returned status %d", resp.StatusCode)
	}

	logger.L().Info("SMS sent",
		zap.String("recipient", to),
		zap.String("traceID", logger.TraceIDFromContext(ctx)),
	)
	return nil
}
