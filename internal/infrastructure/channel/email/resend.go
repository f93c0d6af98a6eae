package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Cracken-1/pandamart-notifications/configs"
	"github.com/Cracken-1/pandamart-notifications/internal/app/registry"
	"github.com/Cracken-1/pandamart-notifications/internal/domain"
	"github.com/Cracken-1/pandamart-notifications/internal/domain/port/channel"
	"github.com/Cracken-1/pandamart-notifications/pkg/logger"
	"go.uber.org/zap"
)

const ChannelName = domain.ChannelEmail

// ResendEmailService implements channel.Sender against the Resend HTTP API.
type ResendEmailService struct {
	apiKey      string
	apiURL      string
	fromName    string
	fromAddress string
	client      *http.Client
}

type emailPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
}

// Factory function for creating ResendEmailService instances. A missing API
// key or sender address leaves the email channel disabled.
func NewResendEmailServiceFactory(cfg *configs.Config) (channel.Sender, error) {
	if cfg.EmailAPIKey == "" || cfg.EmailFromAddress == "" {
		return nil, errors.New("email configuration (api_key, from_address) cannot be empty")
	}

	logger.L().Info("Initializing Resend email service",
		zap.String("apiURL", cfg.EmailAPIURL),
		zap.String("fromAddress", cfg.EmailFromAddress),
	)
	return &ResendEmailService{
		apiKey:      cfg.EmailAPIKey,
		apiURL:      cfg.EmailAPIURL,
		fromName:    cfg.EmailFromName,
		fromAddress: cfg.EmailFromAddress,
		client:      &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func init() {
	if err := registry.RegisterSenderFactory(ChannelName, NewResendEmailServiceFactory); err != nil {
		panic(fmt.Sprintf("Failed to register sender factory '%s': %v", ChannelName, err))
	}
}

// Send posts one email to the provider. Provider errors are returned for the
// dispatcher to aggregate; they never carry past that boundary.
func (s *ResendEmailService) Send(ctx context.Context, msg channel.Message) error {
	fromDisplay := s.fromName
	if fromDisplay == "" {
		fromDisplay = "Panda Mart"
	}

	payload := emailPayload{
		From:    fmt.Sprintf("%s <%s>", fromDisplay, s.fromAddress),
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.L().Error("Error sending email",
			zap.String("recipient", msg.To),
			zap.String("traceID", logger.TraceIDFromContext(ctx)),
			zap.Error(err),
		)
		return fmt.Errorf("send email to %s: %w", msg.To, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.L().Error("Email provider returned non-2xx status",
			zap.String("recipient", msg.To),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", detail),
			zap.String("traceID", logger.TraceIDFromContext(ctx)),
		)
		return fmt.Errorf("email provider returned status %d", resp.StatusCode)
	}

	logger.L().Info("Email sent",
		zap.String("recipient", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("traceID", logger.TraceIDFromContext(ctx)),
	)
	return nil
}
