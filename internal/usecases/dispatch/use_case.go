package dispatch

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/Cracken-1/pandamart-notifications/internal/domain"
	"github.com/Cracken-1/pandamart-notifications/internal/domain/port/channel"
	"github.com/Cracken-1/pandamart-notifications/internal/observability/metrics"
	"github.com/Cracken-1/pandamart-notifications/internal/observability/tracing"
	"github.com/Cracken-1/pandamart-notifications/internal/template"
	"github.com/Cracken-1/pandamart-notifications/pkg/logger"
)

const DefaultSendTimeout = 10 * time.Second

// UseCaseInterface defines the contract for the dispatch orchestrator.
type UseCaseInterface interface {
	Execute(ctx context.Context, req domain.NotificationRequest, contact domain.RecipientContact) (domain.DispatchResult, error)
}

// UseCase fans one notification request out across its requested channels
// concurrently and aggregates per-channel outcomes. Delivery is best-effort:
// one attempt per channel, no retries, no ordering between channels.
type UseCase struct {
	senders     map[domain.Channel]channel.Sender
	sendTimeout time.Duration
}

// NewUseCase builds the orchestrator over an already-constructed sender map.
// Channels absent from the map are disabled and short-circuit to a failed
// result without an attempt.
func NewUseCase(senders map[domain.Channel]channel.Sender, sendTimeout time.Duration) *UseCase {
	if sendTimeout <= 0 {
		sendTimeout = DefaultSendTimeout
	}
	return &UseCase{
		senders:     senders,
		sendTimeout: sendTimeout,
	}
}

// Execute dispatches one request. An empty channel set is the only hard
// error; every other failure mode is expressed through the per-channel
// booleans in the result. A skipped channel (missing contact field or
// disabled sender) and a failed attempt both record false.
func (u *UseCase) Execute(ctx context.Context, req domain.NotificationRequest, contact domain.RecipientContact) (domain.DispatchResult, error) {
	ctx, span := tracing.Tracer.Start(ctx, "DispatchUseCase.Execute")
	defer span.End()
	span.SetAttributes(
		attribute.String("notification.category", string(req.Category)),
		attribute.Int("notification.channels", len(req.Channels)),
	)

	if len(req.Channels) == 0 {
		return domain.DispatchResult{}, domain.ErrNoChannels
	}
	metrics.DispatchesTotal.WithLabelValues(string(req.Category)).Inc()

	channels := dedupeChannels(req.Channels)

	results := make(map[domain.Channel]bool, len(channels))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, ch := range channels {
		wg.Add(1)
		go func(ch domain.Channel) {
			defer wg.Done()
			ok := u.attempt(ctx, ch, req, contact)
			mu.Lock()
			results[ch] = ok
			mu.Unlock()
		}(ch)
	}
	wg.Wait()

	success := false
	for _, ok := range results {
		if ok {
			success = true
			break
		}
	}

	logger.L().Info("Notification dispatched",
		zap.String("recipientID", req.RecipientID),
		zap.String("category", string(req.Category)),
		zap.Bool("success", success),
		zap.Any("channels", results),
		zap.String("traceID", logger.TraceIDFromContext(ctx)),
	)
	return domain.DispatchResult{Success: success, Channels: results}, nil
}

// attempt runs one channel's send and returns its boolean outcome. All
// provider errors stop here.
func (u *UseCase) attempt(ctx context.Context, ch domain.Channel, req domain.NotificationRequest, contact domain.RecipientContact) bool {
	msg, ok := buildMessage(ch, req, contact)
	if !ok {
		metrics.ChannelSkips.WithLabelValues(string(ch)).Inc()
		logger.L().Debug("Channel skipped, contact field absent",
			zap.String("channel", string(ch)),
			zap.String("recipientID", req.RecipientID),
		)
		return false
	}

	sender, exists := u.senders[ch]
	if !exists {
		metrics.ChannelSkips.WithLabelValues(string(ch)).Inc()
		logger.L().Debug("Channel disabled, no sender configured",
			zap.String("channel", string(ch)),
			zap.String("recipientID", req.RecipientID),
		)
		return false
	}

	ctx, span := tracing.Tracer.Start(ctx, "DispatchUseCase.attempt")
	defer span.End()
	span.SetAttributes(attribute.String("notification.channel", string(ch)))

	metrics.ChannelAttempts.WithLabelValues(string(ch)).Inc()
	start := time.Now()

	sendCtx, cancel := context.WithTimeout(ctx, u.sendTimeout)
	defer cancel()

	err := sender.Send(sendCtx, msg)
	metrics.ObserveSendDuration(string(ch), err == nil, start)
	if err != nil {
		metrics.ChannelFailures.WithLabelValues(string(ch)).Inc()
		logger.L().Warn("Channel send failed",
			zap.String("channel", string(ch)),
			zap.String("recipientID", req.RecipientID),
			zap.String("traceID", logger.TraceIDFromContext(ctx)),
			zap.Error(err),
		)
		return false
	}

	metrics.ChannelSuccesses.WithLabelValues(string(ch)).Inc()
	return true
}

// buildMessage resolves templates and shapes the payload for one channel.
// The second return is false when the channel must be skipped for a missing
// contact field. In-app never skips; its payload is the full request.
func buildMessage(ch domain.Channel, req domain.NotificationRequest, contact domain.RecipientContact) (channel.Message, bool) {
	switch ch {
	case domain.ChannelEmail:
		if contact.Email == "" {
			return channel.Message{}, false
		}
		set := template.Resolve(req.Category)
		data := renderData(req)
		return channel.Message{
			To:      contact.Email,
			Subject: template.Render(set.EmailSubject, data),
			HTML:    template.Render(set.EmailHTML, data),
			Text:    template.Render(set.EmailText, data),
		}, true
	case domain.ChannelSMS:
		if contact.PhoneNumber == "" {
			return channel.Message{}, false
		}
		set := template.Resolve(req.Category)
		return channel.Message{
			To:   contact.PhoneNumber,
			Text: template.Render(set.SMSText, renderData(req)),
		}, true
	case domain.ChannelPush:
		if contact.PushToken == "" {
			return channel.Message{}, false
		}
		// Push carries the raw title/body; no template indirection needed.
		return channel.Message{
			To:    contact.PushToken,
			Title: req.Title,
			Body:  req.Body,
			Data:  req.Data,
		}, true
	case domain.ChannelInApp:
		return channel.Message{To: req.RecipientID, Request: req}, true
	default:
		return channel.Message{}, false
	}
}

// renderData merges the caller's structured data with the request's core
// fields so templates can reference title, body and actionUrl directly.
func renderData(req domain.NotificationRequest) map[string]string {
	data := make(map[string]string, len(req.Data)+3)
	for k, v := range req.Data {
		data[k] = v
	}
	data["title"] = req.Title
	data["body"] = req.Body
	data["actionUrl"] = req.ActionURL
	return data
}

// dedupeChannels collapses duplicate channel entries, preserving first-seen
// order, and guarantees the in-app channel is always part of the attempt set.
func dedupeChannels(channels []domain.Channel) []domain.Channel {
	seen := make(map[domain.Channel]struct{}, len(channels)+1)
	out := make([]domain.Channel, 0, len(channels)+1)
	for _, ch := range channels {
		if _, dup := seen[ch]; dup {
			continue
		}
		seen[ch] = struct{}{}
		out = append(out, ch)
	}
	if _, present := seen[domain.ChannelInApp]; !present {
		out = append(out, domain.ChannelInApp)
	}
	return out
}
