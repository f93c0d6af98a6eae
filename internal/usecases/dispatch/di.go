package dispatch

import (
	"time"

	"github.com/Cracken-1/pandamart-notifications/internal/domain"
	"github.com/Cracken-1/pandamart-notifications/internal/domain/port/channel"
)

// NewDispatch wires the orchestrator use case and its HTTP handler.
func NewDispatch(senders map[domain.Channel]channel.Sender, sendTimeout time.Duration) (*UseCase, *Handler) {
	useCase := NewUseCase(senders, sendTimeout)
	handler := NewHandler(useCase)
	return useCase, handler
}
