package inbox

import port "github.com/Cracken-1/pandamart-notifications/internal/domain/port/inbox"

// NewInbox wires the inbox use case and its HTTP handler.
func NewInbox(store port.Store) (*UseCase, *Handler) {
	useCase := NewUseCase(store)
	handler := NewHandler(useCase)
	return useCase, handler
}
