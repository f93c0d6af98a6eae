package events

import "github.com/Cracken-1/pandamart-notifications/internal/usecases/dispatch"

// NewEvents wires the event convenience service and its HTTP handler.
func NewEvents(dispatcher dispatch.UseCaseInterface) (*Service, *Handler) {
	service := NewService(dispatcher)
	handler := NewHandler(service)
	return service, handler
}
