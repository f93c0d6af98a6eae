package dispatch

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Cracken-1/pandamart-notifications/internal/domain"
	"github.com/Cracken-1/pandamart-notifications/internal/observability/tracing"
	"github.com/Cracken-1/pandamart-notifications/pkg/logger"
)

type Handler struct {
	useCase UseCaseInterface
}

func NewHandler(useCase UseCaseInterface) *Handler {
	return &Handler{useCase: useCase}
}

// Handle dispatches one notification request. Partial channel failure is a
// 200 with per-channel booleans; only an unusable request is a 400.
func (h *Handler) Handle(c *gin.Context) {
	ctx, span := tracing.Tracer.Start(c.Request.Context(), "DispatchHandler.Handle")
	defer span.End()

	var input DispatchInputDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	result, err := h.useCase.Execute(ctx, input.Notification, input.Contact)
	if err != nil {
		if errors.Is(err, domain.ErrNoChannels) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.L().Error("Error dispatching notification",
			zap.String("recipientID", input.Notification.RecipientID),
			zap.String("traceID", logger.TraceIDFromContext(ctx)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to dispatch notification"})
		return
	}

	c.JSON(http.StatusOK, result)
}
