package inbox

import (
	"errors"
	"net/http"
	"strconv"

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

// HandleList returns a user's notifications newest-first with limit/offset
// pagination.
func (h *Handler) HandleList(c *gin.Context) {
	ctx, span := tracing.Tracer.Start(c.Request.Context(), "InboxHandler.HandleList")
	defer span.End()

	recipientID := c.Param("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageSize)))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	records, err := h.useCase.List(ctx, recipientID, limit, offset)
	if err != nil {
		logger.L().Error("Error listing inbox",
			zap.String("recipientID", recipientID),
			zap.String("traceID", logger.TraceIDFromContext(ctx)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": records,
		"limit":         limit,
		"offset":        offset,
	})
}

// HandleUnreadCount returns the user's unread notification count.
func (h *Handler) HandleUnreadCount(c *gin.Context) {
	ctx, span := tracing.Tracer.Start(c.Request.Context(), "InboxHandler.HandleUnreadCount")
	defer span.End()

	recipientID := c.Param("user_id")
	count, err := h.useCase.UnreadCount(ctx, recipientID)
	if err != nil {
		logger.L().Error("Error counting unread inbox records",
			zap.String("recipientID", recipientID),
			zap.String("traceID", logger.TraceIDFromContext(ctx)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// HandleMarkRead marks one notification read.
func (h *Handler) HandleMarkRead(c *gin.Context) {
	ctx, span := tracing.Tracer.Start(c.Request.Context(), "InboxHandler.HandleMarkRead")
	defer span.End()

	recipientID := c.Param("user_id")
	notificationID := c.Param("id")

	if err := h.useCase.MarkRead(ctx, recipientID, notificationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		logger.L().Error("Error marking notification read",
			zap.String("recipientID", recipientID),
			zap.String("notificationID", notificationID),
			zap.String("traceID", logger.TraceIDFromContext(ctx)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
