package inapp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Cracken-1/pandamart-notifications/internal/domain"
	"github.com/Cracken-1/pandamart-notifications/internal/domain/port/channel"
)

// MockStore is a mock implementation of the inbox store port.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Append(ctx context.Context, rec domain.InboxNotification) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockStore) List(ctx context.Context, recipientID string, limit, offset int) ([]domain.InboxNotification, error) {
	args := m.Called(ctx, recipientID, limit, offset)
	return args.Get(0).([]domain.InboxNotification), args.Error(1)
}

func (m *MockStore) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	args := m.Called(ctx, recipientID, notificationID)
	return args.Error(0)
}

func (m *MockStore) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func TestSend_WritesFullRequest(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	req := domain.NotificationRequest{
		RecipientID: "u1",
		Category:    domain.CategoryLoyalty,
		Title:       "Panda Points update",
		Body:        "You earned 150 points.",
		Data:        map[string]string{"points": "150"},
		Priority:    domain.PriorityMedium,
		ActionURL:   "/account/loyalty",
	}

	var captured domain.InboxNotification
	mockStore := new(MockStore)
	mockStore.On("Append", mock.Anything, mock.MatchedBy(func(rec domain.InboxNotification) bool {
		captured = rec
		return true
	})).Return(nil).Once()

	svc := New(mockStore)
	svc.now = func() time.Time { return fixed }

	err := svc.Send(context.Background(), channel.Message{To: "u1", Request: req})

	require.NoError(t, err)
	assert.NotEmpty(t, captured.ID)
	assert.Equal(t, "u1", captured.RecipientID)
	assert.Equal(t, domain.CategoryLoyalty, captured.Category)
	assert.Equal(t, req.Data, captured.Data)
	assert.Equal(t, req.ActionURL, captured.ActionURL)
	assert.Equal(t, fixed, captured.CreatedAt)
	assert.False(t, captured.Read)
	mockStore.AssertExpectations(t)
}

func TestSend_StoreFailure(t *testing.T) {
	mockStore := new(MockStore)
	mockStore.On("Append", mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()

	svc := New(mockStore)
	err := svc.Send(context.Background(), channel.Message{
		Request: domain.NotificationRequest{RecipientID: "u1"},
	})

	assert.Error(t, err)
	mockStore.AssertExpectations(t)
}
