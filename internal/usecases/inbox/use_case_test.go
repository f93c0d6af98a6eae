package inbox

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Cracken-1/pandamart-notifications/internal/domain"
)

// --- Mocks ---

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

// --- Tests ---

func TestList_PaginationDefaults(t *testing.T) {
	ctx := context.Background()
	records := []domain.InboxNotification{
		{ID: "n2", RecipientID: "u1", CreatedAt: time.Now()},
		{ID: "n1", RecipientID: "u1", CreatedAt: time.Now().Add(-time.Minute)},
	}

	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{name: "Defaults Applied", limit: 0, offset: -5, wantLimit: DefaultPageSize, wantOffset: 0},
		{name: "Limit Clamped To Max", limit: 5000, offset: 10, wantLimit: MaxPageSize, wantOffset: 10},
		{name: "Explicit Values Pass Through", limit: 5, offset: 15, wantLimit: 5, wantOffset: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(MockStore)
			mockStore.On("List", ctx, "u1", tt.wantLimit, tt.wantOffset).Return(records, nil).Once()
			useCase := NewUseCase(mockStore)

			got, err := useCase.List(ctx, "u1", tt.limit, tt.offset)

			require.NoError(t, err)
			assert.Equal(t, records, got)
			mockStore.AssertExpectations(t)
		})
	}
}

func TestMarkRead_NotFoundPassesThrough(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockStore)
	mockStore.On("MarkRead", ctx, "u1", "missing").Return(domain.ErrNotFound).Once()
	useCase := NewUseCase(mockStore)

	err := useCase.MarkRead(ctx, "u1", "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockStore.AssertExpectations(t)
}

func TestUnreadCount(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockStore)
	mockStore.On("UnreadCount", ctx, "u1").Return(int64(7), nil).Once()
	useCase := NewUseCase(mockStore)

	count, err := useCase.UnreadCount(ctx, "u1")

	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}
