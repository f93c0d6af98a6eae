package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Cracken-1/pandamart-notifications/internal/domain"
	"github.com/Cracken-1/pandamart-notifications/internal/domain/port/channel"
)

// --- Mocks ---

// MockSender is a mock implementation of the channel.Sender interface.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg channel.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func newSenderMap(senders map[domain.Channel]*MockSender) map[domain.Channel]channel.Sender {
	out := make(map[domain.Channel]channel.Sender, len(senders))
	for ch, s := range senders {
		out[ch] = s
	}
	return out
}

var fullContact = domain.RecipientContact{
	Email:       "amina@example.com",
	PhoneNumber: "0712345678",
	PushToken:   "device-token-1",
}

func baseRequest(channels ...domain.Channel) domain.NotificationRequest {
	return domain.NotificationRequest{
		RecipientID: "u1",
		Category:    domain.CategoryOrder,
		Title:       "Order shipped",
		Body:        "Your order ORD-100 has shipped.",
		Data:        map[string]string{"orderNumber": "ORD-100"},
		Channels:    channels,
		Priority:    domain.PriorityHigh,
	}
}

// --- Tests ---

func TestExecute_EmptyChannelsFailsFast(t *testing.T) {
	mockInApp := new(MockSender)
	useCase := NewUseCase(newSenderMap(map[domain.Channel]*MockSender{
		domain.ChannelInApp: mockInApp,
	}), 0)

	_, err := useCase.Execute(context.Background(), baseRequest(), fullContact)

	assert.ErrorIs(t, err, domain.ErrNoChannels)
	mockInApp.AssertNotCalled(t, "Send")
}

func TestExecute_AllChannelsSucceed(t *testing.T) {
	mocks := map[domain.Channel]*MockSender{
		domain.ChannelEmail: new(MockSender),
		domain.ChannelSMS:   new(MockSender),
		domain.ChannelPush:  new(MockSender),
		domain.ChannelInApp: new(MockSender),
	}
	for _, m := range mocks {
		m.On("Send", mock.Anything, mock.Anything).Return(nil).Once()
	}
	useCase := NewUseCase(newSenderMap(mocks), 0)

	req := baseRequest(domain.ChannelEmail, domain.ChannelSMS, domain.ChannelPush, domain.ChannelInApp)
	result, err := useCase.Execute(context.Background(), req, fullContact)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Len(t, result.Channels, 4)
	for ch, ok := range result.Channels {
		assert.True(t, ok, "channel %s should succeed", ch)
	}
	for _, m := range mocks {
		m.AssertExpectations(t)
	}
}

func TestExecute_PartialFailureIsNotAnError(t *testing.T) {
	mockEmail := new(MockSender)
	mockSMS := new(MockSender)
	mockInApp := new(MockSender)
	mockEmail.On("Send", mock.Anything, mock.Anything).Return(nil).Once()
	mockSMS.On("Send", mock.Anything, mock.Anything).Return(errors.New("provider 500")).Once()
	mockInApp.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

	useCase := NewUseCase(newSenderMap(map[domain.Channel]*MockSender{
		domain.ChannelEmail: mockEmail,
		domain.ChannelSMS:   mockSMS,
		domain.ChannelInApp: mockInApp,
	}), 0)

	req := baseRequest(domain.ChannelEmail, domain.ChannelSMS)
	result, err := useCase.Execute(context.Background(), req, fullContact)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.Channels[domain.ChannelEmail])
	assert.False(t, result.Channels[domain.ChannelSMS])
	mockEmail.AssertExpectations(t)
	mockSMS.AssertExpectations(t)
}

func TestExecute_NoContactFieldsStillReachesInApp(t *testing.T) {
	mockEmail := new(MockSender)
	mockSMS := new(MockSender)
	mockPush := new(MockSender)
	mockInApp := new(MockSender)
	mockInApp.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

	useCase := NewUseCase(newSenderMap(map[domain.Channel]*MockSender{
		domain.ChannelEmail: mockEmail,
		domain.ChannelSMS:   mockSMS,
		domain.ChannelPush:  mockPush,
		domain.ChannelInApp: mockInApp,
	}), 0)

	req := baseRequest(domain.ChannelEmail, domain.ChannelSMS, domain.ChannelPush)
	result, err := useCase.Execute(context.Background(), req, domain.RecipientContact{})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.False(t, result.Channels[domain.ChannelEmail])
	assert.False(t, result.Channels[domain.ChannelSMS])
	assert.False(t, result.Channels[domain.ChannelPush])
	assert.True(t, result.Channels[domain.ChannelInApp])
	mockEmail.AssertNotCalled(t, "Send")
	mockSMS.AssertNotCalled(t, "Send")
	mockPush.AssertNotCalled(t, "Send")
	mockInApp.AssertExpectations(t)
}

func TestExecute_DuplicateChannelsCollapse(t *testing.T) {
	mockEmail := new(MockSender)
	mockEmail.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

	useCase := NewUseCase(newSenderMap(map[domain.Channel]*MockSender{
		domain.ChannelEmail: mockEmail,
	}), 0)

	req := baseRequest(domain.ChannelEmail, domain.ChannelEmail, domain.ChannelEmail)
	result, err := useCase.Execute(context.Background(), req, fullContact)

	require.NoError(t, err)
	assert.True(t, result.Channels[domain.ChannelEmail])
	mockEmail.AssertNumberOfCalls(t, "Send", 1)
}

func TestExecute_DisabledChannelRecordsFalseWithoutAttempt(t *testing.T) {
	// Email sender absent from the map: configuration absence is a disabled
	// channel, not a per-call error.
	mockInApp := new(MockSender)
	mockInApp.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

	useCase := NewUseCase(newSenderMap(map[domain.Channel]*MockSender{
		domain.ChannelInApp: mockInApp,
	}), 0)

	req := baseRequest(domain.ChannelEmail)
	result, err := useCase.Execute(context.Background(), req, fullContact)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.False(t, result.Channels[domain.ChannelEmail])
}

func TestExecute_InAppAlwaysIncluded(t *testing.T) {
	mockEmail := new(MockSender)
	mockInApp := new(MockSender)
	mockEmail.On("Send", mock.Anything, mock.Anything).Return(nil).Once()
	mockInApp.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

	useCase := NewUseCase(newSenderMap(map[domain.Channel]*MockSender{
		domain.ChannelEmail: mockEmail,
		domain.ChannelInApp: mockInApp,
	}), 0)

	req := baseRequest(domain.ChannelEmail) // in-app not requested
	result, err := useCase.Execute(context.Background(), req, fullContact)

	require.NoError(t, err)
	assert.True(t, result.Channels[domain.ChannelInApp])
	mockInApp.AssertExpectations(t)
}

func TestExecute_InAppFailureAloneMeansOverallFailure(t *testing.T) {
	mockInApp := new(MockSender)
	mockInApp.On("Send", mock.Anything, mock.Anything).Return(errors.New("store down")).Once()

	useCase := NewUseCase(newSenderMap(map[domain.Channel]*MockSender{
		domain.ChannelInApp: mockInApp,
	}), 0)

	req := baseRequest(domain.ChannelInApp)
	result, err := useCase.Execute(context.Background(), req, domain.RecipientContact{})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.False(t, result.Channels[domain.ChannelInApp])
}

func TestExecute_EmailPayloadIsRendered(t *testing.T) {
	mockEmail := new(MockSender)
	var captured channel.Message
	mockEmail.On("Send", mock.Anything, mock.MatchedBy(func(msg channel.Message) bool {
		captured = msg
		return true
	})).Return(nil).Once()

	useCase := NewUseCase(newSenderMap(map[domain.Channel]*MockSender{
		domain.ChannelEmail: mockEmail,
	}), 0)

	req := baseRequest(domain.ChannelEmail)
	contact := domain.RecipientContact{Email: "a@b.com"}
	_, err := useCase.Execute(context.Background(), req, contact)

	require.NoError(t, err)
	assert.Equal(t, "a@b.com", captured.To)
	assert.Contains(t, captured.Subject, "ORD-100")
	assert.Contains(t, captured.HTML, "ORD-100")
	assert.Contains(t, captured.Text, "Your order ORD-100 has shipped.")
	assert.NotContains(t, captured.HTML, "{{body}}")
}

func TestExecute_InAppPayloadCarriesFullRequest(t *testing.T) {
	mockInApp := new(MockSender)
	var captured channel.Message
	mockInApp.On("Send", mock.Anything, mock.MatchedBy(func(msg channel.Message) bool {
		captured = msg
		return true
	})).Return(nil).Once()

	useCase := NewUseCase(newSenderMap(map[domain.Channel]*MockSender{
		domain.ChannelInApp: mockInApp,
	}), 0)

	req := baseRequest(domain.ChannelInApp)
	_, err := useCase.Execute(context.Background(), req, domain.RecipientContact{})

	require.NoError(t, err)
	assert.Equal(t, req.RecipientID, captured.Request.RecipientID)
	assert.Equal(t, req.Data, captured.Request.Data)
	assert.Equal(t, req.Category, captured.Request.Category)
}
