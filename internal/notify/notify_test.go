package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PlantTycoon_Go/internal/logger"
)

// MockDMSender
type MockDMSender struct {
	mock.Mock
}

func (m *MockDMSender) UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	args := m.Called(recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Channel), args.Error(1)
}

func (m *MockDMSender) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Message), args.Error(1)
}

type stubSink struct {
	err   error
	calls int
}

func (s *stubSink) Notify(ctx context.Context, userID, text string) error {
	s.calls++
	return s.err
}

func TestDiscordSink_CachesChannel(t *testing.T) {
	dm := new(MockDMSender)
	dm.On("UserChannelCreate", "123").Return(&discordgo.Channel{ID: "ch-1"}, nil).Once()
	dm.On("ChannelMessageSend", "ch-1", mock.Anything).Return(&discordgo.Message{}, nil).Twice()

	sink := NewDiscordSink(dm, 10, time.Minute)
	require.NoError(t, sink.Notify(context.Background(), "123", "water me"))
	require.NoError(t, sink.Notify(context.Background(), "123", "water me again"))

	dm.AssertExpectations(t)
}

func TestDiscordSink_OpenChannelFails(t *testing.T) {
	dm := new(MockDMSender)
	dm.On("UserChannelCreate", "123").Return(nil, errors.New("forbidden"))

	err := NewDiscordSink(dm, 10, time.Minute).Notify(context.Background(), "123", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgOpenDM)
	dm.AssertNotCalled(t, "ChannelMessageSend", mock.Anything, mock.Anything)
}

func TestDiscordSink_SendFailureDropsCachedChannel(t *testing.T) {
	dm := new(MockDMSender)
	dm.On("UserChannelCreate", "123").Return(&discordgo.Channel{ID: "ch-1"}, nil).Twice()
	dm.On("ChannelMessageSend", "ch-1", "first").Return(nil, errors.New("unknown channel")).Once()
	dm.On("ChannelMessageSend", "ch-1", "second").Return(&discordgo.Message{}, nil).Once()

	sink := NewDiscordSink(dm, 10, time.Minute)
	err := sink.Notify(context.Background(), "123", "first")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgSendDM)

	require.NoError(t, sink.Notify(context.Background(), "123", "second"))
	dm.AssertExpectations(t)
}

func TestNewDiscordSink_Defaults(t *testing.T) {
	sink := NewDiscordSink(new(MockDMSender), 0, 0)
	assert.NotNil(t, sink.channels)
}

func TestMultiSink(t *testing.T) {
	ok := &stubSink{}
	failing := &stubSink{err: errors.New("down")}

	err := MultiSink{ok, failing, ok}.Notify(context.Background(), "u", "hi")
	require.Error(t, err)
	assert.Equal(t, 2, ok.calls, "a failing sink does not stop the others")
	assert.Equal(t, 1, failing.calls)

	assert.NoError(t, MultiSink{}.Notify(context.Background(), "u", "hi"))
}

func TestLogSink(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger.InitLoggerWithWriter(logger.Config{Level: "info", Format: "json"}, &buf)

	require.NoError(t, LogSink{}.Notify(context.Background(), "u-1", "your plant is wilting"))
	assert.Contains(t, buf.String(), "your plant is wilting")
	assert.Contains(t, buf.String(), `"user_id":"u-1"`)
}
