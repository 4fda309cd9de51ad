package runtime

import (
	"context"
	"event-market/domain"
	"event-market/mocks"
	"event-market/services"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestChatSession_RefreshesUntilClosed(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockIMessageRepository(ctrl)
	repository.EXPECT().
		FetchAll(gomock.Any()).
		Return([]domain.Message{
			{Sender: "b@mail.com", Recipient: "a@mail.com", Body: "hola", SentAt: time.Now()},
		}, nil).
		MinTimes(1)
	chat := services.NewChatService(repository, slog.Default(), "a@mail.com")

	session := OpenChatSession(context.Background(), slog.Default(), chat, 10*time.Millisecond)

	select {
	case <-chat.Changes():
	case <-time.After(time.Second):
		req.Fail("expected a refresh")
	}
	req.Len(chat.Conversations(), 1)

	session.Close()
	session.Close()
	select {
	case <-session.Done():
	default:
		req.Fail("refresh loop should be stopped")
	}
}

func TestChatSession_StopsWithParentContext(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockIMessageRepository(ctrl)
	repository.EXPECT().FetchAll(gomock.Any()).Return(nil, nil).AnyTimes()
	chat := services.NewChatService(repository, slog.Default(), "a@mail.com")

	ctx, cancel := context.WithCancel(context.Background())
	session := OpenChatSession(ctx, slog.Default(), chat, 10*time.Millisecond)
	cancel()

	select {
	case <-session.Done():
	case <-time.After(time.Second):
		req.Fail("refresh loop should follow its parent context")
	}
	session.Close()
}
