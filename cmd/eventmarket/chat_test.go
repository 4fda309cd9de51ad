package main

import (
	"bytes"
	"context"
	"event-market/domain"
	"event-market/mocks"
	"event-market/services"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestChatView_PrintsEachMessageOnce(t *testing.T) {
	req := require.New(t)
	out := &bytes.Buffer{}
	view := newChatView(out, me)
	t0 := time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)

	first := domain.Message{Sender: provider, Recipient: me, Body: "primero", SentAt: t0}
	second := domain.Message{Sender: me, Recipient: provider, Body: "segundo", SentAt: t0.Add(time.Minute)}

	view.open(domain.Conversation{Counterpart: provider, Messages: []domain.Message{first}})
	view.printNew(domain.Conversation{Counterpart: provider, Messages: []domain.Message{first, second}})

	req.Equal(1, strings.Count(out.String(), "primero"))
	req.Equal(1, strings.Count(out.String(), "segundo"))
	req.Contains(out.String(), "me: segundo")
}

func TestChatView_Handle(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockIMessageRepository(ctrl)
	repository.EXPECT().FetchAll(gomock.Any()).Return([]domain.Message{
		{Sender: organizer, Recipient: me, Body: "hola", SentAt: time.Now()},
	}, nil)
	chat := services.NewChatService(repository, slog.Default(), me)
	req.NoError(chat.Refresh(context.Background()))

	out := &bytes.Buffer{}
	view := newChatView(out, me)
	view.list(chat.Conversations())

	// Nothing selected yet
	req.False(view.handle(context.Background(), chat, "hello?"))
	req.Contains(out.String(), "no counterpart selected")

	req.False(view.handle(context.Background(), chat, "/open 1"))
	selected, ok := chat.Selected()
	req.True(ok)
	req.Equal(organizer, selected.Counterpart)

	req.False(view.handle(context.Background(), chat, "/open 9"))
	req.Contains(out.String(), "usage")

	req.False(view.handle(context.Background(), chat, "/back"))
	_, ok = chat.Selected()
	req.False(ok)

	req.True(view.handle(context.Background(), chat, "/quit"))
}
