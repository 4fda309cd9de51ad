// Package runtime owns the background tasks attached to a screen.
package runtime

import (
	"context"
	"event-market/contract"
	"event-market/runtime/workers"
	"event-market/services"
	"log/slog"
	"sync"
	"time"
)

// ChatSession keeps a chat service in sync with the backend until Close is
// called. The owner of the conversation view must Close it on teardown.
type ChatSession struct {
	Chat       services.IChatService
	supervisor contract.ISupervisor
	done       chan struct{}
	closeOnce  sync.Once
}

// OpenChatSession starts refreshing chat every interval. The first refresh
// happens one interval after opening.
func OpenChatSession(ctx context.Context, log *slog.Logger, chat services.IChatService, interval time.Duration) *ChatSession {
	supervisor := workers.NewSupervisor(log, workers.DefaultRestartDelay).
		Add(workers.NewRefreshWorker(log, chat, interval))

	session := &ChatSession{
		Chat:       chat,
		supervisor: supervisor,
		done:       make(chan struct{}),
	}
	go func() {
		defer close(session.done)
		supervisor.Run(ctx)
	}()
	return session
}

// Close stops the refresh loop and waits for it. In-flight fetches are
// canceled and their results dropped. Safe to call more than once.
func (s *ChatSession) Close() {
	s.closeOnce.Do(func() {
		s.supervisor.Stop()
		<-s.done
	})
}

// Done is closed once the refresh loop stopped, by Close or by the parent
// context.
func (s *ChatSession) Done() <-chan struct{} {
	return s.done
}
