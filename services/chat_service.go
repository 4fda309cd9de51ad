package services

import (
	"context"
	"event-market/domain"
	"event-market/errors"
	"event-market/moderation"
	"event-market/repositories"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

type IChatService interface {
	Identity() string
	Refresh(ctx context.Context) error
	Conversations() []domain.Conversation
	Open(counterpart string) domain.Conversation
	Selected() (domain.Conversation, bool)
	Back()
	Send(ctx context.Context, counterpart, body string) (domain.Message, error)
	SendToSelected(ctx context.Context, body string) (domain.Message, error)
	Changes() <-chan struct{}
}

// ChatOption tunes a ChatService.
type ChatOption func(*ChatService)

// WithModerator censors outgoing bodies before they are submitted.
func WithModerator(m *moderation.Moderator) ChatOption {
	return func(s *ChatService) { s.moderator = m }
}

// WithClock replaces time.Now for the timestamp of sent messages.
func WithClock(now func() time.Time) ChatOption {
	return func(s *ChatService) { s.now = now }
}

// WithOptimisticMerge keeps locally sent messages across refreshes until the
// backend returns them. Without it a refresh replaces the whole partition and
// may hide a message sent while the fetch was in flight.
func WithOptimisticMerge() ChatOption {
	return func(s *ChatService) { s.mergeSent = true }
}

// ChatService groups the messages of the local identity into conversations
// and keeps them in sync with the backend.
type ChatService struct {
	repository repositories.IMessageRepository
	log        *slog.Logger
	identity   string
	moderator  *moderation.Moderator
	now        func() time.Time
	mergeSent  bool
	changes    chan struct{}

	mu            sync.RWMutex
	conversations []domain.Conversation
	selected      *domain.Conversation
	unconfirmed   []domain.Message
}

// NewChatService binds the service to identity for its whole lifetime.
func NewChatService(repository repositories.IMessageRepository, log *slog.Logger, identity string, opts ...ChatOption) *ChatService {
	s := &ChatService{
		repository:    repository,
		log:           log.With("identity", identity),
		identity:      identity,
		now:           time.Now,
		changes:       make(chan struct{}, 1),
		conversations: []domain.Conversation{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ChatService) Identity() string {
	return s.identity
}

// Refresh fetches every message and rebuilds the conversations. On error the
// previous conversations stay in place. A result arriving after ctx is done
// is discarded.
func (s *ChatService) Refresh(ctx context.Context) error {
	if s.identity == "" {
		return errors.ErrNoProfile
	}
	messages, err := s.repository.FetchAll(ctx)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.mu.Lock()
	if s.mergeSent {
		messages = s.mergeUnconfirmed(messages)
	}
	s.conversations = domain.Partition(messages, s.identity)
	if s.selected != nil {
		s.selected = lo.ToPtr(domain.LocateOrCreate(s.conversations, s.selected.Counterpart))
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// Conversations returns the current partition, in first-encounter order.
func (s *ChatService) Conversations() []domain.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Conversation(nil), s.conversations...)
}

// Open selects the conversation with counterpart, creating an empty one if
// nothing was exchanged yet. Later refreshes keep it selected.
func (s *ChatService) Open(counterpart string) domain.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	conversation := domain.LocateOrCreate(s.conversations, counterpart)
	s.selected = &conversation
	return conversation
}

func (s *ChatService) Selected() (domain.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return domain.Conversation{}, false
	}
	return *s.selected, true
}

// Back leaves the selected conversation.
func (s *ChatService) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// SendToSelected sends body to the counterpart of the selected conversation.
func (s *ChatService) SendToSelected(ctx context.Context, body string) (domain.Message, error) {
	counterpart := ""
	if selected, ok := s.Selected(); ok {
		counterpart = selected.Counterpart
	}
	return s.Send(ctx, counterpart, body)
}

// Send validates and submits a message. Once the backend acknowledges it, the
// message is appended locally without waiting for the next refresh. Failures
// leave the conversations untouched and are never retried.
func (s *ChatService) Send(ctx context.Context, counterpart, body string) (domain.Message, error) {
	if strings.TrimSpace(body) == "" {
		return domain.Message{}, errors.ErrEmptyBody
	}
	if counterpart == "" {
		return domain.Message{}, errors.ErrNoCounterpart
	}
	if s.identity == "" {
		return domain.Message{}, errors.ErrNoProfile
	}

	text, censored := s.moderator.Censor(body)
	if len(censored) > 0 {
		s.log.Info("Outgoing message censored", "counterpart", counterpart, "words", len(censored))
	}
	message := domain.Message{
		Sender:    s.identity,
		Recipient: counterpart,
		Body:      text,
		SentAt:    s.now().UTC(),
	}

	if err := s.repository.Create(ctx, message); err != nil {
		s.log.Error("Message not sent", "counterpart", counterpart, "err", err)
		return domain.Message{}, fmt.Errorf("%w: %w", errors.ErrSendFailed, err)
	}

	s.appendSent(message)
	s.notify()
	return message, nil
}

// Changes signals, without blocking, that conversations were updated.
func (s *ChatService) Changes() <-chan struct{} {
	return s.changes
}

func (s *ChatService) appendSent(message domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := domain.LocateOrCreate(s.conversations, message.Recipient)
	selectedIsTarget := s.selected != nil && s.selected.Counterpart == message.Recipient
	if selectedIsTarget {
		base = *s.selected
	}
	updated := base.Append(message)

	s.conversations = domain.Replace(s.conversations, updated)
	if selectedIsTarget {
		s.selected = &updated
	}
	if s.mergeSent {
		s.unconfirmed = append(s.unconfirmed, message)
	}
}

// mergeUnconfirmed adds back the sent messages the backend does not return
// yet and forgets the ones it does.
func (s *ChatService) mergeUnconfirmed(fetched []domain.Message) []domain.Message {
	known := lo.SliceToMap(fetched, func(m domain.Message) (string, struct{}) {
		return m.Key(), struct{}{}
	})
	s.unconfirmed = lo.Filter(s.unconfirmed, func(m domain.Message, _ int) bool {
		_, ok := known[m.Key()]
		return !ok
	})
	merged := make([]domain.Message, 0, len(fetched)+len(s.unconfirmed))
	merged = append(merged, fetched...)
	return append(merged, s.unconfirmed...)
}

func (s *ChatService) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}
