//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"context"
	"event-market/domain"
	"event-market/infrastructure/rest"
	"log/slog"
	"net/http"
	"time"

	"github.com/samber/lo"
)

const messagesPath = "/mensajes"

// IMessageRepository is the remote message store. FetchAll returns every
// message known to the backend, unfiltered.
type IMessageRepository interface {
	FetchAll(ctx context.Context) ([]domain.Message, error)
	Create(ctx context.Context, message domain.Message) error
}

type MessageRepository struct {
	client *rest.Client
	log    *slog.Logger
}

func NewMessageRepository(client *rest.Client, log *slog.Logger) MessageRepository {
	return MessageRepository{client: client, log: log}
}

type wireMessage struct {
	Sender    string `json:"idEnviado"`
	Recipient string `json:"idRecibido"`
	Body      string `json:"texto"`
	SentAt    string `json:"fecha"`
}

func (m MessageRepository) FetchAll(ctx context.Context) ([]domain.Message, error) {
	var wire []wireMessage
	if err := m.client.GetJSON(ctx, messagesPath, &wire); err != nil {
		return nil, err
	}
	return lo.Map(wire, func(w wireMessage, _ int) domain.Message {
		return m.toMessage(w)
	}), nil
}

// Create only succeeds on 201 Created, any other answer means the message
// is not retrievable.
func (m MessageRepository) Create(ctx context.Context, message domain.Message) error {
	return m.client.PostJSON(ctx, messagesPath, fromMessage(message), http.StatusCreated)
}

func fromMessage(message domain.Message) wireMessage {
	return wireMessage{
		Sender:    message.Sender,
		Recipient: message.Recipient,
		Body:      message.Body,
		SentAt:    message.SentAt.UTC().Format(time.RFC3339Nano),
	}
}

// toMessage keeps messages with an unreadable date, they sort first.
func (m MessageRepository) toMessage(w wireMessage) domain.Message {
	sentAt, err := time.Parse(time.RFC3339Nano, w.SentAt)
	if err != nil {
		m.log.Debug("Unreadable message date", "fecha", w.SentAt, "err", err)
	}
	return domain.Message{
		Sender:    w.Sender,
		Recipient: w.Recipient,
		Body:      w.Body,
		SentAt:    sentAt,
	}
}
