// Package domain contains core concepts of the marketplace client.
// This file defines Message records and the conversations derived from them.
// Messages are immutable once created.
package domain

import (
	"time"
)

// Message represents an immutable direct message between two users.
type Message struct {
	Sender    string // user identifier, the e-mail
	Recipient string
	Body      string
	SentAt    time.Time
}

// Conversation groups the messages exchanged with one counterpart.
// It is derived from the flat message list and never persisted.
type Conversation struct {
	Counterpart string
	Messages    []Message
}

// Involves reports whether identity is the sender or the recipient.
func (m Message) Involves(identity string) bool {
	return m.Sender == identity || m.Recipient == identity
}

// CounterpartOf returns the participant that is not identity.
func (m Message) CounterpartOf(identity string) string {
	if m.Sender == identity {
		return m.Recipient
	}
	return m.Sender
}

// Key identifies a message for merge purposes. Two sends with the same
// body at the same instant between the same users are indistinguishable.
func (m Message) Key() string {
	return m.Sender + "|" + m.Recipient + "|" + m.SentAt.UTC().Format(time.RFC3339Nano) + "|" + m.Body
}

// Last returns the most recent message of the conversation.
func (c Conversation) Last() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}
