package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 10, 18, 30, 0, 0, time.UTC)

func TestPartition_TwoPartyExchange(t *testing.T) {
	req := require.New(t)
	messages := []Message{
		{Sender: "a@mail.com", Recipient: "b@mail.com", Body: "hi", SentAt: t0},
		{Sender: "b@mail.com", Recipient: "a@mail.com", Body: "hey", SentAt: t0.Add(time.Minute)},
	}

	conversations := Partition(messages, "a@mail.com")

	req.Len(conversations, 1)
	req.Equal("b@mail.com", conversations[0].Counterpart)
	req.Equal([]string{"hi", "hey"}, bodies(conversations[0]))
}

func TestPartition_DropsForeignMessages(t *testing.T) {
	req := require.New(t)
	messages := []Message{
		{Sender: "c@mail.com", Recipient: "d@mail.com", Body: "not yours", SentAt: t0},
		{Sender: "a@mail.com", Recipient: "c@mail.com", Body: "mine", SentAt: t0},
	}

	conversations := Partition(messages, "a@mail.com")

	req.Len(conversations, 1)
	for _, c := range conversations {
		for _, m := range c.Messages {
			req.True(m.Involves("a@mail.com"))
		}
	}
}

func TestPartition_SortsEachConversationAndKeepsFirstEncounterOrder(t *testing.T) {
	req := require.New(t)
	messages := []Message{
		{Sender: "z@mail.com", Recipient: "a@mail.com", Body: "z2", SentAt: t0.Add(2 * time.Minute)},
		{Sender: "a@mail.com", Recipient: "b@mail.com", Body: "b1", SentAt: t0.Add(time.Minute)},
		{Sender: "a@mail.com", Recipient: "z@mail.com", Body: "z1", SentAt: t0},
		{Sender: "b@mail.com", Recipient: "a@mail.com", Body: "b0", SentAt: t0},
	}

	conversations := Partition(messages, "a@mail.com")

	req.Len(conversations, 2)
	// Given z is met first, it stays first even if b is alphabetically smaller
	req.Equal("z@mail.com", conversations[0].Counterpart)
	req.Equal("b@mail.com", conversations[1].Counterpart)
	req.Equal([]string{"z1", "z2"}, bodies(conversations[0]))
	req.Equal([]string{"b0", "b1"}, bodies(conversations[1]))
	for _, c := range conversations {
		for i := 1; i < len(c.Messages); i++ {
			req.False(c.Messages[i].SentAt.Before(c.Messages[i-1].SentAt))
		}
	}
}

func TestPartition_EqualTimestampsKeepInputOrder(t *testing.T) {
	req := require.New(t)
	messages := []Message{
		{Sender: "a@mail.com", Recipient: "b@mail.com", Body: "first", SentAt: t0},
		{Sender: "b@mail.com", Recipient: "a@mail.com", Body: "second", SentAt: t0},
		{Sender: "a@mail.com", Recipient: "b@mail.com", Body: "third", SentAt: t0},
	}

	conversations := Partition(messages, "a@mail.com")

	req.Equal([]string{"first", "second", "third"}, bodies(conversations[0]))
}

func TestPartition_IsIdempotent(t *testing.T) {
	req := require.New(t)
	messages := []Message{
		{Sender: "a@mail.com", Recipient: "b@mail.com", Body: "1", SentAt: t0.Add(time.Hour)},
		{Sender: "c@mail.com", Recipient: "a@mail.com", Body: "2", SentAt: t0},
		{Sender: "b@mail.com", Recipient: "a@mail.com", Body: "3", SentAt: t0},
	}

	req.Equal(Partition(messages, "a@mail.com"), Partition(messages, "a@mail.com"))
	// The input is not reordered
	req.Equal("1", messages[0].Body)
}

func TestPartition_Empty(t *testing.T) {
	req := require.New(t)
	req.Empty(Partition(nil, "a@mail.com"))
	req.Empty(Partition([]Message{{Sender: "x", Recipient: "y"}}, "a@mail.com"))
}

func TestLocateOrCreate(t *testing.T) {
	req := require.New(t)
	conversations := Partition([]Message{
		{Sender: "a@mail.com", Recipient: "b@mail.com", Body: "hi", SentAt: t0},
	}, "a@mail.com")

	found := LocateOrCreate(conversations, "b@mail.com")
	req.Equal(conversations[0], found)

	created := LocateOrCreate(conversations, "new@mail.com")
	req.Equal("new@mail.com", created.Counterpart)
	req.NotNil(created.Messages)
	req.Empty(created.Messages)

	req.Equal("x", LocateOrCreate(nil, "x").Counterpart)
}

func TestConversation_AppendAndReplace(t *testing.T) {
	req := require.New(t)
	conversations := Partition([]Message{
		{Sender: "a@mail.com", Recipient: "b@mail.com", Body: "hi", SentAt: t0},
		{Sender: "a@mail.com", Recipient: "c@mail.com", Body: "yo", SentAt: t0},
	}, "a@mail.com")

	updated := conversations[0].Append(Message{Sender: "a@mail.com", Recipient: "b@mail.com", Body: "ok", SentAt: t0.Add(time.Second)})
	req.Equal([]string{"hi", "ok"}, bodies(updated))
	// Original is untouched
	req.Len(conversations[0].Messages, 1)

	replaced := Replace(conversations, updated)
	req.Equal(updated, replaced[0])
	req.Equal(conversations[1], replaced[1])

	// Unknown counterpart is not inserted
	req.Len(Replace(conversations, Conversation{Counterpart: "ghost@mail.com"}), 2)
}

func TestMessage_CounterpartOf(t *testing.T) {
	req := require.New(t)
	m := Message{Sender: "a", Recipient: "b"}
	req.Equal("b", m.CounterpartOf("a"))
	req.Equal("a", m.CounterpartOf("b"))

	self := Message{Sender: "a", Recipient: "a"}
	req.Equal("a", self.CounterpartOf("a"))
}

func bodies(c Conversation) []string {
	out := make([]string, 0, len(c.Messages))
	for _, m := range c.Messages {
		out = append(out, m.Body)
	}
	return out
}
