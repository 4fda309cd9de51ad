package domain

import (
	"slices"

	"github.com/samber/lo"
)

// Partition splits a flat message list into one conversation per counterpart
// of identity. Messages not involving identity are dropped. Conversations keep
// the order in which their counterpart first appears in messages, and each one
// is sorted by SentAt, equal instants keeping their input order.
func Partition(messages []Message, identity string) []Conversation {
	mine := lo.Filter(messages, func(m Message, _ int) bool {
		return m.Involves(identity)
	})
	groups := lo.PartitionBy(mine, func(m Message) string {
		return m.CounterpartOf(identity)
	})
	return lo.Map(groups, func(group []Message, _ int) Conversation {
		sortBySentAt(group)
		return Conversation{
			Counterpart: group[0].CounterpartOf(identity),
			Messages:    group,
		}
	})
}

// LocateOrCreate returns the conversation with counterpart, or an empty one
// when no message has been exchanged yet.
func LocateOrCreate(conversations []Conversation, counterpart string) Conversation {
	found, ok := lo.Find(conversations, func(c Conversation) bool {
		return c.Counterpart == counterpart
	})
	if ok {
		return found
	}
	return Conversation{Counterpart: counterpart, Messages: []Message{}}
}

// Append returns a copy of c with message added in chronological position.
func (c Conversation) Append(message Message) Conversation {
	messages := make([]Message, 0, len(c.Messages)+1)
	messages = append(messages, c.Messages...)
	messages = append(messages, message)
	sortBySentAt(messages)
	return Conversation{Counterpart: c.Counterpart, Messages: messages}
}

// Replace swaps the conversation sharing updated's counterpart. A counterpart
// that is not tracked yet is left out.
func Replace(conversations []Conversation, updated Conversation) []Conversation {
	return lo.Map(conversations, func(c Conversation, _ int) Conversation {
		if c.Counterpart == updated.Counterpart {
			return updated
		}
		return c
	})
}

func sortBySentAt(messages []Message) {
	slices.SortStableFunc(messages, func(a, b Message) int {
		return a.SentAt.Compare(b.SentAt)
	})
}
