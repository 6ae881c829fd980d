package message_test

import (
	"testing"
	"time"

	"github.com/ferdiebergado/finderid/internal/message"
	"github.com/google/go-cmp/cmp"
)

var base = time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	read := at(0)
	msgs := []message.Message{
		{ID: "m1", SenderID: "bob", RecipientID: "me", Body: "hi", CreatedAt: at(1)},
		{ID: "m2", SenderID: "me", RecipientID: "bob", Body: "hello", CreatedAt: at(2)},
		{ID: "m3", SenderID: "bob", RecipientID: "me", Body: "lunch?", CreatedAt: at(3)},
		{ID: "m4", SenderID: "cat", RecipientID: "me", Body: "found your ID", CreatedAt: at(5), ReadAt: &read},
		{ID: "m5", SenderID: "me", RecipientID: "dan", Body: "thanks", CreatedAt: at(5)},
		{ID: "m6", SenderID: "eve", RecipientID: "me", Body: "old", CreatedAt: at(-10)},
	}
	names := map[string]string{"bob": "Bob", "cat": "Cat", "dan": "Dan"}

	got := message.Aggregate("me", msgs, names)

	want := []message.Conversation{
		{CounterpartID: "cat", CounterpartName: "Cat", LastMessage: msgs[3], Unread: 0},
		{CounterpartID: "dan", CounterpartName: "Dan", LastMessage: msgs[4], Unread: 0},
		{CounterpartID: "bob", CounterpartName: "Bob", LastMessage: msgs[2], Unread: 2},
		{CounterpartID: "eve", CounterpartName: "Unknown user", LastMessage: msgs[5], Unread: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Aggregate() mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	t.Parallel()

	msgs := []message.Message{
		{ID: "m3", SenderID: "bob", RecipientID: "me", CreatedAt: at(3)},
		{ID: "m1", SenderID: "bob", RecipientID: "me", CreatedAt: at(1)},
		{ID: "m2", SenderID: "me", RecipientID: "bob", CreatedAt: at(2)},
	}

	got := message.Aggregate("me", msgs, nil)
	if len(got) != 1 || got[0].LastMessage.ID != "m3" {
		t.Errorf("Aggregate() last message = %+v, want m3", got)
	}
}

func TestAggregate_Empty(t *testing.T) {
	t.Parallel()

	if got := message.Aggregate("me", nil, nil); len(got) != 0 {
		t.Errorf("Aggregate(nil) = %v, want empty", got)
	}
}

func TestCounterparts(t *testing.T) {
	t.Parallel()

	msgs := []message.Message{
		{SenderID: "bob", RecipientID: "me"},
		{SenderID: "me", RecipientID: "bob"},
		{SenderID: "me", RecipientID: "cat"},
	}

	if diff := cmp.Diff([]string{"bob", "cat"}, message.Counterparts("me", msgs)); diff != "" {
		t.Errorf("Counterparts() mismatch (-want +got):\n%s", diff)
	}
}
