package message_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ferdiebergado/finderid/internal/message"
	"github.com/ferdiebergado/finderid/internal/notification"
	"github.com/ferdiebergado/finderid/internal/platform/realtime"
	"github.com/google/go-cmp/cmp"
)

func users() *message.StubUsers {
	return &message.StubUsers{
		ExistsFunc: func(_ context.Context, id string) (bool, error) {
			return id != "ghost", nil
		},
		DisplayNamesFunc: func(_ context.Context, ids []string) (map[string]string, error) {
			names := map[string]string{"me": "Maria", "bob": "Bob"}
			out := make(map[string]string)
			for _, id := range ids {
				if n, ok := names[id]; ok {
					out[id] = n
				}
			}
			return out, nil
		},
	}
}

func TestService_Send(t *testing.T) {
	t.Parallel()

	repo := &message.StubRepo{
		CreateFunc: func(_ context.Context, from, to, body string) (message.Message, error) {
			return message.Message{ID: "m1", SenderID: from, RecipientID: to, Body: body, CreatedAt: base}, nil
		},
	}
	pub := &realtime.RecordingPublisher{}
	notifier := &notification.RecordingNotifier{}
	svc := message.NewService(repo, users(), pub, notifier)

	if _, err := svc.Send(context.Background(), "me", "bob", "is this your wallet?"); err != nil {
		t.Fatal(err)
	}

	var targets []string
	for _, d := range pub.Events() {
		if d.Event.Table != message.Table || d.Event.Type != realtime.EventInsert {
			t.Errorf("event = %s/%s, want: messages/INSERT", d.Event.Table, d.Event.Type)
		}
		targets = append(targets, d.UserID)
	}
	if diff := cmp.Diff([]string{"me", "bob"}, targets); diff != "" {
		t.Errorf("event targets mismatch (-want +got):\n%s", diff)
	}

	sent := notifier.Sent()
	if len(sent) != 1 {
		t.Fatalf("len(sent) = %d, want: 1", len(sent))
	}
	want := notification.CreateParams{
		UserID: "bob",
		Type:   notification.TypeMessage,
		Title:  "New message from Maria",
		Body:   "is this your wallet?",
		Link:   "/messages/me",
	}
	if diff := cmp.Diff(want, sent[0]); diff != "" {
		t.Errorf("notification mismatch (-want +got):\n%s", diff)
	}
}

func TestService_SendRejects(t *testing.T) {
	t.Parallel()

	pub := &realtime.RecordingPublisher{}
	svc := message.NewService(&message.StubRepo{}, users(), pub, &notification.RecordingNotifier{})

	tests := []struct {
		name string
		to   string
		want error
	}{
		{"self", "me", message.ErrSelf},
		{"unknown recipient", "ghost", message.ErrRecipientNotFound},
	}

	for _, tt := range tests {
		if _, err := svc.Send(context.Background(), "me", tt.to, "hello"); !errors.Is(err, tt.want) {
			t.Errorf("%s: Send() error = %v, want: %v", tt.name, err, tt.want)
		}
	}

	if n := len(pub.Events()); n != 0 {
		t.Errorf("published %d events for rejected sends", n)
	}
}

func TestService_SendLongBodyPreview(t *testing.T) {
	t.Parallel()

	repo := &message.StubRepo{
		CreateFunc: func(_ context.Context, from, to, body string) (message.Message, error) {
			return message.Message{SenderID: from, RecipientID: to, Body: body}, nil
		},
	}
	notifier := &notification.RecordingNotifier{}
	svc := message.NewService(repo, users(), realtime.NopPublisher{}, notifier)

	if _, err := svc.Send(context.Background(), "me", "bob", strings.Repeat("é", 200)); err != nil {
		t.Fatal(err)
	}

	body := notifier.Sent()[0].Body
	if n := utf8.RuneCountInString(body); n != 80 {
		t.Errorf("preview length = %d runes, want: 80", n)
	}
	if !strings.HasSuffix(body, "…") {
		t.Errorf("preview %q does not end with an ellipsis", body)
	}
}

func TestService_Conversations(t *testing.T) {
	t.Parallel()

	var asked []string
	repo := &message.StubRepo{
		ListInvolvingFunc: func(context.Context, string) ([]message.Message, error) {
			return []message.Message{{ID: "m1", SenderID: "bob", RecipientID: "me", CreatedAt: base}}, nil
		},
	}
	u := users()
	names := u.DisplayNamesFunc
	u.DisplayNamesFunc = func(ctx context.Context, ids []string) (map[string]string, error) {
		asked = ids
		return names(ctx, ids)
	}
	svc := message.NewService(repo, u, realtime.NopPublisher{}, &notification.RecordingNotifier{})

	convs, err := svc.Conversations(context.Background(), "me")
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"bob"}, asked); diff != "" {
		t.Errorf("DisplayNames ids mismatch (-want +got):\n%s", diff)
	}
	if len(convs) != 1 || convs[0].CounterpartName != "Bob" || convs[0].Unread != 1 {
		t.Errorf("Conversations() = %+v, want one unread conversation with Bob", convs)
	}
}

func TestService_MarkRead(t *testing.T) {
	t.Parallel()

	updated := int64(2)
	repo := &message.StubRepo{
		MarkThreadReadFunc: func(context.Context, string, string) (int64, error) {
			n := updated
			updated = 0
			return n, nil
		},
	}
	pub := &realtime.RecordingPublisher{}
	svc := message.NewService(repo, users(), pub, &notification.RecordingNotifier{})

	for range 2 {
		if _, err := svc.MarkRead(context.Background(), "me", "bob"); err != nil {
			t.Fatal(err)
		}
	}

	events := pub.Events()
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want: 2 (one per participant, only for the first call)", len(events))
	}
	for _, d := range events {
		if d.Event.Type != realtime.EventUpdate {
			t.Errorf("event type = %s, want: UPDATE", d.Event.Type)
		}
	}
}
