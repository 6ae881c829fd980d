package realtime_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ferdiebergado/finderid/internal/platform/realtime"
	"go.uber.org/goleak"
)

func startHub(t *testing.T, buffer int) (*realtime.Hub, func()) {
	t.Helper()

	hub := realtime.NewHub(buffer)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		if err := hub.Run(ctx); err != nil {
			t.Errorf("hub.Run() = %v", err)
		}
	}()

	return hub, func() {
		cancel()
		<-stopped
	}
}

func receive(t *testing.T, c *realtime.Client) realtime.ChangeEvent {
	t.Helper()

	select {
	case frame, ok := <-c.Send():
		if !ok {
			t.Fatal("client send channel closed")
		}
		var evt realtime.ChangeEvent
		if err := json.Unmarshal(frame, &evt); err != nil {
			t.Fatalf("decode frame: %v", err)
		}
		return evt
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return realtime.ChangeEvent{}
}

func TestHub_DeliversToEveryClientOfUser(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub, stop := startHub(t, 8)
	defer stop()

	phone := realtime.NewClient("user-1", 4)
	laptop := realtime.NewClient("user-1", 4)
	other := realtime.NewClient("user-2", 4)
	for _, c := range []*realtime.Client{phone, laptop, other} {
		if !hub.Register(c) {
			t.Fatal("hub.Register() = false")
		}
	}

	if got := hub.Connected("user-1"); got != 2 {
		t.Fatalf("hub.Connected(user-1) = %d, want: 2", got)
	}

	hub.Publish("user-1", realtime.ChangeEvent{Table: "notifications", Type: realtime.EventInsert})

	for _, c := range []*realtime.Client{phone, laptop} {
		evt := receive(t, c)
		if evt.Table != "notifications" || evt.Type != realtime.EventInsert {
			t.Errorf("evt = %+v, want notifications INSERT", evt)
		}
		if evt.Timestamp.IsZero() {
			t.Error("evt.Timestamp is zero")
		}
	}

	select {
	case frame := <-other.Send():
		t.Errorf("user-2 received %s", frame)
	default:
	}
}

func TestHub_UnregisterAndStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub, stop := startHub(t, 8)

	c := realtime.NewClient("user-1", 1)
	hub.Register(c)
	hub.Unregister(c)

	if _, ok := <-c.Send(); ok {
		t.Error("send channel open after unregister")
	}

	if got := hub.Connected("user-1"); got != 0 {
		t.Errorf("hub.Connected(user-1) = %d, want: 0", got)
	}

	remaining := realtime.NewClient("user-3", 1)
	hub.Register(remaining)
	stop()

	if _, ok := <-remaining.Send(); ok {
		t.Error("send channel open after hub stopped")
	}

	if hub.Register(realtime.NewClient("user-4", 1)) {
		t.Error("hub.Register() after stop = true, want: false")
	}

	// Publishing to a stopped hub must not block.
	hub.Publish("user-1", realtime.ChangeEvent{Table: "messages", Type: realtime.EventInsert})
}

func TestHub_DropsSlowClient(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub, stop := startHub(t, 8)
	defer stop()

	slow := realtime.NewClient("user-1", 1)
	hub.Register(slow)

	hub.Publish("user-1", realtime.ChangeEvent{Table: "messages", Type: realtime.EventInsert})
	hub.Publish("user-1", realtime.ChangeEvent{Table: "messages", Type: realtime.EventUpdate})

	deadline := time.After(time.Second)
	for hub.Connected("user-1") != 0 {
		select {
		case <-deadline:
			t.Fatal("slow client was not dropped")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if evt := receive(t, slow); evt.Type != realtime.EventInsert {
		t.Errorf("first event = %v, want: %v", evt.Type, realtime.EventInsert)
	}

	if _, ok := <-slow.Send(); ok {
		t.Error("slow client send channel still open")
	}
}
