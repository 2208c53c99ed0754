package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dukerupert/seedstudio/internal/model"
)

// mockClient creates a Client with a send channel but no real connection.
func mockClient(hub *Hub) *Client {
	return &Client{
		hub:  hub,
		conn: nil,
		send: make(chan []byte, sendBufferSize),
	}
}

func TestRegisterUnregister(t *testing.T) {
	hub := NewHub(slog.Default())

	c1 := mockClient(hub)
	c2 := mockClient(hub)

	hub.Register(c1)
	hub.Register(c2)

	if got := hub.ClientCount(); got != 2 {
		t.Fatalf("expected 2 clients, got %d", got)
	}

	hub.Unregister(c1)

	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("expected 1 client after unregister, got %d", got)
	}

	hub.Unregister(c2)

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients, got %d", got)
	}
}

func TestDoubleUnregister(t *testing.T) {
	hub := NewHub(slog.Default())
	c := mockClient(hub)
	hub.Register(c)
	hub.Unregister(c)
	// Should not panic
	hub.Unregister(c)

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients, got %d", got)
	}
}

func TestBroadcast(t *testing.T) {
	hub := NewHub(slog.Default())

	c1 := mockClient(hub)
	c2 := mockClient(hub)
	hub.Register(c1)
	hub.Register(c2)

	msg := NewMessage("seed", "created", "s-42", map[string]any{"packetCount": float64(3)})
	hub.Broadcast(msg)

	// Check both clients received the message
	for _, c := range []*Client{c1, c2} {
		select {
		case data := <-c.send:
			var got Message
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Type != "seed_created" {
				t.Errorf("expected type seed_created, got %s", got.Type)
			}
			if got.Entity != "seed" {
				t.Errorf("expected entity seed, got %s", got.Entity)
			}
			if got.ID != "s-42" {
				t.Errorf("expected id s-42, got %s", got.ID)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatal("timeout waiting for message")
		}
	}

	hub.Unregister(c1)
	hub.Unregister(c2)
}

func TestBroadcastEmptyHub(t *testing.T) {
	hub := NewHub(slog.Default())
	// Should not panic
	msg := NewMessage("log", "deleted", "l-1", nil)
	hub.Broadcast(msg)
}

func TestBroadcastFullBuffer(t *testing.T) {
	hub := NewHub(slog.Default())

	c := mockClient(hub)
	hub.Register(c)

	// Fill the send buffer
	for i := 0; i < sendBufferSize; i++ {
		hub.Broadcast(NewMessage("test", "fill", "", nil))
	}

	// This should drop the message, not panic or block
	hub.Broadcast(NewMessage("test", "dropped", "", nil))

	// Drain to verify buffer was full
	count := 0
	for {
		select {
		case <-c.send:
			count++
		default:
			goto done
		}
	}
done:
	if count != sendBufferSize {
		t.Errorf("expected %d messages, got %d", sendBufferSize, count)
	}

	hub.Unregister(c)
}

func TestNewMessage(t *testing.T) {
	msg := NewMessage("journal_entry", "updated", "j-5", nil)
	if msg.Type != "journal_entry_updated" {
		t.Errorf("expected type journal_entry_updated, got %s", msg.Type)
	}
	if msg.Entity != "journal_entry" {
		t.Errorf("expected entity journal_entry, got %s", msg.Entity)
	}
	if msg.Action != "updated" {
		t.Errorf("expected action updated, got %s", msg.Action)
	}
	if msg.ID != "j-5" {
		t.Errorf("expected id j-5, got %s", msg.ID)
	}
}

func TestConcurrentAccess(t *testing.T) {
	hub := NewHub(slog.Default())
	var wg sync.WaitGroup

	// Spawn goroutines that register, broadcast, and unregister concurrently
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := mockClient(hub)
			hub.Register(c)
			hub.Broadcast(NewMessage("test", "concurrent", "", nil))
			// Drain any messages
			for {
				select {
				case <-c.send:
				default:
					hub.Unregister(c)
					return
				}
			}
		}()
	}

	wg.Wait()

	if got := hub.ClientCount(); got != 0 {
		t.Errorf("expected 0 clients after concurrent test, got %d", got)
	}
}

func TestNotify(t *testing.T) {
	hub := NewHub(nil)
	c := mockClient(hub)
	hub.Register(c)
	defer hub.Unregister(c)

	hub.Notify(model.Notification{Kind: model.NotifyLowStock, Title: "Low Stock Alert", Description: "Basil is running low."})

	select {
	case data := <-c.send:
		var got Message
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got.Type != "notification" {
			t.Errorf("type = %q, want notification", got.Type)
		}
		if got.Notification == nil || got.Notification.Title != "Low Stock Alert" {
			t.Errorf("notification = %+v", got.Notification)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for notification")
	}
}

func TestRegisterReplaysRecentNotifications(t *testing.T) {
	hub := NewHub(nil)
	now := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)
	hub.now = func() time.Time { return now }

	hub.Notify(model.Notification{Kind: model.NotifyInfo, Title: "Old"})
	now = now.Add(replayWindow + time.Second)
	hub.Notify(model.Notification{Kind: model.NotifyLowStock, Title: "Low Stock Alert"})
	hub.Broadcast(NewMessage("seed", "updated", "s1", nil))

	c := mockClient(hub)
	hub.Register(c)
	defer hub.Unregister(c)

	if got := len(c.send); got != 1 {
		t.Fatalf("replayed %d messages, want 1", got)
	}
	var got Message
	if err := json.Unmarshal(<-c.send, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Notification == nil || got.Notification.Title != "Low Stock Alert" {
		t.Errorf("replayed %+v, want the low stock alert", got.Notification)
	}
}

func TestReplayKeepsOnlyLatest(t *testing.T) {
	hub := NewHub(nil)
	for i := 0; i < replayLimit+3; i++ {
		hub.Notify(model.Notification{Kind: model.NotifyInfo, Title: "n"})
	}
	if got := len(hub.recent); got != replayLimit {
		t.Fatalf("kept %d notifications, want %d", got, replayLimit)
	}

	c := mockClient(hub)
	hub.Register(c)
	defer hub.Unregister(c)
	if got := len(c.send); got != replayLimit {
		t.Errorf("replayed %d messages, want %d", got, replayLimit)
	}
}
