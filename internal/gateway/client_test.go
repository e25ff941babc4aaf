package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zigbridge/zigbridge/internal/channel"
)

func testTable(t *testing.T) *channel.Table {
	t.Helper()
	table, err := channel.NewTable([]*channel.Channel{reversedChannel(t)})
	if err != nil {
		t.Fatalf("channel.NewTable() error = %v", err)
	}
	return table
}

// TestClientRelayPassthrough tests relay decisions without a network connection
func TestClientRelayPassthrough(t *testing.T) {
	c := NewClient("ws://unused", "", testTable(t), nil)

	// Managed channel: transformed.
	out, ok := c.relay(CommandMessage{Channel: "blind:level", Kind: KindPercent, Value: "80"})
	if !ok {
		t.Fatal("relay() dropped a valid managed command")
	}
	if out.Value != "20" {
		t.Errorf("relay() value = %q, want 20", out.Value)
	}

	// Unmanaged channel: passed through unchanged.
	out, ok = c.relay(CommandMessage{Channel: "lamp:switch", Kind: KindOnOff, Value: "ON"})
	if !ok {
		t.Fatal("relay() dropped a command for an unmanaged channel")
	}
	if out.Value != "ON" {
		t.Errorf("relay() passthrough value = %q, want ON", out.Value)
	}

	// Malformed message: dropped.
	if _, ok = c.relay(CommandMessage{Channel: "", Kind: KindOnOff, Value: "ON"}); ok {
		t.Error("relay() forwarded a malformed command")
	}
	if _, ok = c.relay(CommandMessage{Channel: "blind:level", Kind: KindPercent, Value: "200"}); ok {
		t.Error("relay() forwarded an out-of-range percent command")
	}
}

// TestClientConnectAndRun tests the full round trip against a fake gateway
func TestClientConnectAndRun(t *testing.T) {
	upgrader := websocket.Upgrader{}
	gotAuth := make(chan string, 1)
	received := make(chan CommandMessage, 4)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth <- r.Header.Get("Authorization")

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		// Publish commands and collect the relayed replies.
		outgoing := []CommandMessage{
			{Channel: "blind:level", Kind: KindPercent, Value: "75"},
			{Channel: "blind:level", Kind: KindOnOff, Value: "ON"},
			{Channel: "lamp:switch", Kind: KindOnOff, Value: "OFF"},
		}
		for _, msg := range outgoing {
			if err := conn.WriteJSON(msg); err != nil {
				t.Errorf("server write failed: %v", err)
				return
			}
		}

		for range outgoing {
			var reply CommandMessage
			if err := conn.ReadJSON(&reply); err != nil {
				t.Errorf("server read failed: %v", err)
				return
			}
			received <- reply
		}
	}))
	defer server.Close()

	endpoint := "ws" + strings.TrimPrefix(server.URL, "http")
	client := NewClient(endpoint, "secret-token", testTable(t), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Connect(ctx); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	runDone := make(chan error, 1)
	go func() { runDone <- client.Run(ctx) }()

	if auth := <-gotAuth; auth != "Bearer secret-token" {
		t.Errorf("Authorization header = %q, want Bearer secret-token", auth)
	}

	want := []CommandMessage{
		{Channel: "blind:level", Kind: KindPercent, Value: "25"},
		{Channel: "blind:level", Kind: KindOnOff, Value: "OFF"},
		{Channel: "lamp:switch", Kind: KindOnOff, Value: "OFF"},
	}
	for i, w := range want {
		select {
		case got := <-received:
			if got != w {
				t.Errorf("reply %d = %+v, want %+v", i, got, w)
			}
		case <-ctx.Done():
			t.Fatal("timed out waiting for relayed commands")
		}
	}

	cancel()
	select {
	case <-runDone:
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancellation")
	}
}

// TestClientRunWithoutConnect tests the guard against running unconnected
func TestClientRunWithoutConnect(t *testing.T) {
	client := NewClient("ws://unused", "", testTable(t), nil)
	if err := client.Run(context.Background()); err == nil {
		t.Error("Run() without Connect() succeeded, want error")
	}
}

// TestClientConnectRefused tests the error path for an unreachable gateway
func TestClientConnectRefused(t *testing.T) {
	client := NewClient("ws://127.0.0.1:1/api/commands", "", testTable(t), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Connect(ctx); err == nil {
		t.Error("Connect() to closed port succeeded, want error")
		client.Close()
	}
}
