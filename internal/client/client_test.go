package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestStateString(t *testing.T) {
	cases := map[State]string{
		StateDisconnected: "disconnected",
		StateConnecting:   "connecting",
		StateSynced:       "synced",
		State(42):         "unknown",
	}
	for s, want := range cases {
		if s.String() != want {
			t.Errorf("State(%d).String() = %q, want %q", s, s.String(), want)
		}
	}
}

func TestNextBackoffClamps(t *testing.T) {
	d := initialBackoff
	for i := 0; i < 20; i++ {
		d = nextBackoff(d)
	}
	if d != maxBackoff {
		t.Errorf("backoff grew to %v, want clamp at %v", d, maxBackoff)
	}
}

func TestRunResyncsOnConnect(t *testing.T) {
	upgrader := websocket.Upgrader{}
	firstTwo := make(chan string, 2)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		for i := 0; i < 2; i++ {
			_, data, err := ws.ReadMessage()
			if err != nil {
				return
			}
			var env struct {
				Type string `json:"type"`
			}
			_ = json.Unmarshal(data, &env)
			firstTwo <- env.Type
		}
		// Hold the connection open until the client goes away.
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	c := New(url, Identity{UserID: "u1", Username: "bot", Color: "#123"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = c.Run(ctx) }()

	want := []string{"hello", "get-snapshot"}
	for _, w := range want {
		select {
		case got := <-firstTwo:
			if got != w {
				t.Fatalf("resync sent %q, want %q", got, w)
			}
		case <-time.After(3 * time.Second):
			t.Fatalf("timed out waiting for %q", w)
		}
	}

	deadline := time.Now().Add(3 * time.Second)
	for c.State() != StateSynced {
		if time.Now().After(deadline) {
			t.Fatalf("client state = %v, never reached synced", c.State())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	// No server listening: the client should cycle connecting->disconnected
	// and exit promptly once the context dies.
	c := New("ws://127.0.0.1:1/api/ws/board?board=r1", Identity{Username: "bot"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Error("Run returned nil after cancel")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
