// Package client is a reconnecting board client for bots and tests. The
// connection lifecycle is an explicit state machine: disconnected ->
// connecting -> synced, and every trip into synced starts with a fresh
// hello plus a snapshot pull, so a reconnect always converges on the
// room's current log.
package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var ErrNotSynced = errors.New("client not synced")

type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateSynced
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateSynced:
		return "synced"
	default:
		return "unknown"
	}
}

// Identity is what the client announces in its hello.
type Identity struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Color    string `json:"color"`
}

const (
	initialBackoff = 250 * time.Millisecond
	maxBackoff     = 8 * time.Second
)

// Client dials a board websocket endpoint and keeps the session alive
// across drops. OnMessage sees every inbound frame; it runs on the read
// goroutine, so it must not block.
type Client struct {
	URL       string
	Identity  Identity
	OnMessage func([]byte)

	mu    sync.RWMutex
	state State
	conn  *websocket.Conn
}

func New(url string, id Identity) *Client {
	return &Client{URL: url, Identity: id}
}

func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) setState(s State, conn *websocket.Conn) {
	c.mu.Lock()
	c.state = s
	c.conn = conn
	c.mu.Unlock()
	log.Debug().Str("module", "client").Str("state", s.String()).Msg("state change")
}

// Send marshals v onto the live connection. Only valid in synced state.
func (c *Client) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateSynced || c.conn == nil {
		return ErrNotSynced
	}
	return c.conn.WriteJSON(v)
}

// Run drives the state machine until ctx is canceled. Dial failures and
// dropped connections back off exponentially; a successful resync resets
// the backoff.
func (c *Client) Run(ctx context.Context) error {
	backoff := initialBackoff
	for {
		c.setState(StateConnecting, nil)
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.URL, nil)
		if err != nil {
			c.setState(StateDisconnected, nil)
			log.Warn().Err(err).Str("module", "client").Msg("dial failed")
			if err := sleep(ctx, backoff); err != nil {
				return err
			}
			backoff = nextBackoff(backoff)
			continue
		}

		if err := c.resync(conn); err != nil {
			_ = conn.Close()
			c.setState(StateDisconnected, nil)
			log.Warn().Err(err).Str("module", "client").Msg("resync failed")
			if err := sleep(ctx, backoff); err != nil {
				return err
			}
			backoff = nextBackoff(backoff)
			continue
		}

		c.setState(StateSynced, conn)
		backoff = initialBackoff

		c.readLoop(ctx, conn)
		_ = conn.Close()
		c.setState(StateDisconnected, nil)

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := sleep(ctx, backoff); err != nil {
			return err
		}
		backoff = nextBackoff(backoff)
	}
}

// resync is the mandatory connecting->synced transition: announce identity,
// then pull the full log.
func (c *Client) resync(conn *websocket.Conn) error {
	hello := struct {
		Type     string `json:"type"`
		UserID   string `json:"userId"`
		Username string `json:"username"`
		Color    string `json:"color"`
	}{"hello", c.Identity.UserID, c.Identity.Username, c.Identity.Color}
	if err := conn.WriteJSON(hello); err != nil {
		return err
	}
	return conn.WriteJSON(struct {
		Type string `json:"type"`
	}{"get-snapshot"})
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Info().Err(err).Str("module", "client").Msg("read loop ended")
			return
		}
		if c.OnMessage != nil {
			c.OnMessage(data)
		}
	}
}

func nextBackoff(d time.Duration) time.Duration {
	d *= 2
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
