package signal

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/kamv/boardcast/internal/app"
	"github.com/kamv/boardcast/internal/config"
	"github.com/kamv/boardcast/internal/core"
	"github.com/kamv/boardcast/internal/domain"
)

// SignalWSController owns the websocket side of room sync: the upgrade, the
// per-connection pumps and the protocol dispatch.
type SignalWSController struct {
	Orch *app.Orchestrator
	Cfg  *config.Config
}

func NewSignalWSController(orch *app.Orchestrator, cfg *config.Config) *SignalWSController {
	return &SignalWSController{Orch: orch, Cfg: cfg}
}

// WsSignalConn wraps a websocket with a bounded send queue. TrySend never
// blocks: a full queue or a closed connection is the sender's problem to
// report, not to wait out.
type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return core.ErrConnClosed
	}
	select {
	case c.send <- f:
	default:
		return core.ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal upgrades the request and attaches the session to the board
// named by the connection-time query parameter.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	boardID := domain.RoomID(c.Query("board"))
	if boardID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	// The cookie token is stable across tabs and reconnects, so it cannot
	// key the session on its own: each connection gets a fresh suffix, and
	// two tabs of one browser stay two independent room members.
	token := c.GetString("client_token")
	sid := core.SessionID(token + ":" + uuid.NewString())
	log.Info().Str("module", "signal").Str("token", token).Str("sid", string(sid)).Str("board", string(boardID)).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade")
		return
	}
	ws.SetReadLimit(ctl.Cfg.ReadLimit)

	conn := &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, ctl.Cfg.SendBuffer),
	}

	user := ctl.Orch.Registry.GetOrCreateUser(sid)
	sess := core.NewMemberSession(user, conn)
	ctx, cancel := context.WithCancel(ctx)
	ctl.Orch.Registry.BindSession(sid, boardID, sess, cancel)

	room := ctl.Orch.Join(sid, boardID)
	ctl.broadcast(room, "", presenceEvent{Type: "presence", Users: room.MemberCount()})

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, sid, conn)
}
