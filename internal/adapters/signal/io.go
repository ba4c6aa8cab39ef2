package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/kamv/boardcast/internal/core"
)

func (ctl *SignalWSController) writePump(ctx context.Context, c *WsSignalConn) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				log.Warn().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.Cfg.WriteWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *SignalWSController) readPump(ctx context.Context, sid core.SessionID, c *WsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump closing")
		c.Close()
		ctl.teardown(sid)
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Info().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("readPump read error")
				return
			}
			ctl.dispatch(sid, c, data)
		}
	}
}

// dispatch routes one inbound message by its type tag. Malformed payloads
// and unknown types are dropped; a misbehaving sender never gets a nack and
// never takes the room down.
func (ctl *SignalWSController) dispatch(sid core.SessionID, conn core.SignalConnection, data []byte) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad json")
		return
	}

	switch env.Type {
	case "hello":
		ctl.handleHello(sid, data)
	case "get-snapshot":
		ctl.handleGetSnapshot(sid, conn)
	case "op-begin":
		ctl.handleBegin(sid, data)
	case "op-points":
		ctl.handlePoints(sid, data)
	case "op-end":
		ctl.handleEnd(sid, data)
	case "undo":
		ctl.handleUndo(sid)
	case "redo":
		ctl.handleRedo(sid)
	case "cursor":
		ctl.handleCursor(sid, data)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown signal")
	}
}

// teardown runs once the read side is gone: leave the room and tell the
// rest of it.
func (ctl *SignalWSController) teardown(sid core.SessionID) {
	room, ok := ctl.Orch.Leave(sid)
	if !ok {
		return
	}
	ctl.broadcast(room, "", presenceEvent{Type: "presence", Users: room.MemberCount()})
}

// broadcast marshals v once and fans the identical bytes out to the room.
// A zero exclude delivers to every member, the sender included.
func (ctl *SignalWSController) broadcast(room core.RoomService, exclude core.SessionID, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("broadcast marshal")
		return
	}
	ctl.Orch.Fanout(room, exclude, b)
}

// sendJSON answers one session point-to-point, off the broadcast path.
func (ctl *SignalWSController) sendJSON(conn core.SignalConnection, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = conn.TrySend(b)
}
