package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/kamv/boardcast/internal/core"
	"github.com/kamv/boardcast/internal/domain"
)

// handleHello attaches identity to the session and overwrites the room's
// directory entry for that user id. The fresh roster goes to everyone,
// sender included.
func (ctl *SignalWSController) handleHello(sid core.SessionID, data []byte) {
	var p helloMsg
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad hello payload")
		return
	}
	room, ok := ctl.Orch.RoomBySID(sid)
	if !ok {
		return
	}

	if err := ctl.Orch.Registry.UpdateIdentity(sid, domain.UserID(p.UserID), p.Username, p.Color); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("rejected hello")
		return
	}
	user := ctl.Orch.Registry.GetOrCreateUser(sid)
	room.SetUser(*user)

	ctl.broadcast(room, "", usersEvent{Type: "users", Users: room.Users()})
}

// handleCursor relays pointer positions. Ephemeral: nothing is logged, the
// sender does not hear its own cursor back.
func (ctl *SignalWSController) handleCursor(sid core.SessionID, data []byte) {
	var p cursorMsg
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad cursor payload")
		return
	}
	room, ok := ctl.Orch.RoomBySID(sid)
	if !ok {
		return
	}

	ctl.broadcast(room, sid, cursorEvent{
		Type:     "cursor",
		UserID:   p.UserID,
		Username: p.Username,
		Color:    p.Color,
		NX:       p.NX,
		NY:       p.NY,
	})
}
