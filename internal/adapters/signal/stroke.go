package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/kamv/boardcast/internal/core"
	"github.com/kamv/boardcast/internal/domain"
)

// handleBegin opens a live stroke: an empty record goes into the log and
// everyone else learns about it.
func (ctl *SignalWSController) handleBegin(sid core.SessionID, data []byte) {
	var p beginMsg
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad op-begin payload")
		return
	}
	room, ok := ctl.Orch.RoomBySID(sid)
	if !ok {
		return
	}

	stroke, err := domain.NewStroke(p.ID, domain.UserID(p.UserID), p.Color, p.Size, domain.Tool(p.Tool))
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("stroke", p.ID).Msg("rejected op-begin")
		return
	}
	room.Board().Append(stroke)

	ctl.broadcast(room, sid, beginEvent{Type: "begin", Stroke: *stroke})
}

// handlePoints extends a live stroke. An unknown id mutates nothing but the
// batch is still forwarded; receivers ignore it the same way the log did.
// Points arriving after op-end are applied too, so out-of-order delivery
// loses no ink.
func (ctl *SignalWSController) handlePoints(sid core.SessionID, data []byte) {
	var p pointsMsg
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad op-points payload")
		return
	}
	room, ok := ctl.Orch.RoomBySID(sid)
	if !ok {
		return
	}

	if !room.Board().Extend(p.ID, p.Pts) {
		log.Debug().Str("module", "signal").Str("stroke", p.ID).Msg("points for unknown stroke")
	}

	ctl.broadcast(room, sid, pointEvent{Type: "point", ID: p.ID, Pts: p.Pts})
}

// handleEnd is informational: the log keeps the stroke as-is, peers just
// hear that the gesture finished.
func (ctl *SignalWSController) handleEnd(sid core.SessionID, data []byte) {
	var p endMsg
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad op-end payload")
		return
	}
	room, ok := ctl.Orch.RoomBySID(sid)
	if !ok {
		return
	}

	ctl.broadcast(room, sid, endEvent{Type: "end", ID: p.ID})
}
