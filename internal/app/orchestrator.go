package app

import (
	"github.com/kamv/boardcast/internal/core"
	"github.com/kamv/boardcast/internal/domain"
	"github.com/rs/zerolog/log"
)

// Orchestrator glues the session registry to the room table. Adapters talk
// to it instead of reaching into either directly; it holds no state of its
// own.
type Orchestrator struct {
	Registry *Registry
	Rooms    core.RoomFactory
	Policy   Policy
}

// Join puts an already-bound session into its room's membership set.
func (o *Orchestrator) Join(sid core.SessionID, roomID domain.RoomID) core.RoomService {
	room := o.Rooms.GetOrCreate(roomID)
	if session, ok := o.Registry.GetSession(sid); ok {
		room.AddMember(sid, session)
		log.Info().Str("module", "app.orch").Str("sid", string(sid)).Str("room", string(roomID)).Msg("added to room")
	}
	return room
}

// Leave removes the session from its room and forgets it. Returns the room
// it sat in so the caller can announce the departure.
func (o *Orchestrator) Leave(sid core.SessionID) (core.RoomService, bool) {
	roomID, _, ok := o.Registry.RoomOf(sid)
	if !ok {
		o.Registry.Unbind(sid)
		return nil, false
	}
	room := o.Rooms.GetOrCreate(roomID)
	room.RemoveMember(sid)
	o.Registry.Unbind(sid)
	return room, true
}

// RoomBySID resolves the room a session is bound to.
func (o *Orchestrator) RoomBySID(sid core.SessionID) (core.RoomService, bool) {
	roomID, _, ok := o.Registry.RoomOf(sid)
	if !ok {
		return nil, false
	}
	return o.Rooms.GetOrCreate(roomID), true
}

// Fanout broadcasts one frame within a room and applies the backpressure
// policy to receivers that missed it. A zero from delivers to everyone.
func (o *Orchestrator) Fanout(room core.RoomService, from core.SessionID, frame core.Frame) {
	res := room.Broadcast(from, frame)
	if o.Policy == nil {
		return
	}
	for _, sid := range res.Slow {
		if o.Policy.OnSlow(room, sid) == KickMember {
			o.kick(room, sid)
		}
	}
	for _, sid := range res.Gone {
		if o.Policy.OnGone(room, sid) == KickMember {
			o.kick(room, sid)
		}
	}
}

func (o *Orchestrator) kick(room core.RoomService, sid core.SessionID) {
	room.RemoveMember(sid)
	o.Registry.Cancel(sid)
	log.Warn().Str("module", "app.orch").Str("sid", string(sid)).Str("room", string(room.Room().ID)).Msg("kicked dead session")
}
