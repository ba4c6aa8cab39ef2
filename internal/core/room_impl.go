package core

import (
	"errors"
	"sync"

	"github.com/kamv/boardcast/internal/domain"
	"github.com/rs/zerolog/log"
)

// roomImpl is a threadsafe in-memory room: membership set, hello directory
// and the stroke log. It never closes adapter-owned resources.
type roomImpl struct {
	room  *domain.Room
	board *Board

	mu    sync.RWMutex
	bySID map[SessionID]MemberSession
	users map[domain.UserID]domain.User
}

func NewRoomService(room *domain.Room) RoomService {
	return &roomImpl{
		room:  room,
		board: NewBoard(),
		bySID: make(map[SessionID]MemberSession),
		users: make(map[domain.UserID]domain.User),
	}
}

func (r *roomImpl) Room() *domain.Room { return r.room }
func (r *roomImpl) Board() *Board      { return r.board }

func (r *roomImpl) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bySID)
}

func (r *roomImpl) AddMember(sid SessionID, ms MemberSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bySID[sid] = ms
	log.Info().Str("module", "core.room").Str("room", string(r.room.ID)).Str("sid", string(sid)).Msg("member added")
}

func (r *roomImpl) RemoveMember(sid SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bySID, sid)
	log.Info().Str("module", "core.room").Str("room", string(r.room.ID)).Str("sid", string(sid)).Msg("member removed")
}

// SetUser records the identity announced by a hello. An existing entry for
// the same user id is overwritten.
func (r *roomImpl) SetUser(u domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
}

func (r *roomImpl) Users() []MemberDTO {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]MemberDTO, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, MemberDTO{ID: u.ID, Username: u.Username, Color: u.Color})
	}
	return out
}

// Broadcast hands the same frame to every member except from. Closed and
// saturated receivers are skipped, never retried; they come back in the
// result so the caller can clean up.
func (r *roomImpl) Broadcast(from SessionID, data Frame) PublishResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := PublishResult{}
	for sid, m := range r.bySID {
		if sid == from {
			continue
		}
		if err := m.Signal().TrySend(data); err != nil {
			if errors.Is(err, ErrConnClosed) {
				res.Gone = append(res.Gone, sid)
			} else {
				res.Slow = append(res.Slow, sid)
			}
			continue
		}
		res.SentTo++
	}
	log.Debug().Str("module", "core.room").Str("room", string(r.room.ID)).Str("from", string(from)).
		Int("sent_to", res.SentTo).Int("slow", len(res.Slow)).Int("gone", len(res.Gone)).Msg("broadcast result")
	return res
}
