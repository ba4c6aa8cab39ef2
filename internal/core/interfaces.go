package core

import (
	"errors"

	"github.com/kamv/boardcast/internal/domain"
)

// Frame is one serialized protocol message. A broadcast marshals the
// message once and every recipient gets the identical bytes.
type Frame []byte

type SessionID string

var (
	// ErrConnClosed means the underlying transport is gone for good.
	ErrConnClosed = errors.New("connection closed")
	// ErrBackpressure means the receiver's send buffer is full right now.
	ErrBackpressure = errors.New("backpressure")
)

// SignalConnection abstracts a system messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// MemberSession binds a participant identity and its transport endpoint.
// This is what a room stores and fans out to.
type MemberSession interface {
	User() *domain.User
	Signal() SignalConnection
}

// PublishResult reports delivery stats per broadcast. Slow receivers had a
// full buffer (frame dropped, no retry); gone receivers are closed and
// should be cleaned up by the caller.
type PublishResult struct {
	SentTo int
	Slow   []SessionID
	Gone   []SessionID
}

// MemberDTO is a read-only view for APIs (no transport fields).
type MemberDTO struct {
	ID       domain.UserID `json:"userId"`
	Username string        `json:"username"`
	Color    string        `json:"color"`
}

// RoomService is the core-facing API of a room. It owns the membership set,
// the user directory, and the stroke log, but never touches transport
// resources.
type RoomService interface {
	Room() *domain.Room
	MemberCount() int

	AddMember(sid SessionID, ms MemberSession)
	RemoveMember(sid SessionID)

	// Broadcast sends data to every open member except from. A zero from
	// excludes nobody.
	Broadcast(from SessionID, data Frame) PublishResult

	// Board is the room's authoritative stroke log.
	Board() *Board

	// SetUser records or overwrites a hello identity in the directory.
	SetUser(u domain.User)
	Users() []MemberDTO
}

type RoomInfo struct {
	ID          domain.RoomID `json:"id"`
	MemberCount int           `json:"client_count"`
	StrokeCount int           `json:"stroke_count"`
}

type RoomFactory interface {
	GetOrCreate(id domain.RoomID) RoomService
	List() []RoomInfo
}
