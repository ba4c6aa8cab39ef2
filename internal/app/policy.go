package app

import "github.com/kamv/boardcast/internal/core"

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	DropFrame
	KickMember
)

// Policy decides what happens to receivers that could not take a broadcast
// frame.
type Policy interface {
	OnSlow(room core.RoomService, sid core.SessionID) BackpressureAction
	OnGone(room core.RoomService, sid core.SessionID) BackpressureAction
}

// SimplePolicy matches the at-most-once nature of drawing updates: a slow
// receiver just misses the frame, a closed one is evicted from the room.
type SimplePolicy struct{}

func (SimplePolicy) OnSlow(room core.RoomService, sid core.SessionID) BackpressureAction {
	return DropFrame
}

func (SimplePolicy) OnGone(room core.RoomService, sid core.SessionID) BackpressureAction {
	return KickMember
}
