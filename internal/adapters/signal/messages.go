package signal

import (
	"github.com/kamv/boardcast/internal/core"
	"github.com/kamv/boardcast/internal/domain"
)

// Wire shapes for the room sync protocol. Every message carries a "type"
// tag; unknown fields are ignored and unknown types are dropped by the
// dispatcher. The set of types is closed, one struct per variant.

type envelope struct {
	Type string `json:"type"`
}

// --- inbound (client -> server) ---

type helloMsg struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Color    string `json:"color"`
	// BoardID mirrors what clients send; the room is fixed by the
	// connection-time query parameter, so it is not consulted here.
	BoardID string `json:"boardId"`
}

type beginMsg struct {
	ID     string  `json:"id"`
	UserID string  `json:"userId"`
	Color  string  `json:"color"`
	Size   float64 `json:"size"`
	Tool   string  `json:"tool"`
}

type pointsMsg struct {
	ID  string         `json:"id"`
	Pts []domain.Point `json:"pts"`
}

type endMsg struct {
	ID string `json:"id"`
}

type cursorMsg struct {
	UserID   string  `json:"userId"`
	Username string  `json:"username"`
	Color    string  `json:"color"`
	NX       float64 `json:"nx"`
	NY       float64 `json:"ny"`
}

// --- outbound (server -> client) ---

type snapshotEvent struct {
	Type    string          `json:"type"`
	Strokes []domain.Stroke `json:"strokes"`
}

type beginEvent struct {
	Type   string        `json:"type"`
	Stroke domain.Stroke `json:"stroke"`
}

type pointEvent struct {
	Type string         `json:"type"`
	ID   string         `json:"id"`
	Pts  []domain.Point `json:"pts"`
}

type endEvent struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// signalEvent covers undo and redo: type tag only, receivers are expected
// to pull a fresh snapshot.
type signalEvent struct {
	Type string `json:"type"`
}

type cursorEvent struct {
	Type     string  `json:"type"`
	UserID   string  `json:"userId"`
	Username string  `json:"username"`
	Color    string  `json:"color"`
	NX       float64 `json:"nx"`
	NY       float64 `json:"ny"`
}

type usersEvent struct {
	Type  string           `json:"type"`
	Users []core.MemberDTO `json:"users"`
}

type presenceEvent struct {
	Type  string `json:"type"`
	Users int    `json:"users"`
}
