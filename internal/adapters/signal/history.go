package signal

import (
	"github.com/kamv/boardcast/internal/core"
)

// handleGetSnapshot is a pull, not a room event: the full log goes back to
// the asker only, tombstoned records included.
func (ctl *SignalWSController) handleGetSnapshot(sid core.SessionID, conn core.SignalConnection) {
	room, ok := ctl.Orch.RoomBySID(sid)
	if !ok {
		return
	}
	ctl.sendJSON(conn, snapshotEvent{Type: "snapshot", Strokes: room.Board().Snapshot()})
}

// handleUndo tombstones the newest visible stroke, no matter whose it was,
// then tells the whole room (sender included) that state changed. Clients
// re-pull a snapshot rather than receiving the new state inline.
func (ctl *SignalWSController) handleUndo(sid core.SessionID) {
	room, ok := ctl.Orch.RoomBySID(sid)
	if !ok {
		return
	}
	room.Board().UndoLast()
	ctl.broadcast(room, "", signalEvent{Type: "undo"})
}

// handleRedo restores the oldest tombstoned stroke and signals the room the
// same way undo does.
func (ctl *SignalWSController) handleRedo(sid core.SessionID) {
	room, ok := ctl.Orch.RoomBySID(sid)
	if !ok {
		return
	}
	room.Board().RedoLast()
	ctl.broadcast(room, "", signalEvent{Type: "redo"})
}
