package core

import (
	"testing"

	"github.com/kamv/boardcast/internal/domain"
)

func mustStroke(t *testing.T, id string) *domain.Stroke {
	t.Helper()
	s, err := domain.NewStroke(id, "u1", "#112233", 4, domain.ToolBrush)
	if err != nil {
		t.Fatalf("NewStroke(%q): %v", id, err)
	}
	return s
}

func TestSnapshotPreservesAppendOrder(t *testing.T) {
	b := NewBoard()
	ids := []string{"s1", "s2", "s3", "s4"}
	for _, id := range ids {
		b.Append(mustStroke(t, id))
	}

	// Interleaved mutations must never reorder or remove records.
	b.Extend("s2", []domain.Point{{X: 1, Y: 2, T: 10}})
	b.UndoLast()
	b.RedoLast()
	b.UndoLast()

	snap := b.Snapshot()
	if len(snap) != len(ids) {
		t.Fatalf("snapshot has %d strokes, want %d", len(snap), len(ids))
	}
	for i, id := range ids {
		if snap[i].ID != id {
			t.Errorf("snapshot[%d].ID = %q, want %q", i, snap[i].ID, id)
		}
	}
}

func TestUndoTombstonesNewestVisible(t *testing.T) {
	b := NewBoard()
	b.Append(mustStroke(t, "s1"))
	b.Append(mustStroke(t, "s2"))

	if !b.UndoLast() {
		t.Fatal("UndoLast() = false, want true")
	}
	snap := b.Snapshot()
	if snap[0].Tombstoned || !snap[1].Tombstoned {
		t.Errorf("after one undo: s1.Tombstoned=%v s2.Tombstoned=%v, want false/true",
			snap[0].Tombstoned, snap[1].Tombstoned)
	}

	if !b.UndoLast() {
		t.Fatal("second UndoLast() = false, want true")
	}
	snap = b.Snapshot()
	if !snap[0].Tombstoned || !snap[1].Tombstoned {
		t.Errorf("after two undos: s1.Tombstoned=%v s2.Tombstoned=%v, want true/true",
			snap[0].Tombstoned, snap[1].Tombstoned)
	}
}

func TestRedoRestoresOldestTombstoned(t *testing.T) {
	b := NewBoard()
	b.Append(mustStroke(t, "s1"))
	b.Append(mustStroke(t, "s2"))
	b.UndoLast()
	b.UndoLast()

	if !b.RedoLast() {
		t.Fatal("RedoLast() = false, want true")
	}
	snap := b.Snapshot()
	if snap[0].Tombstoned {
		t.Error("s1 should be restored first (oldest tombstoned)")
	}
	if !snap[1].Tombstoned {
		t.Error("s2 must still be tombstoned")
	}
}

func TestUndoIsIdempotentWhenAllTombstoned(t *testing.T) {
	b := NewBoard()
	b.Append(mustStroke(t, "s1"))
	b.UndoLast()

	if b.UndoLast() {
		t.Error("UndoLast() on fully tombstoned log = true, want false")
	}
	snap := b.Snapshot()
	if !snap[0].Tombstoned {
		t.Error("log changed by a no-op undo")
	}
}

func TestUndoOnEmptyLog(t *testing.T) {
	b := NewBoard()
	if b.UndoLast() {
		t.Error("UndoLast() on empty log = true, want false")
	}
	if b.RedoLast() {
		t.Error("RedoLast() on empty log = true, want false")
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	b := NewBoard()
	b.Append(mustStroke(t, "s1"))
	b.Append(mustStroke(t, "s2"))
	b.UndoLast()

	before := b.Snapshot()
	b.UndoLast()
	b.RedoLast()
	after := b.Snapshot()

	for i := range before {
		if before[i].Tombstoned != after[i].Tombstoned {
			t.Errorf("stroke %q tombstone = %v after round trip, want %v",
				after[i].ID, after[i].Tombstoned, before[i].Tombstoned)
		}
	}
}

func TestExtendUnknownIDIsNoOp(t *testing.T) {
	b := NewBoard()
	b.Append(mustStroke(t, "s2"))

	if b.Extend("s1", []domain.Point{{X: 1, Y: 1, T: 100}}) {
		t.Error("Extend of unknown id = true, want false")
	}
	snap := b.Snapshot()
	if len(snap) != 1 || snap[0].ID != "s2" {
		t.Errorf("log changed by extending unknown id: %+v", snap)
	}
	if len(snap[0].Points) != 0 {
		t.Errorf("s2 gained %d points, want 0", len(snap[0].Points))
	}
}

func TestExtendNewestDuplicateWins(t *testing.T) {
	b := NewBoard()
	b.Append(mustStroke(t, "dup"))
	b.Append(mustStroke(t, "dup"))

	b.Extend("dup", []domain.Point{{X: 3, Y: 4, T: 7}})

	snap := b.Snapshot()
	if len(snap[0].Points) != 0 {
		t.Error("older duplicate received points")
	}
	if len(snap[1].Points) != 1 {
		t.Errorf("newer duplicate has %d points, want 1", len(snap[1].Points))
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	b := NewBoard()
	b.Append(mustStroke(t, "s1"))
	b.Extend("s1", []domain.Point{{X: 1, Y: 1, T: 1}})

	snap := b.Snapshot()
	snap[0].Tombstoned = true
	snap[0].Points[0].X = 99

	fresh := b.Snapshot()
	if fresh[0].Tombstoned {
		t.Error("mutating a snapshot changed the log's tombstone")
	}
	if fresh[0].Points[0].X != 1 {
		t.Error("mutating a snapshot changed the log's points")
	}
}
