package core

import (
	"sync"

	"github.com/kamv/boardcast/internal/domain"
)

// Board is the authoritative stroke log for one room: an append-only,
// insertion-ordered sequence with tombstone soft-deletes. Records are never
// removed for the life of the process; undo and redo only toggle
// tombstones, so the full history stays replayable.
type Board struct {
	mu      sync.RWMutex
	strokes []*domain.Stroke
}

func NewBoard() *Board {
	return &Board{strokes: make([]*domain.Stroke, 0)}
}

// Append records a new live stroke at the end of the log. Ids are not
// checked for uniqueness; clients are trusted to generate unique ones.
func (b *Board) Append(s *domain.Stroke) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.strokes = append(b.strokes, s)
}

// Extend appends pts to the stroke with the given id and reports whether a
// stroke was found. The log is scanned newest-first, so when ids collide
// the most recently appended stroke wins. Unknown ids are a no-op; no
// stroke is implicitly created.
func (b *Board) Extend(id string, pts []domain.Point) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.strokes) - 1; i >= 0; i-- {
		if b.strokes[i].ID == id {
			b.strokes[i].Points = append(b.strokes[i].Points, pts...)
			return true
		}
	}
	return false
}

// UndoLast tombstones the most recently drawn visible stroke, regardless of
// who drew it. Reports whether anything changed; an empty or fully
// tombstoned log changes nothing.
func (b *Board) UndoLast() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.strokes) - 1; i >= 0; i-- {
		if !b.strokes[i].Tombstoned {
			b.strokes[i].Tombstoned = true
			return true
		}
	}
	return false
}

// RedoLast restores the oldest tombstoned stroke. Reports whether anything
// changed.
func (b *Board) RedoLast() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.strokes {
		if s.Tombstoned {
			s.Tombstoned = false
			return true
		}
	}
	return false
}

// Snapshot returns the log in append order, tombstoned records included so
// a renderer can filter for itself. The returned strokes are copies;
// mutating them does not touch the log.
func (b *Board) Snapshot() []domain.Stroke {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]domain.Stroke, len(b.strokes))
	for i, s := range b.strokes {
		c := *s
		c.Points = append([]domain.Point(nil), s.Points...)
		out[i] = c
	}
	return out
}

func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.strokes)
}
