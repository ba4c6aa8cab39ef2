package domain

import "errors"

var ErrStrokeSize = errors.New("stroke size must be positive")

// Tool selects how a stroke is composited by the renderer.
type Tool string

const (
	ToolBrush  Tool = "brush"
	ToolEraser Tool = "eraser"
)

// Point is one sampled canvas coordinate plus its capture time in unix
// milliseconds. Immutable once recorded.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	T int64   `json:"t"`
}

// Stroke is one continuous drawing gesture. Points only ever grow while the
// stroke is live; Tombstoned hides the stroke from renderers but the record
// stays in the room log so redo can bring it back.
type Stroke struct {
	ID         string  `json:"id"`
	AuthorID   UserID  `json:"authorId"`
	Color      string  `json:"color"`
	Size       float64 `json:"size"`
	Tool       Tool    `json:"tool"`
	Points     []Point `json:"points"`
	Tombstoned bool    `json:"tombstoned"`
}

// NewStroke validates style metadata and returns a live stroke with no
// points yet. Unknown tools fall back to the brush.
func NewStroke(id string, author UserID, color string, size float64, tool Tool) (*Stroke, error) {
	if size <= 0 {
		return nil, ErrStrokeSize
	}
	if tool != ToolEraser {
		tool = ToolBrush
	}
	return &Stroke{
		ID:       id,
		AuthorID: author,
		Color:    color,
		Size:     size,
		Tool:     tool,
		Points:   []Point{},
	}, nil
}
