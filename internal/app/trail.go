package app

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/dragstream/internal/input/button"
	"github.com/dshills/dragstream/internal/input/mouse"
)

// DefaultTrailLength is how many cells a trail keeps before the oldest
// are dropped.
const DefaultTrailLength = 512

// hueStep spaces the five buttons evenly around the color wheel.
const hueStep = 360.0 / 5

var trailBackground = colorful.Color{R: 0, G: 0, B: 0}

type trailCell struct {
	x, y  int
	color colorful.Color
}

// Trail is a mouse.GestureSink that remembers the cells a drag passed
// through, colored by the buttons held.
type Trail struct {
	cells []trailCell
	limit int
}

var _ mouse.GestureSink = (*Trail)(nil)

// NewTrail creates a trail holding at most limit cells.
func NewTrail(limit int) *Trail {
	if limit <= 0 {
		limit = DefaultTrailLength
	}
	return &Trail{limit: limit}
}

// HandleDrag implements mouse.GestureSink. The segment from the previous
// position to the current one is filled in so fast moves leave no gaps.
func (t *Trail) HandleDrag(s mouse.Sample) {
	c := ButtonColor(s.Buttons)
	x1, y1 := int(s.ScreenX), int(s.ScreenY)
	x0, y0 := int(s.ScreenX-s.Dx), int(s.ScreenY-s.Dy)
	line(x0, y0, x1, y1, func(x, y int) {
		t.cells = append(t.cells, trailCell{x: x, y: y, color: c})
	})
	if over := len(t.cells) - t.limit; over > 0 {
		t.cells = append(t.cells[:0], t.cells[over:]...)
	}
}

// Len returns the number of cells in the trail.
func (t *Trail) Len() int {
	return len(t.cells)
}

// Clear drops every cell.
func (t *Trail) Clear() {
	t.cells = t.cells[:0]
}

// Draw paints the trail, fading older cells toward the background.
func (t *Trail) Draw(screen tcell.Screen) {
	n := len(t.cells)
	for i, c := range t.cells {
		age := float64(n-1-i) / float64(t.limit)
		faded := c.color.BlendLab(trailBackground, age*0.8).Clamped()
		screen.SetContent(c.x, c.y, '█', nil, tcell.StyleDefault.Foreground(toTcell(faded)))
	}
}

// ButtonColor returns the trail color for a set of held buttons: one hue
// per button, blended when several are held.
func ButtonColor(mask button.Mask) colorful.Color {
	var (
		out colorful.Color
		n   int
	)
	for i, name := range []string{"left", "right", "middle", "back", "forward"} {
		if !mask.Has(button.Bits[name]) {
			continue
		}
		c := colorful.Hsv(float64(i)*hueStep, 0.7, 0.95)
		n++
		if n == 1 {
			out = c
		} else {
			out = out.BlendLab(c, 1/float64(n))
		}
	}
	if n == 0 {
		return colorful.Hsv(0, 0, 0.6)
	}
	return out.Clamped()
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// line calls plot for every cell on the segment from (x0,y0) to (x1,y1),
// excluding the start cell unless the segment is a single point.
func line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	if dx == 0 && dy == 0 {
		plot(x1, y1)
		return
	}
	err := dx + dy
	for x0 != x1 || y0 != y1 {
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
		plot(x0, y0)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
