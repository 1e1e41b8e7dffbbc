package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/hamlet/internal/collision"
	"github.com/samdwyer/hamlet/internal/grid"
	"github.com/samdwyer/hamlet/internal/layout"
	"github.com/samdwyer/hamlet/internal/nav"
)

// View is everything the renderer needs for one frame: the building, the
// floor in view, the current path, and the editing state.
type View struct {
	Building *collision.BuildingCollision
	Floor    int
	Segments []nav.Segment
	Cursor   grid.Tile
	Start    *nav.FloorRef
	End      *nav.FloorRef
	Message  string
}

// Renderer draws collision data and paths to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// wallRunes maps a blocked-direction bitmask (N=1, E=2, S=4, W=8) to a
// box-drawing rune so wall placement is readable per tile.
var wallRunes = [16]rune{
	'.', '╵', '╶', '└', '╷', '│', '┌', '├',
	'╴', '┘', '─', '┴', '┐', '┤', '┬', '┼',
}

// Render draws one frame.
func (r *Renderer) Render(v View) {
	r.screen.Clear()

	floor := v.Building.Floor(v.Floor)
	if floor == nil {
		r.screen.Show()
		return
	}

	// Origin so the padded ground-floor bounds start at the map top-left,
	// leaving the first row for status.
	bounds := v.Building.Bounds.Expand(collision.ExteriorPadding)
	toScreen := func(t grid.Tile) (int, int) {
		return t.X - bounds.MinX, t.Z - bounds.MinZ + 1
	}

	r.drawTiles(floor, toScreen)
	r.drawStairs(floor, toScreen)
	r.drawPath(v, toScreen)
	r.drawMarkers(v, toScreen)
	r.drawStatus(v, floor)

	r.screen.Show()
}

// drawTiles draws walkable floor, the exterior apron, walls, and openings.
func (r *Renderer) drawTiles(floor *collision.FloorCollision, toScreen func(grid.Tile) (int, int)) {
	floorStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	exteriorStyle := tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	wallStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	for t := range floor.Exterior {
		x, y := toScreen(t)
		r.screen.SetContent(x, y, ',', exteriorStyle)
	}
	for t := range floor.Walkable {
		x, y := toScreen(t)
		if mask := floor.BlockedSides(t); mask != 0 {
			r.screen.SetContent(x, y, wallRunes[mask], wallStyle)
		} else {
			r.screen.SetContent(x, y, '.', floorStyle)
		}
	}

	doorStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	windowStyle := tcell.StyleDefault.Foreground(tcell.ColorTeal)
	for _, w := range floor.Walls {
		if w.Opening == "" {
			continue
		}
		x, y := toScreen(w.Tile)
		if w.HasOpening {
			r.screen.SetContent(x, y, '+', doorStyle)
		} else if w.Opening == layout.OpeningWindow {
			r.screen.SetContent(x, y, '=', windowStyle)
		}
	}
}

// drawStairs draws stair connectors: '>' for a bottom tile, '<' for a landing.
func (r *Renderer) drawStairs(floor *collision.FloorCollision, toScreen func(grid.Tile) (int, int)) {
	style := tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	for _, s := range floor.Stairs {
		x, y := toScreen(s.Tile)
		glyph := '>'
		if s.IsLanding {
			glyph = '<'
		}
		r.screen.SetContent(x, y, glyph, style)
	}
}

// drawPath overlays the current floor's path segments, colored along a
// gradient over the whole multi-floor path so stair transitions read as a
// continuous hue shift.
func (r *Renderer) drawPath(v View, toScreen func(grid.Tile) (int, int)) {
	total := 0
	for _, seg := range v.Segments {
		total += len(seg.Tiles)
	}
	if total == 0 {
		return
	}

	drawn := 0
	for _, seg := range v.Segments {
		for _, t := range seg.Tiles {
			drawn++
			if seg.Floor != v.Floor {
				continue
			}
			x, y := toScreen(t)
			r.screen.SetContent(x, y, '*', pathStyle(drawn, total))
		}
	}
}

// pathStyle picks a color for the i-th of n path tiles: a hue sweep from
// green at the start to magenta at the goal.
func pathStyle(i, n int) tcell.Style {
	fraction := 0.0
	if n > 1 {
		fraction = float64(i-1) / float64(n-1)
	}
	c := colorful.Hsv(120+180*fraction, 0.85, 1.0)
	cr, cg, cb := c.RGB255()
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(cr), int32(cg), int32(cb))).
		Bold(true)
}

// drawMarkers draws the start/end endpoints and the cursor.
func (r *Renderer) drawMarkers(v View, toScreen func(grid.Tile) (int, int)) {
	if v.Start != nil && v.Start.Floor == v.Floor {
		x, y := toScreen(v.Start.Tile)
		r.screen.SetContent(x, y, 'S', tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true))
	}
	if v.End != nil && v.End.Floor == v.Floor {
		x, y := toScreen(v.End.Tile)
		r.screen.SetContent(x, y, 'E', tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
	}

	x, y := toScreen(v.Cursor)
	r.screen.SetContent(x, y, 'X', tcell.StyleDefault.Reverse(true))
}

// drawStatus writes the status line on top and any message at the bottom.
func (r *Renderer) drawStatus(v View, floor *collision.FloorCollision) {
	status := fmt.Sprintf(
		"floor %d/%d  elev %.1f  cursor %s  [arrows move | tab floor | s/e endpoints | p path | r regen | q quit]",
		v.Floor+1, len(v.Building.Floors), floor.Elevation, v.Cursor,
	)
	r.drawText(0, 0, status, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))

	if v.Message != "" {
		_, height := r.screen.Size()
		r.drawText(0, height-1, v.Message, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range text {
		r.screen.SetContent(x+i, y, ch, style)
	}
}
