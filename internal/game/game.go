// Package game runs the interactive collision viewer: generate a building,
// inspect its per-floor collision data, and compute paths between points.
package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/hamlet/internal/collision"
	"github.com/samdwyer/hamlet/internal/grid"
	"github.com/samdwyer/hamlet/internal/layout"
	"github.com/samdwyer/hamlet/internal/nav"
	"github.com/samdwyer/hamlet/internal/telemetry"
	"github.com/samdwyer/hamlet/internal/ui"
)

// Game holds the viewer state.
type Game struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer
	rng      *rand.Rand

	building *collision.BuildingCollision
	floor    int
	cursor   grid.Tile
	start    *nav.FloorRef
	end      *nav.FloorRef
	segments []nav.Segment
	message  string
	running  bool
}

// New creates a viewer instance.
func New(cfg Config) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Game{
		cfg:      cfg,
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		rng:      rand.New(rand.NewSource(seed)),
		running:  true,
	}, nil
}

// Run executes the main viewer loop.
func (g *Game) Run(ctx context.Context) error {
	g.regenerate(ctx)

	for g.running {
		g.renderer.Render(ui.View{
			Building: g.building,
			Floor:    g.floor,
			Segments: g.segments,
			Cursor:   g.cursor,
			Start:    g.start,
			End:      g.end,
			Message:  g.message,
		})
		g.handleInput(ctx)
	}

	g.screen.Close()
	return nil
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.moveCursor(0, -1)
	case tcell.KeyDown:
		g.moveCursor(0, 1)
	case tcell.KeyLeft:
		g.moveCursor(-1, 0)
	case tcell.KeyRight:
		g.moveCursor(1, 0)

	case tcell.KeyTab:
		g.floor = (g.floor + 1) % len(g.building.Floors)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case 's':
			g.start = &nav.FloorRef{Tile: g.cursor, Floor: g.floor}
			g.message = fmt.Sprintf("start set to %s on floor %d", g.cursor, g.floor)
		case 'e':
			g.end = &nav.FloorRef{Tile: g.cursor, Floor: g.floor}
			g.message = fmt.Sprintf("end set to %s on floor %d", g.cursor, g.floor)
		case 'p':
			g.computePath(ctx)
		case 'r':
			g.regenerate(ctx)
		}
	}
}

// moveCursor moves the inspection cursor; it may roam anywhere within the
// padded building bounds, walkable or not.
func (g *Game) moveCursor(dx, dz int) {
	next := g.cursor.Add(dx, dz)
	bounds := g.building.Bounds.Expand(collision.ExteriorPadding)
	if next.X < bounds.MinX || next.X > bounds.MaxX || next.Z < bounds.MinZ || next.Z > bounds.MaxZ {
		return
	}
	g.cursor = next
}

// computePath runs the multi-floor search between the chosen endpoints and
// validates every returned segment against its floor's walls. A validation
// failure is a collision bug, so it is surfaced loudly rather than hidden.
func (g *Game) computePath(ctx context.Context) {
	if g.start == nil || g.end == nil {
		g.message = "set both endpoints first (s and e)"
		return
	}

	segments, ok := nav.FindMultiFloorPath(ctx, *g.start, *g.end, g.building)
	if !ok {
		g.segments = nil
		g.message = "no path: floors are not connected"
		return
	}
	g.segments = segments

	for _, seg := range segments {
		floor := g.building.Floor(seg.Floor)
		if err := collision.ValidatePath(seg.Tiles, seg.Start, floor); err != nil {
			g.message = fmt.Sprintf("VALIDATOR: %v", err)
			return
		}
	}

	tiles := 0
	for _, seg := range segments {
		tiles += len(seg.Tiles)
	}
	g.message = fmt.Sprintf("path: %d segment(s), %d tile(s)", len(segments), tiles)
}

// regenerate builds a fresh layout and swaps in a new collision snapshot
// wholesale; the old one stays valid for anything still reading it.
func (g *Game) regenerate(ctx context.Context) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.regenerate")
	defer span.End()

	gen := layout.NewGenerator(g.rng)
	built := gen.Generate(ctx, g.cfg.WidthCells, g.cfg.DepthCells, g.cfg.Floors)
	g.building = collision.Build(ctx, built, grid.Vec3{}, g.cfg.Rotation())

	g.floor = 0
	g.start = nil
	g.end = nil
	g.segments = nil
	g.cursor = grid.Tile{
		X: (g.building.Bounds.MinX + g.building.Bounds.MaxX) / 2,
		Z: (g.building.Bounds.MinZ + g.building.Bounds.MaxZ) / 2,
	}

	g.message = ""
	if len(g.building.Warnings) > 0 {
		g.message = "warning: " + g.building.Warnings[0]
	}

	span.SetAttributes(
		attribute.Int("game.floors", len(g.building.Floors)),
		attribute.String("game.building_id", g.building.BuildingID.String()),
	)
}

// Close cleans up viewer resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
