package collision

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/hamlet/internal/grid"
	"github.com/samdwyer/hamlet/internal/layout"
	"github.com/samdwyer/hamlet/internal/telemetry"
)

const (
	// TilesPerCell is the side of the tile block covered by one cell.
	TilesPerCell = 4
	// ExteriorPadding is the width in tiles of the walkable apron placed
	// around the ground floor, so outside-to-inside paths resolve without
	// an external ground-collision source.
	ExteriorPadding = 8
	// FloorHeight is the elevation step between stacked floors.
	FloorHeight = 3.0
)

// Build derives the complete collision snapshot for a building layout
// placed at pos with the given rotation in radians. It never fails: a
// rotation off the 90-degree grid degrades wall placement and is recorded
// in Warnings instead.
func Build(ctx context.Context, l *layout.BuildingLayout, pos grid.Vec3, rotation float64) *BuildingCollision {
	tracer := telemetry.Tracer("collision")
	_, span := tracer.Start(ctx, "collision.build")
	defer span.End()

	start := time.Now()

	b := &BuildingCollision{
		BuildingID: uuid.New(),
		Position:   pos,
		Rotation:   rotation,
		WidthCells: l.WidthCells,
		DepthCells: l.DepthCells,
		Floors:     make([]*FloorCollision, 0, len(l.Floors)),
	}

	if !grid.IsCardinal(rotation) {
		warning := fmt.Sprintf("rotation %.4f rad is not a 90-degree multiple; wall placement accuracy is not guaranteed", rotation)
		b.Warnings = append(b.Warnings, warning)
		span.SetAttributes(attribute.String("collision.rotation_warning", warning))
	}

	for f, plan := range l.Floors {
		b.Floors = append(b.Floors, buildFloor(b, plan, f))
	}
	b.buildStairs(l)

	if len(b.Floors) > 0 {
		ground := b.Floors[0]
		b.Bounds = walkableBounds(ground.Walkable)
		fillExterior(ground, b.Bounds)
	}

	walkable, walls := 0, 0
	for _, f := range b.Floors {
		walkable += len(f.Walkable)
		walls += len(f.Walls)
	}
	span.SetAttributes(
		attribute.Int("collision.floors", len(b.Floors)),
		attribute.Int("collision.walkable_tiles", walkable),
		attribute.Int("collision.wall_segments", walls),
		attribute.Int64("collision.build_ms", time.Since(start).Milliseconds()),
	)
	return b
}

// buildFloor converts one floor plan into its collision data.
func buildFloor(b *BuildingCollision, plan *layout.FloorPlan, floorIndex int) *FloorCollision {
	floor := &FloorCollision{
		Floor:     floorIndex,
		Elevation: b.Position.Y + float64(floorIndex)*FloorHeight,
		Walkable:  make(grid.TileSet),
		Exterior:  make(grid.TileSet),
	}

	for row := range plan.Footprint {
		for col := range plan.Footprint[row] {
			if !plan.Footprint[row][col] {
				continue
			}
			center := b.cellCenterTile(col, row)
			markCellWalkable(floor, center)
			b.buildCellWalls(floor, plan, col, row, center)
		}
	}

	floor.blocked = buildWallLookup(floor.Walls)
	return floor
}

// cellCenterTile maps a cell address to its world center tile.
func (b *BuildingCollision) cellCenterTile(col, row int) grid.Tile {
	return grid.CellToTile(col, row, b.Position.X, b.Position.Z,
		b.WidthCells, b.DepthCells, TilesPerCell, b.Rotation)
}

// markCellWalkable marks the cell's entire tile block walkable, not just
// the center: collision queries operate at tile granularity, so every tile
// under the cell must answer for itself.
func markCellWalkable(floor *FloorCollision, center grid.Tile) {
	lo := -(TilesPerCell / 2)
	for dz := 0; dz < TilesPerCell; dz++ {
		for dx := 0; dx < TilesPerCell; dx++ {
			floor.Walkable.Add(center.Add(lo+dx, lo+dz))
		}
	}
}

// buildCellWalls determines the wall on each side of an occupied cell and
// expands it into per-tile segments.
func (b *BuildingCollision) buildCellWalls(floor *FloorCollision, plan *layout.FloorPlan, col, row int, center grid.Tile) {
	for _, localDir := range grid.Directions() {
		kind, opening := wallCandidate(plan, col, row, localDir)
		if kind == WallNone {
			continue
		}
		worldDir := localDir.Rotated(b.Rotation)
		appendEdgeSegments(floor, center, worldDir, kind, opening)
	}
}

// wallCandidate resolves the three-state wall decision for one cell edge.
func wallCandidate(plan *layout.FloorPlan, col, row int, dir grid.Direction) (WallKind, layout.OpeningType) {
	ncol, nrow := layout.NeighborCell(col, row, dir)

	if !plan.Occupied(ncol, nrow) {
		// Exterior edge: always a wall. A door or arch pierces it; a
		// window is recorded but still blocks.
		opening, ok := plan.OpeningAt(plan.ExternalOpenings, col, row, dir)
		if !ok {
			return WallSolid, ""
		}
		if opening.AllowsPassage() {
			return WallOpen, opening
		}
		return WallSolid, opening
	}

	// Interior edge: a wall exists only between different rooms.
	if plan.RoomID(col, row) == plan.RoomID(ncol, nrow) {
		return WallNone, ""
	}
	opening, ok := plan.OpeningAt(plan.InternalOpenings, col, row, dir)
	if !ok {
		return WallSolid, ""
	}
	if opening.AllowsPassage() {
		return WallOpen, opening
	}
	return WallSolid, opening
}

// appendEdgeSegments expands a per-cell-edge wall into one segment per tile
// along that edge, so agents cannot slip through un-walled edge tiles. The
// opening applies only to the tiles at the geometric center of the edge:
// door width is narrower than the full cell edge.
func appendEdgeSegments(floor *FloorCollision, center grid.Tile, side grid.Direction, kind WallKind, opening layout.OpeningType) {
	lo := -(TilesPerCell / 2)
	hi := lo + TilesPerCell - 1
	centerLo := lo + (TilesPerCell-1)/2
	centerHi := lo + TilesPerCell/2

	for i := lo; i <= hi; i++ {
		var tile grid.Tile
		switch side {
		case grid.North:
			tile = center.Add(i, lo)
		case grid.South:
			tile = center.Add(i, hi)
		case grid.East:
			tile = center.Add(hi, i)
		case grid.West:
			tile = center.Add(lo, i)
		}

		seg := WallSegment{Tile: tile, Side: side}
		if opening != "" && i >= centerLo && i <= centerHi {
			seg.Opening = opening
			seg.HasOpening = kind == WallOpen
		}
		floor.Walls = append(floor.Walls, seg)
	}
}

// buildStairs emits, for every staircase on floor f, the bottom connector
// on floor f and the landing connector on floor f+1. Both share the stair
// direction and the (from, to) floor pair. Stairs on the top floor plan
// have nowhere to go and are ignored.
func (b *BuildingCollision) buildStairs(l *layout.BuildingLayout) {
	for f, plan := range l.Floors {
		if plan.Stair == nil || f+1 >= len(b.Floors) {
			continue
		}
		stair := plan.Stair
		worldDir := stair.Direction.Rotated(b.Rotation)

		b.Floors[f].Stairs = append(b.Floors[f].Stairs, StairTile{
			Tile:      b.cellCenterTile(stair.Col, stair.Row),
			FromFloor: f,
			ToFloor:   f + 1,
			Direction: worldDir,
			IsLanding: false,
		})
		b.Floors[f+1].Stairs = append(b.Floors[f+1].Stairs, StairTile{
			Tile:      b.cellCenterTile(stair.LandingCol, stair.LandingRow),
			FromFloor: f,
			ToFloor:   f + 1,
			Direction: worldDir,
			IsLanding: true,
		})
	}
}

// walkableBounds computes the inclusive bounding box of a tile set.
func walkableBounds(tiles grid.TileSet) Bounds {
	first := true
	var bounds Bounds
	for t := range tiles {
		if first {
			bounds = Bounds{MinX: t.X, MinZ: t.Z, MaxX: t.X, MaxZ: t.Z}
			first = false
			continue
		}
		if t.X < bounds.MinX {
			bounds.MinX = t.X
		}
		if t.X > bounds.MaxX {
			bounds.MaxX = t.X
		}
		if t.Z < bounds.MinZ {
			bounds.MinZ = t.Z
		}
		if t.Z > bounds.MaxZ {
			bounds.MaxZ = t.Z
		}
	}
	return bounds
}

// fillExterior pads the ground floor with a walkable apron around its
// bounding box, skipping tiles that are already interior-walkable. A tile
// is never both interior and exterior.
func fillExterior(ground *FloorCollision, bounds Bounds) {
	padded := bounds.Expand(ExteriorPadding)
	for z := padded.MinZ; z <= padded.MaxZ; z++ {
		for x := padded.MinX; x <= padded.MaxX; x++ {
			t := grid.Tile{X: x, Z: z}
			if ground.Walkable.Contains(t) {
				continue
			}
			ground.Exterior.Add(t)
		}
	}
}
