// Package collision derives tile-level walkability from building floor
// plans: walkable tiles, directional wall segments, stair connectors, and
// the ground-floor exterior apron. The resulting snapshot is immutable and
// safe for concurrent readers; regeneration replaces the whole structure.
package collision

import (
	"github.com/google/uuid"

	"github.com/samdwyer/hamlet/internal/grid"
	"github.com/samdwyer/hamlet/internal/layout"
)

// WallKind classifies the wall candidate on one cell edge.
type WallKind int

const (
	// WallNone means the edge has no wall at all.
	WallNone WallKind = iota
	// WallSolid means the edge blocks movement. A solid wall may still
	// carry a cosmetic window opening.
	WallSolid
	// WallOpen means the edge has a wall pierced by a door or arch that
	// agents can pass through.
	WallOpen
)

// WallSegment is a directional wall face on one tile edge. Crossing the
// edge is blocked unless HasOpening is true.
type WallSegment struct {
	Tile       grid.Tile
	Side       grid.Direction
	HasOpening bool
	// Opening records the opening type when one exists on this tile.
	// A window sets Opening without HasOpening: it is drawn but blocks.
	Opening layout.OpeningType
}

// StairTile is one end of a staircase connector. Each staircase yields a
// bottom record (IsLanding=false) registered on FromFloor and a landing
// record (IsLanding=true) registered on ToFloor = FromFloor+1.
type StairTile struct {
	Tile      grid.Tile
	FromFloor int
	ToFloor   int
	Direction grid.Direction
	IsLanding bool
}

// FloorCollision is the walkability model of a single floor.
type FloorCollision struct {
	Floor     int
	Elevation float64
	// Walkable holds every interior tile an agent may stand on.
	Walkable grid.TileSet
	// Exterior holds the walkable apron outside the footprint. Populated
	// on the ground floor only; a tile is never in both sets.
	Exterior grid.TileSet
	Walls    []WallSegment
	Stairs   []StairTile

	// blocked is the wall lookup, built once at construction from the
	// non-opening wall segments and owned by this floor for its lifetime.
	blocked map[grid.Tile]DirSet
}

// Bounds is an inclusive tile-space bounding box.
type Bounds struct {
	MinX, MinZ int
	MaxX, MaxZ int
}

// Expand grows the bounds by pad tiles on every side.
func (b Bounds) Expand(pad int) Bounds {
	return Bounds{
		MinX: b.MinX - pad,
		MinZ: b.MinZ - pad,
		MaxX: b.MaxX + pad,
		MaxZ: b.MaxZ + pad,
	}
}

// BuildingCollision is the complete, immutable collision snapshot for one
// placed building. It is rebuilt wholesale on regeneration or repositioning.
type BuildingCollision struct {
	BuildingID uuid.UUID
	Position   grid.Vec3
	Rotation   float64
	WidthCells int
	DepthCells int
	Floors     []*FloorCollision
	Bounds     Bounds
	// Warnings carries non-fatal build diagnostics, such as a rotation
	// that is not a 90-degree multiple.
	Warnings []string
}

// Floor returns the collision data for the given floor index, or nil when
// out of range.
func (b *BuildingCollision) Floor(index int) *FloorCollision {
	if index < 0 || index >= len(b.Floors) {
		return nil
	}
	return b.Floors[index]
}
