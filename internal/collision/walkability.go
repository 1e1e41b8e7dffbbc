package collision

import (
	"strings"

	"github.com/samdwyer/hamlet/internal/grid"
)

// DirSet is a bitmask of blocked cardinal directions on one tile.
type DirSet uint8

// Add returns the set with the direction included.
func (s DirSet) Add(d grid.Direction) DirSet {
	return s | 1<<uint(d)
}

// Has reports whether the direction is in the set.
func (s DirSet) Has(d grid.Direction) bool {
	return s&(1<<uint(d)) != 0
}

// String lists the directions in the set, for diagnostics.
func (s DirSet) String() string {
	if s == 0 {
		return "none"
	}
	var names []string
	for _, d := range grid.Directions() {
		if s.Has(d) {
			names = append(names, d.String())
		}
	}
	return strings.Join(names, "|")
}

// buildWallLookup indexes the blocking wall segments by tile. Segments with
// an open door or arch are excluded entirely: doors never block.
func buildWallLookup(walls []WallSegment) map[grid.Tile]DirSet {
	blocked := make(map[grid.Tile]DirSet)
	for _, w := range walls {
		if w.HasOpening {
			continue
		}
		blocked[w.Tile] = blocked[w.Tile].Add(w.Side)
	}
	return blocked
}

// BlockedSides returns the directions on which the tile has a blocking
// wall. Exposed for the validator and debug rendering.
func (f *FloorCollision) BlockedSides(t grid.Tile) DirSet {
	return f.blocked[t]
}

// IsWalkable reports whether an agent may stand on the tile: it must be an
// interior walkable tile or, on the ground floor, part of the exterior
// apron.
func (f *FloorCollision) IsWalkable(t grid.Tile) bool {
	if f.Walkable.Contains(t) {
		return true
	}
	return f.Floor == 0 && f.Exterior.Contains(t)
}

// IsWalkableFrom reports whether an agent standing on from may enter
// target. The entered tile is checked for a blocking wall on its
// entry-facing side and the exited tile for one on its exit-facing side;
// either blocks. Diagonal steps are checked on both axis components.
func (f *FloorCollision) IsWalkableFrom(target, from grid.Tile) bool {
	if !f.IsWalkable(target) {
		return false
	}

	dx := target.X - from.X
	dz := target.Z - from.Z
	if dx != 0 {
		dir := grid.East
		if dx < 0 {
			dir = grid.West
		}
		if f.edgeBlocked(from, target, dir) {
			return false
		}
	}
	if dz != 0 {
		dir := grid.South
		if dz < 0 {
			dir = grid.North
		}
		if f.edgeBlocked(from, target, dir) {
			return false
		}
	}
	return true
}

// edgeBlocked checks the walls guarding a step in dir: the target's side
// facing back toward the agent, and the origin's side facing the step.
func (f *FloorCollision) edgeBlocked(from, target grid.Tile, dir grid.Direction) bool {
	return f.blocked[target].Has(dir.Opposite()) || f.blocked[from].Has(dir)
}

// CanMoveTo reports whether a single step from one tile to an adjacent
// tile is legal. True diagonal steps additionally require both
// cardinal-adjacent tiles to be independently enterable from the origin,
// so an agent cannot clip through a wall corner.
func (f *FloorCollision) CanMoveTo(from, to grid.Tile) bool {
	if !f.IsWalkableFrom(to, from) {
		return false
	}

	dx := to.X - from.X
	dz := to.Z - from.Z
	if dx != 0 && dz != 0 {
		horizontal := from.Add(dx, 0)
		vertical := from.Add(0, dz)
		if !f.IsWalkableFrom(horizontal, from) || !f.IsWalkableFrom(vertical, from) {
			return false
		}
	}
	return true
}
