// Package grid provides tile coordinates, cardinal directions, and the
// cell-to-world transforms used by collision building and pathfinding.
package grid

import "fmt"

// Tile identifies a single 1x1 world tile by its integer coordinates.
// Tiles are comparable and used directly as map keys for tile sets.
type Tile struct {
	X, Z int
}

// Add returns the tile offset by dx, dz.
func (t Tile) Add(dx, dz int) Tile {
	return Tile{X: t.X + dx, Z: t.Z + dz}
}

// ManhattanDistance returns the Manhattan distance to the other tile.
func (t Tile) ManhattanDistance(other Tile) int {
	return abs(t.X-other.X) + abs(t.Z-other.Z)
}

// String returns the tile as "(x,z)".
func (t Tile) String() string {
	return fmt.Sprintf("(%d,%d)", t.X, t.Z)
}

// Vec3 is a world-space position. Y is elevation.
type Vec3 struct {
	X, Y, Z float64
}

// TileSet is a set of tiles.
type TileSet map[Tile]struct{}

// Add inserts a tile into the set.
func (s TileSet) Add(t Tile) {
	s[t] = struct{}{}
}

// Contains reports whether the tile is in the set.
func (s TileSet) Contains(t Tile) bool {
	_, ok := s[t]
	return ok
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
