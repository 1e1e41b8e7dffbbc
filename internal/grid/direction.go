package grid

import "math"

// Direction is a cardinal direction naming one edge of a tile.
type Direction int

const (
	North Direction = iota // -Z
	East                   // +X
	South                  // +Z
	West                   // -X
)

const directionCount = 4

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Opposite returns the facing direction: north<->south, east<->west.
func (d Direction) Opposite() Direction {
	return (d + 2) % directionCount
}

// Vector returns the unit tile offset for the direction.
func (d Direction) Vector() (dx, dz int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Rotated rotates the direction by the nearest 90-degree multiple of the
// given rotation in radians. Positive rotation turns north toward east.
func (d Direction) Rotated(rotation float64) Direction {
	quarters := quarterTurns(rotation)
	return (d + Direction(quarters)) % directionCount
}

// Directions lists all four cardinal directions in rotation order.
func Directions() [4]Direction {
	return [4]Direction{North, East, South, West}
}

// StepDirection returns the cardinal direction of a single-axis step from
// one tile to an adjacent tile. ok is false when the step is not a pure
// cardinal move.
func StepDirection(from, to Tile) (Direction, bool) {
	dx := to.X - from.X
	dz := to.Z - from.Z
	switch {
	case dx == 0 && dz < 0:
		return North, true
	case dx == 0 && dz > 0:
		return South, true
	case dz == 0 && dx > 0:
		return East, true
	case dz == 0 && dx < 0:
		return West, true
	default:
		return North, false
	}
}

// quarterTurns reduces a rotation in radians to a quarter-turn count in [0,4).
func quarterTurns(rotation float64) int {
	q := int(math.Round(rotation/(math.Pi/2))) % directionCount
	if q < 0 {
		q += directionCount
	}
	return q
}
