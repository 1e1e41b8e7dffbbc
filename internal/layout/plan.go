// Package layout defines the floor-plan structures produced by building
// generation and consumed by collision building, plus a small procedural
// generator used by the viewer and tests.
package layout

import (
	"fmt"

	"github.com/samdwyer/hamlet/internal/grid"
)

// OpeningType classifies an opening on a cell edge. Doors and arches permit
// crossing; windows are cosmetic and still block movement.
type OpeningType string

const (
	OpeningDoor   OpeningType = "door"
	OpeningArch   OpeningType = "arch"
	OpeningWindow OpeningType = "window"
)

// AllowsPassage reports whether an agent can cross an edge with this opening.
func (o OpeningType) AllowsPassage() bool {
	return o == OpeningDoor || o == OpeningArch
}

// OpeningKey builds the map key for an opening on the given cell edge.
func OpeningKey(col, row int, dir grid.Direction) string {
	return fmt.Sprintf("%d,%d,%s", col, row, dir)
}

// StairPlacement describes a staircase within a floor plan: the cell the
// stair rises from, the direction of ascent, and the landing cell on the
// floor above.
type StairPlacement struct {
	Col, Row               int
	Direction              grid.Direction
	LandingCol, LandingRow int
}

// FloorPlan is one floor of a building in cell coordinates.
type FloorPlan struct {
	// Footprint marks occupied cells, indexed [row][col].
	Footprint [][]bool
	// RoomMap assigns a room id per cell, -1 where no room.
	RoomMap [][]int
	// InternalOpenings maps OpeningKey -> opening between two occupied
	// cells of different rooms.
	InternalOpenings map[string]OpeningType
	// ExternalOpenings maps OpeningKey -> opening on an exterior edge.
	ExternalOpenings map[string]OpeningType
	// Stair is the staircase rising from this floor, nil on the top floor
	// or when the floor has no stair.
	Stair *StairPlacement
}

// NewFloorPlan creates an empty floor plan of the given cell dimensions.
func NewFloorPlan(widthCells, depthCells int) *FloorPlan {
	footprint := make([][]bool, depthCells)
	roomMap := make([][]int, depthCells)
	for row := range footprint {
		footprint[row] = make([]bool, widthCells)
		roomMap[row] = make([]int, widthCells)
		for col := range roomMap[row] {
			roomMap[row][col] = -1
		}
	}
	return &FloorPlan{
		Footprint:        footprint,
		RoomMap:          roomMap,
		InternalOpenings: make(map[string]OpeningType),
		ExternalOpenings: make(map[string]OpeningType),
	}
}

// Occupied reports whether the cell is inside the footprint. Out-of-range
// cells are unoccupied.
func (p *FloorPlan) Occupied(col, row int) bool {
	if row < 0 || row >= len(p.Footprint) {
		return false
	}
	if col < 0 || col >= len(p.Footprint[row]) {
		return false
	}
	return p.Footprint[row][col]
}

// RoomID returns the room id of the cell, or -1 when the cell is outside
// the footprint or unassigned.
func (p *FloorPlan) RoomID(col, row int) int {
	if row < 0 || row >= len(p.RoomMap) {
		return -1
	}
	if col < 0 || col >= len(p.RoomMap[row]) {
		return -1
	}
	return p.RoomMap[row][col]
}

// OpeningAt looks up an opening for the edge between cell (col,row) and its
// neighbor in dir, consulting the key from either adjacent cell so that a
// door registered on one side opens the shared edge for both.
func (p *FloorPlan) OpeningAt(openings map[string]OpeningType, col, row int, dir grid.Direction) (OpeningType, bool) {
	if o, ok := openings[OpeningKey(col, row, dir)]; ok {
		return o, true
	}
	ncol, nrow := NeighborCell(col, row, dir)
	if o, ok := openings[OpeningKey(ncol, nrow, dir.Opposite())]; ok {
		return o, true
	}
	return "", false
}

// NeighborCell returns the cell adjacent to (col,row) in the given local
// direction. Local north is the direction of increasing row.
func NeighborCell(col, row int, dir grid.Direction) (int, int) {
	switch dir {
	case North:
		return col, row + 1
	case South:
		return col, row - 1
	case East:
		return col + 1, row
	case West:
		return col - 1, row
	default:
		return col, row
	}
}

// Local direction aliases; kept so plan code reads in cell terms.
const (
	North = grid.North
	East  = grid.East
	South = grid.South
	West  = grid.West
)

// BuildingLayout is the full multi-floor layout handed to collision
// building. Floors are ordered ground floor first.
type BuildingLayout struct {
	WidthCells int
	DepthCells int
	Floors     []*FloorPlan
}
