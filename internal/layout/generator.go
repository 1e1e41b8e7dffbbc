package layout

import (
	"context"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/hamlet/internal/grid"
	"github.com/samdwyer/hamlet/internal/telemetry"
)

const (
	// Room partition parameters, in cells.
	minRoomSpan = 2 // Minimum room dimension
	minLeafSpan = 3 // Minimum partition leaf size before stopping split

	windowChance = 0.35 // Chance of a window on an eligible exterior edge
	archChance   = 0.3  // Chance an internal opening is an arch, not a door
)

// Generator produces building layouts from a seeded random source.
// The same source yields the same layout, which the tests rely on.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator drawing from the given random source.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate builds a layout with the given cell dimensions and floor count.
// Every floor shares the full rectangular footprint; rooms, openings, and a
// staircase per non-top floor are placed independently.
func (g *Generator) Generate(ctx context.Context, widthCells, depthCells, floors int) *BuildingLayout {
	tracer := telemetry.Tracer("layout")
	_, span := tracer.Start(ctx, "layout.generate")
	defer span.End()

	b := &BuildingLayout{
		WidthCells: widthCells,
		DepthCells: depthCells,
		Floors:     make([]*FloorPlan, 0, floors),
	}

	rooms := 0
	for f := 0; f < floors; f++ {
		plan := g.generateFloor(widthCells, depthCells, f, f < floors-1)
		b.Floors = append(b.Floors, plan)
		rooms += countRooms(plan)
	}

	span.SetAttributes(
		attribute.Int("layout.width_cells", widthCells),
		attribute.Int("layout.depth_cells", depthCells),
		attribute.Int("layout.floors", floors),
		attribute.Int("layout.room_count", rooms),
	)
	return b
}

// partitionNode is a node in the room partition tree.
type partitionNode struct {
	col, row     int
	width, depth int
	left, right  *partitionNode
}

func (n *partitionNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// generateFloor builds one floor: full footprint, partitioned rooms,
// internal doors between sibling rooms, exterior openings, and a stair
// when the floor has one above it.
func (g *Generator) generateFloor(widthCells, depthCells, floorIndex int, hasStair bool) *FloorPlan {
	plan := NewFloorPlan(widthCells, depthCells)
	for row := 0; row < depthCells; row++ {
		for col := 0; col < widthCells; col++ {
			plan.Footprint[row][col] = true
		}
	}

	root := &partitionNode{col: 0, row: 0, width: widthCells, depth: depthCells}
	g.splitNode(root)

	nextRoom := 0
	g.assignRooms(plan, root, &nextRoom)
	g.connectRooms(plan, root)

	if floorIndex == 0 {
		g.placeEntrance(plan, widthCells, depthCells)
	}
	g.placeWindows(plan, widthCells, depthCells)

	if hasStair {
		g.placeStair(plan, widthCells, depthCells)
	}
	return plan
}

// splitNode recursively splits a partition node, alternating axis by which
// dimension has room to split.
func (g *Generator) splitNode(node *partitionNode) {
	canSplitW := node.width >= minLeafSpan*2
	canSplitD := node.depth >= minLeafSpan*2
	if !canSplitW && !canSplitD {
		return
	}

	splitAcross := canSplitD && (!canSplitW || node.depth >= node.width)
	if splitAcross {
		pos := minLeafSpan + g.rng.Intn(node.depth-minLeafSpan*2+1)
		node.left = &partitionNode{col: node.col, row: node.row, width: node.width, depth: pos}
		node.right = &partitionNode{col: node.col, row: node.row + pos, width: node.width, depth: node.depth - pos}
	} else {
		pos := minLeafSpan + g.rng.Intn(node.width-minLeafSpan*2+1)
		node.left = &partitionNode{col: node.col, row: node.row, width: pos, depth: node.depth}
		node.right = &partitionNode{col: node.col + pos, row: node.row, width: node.width - pos, depth: node.depth}
	}

	g.splitNode(node.left)
	g.splitNode(node.right)
}

// assignRooms gives every leaf of the partition a distinct room id and
// stamps it over the leaf's cells.
func (g *Generator) assignRooms(plan *FloorPlan, node *partitionNode, next *int) {
	if node == nil {
		return
	}
	if node.isLeaf() {
		id := *next
		*next++
		for row := node.row; row < node.row+node.depth; row++ {
			for col := node.col; col < node.col+node.width; col++ {
				plan.RoomMap[row][col] = id
			}
		}
		return
	}
	g.assignRooms(plan, node.left, next)
	g.assignRooms(plan, node.right, next)
}

// connectRooms places an internal opening across every partition split so
// sibling subtrees are mutually reachable.
func (g *Generator) connectRooms(plan *FloorPlan, node *partitionNode) {
	if node == nil || node.isLeaf() {
		return
	}
	g.connectRooms(plan, node.left)
	g.connectRooms(plan, node.right)

	opening := OpeningDoor
	if g.rng.Float64() < archChance {
		opening = OpeningArch
	}

	// The split line runs along the near edge of the right child. Pick a
	// random cell on the right child's boundary and open toward the left.
	r := node.right
	if r.row > node.row {
		col := r.col + g.rng.Intn(r.width)
		plan.InternalOpenings[OpeningKey(col, r.row, South)] = opening
	} else {
		row := r.row + g.rng.Intn(r.depth)
		plan.InternalOpenings[OpeningKey(r.col, row, West)] = opening
	}
}

// placeEntrance opens a door on a random cell of the southern exterior wall.
func (g *Generator) placeEntrance(plan *FloorPlan, widthCells, depthCells int) {
	col := g.rng.Intn(widthCells)
	plan.ExternalOpenings[OpeningKey(col, 0, South)] = OpeningDoor
}

// placeWindows sprinkles windows along the exterior walls. Windows never
// affect walkability, only the wall record.
func (g *Generator) placeWindows(plan *FloorPlan, widthCells, depthCells int) {
	for col := 0; col < widthCells; col++ {
		g.maybeWindow(plan, col, 0, South)
		g.maybeWindow(plan, col, depthCells-1, North)
	}
	for row := 0; row < depthCells; row++ {
		g.maybeWindow(plan, 0, row, West)
		g.maybeWindow(plan, widthCells-1, row, East)
	}
}

func (g *Generator) maybeWindow(plan *FloorPlan, col, row int, dir grid.Direction) {
	key := OpeningKey(col, row, dir)
	if _, taken := plan.ExternalOpenings[key]; taken {
		return
	}
	if g.rng.Float64() < windowChance {
		plan.ExternalOpenings[key] = OpeningWindow
	}
}

// placeStair puts a northward staircase in the floor interior: it rises
// from a cell and lands on the cell behind it on the floor above.
func (g *Generator) placeStair(plan *FloorPlan, widthCells, depthCells int) {
	if depthCells < 2 {
		return
	}
	col := g.rng.Intn(widthCells)
	row := g.rng.Intn(depthCells - 1)
	plan.Stair = &StairPlacement{
		Col:        col,
		Row:        row,
		Direction:  North,
		LandingCol: col,
		LandingRow: row + 1,
	}
}

func countRooms(plan *FloorPlan) int {
	seen := make(map[int]struct{})
	for _, row := range plan.RoomMap {
		for _, id := range row {
			if id >= 0 {
				seen[id] = struct{}{}
			}
		}
	}
	return len(seen)
}
