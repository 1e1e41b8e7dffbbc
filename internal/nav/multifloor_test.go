package nav

import (
	"context"
	"testing"

	"github.com/samdwyer/hamlet/internal/collision"
	"github.com/samdwyer/hamlet/internal/grid"
	"github.com/samdwyer/hamlet/internal/layout"
)

// stairBuilding builds a 1x2-cell, two-floor building with a south entry
// door and one northward staircase: bottom tile (0,2) on floor 0, landing
// tile (0,-2) on floor 1.
func stairBuilding(t *testing.T, withStair bool) *collision.BuildingCollision {
	t.Helper()

	b := &layout.BuildingLayout{WidthCells: 1, DepthCells: 2}
	for f := 0; f < 2; f++ {
		plan := layout.NewFloorPlan(1, 2)
		for row := 0; row < 2; row++ {
			plan.Footprint[row][0] = true
			plan.RoomMap[row][0] = 0
		}
		b.Floors = append(b.Floors, plan)
	}
	b.Floors[0].ExternalOpenings[layout.OpeningKey(0, 0, layout.South)] = layout.OpeningDoor
	if withStair {
		b.Floors[0].Stair = &layout.StairPlacement{
			Col: 0, Row: 0, Direction: layout.North, LandingCol: 0, LandingRow: 1,
		}
	}
	return collision.Build(context.Background(), b, grid.Vec3{}, 0)
}

func TestMultiFloorUpThroughStair(t *testing.T) {
	b := stairBuilding(t, true)

	// From the exterior tile outside the entry door up to a tile in the
	// middle of the first floor.
	start := FloorRef{Tile: grid.Tile{X: 0, Z: 4}, Floor: 0}
	end := FloorRef{Tile: grid.Tile{X: 0, Z: 0}, Floor: 1}

	segments, ok := FindMultiFloorPath(context.Background(), start, end, b)
	if !ok {
		t.Fatal("expected a path across the staircase")
	}
	if len(segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(segments))
	}

	first, second := segments[0], segments[1]
	if first.Floor != 0 || second.Floor != 1 {
		t.Errorf("segment floors = %d,%d, want 0,1", first.Floor, second.Floor)
	}
	if !first.EndsAtStair {
		t.Error("first segment should end at the stair")
	}
	if second.EndsAtStair {
		t.Error("final segment should end at the destination")
	}

	bottom := b.Floor(0).Stairs[0].Tile
	if got := first.Tiles[len(first.Tiles)-1]; got != bottom {
		t.Errorf("first segment ends at %s, want stair bottom %s", got, bottom)
	}
	landing := b.Floor(1).Stairs[0].Tile
	if second.Start != landing {
		t.Errorf("second segment starts at %s, want stair landing %s", second.Start, landing)
	}
	if second.StartEstimated {
		t.Error("landing record exists, arrival must not be estimated")
	}
	if got := second.Tiles[len(second.Tiles)-1]; got != end.Tile {
		t.Errorf("path ends at %s, want %s", got, end.Tile)
	}

	// Segments validate against their floors: the oracle for wall
	// generation and movement agreeing with each other.
	for _, seg := range segments {
		if err := collision.ValidatePath(seg.Tiles, seg.Start, b.Floor(seg.Floor)); err != nil {
			t.Errorf("segment on floor %d failed validation: %v", seg.Floor, err)
		}
	}

	if first.Elevation != 0 || second.Elevation != collision.FloorHeight {
		t.Errorf("elevations = %.1f,%.1f, want 0,%.1f", first.Elevation, second.Elevation, collision.FloorHeight)
	}
}

func TestMultiFloorDownThroughStair(t *testing.T) {
	b := stairBuilding(t, true)

	start := FloorRef{Tile: grid.Tile{X: 0, Z: 0}, Floor: 1}
	end := FloorRef{Tile: grid.Tile{X: 0, Z: 2}, Floor: 0}

	segments, ok := FindMultiFloorPath(context.Background(), start, end, b)
	if !ok {
		t.Fatal("expected a downward path")
	}
	if len(segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(segments))
	}

	landing := b.Floor(1).Stairs[0].Tile
	if got := segments[0].Tiles[len(segments[0].Tiles)-1]; got != landing {
		t.Errorf("descent segment ends at %s, want landing %s", got, landing)
	}
	bottom := b.Floor(0).Stairs[0].Tile
	if segments[1].Start != bottom {
		t.Errorf("ground segment starts at %s, want bottom %s", segments[1].Start, bottom)
	}
}

func TestMultiFloorSameFloor(t *testing.T) {
	b := stairBuilding(t, true)

	start := FloorRef{Tile: grid.Tile{X: 0, Z: 3}, Floor: 0}
	end := FloorRef{Tile: grid.Tile{X: 1, Z: -3}, Floor: 0}

	segments, ok := FindMultiFloorPath(context.Background(), start, end, b)
	if !ok {
		t.Fatal("expected a single-floor path")
	}
	if len(segments) != 1 {
		t.Fatalf("segments = %d, want 1", len(segments))
	}
	if segments[0].EndsAtStair {
		t.Error("single-floor segment should not end at a stair")
	}
}

func TestMultiFloorNoStairIsExplicitNoPath(t *testing.T) {
	b := stairBuilding(t, false)

	start := FloorRef{Tile: grid.Tile{X: 0, Z: 2}, Floor: 0}
	end := FloorRef{Tile: grid.Tile{X: 0, Z: 0}, Floor: 1}

	segments, ok := FindMultiFloorPath(context.Background(), start, end, b)
	if ok {
		t.Fatal("floors without a stair must report no path")
	}
	if segments != nil {
		t.Errorf("no-path result should carry no segments, got %d", len(segments))
	}
}

func TestMultiFloorEstimatedArrival(t *testing.T) {
	b := stairBuilding(t, true)
	// Drop the landing record: arrival must be estimated by offsetting
	// one cell width along the stair direction.
	expected := b.Floor(1).Stairs[0].Tile
	b.Floors[1].Stairs = nil

	start := FloorRef{Tile: grid.Tile{X: 0, Z: 2}, Floor: 0}
	end := FloorRef{Tile: grid.Tile{X: 0, Z: 0}, Floor: 1}

	segments, ok := FindMultiFloorPath(context.Background(), start, end, b)
	if !ok {
		t.Fatal("estimation should still produce a path")
	}
	final := segments[len(segments)-1]
	if !final.StartEstimated {
		t.Error("arrival without a landing record must be flagged as estimated")
	}
	if final.Start != expected {
		t.Errorf("estimated arrival %s, want %s (one cell north of the bottom)", final.Start, expected)
	}
}

func TestMultiFloorInvalidFloor(t *testing.T) {
	b := stairBuilding(t, true)
	start := FloorRef{Tile: grid.Tile{X: 0, Z: 2}, Floor: 5}
	end := FloorRef{Tile: grid.Tile{X: 0, Z: 0}, Floor: 0}
	if _, ok := FindMultiFloorPath(context.Background(), start, end, b); ok {
		t.Fatal("out-of-range start floor must report no path")
	}
}
