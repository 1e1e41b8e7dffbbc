package layout

import (
	"context"
	"math/rand"
	"reflect"
	"testing"
)

func TestGeneratorReproducibility(t *testing.T) {
	seed := int64(12345)
	ctx := context.Background()

	g1 := NewGenerator(rand.New(rand.NewSource(seed)))
	g2 := NewGenerator(rand.New(rand.NewSource(seed)))

	b1 := g1.Generate(ctx, 6, 5, 3)
	b2 := g2.Generate(ctx, 6, 5, 3)

	if len(b1.Floors) != len(b2.Floors) {
		t.Fatalf("floor count mismatch: %d != %d", len(b1.Floors), len(b2.Floors))
	}
	for f := range b1.Floors {
		p1, p2 := b1.Floors[f], b2.Floors[f]
		if !reflect.DeepEqual(p1.RoomMap, p2.RoomMap) {
			t.Errorf("floor %d room maps differ", f)
		}
		if !reflect.DeepEqual(p1.InternalOpenings, p2.InternalOpenings) {
			t.Errorf("floor %d internal openings differ", f)
		}
		if !reflect.DeepEqual(p1.ExternalOpenings, p2.ExternalOpenings) {
			t.Errorf("floor %d external openings differ", f)
		}
		if !reflect.DeepEqual(p1.Stair, p2.Stair) {
			t.Errorf("floor %d stairs differ", f)
		}
	}
}

func TestGeneratorDifferentSeeds(t *testing.T) {
	ctx := context.Background()
	b1 := NewGenerator(rand.New(rand.NewSource(1))).Generate(ctx, 8, 8, 2)
	b2 := NewGenerator(rand.New(rand.NewSource(99))).Generate(ctx, 8, 8, 2)

	identical := true
	for f := range b1.Floors {
		if !reflect.DeepEqual(b1.Floors[f].RoomMap, b2.Floors[f].RoomMap) ||
			!reflect.DeepEqual(b1.Floors[f].InternalOpenings, b2.Floors[f].InternalOpenings) {
			identical = false
			break
		}
	}
	if identical {
		t.Error("layouts with different seeds should not be identical")
	}
}

func TestGeneratorStructure(t *testing.T) {
	ctx := context.Background()
	b := NewGenerator(rand.New(rand.NewSource(7))).Generate(ctx, 6, 5, 3)

	if len(b.Floors) != 3 {
		t.Fatalf("floors = %d, want 3", len(b.Floors))
	}

	for f, plan := range b.Floors {
		// Full footprint with every cell assigned to a room.
		for row := 0; row < b.DepthCells; row++ {
			for col := 0; col < b.WidthCells; col++ {
				if !plan.Occupied(col, row) {
					t.Fatalf("floor %d cell (%d,%d) should be occupied", f, col, row)
				}
				if plan.RoomID(col, row) < 0 {
					t.Fatalf("floor %d cell (%d,%d) has no room", f, col, row)
				}
			}
		}

		// Every floor below the top needs a stair with a landing one cell
		// along its direction of ascent.
		if f < len(b.Floors)-1 {
			if plan.Stair == nil {
				t.Fatalf("floor %d is missing its staircase", f)
			}
			s := plan.Stair
			lcol, lrow := NeighborCell(s.Col, s.Row, s.Direction)
			if s.LandingCol != lcol || s.LandingRow != lrow {
				t.Errorf("floor %d landing (%d,%d), want (%d,%d)", f, s.LandingCol, s.LandingRow, lcol, lrow)
			}
		} else if plan.Stair != nil {
			t.Errorf("top floor should not have a stair")
		}
	}

	// Ground floor has an entry door on the southern wall.
	entrance := false
	for col := 0; col < b.WidthCells; col++ {
		if o, ok := b.Floors[0].ExternalOpenings[OpeningKey(col, 0, South)]; ok && o == OpeningDoor {
			entrance = true
		}
	}
	if !entrance {
		t.Error("ground floor is missing an entry door")
	}
}

func TestOpeningAtConsultsBothSides(t *testing.T) {
	plan := NewFloorPlan(2, 1)
	plan.InternalOpenings[OpeningKey(1, 0, West)] = OpeningDoor

	// The same edge seen from cell (0,0) looking east.
	if o, ok := plan.OpeningAt(plan.InternalOpenings, 0, 0, East); !ok || o != OpeningDoor {
		t.Error("opening should be visible from the neighboring cell")
	}
	if _, ok := plan.OpeningAt(plan.InternalOpenings, 0, 0, West); ok {
		t.Error("no opening exists on the west edge")
	}
}

func TestOpeningTypePassage(t *testing.T) {
	if !OpeningDoor.AllowsPassage() || !OpeningArch.AllowsPassage() {
		t.Error("doors and arches permit passage")
	}
	if OpeningWindow.AllowsPassage() {
		t.Error("windows never permit passage")
	}
}
