package grid

import (
	"math"
	"testing"
)

func TestDirectionOpposite(t *testing.T) {
	pairs := map[Direction]Direction{
		North: South,
		South: North,
		East:  West,
		West:  East,
	}
	for dir, want := range pairs {
		if got := dir.Opposite(); got != want {
			t.Errorf("%s.Opposite() = %s, want %s", dir, got, want)
		}
	}
}

func TestDirectionRotated(t *testing.T) {
	tests := []struct {
		name     string
		dir      Direction
		rotation float64
		want     Direction
	}{
		{"no rotation", North, 0, North},
		{"quarter turn", North, math.Pi / 2, East},
		{"half turn", North, math.Pi, South},
		{"three quarters", North, 3 * math.Pi / 2, West},
		{"full turn", East, 2 * math.Pi, East},
		{"negative quarter", North, -math.Pi / 2, West},
		{"west quarter turn", West, math.Pi / 2, North},
		{"snaps to nearest", South, math.Pi/2 + 0.01, West},
	}
	for _, tt := range tests {
		if got := tt.dir.Rotated(tt.rotation); got != tt.want {
			t.Errorf("%s: %s.Rotated(%.3f) = %s, want %s", tt.name, tt.dir, tt.rotation, got, tt.want)
		}
	}
}

func TestIsCardinal(t *testing.T) {
	cardinal := []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2, -math.Pi, 4 * math.Pi}
	for _, r := range cardinal {
		if !IsCardinal(r) {
			t.Errorf("IsCardinal(%.4f) = false, want true", r)
		}
	}
	skewed := []float64{0.3, math.Pi / 4, math.Pi/2 + 0.05}
	for _, r := range skewed {
		if IsCardinal(r) {
			t.Errorf("IsCardinal(%.4f) = true, want false", r)
		}
	}
}

func TestStepDirection(t *testing.T) {
	from := Tile{X: 3, Z: 3}
	tests := []struct {
		to   Tile
		want Direction
		ok   bool
	}{
		{Tile{3, 2}, North, true},
		{Tile{3, 4}, South, true},
		{Tile{4, 3}, East, true},
		{Tile{2, 3}, West, true},
		{Tile{4, 4}, North, false}, // diagonal
		{Tile{3, 3}, North, false}, // no step
	}
	for _, tt := range tests {
		got, ok := StepDirection(from, tt.to)
		if ok != tt.ok {
			t.Errorf("StepDirection(%s, %s) ok = %v, want %v", from, tt.to, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("StepDirection(%s, %s) = %s, want %s", from, tt.to, got, tt.want)
		}
	}
}

func TestCellToTileCardinalRotations(t *testing.T) {
	// A 2x2-cell building centered on the origin with 4 tiles per cell.
	// Cell (0,0) is the local south-west corner; its center sits at
	// (-2, +2) in local tiles.
	tests := []struct {
		name     string
		rotation float64
		want     Tile
	}{
		{"rotation 0", 0, Tile{X: -2, Z: 2}},
		{"rotation 90", math.Pi / 2, Tile{X: -2, Z: -2}},
		{"rotation 180", math.Pi, Tile{X: 2, Z: -2}},
		{"rotation 270", 3 * math.Pi / 2, Tile{X: 2, Z: 2}},
	}
	for _, tt := range tests {
		got := CellToTile(0, 0, 0, 0, 2, 2, 4, tt.rotation)
		if got != tt.want {
			t.Errorf("%s: CellToTile = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestCellToTileCenterOffset(t *testing.T) {
	// Moving the building center moves every cell tile with it.
	base := CellToTile(1, 1, 0, 0, 3, 3, 4, 0)
	moved := CellToTile(1, 1, 40, -16, 3, 3, 4, 0)
	if moved.X-base.X != 40 || moved.Z-base.Z != -16 {
		t.Errorf("center offset not applied: base %s, moved %s", base, moved)
	}
}

func TestTileSet(t *testing.T) {
	s := make(TileSet)
	a := Tile{X: 1, Z: 2}
	if s.Contains(a) {
		t.Error("empty set should not contain any tile")
	}
	s.Add(a)
	if !s.Contains(a) {
		t.Error("set should contain added tile")
	}
	if s.Contains(Tile{X: 2, Z: 1}) {
		t.Error("set should not contain transposed tile")
	}
}
