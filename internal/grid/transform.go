package grid

import "math"

// cardinalEpsilon is the tolerance when testing whether a rotation lands on
// a 90-degree multiple. Rotations come from world placement in radians, so
// small float drift is expected.
const cardinalEpsilon = 1e-6

// IsCardinal reports whether the rotation in radians is a 90-degree
// multiple. Callers should check this before trusting CellToTile for wall
// placement; non-cardinal rotations produce approximate results.
func IsCardinal(rotation float64) bool {
	quarter := rotation / (math.Pi / 2)
	return math.Abs(quarter-math.Round(quarter)) < cardinalEpsilon
}

// CellToTile maps a cell address to the world tile at the cell's center.
// Cell (0,0) is the building's local south-west corner. The building spans
// widthCells x depthCells cells of tilesPerCell tiles each, centered on
// (centerX, centerZ) in world tile units, rotated about that center.
//
// The rotation matrix is exact only for 90-degree multiples; other angles
// give approximate tiles and must be flagged by the caller via IsCardinal.
func CellToTile(col, row int, centerX, centerZ float64, widthCells, depthCells, tilesPerCell int, rotation float64) Tile {
	// Cell center offset from the building center, in tile units. Row 0 is
	// the southernmost (+Z) row so that row grows toward local north.
	localX := (float64(col) - float64(widthCells)/2 + 0.5) * float64(tilesPerCell)
	localZ := (float64(depthCells)/2 - float64(row) - 0.5) * float64(tilesPerCell)

	// Snap cardinal rotations to an exact matrix: Sincos(pi) leaves a tiny
	// residue that Floor would turn into an off-by-one tile.
	sin, cos := math.Sincos(rotation)
	if IsCardinal(rotation) {
		switch quarterTurns(rotation) {
		case 0:
			sin, cos = 0, 1
		case 1:
			sin, cos = 1, 0
		case 2:
			sin, cos = 0, -1
		case 3:
			sin, cos = -1, 0
		}
	}
	worldX := centerX + localX*cos - localZ*sin
	worldZ := centerZ + localX*sin + localZ*cos

	return Tile{
		X: int(math.Floor(worldX)),
		Z: int(math.Floor(worldZ)),
	}
}
