// Package nav computes tile paths over building collision data: a greedy
// diagonal stepper with a breadth-first fallback on a single floor, and a
// floor-by-floor search across stair connectors for multi-floor paths.
package nav

import (
	"github.com/samdwyer/hamlet/internal/grid"
)

const (
	// DefaultMaxIterations bounds BFS expansions per search. The cap acts
	// as the implicit timeout for callers on a frame budget.
	DefaultMaxIterations = 2000
	// maxGreedySteps caps the greedy walk before falling back to BFS.
	maxGreedySteps = 500
	// maxPathLength caps the length of any returned path.
	maxPathLength = 200
)

// Checker answers tile-level movement queries for one floor.
// *collision.FloorCollision satisfies it.
type Checker interface {
	IsWalkable(t grid.Tile) bool
	IsWalkableFrom(target, from grid.Tile) bool
	CanMoveTo(from, to grid.Tile) bool
}

// Result is the outcome of a single-floor search. When Complete is false,
// Tiles is the best-effort path to the closest tile reached; the caller
// decides whether partial progress counts as failure.
type Result struct {
	Tiles    []grid.Tile
	Complete bool
}

// neighborOffsets is the 8-connected neighborhood, cardinals first.
var neighborOffsets = [8][2]int{
	{0, -1}, {1, 0}, {0, 1}, {-1, 0},
	{1, -1}, {1, 1}, {-1, 1}, {-1, -1},
}

// FindPath searches for a path from start to end on one floor. It tries a
// cheap greedy diagonal walk first and falls back to a bounded BFS; when
// BFS exhausts its budget the result degrades to the path toward the
// closest visited tile. maxIterations <= 0 selects DefaultMaxIterations.
func FindPath(start, end grid.Tile, floor Checker, maxIterations int) Result {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	if start == end {
		return Result{Complete: true}
	}
	if tiles, ok := greedyPath(start, end, floor); ok {
		return Result{Tiles: tiles, Complete: true}
	}
	return bfsPath(start, end, floor, maxIterations)
}

// greedyPath walks straight toward the goal, preferring the diagonal step,
// then the cardinal step on the axis with more remaining distance, then
// the other axis. Any dead end aborts the walk entirely: the caller falls
// back to BFS rather than trusting a partial greedy route.
func greedyPath(start, end grid.Tile, floor Checker) ([]grid.Tile, bool) {
	cur := start
	var path []grid.Tile

	for steps := 0; steps < maxGreedySteps; steps++ {
		if cur == end {
			return path, true
		}
		if len(path) >= maxPathLength {
			return nil, false
		}

		dx := sign(end.X - cur.X)
		dz := sign(end.Z - cur.Z)

		var candidates [3]grid.Tile
		n := 0
		if dx != 0 && dz != 0 {
			candidates[n] = cur.Add(dx, dz)
			n++
		}
		stepX := cur.Add(dx, 0)
		stepZ := cur.Add(0, dz)
		if abs(end.X-cur.X) >= abs(end.Z-cur.Z) {
			n = pushStep(&candidates, n, cur, stepX)
			n = pushStep(&candidates, n, cur, stepZ)
		} else {
			n = pushStep(&candidates, n, cur, stepZ)
			n = pushStep(&candidates, n, cur, stepX)
		}

		moved := false
		for i := 0; i < n; i++ {
			if floor.CanMoveTo(cur, candidates[i]) {
				cur = candidates[i]
				path = append(path, cur)
				moved = true
				break
			}
		}
		if !moved {
			return nil, false
		}
	}
	return nil, false
}

// pushStep appends a cardinal candidate unless it is a zero step.
func pushStep(candidates *[3]grid.Tile, n int, cur, step grid.Tile) int {
	if step == cur {
		return n
	}
	candidates[n] = step
	return n + 1
}

// bfsPath runs a bounded breadth-first search over the 8-connected
// neighborhood, reconstructing the shortest step-count path through parent
// back-pointers. Diagonal expansions are validated by the corner-clip rule
// inside CanMoveTo. If the budget runs out before reaching end, the path
// leads to the visited tile with the smallest Manhattan distance to end.
func bfsPath(start, end grid.Tile, floor Checker, maxIterations int) Result {
	parents := map[grid.Tile]grid.Tile{start: start}
	queue := []grid.Tile{start}

	closest := start
	closestDist := start.ManhattanDistance(end)

	for iterations := 0; len(queue) > 0 && iterations < maxIterations; iterations++ {
		cur := queue[0]
		queue = queue[1:]

		if cur == end {
			return Result{Tiles: reconstruct(parents, start, cur), Complete: true}
		}
		if d := cur.ManhattanDistance(end); d < closestDist {
			closest = cur
			closestDist = d
		}

		for _, off := range neighborOffsets {
			next := cur.Add(off[0], off[1])
			if _, seen := parents[next]; seen {
				continue
			}
			if !floor.CanMoveTo(cur, next) {
				continue
			}
			parents[next] = cur
			queue = append(queue, next)
		}
	}

	return Result{Tiles: reconstruct(parents, start, closest), Complete: false}
}

// reconstruct walks the parent chain back from goal to start and returns
// the forward path, capped at maxPathLength tiles.
func reconstruct(parents map[grid.Tile]grid.Tile, start, goal grid.Tile) []grid.Tile {
	if goal == start {
		return nil
	}
	var reversed []grid.Tile
	for cur := goal; cur != start; cur = parents[cur] {
		reversed = append(reversed, cur)
	}

	path := make([]grid.Tile, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		path = append(path, reversed[i])
		if len(path) >= maxPathLength {
			break
		}
	}
	return path
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
