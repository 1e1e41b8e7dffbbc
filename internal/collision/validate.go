package collision

import (
	"fmt"

	"github.com/samdwyer/hamlet/internal/grid"
)

// PathViolation is the error produced when a computed path crosses a wall
// or clips a corner. Any occurrence is a logic bug in wall generation or
// movement checking, never a normal runtime condition, so callers must not
// swallow it.
type PathViolation struct {
	Step        int
	From, To    grid.Tile
	FromBlocked DirSet
	ToBlocked   DirSet
	Reason      string
}

func (v *PathViolation) Error() string {
	return fmt.Sprintf(
		"path violation at step %d: %s %s -> %s (walls on %s: %s, walls on %s: %s)",
		v.Step, v.Reason, v.From, v.To,
		v.From, v.FromBlocked, v.To, v.ToBlocked,
	)
}

// ValidatePath replays every consecutive tile pair of the start-prefixed
// path and re-asserts the same wall-block and corner-clip conditions as
// CanMoveTo. It is a correctness oracle: a nil result means the path never
// crosses a wall.
func ValidatePath(path []grid.Tile, start grid.Tile, floor *FloorCollision) error {
	prev := start
	for i, next := range path {
		if prev == next {
			continue
		}
		if err := floor.checkStep(i, prev, next); err != nil {
			return err
		}
		prev = next
	}
	return nil
}

// checkStep re-derives why a step is illegal, so violations carry enough
// detail to locate the generation or movement bug behind them.
func (f *FloorCollision) checkStep(step int, from, to grid.Tile) error {
	violation := func(reason string) error {
		return &PathViolation{
			Step:        step,
			From:        from,
			To:          to,
			FromBlocked: f.BlockedSides(from),
			ToBlocked:   f.BlockedSides(to),
			Reason:      reason,
		}
	}

	dx := to.X - from.X
	dz := to.Z - from.Z
	if abs(dx) > 1 || abs(dz) > 1 {
		return violation("step is not between adjacent tiles")
	}
	if !f.IsWalkable(to) {
		return violation("destination tile is not walkable")
	}
	if !f.IsWalkableFrom(to, from) {
		if dir, ok := grid.StepDirection(from, to); ok {
			return violation(fmt.Sprintf("wall blocks %s step", dir))
		}
		return violation("wall blocks diagonal step")
	}
	if dx != 0 && dz != 0 && !f.CanMoveTo(from, to) {
		return violation("diagonal step clips a wall corner")
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
