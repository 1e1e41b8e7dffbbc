package nav

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/hamlet/internal/collision"
	"github.com/samdwyer/hamlet/internal/grid"
	"github.com/samdwyer/hamlet/internal/telemetry"
)

// FloorRef addresses a tile on a specific floor of a building.
type FloorRef struct {
	Tile  grid.Tile
	Floor int
}

// Segment is one per-floor leg of a multi-floor path. Floor and Elevation
// let renderers interpolate elevation smoothly across stair transitions.
type Segment struct {
	Floor     int
	Elevation float64
	// Start is the tile the leg begins on; Tiles holds the steps after it.
	Start grid.Tile
	Tiles []grid.Tile
	// EndsAtStair marks legs that finish on a stair connector rather than
	// the requested destination.
	EndsAtStair bool
	// StartEstimated marks legs whose starting tile was estimated by
	// offsetting along the stair direction because no matching connector
	// record existed on this floor.
	StartEstimated bool
	// Complete reports whether the single-floor search reached the leg's
	// requested endpoint, mirroring Result.Complete.
	Complete bool
}

// FindMultiFloorPath chains single-floor searches through stair connectors
// from start to end. It returns the ordered per-floor segments and true on
// success, or nil and false when no bridging stair exists or the
// transition budget is exhausted. An unreachable destination is a normal
// outcome, never a panic.
func FindMultiFloorPath(ctx context.Context, start, end FloorRef, b *collision.BuildingCollision) ([]Segment, bool) {
	tracer := telemetry.Tracer("nav")
	_, span := tracer.Start(ctx, "nav.multifloor")
	defer span.End()

	span.SetAttributes(
		attribute.Int("nav.start_floor", start.Floor),
		attribute.Int("nav.end_floor", end.Floor),
	)

	var segments []Segment
	cur := start
	startEstimated := false

	// Each iteration either finishes on the destination floor or moves one
	// floor toward it, so 2x the floor count covers any legal chain with
	// slack for detours.
	maxTransitions := 2 * len(b.Floors)
	for i := 0; i < maxTransitions; i++ {
		floor := b.Floor(cur.Floor)
		if floor == nil {
			span.SetAttributes(attribute.String("nav.outcome", "invalid floor"))
			return nil, false
		}

		if cur.Floor == end.Floor {
			res := FindPath(cur.Tile, end.Tile, floor, DefaultMaxIterations)
			segments = append(segments, Segment{
				Floor:          cur.Floor,
				Elevation:      floor.Elevation,
				Start:          cur.Tile,
				Tiles:          res.Tiles,
				StartEstimated: startEstimated,
				Complete:       res.Complete,
			})
			span.SetAttributes(
				attribute.String("nav.outcome", "found"),
				attribute.Int("nav.segments", len(segments)),
			)
			return segments, true
		}

		ascending := end.Floor > cur.Floor
		stair, ok := selectStair(floor, cur.Floor, ascending)
		if !ok {
			span.SetAttributes(attribute.String("nav.outcome", "no bridging stair"))
			return nil, false
		}

		res := FindPath(cur.Tile, stair.Tile, floor, DefaultMaxIterations)
		segments = append(segments, Segment{
			Floor:          cur.Floor,
			Elevation:      floor.Elevation,
			Start:          cur.Tile,
			Tiles:          res.Tiles,
			EndsAtStair:    true,
			StartEstimated: startEstimated,
			Complete:       res.Complete,
		})

		cur, startEstimated = stairArrival(b, stair, ascending)
	}

	span.SetAttributes(attribute.String("nav.outcome", "transition budget exhausted"))
	return nil, false
}

// selectStair picks the connector on the floor that moves toward the
// destination: a bottom record when ascending, a landing record when
// descending. An exact (fromFloor, toFloor) match is preferred, with any
// stair heading one floor in the right direction as fallback.
func selectStair(floor *collision.FloorCollision, current int, ascending bool) (collision.StairTile, bool) {
	var fallback collision.StairTile
	haveFallback := false

	for _, s := range floor.Stairs {
		if ascending {
			if s.IsLanding {
				continue
			}
			if s.FromFloor == current && s.ToFloor == current+1 {
				return s, true
			}
			if s.FromFloor == current && !haveFallback {
				fallback = s
				haveFallback = true
			}
		} else {
			if !s.IsLanding {
				continue
			}
			if s.ToFloor == current && s.FromFloor == current-1 {
				return s, true
			}
			if s.ToFloor == current && !haveFallback {
				fallback = s
				haveFallback = true
			}
		}
	}
	return fallback, haveFallback
}

// stairArrival locates where the agent stands after taking the stair: the
// matching connector record on the adjacent floor (same direction and
// floor pair, opposite end). When no exact match exists the arrival is
// estimated by offsetting one cell width along the stair direction, and
// the estimate is flagged for the caller.
func stairArrival(b *collision.BuildingCollision, stair collision.StairTile, ascending bool) (FloorRef, bool) {
	adjacent := stair.ToFloor
	if !ascending {
		adjacent = stair.FromFloor
	}

	if floor := b.Floor(adjacent); floor != nil {
		for _, s := range floor.Stairs {
			if s.IsLanding != stair.IsLanding &&
				s.Direction == stair.Direction &&
				s.FromFloor == stair.FromFloor &&
				s.ToFloor == stair.ToFloor {
				return FloorRef{Tile: s.Tile, Floor: adjacent}, false
			}
		}
	}

	dx, dz := stair.Direction.Vector()
	span := collision.TilesPerCell
	if !ascending {
		span = -span
	}
	estimated := stair.Tile.Add(dx*span, dz*span)
	return FloorRef{Tile: estimated, Floor: adjacent}, true
}
