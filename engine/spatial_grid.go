package engine

import (
	"math"

	"github.com/hyperion-sim/hyperion/world"
)

// SpatialGrid is a uniform spatial hash used for collision broad-phase
// (§4.4 phase 8). Grounded on the teacher's server/spatial_grid.go, widened
// from a fixed galaxy-size grid of int player indices to a ship/projectile
// id grid sized off the catalog's max_position and max_collision_distance
// tunables rather than a hardcoded constant.
type SpatialGrid struct {
	cellSize   float64
	halfExtent float64
	cols       int
	ships      map[int64][]world.ShipID
	projectiles map[int64][]world.ProjectileID
}

// NewSpatialGrid sizes cells to cellSize (at least the widest collision or
// blast radius in play, per the teacher's comment on GridCellSize) over a
// square region [-maxPosition, maxPosition] on each axis.
func NewSpatialGrid(maxPosition, cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 3000.0
	}
	cols := int(math.Ceil(2*maxPosition/cellSize)) + 1
	if cols < 1 {
		cols = 1
	}
	return &SpatialGrid{
		cellSize:   cellSize,
		halfExtent: maxPosition,
		cols:       cols,
	}
}

func (g *SpatialGrid) clear() {
	g.ships = make(map[int64][]world.ShipID)
	g.projectiles = make(map[int64][]world.ProjectileID)
}

func (g *SpatialGrid) cellIndex(pos world.Vec2) int64 {
	col := int64((pos.X + g.halfExtent) / g.cellSize)
	row := int64((pos.Y + g.halfExtent) / g.cellSize)
	if col < 0 {
		col = 0
	} else if col >= int64(g.cols) {
		col = int64(g.cols) - 1
	}
	if row < 0 {
		row = 0
	} else if row >= int64(g.cols) {
		row = int64(g.cols) - 1
	}
	return row*int64(g.cols) + col
}

func (g *SpatialGrid) insertShip(id world.ShipID, pos world.Vec2) {
	idx := g.cellIndex(pos)
	g.ships[idx] = append(g.ships[idx], id)
}

func (g *SpatialGrid) insertProjectile(id world.ProjectileID, pos world.Vec2) {
	idx := g.cellIndex(pos)
	g.projectiles[idx] = append(g.projectiles[idx], id)
}

// indexWorld rebuilds the grid for one tick from live ships and projectiles.
func (g *SpatialGrid) indexWorld(ships []*world.Ship, projectiles []*world.Projectile) {
	g.clear()
	for _, s := range ships {
		if s.Destroyed {
			continue
		}
		g.insertShip(s.ID, s.Position)
	}
	for _, p := range projectiles {
		if p.Despawn {
			continue
		}
		g.insertProjectile(p.ID, p.Position)
	}
}

// nearbyShips returns ship ids that might be within range of pos; the
// caller still performs the exact distance check (matches the teacher's
// GetNearby contract).
func (g *SpatialGrid) nearbyShips(pos world.Vec2) []world.ShipID {
	col := int64((pos.X + g.halfExtent) / g.cellSize)
	row := int64((pos.Y + g.halfExtent) / g.cellSize)

	var result []world.ShipID
	for dr := int64(-1); dr <= 1; dr++ {
		for dc := int64(-1); dc <= 1; dc++ {
			c, r := col+dc, row+dr
			if c < 0 || c >= int64(g.cols) || r < 0 || r >= int64(g.cols) {
				continue
			}
			idx := r*int64(g.cols) + c
			result = append(result, g.ships[idx]...)
		}
	}
	return result
}

func (g *SpatialGrid) nearbyProjectiles(pos world.Vec2) []world.ProjectileID {
	col := int64((pos.X + g.halfExtent) / g.cellSize)
	row := int64((pos.Y + g.halfExtent) / g.cellSize)

	var result []world.ProjectileID
	for dr := int64(-1); dr <= 1; dr++ {
		for dc := int64(-1); dc <= 1; dc++ {
			c, r := col+dc, row+dr
			if c < 0 || c >= int64(g.cols) || r < 0 || r >= int64(g.cols) {
				continue
			}
			idx := r*int64(g.cols) + c
			result = append(result, g.projectiles[idx]...)
		}
	}
	return result
}
