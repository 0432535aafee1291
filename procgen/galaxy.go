package procgen

import (
	"math"
	"math/rand"
)

// Star is one star placed in the galaxy.
type Star struct {
	ID          int
	Name        string
	Sector      SectorKind
	GridCell    [3]int
	Position    Vec3
	Type        StarType
	Habitable   bool
}

// Galaxy is the top-level structure: a sector grid populated with stars.
type Galaxy struct {
	RadiusLY   float64
	Flattening float64
	GridSize   int
	Stars      []Star
}

// generateGalaxy places numStars stars across the sector grid (§4.6 step
// 1): each star's sector is drawn from SectorDensity, its position placed
// consistent with that sector's typical galactocentric radius (spiral arms
// wind outward from the core; the void is sparse by construction of its
// low density weight rather than an explicit radius band), and its
// spectral type drawn from StarTypeTable.
func generateGalaxy(rng *rand.Rand, tun ProceduralTunables, numStars int) Galaxy {
	radius := tun.GalaxyRadiusLY
	if radius <= 0 {
		radius = 50000
	}
	flattening := tun.Flattening
	if flattening <= 0 {
		flattening = 0.15
	}
	gridSize := tun.SectorGridSize
	if gridSize <= 0 {
		gridSize = 10
	}

	g := Galaxy{RadiusLY: radius, Flattening: flattening, GridSize: gridSize}
	for i := 0; i < numStars; i++ {
		sector := drawWeighted(rng, SectorDensity)

		var rMin, rMax float64
		var spiral bool
		switch sector {
		case SectorCore:
			rMin, rMax = 0, 0.15
		case SectorArm:
			rMin, rMax, spiral = 0.15, 0.65, true
		case SectorInterArm:
			rMin, rMax = 0.15, 0.65
		case SectorRim:
			rMin, rMax = 0.65, 1.0
		case SectorVoid:
			rMin, rMax = 0, 1.0
		}
		frac := rMin + rng.Float64()*(rMax-rMin)
		angle := rng.Float64() * 2 * math.Pi
		if spiral {
			angle += frac * 6 // winds the arm outward
		}

		r := frac * radius
		pos := Vec3{
			X: r * math.Cos(angle),
			Y: r * math.Sin(angle),
			Z: (rng.Float64()*2 - 1) * radius * flattening * (1 - frac*0.5),
		}

		cell := [3]int{
			clampCell(int((pos.X/radius+1)/2*float64(gridSize)), gridSize),
			clampCell(int((pos.Y/radius+1)/2*float64(gridSize)), gridSize),
			clampCell(int((pos.Z/(radius*flattening)+1)/2*float64(gridSize)), gridSize),
		}

		starType := drawWeighted(rng, StarTypeTable)
		habitable := rng.Float64() < HabitabilityBias[starType]

		g.Stars = append(g.Stars, Star{
			ID: i, Name: starName(i), Sector: sector, GridCell: cell,
			Position: pos, Type: starType, Habitable: habitable,
		})
	}
	return g
}

func clampCell(v, size int) int {
	if v < 0 {
		return 0
	}
	if v >= size {
		return size - 1
	}
	return v
}

var starNamePrefixes = []string{"Ald", "Ber", "Cor", "Dra", "Eri", "Fen", "Gol", "Hyr", "Ith", "Jav", "Kel", "Lun", "Mer", "Nor", "Oss", "Per", "Quo", "Rhe", "Sol", "Tev"}
var starNameSuffixes = []string{"ara", "eth", "ion", "or", "us", "ix", "en", "ath", "oss", "yra"}

func starName(i int) string {
	p := starNamePrefixes[i%len(starNamePrefixes)]
	s := starNameSuffixes[(i/len(starNamePrefixes))%len(starNameSuffixes)]
	return p + s
}
