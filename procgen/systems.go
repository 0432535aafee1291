package procgen

import "math/rand"

// Moon orbits a planet.
type Moon struct {
	Name string
	Size float64
}

// Planet is one body orbiting a star.
type Planet struct {
	Name        string
	Type        PlanetType
	HabitableZone bool
	Moons       []Moon
}

// AsteroidBelt is a non-planet orbital feature.
type AsteroidBelt struct {
	OrbitIndex int
	Density    float64
}

// Station is an installation within a system. It carries no faction of
// its own; generateFactions claims whole systems, not individual stations.
type Station struct {
	Name string
	Type StationType
}

// System is a star plus everything generated to orbit it.
type System struct {
	Star    Star
	Planets []Planet
	Belts   []AsteroidBelt
	Stations []Station
}

// generateSystems builds the planets, moons, belts, and stations for every
// star in the galaxy (§4.6 step 2).
func generateSystems(rng *rand.Rand, galaxy Galaxy) []System {
	systems := make([]System, len(galaxy.Stars))
	for i, star := range galaxy.Stars {
		systems[i] = generateSystem(rng, star)
	}
	return systems
}

func generateSystem(rng *rand.Rand, star Star) System {
	sys := System{Star: star}

	planetCount := rng.Intn(8)
	habitableAssigned := false
	for p := 0; p < planetCount; p++ {
		planetType := drawWeighted(rng, PlanetTypeTable)
		habitable := star.Habitable && !habitableAssigned && planetType == PlanetTerrestrial && rng.Float64() < 0.4
		if habitable {
			habitableAssigned = true
		}

		planet := Planet{Name: planetName(star.Name, p), Type: planetType, HabitableZone: habitable}
		var moonCount int
		if planetType == PlanetGasGiant || planetType == PlanetIceGiant {
			moonCount = rng.Intn(6)
		} else {
			moonCount = rng.Intn(3)
		}
		for m := 0; m < moonCount; m++ {
			planet.Moons = append(planet.Moons, Moon{Name: planetName(star.Name, p) + "-" + string(rune('a'+m)), Size: rng.Float64()})
		}
		sys.Planets = append(sys.Planets, planet)
	}

	if rng.Float64() < 0.4 {
		sys.Belts = append(sys.Belts, AsteroidBelt{OrbitIndex: rng.Intn(planetCount + 1), Density: rng.Float64()})
	}

	const maxStationsPerSystem = 3
	for k := 0; k < maxStationsPerSystem; k++ {
		if rng.Float64() >= 0.25 {
			continue
		}
		stType := drawWeighted(rng, StationTypeTable)
		sys.Stations = append(sys.Stations, Station{Name: planetName(star.Name, 0) + " " + string(stType), Type: stType})
	}

	return sys
}

func planetName(starName string, index int) string {
	numerals := []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII"}
	if index < len(numerals) {
		return starName + " " + numerals[index]
	}
	return starName + " " + numerals[len(numerals)-1]
}
