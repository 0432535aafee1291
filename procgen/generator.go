package procgen

import (
	"github.com/hyperion-sim/hyperion/catalog"
	"github.com/hyperion-sim/hyperion/prng"
)

// Params bounds the size of the generated universe; zero values fall
// back to defaults sized for a single-server galaxy (100 stars, 5
// factions).
type Params struct {
	NumStars    int
	NumFactions int
}

func (p Params) withDefaults() Params {
	if p.NumStars <= 0 {
		p.NumStars = 100
	}
	if p.NumFactions <= 0 {
		p.NumFactions = 5
	}
	return p
}

// Universe is the complete output of one generation pipeline run: galaxy,
// systems, factions, relations, languages, and history, all structurally
// reproducible from (seed, params) (§4.6, §8 "Procedural" round-trip
// law).
type Universe struct {
	Seed      int64
	Galaxy    Galaxy
	Systems   []System
	Factions  []Faction
	Relations RelationMatrix
	Languages []Language
	History   []HistoryEvent
}

// Generate runs the five-stage procedural pipeline in the fixed order
// §4.6 specifies: galaxy, then systems, then factions (with relations),
// then languages, then history. Every draw comes from the single stream
// rng.Stream(prng.StreamProcgen) derived from seed, so Generate(seed,
// params) called twice — even from different processes — produces
// structurally identical output (§8 scenario 6).
func Generate(seed int64, params Params) Universe {
	return GenerateWithTunables(seed, params, catalog.ProceduralTunables{})
}

// GenerateWithTunables is Generate but threading the Catalog's loaded
// procedural tunables through instead of defaults, for callers that have
// already loaded a Catalog (the normal path; cmd/hyperiond always calls
// this one).
func GenerateWithTunables(seed int64, params Params, tun catalog.ProceduralTunables) Universe {
	params = params.withDefaults()
	rng := prng.NewWorld(seed).Stream(prng.StreamProcgen)

	galaxy := generateGalaxy(rng, tun, params.NumStars)
	systems := generateSystems(rng, galaxy)
	factions := generateFactions(rng, systems, params.NumFactions)
	relations := generateRelations(rng, factions, tun)
	languages := generateLanguages(rng, factions)
	history := generateHistory(rng, factions, relations)

	return Universe{
		Seed:      seed,
		Galaxy:    galaxy,
		Systems:   systems,
		Factions:  factions,
		Relations: relations,
		Languages: languages,
		History:   history,
	}
}
