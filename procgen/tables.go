// Package procgen builds a complete universe — galaxy, star systems,
// factions, languages, and a two-century history — from a single 64-bit
// seed (§4.6). Every draw comes from one prng.World's StreamProcgen
// sub-stream, advanced in a fixed order, so Generate(seed, params) called
// twice produces structurally identical output.
package procgen

import "github.com/hyperion-sim/hyperion/catalog"

// Vec3 is a galaxy-space position; the simulation proper only ever needs
// 2D (world.Vec2), but sector placement is 3D per the spiral-arm model.
type Vec3 struct{ X, Y, Z float64 }

// SectorKind classifies a sector by its position in the galaxy's
// structure, each with its own star density weight.
type SectorKind string

const (
	SectorCore     SectorKind = "Core"
	SectorArm      SectorKind = "Arm"
	SectorInterArm SectorKind = "InterArm"
	SectorRim      SectorKind = "Rim"
	SectorVoid     SectorKind = "Void"
)

// SectorDensity is the default probability table for which sector kind a
// newly-placed star falls into; it is not loaded from the Catalog because
// it parameterizes generation, not simulation (catalog.ValidateProbabilityTable
// still checks it, via this package's Validate).
var SectorDensity = map[SectorKind]float64{
	SectorCore:     0.10,
	SectorArm:      0.35,
	SectorInterArm: 0.20,
	SectorRim:      0.30,
	SectorVoid:     0.05,
}

// StarType enumerates spectral classes by rough size/temperature/age, each
// with its own habitability bias.
type StarType string

const (
	StarO StarType = "O" // blue giant, rare, inhospitable
	StarB StarType = "B"
	StarA StarType = "A"
	StarF StarType = "F"
	StarG StarType = "G" // sun-like, most habitable
	StarK StarType = "K"
	StarM StarType = "M" // red dwarf, common
)

var StarTypeTable = map[StarType]float64{
	StarO: 0.002,
	StarB: 0.013,
	StarA: 0.06,
	StarF: 0.08,
	StarG: 0.10,
	StarK: 0.20,
	StarM: 0.545,
}

// HabitabilityBias scales the odds that a star's habitable-zone planet
// draw succeeds, by star type.
var HabitabilityBias = map[StarType]float64{
	StarO: 0.0, StarB: 0.02, StarA: 0.1, StarF: 0.3, StarG: 0.5, StarK: 0.4, StarM: 0.15,
}

// PlanetType is one of the six categories §4.6 names.
type PlanetType string

const (
	PlanetTerrestrial PlanetType = "Terrestrial"
	PlanetGasGiant    PlanetType = "GasGiant"
	PlanetIceGiant    PlanetType = "IceGiant"
	PlanetDwarf       PlanetType = "Dwarf"
	PlanetOcean       PlanetType = "Ocean"
	PlanetVolcanic    PlanetType = "Volcanic"
)

var PlanetTypeTable = map[PlanetType]float64{
	PlanetTerrestrial: 0.25,
	PlanetGasGiant:    0.20,
	PlanetIceGiant:    0.15,
	PlanetDwarf:       0.20,
	PlanetOcean:       0.10,
	PlanetVolcanic:    0.10,
}

// StationType is the kind of installation a system may host.
type StationType string

const (
	StationTrade     StationType = "Trade"
	StationMilitary  StationType = "Military"
	StationResearch  StationType = "Research"
	StationMining    StationType = "Mining"
	StationShipyard  StationType = "Shipyard"
)

var StationTypeTable = map[StationType]float64{
	StationTrade:    0.30,
	StationMilitary: 0.20,
	StationResearch: 0.20,
	StationMining:   0.20,
	StationShipyard: 0.10,
}

// Government is one of the 7 faction government types.
type Government string

const (
	GovDemocracy  Government = "Democracy"
	GovMonarchy   Government = "Monarchy"
	GovTheocracy  Government = "Theocracy"
	GovOligarchy  Government = "Oligarchy"
	GovMilitary   Government = "MilitaryJunta"
	GovCorporate  Government = "Corporate"
	GovHiveMind   Government = "HiveMind"
)

var Governments = []Government{GovDemocracy, GovMonarchy, GovTheocracy, GovOligarchy, GovMilitary, GovCorporate, GovHiveMind}

// Trait is a faction personality/culture tag; some pairs are mutually
// exclusive (Pacifist/Militarist, Xenophile/Xenophobe, Isolationist/Expansionist).
type Trait string

const (
	TraitPacifist     Trait = "Pacifist"
	TraitMilitarist   Trait = "Militarist"
	TraitXenophile    Trait = "Xenophile"
	TraitXenophobe    Trait = "Xenophobe"
	TraitIsolationist Trait = "Isolationist"
	TraitExpansionist Trait = "Expansionist"
	TraitMercantile   Trait = "Mercantile"
	TraitScholarly    Trait = "Scholarly"
	TraitZealous      Trait = "Zealous"
	TraitEgalitarian  Trait = "Egalitarian"
)

var AllTraits = []Trait{
	TraitPacifist, TraitMilitarist, TraitXenophile, TraitXenophobe,
	TraitIsolationist, TraitExpansionist, TraitMercantile, TraitScholarly,
	TraitZealous, TraitEgalitarian,
}

// TraitConflicts lists mutually-exclusive trait pairs (§4.6 "2-4 traits
// with conflict exclusion").
var TraitConflicts = [][2]Trait{
	{TraitPacifist, TraitMilitarist},
	{TraitXenophile, TraitXenophobe},
	{TraitIsolationist, TraitExpansionist},
}

// Relation is the pairwise faction standing computed during generation and
// mutated by history events.
type Relation string

const (
	RelationAllied     Relation = "Allied"
	RelationFriendly   Relation = "Friendly"
	RelationNeutral    Relation = "Neutral"
	RelationUnfriendly Relation = "Unfriendly"
	RelationHostile    Relation = "Hostile"
	RelationWar        Relation = "War"
)

// governmentCompatibility scores how naturally two governments get along,
// in [-1, 1]; combined with trait interactions and proximity to seed the
// initial relation score.
var governmentCompatibility = map[[2]Government]float64{
	{GovDemocracy, GovDemocracy}:  0.6,
	{GovDemocracy, GovMonarchy}:   0.1,
	{GovDemocracy, GovMilitary}:   -0.3,
	{GovDemocracy, GovHiveMind}:   -0.5,
	{GovMilitary, GovMilitary}:    -0.2,
	{GovMilitary, GovHiveMind}:    -0.4,
	{GovCorporate, GovCorporate}:  0.4,
	{GovTheocracy, GovTheocracy}:  0.5,
	{GovOligarchy, GovCorporate}:  0.3,
	{GovHiveMind, GovHiveMind}:    0.2,
}

func govScore(a, b Government) float64 {
	if v, ok := governmentCompatibility[[2]Government{a, b}]; ok {
		return v
	}
	if v, ok := governmentCompatibility[[2]Government{b, a}]; ok {
		return v
	}
	return 0
}

// traitScore adds a bonus/penalty per shared or opposed trait.
func traitScore(a, b []Trait) float64 {
	score := 0.0
	has := func(traits []Trait, t Trait) bool {
		for _, x := range traits {
			if x == t {
				return true
			}
		}
		return false
	}
	for _, t := range a {
		if has(b, t) {
			score += 0.15
		}
	}
	if (has(a, TraitXenophobe) && has(b, TraitXenophile)) || (has(a, TraitXenophile) && has(b, TraitXenophobe)) {
		score -= 0.3
	}
	if has(a, TraitMilitarist) && has(b, TraitMilitarist) {
		score -= 0.2
	}
	if has(a, TraitPacifist) && has(b, TraitPacifist) {
		score += 0.2
	}
	return score
}

// ProceduralTunables mirrors catalog.ProceduralTunables so callers can pass
// the Catalog's loaded tunables straight through to Generate without this
// package importing catalog for anything but that one type and the shared
// probability-table validator.
type ProceduralTunables = catalog.ProceduralTunables

// Validate checks every probability table this package owns sums to 1.0,
// using the same rule the Catalog applies to its own tables.
func Validate() []*catalog.CatalogError {
	var errs []*catalog.CatalogError
	if e := catalog.ValidateProbabilityTable("procgen.SectorDensity", sectorDensityAsFloat()); e != nil {
		errs = append(errs, e)
	}
	if e := catalog.ValidateProbabilityTable("procgen.StarTypeTable", starTypeAsFloat()); e != nil {
		errs = append(errs, e)
	}
	if e := catalog.ValidateProbabilityTable("procgen.PlanetTypeTable", planetTypeAsFloat()); e != nil {
		errs = append(errs, e)
	}
	if e := catalog.ValidateProbabilityTable("procgen.StationTypeTable", stationTypeAsFloat()); e != nil {
		errs = append(errs, e)
	}
	return errs
}

func sectorDensityAsFloat() map[string]float64 {
	out := map[string]float64{}
	for k, v := range SectorDensity {
		out[string(k)] = v
	}
	return out
}

func starTypeAsFloat() map[string]float64 {
	out := map[string]float64{}
	for k, v := range StarTypeTable {
		out[string(k)] = v
	}
	return out
}

func planetTypeAsFloat() map[string]float64 {
	out := map[string]float64{}
	for k, v := range PlanetTypeTable {
		out[string(k)] = v
	}
	return out
}

func stationTypeAsFloat() map[string]float64 {
	out := map[string]float64{}
	for k, v := range StationTypeTable {
		out[string(k)] = v
	}
	return out
}
