package procgen

import "math/rand"

// Faction is one polity competing for territory and relations (§4.6 step
// 3).
type Faction struct {
	ID         int
	Name       string
	Government Government
	Traits     []Trait
	Territory  []int // star IDs claimed
}

// generateFactions draws F factions, each with a government, 2-4
// conflict-free traits, and a claimed territory of inhabited systems.
// Territory claims are greedy and disjoint: a system claimed by one
// faction cannot also be claimed by another, matching the "assign
// territories by picking inhabited systems" wording in §4.6 step 3.
func generateFactions(rng *rand.Rand, systems []System, numFactions int) []Faction {
	var inhabitable []int
	for i, sys := range systems {
		if sys.Star.Habitable {
			inhabitable = append(inhabitable, i)
		}
	}

	factions := make([]Faction, numFactions)
	claimed := make(map[int]bool)
	for f := 0; f < numFactions; f++ {
		gov := pick(rng, Governments)
		traits := drawTraits(rng)
		factions[f] = Faction{
			ID:         f,
			Name:       factionName(rng),
			Government: gov,
			Traits:     traits,
		}
	}

	// Round-robin territory assignment so every faction gets a fair share
	// of the inhabitable systems before any faction gets a second one.
	if len(inhabitable) > 0 {
		idx := 0
		for len(claimed) < len(inhabitable) {
			f := idx % numFactions
			star := nextUnclaimed(inhabitable, claimed)
			if star < 0 {
				break
			}
			factions[f].Territory = append(factions[f].Territory, star)
			claimed[star] = true
			idx++
		}
	}

	return factions
}

func nextUnclaimed(systems []int, claimed map[int]bool) int {
	for _, s := range systems {
		if !claimed[s] {
			return s
		}
	}
	return -1
}

// drawTraits samples 2-4 traits for a faction, rejecting draws that would
// add a trait in TraitConflicts with one already held.
func drawTraits(rng *rand.Rand) []Trait {
	n := 2 + rng.Intn(3) // 2..4
	var chosen []Trait
	attempts := 0
	for len(chosen) < n && attempts < 50 {
		attempts++
		t := pick(rng, AllTraits)
		if hasTrait(chosen, t) || conflictsWithAny(chosen, t) {
			continue
		}
		chosen = append(chosen, t)
	}
	return chosen
}

func hasTrait(traits []Trait, t Trait) bool {
	for _, x := range traits {
		if x == t {
			return true
		}
	}
	return false
}

func conflictsWithAny(held []Trait, candidate Trait) bool {
	for _, pair := range TraitConflicts {
		var opposite Trait
		switch candidate {
		case pair[0]:
			opposite = pair[1]
		case pair[1]:
			opposite = pair[0]
		default:
			continue
		}
		if hasTrait(held, opposite) {
			return true
		}
	}
	return false
}

var factionPrefixes = []string{"Vel", "Kor", "Zha", "Mir", "Thess", "Ark", "Nev", "Ossi", "Quel", "Dren"}
var factionSuffixes = []string{"ari Accord", "ian Compact", "oth Union", "an Dominion", "ik Concord", "ite Remnant", "ar Hegemony"}

func factionName(rng *rand.Rand) string {
	return pick(rng, factionPrefixes) + pick(rng, factionSuffixes)
}

// RelationMatrix holds the pairwise standing between every faction pair,
// indexed by the lower-id-first key used throughout this package.
type RelationMatrix map[[2]int]Relation

// generateRelations computes initial pairwise relations from government
// compatibility, trait interaction, and territory proximity (§4.6 step
// 3). Thresholds come from the catalog's procedural tunables when
// provided, falling back to defaults calibrated against the [-1,1]
// score range government/trait scoring produces.
func generateRelations(rng *rand.Rand, factions []Faction, tun ProceduralTunables) RelationMatrix {
	thresholds := relationThresholds(tun)
	rel := make(RelationMatrix)
	for i := 0; i < len(factions); i++ {
		for j := i + 1; j < len(factions); j++ {
			score := govScore(factions[i].Government, factions[j].Government)
			score += traitScore(factions[i].Traits, factions[j].Traits)
			score += proximityBonus(factions[i], factions[j])
			rel[[2]int{i, j}] = scoreToRelation(score, thresholds)
		}
	}
	return rel
}

func proximityBonus(a, b Faction) float64 {
	shared := 0
	for _, sa := range a.Territory {
		for _, sb := range b.Territory {
			if sa == sb {
				shared++
			}
		}
	}
	if shared > 0 {
		return -0.2 // contested systems breed friction
	}
	return 0
}

func relationThresholds(tun ProceduralTunables) map[string]float64 {
	if len(tun.RelationThresholds) > 0 {
		return tun.RelationThresholds
	}
	return map[string]float64{
		"allied":     0.6,
		"friendly":   0.25,
		"neutral":    -0.1,
		"unfriendly": -0.4,
		"hostile":    -0.7,
	}
}

func scoreToRelation(score float64, t map[string]float64) Relation {
	switch {
	case score >= t["allied"]:
		return RelationAllied
	case score >= t["friendly"]:
		return RelationFriendly
	case score >= t["neutral"]:
		return RelationNeutral
	case score >= t["unfriendly"]:
		return RelationUnfriendly
	case score >= t["hostile"]:
		return RelationHostile
	default:
		return RelationWar
	}
}

// RelationKey returns the canonical lookup key for a faction pair, regardless of
// argument order.
func RelationKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}
