package procgen

import "math/rand"

// HistoryEventKind is one of the weighted timeline event types §4.6 step
// 5 names.
type HistoryEventKind string

const (
	EventFirstContact HistoryEventKind = "FirstContact"
	EventWar          HistoryEventKind = "War"
	EventPeace        HistoryEventKind = "Peace"
	EventAlliance     HistoryEventKind = "Alliance"
	EventTrade        HistoryEventKind = "TradeAgreement"
	EventBetrayal     HistoryEventKind = "Betrayal"
	EventSkirmish     HistoryEventKind = "Skirmish"
)

// HistoryEvent is one dated entry in the 200-year timeline.
type HistoryEvent struct {
	Year     int
	Kind     HistoryEventKind
	FactionA int
	FactionB int
}

const historyYears = 200

// generateHistory builds the timeline: a FirstContact event for every
// faction pair, placed at a random year, followed by weighted events
// biased by the current relation between the pair, each of which may in
// turn mutate that relation (§4.6 step 5).
func generateHistory(rng *rand.Rand, factions []Faction, rel RelationMatrix) []HistoryEvent {
	var events []HistoryEvent

	type pair struct{ a, b int }
	var pairs []pair
	for i := 0; i < len(factions); i++ {
		for j := i + 1; j < len(factions); j++ {
			pairs = append(pairs, pair{i, j})
		}
	}

	contactYear := make(map[pair]int, len(pairs))
	for _, p := range pairs {
		year := rng.Intn(historyYears / 4) // first contact happens early
		contactYear[p] = year
		events = append(events, HistoryEvent{Year: year, Kind: EventFirstContact, FactionA: p.a, FactionB: p.b})
	}

	// Weighted follow-on events: each pair gets a small number of
	// post-contact events, each independently rolled and year-ordered
	// after first contact.
	for _, p := range pairs {
		numEvents := rng.Intn(5) // 0..4 follow-on events
		year := contactYear[p]
		for e := 0; e < numEvents; e++ {
			if year >= historyYears {
				break
			}
			year += 1 + rng.Intn((historyYears-year)/(numEvents-e+1)+1)
			if year >= historyYears {
				break
			}
			kind := drawHistoryEvent(rng, rel[RelationKey(p.a, p.b)])
			events = append(events, HistoryEvent{Year: year, Kind: kind, FactionA: p.a, FactionB: p.b})
			rel[RelationKey(p.a, p.b)] = applyHistoryEvent(rel[RelationKey(p.a, p.b)], kind)
		}
	}

	return events
}

// historyWeights biases the follow-on event draw by the pair's current
// relation: allies trend toward more alliance/trade events, hostile pairs
// toward war/skirmish.
func historyWeights(rel Relation) map[HistoryEventKind]float64 {
	switch rel {
	case RelationAllied:
		return map[HistoryEventKind]float64{EventAlliance: 0.4, EventTrade: 0.4, EventBetrayal: 0.1, EventPeace: 0.1}
	case RelationFriendly:
		return map[HistoryEventKind]float64{EventTrade: 0.5, EventAlliance: 0.2, EventPeace: 0.2, EventSkirmish: 0.1}
	case RelationNeutral:
		return map[HistoryEventKind]float64{EventTrade: 0.3, EventSkirmish: 0.2, EventPeace: 0.2, EventAlliance: 0.1, EventWar: 0.2}
	case RelationUnfriendly:
		return map[HistoryEventKind]float64{EventSkirmish: 0.4, EventWar: 0.3, EventPeace: 0.2, EventTrade: 0.1}
	case RelationHostile:
		return map[HistoryEventKind]float64{EventWar: 0.5, EventSkirmish: 0.35, EventPeace: 0.15}
	case RelationWar:
		return map[HistoryEventKind]float64{EventWar: 0.6, EventSkirmish: 0.3, EventPeace: 0.1}
	default:
		return map[HistoryEventKind]float64{EventSkirmish: 1.0}
	}
}

func drawHistoryEvent(rng *rand.Rand, rel Relation) HistoryEventKind {
	return drawWeighted(rng, historyWeights(rel))
}

// applyHistoryEvent mutates a relation in response to an event: a war
// drops it two steps toward War and a skirmish one step, peace and trade
// improve it one step, an alliance two, and a betrayal drops it three.
func applyHistoryEvent(rel Relation, kind HistoryEventKind) Relation {
	order := []Relation{RelationWar, RelationHostile, RelationUnfriendly, RelationNeutral, RelationFriendly, RelationAllied}
	idx := relationIndex(order, rel)

	switch kind {
	case EventWar:
		return order[max0(idx - 2)]
	case EventSkirmish:
		return order[max0(idx - 1)]
	case EventBetrayal:
		return order[max0(idx - 3)]
	case EventPeace, EventTrade:
		return order[minN(idx+1, len(order)-1)]
	case EventAlliance:
		return order[minN(idx+2, len(order)-1)]
	default:
		return rel
	}
}

func relationIndex(order []Relation, rel Relation) int {
	for i, r := range order {
		if r == rel {
			return i
		}
	}
	return 3 // neutral fallback
}

func max0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func minN(v, n int) int {
	if v > n {
		return n
	}
	return v
}
