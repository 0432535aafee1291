package world

import "sync"

// State is the registry of live entities, the event queue, and the
// intent-handoff boundary (§4.3, §5). The engine owns State exclusively
// during a tick; external callers only ever call SubmitIntent (thread-safe
// handoff) and DrainEvents (after a tick completes). State itself never
// runs simulation logic — that belongs to the engine package, which
// depends on world, never the reverse.
type State struct {
	mu sync.Mutex // guards only the intent handoff and event queue, not tick-internal mutation

	ships      map[ShipID]*Ship
	stations   map[StationID]*Station
	projectiles map[ProjectileID]*Projectile

	events []Event

	shipOrder []ShipID // stable iteration order, sorted by id once on insert
}

func NewState() *State {
	return &State{
		ships:       make(map[ShipID]*Ship),
		stations:    make(map[StationID]*Station),
		projectiles: make(map[ProjectileID]*Projectile),
	}
}

// SpawnShip registers a new ship and returns its id.
func (s *State) SpawnShip(ship *Ship) ShipID {
	s.ships[ship.ID] = ship
	s.shipOrder = insertSorted(s.shipOrder, ship.ID)
	return ship.ID
}

// Despawn removes a ship from the registry (§3 lifecycle: destroyed on
// hull<=0 or explicit removal, applied at the next safe point — Cleanup).
func (s *State) Despawn(id ShipID) {
	delete(s.ships, id)
	s.shipOrder = removeSorted(s.shipOrder, id)
}

func (s *State) Get(id ShipID) (*Ship, bool) {
	sh, ok := s.ships[id]
	return sh, ok
}

// Iter returns ships in stable id order (§5 "within a phase, iteration
// order of entities is stable, sorted by id").
func (s *State) Iter() []*Ship {
	out := make([]*Ship, 0, len(s.shipOrder))
	for _, id := range s.shipOrder {
		if sh, ok := s.ships[id]; ok {
			out = append(out, sh)
		}
	}
	return out
}

func (s *State) SpawnStation(st *Station) StationID {
	s.stations[st.ID] = st
	return st.ID
}

func (s *State) Station(id StationID) (*Station, bool) {
	st, ok := s.stations[id]
	return st, ok
}

func (s *State) Stations() []*Station {
	out := make([]*Station, 0, len(s.stations))
	for _, st := range s.stations {
		out = append(out, st)
	}
	return out
}

func (s *State) SpawnProjectile(p *Projectile) ProjectileID {
	s.projectiles[p.ID] = p
	return p.ID
}

func (s *State) DespawnProjectile(id ProjectileID) {
	delete(s.projectiles, id)
}

func (s *State) GetProjectile(id ProjectileID) (*Projectile, bool) {
	p, ok := s.projectiles[id]
	return p, ok
}

func (s *State) Projectiles() []*Projectile {
	out := make([]*Projectile, 0, len(s.projectiles))
	for _, p := range s.projectiles {
		out = append(out, p)
	}
	return out
}

// PushEvent enqueues an event; multi-producer inside a tick (§5).
func (s *State) PushEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// DrainEvents empties and returns the event queue; single-consumer outside
// a tick, called once per tick by the broadcaster (§3 Event lifecycle).
func (s *State) DrainEvents() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.events
	s.events = nil
	return out
}

// Nearest returns every ship within radius of pos for which filter
// returns true (or filter is nil). This is the plain O(n) fallback used
// by sensors and small-scale callers; the engine's spatial grid
// accelerates the high-frequency collision broad-phase path (§9
// "Spatial index").
func (s *State) Nearest(pos Vec2, radius float64, filter func(*Ship) bool) []*Ship {
	var out []*Ship
	for _, id := range s.shipOrder {
		sh, ok := s.ships[id]
		if !ok {
			continue
		}
		if filter != nil && !filter(sh) {
			continue
		}
		if Distance(sh.Position, pos) <= radius {
			out = append(out, sh)
		}
	}
	return out
}

func insertSorted(order []ShipID, id ShipID) []ShipID {
	for _, existing := range order {
		if existing == id {
			return order
		}
	}
	i := 0
	for ; i < len(order); i++ {
		if lessID(id, order[i]) {
			break
		}
	}
	order = append(order, ShipID{})
	copy(order[i+1:], order[i:])
	order[i] = id
	return order
}

func removeSorted(order []ShipID, id ShipID) []ShipID {
	for i, existing := range order {
		if existing == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

func lessID(a, b ShipID) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
