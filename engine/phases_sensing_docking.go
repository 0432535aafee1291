package engine

import (
	"github.com/hyperion-sim/hyperion/prng"
	"github.com/hyperion-sim/hyperion/world"
)

// phaseSensing is phase 15: recomputes each ship's contact set from every
// other non-destroyed ship within sensor range. An active Ion effect
// suppresses detection entirely (targeting locks are already cleared when
// Ion first lands; this additionally drops contacts while it persists).
// Draws from prng.StreamSensing so a borderline-range detection roll never
// perturbs other per-tick streams.
func (e *Engine) phaseSensing(ships []*world.Ship, dt float64) {
	tun := e.Catalog.Tunables
	sensorRange := tun.SensorRange
	if sensorRange <= 0 {
		sensorRange = 10000
	}
	rng := e.RNG.TickStream(prng.StreamSensing, e.tick)

	for _, s := range ships {
		if s.Destroyed {
			continue
		}
		if s.Contacts == nil {
			s.Contacts = map[world.ShipID]bool{}
		}
		if s.HasActiveStatus("Ion") {
			for id := range s.Contacts {
				e.emit(world.EventContactLost, []world.ShipID{s.ID}, world.ContactPayload{Contact: id})
			}
			s.Contacts = map[world.ShipID]bool{}
			continue
		}

		seen := map[world.ShipID]bool{}
		for _, other := range ships {
			if other.ID == s.ID || other.Destroyed {
				continue
			}
			d := world.Distance(s.Position, other.Position)
			if d > sensorRange {
				continue
			}
			// Detection probability fades linearly over the outer 10% of
			// range rather than cutting off sharply at the boundary.
			edge := sensorRange * 0.9
			if d > edge && rng.Float64() > (sensorRange-d)/(sensorRange-edge) {
				continue
			}
			seen[other.ID] = true
			if !s.Contacts[other.ID] {
				e.emit(world.EventContactDetected, []world.ShipID{s.ID}, world.ContactPayload{Contact: other.ID})
			}
		}
		for id := range s.Contacts {
			if !seen[id] {
				e.emit(world.EventContactLost, []world.ShipID{s.ID}, world.ContactPayload{Contact: id})
			}
		}
		s.Contacts = seen
	}
}

// phaseDocking is phase 16: advances the Requested -> Approaching -> Docked
// -> Undocking -> (none) state machine, moving an approaching ship toward
// its target station and releasing it back to free flight once undocked.
func (e *Engine) phaseDocking(ships []*world.Ship, dt float64) {
	tun := e.Catalog.Tunables
	dockRange := tun.DockingRange
	if dockRange <= 0 {
		dockRange = 200
	}
	approachSpeed := tun.DockingApproachSpeed
	if approachSpeed <= 0 {
		approachSpeed = 200
	}

	for _, s := range ships {
		if s.Destroyed {
			continue
		}

		if it := s.Intents.DockRequest; it != nil {
			s.Intents.DockRequest = nil
			if s.DockState == world.DockNone {
				s.DockState = world.DockRequested
				s.DockTarget = it.Station
			}
		}
		if s.Intents.Undock {
			s.Intents.Undock = false
			if s.DockState == world.DockDocked {
				s.DockState = world.DockUndocking
			}
		}

		switch s.DockState {
		case world.DockRequested:
			s.DockState = world.DockApproaching
		case world.DockApproaching:
			station, ok := e.World.Station(s.DockTarget)
			if !ok {
				s.DockState = world.DockNone
				continue
			}
			d := world.Distance(s.Position, station.Position)
			if d <= dockRange {
				s.DockState = world.DockDocked
				s.Velocity = world.Vec2{}
				if station.Docked == nil {
					station.Docked = map[world.ShipID]bool{}
				}
				station.Docked[s.ID] = true
				e.emit(world.EventDocked, []world.ShipID{s.ID}, world.DockPayload{Station: station.ID})
			} else {
				toward := station.Position.Sub(s.Position)
				s.Velocity = toward.Clamped(approachSpeed)
			}
		case world.DockUndocking:
			if station, ok := e.World.Station(s.DockTarget); ok {
				delete(station.Docked, s.ID)
			}
			e.emit(world.EventUndocked, []world.ShipID{s.ID}, world.DockPayload{Station: s.DockTarget})
			s.DockState = world.DockNone
			s.DockTarget = world.StationID{}
		}
	}
}
