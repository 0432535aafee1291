package engine

import (
	"math"

	"github.com/hyperion-sim/hyperion/catalog"
	"github.com/hyperion-sim/hyperion/world"
)

// phaseIntentIntake is phase 1: drain command-intent components into
// typed fields. Intents referencing an unknown entity are discarded with
// a rejection event rather than causing a nil dereference later (§7
// "never crash on valid-shaped inputs").
func (e *Engine) phaseIntentIntake(ships []*world.Ship) {
	for _, s := range ships {
		if it := s.Intents.Target; it != nil {
			if _, ok := e.World.Get(it.Target); !ok {
				e.reject(s.ID, world.ReasonTargetOutOfRange)
			} else {
				if s.Targeting.Locks == nil {
					s.Targeting.Locks = map[string]world.ShipID{}
				}
				s.Targeting.Locks[it.WeaponClass] = it.Target
			}
			s.Intents.Target = nil
		}
		if it := s.Intents.DockRequest; it != nil {
			if _, ok := e.World.Station(it.Station); !ok {
				e.reject(s.ID, world.ReasonShipNotDocked)
				s.Intents.DockRequest = nil
			}
		}
		for weaponID := range s.Intents.Fire {
			if findWeaponModule(s, weaponID) == nil {
				delete(s.Intents.Fire, weaponID)
			}
		}
	}
}

func findWeaponModule(s *world.Ship, weaponID string) *world.ModuleInstance {
	for i := range s.Modules {
		if s.Modules[i].Weapon != nil && s.Modules[i].Weapon.WeaponID == weaponID {
			return &s.Modules[i]
		}
	}
	return nil
}

func (e *Engine) variant(id string) *catalog.ModuleVariant {
	if id == "" {
		return nil
	}
	v, _ := e.Catalog.Variant(id)
	return v
}

// baseMass returns a ship's un-scaled mass, drawn from its hull's engine
// variant "mass" type-specific field, defaulting to a constant so a
// catalog that omits it still integrates physics sanely.
func (e *Engine) baseMass(s *world.Ship) float64 {
	for _, m := range s.Modules {
		if v := e.variant(m.VariantID); v != nil {
			if mass, ok := v.TypeSpecific["mass"]; ok {
				return mass
			}
		}
	}
	return 1000.0
}

// phaseEngineForces is phase 2: for each ship with impulse engines, add a
// thrust force aligned with orientation, scaled by
// power_alloc * module.health/max_hp * thrust_efficiency.
func (e *Engine) phaseEngineForces(ships []*world.Ship, dt float64) {
	runParallelPhase(e, ships, func(s *world.Ship) {
		if s.Intents.FullStop {
			s.Velocity = world.Vec2{}
			s.Intents.FullStop = false
			return
		}
		thrustIntent := s.Intents.Thrust
		if thrustIntent == nil {
			return
		}
		for i := range s.Modules {
			m := &s.Modules[i]
			variant := e.variant(m.VariantID)
			if variant == nil {
				continue
			}
			maxThrust, ok := variant.TypeSpecific["max_thrust"]
			if !ok || !m.Operational {
				continue
			}
			efficiency := variant.TypeSpecific["thrust_efficiency"]
			if efficiency == 0 {
				efficiency = 1.0
			}
			healthRatio := 1.0
			if m.MaxHealth > 0 {
				healthRatio = m.Health / m.MaxHealth
			}
			force := maxThrust * clamp01(thrustIntent.Thrust) * m.PowerAlloc * healthRatio * efficiency
			mass := s.EffectiveMass(e.baseMass(s), e.Catalog.Tunables.GravitonMultiplier)
			accel := force / math.Max(mass, 1)
			s.Velocity.X += accel * math.Cos(s.Orientation) * dt
			s.Velocity.Y += accel * math.Sin(s.Orientation) * dt
		}
		if rot := s.Intents.Rotate; rot != nil {
			s.AngularVelocity = rot.Yaw * e.turnRate(s)
		}
	})
}

func (e *Engine) turnRate(s *world.Ship) float64 {
	for _, m := range s.Modules {
		if v := e.variant(m.VariantID); v != nil {
			if rate, ok := v.TypeSpecific["turn_rate"]; ok {
				return rate
			}
		}
	}
	return 1.0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// phaseDrag is phase 3: subtract a small drag force proportional to
// velocity.
func (e *Engine) phaseDrag(ships []*world.Ship, dt float64) {
	drag := e.Catalog.Tunables.SpaceDrag
	if drag == 0 {
		return
	}
	runParallelPhase(e, ships, func(s *world.Ship) {
		s.Velocity = s.Velocity.Scale(1 - drag*dt)
	})
}

// phasePhysicsIntegration is phase 4: integrates orientation and position
// from the velocity phaseEngineForces already updated (thrust there is
// divided by the Graviton-adjusted effective mass), clamping velocity and
// position to the max_velocity / max_position tunables (§3 invariants, §4.4).
func (e *Engine) phasePhysicsIntegration(ships []*world.Ship, dt float64) {
	tun := e.Catalog.Tunables
	for _, s := range ships {
		s.Orientation = world.NormalizeAngle(s.Orientation + s.AngularVelocity*dt)
		s.Velocity = s.Velocity.Clamped(tun.MaxVelocity)
		s.Position = s.Position.Add(s.Velocity.Scale(dt))
		s.Position = s.Position.Clamped(tun.MaxPosition)
		s.ClampInvariants(tun.MaxVelocity, tun.MaxPosition)

		e.emit(world.EventShipMoved, []world.ShipID{s.ID}, world.ShipMovedPayload{
			Position: s.Position, Velocity: s.Velocity,
		})
	}
}
