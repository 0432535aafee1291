package engine

import "github.com/hyperion-sim/hyperion/world"

// phaseShieldRegen is phase 12: shields regenerate at a fixed rate once a
// ship has gone shield_regen_delay seconds without taking a hit, and only
// while the shield generator is raised.
func (e *Engine) phaseShieldRegen(ships []*world.Ship, dt float64) {
	tun := e.Catalog.Tunables
	runParallelPhase(e, ships, func(s *world.Ship) {
		if s.Destroyed || !s.ShieldsRaised || s.MaxShields <= 0 {
			return
		}
		sinceHit := float64(e.tick-s.LastDamageTick) * tun.Timestep
		if sinceHit < tun.ShieldRegenDelay {
			return
		}
		before := s.Shields
		s.Shields += tun.ShieldRegenRate * dt
		if s.Shields > s.MaxShields {
			s.Shields = s.MaxShields
		}
		if s.Shields != before {
			e.emit(world.EventShieldChanged, []world.ShipID{s.ID}, world.ShieldChangedPayload{
				Shields: s.Shields, Raised: s.ShieldsRaised,
			})
		}
	})
}

// phaseEffectDecay is phase 13: every status effect's remaining duration
// ticks down; an effect that reaches zero is removed and reported so
// observers can clear any UI indicator tied to it.
func (e *Engine) phaseEffectDecay(ships []*world.Ship, dt float64) {
	runParallelPhase(e, ships, func(s *world.Ship) {
		if len(s.StatusEffects) == 0 {
			return
		}
		kept := s.StatusEffects[:0]
		for _, eff := range s.StatusEffects {
			eff.Remaining -= dt
			if eff.Remaining <= 0 {
				e.emit(world.EventStatusEffectRemoved, []world.ShipID{s.ID}, world.StatusEffectPayload{
					Kind: eff.Kind,
				})
				continue
			}
			kept = append(kept, eff)
		}
		s.StatusEffects = kept
	})
}
