package engine

import (
	"math/rand"

	"github.com/hyperion-sim/hyperion/catalog"
	"github.com/hyperion-sim/hyperion/prng"
	"github.com/hyperion-sim/hyperion/world"
)

// phaseCountermeasures is phase 10: one-shot countermeasure activations
// (chaff deployment) and continuous point-defense weapons both draw from
// prng.StreamCountermeasure so their rolls never perturb the accuracy
// stream used by phaseWeaponFiring.
func (e *Engine) phaseCountermeasures(ships []*world.Ship, dt float64) {
	rng := e.RNG.TickStream(prng.StreamCountermeasure, e.tick)
	tagTable := e.Catalog.TagEffects()

	for _, s := range ships {
		if s.Destroyed {
			continue
		}

		if cm := s.Intents.Countermeasure; cm != nil {
			e.activateCountermeasure(s, cm, tagTable, rng)
			s.Intents.Countermeasure = nil
		}

		if pd := s.Intents.PointDefense; pd != nil {
			for i := range s.Modules {
				if ws := s.Modules[i].Weapon; ws != nil {
					if def, ok := e.Catalog.WeaponByID(ws.WeaponID); ok && def.SlotType == catalog.SlotCountermeasure {
						ws.Active = *pd
					}
				}
			}
			s.Intents.PointDefense = nil
		}

		e.runPointDefense(s, rng, tagTable)
	}
}

// activateCountermeasure handles a one-shot Chaff or anti-sensor burst:
// Chaff applies the non-stacking Chaff status to the ship and immediately
// rolls each currently homing enemy projectile targeting it for a dropped
// lock (§4.5 "Chaff degrades missile lock" rather than destroying ordnance
// outright, unlike a point-defense intercept).
func (e *Engine) activateCountermeasure(s *world.Ship, cm *world.ActivateCountermeasureIntent, tagTable catalog.TagTable, rng *rand.Rand) {
	eff, ok := tagTable[catalog.TagChaff]
	if !ok {
		eff = catalog.TagEffect{StatusDuration: 5, StatusIntensity: 1}
	}
	s.ApplyStatus(string(catalog.StatusChaff), eff.StatusDuration, eff.StatusIntensity, cm.Type)
	e.emit(world.EventCountermeasureActivated, []world.ShipID{s.ID}, world.CountermeasurePayload{Type: cm.Type})

	dropChance := eff.AntiKindMultiplier["Chaff"]
	if dropChance == 0 {
		dropChance = 0.5
	}
	for _, p := range e.World.Projectiles() {
		if p.Despawn || !p.HasTarget || p.Target != s.ID {
			continue
		}
		if p.Kind != world.ProjectileMissile && p.Kind != world.ProjectileTorpedo {
			continue
		}
		if rng.Float64() < dropChance {
			p.HasTarget = false
		}
	}
}

// runPointDefense scans nearby incoming ordnance for any active
// countermeasure-slot weapon and rolls an intercept, despawning the
// projectile outright on success rather than routing it through normal
// damage resolution (antimissile/antitorpedo tags zero out hull damage, but
// a live intercept removes the threat entirely rather than waiting for a
// zero-damage collision).
func (e *Engine) runPointDefense(s *world.Ship, rng *rand.Rand, tagTable catalog.TagTable) {
	for i := range s.Modules {
		ws := s.Modules[i].Weapon
		if ws == nil || !ws.Active || !s.Modules[i].Operational {
			continue
		}
		def, ok := e.Catalog.WeaponByID(ws.WeaponID)
		if !ok || def.SlotType != catalog.SlotCountermeasure {
			continue
		}
		if ws.CooldownRemaining > 0 {
			continue
		}

		for _, id := range e.grid.nearbyProjectiles(s.Position) {
			p, ok := e.World.GetProjectile(id)
			if !ok || p.Despawn || p.Owner == s.ID {
				continue
			}
			if p.Kind != world.ProjectileMissile && p.Kind != world.ProjectileTorpedo {
				continue
			}
			if world.Distance(s.Position, p.Position) > def.MaxRange {
				continue
			}

			mult, matched := antiKindMultiplier(tagTable, def.Tags, p.Kind)
			if matched && mult <= 0 {
				continue
			}
			if !matched {
				mult = 1
			}

			ws.CooldownRemaining = def.RechargeTime
			e.emit(world.EventPointDefenseEngaged, []world.ShipID{s.ID}, world.CountermeasurePayload{Type: string(p.Kind)})

			if rng.Float64() < def.Accuracy*mult {
				p.Despawn = true
			}
			break
		}
	}
}
