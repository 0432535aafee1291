package engine

import (
	"github.com/hyperion-sim/hyperion/catalog"
	"github.com/hyperion-sim/hyperion/world"
)

func asTags(ss []string) []catalog.Tag {
	out := make([]catalog.Tag, len(ss))
	for i, s := range ss {
		out[i] = catalog.Tag(s)
	}
	return out
}

// phaseCollisionImpact is phase 8: broad-phase via the spatial grid, then an
// exact sphere-vs-sphere check against min_collision_distance. A hit applies
// direct impact damage to the struck ship and, if the payload has a blast
// radius, falloff splash damage to every other ship within range (§4.5
// "Collision & Impact", §4.1 Non-goals do not exclude blast radius since it
// is core combat feel, not an outer-surface concern).
func (e *Engine) phaseCollisionImpact() {
	ships := e.World.Iter()
	projectiles := e.World.Projectiles()
	e.grid.indexWorld(ships, projectiles)

	minDist := e.Catalog.Tunables.MinCollisionDistance
	if minDist <= 0 {
		minDist = 50
	}

	for _, p := range projectiles {
		if p.Despawn {
			continue
		}
		for _, id := range e.grid.nearbyShips(p.Position) {
			target, ok := e.World.Get(id)
			if !ok || target.Destroyed || target.ID == p.Owner {
				continue
			}
			if world.Distance(p.Position, target.Position) > minDist {
				continue
			}

			e.applyImpact(p, target, ships)
			p.Despawn = true
			break
		}
	}
}

func (e *Engine) applyImpact(p *world.Projectile, primary *world.Ship, allShips []*world.Ship) {
	tags := asTags(p.Payload.Tags)

	if p.Payload.ImpactDamage > 0 {
		e.applyDamageAndEmit(primary, Impact{
			BaseDamage:       p.Payload.ImpactDamage,
			ArmorPenetration: p.Payload.ArmorPenetration,
			Tags:             tags,
		})
	}

	if p.Payload.BlastRadius <= 0 || p.Payload.BlastDamage <= 0 {
		e.emit(world.EventDetonated, []world.ShipID{primary.ID}, world.DetonatedPayload{Position: p.Position})
		return
	}

	for _, s := range allShips {
		if s.Destroyed || s.ID == primary.ID {
			continue
		}
		d := world.Distance(p.Position, s.Position)
		if d > p.Payload.BlastRadius {
			continue
		}
		falloff := 1 - d/p.Payload.BlastRadius
		e.applyDamageAndEmit(s, Impact{
			BaseDamage:       p.Payload.BlastDamage * falloff,
			ArmorPenetration: p.Payload.ArmorPenetration,
			Tags:             tags,
		})
	}

	e.emit(world.EventDetonated, []world.ShipID{primary.ID}, world.DetonatedPayload{Position: p.Position})
}

// applyDamageAndEmit resolves damage through the tag algebra, emits the
// resulting DamageTaken / ShieldChanged / ShipDestroyed events, and despawns
// a ship whose hull reaches zero at the next Cleanup phase (marked here,
// removed there, matching the rest of the engine's defer-mutation pattern).
func (e *Engine) applyDamageAndEmit(target *world.Ship, impact Impact) {
	result := e.resolveDamage(target, impact)

	e.emit(world.EventDamageTaken, []world.ShipID{target.ID}, world.DamageTakenPayload{
		HullPortion: result.HullPortion, ShieldPortion: result.ShieldPortion,
		Tags: tagStrings(impact.Tags),
	})
	if result.ShieldPortion != 0 {
		e.emit(world.EventShieldChanged, []world.ShipID{target.ID}, world.ShieldChangedPayload{
			Shields: target.Shields, Raised: target.ShieldsRaised,
		})
	}

	if target.Hull <= 0 && !target.Destroyed {
		target.Destroyed = true
		e.emit(world.EventShipDestroyed, []world.ShipID{target.ID}, world.ShipDestroyedPayload{
			HasKiller: false, Reason: "hull depleted",
		})
	}
}

func tagStrings(tags []catalog.Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}

// phaseBeamDamage is phase 9: beam weapons (firing pattern Beam) apply
// continuous per-tick damage to their locked target for as long as the
// weapon is marked active and in range, instead of spawning a projectile.
func (e *Engine) phaseBeamDamage(ships []*world.Ship, dt float64) {
	tagTable := e.Catalog.TagEffects()
	for _, s := range ships {
		if s.Destroyed {
			continue
		}
		for i := range s.Modules {
			ws := s.Modules[i].Weapon
			if ws == nil || !ws.Active || !ws.HasTarget {
				continue
			}
			weaponDef, ok := e.Catalog.WeaponByID(ws.WeaponID)
			if !ok || tagTable.FiringPatternFor(weaponDef.Tags) != catalog.PatternBeam {
				continue
			}
			target, ok := e.World.Get(ws.Target)
			if !ok || target.Destroyed {
				ws.HasTarget = false
				continue
			}
			if world.Distance(s.Position, target.Position) > weaponDef.MaxRange {
				continue
			}
			if !s.Modules[i].Operational {
				continue
			}
			healthRatio := 1.0
			if s.Modules[i].MaxHealth > 0 {
				healthRatio = s.Modules[i].Health / s.Modules[i].MaxHealth
			}
			dps := weaponDef.Damage * healthRatio
			e.applyDamageAndEmit(target, Impact{
				BaseDamage:       dps * dt,
				ArmorPenetration: 0,
				Tags:             weaponDef.Tags,
			})
		}
	}
}
