package engine

import (
	"math"
	"math/rand"

	"github.com/hyperion-sim/hyperion/catalog"
	"github.com/hyperion-sim/hyperion/prng"
	"github.com/hyperion-sim/hyperion/world"
)

// phaseWeaponCooldown is phase 5: every mounted weapon's cooldown ticks
// down toward zero regardless of whether it fires this tick.
func (e *Engine) phaseWeaponCooldown(ships []*world.Ship, dt float64) {
	runParallelPhase(e, ships, func(s *world.Ship) {
		for i := range s.Modules {
			w := s.Modules[i].Weapon
			if w == nil {
				continue
			}
			w.CooldownRemaining = math.Max(0, w.CooldownRemaining-dt)
		}
	})
}

// phaseWeaponFiring is phase 6: for every weapon that is ready (cooldown
// elapsed) and either explicitly fired or on auto-fire with a live target,
// roll accuracy from the per-tick accuracy stream, spend ammo, spawn
// projectiles (or mark the weapon active for phase 9's continuous beam
// damage), and reset the weapon's cooldown.
func (e *Engine) phaseWeaponFiring(ships []*world.Ship, dt float64) {
	rng := e.RNG.TickStream(prng.StreamAccuracy, e.tick)
	tagTable := e.Catalog.TagEffects()

	for _, s := range ships {
		if s.Destroyed {
			continue
		}
		for i := range s.Modules {
			mod := &s.Modules[i]
			ws := mod.Weapon
			if ws == nil || !mod.Operational {
				continue
			}

			weaponDef, ok := e.Catalog.WeaponByID(ws.WeaponID)
			if !ok {
				continue
			}
			if lock, ok := s.Targeting.Locks[string(weaponDef.SlotType)]; ok {
				if t, ok := e.World.Get(lock); ok && !t.Destroyed {
					ws.Target, ws.HasTarget = t.ID, true
				} else {
					ws.HasTarget = false
				}
			}

			requested := s.Intents.Fire[ws.WeaponID]
			autoOn := s.Intents.AutoFire[ws.WeaponID]
			wantsFire := requested || (autoOn && ws.HasTarget)
			ws.Active = autoOn || ws.Active

			if !wantsFire {
				continue
			}
			if ws.CooldownRemaining > 0 {
				e.reject(s.ID, world.ReasonWeaponNotReady)
				continue
			}

			var ammo *catalog.Ammunition
			if weaponDef.AmmoType != "" {
				if ws.AmmoLoaded == "" {
					continue
				}
				a, ok := e.Catalog.AmmoByID(ws.AmmoLoaded)
				if !ok || s.Inventory[ws.AmmoLoaded] <= 0 {
					e.reject(s.ID, world.ReasonModuleDamaged)
					continue
				}
				ammo = a
			}

			pattern := tagTable.FiringPatternFor(weaponDef.Tags)
			ws.CooldownRemaining = weaponDef.RechargeTime

			delete(s.Intents.Fire, ws.WeaponID)

			e.emit(world.EventWeaponFired, []world.ShipID{s.ID}, world.WeaponFiredPayload{
				WeaponID: ws.WeaponID, Target: ws.Target, HasTarget: ws.HasTarget,
				NumProjectiles: pattern.ProjectileCount(),
			})

			if pattern == catalog.PatternBeam {
				// Beam weapons apply damage continuously in phaseBeamDamage;
				// nothing to spawn here.
				ws.Active = true
				continue
			}

			if ammo != nil {
				s.Inventory[ws.AmmoLoaded]--
			}

			quality := e.aimQuality(s, weaponDef, ws)
			hit := rng.Float64() < weaponDef.Accuracy*quality
			count := pattern.ProjectileCount()
			if count == 0 {
				count = 1
			}
			for n := 0; n < count; n++ {
				e.spawnProjectile(s, ws, weaponDef, ammo, hit, rng)
			}
		}
	}
}

// spawnProjectile creates one in-flight projectile from a weapon firing
// event, aimed along an intercept solution when the weapon has a locked
// target, otherwise along the ship's current heading (§4.4 phase 6/7).
func (e *Engine) spawnProjectile(s *world.Ship, ws *world.WeaponState, weaponDef *catalog.Weapon, ammo *catalog.Ammunition, hit bool, rng *rand.Rand) {
	speed := weaponDef.ProjectileSpeed
	if ammo != nil && ammo.Velocity > 0 {
		speed = ammo.Velocity
	}
	if speed <= 0 {
		speed = 1000
	}

	direction := s.Orientation
	var target world.ShipID
	hasTarget := false
	maxTurnRate := 0.0
	kind := world.ProjectileKinetic
	if ammo != nil {
		switch ammo.Category {
		case catalog.AmmoMissiles:
			kind = world.ProjectileMissile
		case catalog.AmmoTorpedos:
			kind = world.ProjectileTorpedo
		}
		maxTurnRate = ammo.MaxTurnRate
	}

	if ws.HasTarget {
		if weaponTarget, ok := e.World.Get(ws.Target); ok && !weaponTarget.Destroyed {
			target = weaponTarget.ID
			hasTarget = true
			if hit {
				direction, _ = InterceptDirectionOrDirect(s.Position, weaponTarget.Position, weaponTarget.Velocity, speed)
			} else {
				// A miss still flies, but aimed off the true intercept line
				// so it does not coincidentally pass through the target.
				direction = s.Orientation + (rng.Float64()-0.5)*0.4
			}
		}
	}

	lifetime := weaponDef.MaxRange / speed
	impactDamage := weaponDef.Damage
	blastRadius, blastDamage, armorPen := 0.0, 0.0, 0.0
	var tags []string
	for _, t := range weaponDef.Tags {
		tags = append(tags, string(t))
	}
	if ammo != nil {
		if ammo.ImpactDamage > 0 {
			impactDamage = ammo.ImpactDamage
		}
		blastRadius = ammo.BlastRadius
		blastDamage = ammo.BlastDamage
		armorPen = ammo.ArmorPenetration
		if ammo.Lifetime > 0 {
			lifetime = ammo.Lifetime
		}
		for _, t := range ammo.WeaponTags {
			tags = append(tags, string(t))
		}
	}
	if !hit {
		impactDamage = 0
		blastDamage = 0
	}

	p := &world.Projectile{
		ID:           world.NewProjectileID(),
		Owner:        s.ID,
		OwnerFaction: s.FactionID,
		Kind:         kind,
		Position:     s.Position,
		Velocity:     world.Vec2{X: speed * math.Cos(direction), Y: speed * math.Sin(direction)},
		Target:       target,
		HasTarget:    hasTarget,
		MaxTurnRate:  maxTurnRate,
		LifetimeRemaining: lifetime,
		Payload: world.Payload{
			ImpactDamage:     impactDamage,
			BlastRadius:      blastRadius,
			BlastDamage:      blastDamage,
			ArmorPenetration: armorPen,
			Tags:             tags,
		},
	}
	e.World.SpawnProjectile(p)
}

// aimQuality is the accuracy × aim_quality(range, target_motion, effects)
// factor §4.4 phase 6 names: falls off linearly with distance to one half
// at the weapon's max range, degrades against a fast-moving target, and is further
// degraded by Ion on the shooter or Chaff on the target.
func (e *Engine) aimQuality(s *world.Ship, weaponDef *catalog.Weapon, ws *world.WeaponState) float64 {
	quality := 1.0

	var target *world.Ship
	if ws.HasTarget {
		if t, ok := e.World.Get(ws.Target); ok && !t.Destroyed {
			target = t
		}
	}

	if weaponDef.MaxRange > 0 && target != nil {
		rangeFrac := world.Distance(s.Position, target.Position) / weaponDef.MaxRange
		quality *= clamp01(1 - 0.5*clamp01(rangeFrac))
	}

	if target != nil {
		maxVelocity := e.Catalog.Tunables.MaxVelocity
		if maxVelocity > 0 {
			speed := math.Hypot(target.Velocity.X, target.Velocity.Y)
			quality *= clamp01(1 - 0.4*clamp01(speed/maxVelocity))
		}
		if target.HasActiveStatus("Chaff") {
			quality *= 0.5
		}
	}

	if s.HasActiveStatus("Ion") {
		quality *= 0.5
	}

	return clamp01(quality)
}
