package engine

import (
	"math"

	"github.com/hyperion-sim/hyperion/catalog"
	"github.com/hyperion-sim/hyperion/world"
)

// Impact is the input to resolveDamage: one weapon/ammo payload hitting
// one ship (§4.5).
type Impact struct {
	BaseDamage       float64
	ArmorPenetration float64
	Tags             []catalog.Tag
}

// DamageResult is what resolveDamage computes and what the engine both
// applies to the target and reports in a DamageTaken event (§4.5 step 7).
type DamageResult struct {
	HullPortion   float64
	ShieldPortion float64
}

// resolveDamage implements the tag algebra step by step:
//  1. D = base_damage.
//  2. A tag carrying HullBypassFrac (Positron) moves that fraction straight
//     to hull_portion, bypassing shields entirely.
//  3. The remaining shield_portion is scaled by any tag carrying a
//     non-zero ShieldMult (Photon, Plasma), absorbed by current shields
//     with spillover to hull.
//  4. Kinetic armor penetration reduces hull_portion by the target's armor
//     rating net of the round's penetration value.
//  5. Antimissile/Antitorpedo zero out hull damage entirely — those
//     weapons exist to intercept ordnance (handled separately in
//     phaseCountermeasures), not to damage ships.
func (e *Engine) resolveDamage(target *world.Ship, impact Impact) DamageResult {
	tags := e.Catalog.TagEffects()
	tun := e.Catalog.Tunables

	d := impact.BaseDamage
	hullPortion := 0.0
	shieldPortion := d
	antiOrdnance := false

	for _, t := range impact.Tags {
		eff, ok := tags[t]
		if !ok {
			continue
		}
		if eff.HullBypassFrac > 0 {
			moved := eff.HullBypassFrac * d
			hullPortion += moved
			shieldPortion -= moved
		}
		if t == catalog.TagAntimissile || t == catalog.TagAntitorpedo {
			antiOrdnance = true
		}
	}

	shieldMult := 1.0
	for _, t := range impact.Tags {
		if eff, ok := tags[t]; ok && eff.ShieldMult > 0 {
			shieldMult = eff.ShieldMult
			break
		}
	}

	shieldAbsorbed := 0.0
	if target.Shields > 0 {
		shieldPortion *= shieldMult
		spillover := math.Max(0, shieldPortion-target.Shields)
		shieldAbsorbed = shieldPortion - spillover
		target.Shields -= shieldAbsorbed
		hullPortion += spillover
	} else {
		hullPortion += shieldPortion
		shieldPortion = 0
	}

	if antiOrdnance {
		hullPortion = 0
	}

	if impact.ArmorPenetration >= 0 {
		armorRating := e.armorRatingFor(target)
		reduction := math.Max(0, armorRating-impact.ArmorPenetration*tun.ArmorPenetrationScale)
		hullPortion = math.Max(0, hullPortion-reduction)
	}

	target.Hull -= hullPortion
	if target.Hull < 0 {
		target.Hull = 0
	}
	target.LastDamageTick = e.tick

	e.applyTagStatusEffects(target, impact.Tags, tags)

	return DamageResult{HullPortion: hullPortion, ShieldPortion: shieldAbsorbed}
}

// armorRatingFor reads armor off the hull's armor-plating module, if any.
func (e *Engine) armorRatingFor(s *world.Ship) float64 {
	for _, m := range s.Modules {
		if v := e.variant(m.VariantID); v != nil {
			if armor, ok := v.TypeSpecific["armor_rating"]; ok {
				return armor
			}
		}
	}
	return 0
}

// applyTagStatusEffects applies Ion/Graviton/Tachyon from a tag set,
// non-stacking by kind, refreshing remaining/intensity to the max of
// incumbent and new (§4.5 step 5, §3 invariant).
func (e *Engine) applyTagStatusEffects(target *world.Ship, tags []catalog.Tag, table catalog.TagTable) {
	for _, t := range tags {
		eff, ok := table[t]
		if !ok || eff.StatusKind == "" {
			continue
		}
		before := target.HasActiveStatus(string(eff.StatusKind))
		target.ApplyStatus(string(eff.StatusKind), eff.StatusDuration, eff.StatusIntensity, string(t))
		if !before {
			e.emit(world.EventStatusEffectApplied, []world.ShipID{target.ID}, world.StatusEffectPayload{
				Kind: string(eff.StatusKind), Remaining: eff.StatusDuration, Intensity: eff.StatusIntensity,
			})
		}
		if eff.StatusKind == catalog.StatusIon {
			target.Targeting.Locks = map[string]world.ShipID{}
		}
	}
}

// antiKindMultiplier resolves step 6: Antimissile/Antitorpedo multiply
// damage vs. matching projectile kinds and zero vs. others; Chaff instead
// applies a Chaff effect to incoming guidance rather than damage.
func antiKindMultiplier(table catalog.TagTable, tags []catalog.Tag, projectileKind world.ProjectileKind) (float64, bool) {
	for _, t := range tags {
		eff, ok := table[t]
		if !ok || eff.AntiKindMultiplier == nil {
			continue
		}
		if mult, ok := eff.AntiKindMultiplier[string(projectileKind)]; ok {
			return mult, true
		}
		return 0, true
	}
	return 1, false
}
