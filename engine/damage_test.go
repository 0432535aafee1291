package engine

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperion-sim/hyperion/catalog"
	"github.com/hyperion-sim/hyperion/prng"
	"github.com/hyperion-sim/hyperion/world"
)

// TestResolveDamage_PhotonVsShields exercises the core photon-beam-vs-shields
// scenario: a shield multiplier scales the shield-absorbed portion, and only
// the spillover above current shields reaches hull.
func TestResolveDamage_PhotonVsShields(t *testing.T) {
	tags := []catalog.TagEffect{
		{Tag: catalog.TagPhoton, ShieldMult: 2.0},
	}
	e, _ := newTestEngine(t, tags, testTunables())
	target := newShip()
	target.Shields = 50

	result := e.resolveDamage(target, Impact{BaseDamage: 40, Tags: []catalog.Tag{catalog.TagPhoton}})

	// shield_portion = 40 * 2.0 = 80, shields can only absorb 50, 30 spills to hull.
	assert.Equal(t, 30.0, result.HullPortion)
	assert.Equal(t, 50.0, result.ShieldPortion)
	assert.Equal(t, 0.0, target.Shields)
	assert.Equal(t, 70.0, target.Hull)
}

// TestResolveDamage_PositronBypassesShields exercises the positron-missile
// bypass math: HullBypassFrac routes a fraction of base damage straight to
// hull before shields ever see it.
func TestResolveDamage_PositronBypassesShields(t *testing.T) {
	tags := []catalog.TagEffect{
		{Tag: catalog.TagPositron, HullBypassFrac: 0.5},
	}
	e, _ := newTestEngine(t, tags, testTunables())
	target := newShip()
	target.Shields = 50

	result := e.resolveDamage(target, Impact{BaseDamage: 40, Tags: []catalog.Tag{catalog.TagPositron}})

	// 20 bypasses straight to hull; remaining 20 is fully absorbed by 50 shields.
	assert.Equal(t, 20.0, result.HullPortion)
	assert.Equal(t, 20.0, result.ShieldPortion)
	assert.Equal(t, 30.0, target.Shields)
	assert.Equal(t, 80.0, target.Hull)
}

// TestResolveDamage_NoShieldsAllToHull confirms depleted shields send the
// full shield_portion straight to hull instead of silently discarding it.
func TestResolveDamage_NoShieldsAllToHull(t *testing.T) {
	e, _ := newTestEngine(t, nil, testTunables())
	target := newShip()
	target.Shields = 0

	result := e.resolveDamage(target, Impact{BaseDamage: 30})

	assert.Equal(t, 30.0, result.HullPortion)
	assert.Equal(t, 0.0, result.ShieldPortion)
	assert.Equal(t, 70.0, target.Hull)
}

// TestResolveDamage_GravitonMassDoublingNonStacking exercises the
// graviton-mass-doubling-non-stacking scenario: two graviton hits refresh the
// same status rather than stacking, and EffectiveMass reflects the intensity.
func TestResolveDamage_GravitonMassDoublingNonStacking(t *testing.T) {
	tags := []catalog.TagEffect{
		{Tag: catalog.TagGraviton, StatusKind: catalog.StatusGraviton, StatusDuration: 5, StatusIntensity: 1},
	}
	e, _ := newTestEngine(t, tags, testTunables())
	target := newShip()

	e.resolveDamage(target, Impact{BaseDamage: 1, Tags: []catalog.Tag{catalog.TagGraviton}})
	assert.Len(t, target.StatusEffects, 1)
	assert.Equal(t, 1000.0, target.EffectiveMass(500, 1.0))

	// A second hit refreshes, it does not add a second Graviton entry.
	e.resolveDamage(target, Impact{BaseDamage: 1, Tags: []catalog.Tag{catalog.TagGraviton}})
	assert.Len(t, target.StatusEffects, 1)
	assert.Equal(t, 5.0, target.StatusEffects[0].Remaining)
}

// TestResolveDamage_AntiOrdnanceZerosHullDamage exercises Antimissile/
// Antitorpedo's "exists to intercept ordnance, not damage ships" rule: any
// hull portion computed is zeroed before application.
func TestResolveDamage_AntiOrdnanceZerosHullDamage(t *testing.T) {
	tags := []catalog.TagEffect{
		{Tag: catalog.TagAntimissile, AntiKindMultiplier: map[string]float64{"Missile": 0.3}},
	}
	e, _ := newTestEngine(t, tags, testTunables())
	target := newShip()
	target.Shields = 0

	result := e.resolveDamage(target, Impact{BaseDamage: 50, Tags: []catalog.Tag{catalog.TagAntimissile}})

	assert.Equal(t, 0.0, result.HullPortion)
	assert.Equal(t, 100.0, target.Hull)
}

// TestResolveDamage_ArmorReducesHullPortion confirms armor rating nets
// against the round's penetration value before hull is reduced.
func TestResolveDamage_ArmorReducesHullPortion(t *testing.T) {
	cat, errs := catalog.New(nil, []catalog.ModuleSlot{{ID: "armor"}},
		[]catalog.ModuleVariant{{ID: "plate-mk1", SlotTypeID: "armor", TypeSpecific: map[string]float64{"armor_rating": 10}}},
		nil, nil, nil, testTunables())
	require.Empty(t, errs)
	w := world.NewState()
	rng := prng.NewWorld(1)
	e := New(cat, w, rng, zerolog.Nop())

	target := newShip()
	target.Shields = 0
	target.Modules = []world.ModuleInstance{{SlotTypeID: "armor", VariantID: "plate-mk1", Operational: true}}

	result := e.resolveDamage(target, Impact{BaseDamage: 30, ArmorPenetration: 2})

	// armor 10 net of 2*scale(1) penetration leaves 8 reduction: 30-8=22.
	assert.Equal(t, 22.0, result.HullPortion)
}
