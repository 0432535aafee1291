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

func thrustShipClassCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, errs := catalog.New(
		nil, []catalog.ModuleSlot{{ID: "engine"}},
		[]catalog.ModuleVariant{{ID: "impulse-mk1", SlotTypeID: "engine", TypeSpecific: map[string]float64{
			"max_thrust": 1000, "mass": 500, "thrust_efficiency": 1,
		}}},
		nil, nil, nil, testTunables())
	require.Empty(t, errs)
	return cat
}

func shipWithEngine(thrust float64) *world.Ship {
	s := newShip()
	s.Modules = []world.ModuleInstance{{
		SlotTypeID: "engine", VariantID: "impulse-mk1", Operational: true,
		Health: 1, MaxHealth: 1, PowerAlloc: 1,
	}}
	s.Intents.Thrust = &world.ThrustIntent{Ship: s.ID, Thrust: thrust}
	return s
}

// TestRunTick_DeterministicAcrossRuns exercises the run_tick determinism law
// (§8): replaying the same seed and starting state through the same number
// of ticks must yield bit-identical observable state.
func TestRunTick_DeterministicAcrossRuns(t *testing.T) {
	run := func() world.Vec2 {
		cat := thrustShipClassCatalog(t)
		w := world.NewState()
		rng := prng.NewWorld(42)
		e := New(cat, w, rng, zerolog.Nop())

		s := shipWithEngine(1.0)
		w.SpawnShip(s)
		for i := 0; i < 20; i++ {
			s.Intents.Thrust = &world.ThrustIntent{Ship: s.ID, Thrust: 1.0}
			e.RunTick()
		}
		got, _ := w.Get(s.ID)
		return got.Position
	}

	a := run()
	b := run()
	assert.Equal(t, a, b)
}

// TestRunTick_ParallelMatchesSerial exercises §4.4's claim that phases
// 2,3,5,7,12,13 commute per-entity: running with Engine.Parallel enabled
// across enough ships to cross the parallel-phase threshold must produce
// the same final positions as the serial path.
func TestRunTick_ParallelMatchesSerial(t *testing.T) {
	const numShips = 200

	build := func(parallel bool) map[world.ShipID]world.Vec2 {
		cat := thrustShipClassCatalog(t)
		w := world.NewState()
		rng := prng.NewWorld(7)
		e := New(cat, w, rng, zerolog.Nop())
		e.Parallel = parallel

		ids := make([]world.ShipID, 0, numShips)
		for i := 0; i < numShips; i++ {
			s := shipWithEngine(0.5)
			s.Orientation = float64(i) * 0.01
			w.SpawnShip(s)
			ids = append(ids, s.ID)
		}
		for tick := 0; tick < 5; tick++ {
			for _, id := range ids {
				if s, ok := w.Get(id); ok {
					s.Intents.Thrust = &world.ThrustIntent{Ship: id, Thrust: 0.5}
				}
			}
			e.RunTick()
		}
		out := make(map[world.ShipID]world.Vec2, numShips)
		for _, id := range ids {
			s, _ := w.Get(id)
			out[id] = s.Position
		}
		return out
	}

	serial := build(false)
	parallel := build(true)
	require.Len(t, parallel, len(serial))
	for id, pos := range serial {
		assert.InDelta(t, pos.X, parallel[id].X, 1e-9)
		assert.InDelta(t, pos.Y, parallel[id].Y, 1e-9)
	}
}

// TestPhaseFTL_TachyonBlocksWarp exercises the tachyon-blocks-warp-rejection
// scenario: a ship under an active Tachyon status cannot start charging
// warp, and the attempt is reported via IntentRejected rather than silently
// dropped.
func TestPhaseFTL_TachyonBlocksWarp(t *testing.T) {
	e, w := newTestEngine(t, nil, testTunables())
	s := newShip()
	s.ApplyStatus("Tachyon", 5, 1, "Tachyon")
	w.SpawnShip(s)

	s.Intents.EngageWarp = &world.EngageWarpIntent{Ship: s.ID, WarpFactor: 2, Heading: 0}
	e.RunTick()

	got, _ := w.Get(s.ID)
	assert.Equal(t, world.WarpIdle, got.WarpState)

	events := w.DrainEvents()
	found := false
	for _, ev := range events {
		if ev.Kind == world.EventIntentRejected {
			if p, ok := ev.Payload.(world.IntentRejectedPayload); ok && p.Reason == world.ReasonFTLBlocked {
				found = true
			}
		}
	}
	assert.True(t, found, "expected an FTLBlocked rejection event")
}

// TestPhaseFTL_TachyonAllowsChargeAlreadyInProgress confirms Tachyon landing
// mid-charge only blocks new engage attempts out of Idle; a charge already
// under way before the effect took hold keeps advancing and can still
// complete (§8 boundary behavior).
func TestPhaseFTL_TachyonAllowsChargeAlreadyInProgress(t *testing.T) {
	e, w := newTestEngine(t, nil, testTunables())
	s := newShip()
	w.SpawnShip(s)

	s.Intents.EngageWarp = &world.EngageWarpIntent{Ship: s.ID, WarpFactor: 2, Heading: 0}
	e.RunTick()
	got, _ := w.Get(s.ID)
	require.Equal(t, world.WarpCharging, got.WarpState)

	got.ApplyStatus("Tachyon", 5, 1, "Tachyon")
	e.RunTick()
	got, _ = w.Get(s.ID)
	assert.Equal(t, world.WarpCharging, got.WarpState, "an in-progress charge must not be cancelled by Tachyon")
}

// TestPhaseWeaponFiring_BurstPatternSpawnsThreeProjectiles exercises the
// Burst=3/Pulse=2/Single=1/Beam=0 projectile-count boundary (§8).
func TestPhaseWeaponFiring_BurstPatternSpawnsThreeProjectiles(t *testing.T) {
	tun := testTunables()
	cat, errs := catalog.New(nil, nil, nil,
		[]catalog.Weapon{{ID: "burst-cannon", SlotType: catalog.SlotKinetic, Accuracy: 1, Damage: 5,
			RechargeTime: 1, MaxRange: 1000, ProjectileSpeed: 500, Tags: []catalog.Tag{catalog.TagBurst}}},
		nil,
		[]catalog.TagEffect{{Tag: catalog.TagBurst, FiringPattern: catalog.PatternBurst}},
		tun)
	require.Empty(t, errs)

	w := world.NewState()
	e := New(cat, w, prng.NewWorld(3), zerolog.Nop())

	s := newShip()
	s.Modules = []world.ModuleInstance{{
		SlotTypeID: "weapon-slot", Operational: true, Health: 1, MaxHealth: 1,
		Weapon: &world.WeaponState{WeaponID: "burst-cannon"},
	}}
	w.SpawnShip(s)
	s.Intents.Fire = map[string]bool{"burst-cannon": true}

	e.RunTick()

	assert.Len(t, w.Projectiles(), 3)
}

// TestPhaseWeaponFiring_BeamSpawnsNoProjectile confirms a beam-tagged weapon
// never spawns ordnance; its damage is applied continuously in
// phaseBeamDamage instead.
func TestPhaseWeaponFiring_BeamSpawnsNoProjectile(t *testing.T) {
	tun := testTunables()
	cat, errs := catalog.New(nil, nil, nil,
		[]catalog.Weapon{{ID: "phaser", SlotType: catalog.SlotDirectedEnergy, Accuracy: 1, Damage: 5,
			RechargeTime: 1, MaxRange: 1000, Tags: []catalog.Tag{catalog.TagBeam}}},
		nil,
		[]catalog.TagEffect{{Tag: catalog.TagBeam, FiringPattern: catalog.PatternBeam}},
		tun)
	require.Empty(t, errs)

	w := world.NewState()
	e := New(cat, w, prng.NewWorld(3), zerolog.Nop())

	s := newShip()
	s.Modules = []world.ModuleInstance{{
		SlotTypeID: "weapon-slot", Operational: true, Health: 1, MaxHealth: 1,
		Weapon: &world.WeaponState{WeaponID: "phaser"},
	}}
	w.SpawnShip(s)
	s.Intents.Fire = map[string]bool{"phaser": true}

	e.RunTick()

	assert.Empty(t, w.Projectiles())
}

// TestRunTick_InvariantsHoldAfterDamage exercises §3's per-tick invariants:
// hull and shields never go negative or exceed their max, even after a
// lethal hit is applied mid-tick.
func TestRunTick_InvariantsHoldAfterDamage(t *testing.T) {
	e, w := newTestEngine(t, nil, testTunables())
	s := newShip()
	s.Hull = 100
	s.MaxHull = 100
	s.Shields = 0
	w.SpawnShip(s)

	e.applyDamageAndEmit(s, Impact{BaseDamage: 99999})
	assert.Equal(t, 0.0, s.Hull)
	assert.Equal(t, 0.0, s.Shields)
	assert.True(t, s.Destroyed)
	e.RunTick()

	_, ok := w.Get(s.ID)
	require.False(t, ok, "ship should have been despawned on cleanup after hull depletion")
}
