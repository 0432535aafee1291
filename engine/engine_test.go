package engine

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/hyperion-sim/hyperion/catalog"
	"github.com/hyperion-sim/hyperion/prng"
	"github.com/hyperion-sim/hyperion/world"
)

// testTunables gives every test a sane, non-zero set of tunables; each test
// overrides only the fields its scenario cares about.
func testTunables() catalog.Tunables {
	return catalog.Tunables{
		Timestep:              1.0 / 10.0,
		MaxVelocity:           1000,
		MaxAcceleration:       500,
		MinCollisionDistance:  5,
		MaxCollisionDistance:  2000,
		MaxPosition:           1e6,
		ArmorPenetrationScale: 1,
		ShieldRegenRate:       10,
		ShieldRegenDelay:      2,
		WarpChargeTime:        1,
		WarpSpeedMultiplier:   20,
		JumpChargeTime:        1,
		SensorRange:           5000,
		DockingRange:          100,
	}
}

func newTestEngine(t *testing.T, tags []catalog.TagEffect, tun catalog.Tunables) (*Engine, *world.State) {
	t.Helper()
	cat, errs := catalog.New(nil, nil, nil, nil, nil, tags, tun)
	require.Empty(t, errs)
	w := world.NewState()
	rng := prng.NewWorld(1)
	e := New(cat, w, rng, zerolog.Nop())
	return e, w
}

// newShip returns a ship with enough hull/shields to absorb test damage and
// zero velocity/position so physics assertions start from a known baseline.
func newShip() *world.Ship {
	return &world.Ship{
		ID:         world.NewShipID(),
		Hull:       100,
		MaxHull:    100,
		Shields:    50,
		MaxShields: 50,
		Crew:       map[world.PlayerID]world.Role{},
		Inventory:  map[string]int{},
		Contacts:   map[world.ShipID]bool{},
	}
}
