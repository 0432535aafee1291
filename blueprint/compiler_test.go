package blueprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperion-sim/hyperion/catalog"
	"github.com/hyperion-sim/hyperion/prng"
	"github.com/hyperion-sim/hyperion/world"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	classes := []catalog.ShipClass{
		{ID: "frigate", MaxWeight: 500, MaxModules: 5, BaseHP: 500, Bonuses: map[string]float64{"max_hull": 1.1}},
	}
	slots := []catalog.ModuleSlot{
		{ID: "shield-generator", Required: true, HasVariants: true, MaxSlots: 1, BaseHP: 50, BaseWeight: 20},
		{ID: "weapon-de", Required: false, HasVariants: false, MaxSlots: 2, BaseHP: 20, BaseWeight: 10},
	}
	variants := []catalog.ModuleVariant{
		{ID: "shield-mk1", SlotTypeID: "shield-generator", AdditionalWeight: 5,
			TypeSpecific: map[string]float64{"max_shields": 100, "energy_production": 50}},
	}
	weapons := []catalog.Weapon{
		{ID: "laser-1", SlotType: catalog.SlotDirectedEnergy, Tags: []catalog.Tag{catalog.TagBeam}, Damage: 10},
	}
	tags := []catalog.TagEffect{
		{Tag: catalog.TagBeam, FiringPattern: catalog.PatternBeam},
	}
	tun := catalog.Tunables{Timestep: 1.0 / 60.0, MaxVelocity: 500}

	c, errs := catalog.New(classes, slots, variants, weapons, nil, tags, tun)
	require.Empty(t, errs)
	return c
}

func validBlueprint() ShipBlueprint {
	captain := world.PlayerID{0x1}
	return ShipBlueprint{
		ClassID: "frigate",
		TeamID:  "fed",
		Players: map[world.PlayerID][]world.Role{captain: {world.RoleCaptain}},
		Modules: []ModuleRequest{
			{SlotType: "shield-generator", VariantID: "shield-mk1"},
			{SlotType: "weapon-de", WeaponID: "laser-1"},
		},
		ReadyPlayers: map[world.PlayerID]bool{captain: true},
	}
}

func TestCompile_Success(t *testing.T) {
	cat := testCatalog(t)
	w := world.NewState()
	c := NewCompiler(cat, w, prng.NewWorld(1))

	id, report := c.Compile(validBlueprint())
	require.True(t, report.OK(), "%+v", report.Errors)

	ship, ok := w.Get(id)
	require.True(t, ok)
	assert.InDelta(t, 550.0, ship.MaxHull, 0.01) // 500 * 1.1 bonus
	assert.Equal(t, 100.0, ship.MaxShields)
	assert.Equal(t, 50.0, ship.PowerAvailable)
	assert.Len(t, ship.Modules, 2)
}

func TestCompile_MissingRequiredSlot(t *testing.T) {
	cat := testCatalog(t)
	w := world.NewState()
	c := NewCompiler(cat, w, prng.NewWorld(1))

	bp := validBlueprint()
	bp.Modules = bp.Modules[1:] // drop the shield generator
	_, report := c.Compile(bp)

	require.False(t, report.OK())
	assert.Equal(t, ErrMissingRequiredSlot, report.Errors[0].Kind)
}

func TestCompile_NotAllPlayersReady(t *testing.T) {
	cat := testCatalog(t)
	w := world.NewState()
	c := NewCompiler(cat, w, prng.NewWorld(1))

	bp := validBlueprint()
	for pid := range bp.ReadyPlayers {
		bp.ReadyPlayers[pid] = false
	}
	_, report := c.Compile(bp)

	require.False(t, report.OK())
	assert.Equal(t, ErrNotAllPlayersReady, report.Errors[0].Kind)
}

func TestCompile_UnknownClass(t *testing.T) {
	cat := testCatalog(t)
	w := world.NewState()
	c := NewCompiler(cat, w, prng.NewWorld(1))

	bp := validBlueprint()
	bp.ClassID = "does-not-exist"
	_, report := c.Compile(bp)

	require.False(t, report.OK())
	assert.Equal(t, ErrUnknownClass, report.Errors[0].Kind)
}

func TestCompile_MissingCaptain(t *testing.T) {
	cat := testCatalog(t)
	w := world.NewState()
	c := NewCompiler(cat, w, prng.NewWorld(1))

	bp := validBlueprint()
	player := world.PlayerID{0x2}
	bp.Players = map[world.PlayerID][]world.Role{player: {world.RoleGunner}}
	bp.ReadyPlayers = map[world.PlayerID]bool{player: true}
	_, report := c.Compile(bp)

	require.False(t, report.OK())
	found := false
	for _, e := range report.Errors {
		if e.Kind == ErrMissingCaptain {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCompile_WeightExceeded(t *testing.T) {
	base := testCatalog(t)
	classes := append([]catalog.ShipClass(nil), base.Classes...)
	classes[0].MaxWeight = 40
	cat, errs := catalog.New(classes, base.Slots, base.Variants, base.Weapons, base.Ammunition, base.TagEffects, base.Tunables)
	require.Empty(t, errs)
	w := world.NewState()
	c := NewCompiler(cat, w, prng.NewWorld(1))

	// weapon-de max_slots is 2; this stays within slot count but blows weight:
	// shield-generator 20 + shield-mk1 5 + 2 x weapon-de 10 = 45 > 40.
	bp := validBlueprint()
	bp.Modules = append(bp.Modules, ModuleRequest{SlotType: "weapon-de", WeaponID: "laser-1"})

	_, report := c.Compile(bp)
	require.False(t, report.OK())
	assert.Equal(t, ErrWeightExceeded, report.Errors[0].Kind)
}

func TestCompile_GroupBonusAppliesOnlyToGroupModules(t *testing.T) {
	classes := []catalog.ShipClass{
		{ID: "frigate", MaxWeight: 500, MaxModules: 5, BaseHP: 500, Bonuses: map[string]float64{"hardened": 2.0}},
	}
	slots := []catalog.ModuleSlot{
		{ID: "shield-generator", Required: true, HasVariants: true, MaxSlots: 1, BaseHP: 50, BaseWeight: 20},
		{ID: "weapon-de", Required: false, HasVariants: false, MaxSlots: 2, BaseHP: 20, BaseWeight: 10, Groups: []string{"hardened"}},
	}
	variants := []catalog.ModuleVariant{
		{ID: "shield-mk1", SlotTypeID: "shield-generator", AdditionalWeight: 5,
			TypeSpecific: map[string]float64{"max_shields": 100, "energy_production": 50}},
	}
	weapons := []catalog.Weapon{
		{ID: "laser-1", SlotType: catalog.SlotDirectedEnergy, Tags: []catalog.Tag{catalog.TagBeam}, Damage: 10},
	}
	tags := []catalog.TagEffect{{Tag: catalog.TagBeam, FiringPattern: catalog.PatternBeam}}
	tun := catalog.Tunables{Timestep: 1.0 / 60.0, MaxVelocity: 500}

	cat, errs := catalog.New(classes, slots, variants, weapons, nil, tags, tun)
	require.Empty(t, errs)

	w := world.NewState()
	c := NewCompiler(cat, w, prng.NewWorld(1))
	id, report := c.Compile(validBlueprint())
	require.True(t, report.OK(), "%+v", report.Errors)

	ship, ok := w.Get(id)
	require.True(t, ok)
	for _, m := range ship.Modules {
		switch m.SlotTypeID {
		case "weapon-de":
			assert.Equal(t, 40.0, m.MaxHealth) // base_hp 20 * 2.0 hardened bonus
		case "shield-generator":
			assert.Equal(t, 50.0, m.MaxHealth) // outside the "hardened" group, untouched
		}
	}
}

func TestCompile_NoPartialStateOnFailure(t *testing.T) {
	cat := testCatalog(t)
	w := world.NewState()
	c := NewCompiler(cat, w, prng.NewWorld(1))

	bp := validBlueprint()
	bp.ClassID = "nope"
	_, report := c.Compile(bp)
	require.False(t, report.OK())
	assert.Empty(t, w.Iter())
}
