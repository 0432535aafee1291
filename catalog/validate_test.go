package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseTunables() Tunables {
	return Tunables{
		Timestep:    1.0 / 60.0,
		MaxVelocity: 500,
	}
}

func TestNewCatalog_Valid(t *testing.T) {
	classes := []ShipClass{{ID: "frigate", MaxWeight: 100, MaxModules: 10, BaseHP: 500}}
	slots := []ModuleSlot{{ID: "shield-generator", Required: true, MaxSlots: 1}}
	variants := []ModuleVariant{{ID: "shield-mk1", SlotTypeID: "shield-generator"}}

	c, errs := New(classes, slots, variants, nil, nil, nil, baseTunables())
	require.Empty(t, errs)
	require.NotNil(t, c)

	got, ok := c.Class("frigate")
	assert.True(t, ok)
	assert.Equal(t, 500.0, got.BaseHP)

	vs := c.VariantsForSlot("shield-generator")
	require.Len(t, vs, 1)
	assert.Equal(t, "shield-mk1", vs[0].ID)
}

func TestNewCatalog_DuplicateClassID(t *testing.T) {
	classes := []ShipClass{
		{ID: "frigate", MaxWeight: 100, MaxModules: 10, BaseHP: 500},
		{ID: "frigate", MaxWeight: 100, MaxModules: 10, BaseHP: 500},
	}
	_, errs := New(classes, nil, nil, nil, nil, nil, baseTunables())
	require.NotEmpty(t, errs)
	found := false
	for _, e := range errs {
		if e.Kind == ErrDuplicateID {
			found = true
		}
	}
	assert.True(t, found)
}

func TestNewCatalog_UnknownSlotType(t *testing.T) {
	classes := []ShipClass{{ID: "frigate", MaxWeight: 100, MaxModules: 10, BaseHP: 500}}
	variants := []ModuleVariant{{ID: "shield-mk1", SlotTypeID: "does-not-exist"}}
	_, errs := New(classes, nil, variants, nil, nil, nil, baseTunables())
	require.NotEmpty(t, errs)
	assert.Equal(t, ErrUnknownSlotType, errs[0].Kind)
}

func TestNewCatalog_BadTunables(t *testing.T) {
	classes := []ShipClass{{ID: "frigate", MaxWeight: 100, MaxModules: 10, BaseHP: 500}}
	_, errs := New(classes, nil, nil, nil, nil, nil, Tunables{})
	require.NotEmpty(t, errs)
}

func TestValidateProbabilityTable(t *testing.T) {
	ok := map[string]float64{"a": 0.5, "b": 0.5}
	assert.Nil(t, ValidateProbabilityTable("test", ok))

	bad := map[string]float64{"a": 0.5, "b": 0.6}
	err := ValidateProbabilityTable("test", bad)
	require.NotNil(t, err)
	assert.Equal(t, ErrInvalidProbability, err.Kind)
}

func TestFiringPatternFor(t *testing.T) {
	tt := TagTable{
		TagBurst: {Tag: TagBurst, FiringPattern: PatternBurst},
		TagBeam:  {Tag: TagBeam, FiringPattern: PatternBeam},
	}
	assert.Equal(t, PatternBurst, tt.FiringPatternFor([]Tag{TagBurst}))
	assert.Equal(t, 3, tt.FiringPatternFor([]Tag{TagBurst}).ProjectileCount())
	assert.Equal(t, PatternBeam, tt.FiringPatternFor([]Tag{TagBeam}))
	assert.Equal(t, 0, tt.FiringPatternFor([]Tag{TagBeam}).ProjectileCount())
	assert.Equal(t, PatternSingle, tt.FiringPatternFor(nil))
	assert.Equal(t, 1, PatternSingle.ProjectileCount())
	assert.Equal(t, 2, PatternPulse.ProjectileCount())
}
