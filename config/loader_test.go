package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalCatalog = `
classes:
  - id: frigate
    size: Small
    role: escort
    max_weight: 500
    max_modules: 8
    base_hp: 400
    build_points: 100
slots:
  - id: shield-generator
    required: true
    max_slots: 1
    has_varients: true
variants:
  - id: shield-mk1
    slot_type_id: shield-generator
tunables:
  timestep: 0.016666
  max_velocity: 500
`

func TestParse_Minimal(t *testing.T) {
	cat, errs, err := Parse([]byte(minimalCatalog))
	require.NoError(t, err)
	require.Empty(t, errs)
	require.NotNil(t, cat)

	class, ok := cat.Class("frigate")
	require.True(t, ok)
	assert.Equal(t, 400.0, class.BaseHP)

	slot, ok := cat.Slot("shield-generator")
	require.True(t, ok)
	assert.True(t, slot.HasVariants, "has_varients (sic) must set the canonical HasVariants field")
}

func TestParse_InvalidYAML(t *testing.T) {
	_, _, err := Parse([]byte("not: [valid"))
	assert.Error(t, err)
}

func TestParse_ValidationErrorsAggregate(t *testing.T) {
	_, errs, err := Parse([]byte(`
classes:
  - id: frigate
    max_weight: 500
    max_modules: 8
    base_hp: 400
slots:
  - id: shield-generator
    required: true
    max_slots: 1
variants:
  - id: shield-mk1
    slot_type_id: unknown-slot
tunables:
  timestep: 0.016666
`))
	require.NoError(t, err)
	assert.NotEmpty(t, errs)
}
