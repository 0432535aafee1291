package transport

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperion-sim/hyperion/world"
)

func TestDecodeIntent_Thrust(t *testing.T) {
	ship := world.NewShipID()
	data, _ := json.Marshal(map[string]float64{"thrust": 0.75})
	intent, ok := decodeIntent(ship, ClientMessage{Type: MsgThrust, Data: data})
	require.True(t, ok)
	thrust, isThrust := intent.(world.ThrustIntent)
	require.True(t, isThrust)
	assert.Equal(t, 0.75, thrust.Thrust)
	assert.Equal(t, ship, thrust.TargetShip())
}

func TestDecodeIntent_UnknownType(t *testing.T) {
	ship := world.NewShipID()
	_, ok := decodeIntent(ship, ClientMessage{Type: "not-a-real-intent", Data: []byte(`{}`)})
	assert.False(t, ok)
}

func TestDecodeIntent_MalformedPayload(t *testing.T) {
	ship := world.NewShipID()
	_, ok := decodeIntent(ship, ClientMessage{Type: MsgThrust, Data: []byte(`not json`)})
	assert.False(t, ok)
}

func TestDecodeIntent_TargetRequiresValidShipID(t *testing.T) {
	ship := world.NewShipID()
	data, _ := json.Marshal(map[string]string{"weapon_class": "de", "target_id": "not-a-uuid"})
	_, ok := decodeIntent(ship, ClientMessage{Type: MsgTarget, Data: data})
	assert.False(t, ok)
}

func TestDecodeIntent_FullStopNoPayload(t *testing.T) {
	ship := world.NewShipID()
	intent, ok := decodeIntent(ship, ClientMessage{Type: MsgFullStop, Data: []byte(`{}`)})
	require.True(t, ok)
	_, isFullStop := intent.(world.FullStopIntent)
	assert.True(t, isFullStop)
}

func TestDecodeIntent_ShieldRaiseLower(t *testing.T) {
	ship := world.NewShipID()
	data, _ := json.Marshal(map[string]bool{"raise": true})
	intent, ok := decodeIntent(ship, ClientMessage{Type: MsgShield, Data: data})
	require.True(t, ok)
	shield := intent.(world.ShieldIntent)
	assert.Equal(t, world.ShieldRaise, shield.Action)
}
