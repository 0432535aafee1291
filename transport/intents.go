package transport

import (
	"encoding/json"

	"github.com/hyperion-sim/hyperion/world"
)

// decodeIntent converts a wire-level ClientMessage into a typed
// world.Intent bound to the connection's ship, rejecting (ok=false)
// unknown message types, payloads that are not valid JSON, and ids that
// do not parse. A thrust message without a thrust field is rejected too,
// so it is never forwarded as an explicit 0.0 thrust; for the other
// message types, absent fields decode to their zero values.
func decodeIntent(ship world.ShipID, msg ClientMessage) (world.Intent, bool) {
	switch msg.Type {
	case MsgThrust:
		var d struct {
			Thrust *float64 `json:"thrust"`
		}
		if err := json.Unmarshal(msg.Data, &d); err != nil || d.Thrust == nil {
			return nil, false
		}
		return world.ThrustIntent{Ship: ship, Thrust: *d.Thrust}, true

	case MsgRotate:
		var d struct{ Pitch, Yaw, Roll float64 }
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return nil, false
		}
		return world.RotateIntent{Ship: ship, Pitch: d.Pitch, Yaw: d.Yaw, Roll: d.Roll}, true

	case MsgFullStop:
		return world.FullStopIntent{Ship: ship}, true

	case MsgEngageWarp:
		var d struct {
			WarpFactor float64 `json:"warp_factor"`
			Heading    float64 `json:"heading"`
		}
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return nil, false
		}
		return world.EngageWarpIntent{Ship: ship, WarpFactor: d.WarpFactor, Heading: d.Heading}, true

	case MsgEngageJump:
		var d struct {
			X, Y float64
		}
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return nil, false
		}
		return world.EngageJumpIntent{Ship: ship, Destination: world.Vec2{X: d.X, Y: d.Y}}, true

	case MsgDockRequest:
		var d struct {
			Station string `json:"station_id"`
		}
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return nil, false
		}
		st, ok := parseStationID(d.Station)
		if !ok {
			return nil, false
		}
		return world.DockRequestIntent{Ship: ship, Station: st}, true

	case MsgUndock:
		return world.UndockIntent{Ship: ship}, true

	case MsgTarget:
		var d struct {
			WeaponClass string `json:"weapon_class"`
			TargetID    string `json:"target_id"`
		}
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return nil, false
		}
		t, ok := parseShipID(d.TargetID)
		if !ok {
			return nil, false
		}
		return world.TargetIntent{Ship: ship, WeaponClass: d.WeaponClass, Target: t}, true

	case MsgFire:
		var d struct {
			WeaponID string `json:"weapon_id"`
		}
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return nil, false
		}
		return world.FireIntent{Ship: ship, WeaponID: d.WeaponID}, true

	case MsgAutoFire:
		var d struct {
			WeaponID string `json:"weapon_id"`
			Enabled  bool   `json:"enabled"`
		}
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return nil, false
		}
		return world.AutoFireIntent{Ship: ship, WeaponID: d.WeaponID, Enabled: d.Enabled}, true

	case MsgConfigureWeapon:
		var d struct {
			WeaponID string `json:"weapon_id"`
			Kind     string `json:"kind"`
			AmmoType string `json:"ammo_type"`
		}
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return nil, false
		}
		return world.ConfigureWeaponIntent{Ship: ship, WeaponID: d.WeaponID, Kind: d.Kind, AmmoType: d.AmmoType}, true

	case MsgLoadAmmo:
		var d struct {
			WeaponID string `json:"weapon_id"`
			AmmoID   string `json:"ammo_id"`
		}
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return nil, false
		}
		return world.LoadAmmoIntent{Ship: ship, WeaponID: d.WeaponID, AmmoID: d.AmmoID}, true

	case MsgShield:
		var d struct {
			Raise bool `json:"raise"`
		}
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return nil, false
		}
		action := world.ShieldLower
		if d.Raise {
			action = world.ShieldRaise
		}
		return world.ShieldIntent{Ship: ship, Action: action}, true

	case MsgCountermeasure:
		var d struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return nil, false
		}
		return world.ActivateCountermeasureIntent{Ship: ship, Type: d.Type}, true

	case MsgPointDefense:
		var d struct {
			Enabled bool `json:"enabled"`
		}
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return nil, false
		}
		return world.PointDefenseIntent{Ship: ship, Enabled: d.Enabled}, true

	case MsgAllocatePower:
		var d struct {
			Allocations map[string]float64 `json:"allocations"`
		}
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return nil, false
		}
		return world.AllocatePowerIntent{Ship: ship, Allocations: d.Allocations}, true

	case MsgAllocateCooling:
		var d struct {
			Allocations map[string]float64 `json:"allocations"`
		}
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return nil, false
		}
		return world.AllocateCoolingIntent{Ship: ship, Allocations: d.Allocations}, true

	case MsgRepair:
		var d struct {
			ModuleID string `json:"module_id"`
			Crew     string `json:"crew_id"`
		}
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return nil, false
		}
		crew, ok := parsePlayerID(d.Crew)
		if !ok {
			return nil, false
		}
		return world.RepairIntent{Ship: ship, ModuleID: d.ModuleID, Crew: crew}, true

	case MsgScan:
		var d struct {
			TargetID string `json:"target_id"`
			ScanType string `json:"scan_type"`
		}
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return nil, false
		}
		t, ok := parseShipID(d.TargetID)
		if !ok {
			return nil, false
		}
		return world.ScanIntent{Ship: ship, Target: t, ScanType: d.ScanType}, true

	case MsgAnalyze:
		var d struct {
			TargetID string `json:"target_id"`
			Type     string `json:"type"`
		}
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return nil, false
		}
		t, ok := parseShipID(d.TargetID)
		if !ok {
			return nil, false
		}
		return world.AnalyzeIntent{Ship: ship, Target: t, Type: d.Type}, true

	case MsgHail:
		var d struct {
			TargetID string `json:"target_id"`
			Message  string `json:"message"`
			Tone     string `json:"tone"`
		}
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return nil, false
		}
		t, ok := parseShipID(d.TargetID)
		if !ok {
			return nil, false
		}
		return world.HailIntent{Ship: ship, Target: t, Message: d.Message, Tone: d.Tone}, true

	case MsgJam:
		var d struct {
			TargetID string `json:"target_id"`
		}
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return nil, false
		}
		t, ok := parseShipID(d.TargetID)
		if !ok {
			return nil, false
		}
		return world.JamIntent{Ship: ship, Target: t}, true

	default:
		return nil, false
	}
}
