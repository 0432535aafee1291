package blueprint

import "github.com/hyperion-sim/hyperion/world"

// ModuleRequest is one entry in a blueprint's module list: a slot to fill,
// optionally a variant (required when the slot has_variants) and/or a
// weapon id, plus free-form per-instance configuration (§4.2 input shape).
type ModuleRequest struct {
	SlotType  string
	VariantID string // optional
	WeaponID  string // optional
	Config    map[string]string
}

// ShipBlueprint is the design-time specification awaiting compilation
// (§4.2 input, GLOSSARY "Blueprint").
type ShipBlueprint struct {
	ClassID      string
	TeamID       string
	Players      map[world.PlayerID][]world.Role
	Modules      []ModuleRequest
	ReadyPlayers map[world.PlayerID]bool
}
