package blueprint

import (
	"github.com/hyperion-sim/hyperion/catalog"
	"github.com/hyperion-sim/hyperion/prng"
	"github.com/hyperion-sim/hyperion/world"
)

// Compiler validates a ShipBlueprint against a Catalog and assembles a
// world.Ship. It is stateless aside from the catalog reference and the
// world it spawns into — safe to reuse across many compiles (§4.2).
type Compiler struct {
	Catalog *catalog.Catalog
	World   *world.State
	RNG     *prng.World
}

func NewCompiler(cat *catalog.Catalog, w *world.State, rng *prng.World) *Compiler {
	return &Compiler{Catalog: cat, World: w, RNG: rng}
}

// Compile validates bp against the Catalog and, on success, spawns and
// returns a fully-initialized Ship. On failure it returns a CompileReport
// with every error found (never stops at the first) and no ship is
// created (§4.2).
func (c *Compiler) Compile(bp ShipBlueprint) (world.ShipID, *CompileReport) {
	report := &CompileReport{}

	class, ok := c.Catalog.Class(bp.ClassID)
	if !ok {
		report.addError(ErrUnknownClass, bp.ClassID, "unknown ship class")
	}
	if bp.TeamID == "" {
		report.addError(ErrUnknownTeam, "", "blueprint has no team_id")
	}

	c.validatePlayers(bp, report)
	if ok {
		c.validateModules(bp, class, report)
	}

	allReady := len(bp.Players) > 0
	for pid := range bp.Players {
		if !bp.ReadyPlayers[pid] {
			allReady = false
			break
		}
	}
	if !allReady {
		report.addError(ErrNotAllPlayersReady, "", "not every assigned player is ready")
	}

	if !report.OK() {
		return world.NilShipID, report
	}

	ship := c.assemble(bp, class, report)
	id := c.World.SpawnShip(ship)

	c.World.PushEvent(world.Event{
		Kind:  world.EventShipSpawned,
		Ships: []world.ShipID{id},
	})

	return id, report
}

// validatePlayers checks rule 2: every role in the fixed role set, and a
// captain is present among assigned roles.
func (c *Compiler) validatePlayers(bp ShipBlueprint, report *CompileReport) {
	if len(bp.Players) == 0 {
		return
	}
	hasCaptain := false
	for pid, roles := range bp.Players {
		if len(roles) == 0 {
			report.addError(ErrInvalidRole, pid.String(), "player has no assigned roles")
		}
		for _, r := range roles {
			if !validRole(r) {
				report.addError(ErrInvalidRole, pid.String(), "unknown role "+string(r))
			}
			if r == world.RoleCaptain {
				hasCaptain = true
			}
		}
	}
	if !hasCaptain {
		report.addError(ErrMissingCaptain, "", "no player is assigned captain")
	}
}

func validRole(r world.Role) bool {
	for _, allowed := range world.AllRoles {
		if allowed == r {
			return true
		}
	}
	return false
}

// validateModules checks rules 3-9.
func (c *Compiler) validateModules(bp ShipBlueprint, class *catalog.ShipClass, report *CompileReport) {
	countBySlot := map[string]int{}
	totalWeight := 0.0
	totalCount := 0

	for _, m := range bp.Modules {
		slot, ok := c.Catalog.Slot(m.SlotType)
		if !ok {
			report.addError(ErrUnknownVariant, m.SlotType, "unknown slot type")
			continue
		}
		countBySlot[m.SlotType]++
		totalCount++

		if slot.HasVariants {
			if m.VariantID == "" {
				report.addError(ErrUnknownVariant, m.SlotType, "slot requires a variant_id")
				continue
			}
			variant, ok := c.Catalog.Variant(m.VariantID)
			if !ok || variant.SlotTypeID != m.SlotType {
				report.addError(ErrUnknownVariant, m.VariantID, "variant does not exist or mismatches slot type")
				continue
			}
			totalWeight += slot.BaseWeight + variant.AdditionalWeight
		} else {
			totalWeight += slot.BaseWeight
		}

		if m.WeaponID != "" {
			weapon, ok := c.Catalog.WeaponByID(m.WeaponID)
			if !ok {
				report.addError(ErrUnknownVariant, m.WeaponID, "unknown weapon id")
				continue
			}
			if tagsConflict(weapon.Tags, c.Catalog.TagEffects()) {
				report.addError(ErrConflictingTags, m.WeaponID, "weapon has mutually conflicting tags")
			}
			if weapon.SlotType == catalog.SlotKinetic {
				compat := c.Catalog.CompatibleAmmo(weapon.AmmoType, weapon.AmmoSize)
				if len(compat) == 0 {
					report.addError(ErrIncompatibleAmmo, m.WeaponID, "no compatible ammunition in catalog")
				}
			}
		}
	}

	for _, slot := range c.Catalog.Slots {
		if slot.Required && countBySlot[slot.ID] == 0 {
			report.addError(ErrMissingRequiredSlot, slot.ID, "required slot has no module instance")
		}
		if slot.MaxSlots > 0 && countBySlot[slot.ID] > slot.MaxSlots {
			report.addError(ErrSlotCountExceeded, slot.ID, "more instances than max_slots allows")
		}
	}

	if totalCount > class.MaxModules {
		report.addError(ErrModuleCountExceeded, class.ID, "module count exceeds class.max_modules")
	}
	if class.MaxWeight > 0 && totalWeight > class.MaxWeight {
		report.addError(ErrWeightExceeded, class.ID, "total weight exceeds class.max_weight")
	}
}

// tagsConflict checks rule 8: no conflicting pair within one weapon, the
// catalog names the conflict pairs via TagEffect.ConflictsWith.
func tagsConflict(tags []catalog.Tag, tt catalog.TagTable) bool {
	for _, t := range tags {
		eff, ok := tt[t]
		if !ok {
			continue
		}
		for _, conflict := range eff.ConflictsWith {
			if catalog.HasTag(tags, conflict) {
				return true
			}
		}
	}
	return false
}

// assemble builds the runtime Ship once validation has passed, applying
// variant modifiers and class bonuses (§4.2 "Bonus resolution": applied
// once, multiplicatively, at compile time — never reapplied per tick).
func (c *Compiler) assemble(bp ShipBlueprint, class *catalog.ShipClass, report *CompileReport) *world.Ship {
	ship := &world.Ship{
		ID:        world.NewShipID(),
		ClassID:   class.ID,
		FactionID: bp.TeamID,
		MaxHull:   class.BaseHP,
		Hull:      class.BaseHP,
		Inventory: map[string]int{},
		Crew:      map[world.PlayerID]world.Role{},
		Contacts:  map[world.ShipID]bool{},
		Targeting: world.Targeting{Locks: map[string]world.ShipID{}},
	}

	var totalPower, totalHeatCap, totalShields float64
	hasAmmo := false

	for _, m := range bp.Modules {
		slot, _ := c.Catalog.Slot(m.SlotType)
		inst := world.ModuleInstance{
			SlotTypeID:  m.SlotType,
			VariantID:   m.VariantID,
			Health:      slot.BaseHP,
			MaxHealth:   slot.BaseHP,
			Operational: true,
		}
		powerDemand := slot.BasePowerConsumption
		heatGen := slot.BaseHeatGeneration

		if variant, ok := c.Catalog.Variant(m.VariantID); ok {
			inst.Health += variant.AdditionalHP
			inst.MaxHealth += variant.AdditionalHP
			powerDemand += variant.AdditionalPowerConsumption
			heatGen += variant.AdditionalHeatGeneration

			if production, ok := variant.TypeSpecific["energy_production"]; ok {
				totalPower += production
			}
			if shields, ok := variant.TypeSpecific["max_shields"]; ok {
				totalShields += shields
			}
			if cap, ok := variant.TypeSpecific["heat_capacity"]; ok {
				totalHeatCap += cap
			}
		}

		if m.WeaponID != "" {
			weapon, _ := c.Catalog.WeaponByID(m.WeaponID)
			inst.Weapon = &world.WeaponState{WeaponID: weapon.ID, FireMode: world.FireManual}
			if weapon.AmmoType != "" {
				compat := c.Catalog.CompatibleAmmo(weapon.AmmoType, weapon.AmmoSize)
				if len(compat) > 0 {
					ship.Inventory[compat[0].ID] = weapon.AmmoCapacity
					hasAmmo = true
				}
			}
		}

		_ = heatGen // demand accounted for in per-tick power budget, not at compile time
		ship.Modules = append(ship.Modules, inst)
	}

	if totalShields == 0 {
		totalShields = class.BaseHP * 0.5 // sane default when no shield module sets one explicitly
	}
	ship.MaxShields = totalShields
	ship.Shields = totalShields
	ship.PowerAvailable = totalPower
	ship.HeatCapacity = totalHeatCap

	for group, mult := range class.Bonuses {
		c.applyBonus(ship, group, mult)
	}

	for pid, roles := range bp.Players {
		for _, r := range roles {
			ship.Crew[pid] = r
		}
	}

	if !hasAmmo && len(bp.Modules) > 0 {
		report.addWarning(WarnNoAmmoReserved, class.ID, "no ammunition reserved for any weapon")
	}

	ship.Position = c.choosePosition()

	return ship
}

// applyBonus applies a class bonus multiplicatively to the stat it
// targets; a bonus keyed on a module group applies only to modules in
// that group (§4.2). Recognized ship-wide stat keys are a small, fixed
// set — "max_hull", "max_shields", "power_available", "heat_capacity" —
// mirroring the
// teacher's flat per-ship-type stat table (game/types.go ShipStats)
// generalized to per-class multiplicative bonuses instead of fixed
// constants. Any other key is treated as a module group name: the bonus
// scales the health of every module whose slot lists that group.
func (c *Compiler) applyBonus(ship *world.Ship, key string, mult float64) {
	switch key {
	case "max_hull":
		ship.MaxHull *= mult
		ship.Hull *= mult
		return
	case "max_shields":
		ship.MaxShields *= mult
		ship.Shields *= mult
		return
	case "power_available":
		ship.PowerAvailable *= mult
		return
	case "heat_capacity":
		ship.HeatCapacity *= mult
		return
	}

	for i := range ship.Modules {
		m := &ship.Modules[i]
		slot, ok := c.Catalog.Slot(m.SlotTypeID)
		if !ok || !hasGroup(slot.Groups, key) {
			continue
		}
		m.MaxHealth *= mult
		m.Health *= mult
	}
}

func hasGroup(groups []string, key string) bool {
	for _, g := range groups {
		if g == key {
			return true
		}
	}
	return false
}

// choosePosition picks a spawn position via the world's seeded PRNG in a
// region free of collisions with existing entities (§4.2 "Output: On
// success"). Uses the dedicated spawn sub-stream so repeated compiles in
// the same tick don't perturb any other deterministic draw sequence. If
// none of 32 candidates is clear, it returns the origin without a further
// collision check.
func (c *Compiler) choosePosition() world.Vec2 {
	rng := c.RNG.Stream(prng.StreamSpawn)
	const span = 5000.0
	const minSeparation = 500.0

	for attempt := 0; attempt < 32; attempt++ {
		candidate := world.Vec2{
			X: rng.Float64()*span*2 - span,
			Y: rng.Float64()*span*2 - span,
		}
		clear := true
		for _, existing := range c.World.Iter() {
			if world.Distance(candidate, existing.Position) < minSeparation {
				clear = false
				break
			}
		}
		if clear {
			return candidate
		}
	}
	return world.Vec2{}
}
