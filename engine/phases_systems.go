package engine

import (
	"github.com/hyperion-sim/hyperion/catalog"
	"github.com/hyperion-sim/hyperion/world"
)

// phaseShipSystems is phase 11: apply power/cooling allocation intents,
// recompute the power budget (production from power-core modules vs.
// demand from every allocated module) and scale non-power modules'
// effective power proportionally when demand exceeds production, mirror
// that for cooling against heat capacity, apply crew repair progress,
// flip a module's Operational flag off when its health reaches zero, and
// apply overheat hull damage once heat exceeds the catalog's overheat
// threshold (§4.4 phase 11).
func (e *Engine) phaseShipSystems(ships []*world.Ship, dt float64) {
	tun := e.Catalog.Tunables

	for _, s := range ships {
		if s.Destroyed {
			continue
		}

		if alloc := s.Intents.AllocatePower; alloc != nil {
			e.applyAllocation(s, alloc.Allocations, true)
			s.Intents.AllocatePower = nil
		}
		if alloc := s.Intents.AllocateCooling; alloc != nil {
			e.applyAllocation(s, alloc.Allocations, false)
			s.Intents.AllocateCooling = nil
		}

		if r := s.Intents.Repair; r != nil {
			e.applyRepair(s, r)
			s.Intents.Repair = nil
		}

		for i := range s.Modules {
			m := &s.Modules[i]
			m.Operational = m.Health > 0
		}

		powerScale := e.powerBudgetScale(s)
		heatScale := e.coolingBudgetScale(s)

		heatGenerated := 0.0
		heatDissipated := 0.0
		for i := range s.Modules {
			m := &s.Modules[i]
			if !m.Operational {
				continue
			}
			variant := e.variant(m.VariantID)
			if variant == nil {
				continue
			}
			if !e.isPowerCore(variant) {
				m.Operational = m.Health > 0 && powerScale > 0
			}

			healthRatio := 1.0
			if m.MaxHealth > 0 {
				healthRatio = m.Health / m.MaxHealth
			}
			effectivePower := m.PowerAlloc * powerScale
			heatGenerated += variant.AdditionalHeatGeneration * effectivePower * healthRatio
			heatDissipated += m.CoolingAlloc * heatScale * healthRatio
		}

		s.Heat += (heatGenerated - heatDissipated) * dt
		if s.Heat < 0 {
			s.Heat = 0
		}
		if s.HeatCapacity > 0 && s.Heat > s.HeatCapacity {
			s.Heat = s.HeatCapacity
		}

		if tun.OverheatThreshold > 0 && s.Heat > tun.OverheatThreshold {
			s.Hull -= tun.OverheatDamagePerSec * dt
			if s.Hull < 0 {
				s.Hull = 0
			}
			if s.Hull <= 0 && !s.Destroyed {
				s.Destroyed = true
				e.emit(world.EventShipDestroyed, []world.ShipID{s.ID}, world.ShipDestroyedPayload{
					HasKiller: false, Reason: "overheat",
				})
			}
		}
	}
}

// isPowerCore reports whether a variant produces power rather than
// consuming it, so power-core modules are never themselves scaled down by
// their own demand/production shortfall (§4.4 phase 11).
func (e *Engine) isPowerCore(v *catalog.ModuleVariant) bool {
	_, ok := v.TypeSpecific["energy_production"]
	return ok
}

// powerBudgetScale computes production (Σ energy_production × health
// ratio × power_alloc of operational power-cores) vs. demand (Σ module
// power_consumption × power_alloc of every operational module) and
// returns production/demand clamped to [0,1], or 1 when demand does not
// exceed production (§3 invariant, §4.4 phase 11).
func (e *Engine) powerBudgetScale(s *world.Ship) float64 {
	production := 0.0
	demand := 0.0
	for i := range s.Modules {
		m := &s.Modules[i]
		if m.Health <= 0 {
			continue
		}
		slot, _ := e.Catalog.Slot(m.SlotTypeID)
		variant := e.variant(m.VariantID)
		healthRatio := 1.0
		if m.MaxHealth > 0 {
			healthRatio = m.Health / m.MaxHealth
		}
		if variant != nil {
			if prod, ok := variant.TypeSpecific["energy_production"]; ok {
				production += prod * healthRatio * m.PowerAlloc
				continue
			}
		}
		consumption := 0.0
		if slot != nil {
			consumption = slot.BasePowerConsumption
		}
		if variant != nil {
			consumption += variant.AdditionalPowerConsumption
		}
		demand += consumption * m.PowerAlloc
	}
	if demand <= production || demand <= 0 {
		return 1
	}
	return production / demand
}

// coolingBudgetScale mirrors powerBudgetScale for heat: when the sum of
// allocated cooling demand exceeds HeatCapacity, every over-heated module
// suffers a linear penalty (§4.4 phase 11 "Cooling mirrors this").
func (e *Engine) coolingBudgetScale(s *world.Ship) float64 {
	if s.HeatCapacity <= 0 {
		return 1
	}
	demand := 0.0
	for i := range s.Modules {
		m := &s.Modules[i]
		if m.Health <= 0 {
			continue
		}
		demand += m.CoolingAlloc
	}
	if demand <= s.HeatCapacity || demand <= 0 {
		return 1
	}
	return s.HeatCapacity / demand
}

// applyAllocation distributes a ship's available power or cooling budget
// across its modules by the submitted slot-id -> fraction map, clamping
// each fraction to [0,1] and rejecting the whole allocation if it would
// exceed 1.0 of the ship's total budget (§4.2 power/heat budget).
func (e *Engine) applyAllocation(s *world.Ship, allocations map[string]float64, power bool) {
	total := 0.0
	for _, f := range allocations {
		total += f
	}
	if total > 1.0001 {
		e.reject(s.ID, world.ReasonInvalidAllocation)
		return
	}
	for i := range s.Modules {
		m := &s.Modules[i]
		frac, ok := allocations[m.SlotTypeID]
		if !ok {
			continue
		}
		frac = clamp01(frac)
		if power {
			m.PowerAlloc = frac
		} else {
			m.CoolingAlloc = frac
		}
	}
	kind := world.EventPowerAllocationChanged
	if !power {
		kind = world.EventCoolingAllocationChanged
	}
	e.emit(kind, []world.ShipID{s.ID}, world.AllocationChangedPayload{Allocations: allocations})
}

// applyRepair restores a damaged module's health at a fixed rate while a
// crew member is assigned engineer, rejecting the request otherwise (a
// repair order names the specific crew member performing it).
func (e *Engine) applyRepair(s *world.Ship, r *world.RepairIntent) {
	if _, assigned := s.Crew[r.Crew]; !assigned || s.Crew[r.Crew] != world.RoleEngineer {
		e.reject(s.ID, world.ReasonCrewNotAssigned)
		return
	}
	for i := range s.Modules {
		m := &s.Modules[i]
		if m.SlotTypeID != r.ModuleID {
			continue
		}
		const repairPerSec = 5.0
		m.Health += repairPerSec
		if m.Health > m.MaxHealth {
			m.Health = m.MaxHealth
		}
		e.emit(world.EventModuleStatusChanged, []world.ShipID{s.ID}, world.ModuleStatusChangedPayload{
			SlotTypeID: m.SlotTypeID, Operational: m.Operational,
		})
		return
	}
}
