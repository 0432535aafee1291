package catalog

import (
	"fmt"
	"math"
	"sort"
)

// ErrorKind value-classifies a Catalog validation failure (§4.1, §7).
type ErrorKind string

const (
	ErrMissingID             ErrorKind = "MissingId"
	ErrInvalidProbability    ErrorKind = "InvalidProbabilityTable"
	ErrNumericOutOfRange     ErrorKind = "NumericOutOfRange"
	ErrDuplicateID           ErrorKind = "DuplicateId"
	ErrUnknownSlotType       ErrorKind = "UnknownSlotType"
)

// CatalogError reports one validation failure. validate aggregates every
// failure it finds rather than stopping at the first (§7 "Propagation").
type CatalogError struct {
	Kind    ErrorKind
	Subject string
	Detail  string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog: %s %s: %s", e.Kind, e.Subject, e.Detail)
}

// Catalog is the complete set of immutable tables loaded at startup. All
// lookups are O(1) by id via the maps built in index(); group membership
// (variants by slot, ammo by category, weapons by slot type) is
// precomputed for the same reason.
type Catalog struct {
	Classes     []ShipClass
	Slots       []ModuleSlot
	Variants    []ModuleVariant
	Weapons     []Weapon
	Ammunition  []Ammunition
	TagEffects  []TagEffect
	Tunables    Tunables

	classByID    map[string]*ShipClass
	slotByID     map[string]*ModuleSlot
	variantByID  map[string]*ModuleVariant
	weaponByID   map[string]*Weapon
	ammoByID     map[string]*Ammunition
	tagEffects   TagTable

	variantsBySlot map[string][]*ModuleVariant
	ammoByCategory map[AmmoCategory][]*Ammunition
	weaponsBySlotType map[WeaponSlotType][]*Weapon
}

// New builds and validates a Catalog from already-parsed tables. It never
// reads a file; the external YAML loader is responsible for producing the
// slices passed in here.
func New(classes []ShipClass, slots []ModuleSlot, variants []ModuleVariant,
	weapons []Weapon, ammo []Ammunition, tagEffects []TagEffect, tun Tunables) (*Catalog, []*CatalogError) {

	c := &Catalog{
		Classes: classes, Slots: slots, Variants: variants,
		Weapons: weapons, Ammunition: ammo, TagEffects: tagEffects, Tunables: tun,
	}
	c.index()
	errs := c.validate()
	if len(errs) > 0 {
		return nil, errs
	}
	return c, nil
}

func (c *Catalog) index() {
	c.classByID = make(map[string]*ShipClass, len(c.Classes))
	for i := range c.Classes {
		c.classByID[c.Classes[i].ID] = &c.Classes[i]
	}
	c.slotByID = make(map[string]*ModuleSlot, len(c.Slots))
	for i := range c.Slots {
		c.slotByID[c.Slots[i].ID] = &c.Slots[i]
	}
	c.variantByID = make(map[string]*ModuleVariant, len(c.Variants))
	c.variantsBySlot = make(map[string][]*ModuleVariant)
	for i := range c.Variants {
		v := &c.Variants[i]
		c.variantByID[v.ID] = v
		c.variantsBySlot[v.SlotTypeID] = append(c.variantsBySlot[v.SlotTypeID], v)
	}
	c.weaponByID = make(map[string]*Weapon, len(c.Weapons))
	c.weaponsBySlotType = make(map[WeaponSlotType][]*Weapon)
	for i := range c.Weapons {
		w := &c.Weapons[i]
		c.weaponByID[w.ID] = w
		c.weaponsBySlotType[w.SlotType] = append(c.weaponsBySlotType[w.SlotType], w)
	}
	c.ammoByID = make(map[string]*Ammunition, len(c.Ammunition))
	c.ammoByCategory = make(map[AmmoCategory][]*Ammunition)
	for i := range c.Ammunition {
		a := &c.Ammunition[i]
		c.ammoByID[a.ID] = a
		c.ammoByCategory[a.Category] = append(c.ammoByCategory[a.Category], a)
	}
	c.tagEffects = make(TagTable, len(c.TagEffects))
	for _, te := range c.TagEffects {
		c.tagEffects[te.Tag] = te
	}

	for _, vs := range c.variantsBySlot {
		sort.Slice(vs, func(i, j int) bool { return vs[i].ID < vs[j].ID })
	}
}

func (c *Catalog) validate() []*CatalogError {
	var errs []*CatalogError

	seenClass := map[string]bool{}
	for _, cl := range c.Classes {
		if cl.ID == "" {
			errs = append(errs, &CatalogError{ErrMissingID, "ShipClass", "empty id"})
			continue
		}
		if seenClass[cl.ID] {
			errs = append(errs, &CatalogError{ErrDuplicateID, "ShipClass:" + cl.ID, "duplicate class id"})
		}
		seenClass[cl.ID] = true
		if cl.MaxWeight <= 0 {
			errs = append(errs, &CatalogError{ErrNumericOutOfRange, "ShipClass:" + cl.ID, "max_weight must be > 0"})
		}
		if cl.MaxModules <= 0 {
			errs = append(errs, &CatalogError{ErrNumericOutOfRange, "ShipClass:" + cl.ID, "max_modules must be > 0"})
		}
		if cl.BaseHP <= 0 {
			errs = append(errs, &CatalogError{ErrNumericOutOfRange, "ShipClass:" + cl.ID, "base_hp must be > 0"})
		}
	}

	seenSlot := map[string]bool{}
	for _, s := range c.Slots {
		if s.ID == "" {
			errs = append(errs, &CatalogError{ErrMissingID, "ModuleSlot", "empty id"})
			continue
		}
		if seenSlot[s.ID] {
			errs = append(errs, &CatalogError{ErrDuplicateID, "ModuleSlot:" + s.ID, "duplicate slot id"})
		}
		seenSlot[s.ID] = true
		if s.MaxSlots < 0 {
			errs = append(errs, &CatalogError{ErrNumericOutOfRange, "ModuleSlot:" + s.ID, "max_slots must be >= 0"})
		}
	}

	seenVariant := map[string]bool{}
	for _, v := range c.Variants {
		if v.ID == "" {
			errs = append(errs, &CatalogError{ErrMissingID, "ModuleVariant", "empty id"})
			continue
		}
		if seenVariant[v.ID] {
			errs = append(errs, &CatalogError{ErrDuplicateID, "ModuleVariant:" + v.ID, "duplicate variant id"})
		}
		seenVariant[v.ID] = true
		if _, ok := seenSlot[v.SlotTypeID]; !ok {
			errs = append(errs, &CatalogError{ErrUnknownSlotType, "ModuleVariant:" + v.ID, "references unknown slot_type_id " + v.SlotTypeID})
		}
	}

	seenWeapon := map[string]bool{}
	for _, w := range c.Weapons {
		if w.ID == "" {
			errs = append(errs, &CatalogError{ErrMissingID, "Weapon", "empty id"})
			continue
		}
		if seenWeapon[w.ID] {
			errs = append(errs, &CatalogError{ErrDuplicateID, "Weapon:" + w.ID, "duplicate weapon id"})
		}
		seenWeapon[w.ID] = true
		if w.Accuracy < 0 || w.Accuracy > 1 {
			errs = append(errs, &CatalogError{ErrNumericOutOfRange, "Weapon:" + w.ID, "accuracy must be in [0,1]"})
		}
		if w.Damage < 0 {
			errs = append(errs, &CatalogError{ErrNumericOutOfRange, "Weapon:" + w.ID, "damage must be >= 0"})
		}
	}

	seenAmmo := map[string]bool{}
	for _, a := range c.Ammunition {
		if a.ID == "" {
			errs = append(errs, &CatalogError{ErrMissingID, "Ammunition", "empty id"})
			continue
		}
		if seenAmmo[a.ID] {
			errs = append(errs, &CatalogError{ErrDuplicateID, "Ammunition:" + a.ID, "duplicate ammo id"})
		}
		seenAmmo[a.ID] = true
	}

	if c.Tunables.Timestep <= 0 {
		errs = append(errs, &CatalogError{ErrNumericOutOfRange, "Tunables", "timestep must be > 0"})
	}
	if c.Tunables.MaxVelocity <= 0 {
		errs = append(errs, &CatalogError{ErrNumericOutOfRange, "Tunables", "max_velocity must be > 0"})
	}

	// Probability tables (procedural generator star-type / sector-density
	// tables) live in procgen/tables.go and are checked by procgen.Validate,
	// not here. The relation-threshold map is not checked at all; an empty
	// map makes procgen fall back to its default thresholds.
	if c.Tunables.Procedural.RelationThresholds != nil {
		sum := 0.0
		for _, v := range c.Tunables.Procedural.RelationThresholds {
			sum += v
		}
		_ = sum // thresholds are boundaries, not a probability partition; no sum check needed
	}

	return errs
}

// ValidateProbabilityTable is a shared helper: the spec requires every
// probability table (star type, sector density, faction trait, ...) sum to
// 1.0 within 1e-6 (§4.1).
func ValidateProbabilityTable(name string, table map[string]float64) *CatalogError {
	sum := 0.0
	for _, p := range table {
		sum += p
	}
	if math.Abs(sum-1.0) > 1e-6 {
		return &CatalogError{ErrInvalidProbability, name, fmt.Sprintf("probabilities sum to %f, want 1.0", sum)}
	}
	return nil
}

// Lookups

func (c *Catalog) Class(id string) (*ShipClass, bool)       { v, ok := c.classByID[id]; return v, ok }
func (c *Catalog) Slot(id string) (*ModuleSlot, bool)        { v, ok := c.slotByID[id]; return v, ok }
func (c *Catalog) Variant(id string) (*ModuleVariant, bool)  { v, ok := c.variantByID[id]; return v, ok }
func (c *Catalog) WeaponByID(id string) (*Weapon, bool)      { v, ok := c.weaponByID[id]; return v, ok }
func (c *Catalog) AmmoByID(id string) (*Ammunition, bool)    { v, ok := c.ammoByID[id]; return v, ok }
func (c *Catalog) TagEffects() TagTable                      { return c.tagEffects }

func (c *Catalog) VariantsForSlot(slotID string) []*ModuleVariant { return c.variantsBySlot[slotID] }
func (c *Catalog) AmmoForCategory(cat AmmoCategory) []*Ammunition { return c.ammoByCategory[cat] }
func (c *Catalog) WeaponsForSlotType(st WeaponSlotType) []*Weapon { return c.weaponsBySlotType[st] }

// CompatibleAmmo finds ammunition of a matching type/size for a kinetic
// weapon's ammo_type/ammo_size fields (Blueprint Compiler rule 9).
func (c *Catalog) CompatibleAmmo(ammoType, ammoSize string) []*Ammunition {
	var out []*Ammunition
	for i := range c.Ammunition {
		a := &c.Ammunition[i]
		if (ammoType == "" || a.Type == ammoType) && (ammoSize == "" || a.Size == ammoSize) {
			out = append(out, a)
		}
	}
	return out
}
