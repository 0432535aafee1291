// Package catalog holds the immutable, read-only-after-load game data
// tables: ship classes, module slots and variants, weapons, ammunition,
// tag effects, and the numeric tunables that parameterize the simulation.
//
// A Catalog is produced by an external YAML loader (out of scope for this
// package) and handed to New, which validates it before it is trusted
// anywhere else in the engine. Struct tags are provided so that loader can deserialize
// directly into these types; this package never reads a file itself.
package catalog

// Size classifies a ShipClass by hull category.
type Size string

const (
	SizeSmall  Size = "Small"
	SizeMedium Size = "Medium"
	SizeLarge  Size = "Large"
)

// ShipClass is the top-level hull definition a blueprint is compiled against.
type ShipClass struct {
	ID          string             `yaml:"id"`
	Size        Size               `yaml:"size"`
	Role        string             `yaml:"role"`
	MaxWeight   float64            `yaml:"max_weight"`
	MaxModules  int                `yaml:"max_modules"`
	BaseHP      float64            `yaml:"base_hp"`
	BuildPoints int                `yaml:"build_points"`
	Bonuses     map[string]float64 `yaml:"bonuses"`
}

// ModuleSlot is a mounting point on a hull, constrained by count and weight.
type ModuleSlot struct {
	ID                    string   `yaml:"id"`
	Groups                []string `yaml:"groups"`
	Required              bool     `yaml:"required"`
	HasVariants           bool     `yaml:"has_variants"`
	BaseCost              int      `yaml:"base_cost"`
	MaxSlots              int      `yaml:"max_slots"`
	BaseHP                float64  `yaml:"base_hp"`
	BasePowerConsumption  float64  `yaml:"base_power_consumption"`
	BaseHeatGeneration    float64  `yaml:"base_heat_generation"`
	BaseWeight            float64  `yaml:"base_weight"`
}

// HasVariants serializes canonically as has_variants. The source plan's
// "has_varients" misspelling (§9 Open Questions) is accepted only by the
// external loader (config's moduleSlotDoc), which folds it into this field;
// this package always reads HasVariants.

// ModuleVariant is a concrete, installable version of a ModuleSlot with its
// own stat modifiers. TypeSpecific carries fields like max_thrust,
// energy_production, shield_recharge_rate that only apply to certain slot
// kinds.
type ModuleVariant struct {
	ID                          string             `yaml:"id"`
	SlotTypeID                  string             `yaml:"slot_type_id"`
	Cost                        int                `yaml:"cost"`
	AdditionalHP                float64            `yaml:"additional_hp"`
	AdditionalPowerConsumption  float64            `yaml:"additional_power_consumption"`
	AdditionalHeatGeneration    float64            `yaml:"additional_heat_generation"`
	AdditionalWeight            float64            `yaml:"additional_weight"`
	TypeSpecific                map[string]float64 `yaml:"type_specific"`
}

// WeaponSlotType enumerates the mounting categories a Weapon can occupy.
type WeaponSlotType string

const (
	SlotDirectedEnergy  WeaponSlotType = "de"
	SlotKinetic         WeaponSlotType = "kinetic"
	SlotMissileLauncher WeaponSlotType = "missile-launcher"
	SlotTorpedoTube     WeaponSlotType = "torpedo-tube"
	SlotRadial          WeaponSlotType = "radial"
	SlotCountermeasure  WeaponSlotType = "countermeasure"
)

// Weapon is a static weapon definition referenced by a ModuleInstance that
// mounts it.
type Weapon struct {
	ID             string         `yaml:"id"`
	SlotType       WeaponSlotType `yaml:"slot_type"`
	Tags           []Tag          `yaml:"tags"`
	Cost           int            `yaml:"cost"`
	Weight         float64        `yaml:"weight"`
	Damage         float64        `yaml:"damage"`
	RechargeTime   float64        `yaml:"recharge_time"`
	ReloadTime     float64        `yaml:"reload_time"`
	MaxRange       float64        `yaml:"max_range"`
	ProjectileSpeed float64       `yaml:"projectile_speed"`
	Accuracy       float64        `yaml:"accuracy"`
	NumProjectiles int            `yaml:"num_projectiles"`
	AmmoType       string         `yaml:"ammo_type,omitempty"`
	AmmoSize       string         `yaml:"ammo_size,omitempty"`
	AmmoCapacity   int            `yaml:"ammo_capacity,omitempty"`
}

// AmmoCategory groups ammunition by the launcher family that fires it.
type AmmoCategory string

const (
	AmmoKinetic  AmmoCategory = "kinetic"
	AmmoMissiles AmmoCategory = "missiles"
	AmmoTorpedos AmmoCategory = "torpedos"
)

// Ammunition is a loadable round or warhead.
type Ammunition struct {
	ID               string       `yaml:"id"`
	Category         AmmoCategory `yaml:"category"`
	Type             string       `yaml:"type"`
	Size             string       `yaml:"size"`
	Weight           float64      `yaml:"weight"`
	ImpactDamage     float64      `yaml:"impact_damage"`
	BlastRadius      float64      `yaml:"blast_radius"`
	BlastDamage      float64      `yaml:"blast_damage"`
	Velocity         float64      `yaml:"velocity"`
	ArmorPenetration float64      `yaml:"armor_penetration"`
	WeaponTags       []Tag        `yaml:"weapon_tags"`
	Guidance         string       `yaml:"guidance,omitempty"`
	Lifetime         float64      `yaml:"lifetime,omitempty"`
	MaxSpeed         float64      `yaml:"max_speed,omitempty"`
	MaxTurnRate      float64      `yaml:"max_turn_rate,omitempty"`
}

// FiringPattern is derived from a weapon's tag set (§9 "Tag algebra").
type FiringPattern string

const (
	PatternSingle FiringPattern = "single"
	PatternPulse  FiringPattern = "pulse"
	PatternBurst  FiringPattern = "burst"
	PatternBeam   FiringPattern = "beam"
)

// ProjectileCount returns how many projectiles one fire event of this
// pattern emits; Beam returns 0 because beams apply continuous per-tick
// damage instead (§4.4 phase 9, §8 boundary behaviors).
func (p FiringPattern) ProjectileCount() int {
	switch p {
	case PatternSingle:
		return 1
	case PatternPulse:
		return 2
	case PatternBurst:
		return 3
	default:
		return 0
	}
}

// TargetingPolicy describes how a tag influences lock-on / sink behavior.
type TargetingPolicy string

const (
	TargetingNormal TargetingPolicy = "normal"
	TargetingDecoy  TargetingPolicy = "decoy"
)

// TagEffect is the per-tag behavioral record resolved by the damage and
// firing-pattern table (§4.5, §9).
type TagEffect struct {
	Tag             Tag             `yaml:"tag"`
	FiringPattern   FiringPattern   `yaml:"firing_pattern,omitempty"`
	ShieldMult      float64         `yaml:"shield_mult,omitempty"`
	HullBypassFrac  float64         `yaml:"hull_bypass_frac,omitempty"`
	StatusKind      StatusKind      `yaml:"status_kind,omitempty"`
	StatusDuration  float64         `yaml:"status_duration,omitempty"`
	StatusIntensity float64         `yaml:"status_intensity,omitempty"`
	TargetingPolicy TargetingPolicy `yaml:"targeting_policy,omitempty"`
	// AntiKindMultiplier holds e.g. {"Missile": 0.3} for Antimissile, the
	// Chaff multiplier table, and similar per-projectile-kind scalars.
	AntiKindMultiplier map[string]float64 `yaml:"anti_kind_multiplier,omitempty"`
	ConflictsWith      []Tag              `yaml:"conflicts_with,omitempty"`
}

// StatusKind enumerates the non-stacking per-ship status effects.
type StatusKind string

const (
	StatusIon      StatusKind = "Ion"
	StatusGraviton StatusKind = "Graviton"
	StatusTachyon  StatusKind = "Tachyon"
	StatusChaff    StatusKind = "Chaff"
)

// Tunables holds the numeric knobs referenced throughout §4 and §6.
type Tunables struct {
	Timestep float64 `yaml:"timestep"`

	MaxVelocity            float64 `yaml:"max_velocity"`
	MaxAcceleration         float64 `yaml:"max_acceleration"`
	MinCollisionDistance    float64 `yaml:"min_collision_distance"`
	MaxCollisionDistance    float64 `yaml:"max_collision_distance"`
	MaxPosition             float64 `yaml:"max_position"`

	SpaceDrag          float64 `yaml:"space_drag"`
	GravitonMultiplier float64 `yaml:"graviton_weight_multiplier"`

	// Shield/hull-bypass multipliers per tag (Photon, Plasma, Positron, ...)
	// live on each TagEffect, not here, so a new damage tag is a single
	// catalog-data row rather than a new tunable.
	ArmorPenetrationScale float64 `yaml:"armor_penetration_scale"`

	ShieldRegenRate       float64 `yaml:"shield_regen_rate"`
	ShieldRegenDelay      float64 `yaml:"shield_regen_delay"`
	ShieldAbsorption      float64 `yaml:"shield_absorption"`

	OverheatThreshold   float64 `yaml:"overheat_threshold"`
	OverheatDamagePerSec float64 `yaml:"overheat_damage_per_sec"`

	WarpChargeTime      float64 `yaml:"warp_charge_time"`
	WarpSpeedMultiplier float64 `yaml:"warp_speed_multiplier"`
	JumpChargeTime      float64 `yaml:"jump_charge_time"`
	SensorRange         float64 `yaml:"sensor_range"`
	DockingRange        float64 `yaml:"docking_range"`
	DockingApproachSpeed float64 `yaml:"docking_approach_speed"`

	Procedural ProceduralTunables `yaml:"procedural"`
}

// ProceduralTunables parameterizes the universe generator (§4.6).
type ProceduralTunables struct {
	GalaxyRadiusLY  float64 `yaml:"galaxy_radius_ly"`
	Flattening      float64 `yaml:"flattening"`
	SectorGridSize  int     `yaml:"sector_grid_size"`
	RelationThresholds map[string]float64 `yaml:"relation_thresholds"`
}
