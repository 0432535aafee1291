package world

import "math"

// Vec2 is a 2D position/velocity pair, used throughout the live-state
// model instead of separate X/Y fields (the teacher's Player keeps X/Y as
// bare float64s; HYPERION groups them since every phase clamps the pair
// together — position magnitude, velocity magnitude — and a Vec2 makes
// that a one-line call instead of repeated sqrt(dx*dx+dy*dy) call sites).
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }

func (v Vec2) Clamped(max float64) Vec2 {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Scale(max / l)
}

func Distance(a, b Vec2) float64 { return a.Sub(b).Len() }

// NormalizeAngle keeps an angle in [0, 2*pi), matching the teacher's
// game.NormalizeAngle (game/types.go).
func NormalizeAngle(angle float64) float64 {
	const twoPi = 2 * math.Pi
	angle = math.Mod(angle, twoPi)
	if angle < 0 {
		angle += twoPi
	}
	return angle
}

// WarpState tracks FTL cruise progress (§3, §4.4 phase 14).
type WarpState int

const (
	WarpIdle WarpState = iota
	WarpCharging
	WarpCruising
)

// JumpState tracks instantaneous-translation FTL progress.
type JumpState int

const (
	JumpIdle JumpState = iota
	JumpCharging
)

// DockState advances through the docking state machine (§4.4 phase 16,
// supplemented — the teacher has no docking system of its own).
type DockState int

const (
	DockNone DockState = iota
	DockRequested
	DockApproaching
	DockDocked
	DockUndocking
)

// ModuleInstance is a mounted module on a ship: a slot type plus the
// variant chosen for it at compile time, with live health and the
// power/cooling fraction allocated to it (§3).
type ModuleInstance struct {
	SlotTypeID  string
	VariantID   string
	Health      float64
	MaxHealth   float64
	PowerAlloc  float64
	CoolingAlloc float64
	Operational bool

	// Weapon-only fields; zero-valued for non-weapon modules.
	Weapon *WeaponState
}

// FireMode selects whether a weapon fires only on explicit FireIntent or
// continuously while a target is locked.
type FireMode int

const (
	FireManual FireMode = iota
	FireAutomatic
)

// WeaponState is the live, mutable state of a mounted weapon.
type WeaponState struct {
	WeaponID         string
	CooldownRemaining float64
	AmmoLoaded       string
	FireMode         FireMode
	Target           ShipID
	HasTarget        bool
	Active           bool // point-defense / countermeasure toggles; set on a beam weapon once it fires
	FireRequested    bool // deposited by FireIntent, consumed in phase 6
}

// StatusEffect is a time-decaying modifier attached to a ship (§3, §4.5).
type StatusEffect struct {
	Kind            string // mirrors catalog.StatusKind as a string to avoid import cycle
	Remaining       float64
	Intensity       float64
	SourceWeaponTag string
}

// Targeting tracks per-weapon-class lock state driven by TargetIntent.
type Targeting struct {
	Locks map[string]ShipID // weapon_class -> target ship id
}

// Role is a crew assignment on a ship (Blueprint Compiler rule 2).
type Role string

const (
	RoleCaptain   Role = "captain"
	RolePilot     Role = "pilot"
	RoleGunner    Role = "gunner"
	RoleEngineer  Role = "engineer"
	RoleScience   Role = "science"
	RoleComms     Role = "comms"
)

// AllRoles is the fixed role set validated against in the Blueprint
// Compiler (rule 2).
var AllRoles = []Role{RoleCaptain, RolePilot, RoleGunner, RoleEngineer, RoleScience, RoleComms}

// Ship is a live, simulated entity (§3).
type Ship struct {
	ID       ShipID
	ClassID  string
	FactionID string

	Position        Vec2
	Orientation     float64 // radians
	Velocity        Vec2
	AngularVelocity float64

	Hull       float64
	MaxHull    float64
	Shields    float64
	MaxShields float64
	ShieldsRaised bool
	LastDamageTick int64

	PowerAvailable float64
	Heat           float64
	HeatCapacity   float64

	Modules   []ModuleInstance
	Inventory map[string]int // ammo id -> count

	StatusEffects []StatusEffect

	Crew map[PlayerID]Role

	WarpState   WarpState
	WarpCharge  float64
	WarpFactor  float64
	WarpHeading float64

	JumpState      JumpState
	JumpCharge     float64
	JumpDestination Vec2

	Orbiting    StationID
	IsOrbiting  bool
	DockState   DockState
	DockTarget  StationID

	Targeting Targeting
	Contacts  map[ShipID]bool

	Destroyed bool

	// Intent intake slots (§4.4 phase 1, §5 "last-writer-wins"). Each
	// field is overwritten by the latest intent of its kind deposited
	// before the tick boundary and cleared by the engine phase that
	// consumes it.
	Intents ShipIntents
}

// ShipIntents holds the per-entity command-intent slots the engine's
// phases drain, each slot in the phase that acts on it. Only one of each kind is kept; later deposits overwrite
// earlier ones within the same tick (§5, §9 "Command intents").
type ShipIntents struct {
	Thrust        *ThrustIntent
	Rotate        *RotateIntent
	FullStop      bool
	EngageWarp    *EngageWarpIntent
	EngageJump    *EngageJumpIntent
	DockRequest   *DockRequestIntent
	Undock        bool
	Target        *TargetIntent
	Fire          map[string]bool // weapon_id -> requested
	AutoFire      map[string]bool
	ConfigWeapon  map[string]*ConfigureWeaponIntent
	LoadAmmo      map[string]*LoadAmmoIntent
	ShieldsUp     *bool
	Countermeasure *ActivateCountermeasureIntent
	PointDefense  *bool
	AllocatePower *AllocatePowerIntent
	AllocateCooling *AllocateCoolingIntent
	Repair        *RepairIntent
	Scan          *ScanIntent
	Analyze       *AnalyzeIntent
	Hail          *HailIntent
	Jam           *JamIntent
}

// HasActiveStatus reports whether a ship has a live status effect of the
// given kind (§3 invariant: at most one per kind).
func (s *Ship) HasActiveStatus(kind string) bool {
	for _, e := range s.StatusEffects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// ApplyStatus applies or refreshes a non-stacking status effect: later
// applications refresh remaining/intensity to the max of incumbent and new
// (§3, §4.5 step 5).
func (s *Ship) ApplyStatus(kind string, duration, intensity float64, sourceTag string) {
	for i := range s.StatusEffects {
		if s.StatusEffects[i].Kind == kind {
			if duration > s.StatusEffects[i].Remaining {
				s.StatusEffects[i].Remaining = duration
			}
			if intensity > s.StatusEffects[i].Intensity {
				s.StatusEffects[i].Intensity = intensity
			}
			s.StatusEffects[i].SourceWeaponTag = sourceTag
			return
		}
	}
	s.StatusEffects = append(s.StatusEffects, StatusEffect{
		Kind: kind, Remaining: duration, Intensity: intensity, SourceWeaponTag: sourceTag,
	})
}

// EffectiveMass returns base mass scaled by the Graviton multiplier while
// that status is active (§4.4 phase 4, §8 scenario 3).
func (s *Ship) EffectiveMass(baseMass, gravitonMultiplier float64) float64 {
	for _, e := range s.StatusEffects {
		if e.Kind == "Graviton" {
			return baseMass * (1 + gravitonMultiplier*e.Intensity)
		}
	}
	return baseMass
}

// ClampInvariants enforces the §3/§8 numeric invariants after any phase
// mutates a ship. The engine calls this at the end of Physics Integration
// and again in Cleanup; every numeric path in the engine clamps rather
// than panics (§7).
func (s *Ship) ClampInvariants(maxVelocity, maxPosition float64) {
	if s.Hull < 0 {
		s.Hull = 0
	}
	if s.Hull > s.MaxHull {
		s.Hull = s.MaxHull
	}
	if s.Shields < 0 {
		s.Shields = 0
	}
	if s.Shields > s.MaxShields {
		s.Shields = s.MaxShields
	}
	s.Velocity = s.Velocity.Clamped(maxVelocity)
	s.Position = s.Position.Clamped(maxPosition)
}
