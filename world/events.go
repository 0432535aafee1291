package world

// EventKind names an event's payload type (§3, §6). Event envelopes follow
// the same {Type, Data} shape as the teacher's ServerMessage
// (server/websocket.go) so a thin transport adapter can marshal one to
// JSON without a type switch on every field.
type EventKind string

const (
	EventShipMoved              EventKind = "ShipMoved"
	EventWeaponFired             EventKind = "WeaponFired"
	EventDamageTaken              EventKind = "DamageTaken"
	EventShieldChanged             EventKind = "ShieldChanged"
	EventStatusEffectApplied         EventKind = "StatusEffectApplied"
	EventStatusEffectRemoved          EventKind = "StatusEffectRemoved"
	EventModuleStatusChanged           EventKind = "ModuleStatusChanged"
	EventPowerAllocationChanged          EventKind = "PowerAllocationChanged"
	EventCoolingAllocationChanged         EventKind = "CoolingAllocationChanged"
	EventContactDetected                   EventKind = "ContactDetected"
	EventContactLost                        EventKind = "ContactLost"
	EventFtlEngaged                          EventKind = "FtlEngaged"
	EventFtlDisengaged                        EventKind = "FtlDisengaged"
	EventDocked                                 EventKind = "Docked"
	EventUndocked                                EventKind = "Undocked"
	EventShipDestroyed                            EventKind = "ShipDestroyed"
	EventMessageSent                                EventKind = "MessageSent"
	EventCountermeasureActivated                      EventKind = "CountermeasureActivated"
	EventPointDefenseEngaged                            EventKind = "PointDefenseEngaged"
	EventSimulationTick                                   EventKind = "SimulationTick"
	EventIntentRejected                                     EventKind = "IntentRejected"
	EventShipSpawned                                          EventKind = "ShipSpawned"
	EventDetonated                                             EventKind = "Detonated"
)

// Event is the tagged union emitted by any system and drained once per
// tick by the broadcaster (§3 lifecycle).
type Event struct {
	Kind    EventKind
	Tick    int64
	Time    float64
	Ships   []ShipID
	Payload any
}

// Payload structs, one per EventKind that carries structured data beyond
// the involved entity ids.

type ShipMovedPayload struct {
	Position Vec2
	Velocity Vec2
}

type WeaponFiredPayload struct {
	WeaponID   string
	Target     ShipID
	HasTarget  bool
	NumProjectiles int
}

type DamageTakenPayload struct {
	HullPortion   float64
	ShieldPortion float64
	Tags          []string
}

type ShieldChangedPayload struct {
	Shields float64
	Raised  bool
}

type StatusEffectPayload struct {
	Kind      string
	Remaining float64
	Intensity float64
}

type ModuleStatusChangedPayload struct {
	SlotTypeID  string
	Operational bool
}

type AllocationChangedPayload struct {
	Allocations map[string]float64
}

type ContactPayload struct {
	Contact ShipID
}

type FtlPayload struct {
	Kind string // "warp" or "jump"
}

type DockPayload struct {
	Station StationID
}

type ShipDestroyedPayload struct {
	KilledBy  ShipID
	HasKiller bool
	Reason    string
}

type MessagePayload struct {
	From, To string
	Text     string
	Tone     string
}

type CountermeasurePayload struct {
	Type string
}

type IntentRejectedReason string

const (
	ReasonTargetOutOfRange    IntentRejectedReason = "TargetOutOfRange"
	ReasonWeaponNotReady      IntentRejectedReason = "WeaponNotReady"
	ReasonInsufficientPower   IntentRejectedReason = "InsufficientPower"
	ReasonModuleDamaged       IntentRejectedReason = "ModuleDamaged"
	ReasonCommsJammed         IntentRejectedReason = "CommunicationsJammed"
	ReasonFTLBlocked          IntentRejectedReason = "FTLBlocked"
	ReasonShipNotDocked       IntentRejectedReason = "ShipNotDocked"
	ReasonCrewNotAssigned     IntentRejectedReason = "CrewNotAssigned"
	ReasonInvalidAllocation   IntentRejectedReason = "InvalidAllocation"
)

type IntentRejectedPayload struct {
	Reason IntentRejectedReason
}

type DetonatedPayload struct {
	Position Vec2
}
