package world

// ProjectileKind enumerates the live projectile categories (§3).
type ProjectileKind string

const (
	ProjectileBeam           ProjectileKind = "Beam"
	ProjectileKinetic        ProjectileKind = "Kinetic"
	ProjectileMissile        ProjectileKind = "Missile"
	ProjectileTorpedo        ProjectileKind = "Torpedo"
	ProjectileChaff          ProjectileKind = "Chaff"
	ProjectileCountermeasure ProjectileKind = "Countermeasure"
)

// Payload carries the damage-resolution inputs for an impact (§4.5).
type Payload struct {
	ImpactDamage     float64
	BlastRadius      float64
	BlastDamage      float64
	ArmorPenetration float64
	Tags             []string // catalog.Tag values, kept as strings to avoid import cycle
}

// Projectile is a live in-flight entity created by weapon fire (§3).
type Projectile struct {
	ID       ProjectileID
	Owner    ShipID
	OwnerFaction string
	Kind     ProjectileKind
	Position Vec2
	Velocity Vec2

	Target    ShipID
	HasTarget bool

	MaxTurnRate float64 // missile guidance (§4.4 phase 7)

	LifetimeRemaining float64
	Payload           Payload

	Despawn bool
}
