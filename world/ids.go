package world

import "github.com/google/uuid"

// ShipID, StationID and ProjectileID are distinct id types so a value of
// one kind can never be silently passed where another is expected.
type ShipID uuid.UUID
type StationID uuid.UUID
type ProjectileID uuid.UUID
type PlayerID uuid.UUID

func NewShipID() ShipID             { return ShipID(uuid.New()) }
func NewStationID() StationID       { return StationID(uuid.New()) }
func NewProjectileID() ProjectileID { return ProjectileID(uuid.New()) }

func (id ShipID) String() string       { return uuid.UUID(id).String() }
func (id StationID) String() string    { return uuid.UUID(id).String() }
func (id ProjectileID) String() string { return uuid.UUID(id).String() }
func (id PlayerID) String() string     { return uuid.UUID(id).String() }

var NilShipID = ShipID{}
