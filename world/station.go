package world

// Station is a non-mobile world entity ships can dock with (§3).
type Station struct {
	ID         StationID
	FactionID  string
	Position   Vec2
	Size       float64
	DockingCapacity int
	Docked     map[ShipID]bool
	Services   []string
}

func NewStation(id StationID, faction string, pos Vec2, size float64, capacity int, services []string) *Station {
	return &Station{
		ID: id, FactionID: faction, Position: pos, Size: size,
		DockingCapacity: capacity, Docked: make(map[ShipID]bool), Services: services,
	}
}
