package world

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// Snapshot and Restore give the core an opaque byte-blob persistence
// contract (§6 "Persisted state layout"): not required by the core, but
// exposed so an external service can observe/restore state across
// restarts within one build. encoding/gob is used rather than a corpus
// serialization library because none of the pack's marshaling libraries
// (protobuf, yaml) round-trip unexported fields or Go-native map/array
// key types like ShipID without a schema-definition step this package
// would otherwise have to maintain by hand; gob handles the internal
// struct graph directly and is stable within one binary, which is exactly
// the contract §6 asks for (see DESIGN.md).
func init() {
	gob.Register(ShipMovedPayload{})
	gob.Register(WeaponFiredPayload{})
	gob.Register(DamageTakenPayload{})
	gob.Register(ShieldChangedPayload{})
	gob.Register(StatusEffectPayload{})
	gob.Register(ModuleStatusChangedPayload{})
	gob.Register(AllocationChangedPayload{})
	gob.Register(ContactPayload{})
	gob.Register(FtlPayload{})
	gob.Register(DockPayload{})
	gob.Register(ShipDestroyedPayload{})
	gob.Register(MessagePayload{})
	gob.Register(CountermeasurePayload{})
	gob.Register(IntentRejectedPayload{})
	gob.Register(DetonatedPayload{})
}

// snapshotDTO excludes the mutex and any in-flight (not-yet-drained)
// events, matching §3's rule that events are discarded once drained —
// they are transient output, not durable state.
type snapshotDTO struct {
	Ships       map[ShipID]*Ship
	Stations    map[StationID]*Station
	Projectiles map[ProjectileID]*Projectile
	ShipOrder   []ShipID
}

// Snapshot serializes the world to an opaque, build-stable byte blob.
func (s *State) Snapshot() ([]byte, error) {
	dto := snapshotDTO{
		Ships:       s.ships,
		Stations:    s.stations,
		Projectiles: s.projectiles,
		ShipOrder:   s.shipOrder,
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(dto); err != nil {
		return nil, fmt.Errorf("world: snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Restore replaces this State's registries with the contents of a
// snapshot produced by Snapshot. restore(snapshot(W)) == W by observable
// state (§8 round-trip law).
func (s *State) Restore(data []byte) error {
	var dto snapshotDTO
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&dto); err != nil {
		return fmt.Errorf("world: restore: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ships = dto.Ships
	s.stations = dto.Stations
	s.projectiles = dto.Projectiles
	s.shipOrder = dto.ShipOrder
	if s.ships == nil {
		s.ships = make(map[ShipID]*Ship)
	}
	if s.stations == nil {
		s.stations = make(map[StationID]*Station)
	}
	if s.projectiles == nil {
		s.projectiles = make(map[ProjectileID]*Projectile)
	}
	s.events = nil
	return nil
}
