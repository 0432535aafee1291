package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShip() *Ship {
	return &Ship{
		ID: NewShipID(), ClassID: "frigate", FactionID: "fed",
		Hull: 100, MaxHull: 100, MaxShields: 50,
		Inventory: map[string]int{},
		Crew:      map[PlayerID]Role{},
		Contacts:  map[ShipID]bool{},
	}
}

func TestState_SpawnGetDespawn(t *testing.T) {
	s := NewState()
	ship := newTestShip()
	id := s.SpawnShip(ship)

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, ship, got)

	assert.Len(t, s.Iter(), 1)

	s.Despawn(id)
	_, ok = s.Get(id)
	assert.False(t, ok)
	assert.Len(t, s.Iter(), 0)
}

func TestState_IterStableOrder(t *testing.T) {
	s := NewState()
	var ids []ShipID
	for i := 0; i < 20; i++ {
		ship := newTestShip()
		ids = append(ids, s.SpawnShip(ship))
	}
	first := s.Iter()
	second := s.Iter()
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestState_EventQueue(t *testing.T) {
	s := NewState()
	s.PushEvent(Event{Kind: EventSimulationTick, Tick: 1})
	s.PushEvent(Event{Kind: EventSimulationTick, Tick: 2})

	events := s.DrainEvents()
	require.Len(t, events, 2)
	assert.Equal(t, int64(1), events[0].Tick)

	assert.Empty(t, s.DrainEvents())
}

func TestState_Nearest(t *testing.T) {
	s := NewState()
	near := newTestShip()
	near.Position = Vec2{X: 0, Y: 0}
	far := newTestShip()
	far.Position = Vec2{X: 10000, Y: 10000}
	s.SpawnShip(near)
	s.SpawnShip(far)

	found := s.Nearest(Vec2{X: 0, Y: 0}, 100, nil)
	require.Len(t, found, 1)
	assert.Equal(t, near.ID, found[0].ID)
}

func TestState_SnapshotRestoreRoundTrip(t *testing.T) {
	s := NewState()
	ship := newTestShip()
	ship.Position = Vec2{X: 42, Y: -7}
	ship.Shields = 30
	id := s.SpawnShip(ship)

	st := NewStation(NewStationID(), "fed", Vec2{X: 1, Y: 2}, 500, 4, []string{"repair"})
	s.SpawnStation(st)

	data, err := s.Snapshot()
	require.NoError(t, err)

	restored := NewState()
	require.NoError(t, restored.Restore(data))

	got, ok := restored.Get(id)
	require.True(t, ok)
	assert.Equal(t, ship.Position, got.Position)
	assert.Equal(t, ship.Shields, got.Shields)
	assert.Len(t, restored.Stations(), 1)
}
