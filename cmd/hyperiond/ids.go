package main

import (
	"github.com/google/uuid"

	"github.com/hyperion-sim/hyperion/world"
)

func parsePlayerUUID(s string) (world.PlayerID, bool) {
	u, err := uuid.Parse(s)
	if err != nil {
		return world.PlayerID{}, false
	}
	return world.PlayerID(u), true
}

func parseShipUUID(s string) (world.ShipID, bool) {
	u, err := uuid.Parse(s)
	if err != nil {
		return world.ShipID{}, false
	}
	return world.ShipID(u), true
}
