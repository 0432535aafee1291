package engine

import "github.com/hyperion-sim/hyperion/world"

// phaseCleanup is phase 17, the last phase of a tick: removes ships marked
// destroyed earlier in the tick and projectiles that expired or detonated,
// so every other phase can treat "destroyed"/"despawn" as a pending marker
// rather than mutating the registries mid-phase (§5 "never mutate the
// entity set outside Cleanup").
func (e *Engine) phaseCleanup(ships []*world.Ship) {
	for _, s := range ships {
		if s.Destroyed {
			e.World.Despawn(s.ID)
		} else {
			s.ClampInvariants(e.Catalog.Tunables.MaxVelocity, e.Catalog.Tunables.MaxPosition)
		}
	}
	for _, p := range e.World.Projectiles() {
		if p.Despawn {
			e.World.DespawnProjectile(p.ID)
		}
	}
}
