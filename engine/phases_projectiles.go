package engine

import (
	"math"

	"github.com/hyperion-sim/hyperion/world"
)

// phaseProjectileAdvance is phase 7: every in-flight projectile moves along
// its velocity; guided ordnance (missiles, torpedoes) turns toward an
// updated intercept solution on its tracked target, limited by its
// ammunition's max turn rate. Lifetime expiry despawns a projectile
// harmlessly (no detonation) at the end of the phase.
func (e *Engine) phaseProjectileAdvance(dt float64) {
	runParallelPhase(e, e.World.Projectiles(), func(p *world.Projectile) {
		if p.Despawn {
			return
		}

		if p.HasTarget && p.MaxTurnRate > 0 {
			if target, ok := e.World.Get(p.Target); ok && !target.Destroyed {
				speed := p.Velocity.Len()
				if solution, ok := InterceptDirection(p.Position, target.Position, target.Velocity, math.Max(speed, 1)); ok {
					current := math.Atan2(p.Velocity.Y, p.Velocity.X)
					delta := NormalizeAngleSigned(solution.Direction - current)
					maxDelta := p.MaxTurnRate * dt
					if delta > maxDelta {
						delta = maxDelta
					} else if delta < -maxDelta {
						delta = -maxDelta
					}
					heading := current + delta
					p.Velocity = world.Vec2{X: speed * math.Cos(heading), Y: speed * math.Sin(heading)}
				}
			} else {
				p.HasTarget = false
			}
		}

		p.Position = p.Position.Add(p.Velocity.Scale(dt))

		p.LifetimeRemaining -= dt
		if p.LifetimeRemaining <= 0 {
			p.Despawn = true
		}
	})
}
