// Package engine is the fixed-timestep simulation scheduler: the heart of
// HYPERION (§4.4). A tick is a pure state transition (state, intents) ->
// (state', events); wall-clock pacing is the caller's concern (the
// teacher's gameLoop ticker in server/websocket.go adapts into
// cmd/hyperiond's runTickLoop, which calls RunTick once per dt).
package engine

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/hyperion-sim/hyperion/catalog"
	"github.com/hyperion-sim/hyperion/prng"
	"github.com/hyperion-sim/hyperion/world"
)

// Engine owns the World exclusively during a tick (§5). The Catalog is
// read-only and freely shared; RNG hands out deterministic sub-streams.
type Engine struct {
	Catalog *catalog.Catalog
	World   *world.State
	RNG     *prng.World
	Log     zerolog.Logger

	// Parallel enables concurrent execution (via golang.org/x/sync/errgroup)
	// of the per-entity phases §4.4 identifies as commuting. Off by default
	// so tests and determinism checks run the simple serial path (§5).
	Parallel bool

	grid *SpatialGrid

	tick int64
	time float64
}

func New(cat *catalog.Catalog, w *world.State, rng *prng.World, log zerolog.Logger) *Engine {
	return &Engine{
		Catalog: cat,
		World:   w,
		RNG:     rng,
		Log:     log,
		grid:    NewSpatialGrid(cat.Tunables.MaxPosition, cat.Tunables.MaxCollisionDistance),
	}
}

func (e *Engine) Tick() int64    { return e.tick }
func (e *Engine) SimTime() float64 { return e.time }

// RunTick advances the world by exactly one dt, running every phase in
// the fixed order from §4.4. Every phase iterates ships in the stable
// order world.State.Iter() returns (§5 "Ordering guarantees").
func (e *Engine) RunTick() {
	dt := e.Catalog.Tunables.Timestep
	e.tick++
	e.time += dt

	ships := e.World.Iter()

	e.phaseIntentIntake(ships)
	e.phaseEngineForces(ships, dt)
	e.phaseDrag(ships, dt)
	e.phasePhysicsIntegration(ships, dt)
	e.phaseWeaponCooldown(ships, dt)
	e.phaseWeaponFiring(ships, dt)
	e.phaseProjectileAdvance(dt)
	e.phaseCollisionImpact()
	e.phaseBeamDamage(ships, dt)
	e.phaseCountermeasures(ships, dt)
	e.phaseShipSystems(ships, dt)
	e.phaseShieldRegen(ships, dt)
	e.phaseEffectDecay(ships, dt)
	e.phaseFTL(ships, dt)
	e.phaseSensing(ships, dt)
	e.phaseDocking(ships, dt)
	e.phaseCleanup(ships)

	e.World.PushEvent(world.Event{
		Kind: world.EventSimulationTick,
		Tick: e.tick,
		Time: e.time,
	})
}

// Run loops RunTick until stop is signalled. pausedFlag and stopFlag are
// read with atomic loads so another goroutine can set them without a
// lock; the engine only observes them at
// tick boundaries, never mid-phase (§5 "Cancellation").
func (e *Engine) Run(pausedFlag, stopFlag *atomic.Bool) {
	for {
		if stopFlag != nil && stopFlag.Load() {
			return
		}
		if pausedFlag != nil && pausedFlag.Load() {
			e.phaseIntentIntake(e.World.Iter()) // pause-compatible (read-only) intents still drain
			continue
		}
		e.RunTick()
	}
}

func (e *Engine) emit(kind world.EventKind, ships []world.ShipID, payload any) {
	e.World.PushEvent(world.Event{
		Kind: kind, Tick: e.tick, Time: e.time, Ships: ships, Payload: payload,
	})
}

func (e *Engine) reject(ship world.ShipID, reason world.IntentRejectedReason) {
	e.emit(world.EventIntentRejected, []world.ShipID{ship}, world.IntentRejectedPayload{Reason: reason})
}
