// Package prng implements the single seeded-generator-per-world discipline
// from spec.md §9: procedural generation and per-tick randomness (accuracy
// rolls, countermeasure success, spawn placement) each draw from separate,
// deterministic sub-streams derived from (seed, stream_id), so that
// drawing more accuracy rolls in one tick never perturbs the galaxy
// generator's draw sequence or vice versa.
package prng

import "math/rand"

// StreamID names a deterministic sub-stream. New stream kinds are a single
// constant addition.
type StreamID string

const (
	StreamProcgen       StreamID = "procgen"
	StreamAccuracy      StreamID = "accuracy"
	StreamCountermeasure StreamID = "countermeasure"
	StreamSpawn         StreamID = "spawn"
	StreamSensing       StreamID = "sensing"
)

// World owns the master seed and hands out independent *rand.Rand streams
// derived from it. Two Worlds constructed with the same seed produce
// bit-identical streams for every StreamID (§8 "run_tick... determinism",
// §8 "Procedural... twice yields identical universes").
type World struct {
	seed int64
}

func NewWorld(seed int64) *World { return &World{seed: seed} }

func (w *World) Seed() int64 { return w.seed }

// Stream returns a *rand.Rand seeded deterministically from (seed,
// stream_id). Mixing in the stream name via FNV-1a keeps streams
// uncorrelated without requiring a registry of offsets.
func (w *World) Stream(id StreamID) *rand.Rand {
	h := fnv1a(w.seed, string(id))
	return rand.New(rand.NewSource(h))
}

// TickStream returns a stream specific to (stream_id, tick), used for
// per-tick rolls (accuracy, interception) so that replaying from a
// snapshot at tick T reproduces the same rolls at tick T regardless of
// how many rolls happened at earlier ticks.
func (w *World) TickStream(id StreamID, tick int64) *rand.Rand {
	h := fnv1a(w.seed, string(id))
	h = fnv1aInt64(h, tick)
	return rand.New(rand.NewSource(h))
}

func fnv1a(seed int64, s string) int64 {
	var h uint64 = 14695981039346656037
	h ^= uint64(seed)
	h *= 1099511628211
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return int64(h)
}

func fnv1aInt64(h int64, v int64) int64 {
	uh := uint64(h)
	for i := 0; i < 8; i++ {
		uh ^= uint64(v>>(8*i)) & 0xff
		uh *= 1099511628211
	}
	return int64(uh)
}
